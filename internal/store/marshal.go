package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/chatstate/internal/codec"
)

// encode serializes a payload for storage.
func (s *Store) encode(v any) ([]byte, error) {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// exec runs one catalog statement on tx, wrapping failures with op.
func (s *Store) exec(ctx context.Context, tx Execer, op, query string, args ...any) error {
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// load fetches the single payload column selected by query and decodes it
// into T. It returns nil, nil when no row matches.
func load[T any](ctx context.Context, s *Store, op, column, query string, args ...any) (*T, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var v T
	if err := s.codec.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, &codec.DecodeError{Column: column, Err: err})
	}
	return &v, nil
}

// nullString maps an optional string to a bind parameter: NULL when absent.
func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
