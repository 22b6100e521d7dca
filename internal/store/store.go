package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/roach88/chatstate/internal/catalog"
	"github.com/roach88/chatstate/internal/codec"
)

// Execer runs a statement without returning rows. *sql.Tx and *sql.DB
// satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Querier runs a statement returning at most one row. *sql.Tx and *sql.DB
// satisfy it.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrEmptyRoomID is returned when a room-scoped operation gets an empty room
// id. The empty id is reserved for global account data.
var ErrEmptyRoomID = errors.New("empty room id")

// Store reads and writes chat client state through a catalog.
// It is safe for concurrent use if its Querier is.
type Store struct {
	db     Querier
	cat    catalog.Catalog
	codec  codec.Codec
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithCodec sets the payload codec. The default is codec.JSON.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// WithLogger sets the logger for the store. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store reading through db with the statements of cat.
// The caller owns db; the store never closes it.
func New(db Querier, cat catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		db:     db,
		cat:    cat,
		codec:  codec.JSON,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the statement catalog the store binds against.
func (s *Store) Catalog() catalog.Catalog {
	return s.cat
}

// Codec returns the payload codec.
func (s *Store) Codec() codec.Codec {
	return s.codec
}
