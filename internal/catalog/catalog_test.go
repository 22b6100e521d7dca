package catalog

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// To regenerate the golden listings, run:
//
//	go test ./internal/catalog -update
func TestRender_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, d := range Dialects {
		t.Run(string(d), func(t *testing.T) {
			c, err := New(d)
			require.NoError(t, err)
			g.Assert(t, string(d), []byte(Render(c)))
		})
	}
}

func TestNew(t *testing.T) {
	for _, d := range Dialects {
		c, err := New(d)
		require.NoError(t, err)
		assert.Equal(t, d, c.Dialect())
	}

	_, err := New("oracle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDialect))

	assert.Panics(t, func() { MustNew("oracle") })
}

var pgPlaceholder = regexp.MustCompile(`\$(\d+)`)

// placeholders returns the number of distinct parameters a statement binds.
func placeholders(d Dialect, sql string) int {
	if d == Postgres {
		highest := 0
		for _, m := range pgPlaceholder.FindAllStringSubmatch(sql, -1) {
			n, _ := strconv.Atoi(m[1])
			if n > highest {
				highest = n
			}
		}
		return highest
	}
	return strings.Count(sql, "?")
}

func TestStatements_ParamContract(t *testing.T) {
	for _, d := range Dialects {
		c := MustNew(d)
		for _, st := range Statements(c) {
			t.Run(string(d)+"/"+string(st.Op), func(t *testing.T) {
				assert.Equal(t, ParamCount(st.Op), placeholders(d, st.SQL), "statement: %s", st.SQL)
			})
		}
	}
}

func TestStatements_CoverEveryOp(t *testing.T) {
	for _, d := range Dialects {
		seen := make(map[Op]bool)
		for _, st := range Statements(MustNew(d)) {
			seen[st.Op] = true
			assert.NotEmpty(t, st.SQL)
		}
		for _, op := range Ops {
			assert.True(t, seen[op], "%s: no statement for %s", d, op)
		}
		assert.Len(t, seen, len(Ops))
	}
}

func TestParamCount_Unknown(t *testing.T) {
	assert.Equal(t, -1, ParamCount("room_rename"))
}

func TestStateLoad_FullSlotOnly(t *testing.T) {
	tests := []struct {
		dialect      Dialect
		fullLiteral  string
		stripLiteral string
	}{
		{SQLite, "is_stripped = 0", "is_stripped = 1"},
		{Postgres, "is_stripped = FALSE", "is_stripped = TRUE"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			c := MustNew(tt.dialect)
			assert.Contains(t, c.StateLoad(), tt.fullLiteral)
			assert.NotContains(t, c.StateLoad(), tt.stripLiteral)
			assert.Contains(t, c.StrippedStateLoad(), tt.stripLiteral)
		})
	}
}

func TestRoomRemove_CoversEveryRoomKeyedTable(t *testing.T) {
	tables := []string{"room_members", "room_member_profiles", "room_state", "account_data", "receipts", "rooms"}

	for _, d := range Dialects {
		stmts := MustNew(d).RoomRemove()
		require.Len(t, stmts, len(tables))
		for i, table := range tables {
			assert.Contains(t, stmts[i], "DELETE FROM "+table+" WHERE room_id")
		}
	}
}

func TestUpserts_AreConflictUpdates(t *testing.T) {
	for _, d := range Dialects {
		c := MustNew(d)
		for _, sql := range []string{
			c.RoomUpsert(), c.MemberUpsert(), c.MemberProfileUpsert(), c.StateUpsert(),
			c.AccountDataUpsert(), c.PresenceUpsert(), c.ReceiptUpsert(),
		} {
			assert.Contains(t, sql, "ON CONFLICT (")
			assert.Contains(t, sql, "DO UPDATE SET")
		}
	}
}

func TestRender_StartsWithSchema(t *testing.T) {
	out := Render(MustNew(SQLite))
	assert.True(t, strings.HasPrefix(out, "-- schema\nCREATE TABLE IF NOT EXISTS rooms"))
	assert.Equal(t, len(MustNew(SQLite).Schema())+len(Statements(MustNew(SQLite))), strings.Count(out, "-- "))
}
