//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"guildhall/internal/domain/schedule"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDB captures the statement a read issues so the test can check the
// predicates without a database.
type recordingDB struct {
	sql  string
	args []any
}

func (r *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return pgconn.CommandTag{}, nil
}

func (r *recordingDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql, r.args = sql, args
	return emptyRows{}, nil
}

func (r *recordingDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.sql, r.args = sql, args
	return nil
}

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func TestDelinquencyCandidates(t *testing.T) {
	t.Run("scan is limited to pending monthly invoices", func(t *testing.T) {
		db := &recordingDB{}
		reads := &commandReads{dbtx: db}

		candidates, err := reads.DelinquencyCandidates(context.Background(), schedule.NewDate(2026, time.March, 20))
		require.NoError(t, err)
		assert.Empty(t, candidates)

		assert.Contains(t, db.sql, "t.type = 'monthly'")
		assert.Contains(t, db.sql, "t.status = 'pending'")
	})
}
