package state

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	e1, err := s.Append("3+4", true, 7, "")
	require.NoError(t, err)
	assert.NotEmpty(t, e1.ID)
	assert.True(t, e1.OK)

	_, err = s.Append("1/0", false, 0, "division by zero is not defined")
	require.NoError(t, err)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byExpr := map[string]Entry{}
	for _, e := range entries {
		byExpr[e.Expression] = e
	}

	ok := byExpr["3+4"]
	assert.True(t, ok.OK)
	assert.Equal(t, 7.0, ok.Value)
	assert.Empty(t, ok.Message)

	failed := byExpr["1/0"]
	assert.False(t, failed.OK)
	assert.Equal(t, "division by zero is not defined", failed.Message)
	assert.False(t, failed.CreatedAt.IsZero())
}

func TestStore_RecentLimit(t *testing.T) {
	s := openTestStore(t)

	for _, expr := range []string{"1+1", "2+2", "3+3", "4+4"} {
		_, err := s.Append(expr, true, 0, "")
		require.NoError(t, err)
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_Search(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Append("sqrt(16)", true, 4, "")
	require.NoError(t, err)
	_, err = s.Append("2^10", true, 1024, "")
	require.NoError(t, err)

	entries, err := s.Search("sqrt", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sqrt(16)", entries[0].Expression)

	entries, err = s.Search("nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Clear(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Append("3+4", true, 7, "")
	require.NoError(t, err)

	n, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_MigrationIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	// Re-running migrations against an up-to-date schema is a no-op.
	require.NoError(t, MigrateWithDB(s.db))
}

func TestStore_AppendDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO history").
		WillReturnError(errors.New("disk I/O error"))

	s := &Store{db: db}
	_, err = s.Append("3+4", true, 7, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record evaluation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecentDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT (.+) FROM history").
		WillReturnError(errors.New("database is locked"))

	s := &Store{db: db}
	_, err = s.Recent(10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list history")
	assert.NoError(t, mock.ExpectationsWereMet())
}
