package db

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

var columns = []string{"id", "year", "week_start", "digest", "day_count", "week_count", "document_count",
	"skipped_months", "dropped_events", "dropped_hadiths", "changed", "created_at"}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestRecordRun(t *testing.T) {
	conn, mock := newMock(t)
	store := NewStore(conn)
	now := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generation_runs")).
		WithArgs(2024, "saturday", "abc", 366, 53, 420, sqlmock.AnyArg(), 1, 0, true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(7, 2024, "saturday", "abc", 366, 53, 420, []byte("{2,3}"), 1, 0, true, now))

	run, err := store.RecordRun(model.GenerationRun{
		Year:          2024,
		WeekStart:     "saturday",
		Digest:        "abc",
		DayCount:      366,
		WeekCount:     53,
		DocumentCount: 420,
		SkippedMonths: pq.Int64Array{2, 3},
		DroppedEvents: 1,
		Changed:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, run.ID)
	assert.Equal(t, pq.Int64Array{2, 3}, run.SkippedMonths)
	assert.Equal(t, now, run.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestRunNotFound(t *testing.T) {
	conn, mock := newMock(t)
	store := NewStore(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM generation_runs")).
		WithArgs(2030).
		WillReturnRows(sqlmock.NewRows(columns))

	run, err := store.LatestRun(2030)
	require.NoError(t, err)
	assert.Nil(t, run)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRunsDefaultsLimit(t *testing.T) {
	conn, mock := newMock(t)
	store := NewStore(conn)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM generation_runs")).
		WithArgs(0, 50).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, 2025, "saturday", "b", 365, 53, 10, []byte("{}"), 0, 0, false, now).
			AddRow(1, 2024, "saturday", "a", 366, 53, 10, []byte("{}"), 0, 0, true, now))

	runs, err := store.ListRuns(0, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2025, runs[0].Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsAppliesUpFilesInOrder(t *testing.T) {
	conn, mock := newMock(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002_b.up.sql"), []byte("CREATE TABLE b (id int);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_a.up.sql"), []byte("CREATE TABLE a (id int);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_a.down.sql"), []byte("DROP TABLE a;"), 0o644))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(conn, dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}
