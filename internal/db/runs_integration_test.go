package db

import (
	"os"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// requires a disposable PostgreSQL in TEST_DATABASE_URL
func TestRunsIntegration(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := InitTestDB("../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() { DB.Close() })

	digest := func(c string) string { return strings.Repeat(c, 40) }

	first, err := store.RecordRun(model.GenerationRun{
		Year: 2024, WeekStart: "saturday", Digest: digest("a"), DayCount: 366, WeekCount: 53,
		SkippedMonths: pq.Int64Array{}, Changed: true,
	})
	require.NoError(t, err)
	assert.Greater(t, first.ID, 0)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = store.RecordRun(model.GenerationRun{
		Year: 2024, WeekStart: "saturday", Digest: digest("b"), DayCount: 335, WeekCount: 53,
		SkippedMonths: pq.Int64Array{2}, DroppedEvents: 1,
	})
	require.NoError(t, err)
	_, err = store.RecordRun(model.GenerationRun{Year: 2025, WeekStart: "sunday", Digest: digest("c"), SkippedMonths: pq.Int64Array{}})
	require.NoError(t, err)

	latest, err := store.LatestRun(2024)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, digest("b"), latest.Digest)
	assert.Equal(t, pq.Int64Array{2}, latest.SkippedMonths)

	none, err := store.LatestRun(1999)
	require.NoError(t, err)
	assert.Nil(t, none)

	runs, err := store.ListRuns(2024, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	all, err := store.ListRuns(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
