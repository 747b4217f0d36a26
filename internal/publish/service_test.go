package publish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
)

func TestServiceRegeneratePopulatesCatalog(t *testing.T) {
	dir := writeJanuary(t)
	cat := catalog.New()
	svc := &Service{Pipeline: &Pipeline{}, Base: generation(dir), Catalog: cat}

	report, err := svc.Regenerate(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, report.Year)

	res, ok := cat.Get(2024)
	require.True(t, ok)
	assert.Equal(t, report.Digest, res.Digest)

	// January rows are valid in any year
	report, err = svc.Regenerate(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, []int{2024, 2025}, cat.Years())
}

func TestServiceRegenerateErrorLeavesCatalog(t *testing.T) {
	cat := catalog.New()
	svc := &Service{Pipeline: &Pipeline{}, Base: generation(t.TempDir()), Catalog: cat}
	svc.Base.EventsFile = "/nonexistent/events.csv"

	_, err := svc.Regenerate(context.Background(), 0)
	assert.Error(t, err)
	assert.Empty(t, cat.Years())
}
