package calendar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

func TestMergeAssignsContiguousIndex(t *testing.T) {
	days, skipped, err := Merge(2024, fullYear(2024), nil)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, days, 366)
	for i, d := range days {
		assert.Equal(t, i+1, d.Date.Index)
	}
	assert.Equal(t, uint8(12), days[365].Date.Month)
	assert.Equal(t, uint8(31), days[365].Date.Day)
}

func TestMergeSkipsMissingMonthsWithoutGaps(t *testing.T) {
	months := []model.MonthRows{monthRows(2024, 3), monthRows(2024, 1)}
	days, skipped, err := Merge(2024, months, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 5, 6, 7, 8, 9, 10, 11, 12}, skipped)
	require.Len(t, days, 62)

	assert.Equal(t, uint8(1), days[0].Date.Month)
	assert.Equal(t, 31, days[30].Date.Index)
	assert.Equal(t, uint8(3), days[31].Date.Month)
	assert.Equal(t, uint8(1), days[31].Date.Day)
	assert.Equal(t, 32, days[31].Date.Index)
}

func TestMergeKeepsFileRowOrder(t *testing.T) {
	months := []model.MonthRows{{Month: 5, Rows: []model.RawDayRow{{Day: 3}, {Day: 1}, {Day: 2}}}}
	days, _, err := Merge(2024, months, nil)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, uint8(3), days[0].Date.Day)
	assert.Equal(t, 1, days[0].Date.Index)
	assert.Equal(t, uint8(2), days[2].Date.Day)
	assert.Equal(t, 3, days[2].Date.Index)
}

func TestMergeAttachesEventsByExactKey(t *testing.T) {
	months := []model.MonthRows{monthRows(2024, 3)}
	events := map[string]model.Event{
		"7/3":  {Primary: "Laylat al-Qadr"},
		"07/3": {Primary: "never matched"},
	}
	days, _, err := Merge(2024, months, events)
	require.NoError(t, err)

	for _, d := range days {
		if d.Date.Day == 7 {
			require.NotNil(t, d.Event)
			assert.Equal(t, "Laylat al-Qadr", d.Event.Primary)
			assert.Empty(t, d.Event.Secondary)
			continue
		}
		assert.Nil(t, d.Event, "day %d", d.Date.Day)
	}
}

func TestMergeRejectsInvalidDate(t *testing.T) {
	months := []model.MonthRows{{Month: 4, Rows: []model.RawDayRow{{Day: 30}, {Day: 31}}}}
	_, _, err := Merge(2024, months, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))

	var dateErr *DateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, 4, dateErr.Month)
	assert.Equal(t, 31, dateErr.Day)
	assert.Equal(t, 2, dateErr.Row)
}

func TestMergeRejectsDuplicateMonth(t *testing.T) {
	_, _, err := Merge(2024, []model.MonthRows{monthRows(2024, 1), monthRows(2024, 1)}, nil)
	assert.True(t, errors.Is(err, ErrDuplicateMonth))
}

func TestMergeRejectsOutOfRangeYear(t *testing.T) {
	_, _, err := Merge(0, fullYear(2024), nil)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}
