package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
)

func TestWindowForToday(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 4, 0, 0, time.UTC)
	w := WindowFor(RangeToday, now)

	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 12, 23, 59, 59, 999999999, time.UTC), w.End)
	assert.Equal(t, 1, w.Days())
}

func TestWindowForWeekStartsOnSunday(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	w := WindowFor(RangeWeek, now)

	assert.Equal(t, time.Sunday, w.Start.Weekday())
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 999999999, time.UTC), w.End)
	assert.Equal(t, 7, w.Days())

	// Sunday itself opens its own week
	sunday := WindowFor(RangeWeek, time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), sunday.Start)
}

func TestWindowForMonth(t *testing.T) {
	w := WindowFor(RangeMonth, time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), w.End)
	assert.Equal(t, 29, w.Days())
}

func TestWindowDaysIgnoresDSTShift(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts 2024-03-10 in New York
	w := WindowFor(RangeWeek, time.Date(2024, 3, 12, 12, 0, 0, 0, ny))
	assert.Equal(t, 7, w.Days())

	m := WindowFor(RangeMonth, time.Date(2024, 3, 12, 12, 0, 0, 0, ny))
	assert.Equal(t, 31, m.Days())
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, RangeToday, g)

	g, err = ParseGranularity("Month")
	require.NoError(t, err)
	assert.Equal(t, RangeMonth, g)

	_, err = ParseGranularity("year")
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}
