package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

func TestDaysBetween(t *testing.T) {
	from := json_types.NewDate(2025, time.February, 27)
	to := json_types.NewDate(2025, time.March, 2)

	days := DaysBetween(from, to)
	require.Len(t, days, 4)
	assert.Equal(t, "2025-02-27", days[0].String())
	assert.Equal(t, "2025-03-02", days[3].String())

	assert.Len(t, DaysBetween(from, from), 1)
	assert.Empty(t, DaysBetween(to, from))
	assert.Empty(t, DaysBetween(json_types.Date{}, to))
}

func TestStartCurrentWeek(t *testing.T) {
	monday := json_types.NewDate(2025, time.March, 3)

	assert.True(t, monday.Equal(StartCurrentWeek(monday)))
	assert.True(t, monday.Equal(StartCurrentWeek(json_types.NewDate(2025, time.March, 9))))
	assert.True(t, monday.Equal(StartCurrentWeek(json_types.NewDate(2025, time.March, 5))))
}

func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange("2025-03-05", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", from.String())
	assert.Equal(t, "2025-03-11", to.String())

	from, to, err = ParseDateRange("2025-03-05", "2025-03-06", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-06", to.String())

	from, to, err = ParseDateRange("", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, from.Date.Weekday())
	assert.Equal(t, 6, len(DaysBetween(from, to))-1)

	_, _, err = ParseDateRange("tomorrow", "", time.UTC)
	assert.Error(t, err)
}
