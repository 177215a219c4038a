package json_types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Formats(t *testing.T) {
	want := NewDate(2025, time.March, 3)

	for _, input := range []string{"2025-03-03", "2025-03-03T23:30:00+03:00", "2025-03-03T08:00:00", " 2025-03-03 "} {
		got, err := ParseDate(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), input)
	}

	_, err := ParseDate("03/03/2025")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-03-03"}`), &payload))
	assert.Equal(t, "2025-03-03", payload.Date.String())

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &payload))
	assert.True(t, payload.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"someday"}`), &payload))

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(raw))
}

func TestDate_AddDaysAcrossMonth(t *testing.T) {
	assert.Equal(t, "2025-03-01", NewDate(2025, time.February, 28).AddDays(1).String())
	assert.Equal(t, "2024-12-31", NewDate(2025, time.January, 1).AddDays(-1).String())
}

func TestParseClockTime(t *testing.T) {
	clock, err := ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, clock.Minutes)
	assert.True(t, clock.Valid)

	clock, err = ParseClockTime("18:00:59")
	require.NoError(t, err)
	assert.Equal(t, "18:00", clock.String())

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
}

func TestClockTime_Within(t *testing.T) {
	start := MustClockTime("08:00")
	end := MustClockTime("12:00")

	assert.True(t, MustClockTime("08:00").Within(start, end))
	assert.True(t, MustClockTime("11:59").Within(start, end))
	assert.False(t, MustClockTime("12:00").Within(start, end))
	assert.False(t, ClockTime{}.Within(start, end))
}

func TestClockTime_JSONNeverFails(t *testing.T) {
	var payload struct {
		Time ClockTime `json:"time"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"time":"10:15"}`), &payload))
	assert.Equal(t, "10:15", payload.Time.String())

	for _, raw := range []string{`{"time":"soon"}`, `{"time":42}`, `{"time":null}`} {
		require.NoError(t, json.Unmarshal([]byte(raw), &payload), raw)
		assert.False(t, payload.Time.Valid, raw)
	}

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":null}`, string(out))
}
