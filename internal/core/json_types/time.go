package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const ClockLayout = "15:04"

// ClockTime время на циферблате (HH:MM) в минутах от полуночи.
// Valid=false означает, что время не задано или не распарсилось.
type ClockTime struct {
	Minutes int
	Valid   bool
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Minutes: hour*60 + minute, Valid: true}
}

func ParseClockTime(str string) (ClockTime, error) {
	str = strings.TrimSpace(str)

	parsed, err := time.Parse(ClockLayout, str)
	if err != nil {
		parsed, err = time.Parse("15:04:05", str)
		if err != nil {
			return ClockTime{}, fmt.Errorf("failed to parse time: %v", err)
		}
	}

	return NewClockTime(parsed.Hour(), parsed.Minute()), nil
}

// MustClockTime используется для статических таблиц и тестов
func MustClockTime(str string) ClockTime {
	t, err := ParseClockTime(str)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ClockTime) String() string {
	if !t.Valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Minutes/60, t.Minutes%60)
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.Minutes < other.Minutes
}

// Within проверяет попадание в полуинтервал [start, end)
func (t ClockTime) Within(start, end ClockTime) bool {
	if !t.Valid || !start.Valid || !end.Valid {
		return false
	}
	return start.Minutes <= t.Minutes && t.Minutes < end.Minutes
}

// UnmarshalJSON не падает на мусоре: невалидное время просто остается Valid=false
func (t *ClockTime) UnmarshalJSON(data []byte) error {
	*t = ClockTime{}
	if string(data) == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return nil
	}

	parsed, err := ParseClockTime(str)
	if err != nil {
		return nil
	}

	*t = parsed
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return json.Marshal(nil)
	}
	return json.Marshal(t.String())
}
