package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date календарная дата без времени и таймзоны.
// Внутри всегда хранится полночь UTC, поэтому даты можно сравнивать напрямую.
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf отбрасывает время и таймзону, оставляя только календарный день
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func parseDate(str string) (time.Time, error) {
	// Пробуем сначала чистую дату, потом дату со временем
	if parsed, err := time.Parse(DateLayout, str); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, str); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02T15:04:05", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return parsed, nil
}

func ParseDate(str string) (Date, error) {
	parsed, err := parseDate(strings.TrimSpace(str))
	if err != nil {
		return Date{}, err
	}
	return DateOf(parsed), nil
}

func (d Date) String() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format(DateLayout)
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.Date.Equal(other.Date)
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) After(other Date) bool {
	return d.Date.After(other.Date)
}

func (d Date) AddDays(days int) Date {
	return DateOf(d.Date.AddDate(0, 0, days))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}
	if str == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.String())
}
