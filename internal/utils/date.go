package utils

import (
	"time"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

// MaxRangeDays ограничение на диапазон одного запроса сетки
const MaxRangeDays = 62

// DaysBetween возвращает все календарные дни от from до to включительно.
// Если to раньше from, возвращается пустой список.
func DaysBetween(from, to json_types.Date) []json_types.Date {
	days := make([]json_types.Date, 0)
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return days
	}

	for day := from; !day.After(to); day = day.AddDays(1) {
		days = append(days, day)
	}

	return days
}

// Today текущая дата в таймзоне приложения
func Today(location *time.Location) json_types.Date {
	if location == nil {
		location = time.UTC
	}
	return json_types.DateOf(time.Now().In(location))
}

// StartCurrentWeek понедельник недели, в которую попадает дата
func StartCurrentWeek(date json_types.Date) json_types.Date {
	offset := (int(date.Date.Weekday()) + 6) % 7
	return date.AddDays(-offset)
}

// ParseDateRange парсит from/to, пустой to означает неделю от from
func ParseDateRange(fromStr, toStr string, location *time.Location) (json_types.Date, json_types.Date, error) {
	from := StartCurrentWeek(Today(location))
	if fromStr != "" {
		parsed, err := json_types.ParseDate(fromStr)
		if err != nil {
			return json_types.Date{}, json_types.Date{}, err
		}
		from = parsed
	}

	to := from.AddDays(6)
	if toStr != "" {
		parsed, err := json_types.ParseDate(toStr)
		if err != nil {
			return json_types.Date{}, json_types.Date{}, err
		}
		to = parsed
	}

	return from, to, nil
}
