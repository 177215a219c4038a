package scheduling_service

import "github.com/suchimauz/staff-roster-scheduler/internal/core/domain"

const (
	highLoadThreshold   = 5
	mediumLoadThreshold = 3
)

// ClassifyBusyness статическая таблица порогов, конфликт всегда critical
func ClassifyBusyness(appointmentCount int, hasConflict bool) domain.Busyness {
	switch {
	case hasConflict:
		return domain.NewBusyness(domain.BusynessCritical)
	case appointmentCount >= highLoadThreshold:
		return domain.NewBusyness(domain.BusynessHigh)
	case appointmentCount >= mediumLoadThreshold:
		return domain.NewBusyness(domain.BusynessMedium)
	default:
		return domain.NewBusyness(domain.BusynessLow)
	}
}
