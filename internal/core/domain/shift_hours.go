package domain

import "fmt"

// Фиксированные часы смен. Закрытая таблица: для остальных типов часы передает вызывающий.
var fixedShiftHours = map[ShiftType]ShiftHours{
	ShiftTypeMorning:   NewShiftHours("08:00", "12:00"),
	ShiftTypeAfternoon: NewShiftHours("14:00", "18:00"),
}

func FixedHours(shiftType ShiftType) (ShiftHours, bool) {
	hours, ok := fixedShiftHours[shiftType]
	return hours, ok
}

// ResolveHours возвращает итоговые часы смены с учетом типа.
// Для leave часов нет, для morning/afternoon по умолчанию берутся фиксированные,
// для evening/custom часы обязательны.
func ResolveHours(shiftType ShiftType, supplied *ShiftHours) (*ShiftHours, error) {
	if !shiftType.IsKnown() {
		return nil, &ValidationError{
			Field:   "shiftType",
			Message: fmt.Sprintf("unknown shift type %q", shiftType),
		}
	}

	if shiftType == ShiftTypeLeave {
		return nil, nil
	}

	if supplied != nil {
		if !supplied.Valid() {
			return nil, &ValidationError{
				Field:   "hours",
				Message: "hours must have start < end in HH:MM format",
			}
		}
		hours := *supplied
		return &hours, nil
	}

	if fixed, ok := FixedHours(shiftType); ok {
		return &fixed, nil
	}

	return nil, &ValidationError{
		Field:   "hours",
		Message: fmt.Sprintf("shift type %q has no fixed hours, hours are required", shiftType),
	}
}
