package domain

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

// AvailableSlot свободная комбинация мастер+кабинет на начало смены. Не хранится.
type AvailableSlot struct {
	Date    json_types.Date      `json:"date"`
	StaffID string               `json:"staffId"`
	RoomID  string               `json:"roomId"`
	Time    json_types.ClockTime `json:"time"`
}
