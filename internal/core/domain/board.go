package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

// ScheduleCell ячейка сетки: все активные записи на одну дату и время
type ScheduleCell struct {
	Date             json_types.Date      `json:"date"`
	Time             json_types.ClockTime `json:"time"`
	AppointmentCount int                  `json:"appointmentCount"`
	StaffIDs         []string             `json:"staffIds,omitempty"`
	HasConflict      bool                 `json:"hasConflict"`
	Busyness         Busyness             `json:"busyness"`
}

type ScheduleBoard struct {
	From            json_types.Date `json:"from"`
	To              json_types.Date `json:"to"`
	SnapshotVersion uuid.UUID       `json:"snapshotVersion"`
	Slots           []AvailableSlot `json:"slots"`
	Conflicts       []Conflict      `json:"conflicts"`
	Cells           []ScheduleCell  `json:"cells"`
	InCache         bool            `json:"inCache,omitempty"`
	Debug           []DebugInfo     `json:"debug,omitempty"`
}
