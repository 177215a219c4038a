package domain

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

type BulkShiftRequest struct {
	ShiftType ShiftType         `json:"shiftType"`
	Dates     []json_types.Date `json:"dates"`
	StaffIDs  []string          `json:"staffIds"`
	Hours     *ShiftHours       `json:"hours,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

type BulkCreateFailure struct {
	StaffID string          `json:"staffId"`
	Date    json_types.Date `json:"date"`
	Error   string          `json:"error"`
}

// BulkCreateResult итог пакетного создания. Пакет не атомарный: часть смен может создаться, часть нет.
type BulkCreateResult struct {
	CreatedCount int                 `json:"createdCount"`
	SkippedCount int                 `json:"skippedCount"`
	FailedCount  int                 `json:"failedCount"`
	Created      []Shift             `json:"created"`
	Failures     []BulkCreateFailure `json:"failures,omitempty"`
}
