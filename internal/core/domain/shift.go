package domain

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeAfternoon ShiftType = "afternoon"
	ShiftTypeEvening   ShiftType = "evening"
	ShiftTypeCustom    ShiftType = "custom"
	ShiftTypeLeave     ShiftType = "leave"
)

func (t ShiftType) IsKnown() bool {
	switch t {
	case ShiftTypeMorning, ShiftTypeAfternoon, ShiftTypeEvening, ShiftTypeCustom, ShiftTypeLeave:
		return true
	}
	return false
}

type ShiftStatus string

const (
	ShiftStatusPending  ShiftStatus = "pending"
	ShiftStatusApproved ShiftStatus = "approved"
	ShiftStatusRejected ShiftStatus = "rejected"
)

type ManagerApprovalStatus string

const (
	ManagerApprovalPending  ManagerApprovalStatus = "pending_approval"
	ManagerApprovalApproved ManagerApprovalStatus = "approved"
	ManagerApprovalRejected ManagerApprovalStatus = "rejected"
)

type ShiftHours struct {
	Start json_types.ClockTime `json:"start"`
	End   json_types.ClockTime `json:"end"`
}

func NewShiftHours(start, end string) ShiftHours {
	return ShiftHours{
		Start: json_types.MustClockTime(start),
		End:   json_types.MustClockTime(end),
	}
}

func (h ShiftHours) Valid() bool {
	return h.Start.Valid && h.End.Valid && h.Start.Before(h.End)
}

// Contains проверяет t в [start, end)
func (h ShiftHours) Contains(t json_types.ClockTime) bool {
	return h.Valid() && t.Within(h.Start, h.End)
}

func (h ShiftHours) Overlaps(other ShiftHours) bool {
	if !h.Valid() || !other.Valid() {
		return false
	}
	return h.Start.Minutes < other.End.Minutes && other.Start.Minutes < h.End.Minutes
}

// Смена сотрудника на одну календарную дату.
//
// Status и ManagerApprovalStatus это одно решение по заявке, записываются вместе через Decide,
// но могут разойтись, если смена создана в обход консоли. IsUpForSwap не зависит от них:
// смена может быть одновременно одобрена и выставлена на обмен.
type Shift struct {
	ID                    string                `json:"id"`
	StaffID               string                `json:"staffId"`
	Date                  json_types.Date       `json:"date"`
	ShiftType             ShiftType             `json:"shiftType"`
	Hours                 *ShiftHours           `json:"hours,omitempty"`
	Status                ShiftStatus           `json:"status"`
	ManagerApprovalStatus ManagerApprovalStatus `json:"managerApprovalStatus"`
	IsUpForSwap           bool                  `json:"isUpForSwap"`
	Notes                 string                `json:"notes,omitempty"`
}

func (s Shift) HasValidHours() bool {
	return s.Hours != nil && s.Hours.Valid()
}

// IsSchedulable смена участвует в расчете слотов и конфликтов
func (s Shift) IsSchedulable() bool {
	return s.ShiftType != ShiftTypeLeave && s.Status == ShiftStatusApproved && s.HasValidHours()
}

// NeedsAttention смена попадает в очередь заявок, если выполнен хотя бы один из признаков
func (s Shift) NeedsAttention() bool {
	return s.Status == ShiftStatusPending ||
		s.ManagerApprovalStatus == ManagerApprovalPending ||
		s.IsUpForSwap
}

func (s Shift) Matches(staffID string, date json_types.Date, shiftType ShiftType) bool {
	return s.StaffID == staffID && s.Date.Equal(date) && s.ShiftType == shiftType
}

// Decide пишет оба поля решения одним значением
func (s *Shift) Decide(approved bool) {
	if approved {
		s.Status = ShiftStatusApproved
		s.ManagerApprovalStatus = ManagerApprovalApproved
		return
	}
	s.Status = ShiftStatusRejected
	s.ManagerApprovalStatus = ManagerApprovalRejected
}

// ShiftPatch частичное обновление, nil поля не трогаются
type ShiftPatch struct {
	StaffID               *string                `json:"staffId,omitempty"`
	Date                  *json_types.Date       `json:"date,omitempty"`
	ShiftType             *ShiftType             `json:"shiftType,omitempty"`
	Hours                 *ShiftHours            `json:"hours,omitempty"`
	Status                *ShiftStatus           `json:"status,omitempty"`
	ManagerApprovalStatus *ManagerApprovalStatus `json:"managerApprovalStatus,omitempty"`
	IsUpForSwap           *bool                  `json:"isUpForSwap,omitempty"`
	Notes                 *string                `json:"notes,omitempty"`
}

func DecisionPatch(approved bool) ShiftPatch {
	var shift Shift
	shift.Decide(approved)
	return ShiftPatch{
		Status:                &shift.Status,
		ManagerApprovalStatus: &shift.ManagerApprovalStatus,
	}
}

func (p ShiftPatch) IsEmpty() bool {
	return p.StaffID == nil && p.Date == nil && p.ShiftType == nil && p.Hours == nil &&
		p.Status == nil && p.ManagerApprovalStatus == nil && p.IsUpForSwap == nil && p.Notes == nil
}

func (p ShiftPatch) Apply(shift Shift) Shift {
	if p.StaffID != nil {
		shift.StaffID = *p.StaffID
	}
	if p.Date != nil {
		shift.Date = *p.Date
	}
	if p.ShiftType != nil {
		shift.ShiftType = *p.ShiftType
	}
	if p.Hours != nil {
		hours := *p.Hours
		shift.Hours = &hours
	}
	if p.Status != nil {
		shift.Status = *p.Status
	}
	if p.ManagerApprovalStatus != nil {
		shift.ManagerApprovalStatus = *p.ManagerApprovalStatus
	}
	if p.IsUpForSwap != nil {
		shift.IsUpForSwap = *p.IsUpForSwap
	}
	if p.Notes != nil {
		shift.Notes = *p.Notes
	}
	return shift
}
