package domain

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusUpcoming   AppointmentStatus = "upcoming"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// Запись клиента. Ядро ее только читает.
type Appointment struct {
	ID          string               `json:"id"`
	Date        json_types.Date      `json:"date"`
	Time        json_types.ClockTime `json:"time"`
	StaffID     string               `json:"staffId,omitempty"`
	TherapistID string               `json:"therapistId,omitempty"`
	RoomID      string               `json:"roomId,omitempty"`
	Status      AppointmentStatus    `json:"status"`
}

func (a Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// AssignedStaffID старые записи хранят мастера в therapistId
func (a Appointment) AssignedStaffID() string {
	if a.StaffID != "" {
		return a.StaffID
	}
	return a.TherapistID
}
