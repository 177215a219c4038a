package mongodb

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Даты и время хранятся строками "2006-01-02" и "15:04", как их пишет консоль

type shiftHoursDocument struct {
	Start string `bson:"start"`
	End   string `bson:"end"`
}

type shiftDocument struct {
	ID                    string              `bson:"_id"`
	StaffID               string              `bson:"staff_id"`
	Date                  string              `bson:"date"`
	ShiftType             string              `bson:"shift_type"`
	Hours                 *shiftHoursDocument `bson:"hours,omitempty"`
	Status                string              `bson:"status"`
	ManagerApprovalStatus string              `bson:"manager_approval_status"`
	IsUpForSwap           bool                `bson:"is_up_for_swap"`
	Notes                 string              `bson:"notes,omitempty"`
}

type roomDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Capacity int    `bson:"capacity"`
	IsActive bool   `bson:"is_active"`
}

type staffDocument struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Role     string `bson:"role,omitempty"`
	IsActive bool   `bson:"is_active"`
}

type appointmentDocument struct {
	ID          string `bson:"_id"`
	Date        string `bson:"date"`
	Time        string `bson:"time"`
	StaffID     string `bson:"staff_id,omitempty"`
	TherapistID string `bson:"therapist_id,omitempty"`
	RoomID      string `bson:"room_id,omitempty"`
	Status      string `bson:"status"`
}

func newShiftDocument(shift domain.Shift) shiftDocument {
	doc := shiftDocument{
		ID:                    shift.ID,
		StaffID:               shift.StaffID,
		Date:                  shift.Date.String(),
		ShiftType:             string(shift.ShiftType),
		Status:                string(shift.Status),
		ManagerApprovalStatus: string(shift.ManagerApprovalStatus),
		IsUpForSwap:           shift.IsUpForSwap,
		Notes:                 shift.Notes,
	}
	if shift.Hours != nil {
		doc.Hours = newShiftHoursDocument(*shift.Hours)
	}
	return doc
}

func newShiftHoursDocument(hours domain.ShiftHours) *shiftHoursDocument {
	return &shiftHoursDocument{Start: hours.Start.String(), End: hours.End.String()}
}

func (d shiftDocument) toDomain() domain.Shift {
	shift := domain.Shift{
		ID:                    d.ID,
		StaffID:               d.StaffID,
		Date:                  parseDate(d.Date),
		ShiftType:             domain.ShiftType(d.ShiftType),
		Status:                domain.ShiftStatus(d.Status),
		ManagerApprovalStatus: domain.ManagerApprovalStatus(d.ManagerApprovalStatus),
		IsUpForSwap:           d.IsUpForSwap,
		Notes:                 d.Notes,
	}
	if d.Hours != nil {
		shift.Hours = &domain.ShiftHours{
			Start: parseClock(d.Hours.Start),
			End:   parseClock(d.Hours.End),
		}
	}
	return shift
}

func (d roomDocument) toDomain() domain.Room {
	return domain.Room{ID: d.ID, Name: d.Name, Capacity: d.Capacity, IsActive: d.IsActive}
}

func (d staffDocument) toDomain() domain.StaffRecord {
	return domain.StaffRecord{ID: d.ID, Name: d.Name, Role: d.Role, IsActive: d.IsActive}
}

func (d appointmentDocument) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:          d.ID,
		Date:        parseDate(d.Date),
		Time:        parseClock(d.Time),
		StaffID:     d.StaffID,
		TherapistID: d.TherapistID,
		RoomID:      d.RoomID,
		Status:      domain.AppointmentStatus(d.Status),
	}
}

// shiftPatchUpdate превращает частичное обновление в $set
func shiftPatchUpdate(patch domain.ShiftPatch) bson.M {
	set := bson.M{}
	if patch.StaffID != nil {
		set["staff_id"] = *patch.StaffID
	}
	if patch.Date != nil {
		set["date"] = patch.Date.String()
	}
	if patch.ShiftType != nil {
		set["shift_type"] = string(*patch.ShiftType)
	}
	if patch.Hours != nil {
		set["hours"] = newShiftHoursDocument(*patch.Hours)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.ManagerApprovalStatus != nil {
		set["manager_approval_status"] = string(*patch.ManagerApprovalStatus)
	}
	if patch.IsUpForSwap != nil {
		set["is_up_for_swap"] = *patch.IsUpForSwap
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	return bson.M{"$set": set}
}

// Невалидные значения становятся нулевыми, ядро отбрасывает такие записи само
func parseDate(value string) json_types.Date {
	date, err := json_types.ParseDate(value)
	if err != nil {
		return json_types.Date{}
	}
	return date
}

func parseClock(value string) json_types.ClockTime {
	clock, err := json_types.ParseClockTime(value)
	if err != nil {
		return json_types.ClockTime{}
	}
	return clock
}
