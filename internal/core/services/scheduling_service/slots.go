package scheduling_service

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

// ComputeAvailableSlots возвращает свободные пары мастер+кабинет на каждый день диапазона.
//
// Кабинет считается свободным на всю смену, если ни одна неотмененная запись в этом кабинете
// не начинается внутри [hours.start, hours.end). Проверяется только время начала записи,
// а слот всегда отдается на начало смены, а не на реально свободный промежуток.
func ComputeAvailableSlots(days []json_types.Date, shifts []domain.Shift, rooms []domain.Room, appointments []domain.Appointment) []domain.AvailableSlot {
	activeRooms := domain.ActiveRooms(rooms)
	slots := make([]domain.AvailableSlot, 0)

	for _, day := range days {
		roomAppointments := roomAppointmentTimes(day, appointments)

		for _, shift := range shifts {
			if !shift.Date.Equal(day) || !shift.IsSchedulable() {
				continue
			}

			for _, room := range activeRooms {
				if isRoomOccupied(roomAppointments[room.ID], *shift.Hours) {
					continue
				}

				slots = append(slots, domain.AvailableSlot{
					Date:    day,
					StaffID: shift.StaffID,
					RoomID:  room.ID,
					Time:    shift.Hours.Start,
				})
			}
		}
	}

	return slots
}

// Время начала активных записей по кабинетам на один день
func roomAppointmentTimes(day json_types.Date, appointments []domain.Appointment) map[string][]json_types.ClockTime {
	result := make(map[string][]json_types.ClockTime)
	for _, appointment := range appointments {
		if !isActiveOn(appointment, day) || appointment.RoomID == "" {
			continue
		}
		result[appointment.RoomID] = append(result[appointment.RoomID], appointment.Time)
	}
	return result
}

func isRoomOccupied(times []json_types.ClockTime, hours domain.ShiftHours) bool {
	for _, t := range times {
		if hours.Contains(t) {
			return true
		}
	}
	return false
}

// Запись учитывается в расчетах, если она не отменена и у нее валидное время
func isActiveOn(appointment domain.Appointment, day json_types.Date) bool {
	return !appointment.IsCancelled() && appointment.Time.Valid && appointment.Date.Equal(day)
}
