package scheduling_service

import (
	"fmt"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

// ReasonFormatter строит текст причины конфликта
type ReasonFormatter func(conflict domain.Conflict) string

func DefaultConflictReason(conflict domain.Conflict) string {
	switch conflict.Kind {
	case domain.ConflictKindUnderstaffed:
		return fmt.Sprintf("Understaffed at %s on %s: %d appointments, %d staff on shift",
			conflict.Time, conflict.Date, conflict.Demand, conflict.Supply)
	case domain.ConflictKindRoomShortage:
		return fmt.Sprintf("Room shortage at %s on %s: %d appointments, %d rooms available",
			conflict.Time, conflict.Date, conflict.Demand, conflict.Supply)
	default:
		return fmt.Sprintf("Conflict at %s on %s", conflict.Time, conflict.Date)
	}
}

// Группа активных записей с одинаковым временем начала
type timeGroup struct {
	Time         json_types.ClockTime
	Appointments []domain.Appointment
}

// DetectConflicts ищет нехватку мастеров и кабинетов для каждой группы записей (день, время).
// Оба вида конфликта независимы и могут появиться для одной группы одновременно.
func DetectConflicts(days []json_types.Date, appointments []domain.Appointment, shifts []domain.Shift, rooms []domain.Room) []domain.Conflict {
	return detectConflicts(days, appointments, shifts, rooms, DefaultConflictReason)
}

func detectConflicts(days []json_types.Date, appointments []domain.Appointment, shifts []domain.Shift, rooms []domain.Room, format ReasonFormatter) []domain.Conflict {
	if format == nil {
		format = DefaultConflictReason
	}

	activeRoomCount := len(domain.ActiveRooms(rooms))
	conflicts := make([]domain.Conflict, 0)

	for _, day := range days {
		for _, group := range groupAppointmentsByTime(day, appointments) {
			demand := len(group.Appointments)

			staffCount := availableStaffCount(day, group.Time, shifts)
			if demand > staffCount {
				conflicts = append(conflicts, newConflict(day, group.Time, domain.ConflictKindUnderstaffed, demand, staffCount, format))
			}

			usedRoomCount := distinctRoomCount(group.Appointments)
			if demand > activeRoomCount {
				// Записей больше, чем вообще есть кабинетов
				conflicts = append(conflicts, newConflict(day, group.Time, domain.ConflictKindRoomShortage, demand, activeRoomCount, format))
			} else if usedRoomCount >= activeRoomCount && demand > usedRoomCount {
				// Все кабинеты уже заняты, а записей больше, чем занятых кабинетов
				conflicts = append(conflicts, newConflict(day, group.Time, domain.ConflictKindRoomShortage, demand, usedRoomCount, format))
			}
		}
	}

	return conflicts
}

func newConflict(day json_types.Date, t json_types.ClockTime, kind domain.ConflictKind, demand, supply int, format ReasonFormatter) domain.Conflict {
	conflict := domain.Conflict{
		Date:   day,
		Time:   t,
		Kind:   kind,
		Demand: demand,
		Supply: supply,
	}
	conflict.Reason = format(conflict)
	return conflict
}

// Группы по точному времени записи, отсортированные по времени
func groupAppointmentsByTime(day json_types.Date, appointments []domain.Appointment) []timeGroup {
	index := make(map[string]int)
	groups := make([]timeGroup, 0)

	for _, appointment := range appointments {
		if !isActiveOn(appointment, day) {
			continue
		}

		key := appointment.Time.String()
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, timeGroup{Time: appointment.Time})
		}
		groups[i].Appointments = append(groups[i].Appointments, appointment)
	}

	sortTimeGroups(groups)
	return groups
}

// Количество одобренных рабочих смен дня, часы которых покрывают время
func availableStaffCount(day json_types.Date, t json_types.ClockTime, shifts []domain.Shift) int {
	count := 0
	for _, shift := range shifts {
		if !shift.Date.Equal(day) || !shift.IsSchedulable() {
			continue
		}
		if shift.Hours.Contains(t) {
			count++
		}
	}
	return count
}

func distinctRoomCount(appointments []domain.Appointment) int {
	rooms := make(map[string]struct{})
	for _, appointment := range appointments {
		if appointment.RoomID != "" {
			rooms[appointment.RoomID] = struct{}{}
		}
	}
	return len(rooms)
}
