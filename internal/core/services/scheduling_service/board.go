package scheduling_service

import (
	"slices"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"github.com/suchimauz/staff-roster-scheduler/internal/utils"
)

// BuildBoard собирает слоты, конфликты и ячейки загрузки за диапазон дат включительно.
// Снапшот только читается.
func BuildBoard(from, to json_types.Date, snap *domain.Snapshot, format ReasonFormatter, debug *BoardDebug) domain.ScheduleBoard {
	days := utils.DaysBetween(from, to)

	board := domain.ScheduleBoard{
		From:            from,
		To:              to,
		SnapshotVersion: snap.Version,
	}

	debug.measure("board.slots.compute", func() int {
		board.Slots = ComputeAvailableSlots(days, snap.Shifts, snap.Rooms, snap.Appointments)
		SortSlots(board.Slots)
		return len(board.Slots)
	})

	debug.measure("board.conflicts.detect", func() int {
		board.Conflicts = detectConflicts(days, snap.Appointments, snap.Shifts, snap.Rooms, format)
		SortConflicts(board.Conflicts)
		return len(board.Conflicts)
	})

	debug.measure("board.cells.classify", func() int {
		board.Cells = buildCells(days, snap.Appointments, board.Conflicts)
		return len(board.Cells)
	})

	board.Debug = debug.Data()
	return board
}

func buildCells(days []json_types.Date, appointments []domain.Appointment, conflicts []domain.Conflict) []domain.ScheduleCell {
	conflictKeys := make(map[string]struct{}, len(conflicts))
	for _, conflict := range conflicts {
		conflictKeys[cellKey(conflict.Date, conflict.Time)] = struct{}{}
	}

	cells := make([]domain.ScheduleCell, 0)
	for _, day := range days {
		for _, group := range groupAppointmentsByTime(day, appointments) {
			_, hasConflict := conflictKeys[cellKey(day, group.Time)]
			count := len(group.Appointments)

			cells = append(cells, domain.ScheduleCell{
				Date:             day,
				Time:             group.Time,
				AppointmentCount: count,
				StaffIDs:         assignedStaff(group.Appointments),
				HasConflict:      hasConflict,
				Busyness:         ClassifyBusyness(count, hasConflict),
			})
		}
	}

	return cells
}

func cellKey(day json_types.Date, t json_types.ClockTime) string {
	return day.String() + "T" + t.String()
}

// assignedStaff мастера ячейки без повторов, записи без мастера не учитываются
func assignedStaff(appointments []domain.Appointment) []string {
	var staffIDs []string
	for _, appointment := range appointments {
		staffID := appointment.AssignedStaffID()
		if staffID != "" && !slices.Contains(staffIDs, staffID) {
			staffIDs = append(staffIDs, staffID)
		}
	}
	slices.Sort(staffIDs)
	return staffIDs
}
