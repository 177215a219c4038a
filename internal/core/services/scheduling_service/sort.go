package scheduling_service

import (
	"cmp"
	"slices"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
)

func sortTimeGroups(groups []timeGroup) {
	slices.SortStableFunc(groups, func(a, b timeGroup) int {
		return cmp.Compare(a.Time.Minutes, b.Time.Minutes)
	})
}

// SortSlots порядок для ответа: дата, время, мастер, кабинет
func SortSlots(slots []domain.AvailableSlot) {
	slices.SortStableFunc(slots, func(a, b domain.AvailableSlot) int {
		return cmp.Or(
			a.Date.Date.Compare(b.Date.Date),
			cmp.Compare(a.Time.Minutes, b.Time.Minutes),
			cmp.Compare(a.StaffID, b.StaffID),
			cmp.Compare(a.RoomID, b.RoomID),
		)
	})
}

func SortConflicts(conflicts []domain.Conflict) {
	slices.SortStableFunc(conflicts, func(a, b domain.Conflict) int {
		return cmp.Or(
			a.Date.Date.Compare(b.Date.Date),
			cmp.Compare(a.Time.Minutes, b.Time.Minutes),
			cmp.Compare(a.Kind, b.Kind),
		)
	})
}
