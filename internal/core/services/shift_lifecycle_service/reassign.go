package shift_lifecycle_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

// Reassign переносит смену на другого сотрудника и/или дату, ID смены сохраняется.
func (s *ShiftLifecycleService) Reassign(ctx context.Context, snap *domain.Snapshot, id string, targetStaffID string, targetDate json_types.Date) (domain.Shift, error) {
	if err := s.requireShift(snap, id); err != nil {
		return domain.Shift{}, err
	}
	if targetStaffID == "" {
		return domain.Shift{}, &domain.ValidationError{Field: "staffId", Message: "target staff id is required"}
	}
	if targetDate.IsZero() {
		return domain.Shift{}, &domain.ValidationError{Field: "date", Message: "target date is required"}
	}

	shift, _ := snap.FindShift(id)

	if s.policy == domain.ReassignPolicyStrict {
		if err := s.checkReassignTarget(snap, shift, targetStaffID, targetDate); err != nil {
			s.logger.Warn("shifts.reassign.rejected", out.LogFields{
				"shiftId":       id,
				"targetStaffId": targetStaffID,
				"targetDate":    targetDate.String(),
				"error":         err.Error(),
			})
			return domain.Shift{}, err
		}
	}

	updated, err := s.UpdateShift(ctx, snap, id, domain.ShiftPatch{
		StaffID: &targetStaffID,
		Date:    &targetDate,
	})
	if err != nil {
		return domain.Shift{}, err
	}

	s.logger.Info("shifts.reassign.completed", out.LogFields{
		"shiftId":       id,
		"fromStaffId":   shift.StaffID,
		"fromDate":      shift.Date.String(),
		"targetStaffId": targetStaffID,
		"targetDate":    targetDate.String(),
		"policy":        s.policy,
	})
	return updated, nil
}

func (s *ShiftLifecycleService) checkReassignTarget(snap *domain.Snapshot, shift domain.Shift, targetStaffID string, targetDate json_types.Date) error {
	today := json_types.DateOf(s.now().In(s.location))
	if targetDate.Before(today) {
		return fmt.Errorf("%w: target date %s is in the past", domain.ErrReassignRejected, targetDate)
	}

	for _, other := range snap.Shifts {
		if other.ID == shift.ID || other.StaffID != targetStaffID || !other.Date.Equal(targetDate) {
			continue
		}
		if other.Status == domain.ShiftStatusRejected {
			continue
		}

		if other.ShiftType == shift.ShiftType {
			return fmt.Errorf("%w: staff %s already has a %s shift on %s",
				domain.ErrReassignRejected, targetStaffID, other.ShiftType, targetDate)
		}
		if shift.Hours != nil && other.Hours != nil && shift.Hours.Overlaps(*other.Hours) {
			return fmt.Errorf("%w: shift %s overlaps hours %s-%s of staff %s on %s",
				domain.ErrReassignRejected, shift.ID, other.Hours.Start, other.Hours.End, targetStaffID, targetDate)
		}
	}

	return nil
}
