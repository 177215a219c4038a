package shift_lifecycle_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
)

// PendingRequests очередь заявок для менеджера в порядке снапшота
func (s *ShiftLifecycleService) PendingRequests(snap *domain.Snapshot) []domain.Shift {
	pending := make([]domain.Shift, 0)
	if snap == nil {
		return pending
	}

	for _, shift := range snap.Shifts {
		if shift.NeedsAttention() {
			pending = append(pending, shift)
		}
	}
	return pending
}

func (s *ShiftLifecycleService) ApproveOrReject(ctx context.Context, snap *domain.Snapshot, id string, approved bool) (domain.Shift, error) {
	if err := s.requireShift(snap, id); err != nil {
		return domain.Shift{}, err
	}
	return s.UpdateShift(ctx, snap, id, domain.DecisionPatch(approved))
}

func (s *ShiftLifecycleService) MarkForSwap(ctx context.Context, snap *domain.Snapshot, id string, upForSwap bool) (domain.Shift, error) {
	if err := s.requireShift(snap, id); err != nil {
		return domain.Shift{}, err
	}
	return s.UpdateShift(ctx, snap, id, domain.ShiftPatch{IsUpForSwap: &upForSwap})
}

func (s *ShiftLifecycleService) requireShift(snap *domain.Snapshot, id string) error {
	if err := requireSnapshot(snap); err != nil {
		return err
	}
	if _, ok := snap.FindShift(id); !ok {
		return fmt.Errorf("shift %s: %w", id, domain.ErrShiftNotFound)
	}
	return nil
}
