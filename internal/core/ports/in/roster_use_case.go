package in

import (
	"context"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

type BoardQuery struct {
	From   json_types.Date
	To     json_types.Date
	Locale string
	Debug  bool
}

type RosterUseCase interface {
	// Снапшот
	Reconcile(ctx context.Context) (*domain.Snapshot, error)
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// Расчеты
	Board(ctx context.Context, query BoardQuery) (domain.ScheduleBoard, error)
	AvailableSlots(ctx context.Context, from, to json_types.Date) ([]domain.AvailableSlot, error)
	Conflicts(ctx context.Context, query BoardQuery) ([]domain.Conflict, error)
	PendingRequests(ctx context.Context) ([]domain.Shift, error)

	// Жизненный цикл смен
	CreateShift(ctx context.Context, shift domain.Shift) (domain.Shift, error)
	UpdateShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, error)
	DeleteShift(ctx context.Context, id string) error
	BulkCreateFixedShifts(ctx context.Context, req domain.BulkShiftRequest) (domain.BulkCreateResult, error)
	ApproveOrReject(ctx context.Context, id string, approved bool) (domain.Shift, error)
	MarkForSwap(ctx context.Context, id string, upForSwap bool) (domain.Shift, error)
	Reassign(ctx context.Context, id string, targetStaffID string, targetDate json_types.Date) (domain.Shift, error)
}
