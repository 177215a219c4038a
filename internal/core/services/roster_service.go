package services

import (
	"context"
	"sync"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/in"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services/scheduling_service"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services/shift_lifecycle_service"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services/snapshot_service"
)

var _ in.RosterUseCase = (*RosterService)(nil)

// RosterService владеет снапшотом и раздает его HTTP и AMQP адаптерам.
// Чтения идут под RLock, мутации и Reconcile под Lock.
// После каждой успешной мутации снапшот перечитывается целиком.
type RosterService struct {
	mu       sync.RWMutex
	snapshot *domain.Snapshot

	snapshotService   *snapshot_service.SnapshotService
	schedulingService *scheduling_service.SchedulingService
	lifecycleService  *shift_lifecycle_service.ShiftLifecycleService
	logger            out.LoggerPort
}

func NewRosterService(
	snapshotService *snapshot_service.SnapshotService,
	schedulingService *scheduling_service.SchedulingService,
	lifecycleService *shift_lifecycle_service.ShiftLifecycleService,
	logger out.LoggerPort,
) *RosterService {
	return &RosterService{
		snapshotService:   snapshotService,
		schedulingService: schedulingService,
		lifecycleService:  lifecycleService,
		logger:            logger.WithModule("RosterService"),
	}
}

// Reconcile перечитывает все ресурсы и заменяет снапшот.
// При отмене контекста старый снапшот остается.
func (s *RosterService) Reconcile(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reconcileLocked(ctx); err != nil {
		return nil, err
	}
	return s.snapshot.Clone(), nil
}

// Snapshot возвращает копию текущего снапшота, при первом обращении загружает его
func (s *RosterService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := s.read(ctx, func(current *domain.Snapshot) error {
		snap = current.Clone()
		return nil
	})
	return snap, err
}

func (s *RosterService) Board(ctx context.Context, query in.BoardQuery) (domain.ScheduleBoard, error) {
	var board domain.ScheduleBoard
	err := s.read(ctx, func(snap *domain.Snapshot) error {
		var err error
		board, err = s.schedulingService.Board(ctx, snap, query.From, query.To, query.Locale, query.Debug)
		return err
	})
	return board, err
}

func (s *RosterService) AvailableSlots(ctx context.Context, from, to json_types.Date) ([]domain.AvailableSlot, error) {
	board, err := s.Board(ctx, in.BoardQuery{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return board.Slots, nil
}

func (s *RosterService) Conflicts(ctx context.Context, query in.BoardQuery) ([]domain.Conflict, error) {
	query.Debug = false
	board, err := s.Board(ctx, query)
	if err != nil {
		return nil, err
	}
	return board.Conflicts, nil
}

func (s *RosterService) PendingRequests(ctx context.Context) ([]domain.Shift, error) {
	var pending []domain.Shift
	err := s.read(ctx, func(snap *domain.Snapshot) error {
		pending = s.lifecycleService.PendingRequests(snap)
		return nil
	})
	return pending, err
}

func (s *RosterService) CreateShift(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	var created domain.Shift
	err := s.write(ctx, func(snap *domain.Snapshot) error {
		var err error
		created, err = s.lifecycleService.CreateShift(ctx, snap, shift)
		return err
	})
	return created, err
}

func (s *RosterService) UpdateShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, error) {
	var updated domain.Shift
	err := s.write(ctx, func(snap *domain.Snapshot) error {
		var err error
		updated, err = s.lifecycleService.UpdateShift(ctx, snap, id, patch)
		return err
	})
	return updated, err
}

func (s *RosterService) DeleteShift(ctx context.Context, id string) error {
	return s.write(ctx, func(snap *domain.Snapshot) error {
		return s.lifecycleService.DeleteShift(ctx, snap, id)
	})
}

func (s *RosterService) BulkCreateFixedShifts(ctx context.Context, req domain.BulkShiftRequest) (domain.BulkCreateResult, error) {
	var result domain.BulkCreateResult
	err := s.write(ctx, func(snap *domain.Snapshot) error {
		var err error
		result, err = s.lifecycleService.BulkCreateFixedShifts(ctx, snap, req)
		return err
	})
	return result, err
}

func (s *RosterService) ApproveOrReject(ctx context.Context, id string, approved bool) (domain.Shift, error) {
	var decided domain.Shift
	err := s.write(ctx, func(snap *domain.Snapshot) error {
		var err error
		decided, err = s.lifecycleService.ApproveOrReject(ctx, snap, id, approved)
		return err
	})
	return decided, err
}

func (s *RosterService) MarkForSwap(ctx context.Context, id string, upForSwap bool) (domain.Shift, error) {
	var marked domain.Shift
	err := s.write(ctx, func(snap *domain.Snapshot) error {
		var err error
		marked, err = s.lifecycleService.MarkForSwap(ctx, snap, id, upForSwap)
		return err
	})
	return marked, err
}

func (s *RosterService) Reassign(ctx context.Context, id string, targetStaffID string, targetDate json_types.Date) (domain.Shift, error) {
	var moved domain.Shift
	err := s.write(ctx, func(snap *domain.Snapshot) error {
		var err error
		moved, err = s.lifecycleService.Reassign(ctx, snap, id, targetStaffID, targetDate)
		return err
	})
	return moved, err
}

// read выполняет fn над текущим снапшотом. Если снапшота еще нет, сначала загружает его.
func (s *RosterService) read(ctx context.Context, fn func(snap *domain.Snapshot) error) error {
	s.mu.RLock()
	if s.snapshot != nil {
		defer s.mu.RUnlock()
		return fn(s.snapshot)
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		if err := s.reconcileLocked(ctx); err != nil {
			return err
		}
	}
	return fn(s.snapshot)
}

// write выполняет мутацию над снапшотом и затем вызывает Reconcile.
// Ошибка перечитывания не отменяет мутацию: остается локально измененный снапшот.
func (s *RosterService) write(ctx context.Context, fn func(snap *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		if err := s.reconcileLocked(ctx); err != nil {
			return err
		}
	}
	if err := fn(s.snapshot); err != nil {
		return err
	}

	if err := s.reconcileLocked(ctx); err != nil {
		s.logger.Warn("snapshot.refresh_after_mutation.failed", out.LogFields{
			"version": s.snapshot.Version,
			"error":   err.Error(),
		})
	}
	return nil
}

// reconcileLocked вызывается под mu.Lock
func (s *RosterService) reconcileLocked(ctx context.Context) error {
	snap, err := s.snapshotService.Load(ctx)
	if err != nil {
		s.logger.Error("snapshot.reconcile.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	previous := s.snapshot
	s.snapshot = snap
	s.schedulingService.InvalidateBoards(ctx)

	fields := out.LogFields{
		"version": snap.Version,
		"failed":  len(snap.FetchErrors),
	}
	if previous != nil {
		fields["previousVersion"] = previous.Version
	}
	s.logger.Info("snapshot.reconcile.completed", fields)

	return nil
}
