package snapshot_service

import (
	"context"
	"sync"
	"time"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"golang.org/x/sync/errgroup"
)

type SnapshotService struct {
	storePort out.StorePort
	logger    out.LoggerPort
}

func NewSnapshotService(storePort out.StorePort, logger out.LoggerPort) *SnapshotService {
	return &SnapshotService{
		storePort: storePort,
		logger:    logger.WithModule("SnapshotService"),
	}
}

// Load загружает все четыре ресурса параллельно.
// Ошибка одного ресурса логируется и дает пустую коллекцию, загрузка целиком не падает.
// Ошибка возвращается только при отмене контекста.
func (s *SnapshotService) Load(ctx context.Context) (*domain.Snapshot, error) {
	startedAt := time.Now()
	snap := domain.NewSnapshot()

	var mu sync.Mutex
	var g errgroup.Group

	g.Go(func() error {
		snap.Staff = fetch(ctx, s, &mu, snap, domain.ResourceStaff, s.storePort.ListStaff)
		return nil
	})
	g.Go(func() error {
		snap.Rooms = fetch(ctx, s, &mu, snap, domain.ResourceRooms, s.storePort.ListRooms)
		return nil
	})
	g.Go(func() error {
		snap.Shifts = fetch(ctx, s, &mu, snap, domain.ResourceShifts, s.storePort.ListShifts)
		return nil
	})
	g.Go(func() error {
		snap.Appointments = fetch(ctx, s, &mu, snap, domain.ResourceAppointments, s.storePort.ListAppointments)
		return nil
	})

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Warn("snapshot.load.cancelled", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	snap.LoadedAt = time.Now()

	s.logger.Info("snapshot.load.completed", out.LogFields{
		"version":      snap.Version,
		"staff":        len(snap.Staff),
		"rooms":        len(snap.Rooms),
		"shifts":       len(snap.Shifts),
		"appointments": len(snap.Appointments),
		"failed":       len(snap.FetchErrors),
		"elapsedMs":    time.Since(startedAt).Milliseconds(),
	})

	return snap, nil
}

func fetch[T any](
	ctx context.Context,
	s *SnapshotService,
	mu *sync.Mutex,
	snap *domain.Snapshot,
	resource domain.ResourceType,
	list func(context.Context) ([]T, error),
) []T {
	items, err := list(ctx)
	if err != nil {
		fetchErr := &domain.FetchError{Resource: resource, Err: err}
		s.logger.Error("snapshot.fetch_failed", out.LogFields{
			"resource": resource,
			"error":    err.Error(),
		})

		mu.Lock()
		snap.FetchErrors = append(snap.FetchErrors, fetchErr)
		mu.Unlock()

		return make([]T, 0)
	}

	if items == nil {
		return make([]T, 0)
	}
	return items
}
