package shift_lifecycle_service

import (
	"time"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

type Options struct {
	ReassignPolicy domain.ReassignPolicy
	Location       *time.Location
	Now            func() time.Time
}

// ShiftLifecycleService все мутации смен. Каждая операция получает снапшот явно
// и меняет его только после успешного ответа хранилища.
type ShiftLifecycleService struct {
	storePort out.StorePort
	logger    out.LoggerPort
	policy    domain.ReassignPolicy
	location  *time.Location
	now       func() time.Time
}

func NewShiftLifecycleService(storePort out.StorePort, logger out.LoggerPort, opts Options) *ShiftLifecycleService {
	policy := opts.ReassignPolicy
	if !policy.IsKnown() {
		policy = domain.ReassignPolicyPermissive
	}

	location := opts.Location
	if location == nil {
		location = time.UTC
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &ShiftLifecycleService{
		storePort: storePort,
		logger:    logger.WithModule("ShiftLifecycleService"),
		policy:    policy,
		location:  location,
		now:       now,
	}
}

func (s *ShiftLifecycleService) Policy() domain.ReassignPolicy {
	return s.policy
}

func requireSnapshot(snap *domain.Snapshot) error {
	if snap == nil {
		return domain.ErrSnapshotNotLoaded
	}
	return nil
}
