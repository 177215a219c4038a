package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

type BoardCacheKey struct {
	SnapshotVersion uuid.UUID
	From            json_types.Date
	To              json_types.Date
	Locale          string
}

type CachePort interface {
	// Кэширование рассчитанной сетки по версии снапшота
	GetBoard(ctx context.Context, key BoardCacheKey) (*domain.ScheduleBoard, bool)
	StoreBoard(ctx context.Context, key BoardCacheKey, board domain.ScheduleBoard)
	InvalidateBoards(ctx context.Context)
}
