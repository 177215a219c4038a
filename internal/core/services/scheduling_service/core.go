package scheduling_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"github.com/suchimauz/staff-roster-scheduler/internal/utils"
)

// SchedulingService обертка над чистыми расчетами: кэш сеток по версии снапшота и перевод причин конфликтов.
// cachePort и translator могут быть nil.
type SchedulingService struct {
	cachePort  out.CachePort
	translator out.TranslatorPort
	logger     out.LoggerPort
}

func NewSchedulingService(
	cachePort out.CachePort,
	translator out.TranslatorPort,
	logger out.LoggerPort,
) *SchedulingService {
	return &SchedulingService{
		cachePort:  cachePort,
		translator: translator,
		logger:     logger.WithModule("SchedulingService"),
	}
}

func (s *SchedulingService) Board(ctx context.Context, snap *domain.Snapshot, from, to json_types.Date, locale string, debug bool) (domain.ScheduleBoard, error) {
	if err := validateRange(from, to); err != nil {
		return domain.ScheduleBoard{}, err
	}

	key := out.BoardCacheKey{
		SnapshotVersion: snap.Version,
		From:            from,
		To:              to,
		Locale:          locale,
	}

	// С отладкой кэш не используем, иначе тайминги будут пустыми
	if s.cachePort != nil && !debug {
		if board, exists := s.cachePort.GetBoard(ctx, key); exists {
			s.logger.Debug("board.cache.hit", out.LogFields{
				"snapshotVersion": snap.Version,
				"from":            from.String(),
				"to":              to.String(),
			})
			cached := *board
			cached.InCache = true
			return cached, nil
		}
	}

	var boardDebug *BoardDebug
	if debug {
		boardDebug = &BoardDebug{}
	}

	board := BuildBoard(from, to, snap, s.reasonFormatter(locale), boardDebug)

	s.logger.Info("board.build.completed", out.LogFields{
		"snapshotVersion": snap.Version,
		"from":            from.String(),
		"to":              to.String(),
		"slots":           len(board.Slots),
		"conflicts":       len(board.Conflicts),
	})

	if s.cachePort != nil && !debug {
		s.cachePort.StoreBoard(ctx, key, board)
	}

	return board, nil
}

func (s *SchedulingService) InvalidateBoards(ctx context.Context) {
	if s.cachePort != nil {
		s.cachePort.InvalidateBoards(ctx)
	}
}

func (s *SchedulingService) reasonFormatter(locale string) ReasonFormatter {
	if s.translator == nil {
		return DefaultConflictReason
	}
	return func(conflict domain.Conflict) string {
		return s.translator.ConflictReason(locale, conflict)
	}
}

func validateRange(from, to json_types.Date) error {
	if from.IsZero() || to.IsZero() {
		return &domain.ValidationError{Field: "range", Message: "from and to are required"}
	}
	if to.Before(from) {
		return &domain.ValidationError{Field: "range", Message: "to must not be before from"}
	}
	if days := len(utils.DaysBetween(from, to)); days > utils.MaxRangeDays {
		return &domain.ValidationError{
			Field:   "range",
			Message: fmt.Sprintf("range of %d days exceeds the limit of %d", days, utils.MaxRangeDays),
		}
	}
	return nil
}
