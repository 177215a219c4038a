package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

var _ out.CachePort = (*CacheAdapter)(nil)

type CacheAdapter struct {
	boardsCache *boardsCache
	logger      out.LoggerPort
}

// NewCacheAdapter при выключенном кэше возвращает nil, сервисы работают без кэша
func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruBoardsCache, err := lru.New[out.BoardCacheKey, *domain.ScheduleBoard](cfg.Cache.BoardsSize)
	if err != nil {
		logger.Error("cache.boards.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.BoardsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		boardsCache: &boardsCache{cache: lruBoardsCache},
		logger:      logger.WithModule("CacheAdapter"),
	}, nil
}
