package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

type boardsCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[out.BoardCacheKey, *domain.ScheduleBoard]
}

// Кэширование сеток расписания.
// Ключ содержит версию снапшота, поэтому после любой мутации старые записи просто не находятся
// и со временем вытесняются.

func (c *CacheAdapter) GetBoard(ctx context.Context, key out.BoardCacheKey) (*domain.ScheduleBoard, bool) {
	c.boardsCache.mu.RLock()
	defer c.boardsCache.mu.RUnlock()

	board, exists := c.boardsCache.cache.Get(key)
	if !exists {
		c.logger.Debug("cache.boards.get.miss", out.LogFields{
			"snapshotVersion": key.SnapshotVersion,
			"from":            key.From.String(),
			"to":              key.To.String(),
		})
		return nil, false
	}

	copied := *board
	return &copied, true
}

func (c *CacheAdapter) StoreBoard(ctx context.Context, key out.BoardCacheKey, board domain.ScheduleBoard) {
	c.boardsCache.mu.Lock()
	defer c.boardsCache.mu.Unlock()

	c.logger.Debug("cache.boards.store", out.LogFields{
		"snapshotVersion": key.SnapshotVersion,
		"from":            key.From.String(),
		"to":              key.To.String(),
		"slotsCount":      len(board.Slots),
		"conflictsCount":  len(board.Conflicts),
	})

	c.boardsCache.cache.Add(key, &board)
}

func (c *CacheAdapter) InvalidateBoards(ctx context.Context) {
	c.boardsCache.mu.Lock()
	defer c.boardsCache.mu.Unlock()

	c.boardsCache.cache.Purge()
}

func (c *CacheAdapter) BoardsLen() int {
	c.boardsCache.mu.RLock()
	defer c.boardsCache.mu.RUnlock()

	return c.boardsCache.cache.Len()
}
