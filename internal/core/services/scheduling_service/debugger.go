package scheduling_service

import (
	"sync"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
)

type BoardDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func (d *BoardDebug) AddDebugInfo(info domain.DebugInfo) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}

func (d *BoardDebug) Data() []domain.DebugInfo {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.DebugInfo(nil), d.data...)
}

// measure замеряет шаг только если отладка включена
func (d *BoardDebug) measure(event string, step func() int) {
	if d == nil {
		step()
		return
	}
	info := domain.DebugInfo{Event: event}
	info.Start()
	count := step()
	info.Elapse(count)
	d.AddDebugInfo(info)
}
