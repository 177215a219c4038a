package domain

import "time"

// DebugInfo тайминг одного шага расчета сетки, отдается при ?debug=true
type DebugInfo struct {
	Event     string    `json:"event"`
	Timing    int64     `json:"timingMicros"`
	Count     int       `json:"count"`
	StartTime time.Time `json:"-"`
}

func (d *DebugInfo) Start() {
	d.StartTime = time.Now()
}

// Elapse фиксирует время шага и число полученных элементов
func (d *DebugInfo) Elapse(count int) {
	d.Timing = time.Since(d.StartTime).Microseconds()
	d.Count = count
}
