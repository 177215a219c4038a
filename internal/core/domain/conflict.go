package domain

import (
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

type ConflictKind string

const (
	ConflictKindUnderstaffed ConflictKind = "understaffed"
	ConflictKindRoomShortage ConflictKind = "room_shortage"
)

// Conflict спрос (записи) превышает предложение (мастера или кабинеты) в конкретное время.
// Demand количество записей, Supply доступные мастера или кабинеты.
type Conflict struct {
	Date   json_types.Date      `json:"date"`
	Time   json_types.ClockTime `json:"time"`
	Kind   ConflictKind         `json:"kind"`
	Demand int                  `json:"demand"`
	Supply int                  `json:"supply"`
	Reason string               `json:"reason"`
}
