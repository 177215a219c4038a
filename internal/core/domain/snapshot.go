package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot копия данных в памяти, над которой считаются все производные.
// Любое изменение смен через методы ниже выдает новую версию, по версии кэшируются расчеты.
type Snapshot struct {
	Version      uuid.UUID     `json:"version"`
	LoadedAt     time.Time     `json:"loadedAt"`
	Staff        []StaffRecord `json:"staff"`
	Rooms        []Room        `json:"rooms"`
	Shifts       []Shift       `json:"shifts"`
	Appointments []Appointment `json:"appointments"`
	FetchErrors  []*FetchError `json:"-"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:      uuid.New(),
		LoadedAt:     time.Now(),
		Staff:        make([]StaffRecord, 0),
		Rooms:        make([]Room, 0),
		Shifts:       make([]Shift, 0),
		Appointments: make([]Appointment, 0),
	}
}

func (s *Snapshot) FindShift(id string) (Shift, bool) {
	index := s.shiftIndex(id)
	if index == -1 {
		return Shift{}, false
	}
	return s.Shifts[index], true
}

func (s *Snapshot) AppendShift(shift Shift) {
	s.Shifts = append(s.Shifts, shift)
	s.touch()
}

// ReplaceShift заменяет смену с тем же ID, если ее нет в снапшоте то добавляет
func (s *Snapshot) ReplaceShift(shift Shift) {
	index := s.shiftIndex(shift.ID)
	if index == -1 {
		s.AppendShift(shift)
		return
	}
	s.Shifts[index] = shift
	s.touch()
}

func (s *Snapshot) RemoveShift(id string) bool {
	index := s.shiftIndex(id)
	if index == -1 {
		return false
	}
	s.Shifts = append(s.Shifts[:index], s.Shifts[index+1:]...)
	s.touch()
	return true
}

// Clone копирует коллекции, чтобы расчеты не видели последующих мутаций
func (s *Snapshot) Clone() *Snapshot {
	clone := *s
	clone.Staff = append([]StaffRecord(nil), s.Staff...)
	clone.Rooms = append([]Room(nil), s.Rooms...)
	clone.Shifts = make([]Shift, len(s.Shifts))
	for i, shift := range s.Shifts {
		if shift.Hours != nil {
			hours := *shift.Hours
			shift.Hours = &hours
		}
		clone.Shifts[i] = shift
	}
	clone.Appointments = append([]Appointment(nil), s.Appointments...)
	clone.FetchErrors = append([]*FetchError(nil), s.FetchErrors...)
	return &clone
}

func (s *Snapshot) shiftIndex(id string) int {
	for i := range s.Shifts {
		if s.Shifts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) touch() {
	s.Version = uuid.New()
}
