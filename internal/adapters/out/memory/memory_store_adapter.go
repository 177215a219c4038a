package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

type Operation string

const (
	OpListShifts       Operation = "listShifts"
	OpListRooms        Operation = "listRooms"
	OpListAppointments Operation = "listAppointments"
	OpListStaff        Operation = "listStaff"
	OpCreateShift      Operation = "createShift"
	OpUpdateShift      Operation = "updateShift"
	OpDeleteShift      Operation = "deleteShift"
)

// MemoryStoreAdapter хранилище в памяти для локального запуска и тестов.
// Через FailOn можно заставить операцию вернуть ошибку.
type MemoryStoreAdapter struct {
	mu           sync.RWMutex
	shifts       []domain.Shift
	rooms        []domain.Room
	appointments []domain.Appointment
	staff        []domain.StaffRecord
	failures     map[Operation]func(shift domain.Shift) error
	calls        map[Operation]int
	logger       out.LoggerPort
}

func NewMemoryStoreAdapter(logger out.LoggerPort) *MemoryStoreAdapter {
	return &MemoryStoreAdapter{
		failures: make(map[Operation]func(shift domain.Shift) error),
		calls:    make(map[Operation]int),
		logger:   logger.WithModule("MemoryStoreAdapter"),
	}
}

func (m *MemoryStoreAdapter) Seed(staff []domain.StaffRecord, rooms []domain.Room, shifts []domain.Shift, appointments []domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.staff = append([]domain.StaffRecord(nil), staff...)
	m.rooms = append([]domain.Room(nil), rooms...)
	m.shifts = append([]domain.Shift(nil), shifts...)
	m.appointments = append([]domain.Appointment(nil), appointments...)
}

func (m *MemoryStoreAdapter) SetAppointments(appointments []domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = append([]domain.Appointment(nil), appointments...)
}

// FailOn операция op будет падать, пока check возвращает ошибку. nil снимает сбой.
func (m *MemoryStoreAdapter) FailOn(op Operation, check func(shift domain.Shift) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if check == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = check
}

func (m *MemoryStoreAdapter) Calls(op Operation) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

func (m *MemoryStoreAdapter) Shifts() []domain.Shift {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Shift(nil), m.shifts...)
}

func (m *MemoryStoreAdapter) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpListShifts, domain.Shift{}); err != nil {
		return nil, err
	}
	return append([]domain.Shift(nil), m.shifts...), nil
}

func (m *MemoryStoreAdapter) ListRooms(ctx context.Context) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpListRooms, domain.Shift{}); err != nil {
		return nil, err
	}
	return append([]domain.Room(nil), m.rooms...), nil
}

func (m *MemoryStoreAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpListAppointments, domain.Shift{}); err != nil {
		return nil, err
	}
	return append([]domain.Appointment(nil), m.appointments...), nil
}

func (m *MemoryStoreAdapter) ListStaff(ctx context.Context) ([]domain.StaffRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpListStaff, domain.Shift{}); err != nil {
		return nil, err
	}
	return append([]domain.StaffRecord(nil), m.staff...), nil
}

func (m *MemoryStoreAdapter) CreateShift(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	if err := ctx.Err(); err != nil {
		return domain.Shift{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpCreateShift, shift); err != nil {
		return domain.Shift{}, err
	}

	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	m.shifts = append(m.shifts, shift)

	m.logger.Debug("memory.shift.created", out.LogFields{
		"shiftId": shift.ID,
	})
	return shift, nil
}

func (m *MemoryStoreAdapter) UpdateShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, error) {
	if err := ctx.Err(); err != nil {
		return domain.Shift{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, shift := range m.shifts {
		if shift.ID != id {
			continue
		}
		if err := m.check(OpUpdateShift, shift); err != nil {
			return domain.Shift{}, err
		}
		m.shifts[i] = patch.Apply(shift)
		return m.shifts[i], nil
	}

	m.calls[OpUpdateShift]++
	return domain.Shift{}, fmt.Errorf("shift %s: %w", id, domain.ErrShiftNotFound)
}

func (m *MemoryStoreAdapter) DeleteShift(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, shift := range m.shifts {
		if shift.ID != id {
			continue
		}
		if err := m.check(OpDeleteShift, shift); err != nil {
			return err
		}
		m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
		return nil
	}

	m.calls[OpDeleteShift]++
	return fmt.Errorf("shift %s: %w", id, domain.ErrShiftNotFound)
}

// check вызывается под mu
func (m *MemoryStoreAdapter) check(op Operation, shift domain.Shift) error {
	m.calls[op]++
	if fail, ok := m.failures[op]; ok {
		return fail(shift)
	}
	return nil
}
