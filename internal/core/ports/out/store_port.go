package out

import (
	"context"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
)

// StorePort удаленное хранилище консоли. Транспорт не важен: REST или MongoDB.
type StorePort interface {
	// Чтение снапшота
	ListShifts(ctx context.Context) ([]domain.Shift, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	ListStaff(ctx context.Context) ([]domain.StaffRecord, error)

	// Мутации смен
	CreateShift(ctx context.Context, shift domain.Shift) (domain.Shift, error)
	UpdateShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, error)
	DeleteShift(ctx context.Context, id string) error
}
