package snapshot_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/logger"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/memory"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

func seededStore() *memory.MemoryStoreAdapter {
	store := memory.NewMemoryStoreAdapter(logger.NewNopLogger())
	day := json_types.NewDate(2025, time.March, 3)
	store.Seed(
		[]domain.StaffRecord{{ID: "staff-a", Name: "Anna", IsActive: true}},
		[]domain.Room{{ID: "r1", Name: "Room 1", IsActive: true}},
		[]domain.Shift{{ID: "s1", StaffID: "staff-a", Date: day, ShiftType: domain.ShiftTypeMorning}},
		[]domain.Appointment{{ID: "a1", Date: day, Time: json_types.MustClockTime("09:00"), RoomID: "r1"}},
	)
	return store
}

func TestSnapshotService_LoadAll(t *testing.T) {
	service := NewSnapshotService(seededStore(), logger.NewNopLogger())

	snap, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Staff, 1)
	assert.Len(t, snap.Rooms, 1)
	assert.Len(t, snap.Shifts, 1)
	assert.Len(t, snap.Appointments, 1)
	assert.Empty(t, snap.FetchErrors)
	assert.NotEqual(t, uuid.Nil, snap.Version)
}

func TestSnapshotService_FailSoftPerResource(t *testing.T) {
	store := seededStore()
	boom := errors.New("connection reset")
	store.FailOn(memory.OpListRooms, func(domain.Shift) error { return boom })
	store.FailOn(memory.OpListAppointments, func(domain.Shift) error { return boom })

	service := NewSnapshotService(store, logger.NewNopLogger())

	snap, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Staff, 1)
	assert.Len(t, snap.Shifts, 1)
	assert.NotNil(t, snap.Rooms)
	assert.Empty(t, snap.Rooms)
	assert.NotNil(t, snap.Appointments)
	assert.Empty(t, snap.Appointments)

	require.Len(t, snap.FetchErrors, 2)
	resources := []domain.ResourceType{snap.FetchErrors[0].Resource, snap.FetchErrors[1].Resource}
	assert.ElementsMatch(t, []domain.ResourceType{domain.ResourceRooms, domain.ResourceAppointments}, resources)
	assert.ErrorIs(t, snap.FetchErrors[0], boom)
}

func TestSnapshotService_NewVersionOnEachLoad(t *testing.T) {
	service := NewSnapshotService(seededStore(), logger.NewNopLogger())

	first, err := service.Load(context.Background())
	require.NoError(t, err)
	second, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Version, second.Version)
}

func TestSnapshotService_CancelledContext(t *testing.T) {
	service := NewSnapshotService(seededStore(), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
