package scheduling_service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
)

var (
	day1 = json_types.NewDate(2025, time.March, 3)
	day2 = json_types.NewDate(2025, time.March, 4)
)

func hours(start, end string) *domain.ShiftHours {
	h := domain.NewShiftHours(start, end)
	return &h
}

func approvedShift(id, staffID string, date json_types.Date, start, end string) domain.Shift {
	return domain.Shift{
		ID:                    id,
		StaffID:               staffID,
		Date:                  date,
		ShiftType:             domain.ShiftTypeCustom,
		Hours:                 hours(start, end),
		Status:                domain.ShiftStatusApproved,
		ManagerApprovalStatus: domain.ManagerApprovalApproved,
	}
}

func appointment(id string, date json_types.Date, at, roomID string) domain.Appointment {
	return domain.Appointment{
		ID:     id,
		Date:   date,
		Time:   json_types.MustClockTime(at),
		RoomID: roomID,
		Status: domain.AppointmentStatusUpcoming,
	}
}

func countKind(conflicts []domain.Conflict, kind domain.ConflictKind) int {
	count := 0
	for _, conflict := range conflicts {
		if conflict.Kind == kind {
			count++
		}
	}
	return count
}

func TestComputeAvailableSlots_OneSlotPerActiveRoom(t *testing.T) {
	shifts := []domain.Shift{approvedShift("s1", "staff-a", day1, "08:00", "12:00")}
	rooms := []domain.Room{
		{ID: "r1", IsActive: true},
		{ID: "r2", IsActive: true},
		{ID: "r3", IsActive: false},
	}

	slots := ComputeAvailableSlots([]json_types.Date{day1}, shifts, rooms, nil)

	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.Equal(t, day1, slot.Date)
		assert.Equal(t, "staff-a", slot.StaffID)
		assert.Equal(t, "08:00", slot.Time.String())
	}
	assert.ElementsMatch(t, []string{"r1", "r2"}, []string{slots[0].RoomID, slots[1].RoomID})
}

func TestComputeAvailableSlots_RoomBusyWhenAppointmentStartsInsideShift(t *testing.T) {
	shifts := []domain.Shift{approvedShift("s1", "staff-a", day1, "08:00", "12:00")}
	rooms := []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}}

	tests := []struct {
		name      string
		appts     []domain.Appointment
		wantRooms []string
	}{
		{
			name:      "appointment inside window blocks room",
			appts:     []domain.Appointment{appointment("a1", day1, "09:30", "r1")},
			wantRooms: []string{"r2"},
		},
		{
			name:      "appointment at shift start blocks room",
			appts:     []domain.Appointment{appointment("a1", day1, "08:00", "r1")},
			wantRooms: []string{"r2"},
		},
		{
			name:      "appointment at shift end does not block",
			appts:     []domain.Appointment{appointment("a1", day1, "12:00", "r1")},
			wantRooms: []string{"r1", "r2"},
		},
		{
			name: "cancelled appointment ignored",
			appts: []domain.Appointment{func() domain.Appointment {
				a := appointment("a1", day1, "09:00", "r1")
				a.Status = domain.AppointmentStatusCancelled
				return a
			}()},
			wantRooms: []string{"r1", "r2"},
		},
		{
			name:      "appointment on another day ignored",
			appts:     []domain.Appointment{appointment("a1", day2, "09:00", "r1")},
			wantRooms: []string{"r1", "r2"},
		},
		{
			name:      "appointment without room ignored",
			appts:     []domain.Appointment{appointment("a1", day1, "09:00", "")},
			wantRooms: []string{"r1", "r2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ComputeAvailableSlots([]json_types.Date{day1}, shifts, rooms, tt.appts)

			rooms := make([]string, 0, len(slots))
			for _, slot := range slots {
				rooms = append(rooms, slot.RoomID)
			}
			assert.ElementsMatch(t, tt.wantRooms, rooms)
		})
	}
}

func TestComputeAvailableSlots_SkipsNonSchedulableShifts(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}}

	pending := approvedShift("pending", "a", day1, "08:00", "12:00")
	pending.Status = domain.ShiftStatusPending

	leave := approvedShift("leave", "b", day1, "08:00", "12:00")
	leave.ShiftType = domain.ShiftTypeLeave

	noHours := approvedShift("no-hours", "c", day1, "08:00", "12:00")
	noHours.Hours = nil

	inverted := approvedShift("inverted", "d", day1, "12:00", "08:00")

	invalid := approvedShift("invalid", "e", day1, "08:00", "12:00")
	invalid.Hours = &domain.ShiftHours{Start: json_types.MustClockTime("08:00")}

	otherDay := approvedShift("other-day", "f", day2, "08:00", "12:00")

	shifts := []domain.Shift{pending, leave, noHours, inverted, invalid, otherDay}

	slots := ComputeAvailableSlots([]json_types.Date{day1}, shifts, rooms, nil)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_Property(t *testing.T) {
	shifts := []domain.Shift{
		approvedShift("s1", "a", day1, "08:00", "12:00"),
		approvedShift("s2", "b", day1, "13:00", "17:00"),
		approvedShift("s3", "c", day2, "10:00", "14:00"),
	}
	rooms := []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}}
	appts := []domain.Appointment{
		appointment("a1", day1, "14:00", "r1"),
		appointment("a2", day2, "10:30", "r2"),
	}

	slots := ComputeAvailableSlots([]json_types.Date{day1, day2}, shifts, rooms, appts)

	type key struct{ date, staff, room, time string }
	got := make(map[key]bool)
	for _, slot := range slots {
		got[key{slot.Date.String(), slot.StaffID, slot.RoomID, slot.Time.String()}] = true
	}

	for _, shift := range shifts {
		for _, room := range rooms {
			occupied := false
			for _, a := range appts {
				if a.Date.Equal(shift.Date) && a.RoomID == room.ID && shift.Hours.Contains(a.Time) {
					occupied = true
				}
			}
			k := key{shift.Date.String(), shift.StaffID, room.ID, shift.Hours.Start.String()}
			assert.Equal(t, !occupied, got[k], "shift %s room %s", shift.ID, room.ID)
		}
	}
}

func TestDetectConflicts_RoomShortageScenario(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}}
	shifts := []domain.Shift{
		approvedShift("s1", "a", day1, "09:00", "17:00"),
		approvedShift("s2", "b", day1, "09:00", "17:00"),
	}
	appts := []domain.Appointment{
		appointment("a1", day1, "10:00", "r1"),
		appointment("a2", day1, "10:00", "r1"),
		appointment("a3", day1, "10:00", "r1"),
	}

	conflicts := DetectConflicts([]json_types.Date{day1}, appts, shifts, rooms)

	require.Equal(t, 1, countKind(conflicts, domain.ConflictKindRoomShortage))
	for _, conflict := range conflicts {
		assert.Equal(t, day1, conflict.Date)
		assert.Equal(t, "10:00", conflict.Time.String())
		assert.NotEmpty(t, conflict.Reason)
	}
	// 3 записи на 2 смены: нехватка мастеров фиксируется независимо
	assert.Equal(t, 1, countKind(conflicts, domain.ConflictKindUnderstaffed))
}

func TestDetectConflicts_Understaffed(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}, {ID: "r3", IsActive: true}}

	tests := []struct {
		name   string
		shifts []domain.Shift
		appts  []domain.Appointment
		want   int
	}{
		{
			name:   "enough staff",
			shifts: []domain.Shift{approvedShift("s1", "a", day1, "09:00", "12:00"), approvedShift("s2", "b", day1, "09:00", "12:00")},
			appts:  []domain.Appointment{appointment("a1", day1, "10:00", "r1"), appointment("a2", day1, "10:00", "r2")},
			want:   0,
		},
		{
			name:   "one staff two appointments",
			shifts: []domain.Shift{approvedShift("s1", "a", day1, "09:00", "12:00")},
			appts:  []domain.Appointment{appointment("a1", day1, "10:00", "r1"), appointment("a2", day1, "10:00", "r2")},
			want:   1,
		},
		{
			name:   "shift end is exclusive",
			shifts: []domain.Shift{approvedShift("s1", "a", day1, "09:00", "10:00")},
			appts:  []domain.Appointment{appointment("a1", day1, "10:00", "r1")},
			want:   1,
		},
		{
			name: "pending shift does not count",
			shifts: []domain.Shift{func() domain.Shift {
				s := approvedShift("s1", "a", day1, "09:00", "12:00")
				s.Status = domain.ShiftStatusPending
				return s
			}()},
			appts: []domain.Appointment{appointment("a1", day1, "10:00", "r1")},
			want:  1,
		},
		{
			name:   "no appointments no conflicts",
			shifts: nil,
			appts:  nil,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := DetectConflicts([]json_types.Date{day1}, tt.appts, tt.shifts, rooms)
			assert.Equal(t, tt.want, countKind(conflicts, domain.ConflictKindUnderstaffed))
		})
	}
}

func TestDetectConflicts_AllRoomsClaimed(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}}
	shifts := []domain.Shift{
		approvedShift("s1", "a", day1, "09:00", "12:00"),
		approvedShift("s2", "b", day1, "09:00", "12:00"),
	}

	// 2 записи в 2 разных кабинетах: все кабинеты заняты, но записей не больше кабинетов
	appts := []domain.Appointment{appointment("a1", day1, "10:00", "r1"), appointment("a2", day1, "10:00", "r2")}
	conflicts := DetectConflicts([]json_types.Date{day1}, appts, shifts, rooms)
	assert.Zero(t, countKind(conflicts, domain.ConflictKindRoomShortage))

	// 3 записи при 2 кабинетах: спрос больше общего количества кабинетов
	appts = append(appts, appointment("a3", day1, "10:00", ""))
	conflicts = DetectConflicts([]json_types.Date{day1}, appts, shifts, rooms)
	require.Equal(t, 1, countKind(conflicts, domain.ConflictKindRoomShortage))
}

func TestDetectConflicts_UsedRoomsBranch(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}, {ID: "r3", IsActive: false}}

	// Две записи в двух активных кабинетах: все кабинеты заняты, но записей не больше занятых
	appts := []domain.Appointment{
		appointment("a1", day1, "10:00", "r1"),
		appointment("a2", day1, "10:00", "r2"),
	}
	conflicts := DetectConflicts([]json_types.Date{day1}, appts, nil, rooms)
	assert.Zero(t, countKind(conflicts, domain.ConflictKindRoomShortage))

	// Записи 2, кабинеты 2, одна запись без кабинета: занятых 1 < активных 2, конфликта нет
	appts = []domain.Appointment{
		appointment("a1", day1, "11:00", "r1"),
		appointment("a2", day1, "11:00", ""),
	}
	conflicts = DetectConflicts([]json_types.Date{day1}, appts, nil, rooms)
	assert.Zero(t, countKind(conflicts, domain.ConflictKindRoomShortage))
}

func TestDetectConflicts_GroupsByExactTime(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}}
	shifts := []domain.Shift{approvedShift("s1", "a", day1, "09:00", "17:00")}
	appts := []domain.Appointment{
		appointment("a1", day1, "10:00", "r1"),
		appointment("a2", day1, "10:30", "r1"),
		appointment("a3", day1, "11:00", "r1"),
	}

	conflicts := DetectConflicts([]json_types.Date{day1}, appts, shifts, rooms)
	assert.Empty(t, conflicts)
}

func TestEngineIsPure(t *testing.T) {
	rooms := []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}}
	shifts := []domain.Shift{
		approvedShift("s1", "a", day1, "09:00", "17:00"),
		approvedShift("s2", "b", day2, "08:00", "12:00"),
	}
	appts := []domain.Appointment{
		appointment("a1", day1, "10:00", "r1"),
		appointment("a2", day1, "10:00", "r1"),
		appointment("a3", day2, "09:00", "r2"),
	}
	days := []json_types.Date{day1, day2}

	firstSlots := ComputeAvailableSlots(days, shifts, rooms, appts)
	firstConflicts := DetectConflicts(days, appts, shifts, rooms)

	for i := 0; i < 3; i++ {
		assert.ElementsMatch(t, firstSlots, ComputeAvailableSlots(days, shifts, rooms, appts))
		assert.ElementsMatch(t, firstConflicts, DetectConflicts(days, appts, shifts, rooms))
	}
}

func TestClassifyBusyness(t *testing.T) {
	tests := []struct {
		count       int
		hasConflict bool
		want        domain.BusynessLevel
		color       string
	}{
		{0, false, domain.BusynessLow, "green"},
		{2, false, domain.BusynessLow, "green"},
		{3, false, domain.BusynessMedium, "yellow"},
		{4, false, domain.BusynessMedium, "yellow"},
		{5, false, domain.BusynessHigh, "orange"},
		{12, false, domain.BusynessHigh, "orange"},
		{0, true, domain.BusynessCritical, "red"},
		{7, true, domain.BusynessCritical, "red"},
	}

	for _, tt := range tests {
		got := ClassifyBusyness(tt.count, tt.hasConflict)
		assert.Equal(t, tt.want, got.Level, "count=%d conflict=%v", tt.count, tt.hasConflict)
		assert.Equal(t, tt.color, got.Color)
	}
}

func TestBuildBoard_CellsFollowConflicts(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.Rooms = []domain.Room{{ID: "r1", IsActive: true}}
	snap.Shifts = []domain.Shift{approvedShift("s1", "a", day1, "09:00", "17:00")}
	snap.Appointments = []domain.Appointment{
		appointment("a1", day1, "10:00", "r1"),
		appointment("a2", day1, "10:00", "r1"),
		appointment("a3", day1, "14:00", "r1"),
	}

	board := BuildBoard(day1, day2, snap, nil, &BoardDebug{})

	assert.Equal(t, snap.Version, board.SnapshotVersion)
	require.Len(t, board.Cells, 2)
	assert.Equal(t, "10:00", board.Cells[0].Time.String())
	assert.True(t, board.Cells[0].HasConflict)
	assert.Equal(t, domain.BusynessCritical, board.Cells[0].Busyness.Level)
	assert.False(t, board.Cells[1].HasConflict)
	assert.Equal(t, domain.BusynessLow, board.Cells[1].Busyness.Level)
	assert.Len(t, board.Debug, 3)
}

func TestBuildBoard_CellStaffFallsBackToTherapist(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.Rooms = []domain.Room{{ID: "r1", IsActive: true}, {ID: "r2", IsActive: true}}

	withStaff := appointment("a1", day1, "10:00", "r1")
	withStaff.StaffID = "staff-b"
	withStaff.TherapistID = "ignored"
	legacy := appointment("a2", day1, "10:00", "r2")
	legacy.TherapistID = "staff-a"
	duplicate := appointment("a3", day1, "10:00", "")
	duplicate.StaffID = "staff-b"
	unassigned := appointment("a4", day1, "12:00", "r1")

	snap.Appointments = []domain.Appointment{withStaff, legacy, duplicate, unassigned}

	board := BuildBoard(day1, day1, snap, nil, nil)

	require.Len(t, board.Cells, 2)
	assert.Equal(t, 3, board.Cells[0].AppointmentCount)
	assert.Equal(t, []string{"staff-a", "staff-b"}, board.Cells[0].StaffIDs)
	assert.Nil(t, board.Cells[1].StaffIDs)
}
