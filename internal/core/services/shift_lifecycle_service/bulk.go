package shift_lifecycle_service

import (
	"context"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

type bulkKey struct {
	staffID string
	date    string
}

// BulkCreateFixedShifts создает одобренные смены одного типа на все пары (сотрудник, дата).
// Уже существующие пары пропускаются, ошибка одной пары не останавливает пакет.
// Отмена контекста тоже не прерывает цикл: оборванные запросы попадают в Failures.
func (s *ShiftLifecycleService) BulkCreateFixedShifts(ctx context.Context, snap *domain.Snapshot, request domain.BulkShiftRequest) (domain.BulkCreateResult, error) {
	result := domain.BulkCreateResult{
		Created:  make([]domain.Shift, 0),
		Failures: make([]domain.BulkCreateFailure, 0),
	}

	if err := requireSnapshot(snap); err != nil {
		return result, err
	}

	hours, err := domain.ResolveHours(request.ShiftType, request.Hours)
	if err != nil {
		s.logger.Warn("shifts.bulk.validation_failed", out.LogFields{
			"shiftType": request.ShiftType,
			"error":     err.Error(),
		})
		return result, err
	}

	for _, date := range request.Dates {
		if date.IsZero() {
			return result, &domain.ValidationError{Field: "dates", Message: "dates must not contain empty values"}
		}
	}
	for _, staffID := range request.StaffIDs {
		if staffID == "" {
			return result, &domain.ValidationError{Field: "staffIds", Message: "staff ids must not contain empty values"}
		}
	}

	existing := make(map[bulkKey]struct{}, len(snap.Shifts))
	for _, shift := range snap.Shifts {
		if shift.ShiftType == request.ShiftType {
			existing[bulkKey{staffID: shift.StaffID, date: shift.Date.String()}] = struct{}{}
		}
	}

	for _, staffID := range request.StaffIDs {
		for _, date := range request.Dates {
			key := bulkKey{staffID: staffID, date: date.String()}
			if _, ok := existing[key]; ok {
				result.SkippedCount++
				continue
			}

			created, err := s.persistNew(ctx, snap, domain.Shift{
				StaffID:               staffID,
				Date:                  date,
				ShiftType:             request.ShiftType,
				Hours:                 copyHours(hours),
				Status:                domain.ShiftStatusApproved,
				ManagerApprovalStatus: domain.ManagerApprovalApproved,
				Notes:                 request.Notes,
			})
			if err != nil {
				result.FailedCount++
				result.Failures = append(result.Failures, domain.BulkCreateFailure{
					StaffID: staffID,
					Date:    date,
					Error:   err.Error(),
				})
				continue
			}

			existing[key] = struct{}{}
			result.CreatedCount++
			result.Created = append(result.Created, created)
		}
	}

	s.logger.Info("shifts.bulk.completed", out.LogFields{
		"shiftType": request.ShiftType,
		"dates":     bulkDates(request.Dates),
		"created":   result.CreatedCount,
		"skipped":   result.SkippedCount,
		"failed":    result.FailedCount,
	})

	return result, nil
}

func copyHours(hours *domain.ShiftHours) *domain.ShiftHours {
	if hours == nil {
		return nil
	}
	copied := *hours
	return &copied
}

func bulkDates(dates []json_types.Date) []string {
	result := make([]string, 0, len(dates))
	for _, date := range dates {
		result = append(result, date.String())
	}
	return result
}
