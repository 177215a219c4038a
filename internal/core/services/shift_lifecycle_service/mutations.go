package shift_lifecycle_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

// CreateShift создает смену по заявке. Без явного статуса смена попадает в очередь на одобрение.
func (s *ShiftLifecycleService) CreateShift(ctx context.Context, snap *domain.Snapshot, shift domain.Shift) (domain.Shift, error) {
	if err := requireSnapshot(snap); err != nil {
		return domain.Shift{}, err
	}

	prepared, err := prepareShift(shift)
	if err != nil {
		s.logger.Warn("shifts.create.validation_failed", out.LogFields{
			"staffId": shift.StaffID,
			"error":   err.Error(),
		})
		return domain.Shift{}, err
	}

	return s.persistNew(ctx, snap, prepared)
}

func (s *ShiftLifecycleService) UpdateShift(ctx context.Context, snap *domain.Snapshot, id string, patch domain.ShiftPatch) (domain.Shift, error) {
	if err := requireSnapshot(snap); err != nil {
		return domain.Shift{}, err
	}
	if err := validatePatch(patch); err != nil {
		return domain.Shift{}, err
	}

	updated, err := s.storePort.UpdateShift(ctx, id, patch)
	if err != nil {
		s.logger.Error("shifts.update.persist_failed", out.LogFields{
			"shiftId": id,
			"error":   err.Error(),
		})
		return domain.Shift{}, &domain.PersistenceError{Op: "update", ShiftID: id, Err: err}
	}

	snap.ReplaceShift(updated)

	s.logger.Info("shifts.update.completed", out.LogFields{
		"shiftId": id,
	})
	return updated, nil
}

func (s *ShiftLifecycleService) DeleteShift(ctx context.Context, snap *domain.Snapshot, id string) error {
	if err := requireSnapshot(snap); err != nil {
		return err
	}
	if id == "" {
		return &domain.ValidationError{Field: "id", Message: "shift id is required"}
	}

	if err := s.storePort.DeleteShift(ctx, id); err != nil {
		s.logger.Error("shifts.delete.persist_failed", out.LogFields{
			"shiftId": id,
			"error":   err.Error(),
		})
		return &domain.PersistenceError{Op: "delete", ShiftID: id, Err: err}
	}

	snap.RemoveShift(id)

	s.logger.Info("shifts.delete.completed", out.LogFields{
		"shiftId": id,
	})
	return nil
}

// persistNew отправляет уже проверенную смену в хранилище и добавляет ответ в снапшот
func (s *ShiftLifecycleService) persistNew(ctx context.Context, snap *domain.Snapshot, shift domain.Shift) (domain.Shift, error) {
	created, err := s.storePort.CreateShift(ctx, shift)
	if err != nil {
		s.logger.Error("shifts.create.persist_failed", out.LogFields{
			"staffId":   shift.StaffID,
			"date":      shift.Date.String(),
			"shiftType": shift.ShiftType,
			"error":     err.Error(),
		})
		return domain.Shift{}, &domain.PersistenceError{Op: "create", Err: err}
	}

	snap.AppendShift(created)

	s.logger.Info("shifts.create.completed", out.LogFields{
		"shiftId":   created.ID,
		"staffId":   created.StaffID,
		"date":      created.Date.String(),
		"shiftType": created.ShiftType,
	})
	return created, nil
}

func prepareShift(shift domain.Shift) (domain.Shift, error) {
	if shift.StaffID == "" {
		return domain.Shift{}, &domain.ValidationError{Field: "staffId", Message: "staff id is required"}
	}
	if shift.Date.IsZero() {
		return domain.Shift{}, &domain.ValidationError{Field: "date", Message: "date is required"}
	}

	hours, err := domain.ResolveHours(shift.ShiftType, shift.Hours)
	if err != nil {
		return domain.Shift{}, err
	}
	shift.Hours = hours

	if shift.Status == "" {
		shift.Status = domain.ShiftStatusPending
	}
	if shift.ManagerApprovalStatus == "" {
		shift.ManagerApprovalStatus = domain.ManagerApprovalPending
	}

	if err := validateStatuses(shift.Status, shift.ManagerApprovalStatus); err != nil {
		return domain.Shift{}, err
	}

	return shift, nil
}

func validatePatch(patch domain.ShiftPatch) error {
	if patch.IsEmpty() {
		return &domain.ValidationError{Field: "patch", Message: "nothing to update"}
	}
	if patch.StaffID != nil && *patch.StaffID == "" {
		return &domain.ValidationError{Field: "staffId", Message: "staff id must not be empty"}
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return &domain.ValidationError{Field: "date", Message: "date must not be empty"}
	}
	if patch.ShiftType != nil && !patch.ShiftType.IsKnown() {
		return &domain.ValidationError{Field: "shiftType", Message: fmt.Sprintf("unknown shift type %q", *patch.ShiftType)}
	}
	if patch.Hours != nil && !patch.Hours.Valid() {
		return &domain.ValidationError{Field: "hours", Message: "hours must have start < end in HH:MM format"}
	}

	var status domain.ShiftStatus
	var manager domain.ManagerApprovalStatus
	if patch.Status != nil {
		status = *patch.Status
	}
	if patch.ManagerApprovalStatus != nil {
		manager = *patch.ManagerApprovalStatus
	}
	return validateStatuses(status, manager)
}

// Пустые значения пропускаются
func validateStatuses(status domain.ShiftStatus, manager domain.ManagerApprovalStatus) error {
	switch status {
	case "", domain.ShiftStatusPending, domain.ShiftStatusApproved, domain.ShiftStatusRejected:
	default:
		return &domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	switch manager {
	case "", domain.ManagerApprovalPending, domain.ManagerApprovalApproved, domain.ManagerApprovalRejected:
	default:
		return &domain.ValidationError{Field: "managerApprovalStatus", Message: fmt.Sprintf("unknown manager approval status %q", manager)}
	}

	return nil
}
