package domain

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrReassignRejected  = errors.New("reassignment rejected")
	ErrSnapshotNotLoaded = errors.New("snapshot not loaded")
)

type ResourceType string

const (
	ResourceStaff        ResourceType = "staff"
	ResourceRooms        ResourceType = "rooms"
	ResourceShifts       ResourceType = "shifts"
	ResourceAppointments ResourceType = "appointments"
)

// FetchError загрузка одного ресурса снапшота не удалась, ресурс считается пустым
type FetchError struct {
	Resource ResourceType `json:"resource"`
	Err      error        `json:"-"`
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("snapshot.%s.fetch_failed: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PersistenceError удаленное хранилище отклонило create/update/delete
type PersistenceError struct {
	Op      string
	ShiftID string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.ShiftID == "" {
		return fmt.Sprintf("shifts.%s.persist_failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("shifts.%s.persist_failed: shift %s: %v", e.Op, e.ShiftID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationError входные данные отклонены до обращения к хранилищу
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsPersistenceError(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}
