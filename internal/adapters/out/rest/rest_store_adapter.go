package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"

	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

var _ out.StorePort = (*RestStoreAdapter)(nil)

// Ответ списочных методов бэкенда консоли
type listResponse struct {
	Data []json.RawMessage `json:"data"`
}

// RestStoreAdapter ходит в JSON API бэкенда консоли под basic auth
type RestStoreAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewRestStoreAdapter(cfg *config.Config, logger out.LoggerPort) *RestStoreAdapter {
	return &RestStoreAdapter{
		client:   &http.Client{Timeout: cfg.Store.Timeout},
		baseURL:  strings.TrimRight(cfg.Store.URL, "/"),
		username: cfg.Store.Username,
		password: cfg.Store.Password,
		logger:   logger.WithModule("RestStoreAdapter"),
	}
}

func (a *RestStoreAdapter) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	return list[domain.Shift](ctx, a, "shifts")
}

func (a *RestStoreAdapter) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return list[domain.Room](ctx, a, "rooms")
}

func (a *RestStoreAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return list[domain.Appointment](ctx, a, "appointments")
}

func (a *RestStoreAdapter) ListStaff(ctx context.Context) ([]domain.StaffRecord, error) {
	return list[domain.StaffRecord](ctx, a, "staff")
}

func (a *RestStoreAdapter) CreateShift(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	var created domain.Shift
	if err := a.send(ctx, http.MethodPost, "shifts", shift, &created); err != nil {
		a.logger.Error("store.shifts.create_failed", out.LogFields{
			"staffId": shift.StaffID,
			"date":    shift.Date.String(),
			"error":   err.Error(),
		})
		return domain.Shift{}, err
	}

	a.logger.Debug("store.shifts.create_success", out.LogFields{
		"shiftId": created.ID,
	})
	return created, nil
}

func (a *RestStoreAdapter) UpdateShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, error) {
	var updated domain.Shift
	if err := a.send(ctx, http.MethodPatch, "shifts/"+nurl.PathEscape(id), patch, &updated); err != nil {
		a.logger.Error("store.shifts.update_failed", out.LogFields{
			"shiftId": id,
			"error":   err.Error(),
		})
		return domain.Shift{}, err
	}

	a.logger.Debug("store.shifts.update_success", out.LogFields{
		"shiftId": id,
	})
	return updated, nil
}

func (a *RestStoreAdapter) DeleteShift(ctx context.Context, id string) error {
	if err := a.send(ctx, http.MethodDelete, "shifts/"+nurl.PathEscape(id), nil, nil); err != nil {
		a.logger.Error("store.shifts.delete_failed", out.LogFields{
			"shiftId": id,
			"error":   err.Error(),
		})
		return err
	}

	a.logger.Debug("store.shifts.delete_success", out.LogFields{
		"shiftId": id,
	})
	return nil
}

// list забирает коллекцию целиком. Записи, которые не удалось разобрать, пропускаются с логом.
func list[T any](ctx context.Context, a *RestStoreAdapter, resource string) ([]T, error) {
	a.logger.Info("store."+resource+".fetch", out.LogFields{})

	var response listResponse
	if err := a.send(ctx, http.MethodGet, resource, nil, &response); err != nil {
		a.logger.Error("store."+resource+".fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]T, 0, len(response.Data))
	for index, raw := range response.Data {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			a.logger.Warn("store."+resource+".decode_resource_failed", out.LogFields{
				"index": index,
				"error": err.Error(),
			})
			continue
		}
		items = append(items, item)
	}

	a.logger.Debug("store."+resource+".fetch_success", out.LogFields{
		"count": len(items),
	})
	return items, nil
}

func (a *RestStoreAdapter) send(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := fmt.Sprintf("%s/%s", a.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}

	req.SetBasicAuth(a.username, a.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 404 означает отсутствие смены только для запросов к конкретной смене
	if resp.StatusCode == http.StatusNotFound && (method == http.MethodPatch || method == http.MethodDelete) {
		return domain.ErrShiftNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(message))}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status code: %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
