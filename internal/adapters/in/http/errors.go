package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

func statusFor(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrShiftNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReassignRejected):
		return http.StatusConflict
	case domain.IsPersistenceError(err):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled), errors.Is(err, domain.ErrSnapshotNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (c *RosterController) writeError(ctx *gin.Context, event string, err error) {
	status := statusFor(err)

	fields := out.LogFields{
		"status": status,
		"path":   ctx.FullPath(),
		"error":  err.Error(),
	}
	if id := ctx.Param("id"); id != "" {
		fields["shiftId"] = id
	}
	if status >= http.StatusInternalServerError {
		c.logger.Error(event+".failed", fields)
	} else {
		c.logger.Warn(event+".rejected", fields)
	}

	body := gin.H{"error": err.Error()}
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		body["field"] = validationErr.Field
	}

	ctx.JSON(status, body)
}
