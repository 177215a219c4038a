package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/json_types"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/in"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"github.com/suchimauz/staff-roster-scheduler/internal/utils"
)

type RosterController struct {
	useCase  in.RosterUseCase
	cfg      *config.Config
	logger   out.LoggerPort
	limiters *clientLimiters
}

func NewRosterController(useCase in.RosterUseCase, cfg *config.Config, logger out.LoggerPort) *RosterController {
	return &RosterController{
		useCase:  useCase,
		cfg:      cfg,
		logger:   logger.WithModule("RosterController"),
		limiters: newClientLimiters(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst),
	}
}

func (c *RosterController) RegisterRoutes(router *gin.Engine) {
	if corsMiddleware := c.corsMiddleware(); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.basicAuth(), c.rateLimit())
	{
		api.GET("/schedule/board", c.board)
		api.GET("/schedule/slots", c.slots)
		api.GET("/schedule/conflicts", c.conflicts)

		api.GET("/shifts/pending", c.pendingRequests)
		api.POST("/shifts", c.createShift)
		api.POST("/shifts/bulk", c.bulkCreateShifts)
		api.PATCH("/shifts/:id", c.updateShift)
		api.DELETE("/shifts/:id", c.deleteShift)
		api.POST("/shifts/:id/decision", c.decideShift)
		api.POST("/shifts/:id/reassign", c.reassignShift)
		api.POST("/shifts/:id/swap", c.markForSwap)

		api.POST("/snapshot/reconcile", c.reconcile)
	}
}

type CreateShiftRequest struct {
	StaffID   string             `json:"staffId" binding:"required"`
	Date      json_types.Date    `json:"date"`
	ShiftType domain.ShiftType   `json:"shiftType" binding:"required"`
	Hours     *domain.ShiftHours `json:"hours"`
	Notes     string             `json:"notes"`
}

type DecisionRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type ReassignRequest struct {
	StaffID string          `json:"staffId" binding:"required"`
	Date    json_types.Date `json:"date"`
}

type SwapRequest struct {
	UpForSwap *bool `json:"upForSwap" binding:"required"`
}

func (c *RosterController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *RosterController) board(ctx *gin.Context) {
	query, ok := c.boardQuery(ctx)
	if !ok {
		return
	}

	board, err := c.useCase.Board(ctx.Request.Context(), query)
	if err != nil {
		c.writeError(ctx, "schedule.board", err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

func (c *RosterController) slots(ctx *gin.Context) {
	query, ok := c.boardQuery(ctx)
	if !ok {
		return
	}

	slots, err := c.useCase.AvailableSlots(ctx.Request.Context(), query.From, query.To)
	if err != nil {
		c.writeError(ctx, "schedule.slots", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"from":  query.From,
		"to":    query.To,
		"slots": slots,
	})
}

func (c *RosterController) conflicts(ctx *gin.Context) {
	query, ok := c.boardQuery(ctx)
	if !ok {
		return
	}

	conflicts, err := c.useCase.Conflicts(ctx.Request.Context(), query)
	if err != nil {
		c.writeError(ctx, "schedule.conflicts", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"from":      query.From,
		"to":        query.To,
		"conflicts": conflicts,
	})
}

func (c *RosterController) pendingRequests(ctx *gin.Context) {
	pending, err := c.useCase.PendingRequests(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, "shifts.pending", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"shifts": pending})
}

func (c *RosterController) createShift(ctx *gin.Context) {
	var req CreateShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := c.useCase.CreateShift(ctx.Request.Context(), domain.Shift{
		StaffID:   req.StaffID,
		Date:      req.Date,
		ShiftType: req.ShiftType,
		Hours:     req.Hours,
		Notes:     req.Notes,
	})
	if err != nil {
		c.writeError(ctx, "shifts.create", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *RosterController) bulkCreateShifts(ctx *gin.Context) {
	var req domain.BulkShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.BulkCreateFixedShifts(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, "shifts.bulk", err)
		return
	}

	// Частичный успех остается 200, детали в failures
	ctx.JSON(http.StatusOK, result)
}

func (c *RosterController) updateShift(ctx *gin.Context) {
	var patch domain.ShiftPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := c.useCase.UpdateShift(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		c.writeError(ctx, "shifts.update", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (c *RosterController) deleteShift(ctx *gin.Context) {
	if err := c.useCase.DeleteShift(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.writeError(ctx, "shifts.delete", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *RosterController) decideShift(ctx *gin.Context) {
	var req DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decided, err := c.useCase.ApproveOrReject(ctx.Request.Context(), ctx.Param("id"), *req.Approved)
	if err != nil {
		c.writeError(ctx, "shifts.decision", err)
		return
	}

	ctx.JSON(http.StatusOK, decided)
}

func (c *RosterController) reassignShift(ctx *gin.Context) {
	var req ReassignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moved, err := c.useCase.Reassign(ctx.Request.Context(), ctx.Param("id"), req.StaffID, req.Date)
	if err != nil {
		c.writeError(ctx, "shifts.reassign", err)
		return
	}

	ctx.JSON(http.StatusOK, moved)
}

func (c *RosterController) markForSwap(ctx *gin.Context) {
	var req SwapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marked, err := c.useCase.MarkForSwap(ctx.Request.Context(), ctx.Param("id"), *req.UpForSwap)
	if err != nil {
		c.writeError(ctx, "shifts.swap", err)
		return
	}

	ctx.JSON(http.StatusOK, marked)
}

func (c *RosterController) reconcile(ctx *gin.Context) {
	snap, err := c.useCase.Reconcile(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, "snapshot.reconcile", err)
		return
	}

	fetchErrors := make([]gin.H, 0, len(snap.FetchErrors))
	for _, fetchErr := range snap.FetchErrors {
		fetchErrors = append(fetchErrors, gin.H{
			"resource": fetchErr.Resource,
			"error":    fetchErr.Err.Error(),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"version":      snap.Version,
		"loadedAt":     snap.LoadedAt,
		"staff":        len(snap.Staff),
		"rooms":        len(snap.Rooms),
		"shifts":       len(snap.Shifts),
		"appointments": len(snap.Appointments),
		"fetchErrors":  fetchErrors,
	})
}

// boardQuery разбирает from/to/locale/debug из query string, при ошибке сам пишет 400
func (c *RosterController) boardQuery(ctx *gin.Context) (in.BoardQuery, bool) {
	from, to, err := utils.ParseDateRange(ctx.Query("from"), ctx.Query("to"), c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return in.BoardQuery{}, false
	}

	debug, _ := strconv.ParseBool(ctx.Query("debug"))

	return in.BoardQuery{
		From:   from,
		To:     to,
		Locale: requestLocale(ctx),
		Debug:  debug,
	}, true
}

// Локаль из ?locale, иначе из Accept-Language
func requestLocale(ctx *gin.Context) string {
	if locale := ctx.Query("locale"); locale != "" {
		return locale
	}
	return ctx.GetHeader("Accept-Language")
}
