package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vilafit/coachplan-backend/internal/apperr"
	"github.com/vilafit/coachplan-backend/internal/middleware"
	"github.com/vilafit/coachplan-backend/internal/schedule"
	"github.com/vilafit/coachplan-backend/internal/services"
)

type PlannerHandler struct {
	svc     services.PlannerService
	catalog services.CatalogService
}

func NewPlannerHandler(svc services.PlannerService, catalog services.CatalogService) *PlannerHandler {
	return &PlannerHandler{svc: svc, catalog: catalog}
}

func (h *PlannerHandler) session(c *gin.Context) (*schedule.Planner, uuid.UUID, uuid.UUID, bool) {
	coachID, ok := middleware.CoachID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing coach identity"})
		return nil, uuid.Nil, uuid.Nil, false
	}
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return nil, uuid.Nil, uuid.Nil, false
	}
	planner, err := h.svc.Open(c.Request.Context(), coachID, assignmentID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return nil, uuid.Nil, uuid.Nil, false
	}
	return planner, coachID, assignmentID, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// GET /api/assignments/:id/schedule
func (h *PlannerHandler) GetSchedule(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schedule":     planner.Schedule(),
		"current_week": planner.CurrentWeek(),
		"can_undo":     planner.CanUndo(),
	})
}

// PUT /api/assignments/:id/schedule — persist the open session.
func (h *PlannerHandler) SaveSchedule(c *gin.Context) {
	_, coachID, assignmentID, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.svc.Save(c.Request.Context(), coachID, assignmentID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// DELETE /api/assignments/:id/schedule/session — discard unsaved edits.
func (h *PlannerHandler) CloseSession(c *gin.Context) {
	_, coachID, assignmentID, ok := h.session(c)
	if !ok {
		return
	}
	h.svc.Close(coachID, assignmentID)
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

// PUT /api/assignments/:id/schedule/days/:week/:day
func (h *PlannerHandler) UpdateDay(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	week, day, ok := parseDayParams(c)
	if !ok {
		return
	}

	var req struct {
		Items      []schedule.Item `json:"items"`
		BlockNames map[int]string  `json:"block_names"`
		BlockCount int             `json:"block_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := planner.UpdateDay(week, day, req.Items, req.BlockNames, req.BlockCount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schedule":     planner.Schedule(),
		"similar_days": planner.SimilarDays(week, day),
	})
}

// POST /api/assignments/:id/schedule/days/:week/:day/assign — place catalog
// items on a day through the arming selection.
func (h *PlannerHandler) AssignItems(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	week, day, ok := parseDayParams(c)
	if !ok {
		return
	}

	var req struct {
		ItemIDs []int64 `json:"item_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	catalog, err := h.catalog.ItemsByIDs(c.Request.Context(), req.ItemIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selection := planner.Selection()
	selection.Clear()
	for _, it := range catalog {
		selection.Arm(it.Ref)
	}
	if err := planner.AssignSelected(week, day, catalog); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	selection.Clear()
	c.JSON(http.StatusOK, gin.H{
		"schedule":     planner.Schedule(),
		"similar_days": planner.SimilarDays(week, day),
	})
}

// POST /api/assignments/:id/schedule/days/:week/:day/apply-similar
func (h *PlannerHandler) ApplyToSimilarDays(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	week, day, ok := parseDayParams(c)
	if !ok {
		return
	}

	applied, err := planner.ApplyToSimilarDays(week, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied_to": applied, "schedule": planner.Schedule()})
}

// POST /api/assignments/:id/schedule/weeks
func (h *PlannerHandler) AddWeek(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	week, err := planner.AddWeek()
	if err != nil {
		if apperr.IsQuotaExceeded(err) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week, "schedule": planner.Schedule()})
}

// DELETE /api/assignments/:id/schedule/weeks/:week
func (h *PlannerHandler) RemoveWeek(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	week, ok := parseIntParam(c, "week")
	if !ok {
		return
	}
	planner.RemoveWeek(week)
	c.JSON(http.StatusOK, gin.H{"schedule": planner.Schedule()})
}

// POST /api/assignments/:id/schedule/replicate
func (h *PlannerHandler) ReplicateWeeks(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Times int `json:"times"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := planner.ReplicateWeeks(req.Times); err != nil {
		if apperr.IsQuotaExceeded(err) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": planner.Schedule()})
}

// POST /api/assignments/:id/schedule/undo
func (h *PlannerHandler) Undo(c *gin.Context) {
	planner, _, _, ok := h.session(c)
	if !ok {
		return
	}
	undone := planner.Undo()
	c.JSON(http.StatusOK, gin.H{
		"undone":   undone,
		"can_undo": planner.CanUndo(),
		"schedule": planner.Schedule(),
	})
}

func parseDayParams(c *gin.Context) (int, int, bool) {
	week, ok := parseIntParam(c, "week")
	if !ok {
		return 0, 0, false
	}
	day, ok := parseIntParam(c, "day")
	if !ok {
		return 0, 0, false
	}
	return week, day, true
}

func parseIntParam(c *gin.Context, name string) (int, bool) {
	val, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return val, true
}
