package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vilafit/coachplan-backend/internal/middleware"
	"github.com/vilafit/coachplan-backend/internal/repos"
)

type AssignmentHandler struct {
	assignments repos.AssignmentRepo
}

func NewAssignmentHandler(assignments repos.AssignmentRepo) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// GET /api/assignments — the authenticated coach's assignments.
func (h *AssignmentHandler) List(c *gin.Context) {
	coachID, ok := middleware.CoachID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing coach identity"})
		return
	}

	rows, err := h.assignments.GetByCoachID(c.Request.Context(), nil, coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": rows})
}
