package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vilafit/coachplan-backend/internal/apperr"
	"github.com/vilafit/coachplan-backend/internal/cascade"
	"github.com/vilafit/coachplan-backend/internal/middleware"
	"github.com/vilafit/coachplan-backend/internal/repos"
)

type CascadeHandler struct {
	engine  cascade.Engine
	clients repos.ClientRepo
}

func NewCascadeHandler(engine cascade.Engine, clients repos.ClientRepo) *CascadeHandler {
	return &CascadeHandler{engine: engine, clients: clients}
}

// POST /api/cascade
func (h *CascadeHandler) Run(c *gin.Context) {
	coachID, ok := middleware.CoachID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing coach identity"})
		return
	}

	var req cascade.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// The target client must belong to the authenticated coach.
	client, err := h.clients.GetByID(c.Request.Context(), nil, req.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if client.CoachID != coachID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	result, err := h.engine.Run(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperr.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
