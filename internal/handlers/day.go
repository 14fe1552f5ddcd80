package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vilafit/coachplan-backend/internal/middleware"
	"github.com/vilafit/coachplan-backend/internal/services"
)

type DayHandler struct {
	svc services.DayService
}

func NewDayHandler(svc services.DayService) *DayHandler {
	return &DayHandler{svc: svc}
}

// GET /api/clients/:clientID/days/:date?activity_id=...
func (h *DayHandler) GetDayDetail(c *gin.Context) {
	coachID, ok := middleware.CoachID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing coach identity"})
		return
	}
	clientID, err := uuid.Parse(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}
	activityID, err := uuid.Parse(c.Query("activity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	payload, err := h.svc.GetDayDetail(c.Request.Context(), coachID, clientID, activityID, c.Param("date"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
