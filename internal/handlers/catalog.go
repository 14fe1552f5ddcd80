package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vilafit/coachplan-backend/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/catalog/:activityID
func (h *CatalogHandler) List(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("activityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	items, err := h.svc.List(c.Request.Context(), activityID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// POST /api/catalog/:activityID/bulk
func (h *CatalogHandler) BulkDefine(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("activityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	var req struct {
		Items []services.ItemDefinition `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, idMap, err := h.svc.BulkDefine(c.Request.Context(), activityID, req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items, "identifier_map": idMap})
}

// POST /api/catalog/:activityID/deactivate
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	if _, err := uuid.Parse(c.Param("activityID")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	var req struct {
		ItemIDs []int64 `json:"item_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), req.ItemIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deactivated": len(req.ItemIDs)})
}
