package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
)

type ResetHandler struct {
	system *database.SystemRepository
}

func NewResetHandler() *ResetHandler {
	return &ResetHandler{system: database.NewSystemRepository()}
}

// RegisterRoutes registers all routes for the reset handler
func (h *ResetHandler) RegisterRoutes(r *gin.RouterGroup) {
	reset := r.Group("/reset")
	{
		reset.POST("/history", h.ResetHistory)
		reset.POST("/full", h.FullReset)
	}
}

// ResetHistory handles POST /api/reset/history
func (h *ResetHandler) ResetHistory(c *gin.Context) {
	if err := h.system.ResetHistory(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Study history has been reset"})
}

// FullReset handles POST /api/reset/full
func (h *ResetHandler) FullReset(c *gin.Context) {
	if err := h.system.FullReset(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "System has been fully reset"})
}
