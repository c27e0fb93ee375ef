package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
)

type DashboardHandler struct {
	dashboard *database.DashboardRepository
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{dashboard: database.NewDashboardRepository()}
}

// RegisterRoutes registers all routes for the dashboard handler
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/last_study_session", h.GetLastStudySession)
		dashboard.GET("/study_progress", h.GetStudyProgress)
		dashboard.GET("/quick-stats", h.GetQuickStats)
	}
}

// GetLastStudySession handles GET /api/dashboard/last_study_session
func (h *DashboardHandler) GetLastStudySession(c *gin.Context) {
	session, err := h.dashboard.GetLastStudySession(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetStudyProgress handles GET /api/dashboard/study_progress
func (h *DashboardHandler) GetStudyProgress(c *gin.Context) {
	progress, err := h.dashboard.GetStudyProgress(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetQuickStats handles GET /api/dashboard/quick-stats
func (h *DashboardHandler) GetQuickStats(c *gin.Context) {
	stats, err := h.dashboard.GetQuickStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
