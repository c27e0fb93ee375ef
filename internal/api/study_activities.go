package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
	"github.com/example/langportal/pkg/models"
	"github.com/example/langportal/pkg/pagination"
)

type StudyActivitiesHandler struct {
	activities *database.StudyActivityRepository
}

func NewStudyActivitiesHandler() *StudyActivitiesHandler {
	return &StudyActivitiesHandler{activities: database.NewStudyActivityRepository()}
}

// RegisterRoutes registers all routes for the study activities handler
func (h *StudyActivitiesHandler) RegisterRoutes(r *gin.RouterGroup) {
	activities := r.Group("/study_activities")
	{
		activities.GET("", h.ListStudyActivities)
		activities.GET("/:id", h.GetStudyActivity)
		activities.POST("", h.CreateStudyActivity)
	}
}

// ListStudyActivities handles GET /api/study_activities. The activity
// catalog is small enough to page in memory, but the response carries the
// same envelope as every other listing.
func (h *StudyActivitiesHandler) ListStudyActivities(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	activities, err := h.activities.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if activities == nil {
		activities = []models.StudyActivity{}
	}
	c.JSON(http.StatusOK, pagination.Paginate(activities, page, perPage))
}

// GetStudyActivity handles GET /api/study_activities/:id
func (h *StudyActivitiesHandler) GetStudyActivity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.activities.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// CreateStudyActivity handles POST /api/study_activities
func (h *StudyActivitiesHandler) CreateStudyActivity(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		ThumbnailURL string `json:"thumbnail_url"`
		LaunchURL    string `json:"launch_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	activity := &models.StudyActivity{
		Name:         req.Name,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		LaunchURL:    req.LaunchURL,
	}
	if err := h.activities.Create(c.Request.Context(), activity); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}
