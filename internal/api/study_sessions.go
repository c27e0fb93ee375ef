package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
)

type StudySessionsHandler struct {
	sessions *database.StudySessionRepository
}

func NewStudySessionsHandler() *StudySessionsHandler {
	return &StudySessionsHandler{sessions: database.NewStudySessionRepository()}
}

// RegisterRoutes registers all routes for the study sessions handler
func (h *StudySessionsHandler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/study_sessions")
	{
		sessions.GET("", h.ListStudySessions)
		sessions.GET("/:id", h.GetStudySession)
		sessions.GET("/:id/words", h.ListStudySessionWords)
		sessions.POST("", h.CreateStudySession)
		sessions.POST("/:id/words/:word_id/review", h.AddWordReview)
	}
}

// ListStudySessions handles GET /api/study_sessions
func (h *StudySessionsHandler) ListStudySessions(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	sessions, total, err := h.sessions.List(c.Request.Context(), page, perPage,
		c.Query("sort_by"), c.DefaultQuery("order", "desc"))
	if err != nil {
		fail(c, err)
		return
	}

	listResponse(c, sessions, page, total)
}

// GetStudySession handles GET /api/study_sessions/:id
func (h *StudySessionsHandler) GetStudySession(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ListStudySessionWords handles GET /api/study_sessions/:id/words
func (h *StudySessionsHandler) ListStudySessionWords(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, ok := pageParam(c)
	if !ok {
		return
	}

	words, total, err := h.sessions.ListSessionWords(c.Request.Context(), id, page, perPage)
	if err != nil {
		fail(c, err)
		return
	}

	listResponse(c, words, page, total)
}

// CreateStudySession handles POST /api/study_sessions
func (h *StudySessionsHandler) CreateStudySession(c *gin.Context) {
	var req struct {
		GroupID         int64 `json:"group_id" binding:"required,min=1"`
		StudyActivityID int64 `json:"study_activity_id" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), req.GroupID, req.StudyActivityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// AddWordReview handles POST /api/study_sessions/:id/words/:word_id/review.
// The correct field binds through a pointer so an explicit false is valid
// and a missing field is still rejected.
func (h *StudySessionsHandler) AddWordReview(c *gin.Context) {
	sessionID, ok := idParam(c, "id")
	if !ok {
		return
	}
	wordID, ok := idParam(c, "word_id")
	if !ok {
		return
	}

	var req struct {
		Correct *bool `json:"correct" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	confirmation, err := h.sessions.AddReview(c.Request.Context(), sessionID, wordID, *req.Correct)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}
