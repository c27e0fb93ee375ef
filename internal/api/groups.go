package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
	"github.com/example/langportal/pkg/models"
)

type GroupsHandler struct {
	groups   *database.GroupRepository
	sessions *database.StudySessionRepository
}

func NewGroupsHandler() *GroupsHandler {
	return &GroupsHandler{
		groups:   database.NewGroupRepository(),
		sessions: database.NewStudySessionRepository(),
	}
}

// RegisterRoutes registers all routes for the groups handler
func (h *GroupsHandler) RegisterRoutes(r *gin.RouterGroup) {
	groups := r.Group("/groups")
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.GET("/:id", h.GetGroup)
		groups.GET("/:id/words", h.ListGroupWords)
		groups.GET("/:id/study_sessions", h.ListGroupStudySessions)
		groups.POST("/:id/words/:word_id", h.AddWordToGroup)
		groups.DELETE("/:id/words/:word_id", h.RemoveWordFromGroup)
	}
}

// ListGroups handles GET /api/groups
func (h *GroupsHandler) ListGroups(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	groups, total, err := h.groups.List(c.Request.Context(), page, perPage,
		c.Query("sort_by"), c.Query("order"))
	if err != nil {
		fail(c, err)
		return
	}

	listResponse(c, groups, page, total)
}

// CreateGroup handles POST /api/groups
func (h *GroupsHandler) CreateGroup(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error())
		return
	}

	group := &models.Group{Name: req.Name}
	if err := h.groups.Create(c.Request.Context(), group); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetGroup handles GET /api/groups/:id
func (h *GroupsHandler) GetGroup(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListGroupWords handles GET /api/groups/:id/words
func (h *GroupsHandler) ListGroupWords(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, ok := pageParam(c)
	if !ok {
		return
	}

	words, total, err := h.groups.ListWords(c.Request.Context(), id, page, perPage)
	if err != nil {
		fail(c, err)
		return
	}

	listResponse(c, words, page, total)
}

// ListGroupStudySessions handles GET /api/groups/:id/study_sessions
func (h *GroupsHandler) ListGroupStudySessions(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, ok := pageParam(c)
	if !ok {
		return
	}

	sessions, total, err := h.sessions.ListByGroup(c.Request.Context(), id, page, perPage)
	if err != nil {
		fail(c, err)
		return
	}

	listResponse(c, sessions, page, total)
}

// AddWordToGroup handles POST /api/groups/:id/words/:word_id
func (h *GroupsHandler) AddWordToGroup(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	wordID, ok := idParam(c, "word_id")
	if !ok {
		return
	}

	if err := h.groups.AddWord(c.Request.Context(), id, wordID); err != nil {
		fail(c, err)
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// RemoveWordFromGroup handles DELETE /api/groups/:id/words/:word_id
func (h *GroupsHandler) RemoveWordFromGroup(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	wordID, ok := idParam(c, "word_id")
	if !ok {
		return
	}

	if err := h.groups.RemoveWord(c.Request.Context(), id, wordID); err != nil {
		fail(c, err)
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}
