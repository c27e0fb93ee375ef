package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/database"
)

type WordsHandler struct {
	words *database.WordRepository
}

func NewWordsHandler() *WordsHandler {
	return &WordsHandler{words: database.NewWordRepository()}
}

// RegisterRoutes registers all routes for the words handler
func (h *WordsHandler) RegisterRoutes(r *gin.RouterGroup) {
	words := r.Group("/words")
	{
		words.GET("", h.ListWords)
		words.GET("/:id", h.GetWord)
	}
}

// ListWords handles GET /api/words
func (h *WordsHandler) ListWords(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	words, total, err := h.words.List(c.Request.Context(), page, perPage,
		c.Query("sort_by"), c.Query("order"))
	if err != nil {
		fail(c, err)
		return
	}

	listResponse(c, words, page, total)
}

// GetWord handles GET /api/words/:id
func (h *WordsHandler) GetWord(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	word, err := h.words.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, word)
}
