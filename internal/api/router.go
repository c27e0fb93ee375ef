package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/example/langportal/internal/logger"
)

// NewRouter assembles the gin engine with all portal routes
func NewRouter(log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		NewWordsHandler().RegisterRoutes(api)
		NewGroupsHandler().RegisterRoutes(api)
		NewStudyActivitiesHandler().RegisterRoutes(api)
		NewStudySessionsHandler().RegisterRoutes(api)
		NewDashboardHandler().RegisterRoutes(api)
		NewResetHandler().RegisterRoutes(api)
	}

	return router
}

// requestLogger logs one line per request
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
