package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/config"
	"github.com/stemsi/quizai-backend/internal/handler"
	"github.com/stemsi/quizai-backend/internal/middleware"
	"github.com/stemsi/quizai-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz   *handler.QuizHandler
	Health *handler.HealthHandler
}

// SetupRouter configures the Gin engine. Answer routes exist only in session mode.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request logger can read it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	// Liveness.
	router.GET("/", handlers.Health.Health)
	router.GET("/health", handlers.Health.Health)

	quiz := router.Group("/quiz")
	{
		quiz.POST("/generate", handlers.Quiz.Generate)

		if cfg.QuizMode == config.QuizModeSession {
			quiz.POST("/answer", handlers.Quiz.CheckAnswer)
			quiz.GET("/answers/:quiz_id", middleware.NoStore(), handlers.Quiz.RevealAnswers)
		}
	}

	return router
}
