package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/config"
	"github.com/stemsi/quizai-backend/internal/database"
	"github.com/stemsi/quizai-backend/internal/handler"
	"github.com/stemsi/quizai-backend/internal/llm"
	"github.com/stemsi/quizai-backend/internal/logger"
	"github.com/stemsi/quizai-backend/internal/repository"
	"github.com/stemsi/quizai-backend/internal/router"
	"github.com/stemsi/quizai-backend/internal/service"
	"github.com/stemsi/quizai-backend/internal/validator"
)

const sweepInterval = time.Minute

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("quiz_mode", string(cfg.QuizMode)).
		Str("quiz_store", cfg.QuizStore).
		Msg("Starting QuizAI API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Initialize LLM Client ─────────────────────────────────────────
	gemini := llm.NewGeminiClient(cfg, log)

	// ─── Initialize Quiz Session Store ─────────────────────────────────
	var store repository.QuizSessionStore
	if cfg.QuizMode == config.QuizModeSession {
		var rdb *redis.Client
		store, rdb = setupStore(ctx, cfg, log)
		if rdb != nil {
			defer rdb.Close()
		}
	}

	// ─── Initialize Services & Handlers ────────────────────────────────
	quizService := service.NewQuizService(gemini, store, log)

	handlers := &router.Handlers{
		Quiz:   handler.NewQuizHandler(quizService, cfg.QuizMode == config.QuizModeInline, log),
		Health: handler.NewHealthHandler(),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	// WriteTimeout must outlast the upstream call.
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.GeminiTimeout + 15*time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stops the session sweeper.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// setupStore picks the session backend. The Redis client is returned so main can close it.
func setupStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.QuizSessionStore, *redis.Client) {
	if cfg.QuizStore == config.StoreRedis {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		return repository.NewRedisQuizSessionStore(rdb, cfg.QuizSessionTTL), rdb
	}

	if cfg.QuizStore != config.StoreMemory {
		log.Warn().Str("quiz_store", cfg.QuizStore).Msg("Unknown QUIZ_STORE, using memory")
	}

	mem := repository.NewMemoryQuizSessionStore(cfg.QuizMaxSessions, cfg.QuizSessionTTL)
	go mem.StartSweeper(ctx, sweepInterval, func(removed int) {
		log.Debug().Int("removed", removed).Msg("Expired quiz sessions swept")
	})

	log.Info().
		Int("max_sessions", cfg.QuizMaxSessions).
		Dur("ttl", cfg.QuizSessionTTL).
		Msg("In-memory quiz session store ready")

	return mem, nil
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
