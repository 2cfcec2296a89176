package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/config"
)

// NewRedisClient connects the Redis backend of the quiz session store.
// The client is closed again if the initial ping fails.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}

	log.Info().
		Str("component", "quiz_session_redis").
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Str("key_pattern", config.CacheKey.QuizAnswersKey("*")).
		Dur("session_ttl", cfg.QuizSessionTTL).
		Msg("Redis quiz session backend connected")

	return rdb, nil
}
