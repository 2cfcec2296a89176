package database

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/config"
)

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	cfg := &config.Config{RedisURL: "not-a-redis-url"}

	rdb, err := NewRedisClient(context.Background(), cfg, zerolog.Nop())
	if err == nil {
		_ = rdb.Close()
		t.Fatal("expected an error for a malformed URL")
	}
	if !strings.Contains(err.Error(), "parse redis URL") {
		t.Errorf("err = %v", err)
	}
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var logs bytes.Buffer
	cfg := &config.Config{RedisURL: "redis://127.0.0.1:1/0"}

	rdb, err := NewRedisClient(ctx, cfg, zerolog.New(&logs))
	if err == nil {
		_ = rdb.Close()
		t.Fatal("expected a ping error")
	}
	if !strings.Contains(err.Error(), "ping redis 127.0.0.1:1") {
		t.Errorf("err = %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("connected log written on failure: %s", logs.String())
	}
}
