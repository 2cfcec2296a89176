//go:build integration
// +build integration

package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quizai-backend/internal/config"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisQuizSessionStore, *redis.Client) {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	return NewRedisQuizSessionStore(rdb, ttl), rdb
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, rdb := newRedisStore(t, time.Minute)
	quizID := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, config.CacheKey.QuizAnswersKey(quizID)) })

	if err := s.Create(ctx, quizID, map[int]string{1: "Romulus", 2: "Tiber"}); err != nil {
		t.Fatal(err)
	}

	if ok, err := s.CheckAnswer(ctx, quizID, 1, "Romulus"); err != nil || !ok {
		t.Errorf("correct answer: %v, %v", ok, err)
	}
	if ok, err := s.CheckAnswer(ctx, quizID, 2, "tiber"); err != nil || ok {
		t.Errorf("wrong answer: %v, %v", ok, err)
	}
	if _, err := s.CheckAnswer(ctx, quizID, 9, "x"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("unknown question err = %v", err)
	}
	if _, err := s.CheckAnswer(ctx, uuid.NewString(), 1, "x"); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("unknown quiz err = %v", err)
	}

	all, err := s.RevealAll(ctx, quizID)
	if err != nil || len(all) != 2 || all[2] != "Tiber" {
		t.Errorf("RevealAll = %v, %v", all, err)
	}

	ttl := rdb.TTL(ctx, config.CacheKey.QuizAnswersKey(quizID)).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v", ttl)
	}
}

func TestRedisStoreCreateReplaces(t *testing.T) {
	ctx := context.Background()
	s, rdb := newRedisStore(t, time.Minute)
	quizID := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, config.CacheKey.QuizAnswersKey(quizID)) })

	_ = s.Create(ctx, quizID, map[int]string{1: "a", 2: "b"})
	_ = s.Create(ctx, quizID, map[int]string{1: "c"})

	all, err := s.RevealAll(ctx, quizID)
	if err != nil || len(all) != 1 || all[1] != "c" {
		t.Errorf("RevealAll = %v, %v", all, err)
	}
}
