package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quizai-backend/internal/config"
)

// RedisQuizSessionStore keeps each answer sheet in a Redis hash that expires after ttl.
type RedisQuizSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisQuizSessionStore creates a Redis-backed store. ttl <= 0 keeps keys forever.
func NewRedisQuizSessionStore(rdb *redis.Client, ttl time.Duration) *RedisQuizSessionStore {
	return &RedisQuizSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisQuizSessionStore) Create(ctx context.Context, quizID string, answers map[int]string) error {
	key := config.CacheKey.QuizAnswersKey(quizID)

	fields := make(map[string]any, len(answers))
	for id, answer := range answers {
		fields[strconv.Itoa(id)] = answer
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store quiz answers: %w", err)
	}
	return nil
}

func (s *RedisQuizSessionStore) CheckAnswer(ctx context.Context, quizID string, questionID int, selected string) (bool, error) {
	key := config.CacheKey.QuizAnswersKey(quizID)

	pipe := s.rdb.Pipeline()
	existsCmd := pipe.Exists(ctx, key)
	answerCmd := pipe.HGet(ctx, key, strconv.Itoa(questionID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("check quiz answer: %w", err)
	}

	if existsCmd.Val() == 0 {
		return false, ErrQuizNotFound
	}
	correct, err := answerCmd.Result()
	if errors.Is(err, redis.Nil) {
		return false, ErrQuestionNotFound
	}
	if err != nil {
		return false, fmt.Errorf("check quiz answer: %w", err)
	}
	return selected == correct, nil
}

func (s *RedisQuizSessionStore) RevealAll(ctx context.Context, quizID string) (map[int]string, error) {
	raw, err := s.rdb.HGetAll(ctx, config.CacheKey.QuizAnswersKey(quizID)).Result()
	if err != nil {
		return nil, fmt.Errorf("reveal quiz answers: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrQuizNotFound
	}

	answers := make(map[int]string, len(raw))
	for field, answer := range raw {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("reveal quiz answers: bad question id %q", field)
		}
		answers[id] = answer
	}
	return answers, nil
}
