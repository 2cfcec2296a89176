package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizAnswersKey returns the hash key holding a quiz's answer sheet (question id → answer).
func (r *CacheKeyStruct) QuizAnswersKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:answers", quizID)
}

var CacheKey = NewCacheKeyStruct()
