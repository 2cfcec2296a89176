package repository

import (
	"context"
	"errors"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// QuizSessionStore keeps the answer sheet of every generated quiz.
// Answers are keyed by 1-based question id.
type QuizSessionStore interface {
	// Create stores answers under quizID, replacing any previous entry.
	Create(ctx context.Context, quizID string, answers map[int]string) error
	// CheckAnswer compares selected with the stored answer, exact and case-sensitive.
	CheckAnswer(ctx context.Context, quizID string, questionID int, selected string) (bool, error)
	// RevealAll returns a copy of the full answer sheet.
	RevealAll(ctx context.Context, quizID string) (map[int]string, error)
}
