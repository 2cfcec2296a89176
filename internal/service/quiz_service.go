package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/model"
	"github.com/stemsi/quizai-backend/internal/repository"
)

// QuizGenerator produces validated questions for one quiz request.
type QuizGenerator interface {
	Generate(ctx context.Context, topic, difficulty string, numQuestions int) ([]model.GeneratedQuestion, error)
}

// QuizService turns generated questions into client payloads and keeps answer sheets.
type QuizService struct {
	generator QuizGenerator
	store     repository.QuizSessionStore
	newID     func() string
	log       zerolog.Logger
}

// NewQuizService creates a new QuizService. store may be nil when only
// GenerateInline is used.
func NewQuizService(generator QuizGenerator, store repository.QuizSessionStore, log zerolog.Logger) *QuizService {
	return &QuizService{
		generator: generator,
		store:     store,
		newID:     uuid.NewString,
		log:       log.With().Str("component", "quiz_service").Logger(),
	}
}

// Generate creates a quiz, stores its answers and returns it without them.
func (s *QuizService) Generate(ctx context.Context, req model.QuizRequest) (*model.QuizResponse, error) {
	generated, err := s.generator.Generate(ctx, req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	quizID := s.newID()
	answers := make(map[int]string, len(generated))
	questions := make([]model.QuizQuestion, len(generated))
	for i, q := range generated {
		id := i + 1
		questions[i] = model.QuizQuestion{
			ID:           id,
			Question:     q.Question,
			Alternatives: model.ToAlternatives(q.Alternatives),
		}
		answers[id] = q.CorrectAnswer
	}

	if err := s.store.Create(ctx, quizID, answers); err != nil {
		return nil, fmt.Errorf("store quiz %s: %w", quizID, err)
	}

	s.log.Info().
		Str("quiz_id", quizID).
		Int("questions", len(questions)).
		Msg("Quiz generated and stored")

	return &model.QuizResponse{QuizID: quizID, Questions: questions}, nil
}

// GenerateInline creates a quiz and returns it with answers; nothing is stored.
func (s *QuizService) GenerateInline(ctx context.Context, req model.QuizRequest) (*model.InlineQuizResponse, error) {
	generated, err := s.generator.Generate(ctx, req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	items := make([]model.QuizItem, len(generated))
	for i, q := range generated {
		items[i] = model.QuizItem{
			Question:      q.Question,
			Alternatives:  model.ToAlternatives(q.Alternatives),
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	s.log.Info().Int("questions", len(items)).Msg("Inline quiz generated")
	return &model.InlineQuizResponse{Quizzes: items}, nil
}

// CheckAnswer reports whether selected is the stored answer for the question.
func (s *QuizService) CheckAnswer(ctx context.Context, req model.AnswerRequest) (*model.AnswerResponse, error) {
	if req.QuestionID == nil {
		return nil, repository.ErrQuestionNotFound
	}
	questionID := *req.QuestionID

	correct, err := s.store.CheckAnswer(ctx, req.QuizID, questionID, req.SelectedAnswer)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("quiz_id", req.QuizID).
		Int("question_id", questionID).
		Bool("correct", correct).
		Msg("Answer checked")

	return &model.AnswerResponse{Correct: correct}, nil
}

// RevealAnswers returns the full answer sheet of a quiz.
func (s *QuizService) RevealAnswers(ctx context.Context, quizID string) (*model.QuizAnswersResponse, error) {
	answers, err := s.store.RevealAll(ctx, quizID)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("quiz_id", quizID).Int("answers", len(answers)).Msg("Answer sheet revealed")
	return &model.QuizAnswersResponse{QuizID: quizID, CorrectAnswers: answers}, nil
}
