package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/llm"
	"github.com/stemsi/quizai-backend/internal/model"
	"github.com/stemsi/quizai-backend/internal/repository"
	"github.com/stemsi/quizai-backend/internal/response"
	"github.com/stemsi/quizai-backend/internal/validator"
)

// QuizService is what the handler needs from the service layer.
type QuizService interface {
	Generate(ctx context.Context, req model.QuizRequest) (*model.QuizResponse, error)
	GenerateInline(ctx context.Context, req model.QuizRequest) (*model.InlineQuizResponse, error)
	CheckAnswer(ctx context.Context, req model.AnswerRequest) (*model.AnswerResponse, error)
	RevealAnswers(ctx context.Context, quizID string) (*model.QuizAnswersResponse, error)
}

type QuizHandler struct {
	quizService QuizService
	inline      bool
	log         zerolog.Logger
}

// NewQuizHandler creates the quiz handler. inline selects the answers-included variant of Generate.
func NewQuizHandler(quizService QuizService, inline bool, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		inline:      inline,
		log:         log.With().Str("component", "quiz_handler").Logger(),
	}
}

// Generate godoc
// POST /quiz/generate
func (h *QuizHandler) Generate(c *gin.Context) {
	req := model.NewQuizRequest()
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	req.Difficulty = strings.TrimSpace(req.Difficulty)

	h.log.Info().
		Str("request_id", response.RequestID(c)).
		Str("topic", req.Topic).
		Str("difficulty", req.Difficulty).
		Int("num_questions", req.NumQuestions).
		Msg("New quiz request")

	var (
		result interface{}
		err    error
	)
	if h.inline {
		result, err = h.quizService.GenerateInline(c.Request.Context(), req)
	} else {
		result, err = h.quizService.Generate(c.Request.Context(), req)
	}
	if err != nil {
		h.failGeneration(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CheckAnswer godoc
// POST /quiz/answer
func (h *QuizHandler) CheckAnswer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.quizService.CheckAnswer(c.Request.Context(), req)
	if err != nil {
		h.failLookup(c, err, req.QuizID)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RevealAnswers godoc
// GET /quiz/answers/:quiz_id
func (h *QuizHandler) RevealAnswers(c *gin.Context) {
	quizID := c.Param("quiz_id")

	result, err := h.quizService.RevealAnswers(c.Request.Context(), quizID)
	if err != nil {
		h.failLookup(c, err, quizID)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// failGeneration logs the full cause and answers with a generic error.
func (h *QuizHandler) failGeneration(c *gin.Context, err error) {
	_ = c.Error(err)
	ev := h.log.Error().Err(err).Str("request_id", response.RequestID(c))

	if llm.IsGenerationError(err) {
		var countErr *llm.CountMismatchError
		if errors.As(err, &countErr) {
			ev = ev.Int("expected", countErr.Expected).Int("actual", countErr.Actual)
		}
		ev.Msg("Quiz generation failed upstream")
		response.Fail(c, http.StatusInternalServerError, response.ErrUpstream)
		return
	}

	ev.Msg("Quiz generation failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

func (h *QuizHandler) failLookup(c *gin.Context, err error, quizID string) {
	switch {
	case errors.Is(err, repository.ErrQuizNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
	case errors.Is(err, repository.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
	default:
		_ = c.Error(err)
		h.log.Error().Err(err).Str("quiz_id", quizID).Msg("Quiz lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
