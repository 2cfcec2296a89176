package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizai-backend/internal/model"
	"github.com/stemsi/quizai-backend/internal/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health godoc
// GET /
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, model.HealthResponse{
		Status:  "ok",
		Message: "QuizAI API is running",
	})
}
