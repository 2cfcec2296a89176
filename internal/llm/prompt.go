package llm

import (
	"fmt"

	"github.com/stemsi/quizai-backend/internal/model"
)

const responseFormat = `[{"question": "...", "alternatives": ["...", "...", "...", "..."], "correct_answer": "..."}]`

// BuildPrompt renders the instruction sent to the model for one quiz.
func BuildPrompt(topic, difficulty string, numQuestions int) string {
	return fmt.Sprintf(
		"Generate exactly %d multiple-choice quiz questions about %q, each with exactly %d alternatives.\n"+
			"Difficulty: %s.\n"+
			"The \"correct_answer\" must be copied verbatim from one of the alternatives.\n"+
			"Respond ONLY with a valid JSON array, with no text before or after it, in the format:\n"+
			"%s",
		numQuestions, topic, model.AlternativesPerQuestion, difficulty, responseFormat,
	)
}
