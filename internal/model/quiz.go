package model

// Bounds and default for the number of questions in one quiz.
const (
	MinQuestions     = 3
	MaxQuestions     = 12
	DefaultQuestions = 3

	// AlternativesPerQuestion is the exact number of options every question carries.
	AlternativesPerQuestion = 4
)

// QuizRequest is the payload for generating a quiz.
type QuizRequest struct {
	Topic        string `json:"topic" binding:"required,notblank,max=200"`
	Difficulty   string `json:"difficulty" binding:"required,notblank,max=50"`
	NumQuestions int    `json:"num_questions" binding:"min=3,max=12"`
}

// NewQuizRequest returns a request pre-filled with defaults, ready to be bound.
func NewQuizRequest() QuizRequest {
	return QuizRequest{NumQuestions: DefaultQuestions}
}

// GeneratedQuestion is one question as produced by the model, answer included.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Alternatives  []string `json:"alternatives"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizAlternative is one selectable option.
type QuizAlternative struct {
	Text string `json:"text"`
}

// QuizQuestion is a question without its answer.
type QuizQuestion struct {
	ID           int               `json:"id"`
	Question     string            `json:"question"`
	Alternatives []QuizAlternative `json:"alternatives"`
}

// QuizResponse is returned by generate in session mode.
type QuizResponse struct {
	QuizID    string         `json:"quiz_id"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizItem is a question with its answer, used in inline mode.
type QuizItem struct {
	Question      string            `json:"question"`
	Alternatives  []QuizAlternative `json:"alternatives"`
	CorrectAnswer string            `json:"correct_answer"`
}

// InlineQuizResponse is returned by generate in inline mode.
type InlineQuizResponse struct {
	Quizzes []QuizItem `json:"quizzes"`
}

// AnswerRequest is the payload for checking one answer.
// QuestionID is a pointer so 0 still counts as present; unknown ids are the store's call.
// SelectedAnswer may be empty and is compared verbatim.
type AnswerRequest struct {
	QuizID         string `json:"quiz_id" binding:"required,notblank"`
	QuestionID     *int   `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer"`
}

type AnswerResponse struct {
	Correct bool `json:"correct"`
}

// QuizAnswersResponse is the full answer sheet of a quiz.
type QuizAnswersResponse struct {
	QuizID         string         `json:"quiz_id"`
	CorrectAnswers map[int]string `json:"correct_answers"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ToAlternatives wraps plain option texts.
func ToAlternatives(texts []string) []QuizAlternative {
	alts := make([]QuizAlternative, len(texts))
	for i, t := range texts {
		alts[i] = QuizAlternative{Text: t}
	}
	return alts
}
