package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/stemsi/quizai-backend/internal/model"
)

// generateContentResponse is the subset of the Gemini envelope we read.
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// fenceMarker matches an opening or closing markdown fence, with an optional language tag.
var fenceMarker = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// ExtractText pulls the generated text out of candidates[0].content.parts[0].text.
func ExtractText(body []byte) (string, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", fmt.Errorf("%w: no text part", ErrMalformedResponse)
	}
	return strings.TrimSpace(*parts[0].Text), nil
}

// StripCodeFence removes markdown fences around the model output.
// Text that does not start with a fence is only trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	return strings.Trim(fenceMarker.ReplaceAllString(text, ""), "` \t\r\n")
}

// ParseQuestions decodes cleaned model text into exactly want validated questions.
func ParseQuestions(text string, want int) ([]model.GeneratedQuestion, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &InvalidJSONError{Raw: text, Err: err}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrUnexpectedShape
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if len(items) != want {
		return nil, &CountMismatchError{Expected: want, Actual: len(items)}
	}

	questions := make([]model.GeneratedQuestion, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &questions[i]); err != nil {
			return nil, &InvalidItemError{Index: i, Reason: "not a question object"}
		}
		if reason := validateQuestion(questions[i]); reason != "" {
			return nil, &InvalidItemError{Index: i, Reason: reason}
		}
	}
	return questions, nil
}

// ParseResponse runs the whole pipeline on a raw provider body:
// envelope text, fence stripping, then array parsing and validation.
func ParseResponse(body []byte, want int) ([]model.GeneratedQuestion, error) {
	text, err := ExtractText(body)
	if err != nil {
		return nil, err
	}
	return ParseQuestions(StripCodeFence(text), want)
}

func validateQuestion(q model.GeneratedQuestion) string {
	if strings.TrimSpace(q.Question) == "" {
		return "question is blank"
	}
	if len(q.Alternatives) != model.AlternativesPerQuestion {
		return fmt.Sprintf("expected %d alternatives, got %d", model.AlternativesPerQuestion, len(q.Alternatives))
	}
	for _, alt := range q.Alternatives {
		if alt == q.CorrectAnswer {
			return ""
		}
	}
	return "correct_answer is not one of the alternatives"
}
