package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// envelope wraps text the way the provider does.
func envelope(text string) []byte {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return body
}

// questionsJSON renders n well-formed questions.
func questionsJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(
			`{"question": "Q%d?", "alternatives": ["A%d", "B%d", "C%d", "D%d"], "correct_answer": "B%d"}`,
			i+1, i+1, i+1, i+1, i+1, i+1,
		)
	}
	return "[" + strings.Join(items, ",") + "]"
}
