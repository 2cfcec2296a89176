package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/config"
	"github.com/stemsi/quizai-backend/internal/model"
)

const (
	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// GeminiClient calls the generateContent endpoint once per quiz. It never retries.
type GeminiClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	log        zerolog.Logger
}

// NewGeminiClient creates a client bounded by cfg.GeminiTimeout.
// A missing API key is logged, not rejected; calls will fail upstream.
func NewGeminiClient(cfg *config.Config, log zerolog.Logger) *GeminiClient {
	l := log.With().Str("component", "gemini_client").Logger()
	if cfg.GeminiAPIKey == "" {
		l.Warn().Msg("GEMINI_API_KEY is not set; quiz generation will fail until it is configured")
	} else {
		l.Info().Msg("GEMINI_API_KEY loaded")
	}

	return &GeminiClient{
		httpClient: &http.Client{Timeout: cfg.GeminiTimeout},
		apiURL:     cfg.GeminiAPIURL,
		apiKey:     cfg.GeminiAPIKey,
		log:        l,
	}
}

// Generate builds the prompt, performs the call and returns the validated questions.
func (c *GeminiClient) Generate(ctx context.Context, topic, difficulty string, numQuestions int) ([]model.GeneratedQuestion, error) {
	c.log.Info().
		Str("topic", topic).
		Str("difficulty", difficulty).
		Int("num_questions", numQuestions).
		Msg("Generating quiz")

	prompt := BuildPrompt(topic, difficulty, numQuestions)
	c.log.Debug().Str("prompt", prompt).Msg("Prompt built")

	body, err := c.post(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := ParseResponse(body, numQuestions)
	if err != nil {
		var jsonErr *InvalidJSONError
		switch {
		case errors.Is(err, ErrMalformedResponse):
			c.log.Error().Err(err).Int("body_bytes", len(body)).Msg("Unexpected envelope from provider")
		case errors.As(err, &jsonErr):
			c.log.Error().Err(err).Str("raw_text", jsonErr.Raw).Msg("Model returned invalid JSON")
		default:
			c.log.Error().Err(err).Msg("Model output rejected")
		}
		return nil, err
	}

	c.log.Info().Int("questions", len(questions)).Msg("Quiz parsed")
	return questions, nil
}

func (c *GeminiClient) post(ctx context.Context, prompt string) ([]byte, error) {
	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse api url: %v", ErrUpstream, err)
	}
	q := endpoint.Query()
	q.Set("key", c.apiKey)
	endpoint.RawQuery = q.Encode()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redactURL(err)
		c.log.Error().Err(err).Msg("Provider request failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.log.Info().Int("status", resp.StatusCode).Msg("Provider responded")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &UpstreamStatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
		c.log.Error().Err(statusErr).Msg("Provider returned an error status")
		return nil, statusErr
	}
	return raw, nil
}

// redactURL strips the query string (which holds the API key) from transport errors.
func redactURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if u, perr := url.Parse(ue.URL); perr == nil {
			u.RawQuery = ""
			ue.URL = u.String()
		}
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
