package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/stemsi/quizai-backend/internal/config"
	"github.com/stemsi/quizai-backend/internal/llm"
	"github.com/stemsi/quizai-backend/internal/logger"
	"github.com/stemsi/quizai-backend/internal/model"
	"golang.org/x/term"
)

func main() {
	topic := flag.String("topic", "", "quiz topic")
	difficulty := flag.String("difficulty", "", "quiz difficulty, e.g. easy")
	count := flag.Int("n", model.DefaultQuestions, "number of questions (3-12)")
	asJSON := flag.Bool("json", false, "print the quiz as JSON instead of playing it")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	// Logs go to stderr so stdout carries only the quiz.
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	reader := bufio.NewReader(os.Stdin)

	// ─── CLI Input ─────────────────────────────────────────────────────
	if cfg.GeminiAPIKey == "" && interactive {
		fmt.Print("Enter Gemini API Key: ")
		key, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Error reading API key")
			os.Exit(1)
		}
		cfg.GeminiAPIKey = strings.TrimSpace(string(key))
	}

	if *topic == "" && interactive {
		*topic = prompt(reader, "Enter Topic: ")
	}
	if *difficulty == "" && interactive {
		*difficulty = prompt(reader, "Enter Difficulty (default easy): ")
		if *difficulty == "" {
			*difficulty = "easy"
		}
	}

	if strings.TrimSpace(*topic) == "" || strings.TrimSpace(*difficulty) == "" {
		fmt.Fprintln(os.Stderr, "Error: topic and difficulty are required")
		os.Exit(2)
	}
	if *count < model.MinQuestions || *count > model.MaxQuestions {
		fmt.Fprintf(os.Stderr, "Error: -n must be between %d and %d\n", model.MinQuestions, model.MaxQuestions)
		os.Exit(2)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	client := llm.NewGeminiClient(cfg, log)

	questions, err := client.Generate(context.Background(), strings.TrimSpace(*topic), strings.TrimSpace(*difficulty), *count)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate quiz")
	}

	if *asJSON || !interactive {
		printJSON(questions)
		return
	}

	play(reader, questions)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Println()
		os.Exit(1)
	}
	return strings.TrimSpace(line)
}

func printJSON(questions []model.GeneratedQuestion) {
	items := make([]model.QuizItem, len(questions))
	for i, q := range questions {
		items[i] = model.QuizItem{
			Question:      q.Question,
			Alternatives:  model.ToAlternatives(q.Alternatives),
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model.InlineQuizResponse{Quizzes: items}); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing quiz:", err)
		os.Exit(1)
	}
}

// play asks each question in order and prints the score at the end.
func play(reader *bufio.Reader, questions []model.GeneratedQuestion) {
	score := 0
	for i, q := range questions {
		fmt.Printf("\n%d. %s\n", i+1, q.Question)
		for j, alt := range q.Alternatives {
			fmt.Printf("   %c) %s\n", 'a'+j, alt)
		}

		choice := pick(reader, len(q.Alternatives))
		if q.Alternatives[choice] == q.CorrectAnswer {
			score++
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Wrong. The answer is: %s\n", q.CorrectAnswer)
		}
	}

	fmt.Printf("\nScore: %d/%d\n", score, len(questions))
}

// pick reads a letter or 1-based number until it names one of n options.
func pick(reader *bufio.Reader, n int) int {
	for {
		answer := strings.ToLower(prompt(reader, "Your answer: "))
		if len(answer) == 1 && answer[0] >= 'a' && int(answer[0]-'a') < n {
			return int(answer[0] - 'a')
		}
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= n {
			return idx - 1
		}
		fmt.Printf("Please answer with a letter a-%c\n", 'a'+n-1)
	}
}
