package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizai-backend/internal/llm"
	"github.com/stemsi/quizai-backend/internal/model"
	"github.com/stemsi/quizai-backend/internal/repository"
)

type fakeGenerator struct {
	questions []model.GeneratedQuestion
	err       error
	calls     int
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string, n int) ([]model.GeneratedQuestion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.questions != nil {
		return f.questions, nil
	}
	qs := make([]model.GeneratedQuestion, n)
	for i := range qs {
		qs[i] = model.GeneratedQuestion{
			Question:      fmt.Sprintf("Q%d", i+1),
			Alternatives:  []string{"a", "b", "c", fmt.Sprintf("answer-%d", i+1)},
			CorrectAnswer: fmt.Sprintf("answer-%d", i+1),
		}
	}
	return qs, nil
}

type failingStore struct{ repository.QuizSessionStore }

func (failingStore) Create(context.Context, string, map[int]string) error {
	return errors.New("store unavailable")
}

func newService(gen QuizGenerator, store repository.QuizSessionStore) *QuizService {
	s := NewQuizService(gen, store, zerolog.Nop())
	s.newID = func() string { return "quiz-fixed" }
	return s
}

func TestGenerateStripsAnswersAndStoresThem(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryQuizSessionStore(10, time.Hour)
	svc := newService(&fakeGenerator{}, store)

	resp, err := svc.Generate(ctx, model.QuizRequest{Topic: "Rome", Difficulty: "easy", NumQuestions: 3})
	if err != nil {
		t.Fatal(err)
	}
	if resp.QuizID != "quiz-fixed" || len(resp.Questions) != 3 {
		t.Fatalf("resp = %+v", resp)
	}
	for i, q := range resp.Questions {
		if q.ID != i+1 || q.Question != fmt.Sprintf("Q%d", i+1) || len(q.Alternatives) != 4 {
			t.Errorf("question %d = %+v", i, q)
		}
	}

	ok, err := svc.CheckAnswer(ctx, model.AnswerRequest{QuizID: "quiz-fixed", QuestionID: questionID(2), SelectedAnswer: "answer-2"})
	if err != nil || !ok.Correct {
		t.Errorf("CheckAnswer correct = %+v, %v", ok, err)
	}
	bad, err := svc.CheckAnswer(ctx, model.AnswerRequest{QuizID: "quiz-fixed", QuestionID: questionID(2), SelectedAnswer: "a"})
	if err != nil || bad.Correct {
		t.Errorf("CheckAnswer wrong = %+v, %v", bad, err)
	}

	sheet, err := svc.RevealAnswers(ctx, "quiz-fixed")
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.CorrectAnswers) != 3 || sheet.CorrectAnswers[3] != "answer-3" {
		t.Errorf("sheet = %+v", sheet)
	}
}

func TestGenerateUsesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewQuizService(&fakeGenerator{}, repository.NewMemoryQuizSessionStore(10, time.Hour), zerolog.Nop())
	req := model.QuizRequest{Topic: "Rome", Difficulty: "easy", NumQuestions: 3}

	a, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if a.QuizID == "" || a.QuizID == b.QuizID {
		t.Errorf("quiz ids not unique: %q %q", a.QuizID, b.QuizID)
	}
}

func TestGeneratePropagatesGeneratorError(t *testing.T) {
	store := repository.NewMemoryQuizSessionStore(10, time.Hour)
	gen := &fakeGenerator{err: &llm.CountMismatchError{Expected: 3, Actual: 2}}
	svc := newService(gen, store)

	_, err := svc.Generate(context.Background(), model.QuizRequest{Topic: "Rome", Difficulty: "easy", NumQuestions: 3})
	if !errors.Is(err, llm.ErrCountMismatch) {
		t.Fatalf("err = %v, want ErrCountMismatch", err)
	}
	if store.Len() != 0 {
		t.Errorf("a session was created for a failed generation")
	}
}

func TestGenerateStoreFailure(t *testing.T) {
	svc := newService(&fakeGenerator{}, failingStore{})
	_, err := svc.Generate(context.Background(), model.QuizRequest{Topic: "Rome", Difficulty: "easy", NumQuestions: 3})
	if err == nil || llm.IsGenerationError(err) {
		t.Fatalf("err = %v, want local store error", err)
	}
}

func TestGenerateInlineKeepsAnswersAndStoresNothing(t *testing.T) {
	store := repository.NewMemoryQuizSessionStore(10, time.Hour)
	svc := newService(&fakeGenerator{}, store)

	resp, err := svc.GenerateInline(context.Background(), model.QuizRequest{Topic: "Rome", Difficulty: "easy", NumQuestions: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Quizzes) != 5 {
		t.Fatalf("got %d items", len(resp.Quizzes))
	}
	for i, item := range resp.Quizzes {
		if item.CorrectAnswer != fmt.Sprintf("answer-%d", i+1) {
			t.Errorf("item %d correct_answer = %q", i, item.CorrectAnswer)
		}
	}
	if store.Len() != 0 {
		t.Errorf("inline generation created %d sessions", store.Len())
	}
}

func TestCheckAnswerNotFound(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryQuizSessionStore(10, time.Hour)
	svc := newService(&fakeGenerator{}, store)
	_, _ = svc.Generate(ctx, model.QuizRequest{Topic: "Rome", Difficulty: "easy", NumQuestions: 3})

	if _, err := svc.CheckAnswer(ctx, model.AnswerRequest{QuizID: "nope", QuestionID: questionID(1), SelectedAnswer: "a"}); !errors.Is(err, repository.ErrQuizNotFound) {
		t.Errorf("unknown quiz err = %v", err)
	}
	if _, err := svc.CheckAnswer(ctx, model.AnswerRequest{QuizID: "quiz-fixed", QuestionID: questionID(4), SelectedAnswer: "a"}); !errors.Is(err, repository.ErrQuestionNotFound) {
		t.Errorf("unknown question err = %v", err)
	}
	for _, id := range []int{0, -1} {
		if _, err := svc.CheckAnswer(ctx, model.AnswerRequest{QuizID: "quiz-fixed", QuestionID: questionID(id), SelectedAnswer: "a"}); !errors.Is(err, repository.ErrQuestionNotFound) {
			t.Errorf("question %d err = %v", id, err)
		}
	}
	if _, err := svc.CheckAnswer(ctx, model.AnswerRequest{QuizID: "quiz-fixed", SelectedAnswer: "a"}); !errors.Is(err, repository.ErrQuestionNotFound) {
		t.Errorf("missing question id err = %v", err)
	}
	if _, err := svc.RevealAnswers(ctx, "nope"); !errors.Is(err, repository.ErrQuizNotFound) {
		t.Errorf("reveal unknown err = %v", err)
	}
}

func questionID(id int) *int { return &id }
