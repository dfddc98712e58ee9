package quiz_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/quiz"
)

func poolOf(n int) ([]string, map[string]question.Question) {
	ids := make([]string, 0, n)
	byID := map[string]question.Question{}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("q%02d", i)
		ids = append(ids, id)
		byID[id] = question.Question{
			ID:     id,
			Text:   fmt.Sprintf("Question %d?", i),
			Answer: fmt.Sprintf("Answer %d", i),
			Topic:  question.TopicHistory,
		}
	}
	return ids, byID
}

func TestStartSelectsAtMostPoolSize(t *testing.T) {
	ids, _ := poolOf(5)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 24, 2700, rand.New(rand.NewSource(1))); err != nil {
		t.Fatal(err)
	}
	if len(e.QuestionIDs) != 5 {
		t.Fatalf("expected all 5 ids, got %d", len(e.QuestionIDs))
	}
	if e.State != quiz.ExamInProgress {
		t.Fatalf("expected in_progress, got %s", e.State)
	}
}

func TestStartSamplesWithoutReplacement(t *testing.T) {
	ids, _ := poolOf(50)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 24, 2700, rand.New(rand.NewSource(2))); err != nil {
		t.Fatal(err)
	}
	if len(e.QuestionIDs) != 24 {
		t.Fatalf("expected 24 ids, got %d", len(e.QuestionIDs))
	}
	seen := map[string]bool{}
	for _, id := range e.QuestionIDs {
		if seen[id] {
			t.Fatalf("id %s selected twice", id)
		}
		seen[id] = true
	}
}

func TestStartTwiceRejected(t *testing.T) {
	ids, _ := poolOf(5)
	e := quiz.NewExamSession()
	rng := rand.New(rand.NewSource(3))
	if err := e.Start(ids, 5, 2700, rng); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(ids, 5, 2700, rng); !errors.Is(err, quiz.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFullExamRun(t *testing.T) {
	ids, byID := poolOf(5)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 24, 2700, rand.New(rand.NewSource(4))); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		id, err := e.CurrentID()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		cur := byID[id]
		submitted := cur.Answer
		if i%2 == 1 {
			submitted = "wrong"
		}
		entry, err := e.Answer(cur, submitted)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if entry.WasCorrect != (i%2 == 0) {
			t.Fatalf("step %d: unexpected correctness %v", i, entry.WasCorrect)
		}
		if e.Correct+e.Incorrect > e.Index+1 {
			t.Fatalf("step %d: counts %d+%d exceed index+1", i, e.Correct, e.Incorrect)
		}
		if err := e.Advance(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if e.State != quiz.ExamFinished {
		t.Fatalf("expected finished, got %s", e.State)
	}
	s, err := e.Finish(18)
	if err != nil {
		t.Fatal(err)
	}
	if s.Total != 5 || s.Correct != 3 || s.Incorrect != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Passed {
		t.Fatal("3 correct should not pass an 18 mark")
	}
	if len(s.Review) != 5 {
		t.Fatalf("expected 5 review entries, got %d", len(s.Review))
	}
	if e.State != quiz.ExamNotStarted {
		t.Fatalf("finish should reset, got %s", e.State)
	}
}

func TestAnswerTwiceRejected(t *testing.T) {
	ids, byID := poolOf(3)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 3, 2700, rand.New(rand.NewSource(5))); err != nil {
		t.Fatal(err)
	}
	id, _ := e.CurrentID()
	if _, err := e.Answer(byID[id], "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Answer(byID[id], "x"); !errors.Is(err, quiz.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if e.Correct+e.Incorrect != 1 {
		t.Fatalf("double answer corrupted counts: %d/%d", e.Correct, e.Incorrect)
	}
}

func TestNormalizedScoring(t *testing.T) {
	ids, byID := poolOf(1)
	cur := byID[ids[0]]
	cur.Answer = "Paris"
	byID[ids[0]] = cur

	e := quiz.NewExamSession()
	if err := e.Start(ids, 1, 2700, rand.New(rand.NewSource(6))); err != nil {
		t.Fatal(err)
	}
	entry, err := e.Answer(byID[ids[0]], "PARIS.")
	if err != nil {
		t.Fatal(err)
	}
	if !entry.WasCorrect {
		t.Fatal("PARIS. should match Paris after normalization")
	}
}

func TestTimeExpiryFinishes(t *testing.T) {
	ids, _ := poolOf(5)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 5, 2700, rand.New(rand.NewSource(7))); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitTime(-30); err != nil {
		t.Fatal(err)
	}
	if e.State != quiz.ExamFinished {
		t.Fatalf("negative remaining time should clamp to 0 and finish, got %s", e.State)
	}
	s, err := e.Finish(18)
	if err != nil {
		t.Fatal(err)
	}
	if s.Minutes != 0 || s.Seconds != 0 {
		t.Fatalf("expected zero time remaining, got %d:%d", s.Minutes, s.Seconds)
	}
}

func TestSubmitTimeStoresRemaining(t *testing.T) {
	ids, _ := poolOf(5)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 5, 2700, rand.New(rand.NewSource(8))); err != nil {
		t.Fatal(err)
	}
	if err := e.SubmitTime(125); err != nil {
		t.Fatal(err)
	}
	if e.State != quiz.ExamInProgress || e.TimeLeft != 125 {
		t.Fatalf("unexpected state %s / time %d", e.State, e.TimeLeft)
	}
}

func TestOperationsOutsideValidState(t *testing.T) {
	e := quiz.NewExamSession()
	if err := e.Advance(); !errors.Is(err, quiz.ErrInvalidState) {
		t.Fatalf("Advance before start: got %v", err)
	}
	if err := e.SubmitTime(10); !errors.Is(err, quiz.ErrInvalidState) {
		t.Fatalf("SubmitTime before start: got %v", err)
	}
	if _, err := e.Finish(18); !errors.Is(err, quiz.ErrInvalidState) {
		t.Fatalf("Finish before finished: got %v", err)
	}
	if _, err := e.Answer(question.Question{ID: "x"}, "y"); !errors.Is(err, quiz.ErrInvalidState) {
		t.Fatalf("Answer before start: got %v", err)
	}
}

func TestResetDiscardsProgress(t *testing.T) {
	ids, byID := poolOf(3)
	e := quiz.NewExamSession()
	if err := e.Start(ids, 3, 2700, rand.New(rand.NewSource(9))); err != nil {
		t.Fatal(err)
	}
	id, _ := e.CurrentID()
	if _, err := e.Answer(byID[id], "whatever"); err != nil {
		t.Fatal(err)
	}
	e.Reset()
	if e.State != quiz.ExamNotStarted || e.Correct != 0 || e.Incorrect != 0 || len(e.Review) != 0 {
		t.Fatalf("reset left state behind: %+v", e)
	}
}
