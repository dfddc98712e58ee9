package quiz_test

import (
	"testing"

	"github.com/lifeprep/backend/internal/quiz"
)

func TestPracticeStats(t *testing.T) {
	var c quiz.PracticeCounters
	c.Record(true)
	c.Record(true)
	c.Record(false)

	s := c.Stats(10)
	if s.Answered != 3 || s.Correct != 2 || s.Incorrect != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.Accuracy == nil || *s.Accuracy != 67 {
		t.Fatalf("expected accuracy 67, got %v", s.Accuracy)
	}
	if s.ProgressPercent != 30 {
		t.Fatalf("expected progress 30, got %d", s.ProgressPercent)
	}
}

func TestPracticeStatsNoAnswers(t *testing.T) {
	var c quiz.PracticeCounters
	s := c.Stats(10)
	if s.Accuracy != nil {
		t.Fatalf("accuracy should be undefined before any answers, got %d", *s.Accuracy)
	}
	if s.ProgressPercent != 0 {
		t.Fatalf("expected progress 0, got %d", s.ProgressPercent)
	}
}

func TestPracticeProgressSaturates(t *testing.T) {
	var c quiz.PracticeCounters
	for i := 0; i < 25; i++ {
		c.Record(i%2 == 0)
	}
	if p := c.Stats(10).ProgressPercent; p != 100 {
		t.Fatalf("expected progress capped at 100, got %d", p)
	}
}

func TestPracticeReset(t *testing.T) {
	var c quiz.PracticeCounters
	c.Record(true)
	c.Record(false)
	c.Reset()
	if c.Correct != 0 || c.Incorrect != 0 {
		t.Fatalf("reset failed: %+v", c)
	}
}
