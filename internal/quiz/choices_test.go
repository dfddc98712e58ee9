package quiz_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/lifeprep/backend/internal/grading"
	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/quiz"
)

func q(id, text, answer string) question.Question {
	return question.Question{
		ID: id, Text: text, Answer: answer,
		Topic: question.TopicHistory, Category: question.CategoryGeneral,
	}
}

func samplePool() (question.Question, []question.Question) {
	a := q("a", "When was the Magna Carta signed?", "1215")
	pool := []question.Question{
		q("b", "When was the Battle of Agincourt?", "1415"),
		q("c", "True or false: The UK has a constitution.", "true"),
		q("d", "What is the capital of France?", "Paris"),
	}
	return a, pool
}

func contains(opts []string, want string) bool {
	for _, o := range opts {
		if o == want {
			return true
		}
	}
	return false
}

func TestBuildChoicesBoolean(t *testing.T) {
	boolQ := q("c", "True or false: The UK has a constitution.", "true")
	_, pool := samplePool()

	for seed := int64(1); seed <= 5; seed++ {
		opts := quiz.BuildChoices(boolQ, pool, seed)
		if len(opts) != 2 {
			t.Fatalf("seed %d: expected 2 options, got %v", seed, opts)
		}
		if !contains(opts, "True") || !contains(opts, "False") {
			t.Fatalf("seed %d: expected {True, False}, got %v", seed, opts)
		}
	}
}

func TestBuildChoicesBooleanByAnswerOnly(t *testing.T) {
	boolQ := q("c", "Is the UK a monarchy?", "True.")
	opts := quiz.BuildChoices(boolQ, nil, 7)
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %v", opts)
	}
}

func TestBuildChoicesYear(t *testing.T) {
	yearQ, pool := samplePool()
	opts := quiz.BuildChoices(yearQ, pool, 1)

	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %v", opts)
	}
	if !contains(opts, "1215") {
		t.Fatalf("correct answer missing from %v", opts)
	}
	for _, o := range opts {
		y, err := strconv.Atoi(o)
		if err != nil || y < 1000 || y > 2099 {
			t.Errorf("option %q does not parse to a year in range", o)
		}
	}
}

func TestBuildChoicesYearKeepsWording(t *testing.T) {
	yearQ := q("a", "When did the Wars of the Roses begin?", "In the 1450s.")
	opts := quiz.BuildChoices(yearQ, nil, 3)
	if !contains(opts, "In the 1450s.") {
		t.Fatalf("correct phrase missing from %v", opts)
	}
	for _, o := range opts {
		if len(o) < len("In the 1000s.") || o[:7] != "In the " {
			t.Errorf("option %q lost the original wording", o)
		}
	}
}

func TestBuildChoicesGeneralText(t *testing.T) {
	textQ := q("x", "What is the capital of France?", "Paris")
	pool := []question.Question{
		q("p1", "", "London"),
		q("p2", "", "Berlin"),
		q("p3", "", "Madrid"),
		q("p4", "", "Rome"),
		q("p5", "", "Lisbon"),
	}
	opts := quiz.BuildChoices(textQ, pool, 42)
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %v", opts)
	}
	if !contains(opts, "Paris") {
		t.Fatalf("correct answer missing from %v", opts)
	}
	seen := map[string]bool{}
	for _, o := range opts {
		if seen[o] {
			t.Fatalf("duplicate option %q in %v", o, opts)
		}
		seen[o] = true
	}
}

func TestBuildChoicesDeterministic(t *testing.T) {
	yearQ, pool := samplePool()
	first := quiz.BuildChoices(yearQ, pool, 99)
	second := quiz.BuildChoices(yearQ, pool, 99)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different orders: %v vs %v", first, second)
	}
}

func TestBuildChoicesEmptyPool(t *testing.T) {
	textQ := q("x", "What is the capital of France?", "Paris")
	opts := quiz.BuildChoices(textQ, nil, 1)
	if len(opts) != 1 || opts[0] != "Paris" {
		t.Fatalf("expected degraded single-option set, got %v", opts)
	}
}

func TestBuildChoicesNormalizedCorrectPresent(t *testing.T) {
	cases := []question.Question{
		q("a", "When was the Magna Carta signed?", "1215"),
		q("c", "True or false: The UK has a constitution.", "true"),
		q("d", "What is the capital of France?", "Paris"),
	}
	_, pool := samplePool()
	for _, tc := range cases {
		opts := quiz.BuildChoices(tc, pool, 5)
		found := false
		for _, o := range opts {
			if grading.Equal(o, tc.Answer) {
				found = true
			}
		}
		if !found {
			t.Errorf("normalized correct answer for %q missing from %v", tc.ID, opts)
		}
	}
}

func TestBuildExamChoicesPrefersSameTopic(t *testing.T) {
	target := question.Question{
		ID: "t", Text: "When was the Battle of Hastings?", Answer: "1066",
		Topic: question.TopicHistory, Category: question.CategoryGeneral,
	}
	pool := []question.Question{
		{ID: "h1", Answer: "1215", Topic: question.TopicHistory},
		{ID: "h2", Answer: "1415", Topic: question.TopicHistory},
		{ID: "h3", Answer: "1666", Topic: question.TopicHistory},
		{ID: "g1", Answer: "Edinburgh", Topic: question.TopicGeography},
	}
	opts := quiz.BuildExamChoices(target, pool, 11)
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %v", opts)
	}
	if contains(opts, "Edinburgh") {
		t.Fatalf("off-topic distractor chosen despite full same-topic pool: %v", opts)
	}
	if !contains(opts, "1066") {
		t.Fatalf("correct answer missing from %v", opts)
	}
}

func TestBuildExamChoicesFallsBackToFullPool(t *testing.T) {
	target := question.Question{
		ID: "t", Answer: "1066", Topic: question.TopicCulture,
	}
	pool := []question.Question{
		{ID: "h1", Answer: "1215", Topic: question.TopicHistory},
		{ID: "h2", Answer: "1415", Topic: question.TopicHistory},
		{ID: "h3", Answer: "1666", Topic: question.TopicHistory},
	}
	opts := quiz.BuildExamChoices(target, pool, 11)
	if len(opts) != 4 {
		t.Fatalf("expected fallback to full pool, got %v", opts)
	}
}

func TestBuildExamChoicesDeterministicWithoutSeed(t *testing.T) {
	target, pool := samplePool()
	first := quiz.BuildExamChoices(target, pool, 0)
	second := quiz.BuildExamChoices(target, pool, 0)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("zero seed should fall back to the question id: %v vs %v", first, second)
	}
}
