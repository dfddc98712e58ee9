package question_test

import (
	"context"
	"testing"

	"github.com/lifeprep/backend/internal/question"
)

func seedStore() *question.MemoryStore {
	s := question.NewMemoryStore()
	s.Put(question.Question{ID: "1", Text: "When was the Magna Carta signed?", Answer: "1215",
		Topic: question.TopicHistory, Category: question.CategoryGeneral, Subcategory: "Charters"})
	s.Put(question.Question{ID: "2", Text: "Who heads the UK government?", Answer: "The Prime Minister",
		Topic: question.TopicGovernment, Category: question.CategoryCommon})
	s.Put(question.Question{ID: "3", Text: "What is a bank holiday?", Answer: "A public holiday",
		Topic: question.TopicCulture, Category: question.CategoryHardest})
	s.Put(question.Question{ID: "4", Text: "Chapter 1 extract", Answer: "A long time ago",
		Topic: question.TopicHistory, Category: question.CategoryBookBased, Subcategory: "Chapter 1"})
	return s
}

func TestFilterModeAll(t *testing.T) {
	s := seedStore()
	got, err := s.Filter(context.Background(), question.FilterOpts{Mode: "all"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4, got %d", len(got))
	}
}

func TestFilterPracticeMixExcludesBookBased(t *testing.T) {
	s := seedStore()
	got, err := s.Filter(context.Background(), question.FilterOpts{Mode: "practice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	for _, q := range got {
		if q.Category == question.CategoryBookBased {
			t.Fatalf("book_based question %s in practice mix", q.ID)
		}
	}
}

func TestFilterByCategoryAndTopicKeys(t *testing.T) {
	s := seedStore()
	byCat, _ := s.Filter(context.Background(), question.FilterOpts{Mode: "hardest"})
	if len(byCat) != 1 || byCat[0].ID != "3" {
		t.Fatalf("category mode: got %+v", byCat)
	}
	byTopic, _ := s.Filter(context.Background(), question.FilterOpts{Mode: "history"})
	if len(byTopic) != 2 {
		t.Fatalf("topic mode: expected 2, got %d", len(byTopic))
	}
}

func TestFilterUnknownModeIsEmpty(t *testing.T) {
	s := seedStore()
	got, _ := s.Filter(context.Background(), question.FilterOpts{Mode: "nonsense"})
	if len(got) != 0 {
		t.Fatalf("unknown mode should be empty, got %d", len(got))
	}
}

func TestFilterQuerySearchesAllTextFields(t *testing.T) {
	s := seedStore()
	got, _ := s.Filter(context.Background(), question.FilterOpts{Mode: "all", Query: "magna"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("text search: got %+v", got)
	}
	got, _ = s.Filter(context.Background(), question.FilterOpts{Mode: "all", Query: "MINISTER"})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("answer search should be case-insensitive: got %+v", got)
	}
}

func TestOthersExcludesGiven(t *testing.T) {
	s := seedStore()
	got, _ := s.Others(context.Background(), "1")
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	for _, q := range got {
		if q.ID == "1" {
			t.Fatal("excluded id returned")
		}
	}
}

func TestSubcategories(t *testing.T) {
	s := seedStore()
	subs, _ := s.Subcategories(context.Background(), "all")
	if len(subs) != 2 || subs[0] != "Chapter 1" || subs[1] != "Charters" {
		t.Fatalf("got %v", subs)
	}
}

func TestGetNotFound(t *testing.T) {
	s := seedStore()
	if _, err := s.Get(context.Background(), "missing"); err != question.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
