package question

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a question id does not resolve. Exam id
// lists are fixed at start, so callers treat this as a consistency error
// rather than ordinary user input.
var ErrNotFound = errors.New("question not found")

// FilterOpts narrows a question pool. Mode is interpreted first ("all",
// "practice", a category key, or a topic key); the remaining fields are
// applied on top of it. Query is a case-insensitive substring match over
// text, answer and subcategory.
type FilterOpts struct {
	Mode        string
	Topic       string
	Subcategory string
	Query       string
}

// Store is the read/write boundary the quiz core depends on.
type Store interface {
	Get(ctx context.Context, id string) (Question, error)
	All(ctx context.Context) ([]Question, error)
	Filter(ctx context.Context, opts FilterOpts) ([]Question, error)
	// Others returns every question except the one with the given id,
	// used as the distractor candidate pool.
	Others(ctx context.Context, excludeID string) ([]Question, error)
	// Subcategories lists the distinct non-empty subcategories within a mode.
	Subcategories(ctx context.Context, mode string) ([]string, error)
	// Upsert inserts q, or updates the existing row whose text matches
	// case-insensitively. Reports whether a new row was created.
	Upsert(ctx context.Context, q Question) (created bool, err error)
}

type modeKind int

const (
	modeAll modeKind = iota
	modePracticeMix
	modeCategory
	modeTopic
	modeNone
)

// practiceMixCategories is the realistic practice blend: everything except
// book extracts and cheat sheets.
var practiceMixCategories = []Category{CategoryGeneral, CategoryCommon, CategoryHardest}

// resolveMode interprets a mode string the way the UI uses it: "all",
// "practice", a category key, a topic key, or nothing.
func resolveMode(mode string) modeKind {
	switch {
	case mode == "" || mode == "all":
		return modeAll
	case mode == "practice":
		return modePracticeMix
	case ValidCategory(mode):
		return modeCategory
	case ValidTopic(mode):
		return modeTopic
	default:
		return modeNone
	}
}
