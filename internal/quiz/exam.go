package quiz

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lifeprep/backend/internal/grading"
	"github.com/lifeprep/backend/internal/question"
)

// ErrInvalidState is returned when an exam operation is invoked outside
// its valid state. Counts are never silently corrupted.
var ErrInvalidState = errors.New("exam: operation not valid in current state")

// ExamState names a position in the exam lifecycle.
type ExamState string

const (
	ExamNotStarted ExamState = "not_started"
	ExamInProgress ExamState = "in_progress"
	ExamFinished   ExamState = "finished"
)

// ReviewEntry records one answered exam question for the end-of-exam
// review screen.
type ReviewEntry struct {
	Question   string `json:"question"`
	Submitted  string `json:"your_answer"`
	Correct    string `json:"correct_answer"`
	WasCorrect bool   `json:"is_correct"`
}

// Summary is the terminal exam result. Producing it resets the session.
type Summary struct {
	Total     int           `json:"total"`
	Correct   int           `json:"correct"`
	Incorrect int           `json:"incorrect"`
	Passed    bool          `json:"passed"`
	Minutes   int           `json:"minutes"`
	Seconds   int           `json:"seconds"`
	Review    []ReviewEntry `json:"review"`
}

// ExamSession is the per-user exam state machine:
//
//	NOT_STARTED -> Start -> IN_PROGRESS -> (Advance past end | SubmitTime 0) -> FINISHED -> Finish -> NOT_STARTED
//
// The boundary loads it before and persists it after every call; nothing
// here touches storage.
type ExamSession struct {
	State       ExamState     `json:"state"`
	QuestionIDs []string      `json:"question_ids,omitempty"`
	Index       int           `json:"index"`
	Correct     int           `json:"correct"`
	Incorrect   int           `json:"incorrect"`
	TimeLeft    int           `json:"time_left"`
	Review      []ReviewEntry `json:"review,omitempty"`
}

func NewExamSession() *ExamSession {
	return &ExamSession{State: ExamNotStarted}
}

// Start fixes the question order for a new exam: min(size, |poolIDs|) ids
// drawn uniformly without replacement. Valid only from NOT_STARTED; use
// Reset first to force a fresh exam.
func (e *ExamSession) Start(poolIDs []string, size, durationSeconds int, rng *rand.Rand) error {
	if e.state() != ExamNotStarted {
		return ErrInvalidState
	}
	ids := append([]string(nil), poolIDs...)
	if len(ids) > size {
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		ids = ids[:size]
	}
	e.State = ExamInProgress
	e.QuestionIDs = ids
	e.Index = 0
	e.Correct = 0
	e.Incorrect = 0
	e.TimeLeft = durationSeconds
	e.Review = nil
	return nil
}

// SubmitTime stores the remaining time reported by the client, clamped to
// zero. Hitting zero finishes the exam before any further answer
// processing.
func (e *ExamSession) SubmitTime(remainingSeconds int) error {
	if e.state() != ExamInProgress {
		return ErrInvalidState
	}
	if remainingSeconds < 0 {
		remainingSeconds = 0
	}
	e.TimeLeft = remainingSeconds
	if e.TimeLeft == 0 {
		e.State = ExamFinished
	}
	return nil
}

// CurrentID returns the id of the question at the cursor.
func (e *ExamSession) CurrentID() (string, error) {
	if e.state() != ExamInProgress {
		return "", ErrInvalidState
	}
	if e.Index >= len(e.QuestionIDs) {
		return "", fmt.Errorf("exam index %d out of range: %w", e.Index, ErrInvalidState)
	}
	return e.QuestionIDs[e.Index], nil
}

// Answer scores the submitted choice against the current question and
// appends a review entry. It does not advance the cursor, and a second
// answer for the same question is rejected so counts never exceed the
// number of questions seen.
func (e *ExamSession) Answer(current question.Question, submitted string) (ReviewEntry, error) {
	if e.state() != ExamInProgress || e.Index >= len(e.QuestionIDs) {
		return ReviewEntry{}, ErrInvalidState
	}
	if current.ID != e.QuestionIDs[e.Index] {
		return ReviewEntry{}, fmt.Errorf("question %s is not the current exam question: %w", current.ID, ErrInvalidState)
	}
	if len(e.Review) > e.Index {
		return ReviewEntry{}, fmt.Errorf("question already answered: %w", ErrInvalidState)
	}

	entry := ReviewEntry{
		Question:   current.Text,
		Submitted:  submitted,
		Correct:    current.Answer,
		WasCorrect: grading.Equal(submitted, current.Answer),
	}
	if entry.WasCorrect {
		e.Correct++
	} else {
		e.Incorrect++
	}
	e.Review = append(e.Review, entry)
	return entry, nil
}

// Advance moves to the next question; past the last one the exam is
// finished.
func (e *ExamSession) Advance() error {
	if e.state() != ExamInProgress {
		return ErrInvalidState
	}
	e.Index++
	if e.Index >= len(e.QuestionIDs) {
		e.State = ExamFinished
	}
	return nil
}

// Finish produces the terminal summary and unconditionally resets the
// session back to NOT_STARTED.
func (e *ExamSession) Finish(passMark int) (Summary, error) {
	if e.state() != ExamFinished {
		return Summary{}, ErrInvalidState
	}
	s := Summary{
		Total:     len(e.QuestionIDs),
		Correct:   e.Correct,
		Incorrect: e.Incorrect,
		Passed:    e.Correct >= passMark,
		Minutes:   e.TimeLeft / 60,
		Seconds:   e.TimeLeft % 60,
		Review:    e.Review,
	}
	e.Reset()
	return s, nil
}

// Reset discards all exam state without scoring it.
func (e *ExamSession) Reset() {
	*e = ExamSession{State: ExamNotStarted}
}

// state tolerates zero-valued sessions deserialized from storage.
func (e *ExamSession) state() ExamState {
	if e.State == "" {
		return ExamNotStarted
	}
	return e.State
}
