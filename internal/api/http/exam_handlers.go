package http

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strings"

	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/quiz"
	"github.com/lifeprep/backend/internal/session"
	syncx "github.com/lifeprep/backend/internal/sync"
)

// ExamConfig carries the fixed exam parameters from configuration.
type ExamConfig struct {
	Size            int
	DurationSeconds int
	PassMark        int
}

type examView struct {
	Finished        bool          `json:"finished"`
	Question        *QuestionView `json:"question,omitempty"`
	Choices         []string      `json:"choices,omitempty"`
	Seed            int64         `json:"seed,omitempty"`
	CurrentIndex    int           `json:"current_index"` // 1-based for display
	Total           int           `json:"total"`
	Correct         int           `json:"correct"`
	Incorrect       int           `json:"incorrect"`
	Minutes         int           `json:"minutes"`
	Seconds         int           `json:"seconds"`
	TimeLeft        int           `json:"time_left"`
	ProgressPercent int           `json:"progress_percent"`
}

type examFinishedView struct {
	Finished bool         `json:"finished"`
	Summary  quiz.Summary `json:"summary"`
}

type examAnswerView struct {
	IsCorrect     bool     `json:"is_correct"`
	CorrectAnswer string   `json:"correct_answer"`
	Selected      string   `json:"selected"`
	Choices       []string `json:"choices"`
	Seed          int64    `json:"seed"`
	Correct       int      `json:"correct"`
	Incorrect     int      `json:"incorrect"`
}

// ExamStartHandler discards any in-progress exam without scoring it and
// starts a fresh one. This is the "brand-new top-level entry" signal.
func ExamStartHandler(qs question.Store, ss *session.Store, cfg ExamConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		st.Exam.Reset()
		if err := startExam(r, qs, st, cfg); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		view, err := currentExamView(r, qs, st)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, view)
	}
}

// ExamViewHandler returns the current exam position, starting a new exam
// on first access and emitting the terminal summary once the exam is done.
func ExamViewHandler(qs question.Store, ss *session.Store, cfg ExamConfig, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		if st.Exam.State == "" || st.Exam.State == quiz.ExamNotStarted {
			if err := startExam(r, qs, st, cfg); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		}

		if st.Exam.State == quiz.ExamFinished {
			finishExamRequest(w, r, ss, st, sid, cfg, events)
			return
		}

		view, err := currentExamView(r, qs, st)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, view)
	}
}

// ExamAnswerHandler scores the submitted choice for the current question.
// The cursor does not move; the client advances explicitly.
func ExamAnswerHandler(qs question.Store, ss *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Choice string      `json:"choice"`
			Seed   json.Number `json:"seed"`
		}
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		id, err := st.Exam.CurrentID()
		if err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		q, err := qs.Get(r.Context(), id)
		if err != nil {
			// the fixed id list must always resolve
			http.Error(w, "exam question no longer resolves: "+id, 500)
			return
		}

		seed := coerceSeed(req.Seed)
		others, err := qs.Others(r.Context(), q.ID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		choices := quiz.BuildExamChoices(q, others, seed)

		entry, err := st.Exam.Answer(q, req.Choice)
		if err != nil {
			if errors.Is(err, quiz.ErrInvalidState) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}

		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, examAnswerView{
			IsCorrect:     entry.WasCorrect,
			CorrectAnswer: strings.TrimSpace(entry.Correct),
			Selected:      req.Choice,
			Choices:       choices,
			Seed:          seed,
			Correct:       st.Exam.Correct,
			Incorrect:     st.Exam.Incorrect,
		})
	}
}

// ExamNextHandler advances past the current question; past the last one
// it finishes the exam and returns the summary.
func ExamNextHandler(qs question.Store, ss *session.Store, cfg ExamConfig, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if err := st.Exam.Advance(); err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		if st.Exam.State == quiz.ExamFinished {
			finishExamRequest(w, r, ss, st, sid, cfg, events)
			return
		}
		view, err := currentExamView(r, qs, st)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, view)
	}
}

// ExamTimeHandler stores the countdown reported by the client; zero (or a
// malformed value, coerced to zero) expires the exam immediately.
func ExamTimeHandler(ss *session.Store, cfg ExamConfig, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TimeLeft json.Number `json:"time_left"`
		}
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if err := st.Exam.SubmitTime(coerceSeconds(req.TimeLeft)); err != nil {
			http.Error(w, err.Error(), 409)
			return
		}
		if st.Exam.State == quiz.ExamFinished {
			finishExamRequest(w, r, ss, st, sid, cfg, events)
			return
		}
		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]int{"time_left": st.Exam.TimeLeft})
	}
}

func startExam(r *http.Request, qs question.Store, st *session.State, cfg ExamConfig) error {
	pool, err := qs.All(r.Context())
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return errors.New("question pool is empty")
	}
	ids := make([]string, 0, len(pool))
	for _, q := range pool {
		ids = append(ids, q.ID)
	}
	return st.Exam.Start(ids, cfg.Size, cfg.DurationSeconds, rand.New(rand.NewSource(rand.Int63())))
}

func currentExamView(r *http.Request, qs question.Store, st *session.State) (examView, error) {
	id, err := st.Exam.CurrentID()
	if err != nil {
		return examView{}, err
	}
	q, err := qs.Get(r.Context(), id)
	if err != nil {
		return examView{}, errors.New("exam question no longer resolves: " + id)
	}
	others, err := qs.Others(r.Context(), q.ID)
	if err != nil {
		return examView{}, err
	}

	seed := 1 + rand.Int63n(10_000_000)
	total := len(st.Exam.QuestionIDs)
	qv := viewOf(q)
	view := examView{
		Question:     &qv,
		Choices:      quiz.BuildExamChoices(q, others, seed),
		Seed:         seed,
		CurrentIndex: st.Exam.Index + 1,
		Total:        total,
		Correct:      st.Exam.Correct,
		Incorrect:    st.Exam.Incorrect,
		Minutes:      st.Exam.TimeLeft / 60,
		Seconds:      st.Exam.TimeLeft % 60,
		TimeLeft:     st.Exam.TimeLeft,
	}
	if total > 0 {
		view.ProgressPercent = st.Exam.Index * 100 / total
	}
	return view, nil
}

func finishExamRequest(w http.ResponseWriter, r *http.Request, ss *session.Store, st *session.State, sid string, cfg ExamConfig, events *syncx.EventRepo) {
	summary, err := st.Exam.Finish(cfg.PassMark)
	if err != nil {
		http.Error(w, err.Error(), 409)
		return
	}
	if events != nil {
		if err := events.Append(r.Context(), syncx.EventExamFinished, sid, summary); err != nil {
			// audit failure should not cost the user their result
			log.Printf("event log append: %v", err)
		}
	}
	if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, examFinishedView{Finished: true, Summary: summary})
}
