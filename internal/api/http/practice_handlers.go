package http

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lifeprep/backend/internal/grading"
	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/quiz"
	"github.com/lifeprep/backend/internal/session"
)

type practiceView struct {
	Mode     string             `json:"mode"`
	Question *QuestionView      `json:"question"`
	Choices  []string           `json:"choices,omitempty"`
	Seed     int64              `json:"seed,omitempty"`
	Total    int                `json:"total"`
	Stats    quiz.PracticeStats `json:"stats"`
}

type practiceAnswerView struct {
	IsCorrect     bool               `json:"is_correct"`
	CorrectAnswer string             `json:"correct_answer"`
	Selected      string             `json:"selected"`
	Choices       []string           `json:"choices"`
	Seed          int64              `json:"seed"`
	Stats         quiz.PracticeStats `json:"stats"`
}

func filtersFromQuery(r *http.Request, mode string) question.FilterOpts {
	return question.FilterOpts{
		Mode:        mode,
		Topic:       strings.TrimSpace(r.URL.Query().Get("topic")),
		Subcategory: strings.TrimSpace(r.URL.Query().Get("sub")),
		Query:       strings.TrimSpace(r.URL.Query().Get("q")),
	}
}

// PracticeQuestionHandler draws a uniform random question from the
// filtered pool (repeats allowed) and builds its choice set under a fresh
// seed. The seed goes back to the client so a re-render or the answer
// submission can rebuild the identical option order.
func PracticeQuestionHandler(qs question.Store, ss *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := chi.URLParam(r, "mode")
		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		pool, err := qs.Filter(r.Context(), filtersFromQuery(r, mode))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		view := practiceView{
			Mode:  mode,
			Total: len(pool),
			Stats: st.Practice[mode].Stats(len(pool)),
		}
		if len(pool) > 0 {
			q := pool[rand.Intn(len(pool))]
			seed := 1 + rand.Int63n(10_000_000)
			others, err := qs.Others(r.Context(), q.ID)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			qv := viewOf(q)
			view.Question = &qv
			view.Choices = quiz.BuildChoices(q, others, seed)
			view.Seed = seed
		}

		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, view)
	}
}

// PracticeAnswerHandler scores a submitted choice and bumps the per-mode
// counters. The choice set is rebuilt from the submitted seed so the
// response shows the same options the user saw.
func PracticeAnswerHandler(qs question.Store, ss *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := chi.URLParam(r, "mode")
		var req struct {
			QuestionID string      `json:"question_id"`
			Choice     string      `json:"choice"`
			Seed       json.Number `json:"seed"`
		}
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.QuestionID == "" {
			http.Error(w, "question_id required", 400)
			return
		}

		q, err := qs.Get(r.Context(), req.QuestionID)
		if err != nil {
			if errors.Is(err, question.ErrNotFound) {
				http.Error(w, "question not found", 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}

		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		seed := coerceSeed(req.Seed)
		others, err := qs.Others(r.Context(), q.ID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		choices := quiz.BuildChoices(q, others, seed)

		isCorrect := grading.Equal(req.Choice, q.Answer)
		counters := st.Practice[mode]
		counters.Record(isCorrect)
		st.Practice[mode] = counters

		pool, err := qs.Filter(r.Context(), filtersFromQuery(r, mode))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, practiceAnswerView{
			IsCorrect:     isCorrect,
			CorrectAnswer: strings.TrimSpace(q.Answer),
			Selected:      req.Choice,
			Choices:       choices,
			Seed:          seed,
			Stats:         st.Practice[mode].Stats(len(pool)),
		})
	}
}

// PracticeResetHandler zeroes the per-mode counters. Mounted behind the
// staff-only rbac check.
func PracticeResetHandler(ss *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := chi.URLParam(r, "mode")
		sid, st, err := ss.Load(r)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		counters := st.Practice[mode]
		counters.Reset()
		st.Practice[mode] = counters
		if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]string{"status": "reset"})
	}
}

// PracticeSubcategoriesHandler lists the subcategory dropdown values for a
// mode.
func PracticeSubcategoriesHandler(qs question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := qs.Subcategories(r.Context(), chi.URLParam(r, "mode"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if subs == nil {
			subs = []string{}
		}
		writeJSON(w, subs)
	}
}
