package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lifeprep/backend/internal/question"
)

// ListQuestionsHandler is the staff read view over the question bank,
// answers included.
func ListQuestionsHandler(qs question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := qs.Filter(r.Context(), question.FilterOpts{
			Mode:        strings.TrimSpace(r.URL.Query().Get("mode")),
			Topic:       strings.TrimSpace(r.URL.Query().Get("topic")),
			Subcategory: strings.TrimSpace(r.URL.Query().Get("sub")),
			Query:       strings.TrimSpace(r.URL.Query().Get("q")),
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
		if offset > len(pool) {
			offset = len(pool)
		}
		end := offset + limit
		if end > len(pool) {
			end = len(pool)
		}
		page := pool[offset:end]
		if page == nil {
			page = []question.Question{}
		}
		writeJSON(w, map[string]any{
			"total":     len(pool),
			"questions": page,
		})
	}
}

func GetQuestionHandler(qs question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := qs.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, question.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, q)
	}
}
