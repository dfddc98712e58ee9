package http

import (
	"net/http"
	"strings"

	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/quiz"
	"github.com/lifeprep/backend/internal/session"
)

type listenQuestion struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

type listenView struct {
	Question *listenQuestion `json:"question"`
	Index    int             `json:"index"` // 1-based for display
	Total    int             `json:"total"`
	Sections []string        `json:"sections"`
	Section  string          `json:"section,omitempty"`
}

// ListenHandler reads the current listening position without moving it.
func ListenHandler(qs question.Store, ss *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := strings.TrimSpace(r.URL.Query().Get("section"))
		serveListen(w, r, qs, ss, "", section)
	}
}

// ListenActionHandler applies next/prev/reset, then renders the new
// position. Navigation clamps at the pool edges.
func ListenActionHandler(qs question.Store, ss *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action  string `json:"action"`
			Section string `json:"section"`
		}
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		serveListen(w, r, qs, ss, req.Action, strings.TrimSpace(req.Section))
	}
}

func serveListen(w http.ResponseWriter, r *http.Request, qs question.Store, ss *session.Store, action, section string) {
	sections, err := qs.Subcategories(r.Context(), string(question.CategoryBookBased))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if sections == nil {
		sections = []string{}
	}

	// the ordered book-listening subset, optionally one section
	pool, err := qs.Filter(r.Context(), question.FilterOpts{
		Mode:        string(question.CategoryBookBased),
		Subcategory: section,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	view := listenView{Sections: sections, Section: section, Total: len(pool)}
	if len(pool) == 0 {
		writeJSON(w, view)
		return
	}

	sid, st, err := ss.Load(r)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	// one cursor per section so progress is tracked independently
	key := "all"
	if section != "" {
		key = section
	}
	cursor := quiz.NewListeningCursor(st.Listen[key], len(pool))
	switch action {
	case "next":
		cursor.Next()
	case "prev":
		cursor.Prev()
	case "reset":
		cursor.Reset()
	}
	st.Listen[key] = cursor.Index

	if err := ss.Save(r.Context(), w, r, sid, st); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	cur := pool[cursor.Index]
	view.Question = &listenQuestion{Text: cur.Text, Answer: cur.Answer}
	view.Index = cursor.Index + 1
	writeJSON(w, view)
}
