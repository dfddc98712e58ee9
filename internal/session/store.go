package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/lifeprep/backend/internal/quiz"
)

const cookieName = "lifeprep_session"

// State is everything the quiz core keeps per user: the exam machine,
// practice counters keyed by mode, and listening positions keyed by
// section. The boundary loads it before each operation and persists it
// after, so the core never touches ambient storage.
type State struct {
	Exam     quiz.ExamSession                 `json:"exam"`
	Practice map[string]quiz.PracticeCounters `json:"practice,omitempty"`
	Listen   map[string]int                   `json:"listen,omitempty"`
}

func newState() *State {
	return &State{
		Exam:     *quiz.NewExamSession(),
		Practice: map[string]quiz.PracticeCounters{},
		Listen:   map[string]int{},
	}
}

// Store pairs a signed cookie (carrying only an opaque sid) with a
// session_state row holding the JSON-encoded State.
type Store struct {
	db      *sql.DB
	cookies *sessions.CookieStore
}

func NewStore(db *sql.DB, secret []byte) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((90 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{db: db, cookies: cs}
}

// Load resolves the caller's sid (minting one for first-time visitors)
// and fetches their state. A missing row yields a fresh State.
func (s *Store) Load(r *http.Request) (sid string, st *State, err error) {
	sess, _ := s.cookies.Get(r, cookieName) // a bad cookie just starts a new session
	if v, ok := sess.Values["sid"].(string); ok && v != "" {
		sid = v
	} else {
		sid = uuid.NewString()
	}

	var raw string
	err = s.db.QueryRowContext(r.Context(),
		`SELECT state_json FROM session_state WHERE sid=$1`, sid).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return sid, newState(), nil
	case err != nil:
		return "", nil, err
	}

	st = newState()
	if err := json.Unmarshal([]byte(raw), st); err != nil {
		// unreadable state is dropped rather than wedging the user
		return sid, newState(), nil
	}
	if st.Practice == nil {
		st.Practice = map[string]quiz.PracticeCounters{}
	}
	if st.Listen == nil {
		st.Listen = map[string]int{}
	}
	return sid, st, nil
}

// Save writes the state row and refreshes the sid cookie.
func (s *Store) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, sid string, st *State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_state (sid, state_json, updated_at) VALUES ($1,$2,$3)
		 ON CONFLICT (sid) DO UPDATE SET state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		sid, string(buf), time.Now().Unix())
	if err != nil {
		return err
	}

	sess, _ := s.cookies.Get(r, cookieName)
	sess.Values["sid"] = sid
	return sess.Save(r, w)
}
