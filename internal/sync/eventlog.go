package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	EventExamFinished      = "ExamFinished"
	EventQuestionsImported = "QuestionsImported"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

// EventRepo appends domain events to the event_log table. Events are an
// audit trail only; nothing replays them yet.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, typ, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		"local", typ, key, string(data), time.Now().Unix())
	return err
}
