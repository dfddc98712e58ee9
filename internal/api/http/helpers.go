package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lifeprep/backend/internal/question"
)

// QuestionView is a question as served to quiz takers: no answer text.
type QuestionView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Topic       string `json:"topic"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
}

func viewOf(q question.Question) QuestionView {
	return QuestionView{
		ID:          q.ID,
		Text:        q.Text,
		Topic:       string(q.Topic),
		Category:    string(q.Category),
		Subcategory: q.Subcategory,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// coerceSeed treats a missing or malformed seed as 0 rather than an error.
func coerceSeed(n json.Number) int64 {
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// coerceSeconds accepts 120 and 120.7 alike; garbage and negatives
// become 0.
func coerceSeconds(n json.Number) int {
	if v, err := strconv.ParseFloat(n.String(), 64); err == nil && v > 0 {
		return int(v)
	}
	return 0
}
