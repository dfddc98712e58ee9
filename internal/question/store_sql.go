package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLStore persists questions in the shared database. It works against
// both sqlite and postgres (see internal/db).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const questionColumns = `id, text, answer, topic, category, subcategory`

func scanQuestion(row interface{ Scan(...any) error }) (Question, error) {
	var q Question
	var sub sql.NullString
	if err := row.Scan(&q.ID, &q.Text, &q.Answer, &q.Topic, &q.Category, &sub); err != nil {
		return Question{}, err
	}
	q.Subcategory = sub.String
	return q, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

func (s *SQLStore) All(ctx context.Context) ([]Question, error) {
	return s.query(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY subcategory, id`)
}

func (s *SQLStore) Others(ctx context.Context, excludeID string) ([]Question, error) {
	return s.query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id<>$1 ORDER BY subcategory, id`,
		excludeID)
}

func (s *SQLStore) Filter(ctx context.Context, opts FilterOpts) ([]Question, error) {
	where, args, empty := buildWhere(opts)
	if empty {
		return nil, nil
	}
	q := `SELECT ` + questionColumns + ` FROM questions` + where + ` ORDER BY subcategory, id`
	return s.query(ctx, q, args...)
}

func (s *SQLStore) Subcategories(ctx context.Context, mode string) ([]string, error) {
	where, args, empty := buildWhere(FilterOpts{Mode: mode})
	if empty {
		return nil, nil
	}
	cond := `subcategory IS NOT NULL AND subcategory<>''`
	if where == "" {
		where = " WHERE " + cond
	} else {
		where += " AND " + cond
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT subcategory FROM questions`+where+` ORDER BY subcategory`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sub string
		if err := rows.Scan(&sub); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLStore) Upsert(ctx context.Context, q Question) (bool, error) {
	var existing string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM questions WHERE LOWER(text)=LOWER($1)`, q.Text).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO questions (id, text, answer, topic, category, subcategory, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			q.ID, q.Text, q.Answer, string(q.Topic), string(q.Category), q.Subcategory,
			time.Now().Unix())
		return true, err
	case err != nil:
		return false, err
	default:
		_, err = s.db.ExecContext(ctx,
			`UPDATE questions SET text=$1, answer=$2, topic=$3, category=$4, subcategory=$5
			 WHERE id=$6`,
			q.Text, q.Answer, string(q.Topic), string(q.Category), q.Subcategory, existing)
		return false, err
	}
}

func (s *SQLStore) query(ctx context.Context, q string, args ...any) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		qu, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qu)
	}
	return out, rows.Err()
}

// buildWhere translates FilterOpts into a WHERE clause. An unknown mode
// yields an empty result set, matching how the UI treats bad mode keys.
func buildWhere(opts FilterOpts) (where string, args []any, empty bool) {
	var conds []string
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	switch resolveMode(mode) {
	case modeAll:
		// no condition
	case modePracticeMix:
		ph := make([]string, 0, len(practiceMixCategories))
		for _, c := range practiceMixCategories {
			ph = append(ph, arg(string(c)))
		}
		conds = append(conds, `category IN (`+strings.Join(ph, ",")+`)`)
	case modeCategory:
		conds = append(conds, `category=`+arg(mode))
	case modeTopic:
		conds = append(conds, `topic=`+arg(mode))
	case modeNone:
		return "", nil, true
	}

	if t := strings.TrimSpace(opts.Topic); t != "" {
		conds = append(conds, `topic=`+arg(t))
	}
	if sub := strings.TrimSpace(opts.Subcategory); sub != "" {
		conds = append(conds, `subcategory=`+arg(sub))
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		conds = append(conds,
			`(LOWER(text) LIKE `+arg(like)+
				` OR LOWER(answer) LIKE `+arg(like)+
				` OR LOWER(subcategory) LIKE `+arg(like)+`)`)
	}

	if len(conds) == 0 {
		return "", args, false
	}
	return " WHERE " + strings.Join(conds, " AND "), args, false
}
