package question

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps questions in memory. It backs tests and small
// offline setups; the gateway uses SQLStore.
type MemoryStore struct {
	mu        sync.RWMutex
	questions map[string]Question
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{questions: map[string]Question{}}
}

func (m *MemoryStore) Put(q Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[q.ID] = q
}

func (m *MemoryStore) Get(_ context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (m *MemoryStore) All(ctx context.Context) ([]Question, error) {
	return m.Filter(ctx, FilterOpts{Mode: "all"})
}

func (m *MemoryStore) Others(ctx context.Context, excludeID string) ([]Question, error) {
	all, _ := m.All(ctx)
	out := all[:0]
	for _, q := range all {
		if q.ID != excludeID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *MemoryStore) Filter(_ context.Context, opts FilterOpts) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	kind := resolveMode(mode)
	if kind == modeNone {
		return nil, nil
	}

	var out []Question
	for _, q := range m.questions {
		if !matchMode(q, kind, mode) {
			continue
		}
		if t := strings.TrimSpace(opts.Topic); t != "" && string(q.Topic) != t {
			continue
		}
		if sub := strings.TrimSpace(opts.Subcategory); sub != "" && q.Subcategory != sub {
			continue
		}
		if query := strings.TrimSpace(opts.Query); query != "" && !matchQuery(q, query) {
			continue
		}
		out = append(out, q)
	}
	sortQuestions(out)
	return out, nil
}

func (m *MemoryStore) Subcategories(ctx context.Context, mode string) ([]string, error) {
	pool, err := m.Filter(ctx, FilterOpts{Mode: mode})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, q := range pool {
		if q.Subcategory != "" && !seen[q.Subcategory] {
			seen[q.Subcategory] = true
			out = append(out, q.Subcategory)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) Upsert(_ context.Context, q Question) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.questions {
		if strings.EqualFold(existing.Text, q.Text) {
			q.ID = id
			m.questions[id] = q
			return false, nil
		}
	}
	m.questions[q.ID] = q
	return true, nil
}

func matchMode(q Question, kind modeKind, mode string) bool {
	switch kind {
	case modeAll:
		return true
	case modePracticeMix:
		for _, c := range practiceMixCategories {
			if q.Category == c {
				return true
			}
		}
		return false
	case modeCategory:
		return string(q.Category) == mode
	case modeTopic:
		return string(q.Topic) == mode
	default:
		return false
	}
}

func matchQuery(q Question, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(q.Text), query) ||
		strings.Contains(strings.ToLower(q.Answer), query) ||
		strings.Contains(strings.ToLower(q.Subcategory), query)
}

func sortQuestions(qs []Question) {
	sort.Slice(qs, func(i, j int) bool {
		if qs[i].Subcategory != qs[j].Subcategory {
			return qs[i].Subcategory < qs[j].Subcategory
		}
		return qs[i].ID < qs[j].ID
	})
}
