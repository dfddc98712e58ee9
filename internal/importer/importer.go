package importer

import (
	"bufio"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/lifeprep/backend/internal/question"
)

// Pair is one parsed question/answer block.
type Pair struct {
	Question string
	Answer   string
}

// Result summarizes one import run.
type Result struct {
	Parsed  int `json:"parsed"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

var (
	questionLine = regexp.MustCompile(`(?i)^\s*(question|q)\s*:`)
	answerLine   = regexp.MustCompile(`(?i)^\s*(answer|a)\s*:`)
)

// Parse reads Q:/A: blocks from a plain-text upload. Both "Q:"/"A:" and
// "question:"/"answer:" markers are accepted, any case; lines without a
// marker continue the preceding question or answer.
func Parse(r io.Reader) ([]Pair, error) {
	var (
		pairs    []Pair
		curQ     string
		curA     string
		haveAns  bool
		flush    func()
	)
	flush = func() {
		if curQ != "" && haveAns && curA != "" {
			pairs = append(pairs, Pair{Question: strings.TrimSpace(curQ), Answer: strings.TrimSpace(curA)})
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch {
		case questionLine.MatchString(line):
			flush()
			curQ = strings.TrimSpace(after(line))
			curA = ""
			haveAns = false
		case answerLine.MatchString(line):
			curA = strings.TrimSpace(after(line))
			haveAns = true
		default:
			if haveAns {
				curA += "\n" + line
			} else if curQ != "" {
				curQ += "\n" + line
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return pairs, nil
}

func after(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return line[i+1:]
	}
	return ""
}

// SubcategoryFromFilename turns "magna_carta.txt" into "Magna Carta".
func SubcategoryFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	words := strings.Fields(strings.ReplaceAll(base, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Importer parses an upload and upserts the pairs into the store, keyed by
// case-insensitive question text.
type Importer struct {
	store question.Store
}

func New(store question.Store) *Importer { return &Importer{store: store} }

func (imp *Importer) Import(ctx context.Context, r io.Reader, topic question.Topic, category question.Category, subcategory string) (Result, error) {
	pairs, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, p := range pairs {
		res.Parsed++
		created, err := imp.store.Upsert(ctx, question.Question{
			ID:          uuid.NewString(),
			Text:        p.Question,
			Answer:      p.Answer,
			Topic:       topic,
			Category:    category,
			Subcategory: subcategory,
		})
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}
