package quiz

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/lifeprep/backend/internal/question"
)

// yearOffsets are applied to the correct year when the pool does not hold
// enough real alternatives.
var yearOffsets = [...]int{-10, -5, -1, 1, 5, 10}

const (
	minYear = 1000
	maxYear = 2099
)

// BuildChoices builds the multiple-choice option list for a practice
// question. pool is every other question (the current one excluded); seed
// drives a local generator so the same (question, seed) pair always yields
// the same option order. The result always contains the correct answer,
// holds 2 entries for boolean questions, and degrades below 4 when the
// pool runs out of distinct candidates.
func BuildChoices(q question.Question, pool []question.Question, seed int64) []string {
	rng := rand.New(rand.NewSource(seedOr(seed, q.ID)))
	cls := Classify(q)

	switch cls.Shape {
	case ShapeBoolean:
		return booleanChoices(rng)
	case ShapeYear:
		return yearChoices(cls, pool, rng)
	default:
		return textChoices(q, pool, rng)
	}
}

// BuildExamChoices is the exam variant: candidates come from same-topic
// questions when at least 3 distinct answers exist there, otherwise from
// the full pool, and the distractor pool and final option list are
// shuffled independently so re-renders stay stable.
func BuildExamChoices(q question.Question, pool []question.Question, seed int64) []string {
	correct := strings.TrimSpace(q.Answer)

	sameTopic := make([]question.Question, 0, len(pool))
	for _, cand := range pool {
		if cand.Topic == q.Topic {
			sameTopic = append(sameTopic, cand)
		}
	}
	candidates := sameTopic
	if len(candidates) < 3 {
		candidates = pool
	}
	candidates = append([]question.Question(nil), candidates...)

	base := seedOr(seed, q.ID)
	rng := rand.New(rand.NewSource(base))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	seen := map[string]bool{correct: true}
	var distractors []string
	for _, cand := range candidates {
		ans := strings.TrimSpace(cand.Answer)
		if ans != "" && !seen[ans] {
			seen[ans] = true
			distractors = append(distractors, ans)
		}
		if len(distractors) == 3 {
			break
		}
	}

	opts := append([]string{correct}, distractors...)
	rng2 := rand.New(rand.NewSource(base + 999_999))
	rng2.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func booleanChoices(rng *rand.Rand) []string {
	options := []string{"True", "False"}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

func yearChoices(cls Classification, pool []question.Question, rng *rand.Rand) []string {
	// gather distinct years from other answers, sorted before the seeded
	// shuffle so the result only depends on (question, seed, pool state)
	seen := map[int]bool{cls.Year: true}
	var others []int
	for _, cand := range pool {
		m := yearRe.FindStringSubmatch(cand.Answer)
		if m == nil {
			continue
		}
		y, _ := strconv.Atoi(m[1])
		if !seen[y] {
			seen[y] = true
			others = append(others, y)
		}
	}
	sort.Ints(others)
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	distract := others
	if len(distract) > 3 {
		distract = distract[:3]
	}

	// synthesize nearby years when the pool falls short
	if len(distract) < 3 {
		offsets := append([]int(nil), yearOffsets[:]...)
		rng.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })
		for _, delta := range offsets {
			if len(distract) == 3 {
				break
			}
			y := cls.Year + delta
			if y < minYear || y > maxYear || seen[y] {
				continue
			}
			seen[y] = true
			distract = append(distract, y)
		}
	}

	options := []string{cls.Phrase(cls.Year)}
	for _, y := range distract {
		options = append(options, cls.Phrase(y))
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

func textChoices(q question.Question, pool []question.Question, rng *rand.Rand) []string {
	correct := strings.TrimSpace(q.Answer)

	var candidates []string
	for _, cand := range pool {
		text := strings.TrimSpace(cand.Answer)
		if text != "" && text != correct {
			candidates = append(candidates, text)
		}
	}

	// closer length, more plausible
	sort.SliceStable(candidates, func(i, j int) bool {
		return lenDiff(candidates[i], correct) < lenDiff(candidates[j], correct)
	})

	near := candidates
	if len(near) > 20 {
		near = candidates[:20]
	}
	near = append([]string(nil), near...)
	rng.Shuffle(len(near), func(i, j int) { near[i], near[j] = near[j], near[i] })

	var distractors []string
	picked := map[string]bool{}
	for _, d := range near {
		if !picked[d] {
			picked[d] = true
			distractors = append(distractors, d)
		}
		if len(distractors) == 3 {
			break
		}
	}

	// pad from whatever is left when the near window was not enough
	if len(distractors) < 3 {
		var extra []string
		for _, d := range candidates {
			if !picked[d] {
				extra = append(extra, d)
			}
		}
		rng.Shuffle(len(extra), func(i, j int) { extra[i], extra[j] = extra[j], extra[i] })
		for _, d := range extra {
			if len(distractors) == 3 {
				break
			}
			picked[d] = true
			distractors = append(distractors, d)
		}
	}

	options := dedupe(append([]string{correct}, distractors...))
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

func lenDiff(a, b string) int {
	d := len(a) - len(b)
	if d < 0 {
		return -d
	}
	return d
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// seedOr returns seed, or a stable hash of the question id when the
// boundary supplied no usable seed.
func seedOr(seed int64, id string) int64 {
	if seed != 0 {
		return seed
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}
