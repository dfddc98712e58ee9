package quiz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lifeprep/backend/internal/question"
)

// Shape is the semantic shape of an answer, decided once per question and
// then dispatched on when building choices.
type Shape int

const (
	ShapeGeneral Shape = iota
	ShapeBoolean
	ShapeYear
)

// yearRe matches 4-digit years 1000-2099, optionally with a decade marker:
// 1066, 1415, 1450s, 2010s.
var yearRe = regexp.MustCompile(`(1[0-9]{3}|20[0-9]{2})s?`)

// Classification is the tagged result of classifying a question's answer.
// For ShapeYear the original wording around the year is kept verbatim so
// distractor years can be reassembled into full phrases.
type Classification struct {
	Shape  Shape
	Year   int    // ShapeYear only
	Prefix string // text before the year token
	Suffix string // text after the year token
	Decade bool   // year had a trailing "s" (e.g. "the 1450s")
}

// Classify decides the answer shape for q. Boolean wins over year: a
// "True or false: ..." question about 1066 is still boolean.
func Classify(q question.Question) Classification {
	answer := strings.TrimSpace(q.Answer)
	text := strings.TrimSpace(q.Text)
	norm := strings.Trim(strings.ToLower(answer), " .!?")

	if strings.HasPrefix(strings.ToLower(text), "true or false") || norm == "true" || norm == "false" {
		return Classification{Shape: ShapeBoolean}
	}

	if loc := yearRe.FindStringSubmatchIndex(answer); loc != nil {
		year, _ := strconv.Atoi(answer[loc[2]:loc[3]])
		return Classification{
			Shape:  ShapeYear,
			Year:   year,
			Prefix: answer[:loc[0]],
			Suffix: answer[loc[1]:],
			Decade: strings.HasSuffix(answer[loc[0]:loc[1]], "s"),
		}
	}

	return Classification{Shape: ShapeGeneral}
}

// Phrase renders a candidate year back into the answer's original wording,
// preserving the decade marker when the answer had one.
func (c Classification) Phrase(year int) string {
	s := strconv.Itoa(year)
	if c.Decade {
		s += "s"
	}
	return c.Prefix + s + c.Suffix
}
