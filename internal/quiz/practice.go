package quiz

import "math"

// PracticeCounters is the running tally for one practice mode. Counters
// only grow until an explicit reset; who may reset is decided at the HTTP
// boundary, not here.
type PracticeCounters struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// PracticeStats is the derived view served alongside each practice
// question. Accuracy is nil until at least one answer has been recorded.
type PracticeStats struct {
	Correct         int  `json:"correct"`
	Incorrect       int  `json:"incorrect"`
	Answered        int  `json:"answered"`
	Accuracy        *int `json:"accuracy,omitempty"`
	ProgressPercent int  `json:"progress_percent"`
}

func (c *PracticeCounters) Record(wasCorrect bool) {
	if wasCorrect {
		c.Correct++
	} else {
		c.Incorrect++
	}
}

func (c *PracticeCounters) Reset() {
	c.Correct = 0
	c.Incorrect = 0
}

// Stats computes accuracy and pool progress. Progress saturates at 100:
// practice draws are with replacement, so answered can exceed the pool.
func (c PracticeCounters) Stats(poolTotal int) PracticeStats {
	answered := c.Correct + c.Incorrect
	s := PracticeStats{
		Correct:   c.Correct,
		Incorrect: c.Incorrect,
		Answered:  answered,
	}
	if answered > 0 {
		acc := int(math.Round(float64(c.Correct) * 100 / float64(answered)))
		s.Accuracy = &acc
		if poolTotal > 0 {
			s.ProgressPercent = int(math.Round(float64(answered) * 100 / float64(poolTotal)))
			if s.ProgressPercent > 100 {
				s.ProgressPercent = 100
			}
		}
	}
	return s
}
