package exercise

import "math"

// Score accumulates answer results over one run. It is scoped to the run's
// lifetime and discarded when the run finishes or is abandoned.
type Score struct {
	Correct   int
	Incorrect int
}

// Record adds one answer result.
func (s *Score) Record(correct bool) {
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

// Total returns the number of answers recorded.
func (s Score) Total() int {
	return s.Correct + s.Incorrect
}

// Accuracy returns correct/total as a percentage, 0 when nothing was
// answered.
func (s Score) Accuracy() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total) * 100
}

// Percent returns the rounded integer score.
func (s Score) Percent() int {
	return int(math.Round(s.Accuracy()))
}
