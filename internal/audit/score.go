package audit

import (
	"errors"
	"fmt"
)

// ErrInvalidAnswer is returned when an answer value falls outside [0,4] or
// references a question id that is not part of the catalog.
var ErrInvalidAnswer = errors.New("invalid answer")

// ErrIncompleteAnswers is returned when the answer set does not cover every
// catalog question exactly once.
var ErrIncompleteAnswers = errors.New("incomplete answers")

// Score validates the answer map against the fixed catalog and returns the
// arithmetic sum of its values.  Every catalog question must be answered
// exactly once with a value in [MinValue,MaxValue]; unknown question ids and
// out-of-range values are rejected rather than coerced.  For the current
// three-question instrument the result lies in [0,12].
func Score(answers map[string]int) (int, error) {
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	for id, v := range answers {
		if !known[id] {
			return 0, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, id)
		}
		if v < MinValue || v > MaxValue {
			return 0, fmt.Errorf("%w: %s=%d out of range", ErrInvalidAnswer, id, v)
		}
	}
	total := 0
	for _, q := range questions {
		v, ok := answers[q.ID]
		if !ok {
			return 0, fmt.Errorf("%w: missing %s", ErrIncompleteAnswers, q.ID)
		}
		total += v
	}
	return total, nil
}
