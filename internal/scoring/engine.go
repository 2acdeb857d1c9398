// Package scoring turns a completed linking session (or an ordered list of
// picked marker ids) into a percent-correct attempt on a checklist.
//
// Scoring is a pure comparison over ids: whether the canonical marker still
// exists is the registry's and checklist's job at edit time, never checked
// here.
package scoring

import (
	"errors"
	"math"

	"github.com/akozyrev/checkride/internal/checklist"
)

// ErrEmptyChecklist is returned when scoring a checklist with no items.
// Zero items never scores as 0% or 100%.
var ErrEmptyChecklist = errors.New("scoring: checklist has no items")

// Score compares the learner's linkage (item id -> picked marker id)
// against the items' canonical markers and returns the rounded percent of
// matches. Items absent from the linkage count as wrong, not as omissions.
func Score(items []*checklist.Item, linkage map[string]string) (int, error) {
	if len(items) == 0 {
		return 0, ErrEmptyChecklist
	}
	matches := 0
	for _, it := range items {
		if picked, ok := linkage[it.ID]; ok && picked == it.MarkerID {
			matches++
		}
	}
	return percent(matches, len(items)), nil
}

// ScoreOrdered compares a positionally aligned sequence of picked marker
// ids against the canonical item order, the shape the original submit
// endpoint accepts. Positions beyond len(picked) count as wrong.
func ScoreOrdered(items []*checklist.Item, picked []string) (int, error) {
	if len(items) == 0 {
		return 0, ErrEmptyChecklist
	}
	matches := 0
	for i, it := range items {
		if i < len(picked) && picked[i] == it.MarkerID {
			matches++
		}
	}
	return percent(matches, len(items)), nil
}

// Submit scores the linkage and appends the result to the checklist's
// attempt history, returning the new immutable attempt.
func Submit(c *checklist.Checklist, linkage map[string]string) (checklist.Attempt, error) {
	p, err := Score(c.Items(), linkage)
	if err != nil {
		return checklist.Attempt{}, err
	}
	return c.RecordAttempt(p), nil
}

// SubmitOrdered is Submit for the positionally aligned representation.
func SubmitOrdered(c *checklist.Checklist, picked []string) (checklist.Attempt, error) {
	p, err := ScoreOrdered(c.Items(), picked)
	if err != nil {
		return checklist.Attempt{}, err
	}
	return c.RecordAttempt(p), nil
}

func percent(matches, total int) int {
	return int(math.Round(100 * float64(matches) / float64(total)))
}
