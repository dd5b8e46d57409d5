package scheduler

import (
	"fmt"

	"github.com/alexanderramin/clientpro/internal/domain"
)

// Candidate is the time slot being saved. ExcludeID names the record under
// edit so it is not compared with itself; leave it empty when creating.
type Candidate struct {
	Date      string
	Start     string
	End       string
	ExcludeID string
}

// Conflict identifies an existing intervention overlapping a candidate.
type Conflict struct {
	ID     string
	Numero string
	Start  string
	End    string
}

// String renders the conflict as "INT-001 (09:00-12:00)".
func (c Conflict) String() string {
	return fmt.Sprintf("%s (%s-%s)", c.Numero, c.Start, c.End)
}

// DetectConflicts returns the existing interventions whose time range
// overlaps the candidate, in input order. existing is expected to hold the
// records stored for the candidate's date.
//
// The check is advisory and never fails: an incomplete, all-day or
// unparsable candidate reports nothing, and existing records that are
// all-day or carry unparsable times are skipped.
func DetectConflicts(c Candidate, existing []*domain.Intervention) []Conflict {
	cand, err := domain.NormalizeInterval(c.Date, c.Start, c.End)
	if err != nil || cand.AllDay {
		return nil
	}

	var out []Conflict
	for _, e := range existing {
		if e == nil || (c.ExcludeID != "" && e.ID == c.ExcludeID) {
			continue
		}
		if e.IsAllDay() {
			continue
		}
		iv, err := e.Interval()
		if err != nil {
			continue
		}
		if cand.Overlaps(iv) {
			out = append(out, Conflict{ID: e.ID, Numero: e.Numero, Start: e.StartTime, End: e.EndTime})
		}
	}
	return out
}

// ConflictStrings renders conflicts for display.
func ConflictStrings(cs []Conflict) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
