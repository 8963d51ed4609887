// Package derive holds pure helpers computed on demand from the state
// tree: session completion classification, due-date arithmetic, and
// display ordering. Nothing here is ever stored.
package derive

import (
	"math"
	"sort"
	"time"

	"github.com/tpham/study-tracker/internal/model"
)

// CompletionStatus classifies a session by its task completion ratio.
type CompletionStatus string

const (
	StatusGold   CompletionStatus = "gold"
	StatusSilver CompletionStatus = "silver"
	StatusRed    CompletionStatus = "red"
)

// SessionStatus returns gold when every task is completed, silver when
// at least half are, and red otherwise. Sessions with no tasks are red.
func SessionStatus(s model.Session) CompletionStatus {
	if len(s.Tasks) == 0 {
		return StatusRed
	}
	completed := 0
	for _, t := range s.Tasks {
		if t.Completed {
			completed++
		}
	}
	ratio := float64(completed) / float64(len(s.Tasks))
	switch {
	case ratio >= 1.0:
		return StatusGold
	case ratio >= 0.5:
		return StatusSilver
	default:
		return StatusRed
	}
}

// DaysUntilDue returns the whole-day difference between the due date
// and today, both taken at local midnight, ceiling-rounded. Negative
// means overdue. Unparseable dates yield zero.
func DaysUntilDue(dueDate string) int {
	return daysUntilDue(dueDate, time.Now())
}

func daysUntilDue(dueDate string, now time.Time) int {
	due, ok := parseDay(dueDate)
	if !ok {
		return 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	// Ceiling absorbs the odd-length days around DST transitions.
	return int(math.Ceil(due.Sub(today).Hours() / 24))
}

// parseDay parses an ISO date, falling back to an RFC 3339 datetime
// truncated to its day, and returns local midnight of that day.
func parseDay(value string) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, false
}

// SortByDueDate returns a copy of the assignments sorted ascending by
// due date. The sort is stable so equal dates keep their input order.
// ISO dates order lexicographically, so no parsing is needed.
func SortByDueDate(assignments []model.Assignment) []model.Assignment {
	next := make([]model.Assignment, len(assignments))
	copy(next, assignments)
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].DueDate < next[j].DueDate
	})
	return next
}
