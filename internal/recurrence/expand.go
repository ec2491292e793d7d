// Package recurrence expands a recurring booking request into the ordered
// sequence of candidate dates it covers.
package recurrence

import (
	"errors"
	"time"
)

// Kind selects how a recurring series repeats.
type Kind string

const (
	// KindDaily books every weekday (Mon-Fri) of each covered week.
	KindDaily Kind = "daily"
	// KindWeekly books the same weekday once per week.
	KindWeekly Kind = "weekly"
)

// ErrUnknownKind indicates an unsupported recurrence kind. Callers are
// expected to reject user input with ParseKind before expanding.
var ErrUnknownKind = errors.New("recurrence: unknown kind")

// ParseKind validates a user-supplied recurrence kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDaily, KindWeekly:
		return Kind(s), nil
	default:
		return "", ErrUnknownKind
	}
}

// Expand produces the candidate dates for a series starting on first's
// calendar date, covering weeks weeks. Results are midnight timestamps in
// first's location, ascending and duplicate-free. weeks <= 0 yields nothing.
//
// Weekly series fall on first's weekday: first, first+7d, first+14d, ...
// Daily series cover Mon-Fri of each week aligned to the Monday of first's
// week; dates before first are dropped, so a mid-week start produces a
// partial first week.
func Expand(first time.Time, kind Kind, weeks int) ([]time.Time, error) {
	year, month, day := first.Date()
	base := time.Date(year, month, day, 0, 0, 0, 0, first.Location())

	switch kind {
	case KindWeekly:
		var dates []time.Time
		for w := 0; w < weeks; w++ {
			dates = append(dates, base.AddDate(0, 0, 7*w))
		}
		return dates, nil

	case KindDaily:
		// time.Weekday counts Sunday as 0; shift so Monday is 0.
		monday := base.AddDate(0, 0, -((int(base.Weekday()) + 6) % 7))
		var dates []time.Time
		for w := 0; w < weeks; w++ {
			for d := 0; d < 5; d++ {
				date := monday.AddDate(0, 0, 7*w+d)
				if !date.Before(base) {
					dates = append(dates, date)
				}
			}
		}
		return dates, nil

	default:
		return nil, ErrUnknownKind
	}
}
