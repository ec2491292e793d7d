package service

import "time"

// maxReservationDuration is a booking policy, not a physical constraint.
const maxReservationDuration = 8 * time.Hour

// validateWindow checks that [start, end) is a usable reservation window:
// both ends present, end strictly after start, duration at most 8 hours
// (exactly 8 hours is allowed).
func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrInvalidWindow
	}
	if !end.After(start) {
		return ErrInvalidWindow
	}
	if end.Sub(start) > maxReservationDuration {
		return ErrInvalidWindow
	}
	return nil
}

// formatTimeRange renders the notification time range as
// "MM/dd HH:mm ~ MM/dd HH:mm".
func formatTimeRange(start, end time.Time) string {
	return start.Format("01/02 15:04") + " ~ " + end.Format("01/02 15:04")
}

// combineDateTime places the clock time of t on the calendar date of date,
// keeping t's location.
func combineDateTime(date, t time.Time) time.Time {
	year, month, day := date.Date()
	hour, min, sec := t.Clock()
	return time.Date(year, month, day, hour, min, sec, 0, t.Location())
}
