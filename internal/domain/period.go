package domain

import "time"

// Period is an inclusive accounting window, truncated to day boundaries.
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentPeriod returns the accounting period containing now for the given
// recurrence. Weeks are ISO-style, anchored on Monday. Any tag that is not
// daily, weekly or yearly resolves to the calendar month: monthly is the
// named default, and unrecognized tags deliberately degrade to it for
// compatibility with historical data.
func CurrentPeriod(r Recurrence, now time.Time) Period {
	switch r {
	case RecurrenceDaily:
		return Period{Start: StartOfDay(now), End: EndOfDay(now)}
	case RecurrenceWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday belongs to the week it ends
		}
		monday := StartOfDay(now.AddDate(0, 0, -(weekday - 1)))
		return Period{Start: monday, End: EndOfDay(monday.AddDate(0, 0, 6))}
	case RecurrenceYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := EndOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))
		return Period{Start: start, End: end}
	case RecurrenceMonthly:
		fallthrough
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := EndOfDay(start.AddDate(0, 1, -1))
		return Period{Start: start, End: end}
	}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
