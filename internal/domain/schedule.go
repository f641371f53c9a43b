package domain

import "time"

// NextDueDate advances a due date one cadence step. One-time and unknown
// frequencies do not advance.
func NextDueDate(due time.Time, frequency BillFrequency) time.Time {
	switch frequency {
	case BillMonthly:
		return due.AddDate(0, 1, 0)
	case BillQuarterly:
		return due.AddDate(0, 3, 0)
	case BillYearly:
		return due.AddDate(1, 0, 0)
	default:
		return due
	}
}

// InstanceDates walks a template's cadence from its anchor due date up to
// today (inclusive, by calendar day) and returns the ticks that need a
// materialized instance. The anchor tick itself is excluded: that day is
// covered by the template record. One-time templates yield nothing.
func InstanceDates(anchor, today time.Time, frequency BillFrequency) []time.Time {
	switch frequency {
	case BillMonthly, BillQuarterly, BillYearly:
	default:
		return nil
	}

	anchorDay := StartOfDay(anchor)
	todayDay := StartOfDay(today)

	var dates []time.Time
	for current := anchorDay; !current.After(todayDay); current = NextDueDate(current, frequency) {
		if current.Equal(anchorDay) {
			continue
		}
		dates = append(dates, current)
	}
	return dates
}
