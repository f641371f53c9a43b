package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentPeriod_Daily(t *testing.T) {
	now := time.Date(2024, time.March, 7, 14, 30, 0, 0, time.UTC)
	p := CurrentPeriod(RecurrenceDaily, now)

	if !p.Start.Equal(date(2024, time.March, 7)) {
		t.Fatalf("expected start 2024-03-07, got %v", p.Start)
	}
	if !SameDay(p.End, now) || p.End.Hour() != 23 || p.End.Minute() != 59 {
		t.Fatalf("expected end of 2024-03-07, got %v", p.End)
	}
}

func TestCurrentPeriod_WeeklyStartsMonday(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantMonday time.Time
	}{
		{"wednesday mid-week", date(2024, time.March, 6), date(2024, time.March, 4)},
		{"monday itself", date(2024, time.March, 4), date(2024, time.March, 4)},
		{"sunday closes the week", date(2024, time.March, 10), date(2024, time.March, 4)},
		{"saturday", date(2024, time.March, 9), date(2024, time.March, 4)},
		{"year boundary", date(2025, time.January, 1), date(2024, time.December, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CurrentPeriod(RecurrenceWeekly, tt.now)

			if p.Start.Weekday() != time.Monday {
				t.Fatalf("period start %v is not a Monday", p.Start)
			}
			if !p.Start.Equal(tt.wantMonday) {
				t.Fatalf("expected Monday %v, got %v", tt.wantMonday, p.Start)
			}
			if p.End.Weekday() != time.Sunday {
				t.Fatalf("period end %v is not a Sunday", p.End)
			}
			if !SameDay(p.End, p.Start.AddDate(0, 0, 6)) {
				t.Fatalf("expected end six days after start, got %v", p.End)
			}
		})
	}
}

func TestCurrentPeriod_Yearly(t *testing.T) {
	now := date(2024, time.July, 15)
	p := CurrentPeriod(RecurrenceYearly, now)

	if !p.Start.Equal(date(2024, time.January, 1)) {
		t.Fatalf("expected Jan 1, got %v", p.Start)
	}
	if !SameDay(p.End, date(2024, time.December, 31)) {
		t.Fatalf("expected Dec 31, got %v", p.End)
	}
}

func TestCurrentPeriod_Monthly(t *testing.T) {
	now := date(2024, time.February, 10)
	p := CurrentPeriod(RecurrenceMonthly, now)

	if !p.Start.Equal(date(2024, time.February, 1)) {
		t.Fatalf("expected Feb 1, got %v", p.Start)
	}
	// 2024 is a leap year
	if !SameDay(p.End, date(2024, time.February, 29)) {
		t.Fatalf("expected Feb 29, got %v", p.End)
	}
}

func TestCurrentPeriod_UnrecognizedFallsBackToMonthly(t *testing.T) {
	now := time.Date(2024, time.June, 18, 9, 0, 0, 0, time.UTC)
	monthly := CurrentPeriod(RecurrenceMonthly, now)

	for _, tag := range []Recurrence{"", "biweekly", "fortnightly", "MONTHLY"} {
		got := CurrentPeriod(tag, now)
		if !got.Start.Equal(monthly.Start) || !got.End.Equal(monthly.End) {
			t.Fatalf("recurrence %q: expected monthly period %+v, got %+v", tag, monthly, got)
		}
	}
}
