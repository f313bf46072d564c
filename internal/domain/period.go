package domain

import (
	"time"
)

const DateLayout = "2006-01-02"

type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
)

func ParsePeriodKind(s string) (PeriodKind, error) {
	switch k := PeriodKind(s); k {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return k, nil
	default:
		return "", NewValidationError("period", "period must be one of day, week, month")
	}
}

// Period is an inclusive range of civil dates.
type Period struct {
	Kind  PeriodKind `json:"kind"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// Date truncates t to its civil date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError("date", "date must use the YYYY-MM-DD format")
	}
	return t, nil
}

// ResolvePeriod returns the day, the Monday to Sunday week, or the calendar
// month that contains ref.
func ResolvePeriod(kind PeriodKind, ref time.Time) (Period, error) {
	day := Date(ref)

	switch kind {
	case PeriodDay:
		return Period{Kind: kind, Start: day, End: day}, nil
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 0, 6)}, nil
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Period{Kind: kind, Start: start, End: start.AddDate(0, 1, -1)}, nil
	default:
		return Period{}, NewValidationError("period", "unknown period "+string(kind))
	}
}

func (p Period) Contains(date time.Time) bool {
	d := Date(date)
	return !d.Before(p.Start) && !d.After(p.End)
}
