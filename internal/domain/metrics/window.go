package metrics

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
)

// Granularity is the dashboard range picked by the caller.
type Granularity string

const (
	RangeToday Granularity = "today"
	RangeWeek  Granularity = "week"
	RangeMonth Granularity = "month"
)

func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(raw))); g {
	case "":
		return RangeToday, nil
	case RangeToday, RangeWeek, RangeMonth:
		return g, nil
	}
	return "", httperr.ErrBusiness("invalid_range")
}

// Window is a closed interval [Start, End] in the tenant's local time.
type Window struct {
	Granularity Granularity
	Start       time.Time
	End         time.Time
}

// WindowFor derives the window containing now, using now's location.
// Weeks start on Sunday.
func WindowFor(g Granularity, now time.Time) Window {
	today := startOfDay(now)

	switch g {
	case RangeWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return Window{Granularity: g, Start: start, End: endOfDay(start.AddDate(0, 0, 6))}

	case RangeMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Window{Granularity: g, Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
	}

	return Window{Granularity: RangeToday, Start: today, End: endOfDay(today)}
}

// Days is ceil((End - Start) / 24h), measured on the wall clock so a DST
// shift inside the window does not add or drop a day.
func (w Window) Days() int {
	s := wallClock(w.Start)
	e := wallClock(w.End)

	diff := e.Sub(s)
	if diff <= 0 {
		return 0
	}

	const day = 24 * time.Hour
	days := int(diff / day)
	if diff%day != 0 {
		days++
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
