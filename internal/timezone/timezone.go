package timezone

import (
	"sync"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

var (
	mu       sync.RWMutex
	fallback = DefaultTimezone
)

// SetDefault changes the zone used for companies without a valid timezone.
// Invalid names are ignored.
func SetDefault(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	fallback = tz
	mu.Unlock()
}

func defaultName() string {
	mu.RLock()
	defer mu.RUnlock()
	return fallback
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(defaultName())
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDateTime parses "YYYY-MM-DD" + "HH:MM" as wall-clock time in tz.
func ParseDateTime(date, clock, tz string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, Location(tz))
}

// ParseDate parses "YYYY-MM-DD" as midnight in tz.
func ParseDate(date, tz string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location(tz))
}
