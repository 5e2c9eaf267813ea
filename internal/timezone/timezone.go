package timezone

import (
	"sync/atomic"
	"time"
)

const fallbackTimezone = "Europe/Istanbul"

var defaultTZ atomic.Value

func init() {
	defaultTZ.Store(fallbackTimezone)
}

// SetDefault changes the zone used for shops without one. Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultTZ.Store(tz)
	}
}

func Default() string {
	return defaultTZ.Load().(string)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		return loc
	}
	if loc, err := time.LoadLocation(Default()); err == nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(Default()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
