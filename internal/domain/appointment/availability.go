package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const (
	DateLayout = "2006-01-02"

	// LegacyStaffCount is used when a shop has no staff, or for every shop
	// when fixed staff counting is enabled.
	LegacyStaffCount = 2
	MaxRangeDays     = 366
)

var (
	ErrDateRequired = httperr.Validation("date_required", "Başlangıç ve bitiş tarihi zorunludur")
	ErrInvalidDate  = httperr.Validation("invalid_date", "Geçersiz tarih formatı")
	ErrInvalidRange = httperr.Validation("invalid_range", "Bitiş tarihi başlangıç tarihinden önce olamaz")
	ErrRangeTooLong = httperr.Validation("range_too_long", "Tarih aralığı en fazla 366 gün olabilir")
)

type DayStat struct {
	Date     string `json:"date"`
	Count    int64  `json:"count"`
	Capacity int    `json:"capacity"`
}

type StatsRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the start of that day in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrDateRequired
	}
	if t, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return timezone.StartOfDay(t.In(loc)), nil
}

// ParseRange normalizes start to midnight and end to the last instant of its day.
func ParseRange(startRaw, endRaw string, loc *time.Location) (StatsRange, error) {
	start, err := ParseDate(startRaw, loc)
	if err != nil {
		return StatsRange{}, err
	}
	end, err := ParseDate(endRaw, loc)
	if err != nil {
		return StatsRange{}, err
	}
	if end.Before(start) {
		return StatsRange{}, ErrInvalidRange
	}
	r := StatsRange{Start: start, End: timezone.EndOfDay(end)}
	if r.End.Sub(r.Start) > (MaxRangeDays+1)*24*time.Hour || r.Days() > MaxRangeDays {
		return StatsRange{}, ErrRangeTooLong
	}
	return r, nil
}

// Days is the number of calendar days covered, both ends inclusive.
func (r StatsRange) Days() int {
	n := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

func Capacity(staffCount int64, fixedStaff bool) int {
	if fixedStaff || staffCount <= 0 {
		return LegacyStaffCount * SlotsPerDay
	}
	return int(staffCount) * SlotsPerDay
}

// BuildStats emits one record per day in r, zero-filled. counts is keyed by
// YYYY-MM-DD and is never clamped to capacity.
func BuildStats(r StatsRange, counts map[string]int64, capacity int) []DayStat {
	out := make([]DayStat, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		out = append(out, DayStat{
			Date:     key,
			Count:    counts[key],
			Capacity: capacity,
		})
	}
	return out
}
