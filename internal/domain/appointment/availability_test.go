package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

var istanbul = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestParseRange_NormalizesBounds(t *testing.T) {
	r, err := ParseRange("2024-05-01", "2024-05-03T08:00:00Z", istanbul)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, istanbul), r.Start)
	assert.Equal(t, time.Date(2024, 5, 3, 23, 59, 59, 999999999, istanbul), r.End)
	assert.Equal(t, 3, r.Days())
}

func TestParseRange_Errors(t *testing.T) {
	cases := []struct {
		start, end string
		code       string
	}{
		{"", "2024-05-01", "date_required"},
		{"2024-05-01", "", "date_required"},
		{"01/05/2024", "2024-05-02", "invalid_date"},
		{"2024-05-03", "2024-05-01", "invalid_range"},
		{"2024-01-01", "2025-01-02", "range_too_long"},
	}
	for _, tc := range cases {
		_, err := ParseRange(tc.start, tc.end, istanbul)
		require.Error(t, err)
		assert.True(t, httperr.Is(err, tc.code), "%s..%s: %v", tc.start, tc.end, err)
		assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	}
}

func TestParseRange_SingleDay(t *testing.T) {
	r, err := ParseRange("2024-02-29", "2024-02-29", istanbul)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Days())
}

func TestBuildStats_OneRecordPerDayZeroFilled(t *testing.T) {
	r, err := ParseRange("2024-03-30", "2024-04-02", istanbul)
	require.NoError(t, err)

	stats := BuildStats(r, map[string]int64{
		"2024-03-31": 3,
		"2024-04-02": 40,
	}, Capacity(0, true))

	require.Len(t, stats, 4)
	assert.Equal(t, []string{"2024-03-30", "2024-03-31", "2024-04-01", "2024-04-02"},
		[]string{stats[0].Date, stats[1].Date, stats[2].Date, stats[3].Date})
	assert.Equal(t, int64(0), stats[0].Count)
	assert.Equal(t, int64(3), stats[1].Count)
	assert.Equal(t, int64(40), stats[3].Count, "counts are not clamped")
	for _, s := range stats {
		assert.Equal(t, 32, s.Capacity)
	}
}

func TestBuildStats_AcrossDSTChange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r, err := ParseRange("2024-03-09", "2024-03-11", ny)
	require.NoError(t, err)

	stats := BuildStats(r, nil, 32)
	require.Len(t, stats, 3)
	assert.Equal(t, "2024-03-10", stats[1].Date)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 32, Capacity(0, false))
	assert.Equal(t, 48, Capacity(3, false))
	assert.Equal(t, 16, Capacity(1, false))
	assert.Equal(t, 32, Capacity(5, true))
}
