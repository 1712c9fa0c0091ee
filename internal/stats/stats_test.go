package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkwise/internal/db"
)

var sessionStart = time.Date(2026, 6, 5, 20, 0, 0, 0, time.UTC)

func drink(offset time.Duration, units float64, buzz int) db.Drink {
	return db.Drink{
		Units:     units,
		BuzzLevel: buzz,
		Timestamp: sessionStart.Add(offset),
	}
}

func TestHoursElapsed(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"zero", 0, 1},
		{"two minutes", 2 * time.Minute, 1},
		{"under an hour", 59 * time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"just over an hour", 61 * time.Minute, 2},
		{"seventy minutes", 70 * time.Minute, 2},
		{"three hours", 3 * time.Hour, 3},
		{"negative clock skew", -5 * time.Minute, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HoursElapsed(sessionStart, sessionStart.Add(tc.elapsed)))
		})
	}
}

func TestClampBuzz(t *testing.T) {
	cases := []struct {
		raw  float64
		want int
	}{
		{13.7, 10},
		{-2, 0},
		{4.5, 5},
		{4.4, 4},
		{0, 0},
		{10, 10},
		{10.4, 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampBuzz(tc.raw), "ClampBuzz(%v)", tc.raw)
	}
}

func TestValidUnits(t *testing.T) {
	assert.True(t, ValidUnits(0.1))
	assert.True(t, ValidUnits(2.3))
	assert.False(t, ValidUnits(0))
	assert.False(t, ValidUnits(-1.5))
}

func TestBuzzLevels(t *testing.T) {
	assert.Equal(t, 0, CurrentBuzz(nil))
	assert.Equal(t, 0, PeakBuzz(nil))

	drinks := []db.Drink{
		drink(10*time.Minute, 1, 2),
		drink(40*time.Minute, 1, 8),
		drink(70*time.Minute, 1, 5),
	}
	assert.Equal(t, 5, CurrentBuzz(drinks))
	assert.Equal(t, 8, PeakBuzz(drinks))
}

func TestRateAt(t *testing.T) {
	drinks := []db.Drink{
		drink(10*time.Minute, 1, 2),
		drink(70*time.Minute, 2, 5),
	}

	// First drink: 1 unit over a floored single hour.
	assert.InDelta(t, 1.0, RateAt(drinks, sessionStart, 0), 1e-9)
	// Second drink: 3 cumulative units over ceil(70min) = 2 hours.
	assert.InDelta(t, 1.5, RateAt(drinks, sessionStart, 1), 1e-9)

	assert.Zero(t, RateAt(drinks, sessionStart, -1))
	assert.Zero(t, RateAt(drinks, sessionStart, 2))
}

func TestPeakRateIsHistoricalMaximum(t *testing.T) {
	// A burst early on: the peak stays above the final cumulative rate.
	drinks := []db.Drink{
		drink(5*time.Minute, 2, 3),
		drink(10*time.Minute, 2, 4),
		drink(15*time.Minute, 2, 6),
		drink(4*time.Hour, 0.5, 4),
	}

	peak := PeakRate(drinks, sessionStart)
	final := RateAt(drinks, sessionStart, len(drinks)-1)

	assert.InDelta(t, 6.0, peak, 1e-9)
	assert.GreaterOrEqual(t, peak, final)
}

func TestPeakRateEmpty(t *testing.T) {
	assert.Zero(t, PeakRate(nil, sessionStart))
}

func TestComputeScenario(t *testing.T) {
	// Session starts at T; drinks at T+10min (1 unit, buzz 2) and
	// T+70min (2 units, buzz 5). Evaluated at T+70min.
	session := &db.Session{StartTime: sessionStart, IsActive: true}
	drinks := []db.Drink{
		drink(10*time.Minute, 1, 2),
		drink(70*time.Minute, 2, 5),
	}
	now := sessionStart.Add(70 * time.Minute)

	got := Compute(session, drinks, now)

	assert.Equal(t, 2, got.TotalDrinks)
	assert.InDelta(t, 3.0, got.TotalUnits, 1e-9)
	assert.Equal(t, int64(4200), got.TimeElapsedSec)
	assert.InDelta(t, 1.5, got.UnitsPerHour, 1e-9)
	assert.InDelta(t, 1.0, got.DrinksPerHour, 1e-9)
	assert.Equal(t, 5, got.CurrentBuzzLevel)
	assert.Equal(t, 5, got.PeakBuzzLevel)
	assert.InDelta(t, 1.5, got.PeakRate, 1e-9)
}

func TestComputeEmpty(t *testing.T) {
	session := &db.Session{StartTime: sessionStart, IsActive: true}
	got := Compute(session, nil, sessionStart.Add(2*time.Minute))

	assert.Zero(t, got.TotalDrinks)
	assert.Zero(t, got.TotalUnits)
	assert.Equal(t, int64(120), got.TimeElapsedSec)
	assert.Zero(t, got.UnitsPerHour)
	assert.Zero(t, got.DrinksPerHour)
	assert.Zero(t, got.CurrentBuzzLevel)
	assert.Zero(t, got.PeakBuzzLevel)
	assert.Zero(t, got.PeakRate)
}

func TestComputeClosedSessionUsesEndTime(t *testing.T) {
	end := sessionStart.Add(90 * time.Minute)
	session := &db.Session{StartTime: sessionStart, EndTime: &end}
	drinks := []db.Drink{drink(30*time.Minute, 2, 4)}

	// "now" is much later; the closed session still reports its final window.
	got := Compute(session, drinks, sessionStart.Add(24*time.Hour))

	assert.Equal(t, int64(5400), got.TimeElapsedSec)
	assert.InDelta(t, 1.0, got.UnitsPerHour, 1e-9)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, time.June)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC), end)

	start, end = MonthRange(2024, time.February)
	assert.Equal(t, 29, end.Day(), "leap year")
	assert.Equal(t, time.February, start.Month())
}

func monthlyFixtures() []db.Session {
	first := sessionStart
	second := first.Add(30 * time.Minute)

	withDrinks := db.Session{
		StartTime: first,
		Drinks: []db.Drink{
			{Units: 1, BuzzLevel: 3, Timestamp: first},
			{Units: 2, BuzzLevel: 7, Timestamp: second},
		},
	}
	empty := db.Session{
		StartTime: time.Date(2026, 6, 12, 21, 0, 0, 0, time.UTC),
		Drinks:    []db.Drink{},
	}
	otherMonth := db.Session{
		StartTime: time.Date(2026, 5, 30, 22, 0, 0, 0, time.UTC),
		Drinks:    []db.Drink{{Units: 5, BuzzLevel: 9, Timestamp: time.Date(2026, 5, 30, 22, 30, 0, 0, time.UTC)}},
	}
	return []db.Session{withDrinks, empty, otherMonth}
}

func TestMonthlyExcludesEmptyAndOutOfRange(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC) // past month view
	got := Monthly(monthlyFixtures(), 2026, time.June, now)

	require.Equal(t, 1, got.TotalSessions, "zero-drink and out-of-month sessions excluded")
	assert.Equal(t, 2, got.TotalDrinks)
	assert.InDelta(t, 3.0, got.TotalUnits, 1e-9)
	assert.InDelta(t, 3.0, got.AvgUnitsPerSession, 1e-9)
	assert.Equal(t, 7, got.PeakBuzzLevel)
	// Both drinks land inside the first ceil-hour from the first drink.
	assert.InDelta(t, 3.0, got.PeakRate, 1e-9)
	// June has 30 days -> ceil(30/7) = 5 weeks.
	assert.InDelta(t, 0.6, got.AvgUnitsPerWeek, 1e-9)
}

func TestMonthlyCurrentMonthUsesElapsedDays(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	got := Monthly(monthlyFixtures(), 2026, time.June, now)

	// 10 elapsed days -> ceil(10/7) = 2 weeks.
	assert.InDelta(t, 1.5, got.AvgUnitsPerWeek, 1e-9)
}

func TestMonthlyEmptyInput(t *testing.T) {
	got := Monthly(nil, 2026, time.June, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))

	assert.Zero(t, got.TotalSessions)
	assert.Zero(t, got.TotalUnits)
	assert.Zero(t, got.AvgUnitsPerSession)
	assert.Zero(t, got.AvgUnitsPerWeek)
	assert.Zero(t, got.PeakRate)
}
