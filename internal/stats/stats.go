// Package stats derives point-in-time and historical statistics from
// drink records. Every function is total: empty input yields zero-valued
// stats, never an error or a division by zero.
package stats

import (
	"math"
	"time"

	"drinkwise/internal/db"
)

// SessionStats is the live (or final) view of a single session. Derived
// on demand, never persisted.
type SessionStats struct {
	TotalDrinks      int     `json:"totalDrinks"`
	TotalUnits       float64 `json:"totalUnits"`
	TimeElapsedSec   int64   `json:"timeElapsedSec"`
	DrinksPerHour    float64 `json:"drinksPerHour"`
	UnitsPerHour     float64 `json:"unitsPerHour"`
	CurrentBuzzLevel int     `json:"currentBuzzLevel"`
	PeakBuzzLevel    int     `json:"peakBuzzLevel"`
	PeakRate         float64 `json:"peakRate"`
}

// MonthlyStats aggregates all sessions whose start time falls inside one
// calendar month. Sessions without drinks are excluded from the counts.
type MonthlyStats struct {
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	TotalSessions      int     `json:"totalSessions"`
	TotalDrinks        int     `json:"totalDrinks"`
	TotalUnits         float64 `json:"totalUnits"`
	AvgUnitsPerSession float64 `json:"avgUnitsPerSession"`
	AvgUnitsPerWeek    float64 `json:"avgUnitsPerWeek"`
	PeakBuzzLevel      int     `json:"peakBuzzLevel"`
	PeakRate           float64 `json:"peakRate"`
}

// HoursElapsed returns elapsed whole hours between start and asOf,
// rounded up, never less than 1. The floor of one hour keeps an early
// burst ("6 drinks in 2 minutes") from reading as a 180/hr rate; it
// reads as 6/hr until a full hour has passed.
func HoursElapsed(start, asOf time.Time) int {
	secs := asOf.Sub(start).Seconds()
	if secs <= 0 {
		return 1
	}
	hours := int(math.Ceil(secs / 3600))
	if hours < 1 {
		return 1
	}
	return hours
}

// CurrentBuzz is the buzz level of the most recent drink, or 0 if none.
func CurrentBuzz(drinks []db.Drink) int {
	if len(drinks) == 0 {
		return 0
	}
	return drinks[len(drinks)-1].BuzzLevel
}

// PeakBuzz is the maximum buzz level across the list, or 0 if empty.
func PeakBuzz(drinks []db.Drink) int {
	peak := 0
	for _, d := range drinks {
		if d.BuzzLevel > peak {
			peak = d.BuzzLevel
		}
	}
	return peak
}

// RateAt is the consumption rate as of drink index i: cumulative units
// through i divided by ceil-hours since session start at drink i's
// timestamp. Drinks must be in ascending timestamp order.
func RateAt(drinks []db.Drink, sessionStart time.Time, i int) float64 {
	if i < 0 || i >= len(drinks) {
		return 0
	}
	var units float64
	for _, d := range drinks[:i+1] {
		units += d.Units
	}
	return units / float64(HoursElapsed(sessionStart, drinks[i].Timestamp))
}

// PeakRate is the highest any-point-in-time rate reached during the
// session: the maximum of RateAt evaluated at every drink index.
func PeakRate(drinks []db.Drink, sessionStart time.Time) float64 {
	var peak float64
	var units float64
	for _, d := range drinks {
		units += d.Units
		rate := units / float64(HoursElapsed(sessionStart, d.Timestamp))
		if rate > peak {
			peak = rate
		}
	}
	return peak
}

// Compute derives the full stat block for one session. For a closed
// session the elapsed window ends at EndTime; otherwise at now.
func Compute(session *db.Session, drinks []db.Drink, now time.Time) SessionStats {
	asOf := now
	if session.EndTime != nil {
		asOf = *session.EndTime
	}

	var units float64
	for _, d := range drinks {
		units += d.Units
	}

	hours := HoursElapsed(session.StartTime, asOf)
	elapsed := int64(asOf.Sub(session.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	return SessionStats{
		TotalDrinks:      len(drinks),
		TotalUnits:       units,
		TimeElapsedSec:   elapsed,
		DrinksPerHour:    float64(len(drinks)) / float64(hours),
		UnitsPerHour:     units / float64(hours),
		CurrentBuzzLevel: CurrentBuzz(drinks),
		PeakBuzzLevel:    PeakBuzz(drinks),
		PeakRate:         PeakRate(drinks, session.StartTime),
	}
}

// MonthRange returns the inclusive bounds of a calendar month:
// [first day 00:00:00, last day 23:59:59] in UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Monthly aggregates the given sessions (each with its drinks preloaded)
// for one calendar month. Sessions whose start time falls outside the
// month, and sessions with zero drinks, are skipped. The units-per-week
// average divides by elapsed weeks for the current month and by the
// month's total weeks for past months, rounding weeks up.
func Monthly(sessions []db.Session, year int, month time.Month, now time.Time) MonthlyStats {
	start, end := MonthRange(year, month)

	out := MonthlyStats{Year: year, Month: int(month)}

	for _, s := range sessions {
		if s.StartTime.Before(start) || s.StartTime.After(end) {
			continue
		}
		if len(s.Drinks) == 0 {
			continue
		}

		out.TotalSessions++
		out.TotalDrinks += len(s.Drinks)
		for _, d := range s.Drinks {
			out.TotalUnits += d.Units
		}
		if buzz := PeakBuzz(s.Drinks); buzz > out.PeakBuzzLevel {
			out.PeakBuzzLevel = buzz
		}
		// The original measures historical per-session rates from the
		// first drink, not the session start.
		if rate := PeakRate(s.Drinks, s.Drinks[0].Timestamp); rate > out.PeakRate {
			out.PeakRate = rate
		}
	}

	if out.TotalSessions > 0 {
		out.AvgUnitsPerSession = out.TotalUnits / float64(out.TotalSessions)
	}

	days := start.AddDate(0, 1, -1).Day()
	if now.UTC().Year() == year && now.UTC().Month() == month {
		days = now.UTC().Day()
	}
	if weeks := int(math.Ceil(float64(days) / 7)); weeks > 0 {
		out.AvgUnitsPerWeek = out.TotalUnits / float64(weeks)
	}

	return out
}

// ClampBuzz normalizes a raw buzz input to an integer in [0,10] using
// round half up.
func ClampBuzz(raw float64) int {
	level := int(math.Floor(raw + 0.5))
	if level < 0 {
		return 0
	}
	if level > 10 {
		return 10
	}
	return level
}

// ValidUnits reports whether a units value is acceptable (> 0).
func ValidUnits(units float64) bool {
	return units > 0
}
