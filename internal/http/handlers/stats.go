package handlers

import (
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "drinkwise/internal/db"
	"drinkwise/internal/stats"
)

// SessionStats derives the live stat block for one session. Closed
// sessions report their final figures.
func SessionStats(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		session, err := dbpkg.SessionByID(db, user.ID, pathParam(ctx, "id"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				jsonError(ctx, fasthttp.StatusNotFound, "session not found")
				return
			}
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch session")
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, stats.Compute(session, session.Drinks, time.Now()))
	}
}

// monthQuery reads the optional "year"/"month" query parameters,
// defaulting to the month of now. Malformed values get a 400 and
// ok=false.
func monthQuery(ctx *fasthttp.RequestCtx, now time.Time) (year int, month time.Month, ok bool) {
	year = now.Year()
	month = now.Month()

	if v := string(ctx.QueryArgs().Peek("year")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1970 || n > 9999 {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid year")
			return 0, 0, false
		}
		year = n
	}
	if v := string(ctx.QueryArgs().Peek("month")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			jsonError(ctx, fasthttp.StatusBadRequest, "invalid month")
			return 0, 0, false
		}
		month = time.Month(n)
	}
	return year, month, true
}

// MonthlyStats aggregates the caller's sessions for one calendar month.
// "year" and "month" query parameters default to the current month.
func MonthlyStats(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		now := time.Now().UTC()
		year, month, ok := monthQuery(ctx, now)
		if !ok {
			return
		}

		start, end := stats.MonthRange(year, month)
		sessions, err := dbpkg.SessionsInRange(db, user.ID, start, end)
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch sessions")
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, stats.Monthly(sessions, year, month, now))
	}
}

// MonthlyHistory returns the month's sessions (drinks nested) alongside
// the aggregate block, as the history view consumes them. Zero-drink
// sessions are omitted from the list to match the aggregate's counts.
func MonthlyHistory(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		now := time.Now().UTC()
		year, month, ok := monthQuery(ctx, now)
		if !ok {
			return
		}

		start, end := stats.MonthRange(year, month)
		sessions, err := dbpkg.SessionsInRange(db, user.ID, start, end)
		if err != nil {
			jsonError(ctx, fasthttp.StatusInternalServerError, "failed to fetch sessions")
			return
		}

		withDrinks := make([]dbpkg.Session, 0, len(sessions))
		for _, s := range sessions {
			if len(s.Drinks) > 0 {
				withDrinks = append(withDrinks, s)
			}
		}

		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{
			"sessions": withDrinks,
			"stats":    stats.Monthly(sessions, year, month, now),
		})
	}
}
