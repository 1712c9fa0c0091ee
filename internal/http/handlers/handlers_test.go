package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"drinkwise/internal/catalog"
	dbpkg "drinkwise/internal/db"
	httpctx "drinkwise/internal/http/ctx"
)

func TestJSONError(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	jsonError(ctx, fasthttp.StatusConflict, "session is not active")

	assert.Equal(t, fasthttp.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.JSONEq(t, `{"error":"session is not active"}`, string(ctx.Response.Body()))
}

func TestMustUserUnauthorized(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	user, ok := MustUser(ctx)

	assert.False(t, ok)
	assert.Nil(t, user)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestMustUserPassesThrough(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	want := &dbpkg.User{ID: "user-1", Email: "a@b.c"}
	httpctx.SetUser(ctx, want)

	user, ok := MustUser(ctx)

	require.True(t, ok)
	assert.Equal(t, want, user)
}

func TestPathParam(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "abc-123")

	assert.Equal(t, "abc-123", pathParam(ctx, "id"))
	assert.Equal(t, "", pathParam(ctx, "missing"))
}

func TestMonthQuery(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		uri       string
		wantYear  int
		wantMonth time.Month
		wantOK    bool
	}{
		{"defaults", "/api/stats/monthly", 2026, time.August, true},
		{"explicit", "/api/stats/monthly?year=2025&month=2", 2025, time.February, true},
		{"month too large", "/api/stats/monthly?month=13", 0, 0, false},
		{"month not a number", "/api/stats/monthly?month=juin", 0, 0, false},
		{"year out of range", "/api/stats/monthly?year=123", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := &fasthttp.RequestCtx{}
			ctx.Request.SetRequestURI(tc.uri)

			year, month, ok := monthQuery(ctx, now)

			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantYear, year)
				assert.Equal(t, tc.wantMonth, month)
			} else {
				assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
			}
		})
	}
}

func TestMonthlyEndpointsRejectBadMonth(t *testing.T) {
	// Both month-scoped endpoints go through the same parser, so a
	// malformed month is a 400 before any query runs.
	endpoints := map[string]fasthttp.RequestHandler{
		"stats":   MonthlyStats(nil),
		"history": MonthlyHistory(nil),
	}
	for name, handler := range endpoints {
		t.Run(name, func(t *testing.T) {
			ctx := &fasthttp.RequestCtx{}
			ctx.Request.SetRequestURI("/api?month=13")
			httpctx.SetUser(ctx, &dbpkg.User{ID: "user-1"})

			handler(ctx)

			assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
			assert.JSONEq(t, `{"error":"invalid month"}`, string(ctx.Response.Body()))
		})
	}
}

func TestCatalogHandler(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	Catalog()(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var cats []catalog.Category
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &cats))
	assert.NotEmpty(t, cats)
}
