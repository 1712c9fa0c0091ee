package main

import (
	"log"
	"time"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"drinkwise/internal/config"
	"drinkwise/internal/db"
	"drinkwise/internal/http/handlers"
	appmw "drinkwise/internal/http/middleware"
	ui "drinkwise/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatalf("APP_JWT_SECRET is required")
	}

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	handlers.InitPrometheusMetrics()

	idle := time.Duration(cfg.InactivityMinutes) * time.Minute
	db.StartInactivityWorker(sqlDB, idle, func(sessionID string) {
		handlers.CountSessionEnded("inactivity")
	})

	r := router.New()

	// Global middleware chain: request logger, then CORS, then router.
	handler := handlers.RequestLogger(appmw.CORS(cfg)(r.Handler))

	healthz := func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
	}
	r.GET("/health", healthz)
	r.GET("/healthz", healthz)

	r.GET("/", func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBody(ui.Index())
	})
	r.ServeFS("/static/{filepath:*}", ui.StaticFS())

	r.GET("/metrics", handlers.MetricsHandler())

	r.POST("/api/auth/register", handlers.Register(sqlDB, cfg))
	r.POST("/api/auth/login", handlers.Login(sqlDB, cfg))

	bearer := appmw.BearerAuth(sqlDB, cfg)

	r.GET("/api/auth/me", bearer(handlers.Me()))

	r.GET("/api/sessions", bearer(handlers.ListSessions(sqlDB)))
	r.POST("/api/sessions", bearer(handlers.CreateSession(sqlDB)))
	r.GET("/api/sessions/{id}", bearer(handlers.GetSession(sqlDB)))
	r.PATCH("/api/sessions/{id}/end", bearer(handlers.EndSession(sqlDB)))
	r.PATCH("/api/sessions/{id}/resume", bearer(handlers.ResumeSession(sqlDB)))
	r.DELETE("/api/sessions/{id}", bearer(handlers.DeleteSession(sqlDB)))

	r.GET("/api/drinks/session/{sessionId}", bearer(handlers.SessionDrinks(sqlDB)))
	r.POST("/api/drinks", bearer(handlers.CreateDrink(sqlDB)))
	r.PATCH("/api/drinks/{id}", bearer(handlers.UpdateDrink(sqlDB)))
	r.DELETE("/api/drinks/{id}", bearer(handlers.DeleteDrink(sqlDB)))

	r.GET("/api/catalog", bearer(handlers.Catalog()))

	r.GET("/api/stats/session/{id}", bearer(handlers.SessionStats(sqlDB)))
	r.GET("/api/stats/monthly", bearer(handlers.MonthlyStats(sqlDB)))
	r.GET("/api/history", bearer(handlers.MonthlyHistory(sqlDB)))

	log.Printf("drinkwise listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
