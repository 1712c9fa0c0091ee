package handlers

import (
	"bytes"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

var (
	sessionsStarted prometheus.Counter
	sessionsEnded   *prometheus.CounterVec
	drinksLogged    prometheus.Counter
	drinkUnits      prometheus.Histogram
)

func InitPrometheusMetrics() {
	sessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "drinkwise",
			Name:      "sessions_started_total",
			Help:      "Total number of sessions started.",
		},
	)
	sessionsEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drinkwise",
			Name:      "sessions_ended_total",
			Help:      "Total number of sessions ended, by cause.",
		},
		[]string{"cause"},
	)
	drinksLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "drinkwise",
			Name:      "drinks_logged_total",
			Help:      "Total number of drinks logged.",
		},
	)
	drinkUnits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "drinkwise",
			Name:      "drink_units",
			Help:      "Histogram of units per logged drink.",
			Buckets:   []float64{0.5, 1, 1.5, 2, 2.5, 3, 4, 5, 7.5, 10},
		},
	)
	prometheus.MustRegister(sessionsStarted, sessionsEnded, drinksLogged, drinkUnits)
}

func CountSessionStarted() {
	sessionsStarted.Inc()
}

// CountSessionEnded records a session close; cause is "manual" or "inactivity".
func CountSessionEnded(cause string) {
	sessionsEnded.WithLabelValues(cause).Inc()
}

func CountDrinkLogged(units float64) {
	drinksLogged.Inc()
	drinkUnits.Observe(units)
}

// MetricsHandler serves registered metrics in Prometheus text format.
// By default only drinkwise_* families are emitted; ?all=1 includes the
// runtime collectors too.
func MetricsHandler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		metricFamilies, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to gather metrics")
			return
		}

		includeAll := ctx.QueryArgs().Has("all")
		filtered := make([]*dto.MetricFamily, 0, len(metricFamilies))
		for _, mf := range metricFamilies {
			if includeAll || strings.HasPrefix(mf.GetName(), "drinkwise_") {
				filtered = append(filtered, mf)
			}
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
		for _, mf := range filtered {
			if err := encoder.Encode(mf); err != nil {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.FmtText))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}
