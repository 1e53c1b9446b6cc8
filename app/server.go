package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	imposterhandlers "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/handlers"
	leaderboardhandlers "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/handlers"
	partyhandlers "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/handlers"
	powerhandlers "github.com/FamilyVerse/party-os/app/modules/power/infrastructure/handlers"
	wagerhandlers "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/handlers"
)

// Router assembles the HTTP surface: one subrouter per module plus health.
func (app *App) Router(registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestTracing())
	r.Use(requestMetrics(registry))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Mount("/api/party", partyhandlers.NewHandlers(app.PartyService, app.Logger).Routes())
	r.Mount("/api/leaderboard", leaderboardhandlers.NewHandlers(app.LeaderboardService, app.Logger).Routes())
	r.Mount("/api/wagering", wagerhandlers.NewHandlers(app.WagerService, app.Logger).Routes())
	r.Mount("/api/imposter", imposterhandlers.NewHandlers(app.ImposterService, app.RoundQueue, app.Logger).Routes())
	r.Mount("/api/power", powerhandlers.NewHandlers(app.PowerService, app.Logger).Routes())

	return r
}

// Serve runs the API listener and the metrics listener until ctx is done.
func (app *App) Serve(ctx context.Context) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := app.RoundQueue.Start(ctx); err != nil {
		return err
	}

	api := &http.Server{
		Addr:              app.Cfg.HTTP.Addr,
		Handler:           app.Router(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metrics := &http.Server{
		Addr:              app.Cfg.Metrics.Addr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		app.Logger.Info("HTTP listener started", slog.String("addr", api.Addr))
		errCh <- api.ListenAndServe()
	}()
	go func() {
		app.Logger.Info("Metrics listener started", slog.String("addr", metrics.Addr))
		errCh <- metrics.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = api.Shutdown(shutdownCtx)
	_ = metrics.Shutdown(shutdownCtx)
	return nil
}

// requestTracing opens a server span per request, renamed to the matched
// route pattern once routing has resolved it.
func requestTracing() func(http.Handler) http.Handler {
	tracer := otel.Tracer("party-os/http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method, trace.WithSpanKind(trace.SpanKindServer))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if route := chi.RouteContext(r.Context()).RoutePattern(); route != "" {
				span.SetName(r.Method + " " + route)
			}
			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.Int("http.status_code", ww.Status()),
			)
			span.End()
		})
	}
}

// requestMetrics counts requests and observes latency per route pattern.
func requestMetrics(registry *prometheus.Registry) func(http.Handler) http.Handler {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partyos_http_requests_total",
		Help: "HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "partyos_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	registry.MustRegister(requests, latency)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
