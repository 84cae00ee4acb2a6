// Package httpapi exposes the entitlement engine over JSON/HTTP.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/logging"
	"github.com/bnema/chatline-entitlements/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestIDHeader = "X-Request-ID"
	adminKeyHeader  = "X-Admin-Key"
)

type Deps struct {
	Accounts      *application.AccountService
	Sessions      *application.SessionService
	Entitlements  *application.EntitlementService
	Subscriptions *application.SubscriptionService
	Queries       *application.Queries

	// AdminKey must be presented in X-Admin-Key on /api/admin routes.
	// Left empty, every admin request is refused.
	AdminKey string
}

type handler struct {
	deps Deps
}

func NewHandler(deps Deps) http.Handler {
	h := &handler{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", h.handleLogout)
	mux.HandleFunc("GET /api/user/profile", h.handleProfile)
	mux.HandleFunc("GET /api/plans", handlePlans)
	mux.HandleFunc("POST /api/chat/authorize", h.handleAuthorize)
	mux.HandleFunc("POST /api/subscription", h.handleUpgrade)
	mux.HandleFunc("DELETE /api/subscription", h.handleCancel)
	mux.HandleFunc("GET /api/admin/stats", h.requireAdmin(h.handleAdminStats))

	return instrument(mux)
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument tags each request with an id, counts it per route pattern and
// logs its outcome.
func instrument(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, requestID := logging.WithRequestID(r.Context(), r.Header.Get(requestIDHeader))
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(ctx)

		_, route := next.Handler(r)
		if route == "" {
			route = "unmatched"
		}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		logger := logging.FromContext(ctx)
		logger.Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("HTTP request")
	})
}
