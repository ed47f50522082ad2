// Package http exposes the dashboard, search and report operations
// over a JSON API.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"moneta/internal/core"
	"moneta/internal/middleware/trace"
	"moneta/internal/quotecache"
)

// DashboardBuilder assembles the dashboard view for the current moment.
type DashboardBuilder interface {
	Build(ctx context.Context) (core.Dashboard, error)
	Search(ctx context.Context, query string) ([]core.Record, error)
}

// ReportGenerator produces a category spending report and persists it.
type ReportGenerator interface {
	SpendingByCategory(ctx context.Context, category, referenceDate, fileName string) ([]core.Record, string, error)
}

type Server struct {
	http.Server
	dashboards DashboardBuilder
	reports    ReportGenerator

	rateLimiter *rateLimiter
	tracer      *trace.Middleware

	// Dashboards are expensive to assemble (remote quotes), cache briefly.
	dashCache *quotecache.Cache[core.Dashboard]

	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{clients: make(map[string]*clientInfo)}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes and returns a ready-to-run http.Server.
func NewServer(addr string, dashboards DashboardBuilder, reports ReportGenerator) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		dashboards:  dashboards,
		reports:     reports,
		rateLimiter: newRateLimiter(),
		tracer:      trace.NewMiddleware(clientIP),
		dashCache:   quotecache.New[core.Dashboard](1, time.Minute),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/dashboard", s.withLimits(s.handleDashboard))
	mux.HandleFunc("/search", s.withLimits(s.handleSearch))
	mux.HandleFunc("/reports/spending-by-category", s.withLimits(s.handleSpendingReport))

	s.Server.Handler = s.tracer.Middleware(mux)

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withLimits applies rate limiting before the handler runs.
func (s *Server) withLimits(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.rateLimiter.allow(ip) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next(w, r)
	}
}

// clientIP extracts the client address, considering proxies.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
