package httpapi

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var tooManyRequests = apperr.TooManyRequests("too many requests")

type contextKey int

const requestIDKey contextKey = iota

// requestIDMiddleware stamps every request with a correlation id, echoed in
// the X-Request-Id response header, per spec.md §4.10's "request-id
// injection" stage.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFromContext returns the id stamped by requestIDMiddleware.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each request's method, path, status, and latency,
// and records the latency against the matched route template in
// Prometheus (bounding cardinality, unlike the raw path); generalized from
// the teacher's loggingMiddleware in cmd/server/main.go.
func loggingMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)
			log.Printf("request_id=%s %s %s status=%d duration=%v", requestIDFromContext(r.Context()), r.Method, r.URL.Path, rec.status, elapsed)
			m.ObserveHTTPDuration(routeTemplate(r), r.Method, statusClass(rec.status), elapsed)
		})
	}
}

// routeTemplate reports the matched mux route's path template, falling
// back to the raw path when no route matched (e.g. a 404).
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// corsMiddleware permits browser-based clients; carried from the teacher's
// main.go unchanged.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// perIPLimiter is a per-IP token bucket, generalized from the teacher's
// package-level rate limiter map.
type perIPLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newPerIPLimiter(rps float64, burst int) *perIPLimiter {
	return &perIPLimiter{limiters: make(map[string]*rate.Limiter), rps: rate.Limit(rps), burst: burst}
}

func (l *perIPLimiter) allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// rateLimitMiddleware rejects with 429 once an IP exceeds its token
// bucket. Defaults mirror the teacher's: 10 req/s, burst 20.
func rateLimitMiddleware(limiter *perIPLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.allow(ip) {
				writeError(w, tooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// throttleMiddleware bounds total in-flight requests across the process,
// generalized from the teacher's semaphore-backed throttle.
func throttleMiddleware(maxInFlight int) func(http.Handler) http.Handler {
	sem := make(chan struct{}, maxInFlight)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
				next.ServeHTTP(w, r)
			default:
				writeError(w, tooManyRequests)
			}
		})
	}
}
