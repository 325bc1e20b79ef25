package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"hotel_ops/internal/adapters/observability"
	"hotel_ops/internal/domain"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.ObserveHTTP(route, r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			l.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Tenant resolution ----

type ctxKey int

const hotelKey ctxKey = iota

// HotelLookup resolves the {hotelID} path parameter to a tenant.
type HotelLookup interface {
	GetHotel(ctx context.Context, id int64) (domain.Hotel, error)
}

// Tenant loads the hotel named in the path and stores it in the request context.
func Tenant(hl HotelLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(chi.URLParam(r, "hotelID"), 10, 64)
			if err != nil || id <= 0 {
				writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel id must be a positive number")
				return
			}
			h, err := hl.GetHotel(r.Context(), id)
			if err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), hotelKey, h)))
		})
	}
}

func hotelFrom(r *http.Request) domain.Hotel {
	h, _ := r.Context().Value(hotelKey).(domain.Hotel)
	return h
}

// ---- Per-tenant rate limiting ----

// TenantLimiter keeps one token bucket per hotel.
type TenantLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[int64]*rate.Limiter
}

func NewTenantLimiter(rps float64, burst int) *TenantLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &TenantLimiter{rps: rate.Limit(rps), burst: burst, buckets: map[int64]*rate.Limiter{}}
}

func (l *TenantLimiter) bucket(hotelID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[hotelID]
	if !ok {
		b = rate.NewLimiter(l.rps, l.burst)
		l.buckets[hotelID] = b
	}
	return b
}

// Middleware must run after Tenant. A nil limiter lets everything through.
func (l *TenantLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil || l.rps <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := l.bucket(hotelFrom(r).ID)
		if !b.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(b)))
			writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded for this hotel")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retrySeconds(b *rate.Limiter) int {
	r := b.Reserve()
	d := r.Delay()
	r.Cancel()
	if s := int(d.Round(time.Second) / time.Second); s > 0 {
		return s
	}
	return 1
}
