package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"souqeats/internal/domain"
)

type contextKey int

const (
	sessionIDKey contextKey = iota
	profileKey
)

const (
	sessionCookie = "session_id"
	tokenCookie   = "session_token"
)

// SessionResolver turns a raw token into the caller's profile.
type SessionResolver interface {
	SessionProfile(token string) domain.Profile
}

// withSession guarantees every request carries a cart session id,
// assigning a fresh one via cookie when missing.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = newSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((7 * 24 * time.Hour).Seconds()),
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(buf)
}

// withProfile resolves the session token from cookie or bearer header.
// Requests without a valid token proceed as an anonymous customer;
// restricted handlers do their own role checks.
func withProfile(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(tokenCookie); err == nil {
				token = cookie.Value
			}
			if token == "" {
				if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
					token = strings.TrimPrefix(header, "Bearer ")
				}
			}

			profile := resolver.SessionProfile(token)
			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

func profileFrom(r *http.Request) domain.Profile {
	if profile, ok := r.Context().Value(profileKey).(domain.Profile); ok {
		return profile
	}
	return domain.Profile{Role: domain.RoleCustomer}
}

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "souqeats_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "souqeats_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
