// Package api exposes the Milk Diary surface over a local HTTP JSON
// API: lock screen, calendar, day entries, settings panel and bill
// preview. The license gate guards everything past the lock screen.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iniyantalkies/milkdiary/internal/app/ledger"
	"github.com/iniyantalkies/milkdiary/internal/app/license"
	"github.com/iniyantalkies/milkdiary/internal/app/settings"
	"github.com/iniyantalkies/milkdiary/internal/domain"
)

// Version is reported by /api/version.
const Version = "1.0.0"

// Server is the Milk Diary HTTP API server.
type Server struct {
	license        *license.Service
	ledger         *ledger.Service
	settings       *settings.Service
	log            zerolog.Logger
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(lic *license.Service, led *ledger.Service, st *settings.Service, log zerolog.Logger) *Server {
	return &Server{license: lic, ledger: led, settings: st, log: log}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	// Lock screen — reachable while locked.
	r.Route("/api/license", func(r chi.Router) {
		r.Get("/", s.handleLicenseStatus)
		r.Post("/unlock", s.handleUnlock)
		r.Get("/request-link", s.handleRequestLink)
	})

	// Everything past the lock screen requires a valid license.
	r.Group(func(r chi.Router) {
		r.Use(s.requireUnlocked)
		r.Get("/api/calendar", s.handleCalendar)
		r.Get("/api/ledger/{date}", s.handleGetEntry)
		r.Put("/api/ledger/{date}", s.handlePutEntry)
		r.Get("/api/settings", s.handleGetSettings)
		r.Put("/api/settings", s.handlePutSettings)
		r.Post("/api/bill/month", s.handleBillMonth)
		r.Post("/api/bill/range", s.handleBillRange)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// requireUnlocked rejects requests while no valid license exists for
// this device. Expiry is evaluated per request against the registry —
// the same check the lock screen does at load.
func (s *Server) requireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, unlocked, err := s.license.Status()
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		if !unlocked {
			writeError(w, domain.ErrLocked)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─── Response Helpers ───────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorMessages are the fixed user-visible texts for each domain error.
// These mirror the alerts the app has always shown.
var errorMessages = map[error]string{
	domain.ErrInvalidKey:         "⚠️ Invalid Password or License Key. Please contact admin.",
	domain.ErrKeyAlreadyBound:    "❌ This password has already been used on another device. It cannot be shared.",
	domain.ErrNoDateSelected:     "Please select a date first",
	domain.ErrMissingRangeBounds: "Select range",
	domain.ErrInvalidRange:       "Range end date is before the start date",
	domain.ErrLocked:             "Milk Diary is locked. Enter a license key first.",
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrKeyAlreadyBound):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLocked):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// writeError maps a domain error to its status and fixed message.
func writeError(w http.ResponseWriter, err error) {
	msg := err.Error()
	for sentinel, text := range errorMessages {
		if errors.Is(err, sentinel) {
			msg = text
			break
		}
	}
	writeJSON(w, statusFor(err), map[string]string{"error": msg})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// isDomainErr reports whether err is one of the user-input errors that
// carry a fixed message, as opposed to a storage failure.
func isDomainErr(err error) bool {
	for sentinel := range errorMessages {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
