// File: internal/infra/web/server.go
package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-ai-chatbot/internal/domain/ports/repository"
)

// Server exposes the operational surface: health, Prometheus metrics and a
// small authenticated stats API.
type Server struct {
	cache   repository.ContextCache
	consent repository.ConsentStore
	mode    string
	apiKey  string
	auth    *AuthManager
	started time.Time
	log     *zerolog.Logger
}

func NewServer(cache repository.ContextCache, consent repository.ConsentStore, mode, apiKey string, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "AdminServer").Logger()
	return &Server{
		cache:   cache,
		consent: consent,
		mode:    mode,
		apiKey:  apiKey,
		auth:    NewAuthManager(apiKey, false, 30*time.Minute),
		started: time.Now(),
		log:     &l,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/stats", s.handleStats)
		})
	})
	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.APIKey != s.apiKey || s.apiKey == "" {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if _, err := s.auth.Mint(w); err != nil {
		s.log.Error().Err(err).Msg("mint admin session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"cache_entries":   s.cache.Len(),
		"consent_records": s.consent.Count(),
		"privacy_mode":    s.mode,
		"uptime_seconds":  int(time.Since(s.started).Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// authMiddleware accepts either a minted session cookie or the raw API key as
// a bearer token.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if _, err := s.auth.Verify(r); err == nil {
			next.ServeHTTP(w, r)
			return
		}
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] == s.apiKey {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}
