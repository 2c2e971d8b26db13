// Package gateway receives call lifecycle webhooks from the calling
// platform and folds them into the call record store.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	recordsx "github.com/angelonuoha/openclaw/skill/records"
)

const (
	eventStatusUpdate    = "status-update"
	eventEndOfCallReport = "end-of-call-report"

	maxBodyBytes = 1 << 20
)

type Config struct {
	Addr            string        `envconfig:"ADDR" split_words:"true" default:":8080"`
	WebhookSecret   string        `envconfig:"WEBHOOK_SECRET" split_words:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"10s"`
}

// Server answers the platform's call webhooks. Events update the matching
// call record; the platform only needs a 2xx back, so store problems are
// logged and never surfaced.
type Server struct {
	router  *mux.Router
	records recordsx.Store

	addr            string
	secret          string
	shutdownTimeout time.Duration
}

func New(records recordsx.Store, cfg Config) (*Server, error) {
	if records == nil {
		records = recordsx.NoopStore{}
	}

	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = ":8080"
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	s := &Server{
		router:          mux.NewRouter(),
		records:         records,
		addr:            addr,
		secret:          strings.TrimSpace(cfg.WebhookSecret),
		shutdownTimeout: shutdownTimeout,
	}

	s.router.Use(s.loggingMiddleware)
	s.router.HandleFunc("/webhooks/call", s.handleCallEvent).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("gateway listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("took", time.Since(start)).
			Msg("gateway request")
	})
}

// callEvent is the platform's webhook envelope, trimmed to the fields the
// record store cares about.
type callEvent struct {
	Message struct {
		Type        string `json:"type"`
		Status      string `json:"status"`
		EndedReason string `json:"endedReason"`
		Summary     string `json:"summary"`
		Analysis    struct {
			Summary string `json:"summary"`
		} `json:"analysis"`
		Call struct {
			ID string `json:"id"`
		} `json:"call"`
	} `json:"message"`
}

func (s *Server) handleCallEvent(w http.ResponseWriter, r *http.Request) {
	if s.secret != "" && r.Header.Get("X-Vapi-Secret") != s.secret {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	var event callEvent
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "malformed event", http.StatusBadRequest)
		return
	}

	callID := strings.TrimSpace(event.Message.Call.ID)
	if callID == "" {
		http.Error(w, "missing call id", http.StatusBadRequest)
		return
	}

	switch event.Message.Type {
	case eventStatusUpdate:
		s.applyUpdate(r.Context(), callID, event.Message.Status, event.Message.EndedReason, "")
	case eventEndOfCallReport:
		summary := event.Message.Summary
		if summary == "" {
			summary = event.Message.Analysis.Summary
		}
		s.applyUpdate(r.Context(), callID, "ended", event.Message.EndedReason, summary)
	default:
		log.Debug().Str("type", event.Message.Type).Str("call_id", callID).Msg("ignoring webhook event")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
}

func (s *Server) applyUpdate(ctx context.Context, callID, status, endedReason, summary string) {
	if status == "" {
		return
	}
	err := s.records.UpdateStatus(ctx, callID, status, endedReason, summary)
	if err != nil && !errors.Is(err, recordsx.ErrRecordNotFound) {
		log.Warn().Err(err).Str("call_id", callID).Msg("update call record failed")
		return
	}
	if errors.Is(err, recordsx.ErrRecordNotFound) {
		log.Debug().Str("call_id", callID).Msg("webhook for unknown call")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
