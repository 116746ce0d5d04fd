// Package server exposes the chatbot over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/esil-events/chatbot/pkg/chat"
	"github.com/esil-events/chatbot/pkg/mailer"
	"github.com/esil-events/chatbot/pkg/models"
	"github.com/esil-events/chatbot/pkg/quota"
)

// Responder answers chat messages. The chat pipeline implements it.
type Responder interface {
	Respond(ctx context.Context, message string, history []models.ChatMessage) (chat.Result, error)
}

// Sender delivers email. The mailer implements it.
type Sender interface {
	Send(ctx context.Context, email mailer.Email, override *mailer.SMTPSettings) error
	TestConnection(ctx context.Context, override *mailer.SMTPSettings) error
}

// Recorder persists answered requests. The history log implements it.
type Recorder interface {
	Record(ctx context.Context, rec models.ChatRecord) error
}

// Server is the chatbot HTTP server.
type Server struct {
	listen    string
	responder Responder
	sender    Sender
	recorder  Recorder
	guard     *quota.Guard
	mailFrom  string
	mailTo    string
	log       zerolog.Logger
	router    chi.Router
}

// Options carries the server's collaborators. Sender, Recorder and
// Guard are optional; their routes or checks are skipped when nil.
type Options struct {
	Listen    string
	Responder Responder
	Sender    Sender
	Recorder  Recorder
	Guard     *quota.Guard
	MailFrom  string
	MailTo    string
	Log       zerolog.Logger
}

// New creates a Server and mounts its routes.
func New(opts Options) *Server {
	s := &Server{
		listen:    opts.Listen,
		responder: opts.Responder,
		sender:    opts.Sender,
		recorder:  opts.Recorder,
		guard:     opts.Guard,
		mailFrom:  opts.MailFrom,
		mailTo:    opts.MailTo,
		log:       opts.Log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Post("/api/chat", s.handleChat)
	r.Post("/send-email", s.handleSendEmail)
	r.Post("/test-smtp-connection", s.handleTestSMTP)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server and shuts it down gracefully when
// ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listen,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("listen", s.listen).Msg("chatbot listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return
	}

	if s.guard != nil {
		if err := s.guard.Check(r.Context()); err != nil {
			if errors.Is(err, quota.ErrQuotaExceeded) {
				writeJSONError(w, http.StatusTooManyRequests, "daily quota reached, please try again later")
				return
			}
			// A broken quota counter must not take the chatbot down.
			s.log.Warn().Err(err).Msg("quota check failed, allowing request")
		}
	}

	res, err := s.responder.Respond(r.Context(), req.Message, req.History)
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
		s.log.Error().Err(err).Str("intent", string(res.Intent)).Msg("chat pipeline failed")
	}

	s.record(r.Context(), req.Message, res, status, time.Since(start))

	if err != nil {
		writeJSONError(w, status, "une erreur est survenue, veuillez réessayer")
		return
	}
	writeJSON(w, status, models.ChatResponse{Response: res.Response})
}

func (s *Server) record(ctx context.Context, question string, res chat.Result, status int, latency time.Duration) {
	if s.recorder == nil {
		return
	}
	rec := models.ChatRecord{
		Question:     question,
		Intent:       res.Intent,
		CacheHit:     res.CacheHit,
		ProductCount: res.ProductCount,
		ResponseLen:  len(res.Response),
		StatusCode:   status,
		LatencyMs:    latency.Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.log.Warn().Err(err).Msg("history record failed")
	}
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if s.sender == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "email is not configured")
		return
	}

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		writeJSONError(w, http.StatusBadRequest, "subject and body are required")
		return
	}

	to := req.To
	if to == "" {
		to = s.mailTo
	}
	if to == "" {
		writeJSONError(w, http.StatusBadRequest, "no recipient address")
		return
	}

	email := mailer.Email{
		From:    s.mailFrom,
		To:      []string{to},
		Subject: req.Subject,
		Body:    req.Body,
		HTML:    req.HTML,
	}
	if err := s.sender.Send(r.Context(), email, smtpSettings(req.SMTP)); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("email delivery failed")
		writeJSON(w, http.StatusInternalServerError, models.EmailResponse{
			Success: false,
			Message: "l'envoi de l'email a échoué",
		})
		return
	}

	s.log.Info().Str("to", to).Msg("email sent")
	writeJSON(w, http.StatusOK, models.EmailResponse{Success: true, Message: "email envoyé"})
}

func (s *Server) handleTestSMTP(w http.ResponseWriter, r *http.Request) {
	if s.sender == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "email is not configured")
		return
	}

	var req struct {
		SMTP *models.SMTPConfig `json:"smtp"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := s.sender.TestConnection(r.Context(), smtpSettings(req.SMTP)); err != nil {
		s.log.Warn().Err(err).Msg("smtp connection test failed")
		writeJSON(w, http.StatusInternalServerError, models.EmailResponse{
			Success: false,
			Message: fmt.Sprintf("connexion SMTP impossible: %v", err),
		})
		return
	}
	writeJSON(w, http.StatusOK, models.EmailResponse{Success: true, Message: "connexion SMTP réussie"})
}

func smtpSettings(cfg *models.SMTPConfig) *mailer.SMTPSettings {
	if cfg == nil {
		return nil
	}
	return &mailer.SMTPSettings{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Secure:   cfg.Secure,
		User:     cfg.User,
		Password: cfg.Password,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
