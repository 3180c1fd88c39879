package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/alliancewars/internal/config"
	"github.com/cory-johannsen/alliancewars/internal/game/lang"
	"github.com/cory-johannsen/alliancewars/internal/game/state"
)

// GameHandler is the engine surface the HTTP transport dispatches into.
type GameHandler interface {
	HandleCommand(ctx context.Context, playerID, text string) (string, error)
}

// PlayerStore is the subset of the player repository the transport needs for
// the status and restart endpoints.
type PlayerStore interface {
	Get(ctx context.Context, id string) (*state.PlayerState, error)
	Save(ctx context.Context, p *state.PlayerState) error
}

// Store is the storage-wide surface behind the admin restart endpoint.
type Store interface {
	Reset(ctx context.Context) error
}

// WebClientID is the seeded admin identity recreated by the restart endpoint
// so the web client can keep operating after a wipe.
const WebClientID = "web-client"

// HTTPServer exposes the game engine over HTTP: POST /command for chat
// dispatch, GET /healthz, GET /status/{id}, and the admin-guarded
// POST /restart. It implements Service for lifecycle management.
type HTTPServer struct {
	cfg     config.ServerConfig
	engine  GameHandler
	players PlayerStore
	store   Store
	logger  *zap.Logger
	srv     *http.Server
}

// NewHTTPServer creates the transport around the given engine and stores.
//
// Precondition: engine, players, store, and logger must be non-nil.
func NewHTTPServer(cfg config.ServerConfig, engine GameHandler, players PlayerStore, store Store, logger *zap.Logger) *HTTPServer {
	s := &HTTPServer{
		cfg:     cfg,
		engine:  engine,
		players: players,
		store:   store,
		logger:  logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /command", s.withRequestID(s.handleCommand))
	mux.HandleFunc("GET /status/{id}", s.withRequestID(s.handleStatus))
	mux.HandleFunc("POST /restart", s.withRequestID(s.handleRestart))

	s.srv = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the route table, for tests.
func (s *HTTPServer) Handler() http.Handler { return s.srv.Handler }

// Start runs the HTTP listener and blocks until Stop is called.
func (s *HTTPServer) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the configured shutdown timeout.
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("http shutdown incomplete", zap.Error(err))
	}
}

type requestLoggedFunc func(w http.ResponseWriter, r *http.Request, logger *zap.Logger)

// withRequestID tags each request with a uuid and logs its outcome.
func (s *HTTPServer) withRequestID(next requestLoggedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With(zap.String("request_id", uuid.NewString()))
		next(w, r, logger)
		logger.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type commandRequest struct {
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

type commandResponse struct {
	PlayerID string `json:"player_id,omitempty"`
	Message  string `json:"message"`
}

// handleCommand dispatches one chat line into the engine. Callers without an
// identity are issued a uuid, echoed back so the client can keep it.
func (s *HTTPServer) handleCommand(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commandResponse{Message: "invalid request body"})
		return
	}

	issued := ""
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
		issued = req.PlayerID
	}

	reply, err := s.engine.HandleCommand(r.Context(), req.PlayerID, req.Text)
	if err != nil {
		// Store failures and invariant violations never leak details to the
		// chat surface.
		logger.Error("command failed",
			zap.String("player", req.PlayerID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, commandResponse{
			Message: lang.Translate(lang.Default, "internal_error", nil),
		})
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{PlayerID: issued, Message: reply})
}

// handleStatus returns the raw player record. Unknown ids return the default
// starting state, matching the engine's implicit-creation rule.
func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	id := r.PathValue("id")
	p, err := s.players.Get(r.Context(), id)
	if err != nil {
		logger.Error("status lookup failed", zap.String("player", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, commandResponse{
			Message: lang.Translate(lang.Default, "internal_error", nil),
		})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type restartRequest struct {
	PlayerID string `json:"player_id"`
}

// handleRestart wipes the store and reseeds the web-client admin record.
// Only existing admins may call it.
func (s *HTTPServer) handleRestart(w http.ResponseWriter, r *http.Request, logger *zap.Logger) {
	var req restartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commandResponse{Message: "invalid request body"})
		return
	}

	caller, err := s.players.Get(r.Context(), req.PlayerID)
	if err != nil {
		logger.Error("restart caller lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, commandResponse{
			Message: lang.Translate(lang.Default, "internal_error", nil),
		})
		return
	}
	if !caller.IsAdmin {
		writeJSON(w, http.StatusForbidden, commandResponse{Message: "admin only"})
		return
	}

	if err := s.store.Reset(r.Context()); err != nil {
		logger.Error("store reset failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, commandResponse{
			Message: lang.Translate(lang.Default, "internal_error", nil),
		})
		return
	}

	seed := state.NewPlayerState(WebClientID)
	seed.Name = WebClientID
	seed.Registered = true
	seed.IsAdmin = true
	seed.Level = 10
	seed.Resources = 1000
	if err := s.players.Save(r.Context(), seed); err != nil {
		logger.Error("seeding web-client admin failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, commandResponse{
			Message: lang.Translate(lang.Default, "internal_error", nil),
		})
		return
	}

	logger.Info("store reset", zap.String("admin", req.PlayerID))
	writeJSON(w, http.StatusOK, commandResponse{Message: "game restarted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
