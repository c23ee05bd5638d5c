package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poiesic/newscout/core"
	"github.com/poiesic/newscout/search"
	"github.com/poiesic/newscout/storage"
)

// apiResponse is the envelope every endpoint returns. error_code is 0 on
// success and mirrors the HTTP status otherwise.
type apiResponse struct {
	Data         any    `json:"data"`
	Success      bool   `json:"success"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type searchRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type server struct {
	log      *slog.Logger
	searcher *search.Searcher
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/api/search", s.handleSearch)
	r.Get("/api/conversation/{session_id}", s.handleGetConversation)
	r.Delete("/api/conversation/{session_id}", s.handleClearConversation)

	return r
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "newscout conversational news search API",
		"version": "1.0.0",
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, apiResponse{
			Success:      false,
			ErrorCode:    http.StatusBadRequest,
			ErrorMessage: "invalid request body",
		})
		return
	}

	resp, err := s.searcher.Search(r.Context(), req.Query, req.SessionID)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			writeEnvelope(w, http.StatusBadRequest, apiResponse{
				Success:      false,
				ErrorCode:    http.StatusBadRequest,
				ErrorMessage: err.Error(),
			})
			return
		}
		s.log.Error("search request failed", "err", err)
		writeEnvelope(w, http.StatusInternalServerError, apiResponse{
			Success:      false,
			ErrorCode:    http.StatusInternalServerError,
			ErrorMessage: "server error: " + err.Error(),
		})
		return
	}

	writeEnvelope(w, http.StatusOK, apiResponse{Data: resp, Success: true})
}

func (s *server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	conv, err := s.searcher.Conversation(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrEmptySessionID) {
			writeEnvelope(w, http.StatusNotFound, apiResponse{
				Data:         map[string]any{"conversation": nil},
				Success:      false,
				ErrorCode:    http.StatusNotFound,
				ErrorMessage: "session not found",
			})
			return
		}
		s.log.Error("conversation lookup failed", "session_id", sessionID, "err", err)
		writeEnvelope(w, http.StatusInternalServerError, apiResponse{
			Success:      false,
			ErrorCode:    http.StatusInternalServerError,
			ErrorMessage: "server error: " + err.Error(),
		})
		return
	}

	writeEnvelope(w, http.StatusOK, apiResponse{
		Data:    map[string]any{"conversation": conv},
		Success: true,
	})
}

func (s *server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	if err := s.searcher.ClearConversation(r.Context(), sessionID); err != nil && !errors.Is(err, storage.ErrEmptySessionID) {
		s.log.Error("conversation clear failed", "session_id", sessionID, "err", err)
		writeEnvelope(w, http.StatusInternalServerError, apiResponse{
			Success:      false,
			ErrorCode:    http.StatusInternalServerError,
			ErrorMessage: "server error: " + err.Error(),
		})
		return
	}

	writeEnvelope(w, http.StatusOK, apiResponse{
		Data:    map[string]string{"message": "session cleared"},
		Success: true,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, envelope apiResponse) {
	writeJSON(w, status, envelope)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}

// runServer blocks until a shutdown signal arrives.
func runServer(log *slog.Logger, bindAddr string, searcher *search.Searcher) error {
	srv := &server{log: log, searcher: searcher}

	httpServer := &http.Server{
		Addr:              bindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", bindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
		return err
	}
	return nil
}
