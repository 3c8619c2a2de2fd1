// Package api exposes the daemon's HTTP surface: job submission, status,
// output retrieval, and the supported language list.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"revoice/internal/config"
	"revoice/internal/language"
	"revoice/internal/logging"
	"revoice/internal/queue"
)

// Server serves the job API over HTTP.
type Server struct {
	bind   string
	store  *queue.Store
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

// NewServer builds an API server bound per configuration.
func NewServer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		store:  store,
		logger: logging.NewComponentLogger(logger, "api"),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", s.handleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/api/jobs", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/api/jobs/{id}", s.handleJob).Methods(http.MethodGet)
	router.HandleFunc("/api/jobs/{id}/output", s.handleOutput).Methods(http.MethodGet)
	router.HandleFunc("/api/languages", s.handleLanguages).Methods(http.MethodGet)
	router.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	return router
}

// Start begins serving and shuts the server down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.bind == "" {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, draining in-flight requests briefly.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, ok := language.Normalize(req.TargetLanguage)
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported target language %q", req.TargetLanguage))
		return
	}
	source := ""
	if strings.TrimSpace(req.SourceLanguage) != "" {
		source, ok = language.Normalize(req.SourceLanguage)
		if !ok {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported source language %q", req.SourceLanguage))
			return
		}
	}

	inputPath := strings.TrimSpace(req.InputPath)
	if inputPath == "" {
		s.writeError(w, http.StatusBadRequest, "input_path is required")
		return
	}
	info, err := os.Stat(inputPath)
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("input file not found: %s", inputPath))
		return
	}

	job, err := s.store.NewJob(r.Context(), inputPath, source, target)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("job submitted",
		logging.String(logging.FieldJobID, job.ID),
		logging.String("target_language", job.TargetLanguage))
	s.writeJSON(w, http.StatusCreated, JobToResponse(job))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var statuses []queue.Status
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, ok := queue.ParseStatus(raw)
		if !ok {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", raw))
			return
		}
		statuses = append(statuses, status)
	}

	jobs, err := s.store.List(r.Context(), statuses...)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := JobListResponse{Jobs: make([]JobResponse, 0, len(jobs))}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, JobToResponse(job))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, JobToResponse(job))
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	if job.Status != queue.StatusCompleted || job.OutputPath == "" {
		s.writeError(w, http.StatusConflict, "job has no output yet")
		return
	}
	http.ServeFile(w, r, job.OutputPath)
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	supported := language.Supported()
	resp := make([]LanguageResponse, 0, len(supported))
	for _, lang := range supported {
		resp = append(resp, LanguageResponse{Code: lang.Code, Name: lang.Name})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, StatusResponse{
		Total:      stats.Total,
		Queued:     stats.Queued,
		Processing: stats.Processing,
		Completed:  stats.Completed,
		Failed:     stats.Failed,
	})
}

func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) (*queue.Job, bool) {
	id := mux.Vars(r)["id"]
	job, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if job == nil {
		s.writeError(w, http.StatusNotFound, "job not found")
		return nil, false
	}
	return job, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
