package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/pressdigest/internal/config"
	"github.com/dgallion1/pressdigest/internal/pipeline"
	"github.com/dgallion1/pressdigest/internal/summarize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for pressdigest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	summarizer   *summarize.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, summarizer *summarize.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		summarizer:   summarizer,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/detect", s.handleDetect)

		r.Post("/api/digests", s.handleCreateDigest)
		r.Get("/api/digests/{jobID}", s.handleGetDigest)
		r.Get("/api/digests/{jobID}/report.docx", s.handleReportDOCX)
		r.Get("/api/digests/{jobID}/report.html", s.handleReportHTML)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
