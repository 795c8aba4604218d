// Package server exposes the graph pipeline over HTTP for the web
// application. Endpoints return the same JSON document the CLI writes, so
// the rendering layer does not care where the layout came from.
package server

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/courseflow/courseflow/pkg/catalog"
	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/export"
	"github.com/courseflow/courseflow/pkg/pipeline"
)

// Server wires the pipeline runner into an HTTP API.
type Server struct {
	runner   *pipeline.Runner
	source   pipeline.Source
	metadata catalog.MetadataSource
	logger   *log.Logger
}

// New creates a server. metadata may be nil, in which case graphs are
// served without catalog joins.
func New(runner *pipeline.Runner, source pipeline.Source, metadata catalog.MetadataSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, source: source, metadata: metadata, logger: logger}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/courses/{courseID}", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/summary", s.handleSummary)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGraph runs the pipeline and returns the full positioned document.
// Query parameters: student, direction, refresh.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	doc := export.FromResult(result.Layout, result.Summary)
	writeJSON(w, http.StatusOK, doc)
}

// handleSummary runs the pipeline and returns only the analytics summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Summary)
}

func (s *Server) optionsFromRequest(r *http.Request) (pipeline.Options, error) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidCourse, "invalid course id: %q", chi.URLParam(r, "courseID"))
	}

	q := r.URL.Query()
	return pipeline.Options{
		CourseID:  courseID,
		StudentID: q.Get("student"),
		Direction: q.Get("direction"),
		Refresh:   q.Get("refresh") == "true",
		Formats:   []string{}, // empty, not nil: handlers serialize the result themselves
		Source:    s.source,
		Metadata:  s.metadata,
		Logger:    s.logger,
	}, nil
}
