// Package server exposes the layout engines over HTTP.
//
// Every request works on its own graph store, so requests share no mutable
// state besides the metrics.
//
//	GET  /engines          registered engine names
//	POST /layout/{engine}  lay out the root view of a snapshot
//	GET  /healthz          liveness
//	GET  /metrics          Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ngerrors "github.com/matzehuels/nodegraph/pkg/errors"
	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
	"github.com/matzehuels/nodegraph/pkg/store"
)

// MaxBodyBytes bounds the size of a snapshot accepted by POST /layout.
const MaxBodyBytes = 8 << 20

// Options configures a Server.
type Options struct {
	Registry *layout.Registry // Engines to serve; defaults to layout.Default()
	Logger   *log.Logger      // Request logger; defaults to a discard logger
	Metrics  *Metrics         // Collectors; defaults to NewMetrics()
}

// Server handles the HTTP API.
type Server struct {
	registry *layout.Registry
	logger   *log.Logger
	metrics  *Metrics
	router   chi.Router
}

// New creates a server.
func New(opts Options) *Server {
	s := &Server{
		registry: opts.Registry,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if s.registry == nil {
		s.registry = layout.Default()
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/engines", s.handleEngines)
	r.Post("/layout/{engine}", s.handleLayout)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	s.router = r
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEngines(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"engines": s.registry.Names()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	engine := chi.URLParam(r, "engine")
	if _, err := s.registry.Lookup(engine); err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := graph.ReadSnapshot(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, ngerrors.Wrap(ngerrors.ErrCodeInvalidSnapshot, err, "read snapshot"))
		return
	}

	st := store.New(
		store.WithNodes(snap.Nodes...),
		store.WithEdges(snap.Edges...),
		store.WithRegistry(s.registry),
		store.WithLogger(s.logger),
		store.WithHooks(s.metrics),
		store.WithLayoutHooks(s.metrics),
	)
	if err := st.Layout(engine); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := graph.WriteSnapshot(st.Snapshot(), w); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

type errorBody struct {
	Error struct {
		Code    ngerrors.Code `json:"code"`
		Message string        `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := ngerrors.GetCode(err)
	if code == "" {
		code = ngerrors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch code.Kind() {
	case ngerrors.KindInvalid:
		status = http.StatusBadRequest
	case ngerrors.KindNotFound:
		status = http.StatusNotFound
	case ngerrors.KindFailed:
		status = http.StatusUnprocessableEntity
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = ngerrors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
