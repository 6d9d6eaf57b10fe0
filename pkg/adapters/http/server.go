package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/schema"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// DefaultMaxTraceSteps caps traced runs. Every snapshot carries a copy of
// the tape, so a trace costs memory quadratic in its length.
const DefaultMaxTraceSteps = 1_000

// Server exposes a machine library and its runs over HTTP.
type Server struct {
	Store    ports.MachineStore
	Logger   *slog.Logger
	MaxSteps int
	Alias    string

	// MaxTraceSteps caps runs that ask for a trace, on top of MaxSteps.
	MaxTraceSteps int

	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMaxSteps caps every run. Requests may ask for less, never for more.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.MaxSteps = n
	}
}

// WithMaxTraceSteps caps runs that return their trace. Zero or less keeps the default.
func WithMaxTraceSteps(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.MaxTraceSteps = n
		}
	}
}

// WithBlankAlias sets the word that spells the blank cell in submitted transitions.
func WithBlankAlias(alias string) Option {
	return func(s *Server) {
		s.Alias = alias
	}
}

// NewHandler creates a new HTTP handler for the machine library.
func NewHandler(store ports.MachineStore, opts ...Option) http.Handler {
	s := &Server{
		Store:    store,
		Logger:   logging.NewNop(),
		MaxSteps: 100_000,
		registry: prometheus.NewRegistry(),

		MaxTraceSteps: DefaultMaxTraceSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = observability.NewMetrics(s.registry)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/machines", s.ListMachines)
	r.Get("/machines/{name}", s.GetMachine)
	r.Put("/machines/{name}", s.PutMachine)
	r.Delete("/machines/{name}", s.DeleteMachine)
	r.Post("/machines/{name}/run", s.RunMachine)
	r.Post("/validate", s.Validate)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunRequest is the body of POST /machines/{name}/run.
type RunRequest struct {
	Tracks   []string `json:"tracks"`
	MaxSteps int      `json:"max_steps,omitempty"`
	Trace    bool     `json:"trace,omitempty"`
}

// RunResponse reports a run. Error is set when the run stopped early.
type RunResponse struct {
	RunID      string            `json:"run_id"`
	Machine    string            `json:"machine"`
	Accepted   bool              `json:"accepted"`
	FinalState string            `json:"final_state"`
	Steps      int               `json:"steps"`
	Head       int               `json:"head"`
	Output     []string          `json:"output"`
	Trace      []domain.Snapshot `json:"trace,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Tracks      int                    `json:"tracks"`
	Transitions []schema.RawTransition `json:"transitions"`
}

// EntryProblem describes one rejected entry.
type EntryProblem struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// ValidateResponse lists the accepted entries in order and the rejected ones.
type ValidateResponse struct {
	Valid  []schema.RawTransition `json:"valid"`
	Errors []EntryProblem         `json:"errors"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]any{
		"name":      "turing",
		"version":   strings.TrimSpace(turing.Version),
		"blank":     domain.Blank,
		"max_steps": s.MaxSteps,
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "List failed", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, map[string][]string{"machines": names})
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	m, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, m)
}

// PutMachine handles the PUT /machines/{name} request.
// The body is a definition document, JSON when the content type says so and YAML otherwise.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := domain.CheckName(name); err != nil {
		s.fail(w, http.StatusBadRequest, "PutMachine: invalid name", err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, http.StatusBadRequest, "PutMachine: invalid request body", err)
		return
	}

	format := definition.YAML
	if strings.Contains(r.Header.Get("Content-Type"), "json") {
		format = definition.JSON
	}
	m, err := definition.Decode(data, format, definition.WithBlankAlias(s.Alias))
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "PutMachine: invalid definition", err)
		return
	}
	m.Name = name

	if err := s.Store.Save(r.Context(), m); err != nil {
		s.fail(w, http.StatusInternalServerError, "PutMachine: save failed", err)
		return
	}
	s.Logger.Info("machine saved", "machine", name, "transitions", len(m.Table))
	writeJSON(w, s.Logger, http.StatusOK, m)
}

// DeleteMachine handles the DELETE /machines/{name} request.
func (s *Server) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Store.Delete(r.Context(), name); err != nil {
		s.fail(w, http.StatusInternalServerError, "DeleteMachine failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunMachine handles the POST /machines/{name}/run request.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	m, ok := s.load(w, r)
	if !ok {
		return
	}

	var body RunRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "RunMachine: invalid request body", err)
		return
	}

	runID := uuid.NewString()
	logger := s.Logger.With("run_id", runID)

	steps := s.limit(body.MaxSteps)
	if body.Trace {
		steps = traceLimit(steps, s.MaxTraceSteps)
	}

	eng, err := turing.New(m,
		turing.WithLogger(logger),
		turing.WithMaxSteps(steps),
		turing.WithLifecycleHooks(s.metrics.Hooks()),
	)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "RunMachine: invalid machine", err)
		return
	}

	var (
		res   *domain.Result
		trace []domain.Snapshot
	)
	if body.Trace {
		res, trace, err = eng.Trace(r.Context(), body.Tracks...)
	} else {
		res, err = eng.Execute(r.Context(), body.Tracks...)
	}

	status := http.StatusOK
	if err != nil {
		if res == nil {
			// Input never reached the tape.
			s.fail(w, http.StatusBadRequest, "RunMachine: invalid input", err)
			return
		}
		status = http.StatusUnprocessableEntity
		logger.Warn("run stopped early", "machine", m.Name, "steps", res.Steps, "error", err)
	}

	w.Header().Set("X-Run-Id", runID)
	resp := RunResponse{
		RunID:      runID,
		Machine:    m.Name,
		Accepted:   res.Accepted,
		FinalState: res.FinalState,
		Steps:      res.Steps,
		Head:       res.Head,
		Output:     res.Output(m.Tracks),
		Trace:      trace,
	}
	if err != nil {
		resp.Accepted = false
		resp.Error = err.Error()
	}
	writeJSON(w, s.Logger, status, resp)
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "Validate: invalid request body", err)
		return
	}
	if body.Tracks <= 0 {
		s.fail(w, http.StatusBadRequest, "Validate: invalid tracks", fmt.Errorf("%d: %w", body.Tracks, domain.ErrInvalidTracks))
		return
	}

	parser := compiler.NewParser(s.Alias)
	raws := make([]schema.RawTransition, len(body.Transitions))
	for i, raw := range body.Transitions {
		raws[i] = parser.Normalize(raw)
	}

	table, errs := schema.BuildTable(raws, body.Tracks)
	resp := ValidateResponse{
		Valid:  make([]schema.RawTransition, len(table)),
		Errors: make([]EntryProblem, 0, len(errs)),
	}
	for i, tr := range table {
		resp.Valid[i] = schema.Raw(tr)
	}
	for _, err := range errs {
		problem := EntryProblem{Index: -1, Error: err.Error()}
		var entry *schema.EntryError
		if errors.As(err, &entry) {
			problem.Index = entry.Index
		}
		resp.Errors = append(resp.Errors, problem)
	}
	writeJSON(w, s.Logger, http.StatusOK, resp)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.Machine, bool) {
	name := chi.URLParam(r, "name")
	m, err := s.Store.Load(r.Context(), name)
	if errors.Is(err, domain.ErrMachineNotFound) {
		s.fail(w, http.StatusNotFound, "machine not found", fmt.Errorf("%q: %w", name, err))
		return nil, false
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Load failed", err)
		return nil, false
	}
	return m, true
}

// limit combines the requested step budget with the server cap.
// traceLimit lowers a step limit (zero is unlimited) to the trace cap.
func traceLimit(steps, traceCap int) int {
	if traceCap > 0 && (steps <= 0 || steps > traceCap) {
		return traceCap
	}
	return steps
}

func (s *Server) limit(requested int) int {
	if s.MaxSteps <= 0 {
		return requested
	}
	if requested <= 0 || requested > s.MaxSteps {
		return s.MaxSteps
	}
	return requested
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error(msg, "error", err)
	} else {
		s.Logger.Warn(msg, "error", err)
	}

	body := map[string]any{"error": err.Error()}
	if errs := schema.ValidationErrors(err); errs != nil {
		details := make([]string, len(errs))
		for i, e := range errs {
			details[i] = e.Error()
		}
		body["details"] = details
	}
	writeJSON(w, s.Logger, status, body)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
