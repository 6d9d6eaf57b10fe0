package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/schema"
)

// RunArgs are the arguments of the run_machine tool.
type RunArgs struct {
	Machine  string   `json:"machine"`
	Tracks   []string `json:"tracks"`
	MaxSteps int      `json:"max_steps,omitempty"`
	Trace    bool     `json:"trace,omitempty"`
}

// RunResult is the structured output of the run_machine tool.
type RunResult struct {
	Machine    string            `json:"machine" jsonschema_description:"Name of the machine that ran"`
	Accepted   bool              `json:"accepted" jsonschema_description:"True when the machine halted in a final state"`
	FinalState string            `json:"final_state" jsonschema_description:"State the machine halted in"`
	Steps      int               `json:"steps" jsonschema_description:"Number of transitions applied"`
	Output     []string          `json:"output" jsonschema_description:"Tape contents per track without outer blanks"`
	Trace      []domain.Snapshot `json:"trace,omitempty" jsonschema_description:"Every configuration, when requested"`
}

// ValidateArgs are the arguments of the validate_transitions tool.
type ValidateArgs struct {
	Tracks      int      `json:"tracks"`
	Transitions []string `json:"transitions"`
}

// ValidateResult is the structured output of the validate_transitions tool.
type ValidateResult struct {
	Valid  []string `json:"valid" jsonschema_description:"Accepted transitions in canonical form"`
	Errors []string `json:"errors" jsonschema_description:"One message per rejected transition"`
}

// Server wraps the machine library and exposes it as an MCP Server.
type Server struct {
	store     ports.MachineStore
	parser    *compiler.Parser
	maxSteps  int
	maxTrace  int
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithMaxSteps caps every run.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// WithMaxTraceSteps caps runs that return their trace. Zero or less keeps the default.
func WithMaxTraceSteps(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxTrace = n
		}
	}
}

// WithBlankAlias sets the word that spells the blank cell in free-text transitions.
func WithBlankAlias(alias string) Option {
	return func(s *Server) {
		s.parser = compiler.NewParser(alias)
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(store ports.MachineStore, opts ...Option) *Server {
	s := &Server{
		store:     store,
		parser:    compiler.NewParser(""),
		maxSteps:  100_000,
		maxTrace:  1_000,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the stored Turing machines."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(strings.Join(names, "\n")), nil
	})

	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a stored machine on one input string per track and report whether it accepts."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Name of the stored machine")),
		mcp.WithArray("tracks", mcp.Required(), mcp.Description("One input string per track, all of the same length"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithNumber("max_steps", mcp.Description("Step budget for the run (optional)")),
		mcp.WithBoolean("trace", mcp.Description("Include every configuration in the result (optional)")),
		mcp.WithOutputSchema[RunResult](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: validate_transitions
	validateTool := mcp.NewTool("validate_transitions",
		mcp.WithDescription("Check free-text transitions such as (q0,a)=(q1,b,R) for a machine with the given number of tracks."),
		mcp.WithNumber("tracks", mcp.Required(), mcp.Description("Number of tracks")),
		mcp.WithArray("transitions", mcp.Required(), mcp.Description("Transitions, one per item"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithOutputSchema[ValidateResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResult, error) {
	m, err := s.store.Load(ctx, args.Machine)
	if err != nil {
		return RunResult{}, fmt.Errorf("load %q: %w", args.Machine, err)
	}

	limit := s.maxSteps
	if args.MaxSteps > 0 && (limit <= 0 || args.MaxSteps < limit) {
		limit = args.MaxSteps
	}
	if args.Trace && (limit <= 0 || limit > s.maxTrace) {
		limit = s.maxTrace
	}

	eng, err := turing.New(m, turing.WithLogger(s.logger), turing.WithMaxSteps(limit))
	if err != nil {
		return RunResult{}, err
	}

	var (
		res   *domain.Result
		trace []domain.Snapshot
	)
	if args.Trace {
		res, trace, err = eng.Trace(ctx, args.Tracks...)
	} else {
		res, err = eng.Execute(ctx, args.Tracks...)
	}
	if err != nil {
		s.logger.Warn("MCP run failed", "machine", m.Name, "error", err)
		return RunResult{}, fmt.Errorf("run failed: %w", err)
	}

	return RunResult{
		Machine:    m.Name,
		Accepted:   res.Accepted,
		FinalState: res.FinalState,
		Steps:      res.Steps,
		Output:     res.Output(m.Tracks),
		Trace:      trace,
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResult, error) {
	if args.Tracks <= 0 {
		return ValidateResult{}, fmt.Errorf("%d: %w", args.Tracks, domain.ErrInvalidTracks)
	}

	out := ValidateResult{Valid: []string{}, Errors: []string{}}
	for i, line := range args.Transitions {
		raw, err := s.parser.Parse(line)
		if err == nil {
			var tr domain.Transition
			if tr, err = schema.ValidateEntry(raw, args.Tracks); err == nil {
				out.Valid = append(out.Valid, tr.String())
				continue
			}
		}
		out.Errors = append(out.Errors, (&schema.EntryError{Index: i, Entry: raw, Err: err}).Error())
	}
	return out, nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://machines
	s.mcpServer.AddResource(mcp.NewResource("turing://machines", "Stored Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}

		machines := make([]*domain.Machine, 0, len(names))
		for _, name := range names {
			m, err := s.store.Load(ctx, name)
			if errors.Is(err, domain.ErrMachineNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			machines = append(machines, m)
		}
		jsonBytes, _ := json.Marshal(machines)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turing://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
