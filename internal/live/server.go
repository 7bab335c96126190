package live

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/didact/internal/config"
	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/fiber"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/render"
	"github.com/vango-dev/didact/pkg/sched"
	"github.com/vango-dev/didact/pkg/vdom"
)

// ErrNoNode is returned when an event path does not address a node.
var ErrNoNode = stderrors.New("live: no node at path")

// Options configures a Server.
type Options struct {
	// Element is the tree to preview.
	Element *vdom.Element

	// Config supplies slice timing, metric namespace and listen address.
	// Default: config.Default()
	Config *config.Config

	// Logger receives server and engine logs.
	// Default: slog.Default()
	Logger *slog.Logger

	// Registry receives engine and server metrics and backs /metrics.
	// Default: a new registry
	Registry *prometheus.Registry

	// Setup is called on the loop goroutine before the first render.
	Setup func(*fiber.Engine)
}

// Server is the live preview server.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *liveMetrics
	tracer   trace.Tracer

	mem    *host.Memory
	root   *host.MemNode
	loop   *sched.Loop
	engine *fiber.Engine
	hub    *Hub
	html   *render.Renderer
	router chi.Router

	element *vdom.Element
	setup   func(*fiber.Engine)
	pass    uint64
}

// New creates a server. Nothing runs until Start or Run.
func New(opts Options) (*Server, error) {
	if opts.Element == nil {
		return nil, errors.New("E010").WithDetail("live: no element to preview")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		config:   cfg,
		logger:   logger.With("component", "live"),
		registry: registry,
		metrics:  newLiveMetrics(registry, cfg.Metrics.Namespace),
		tracer:   otel.Tracer("didact/live"),
		mem:      host.NewMemory(),
		element:  opts.Element,
		setup:    opts.Setup,
		// Event paths index host children, so the markup carries no
		// formatting whitespace.
		html: render.NewRenderer(render.RendererConfig{EventMarkers: true}),
	}
	s.root = s.mem.NewContainer("root")
	s.loop = sched.NewLoop(
		sched.WithInterval(cfg.SliceDuration()),
		sched.WithLoopLogger(s.logger),
	)
	s.engine = fiber.New(s.mem,
		fiber.WithScheduler(s.loop),
		fiber.WithLogger(logger),
		fiber.WithYieldThreshold(cfg.YieldThresholdDuration()),
		fiber.WithMetrics(fiber.NewMetrics(
			fiber.WithRegistry(registry),
			fiber.WithNamespace(cfg.Metrics.Namespace),
		)),
		fiber.WithOnCommit(s.onCommit),
		fiber.WithErrorHandler(s.onError),
	)
	s.hub = NewHub(s.onEvent, s.logger)
	s.hub.metrics = s.metrics
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/snapshot", s.handleSnapshot)
	r.Post("/events", s.handleEvent)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start runs the loop goroutine and renders the element. The loop stops
// when ctx is done or Close is called.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.loop.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			s.logger.Error("loop stopped", "error", err)
		}
	}()
	var renderErr error
	if err := s.loop.Call(ctx, func() {
		if s.setup != nil {
			s.setup(s.engine)
		}
		renderErr = s.engine.Render(s.element, s.root)
	}); err != nil {
		return err
	}
	return renderErr
}

// Run starts the server on the configured address and blocks until ctx is
// done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Close()

	srv := &http.Server{
		Addr:              s.config.Live.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("live preview listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close stops the loop and disconnects clients.
func (s *Server) Close() {
	_ = s.loop.Close()
	s.hub.Close()
}

// onCommit runs on the loop goroutine.
func (s *Server) onCommit(stats fiber.CommitStats) {
	s.pass = stats.Pass
	markup, err := s.html.RenderToString(s.root)
	if err != nil {
		s.logger.Error("render snapshot failed", "pass", stats.Pass, "error", err)
		return
	}
	s.hub.Broadcast(Message{Type: MessageSnapshot, Pass: stats.Pass, HTML: markup})
}

func (s *Server) onError(err error) {
	s.hub.Broadcast(Message{Type: MessageError, Code: errors.CodeOf(err), Error: err.Error()})
}

func (s *Server) onEvent(msg Message) {
	if err := s.loop.Submit(func() { _, _ = s.dispatch(context.Background(), msg) }); err != nil {
		s.logger.Debug("event dropped", "event", msg.Event, "error", err)
	}
}

// dispatch runs msg against the host tree. It must run on the loop goroutine.
func (s *Server) dispatch(ctx context.Context, msg Message) (int, error) {
	start := time.Now()
	_, span := s.tracer.Start(ctx, "didact.live."+msg.Event,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("didact.event_type", msg.Event),
			attribute.IntSlice("didact.event_path", msg.Path),
		),
	)
	defer span.End()

	n := nodeAt(s.root, msg.Path)
	var (
		called int
		err    error
	)
	if n == nil {
		err = fmt.Errorf("%w %v", ErrNoNode, msg.Path)
	} else {
		called, err = s.mem.Dispatch(n, msg.Event, msg.Payload)
	}

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("didact.listeners", called))
	}
	s.metrics.event(msg.Event, status, time.Since(start).Seconds())
	return called, err
}

// nodeAt follows child indices from root.
func nodeAt(root *host.MemNode, path []int) *host.MemNode {
	n := root
	for _, i := range path {
		if i < 0 || i >= len(n.Children) {
			return nil
		}
		n = n.Children[i]
	}
	return n
}

type snapshotResponse struct {
	Pass uint64        `json:"pass"`
	Idle bool          `json:"idle"`
	HTML string        `json:"html"`
	Tree host.Snapshot `json:"tree"`
}

func (s *Server) snapshot(ctx context.Context) (snapshotResponse, error) {
	var (
		resp snapshotResponse
		err  error
	)
	callErr := s.loop.Call(ctx, func() {
		resp.Pass = s.pass
		resp.Idle = s.engine.Idle()
		resp.Tree = s.root.Snapshot()
		resp.HTML, err = s.html.RenderToString(s.root)
	})
	if callErr != nil {
		return resp, callErr
	}
	return resp, err
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	resp, err := s.snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("invalid event body", "error", err)
		return
	}
	if msg.Event == "" {
		http.Error(w, "missing event", http.StatusBadRequest)
		return
	}

	var (
		called int
		err    error
	)
	if callErr := s.loop.Call(r.Context(), func() {
		called, err = s.dispatch(r.Context(), msg)
	}); callErr != nil {
		http.Error(w, callErr.Error(), http.StatusServiceUnavailable)
		return
	}
	switch {
	case stderrors.Is(err, ErrNoNode):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, map[string]int{"handled": called})
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	resp, err := s.snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, resp.HTML, clientScript)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
