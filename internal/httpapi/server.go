// Package httpapi exposes viewers as HTTP resources. Each viewer is an
// independent state machine addressed by a server-assigned UUID; clients
// drive transitions with open/close requests and poll the derived frame.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	zverrors "github.com/askonen/zoomview/pkg/errors"
	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/imgsource"
	"github.com/askonen/zoomview/pkg/layout"
	"github.com/askonen/zoomview/pkg/observability"
	"github.com/askonen/zoomview/pkg/probe"
	"github.com/askonen/zoomview/pkg/viewer"
)

// Prober resolves natural image dimensions for opened sources.
type Prober interface {
	NaturalSize(ctx context.Context, src string) (layout.Size, error)
}

// Server hosts the viewer resources.
type Server struct {
	logger *log.Logger
	prober Prober

	// newScheduler builds the scheduler for each new machine. Tests
	// inject manual schedulers here to drive transitions deterministically.
	newScheduler func() viewer.Scheduler

	mu      sync.RWMutex
	viewers map[string]*hostedViewer
}

type hostedViewer struct {
	machine    *viewer.Machine
	controller *viewer.Controller
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithProber sets the dimension prober used when open requests omit
// natural dimensions.
func WithProber(p Prober) Option {
	return func(s *Server) { s.prober = p }
}

// WithSchedulerFactory replaces the per-viewer scheduler constructor.
func WithSchedulerFactory(fn func() viewer.Scheduler) Option {
	return func(s *Server) { s.newScheduler = fn }
}

// NewServer creates a server with no viewers.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:       log.Default(),
		newScheduler: func() viewer.Scheduler { return viewer.TimerScheduler{} },
		viewers:      make(map[string]*hostedViewer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prober == nil {
		s.prober = probe.New(nil, nil, s.logger)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/viewers", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{viewerID}", func(r chi.Router) {
			r.Delete("/", s.handleDelete)
			r.Post("/open", s.handleOpen)
			r.Post("/close", s.handleClose)
			r.Put("/viewport", s.handleViewport)
			r.Get("/frame", s.handleFrame)
			r.Get("/state", s.handleState)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// ====== Request / response bodies ======

type sizeDoc struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type rectDoc struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type createRequest struct {
	Viewport   sizeDoc `json:"viewport"`
	DurationMS int     `json:"duration_ms,omitempty"`
	Backdrop   string  `json:"backdrop,omitempty"`
}

type createResponse struct {
	ID string `json:"id"`
}

type openRequest struct {
	SourceURL string   `json:"source_url"`
	Target    *rectDoc `json:"target,omitempty"`
	Natural   *sizeDoc `json:"natural,omitempty"`
}

type closeRequest struct {
	Target *rectDoc `json:"target,omitempty"`
}

type transitionResponse struct {
	Accepted bool `json:"accepted"`
}

type stateResponse struct {
	Visible  bool     `json:"visible"`
	Opening  bool     `json:"opening"`
	Closing  bool     `json:"closing"`
	Updating bool     `json:"updating"`
	Source   string   `json:"source,omitempty"`
	Target   *rectDoc `json:"target,omitempty"`
	Viewport sizeDoc  `json:"viewport"`
	Natural  sizeDoc  `json:"natural"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ====== Handlers ======

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, zverrors.Wrap(zverrors.ErrCodeInvalidConfig, err, "decode body"), http.StatusBadRequest)
		return
	}
	if req.Viewport.Width < 0 || req.Viewport.Height < 0 {
		writeError(w, zverrors.New(zverrors.ErrCodeInvalidViewport, "viewport dimensions must be non-negative"), http.StatusBadRequest)
		return
	}

	opts := []viewer.Option{viewer.WithScheduler(s.newScheduler())}
	if req.DurationMS > 0 {
		opts = append(opts, viewer.WithDuration(time.Duration(req.DurationMS)*time.Millisecond))
	}
	if req.Backdrop != "" {
		opts = append(opts, viewer.WithBackdropColor(req.Backdrop))
	}

	m := viewer.New(opts...)
	m.SetViewport(layout.Size{Width: req.Viewport.Width, Height: req.Viewport.Height})
	c := viewer.NewController()
	m.Attach(c)

	id := uuid.NewString()
	s.mu.Lock()
	s.viewers[id] = &hostedViewer{machine: m, controller: c}
	s.mu.Unlock()

	s.logger.Info("viewer created", "id", id, "viewport", req.Viewport)
	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewerID")

	s.mu.Lock()
	hv, ok := s.viewers[id]
	if ok {
		delete(s.viewers, id)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, zverrors.New(zverrors.ErrCodeViewerNotFound, "no viewer %s", id), http.StatusNotFound)
		return
	}
	hv.controller.Unbind()
	s.logger.Info("viewer deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewerID")
	hv, ok := s.lookup(id)
	if !ok {
		writeError(w, zverrors.New(zverrors.ErrCodeViewerNotFound, "no viewer %s", id), http.StatusNotFound)
		return
	}

	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, zverrors.Wrap(zverrors.ErrCodeInvalidSource, err, "decode body"), http.StatusBadRequest)
		return
	}
	if req.SourceURL == "" {
		writeError(w, zverrors.New(zverrors.ErrCodeInvalidSource, "source_url is required"), http.StatusBadRequest)
		return
	}

	var target geometry.Target
	if req.Target != nil {
		target = geometry.NewStatic(req.Target.X, req.Target.Y, req.Target.Width, req.Target.Height)
	}

	src := imgsource.FromURL(req.SourceURL)
	accepted := hv.machine.Open(src, target, nil)
	if !accepted {
		observability.Viewer().OnRejected(r.Context(), id, "open")
		writeJSON(w, http.StatusConflict, transitionResponse{Accepted: false})
		return
	}
	observability.Viewer().OnOpen(r.Context(), id, req.SourceURL)

	if req.Natural != nil {
		hv.machine.SetNaturalSize(layout.Size{Width: req.Natural.Width, Height: req.Natural.Height})
	} else {
		// Resolve dimensions off the request path; the frame upgrades
		// from the square-aspect fallback once the probe lands. The probe
		// outlives the request, so it gets its own context.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			size, err := s.prober.NaturalSize(ctx, req.SourceURL)
			if err != nil {
				s.logger.Warn("probe failed", "id", id, "src", req.SourceURL, "err", err)
				return
			}
			hv.machine.SetNaturalSize(size)
		}()
	}

	writeJSON(w, http.StatusAccepted, transitionResponse{Accepted: true})
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewerID")
	hv, ok := s.lookup(id)
	if !ok {
		writeError(w, zverrors.New(zverrors.ErrCodeViewerNotFound, "no viewer %s", id), http.StatusNotFound)
		return
	}

	var req closeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, zverrors.Wrap(zverrors.ErrCodeInvalidTarget, err, "decode body"), http.StatusBadRequest)
			return
		}
	}

	var target geometry.Target
	if req.Target != nil {
		target = geometry.NewStatic(req.Target.X, req.Target.Y, req.Target.Width, req.Target.Height)
	}

	if !hv.machine.Close(target) {
		observability.Viewer().OnRejected(r.Context(), id, "close")
		writeJSON(w, http.StatusConflict, transitionResponse{Accepted: false})
		return
	}
	observability.Viewer().OnClose(r.Context(), id)
	writeJSON(w, http.StatusAccepted, transitionResponse{Accepted: true})
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewerID")
	hv, ok := s.lookup(id)
	if !ok {
		writeError(w, zverrors.New(zverrors.ErrCodeViewerNotFound, "no viewer %s", id), http.StatusNotFound)
		return
	}

	var req sizeDoc
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, zverrors.Wrap(zverrors.ErrCodeInvalidViewport, err, "decode body"), http.StatusBadRequest)
		return
	}
	if req.Width < 0 || req.Height < 0 {
		writeError(w, zverrors.New(zverrors.ErrCodeInvalidViewport, "viewport dimensions must be non-negative"), http.StatusBadRequest)
		return
	}

	hv.machine.SetViewport(layout.Size{Width: req.Width, Height: req.Height})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewerID")
	hv, ok := s.lookup(id)
	if !ok {
		writeError(w, zverrors.New(zverrors.ErrCodeViewerNotFound, "no viewer %s", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, hv.machine.Frame())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewerID")
	hv, ok := s.lookup(id)
	if !ok {
		writeError(w, zverrors.New(zverrors.ErrCodeViewerNotFound, "no viewer %s", id), http.StatusNotFound)
		return
	}

	st := hv.machine.State()
	resp := stateResponse{
		Visible:  st.Visible,
		Opening:  st.Opening,
		Closing:  st.Closing,
		Updating: st.Updating,
		Viewport: sizeDoc{Width: st.Viewport.Width, Height: st.Viewport.Height},
	}
	if st.Source != nil {
		resp.Source = st.Source.URL()
	}
	if st.Target != nil {
		b := st.Target.Bounds()
		resp.Target = &rectDoc{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	}
	natural := hv.machine.NaturalSize()
	resp.Natural = sizeDoc{Width: natural.Width, Height: natural.Height}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookup(id string) (*hostedViewer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hv, ok := s.viewers[id]
	return hv, ok
}

// ====== Response helpers ======

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, status int) {
	writeJSON(w, status, errorResponse{
		Code:    string(zverrors.GetCode(err)),
		Message: zverrors.UserMessage(err),
	})
}
