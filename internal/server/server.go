// Package server exposes schemas and form sessions over HTTP with echo.
// Browsers get server rendered HTML forms that post every change back;
// programs use the JSON session API or the stateless submit endpoint
// documented by the OpenAPI export.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/session"
)

// APIPrefix is the mount point of the JSON API.
const APIPrefix = "/api"

// Server wires a schema registry and a session store to echo routes.
type Server struct {
	echo       *echo.Echo
	reg        *registry.Registry
	store      *session.Store
	renderers  *render.Registry
	defaultKey string
	grace      time.Duration
	showSchema bool
	logger     *log.Logger
	info       openapi.Info
	extra      []render.Renderer
}

// Option configures the server.
type Option func(*Server)

// WithRenderer registers a renderer. A renderer named "html" or "tui"
// replaces the default one.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.extra = append(s.extra, renderer)
		}
	}
}

// WithDefaultSchema picks the form "/" redirects to.
func WithDefaultSchema(key string) Option {
	return func(s *Server) {
		s.defaultKey = key
	}
}

// WithStore shares a session store with other components.
func WithStore(store *session.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithGrace bounds how long Run waits for in-flight requests on shutdown.
func WithGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.grace = d
		}
	}
}

// WithLogger replaces the standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSchemaPreview embeds each schema definition below its HTML form.
func WithSchemaPreview(enabled bool) Option {
	return func(s *Server) {
		s.showSchema = enabled
	}
}

// WithOpenAPIInfo sets the metadata of the exported OpenAPI documents.
func WithOpenAPIInfo(info openapi.Info) Option {
	return func(s *Server) {
		s.info = info
	}
}

// New builds the server and its routes.
func New(reg *registry.Registry, options ...Option) (*Server, error) {
	if reg == nil {
		return nil, errors.New("server: registry is required")
	}
	s := &Server{
		echo:   echo.New(),
		reg:    reg,
		store:  session.NewStore(reg),
		grace:  5 * time.Second,
		logger: log.Default(),
		info:   openapi.Info{Title: "formflow", BasePath: APIPrefix},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	renderers, err := render.NewRegistry(s.extra...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if !renderers.Has(html.Name) {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: html renderer: %w", err)
		}
		if err := renderers.Register(renderer); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}
	if !renderers.Has(tui.Name) {
		renderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormatJSON))
		if err != nil {
			return nil, fmt.Errorf("server: tui renderer: %w", err)
		}
		if err := renderers.Register(renderer); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}
	s.renderers = renderers

	if s.defaultKey == "" {
		s.defaultKey = reg.First()
	}
	if s.defaultKey != "" && !reg.Has(s.defaultKey) {
		return nil, fmt.Errorf("server: default schema: %w: %q", registry.ErrSchemaNotFound, s.defaultKey)
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.JSONSerializer = jsonSerializer{}
	s.echo.HTTPErrorHandler = s.handleError
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/", s.index)
	e.GET("/forms/:key", s.showForm)
	e.POST("/forms/:key", s.postForm)

	e.GET("/schemas", s.listSchemas)
	e.GET("/schemas/:key", s.getSchema)
	e.GET("/schemas/:key/openapi.json", s.schemaOpenAPI)
	e.GET("/openapi.json", s.openAPI)

	api := e.Group(APIPrefix)
	api.POST("/forms/:key/submit", s.submitForm)
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.DELETE("/sessions/:id", s.deleteSession)
	api.POST("/sessions/:id/change", s.changeSession)
	api.POST("/sessions/:id/submit", s.submitSession)
	api.POST("/sessions/:id/reset", s.resetSession)
	api.POST("/sessions/:id/switch", s.switchSession)
	api.GET("/sessions/:id/view", s.viewSession)
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Store returns the session store backing the server.
func (s *Server) Store() *session.Store {
	return s.store
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s (default form %s)", addr, s.defaultKey)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	s.logger.Printf("shutting down (grace %s)", s.grace)
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) index(c echo.Context) error {
	if s.defaultKey == "" {
		return echo.NewHTTPError(http.StatusNotFound, "no schemas registered")
	}
	return c.Redirect(http.StatusFound, formURL(s.defaultKey))
}

func formURL(key string) string {
	return "/forms/" + key
}
