package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr      string
	uploadDir string
	sentry    bool
	validate  bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithUploadDir serves files of a local upload directory under /uploads/
func WithUploadDir(dir string) Option {
	return func(c *config) {
		c.uploadDir = dir
	}
}

// WithSentry reports panics and 5xx responses to Sentry. The Sentry SDK
// must be initialized by the caller.
func WithSentry(enabled bool) Option {
	return func(c *config) {
		c.sentry = enabled
	}
}

// WithSchemaValidation toggles OpenAPI request validation
func WithSchemaValidation(enabled bool) Option {
	return func(c *config) {
		c.validate = enabled
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	uc interfaces.UseCases,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:     "localhost:3001",
		validate: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	if cfg.sentry {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(middleware.Recoverer)

	var validator *requestValidator
	if cfg.validate {
		v, err := newRequestValidator()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load OpenAPI schema")
		}
		validator = v
	}

	h := &handler{uc: uc, sentry: cfg.sentry}

	router.Route("/api", func(r chi.Router) {
		if validator != nil {
			r.Use(validator.Middleware)
		}

		r.Get("/health", handleHealth)
		r.Get("/debug/spaces", h.handleDebugSpaces)
		r.Post("/upload", h.handleUpload)

		r.Route("/jira", func(r chi.Router) {
			r.Post("/test-connection", h.handleTestConnection)
			r.Post("/get-project", h.handleGetProject)
			r.Post("/parse-ticket", h.handleParseTicket)
			r.Post("/create-ticket", h.handleCreateTicket)
			r.Post("/create-tickets-bulk", h.handleCreateTicketsBulk)
			r.Post("/search-epics", h.handleSearchEpics)
			r.Post("/project-metadata", h.handleProjectMetadata)
		})

		r.Route("/confluence", func(r chi.Router) {
			r.Post("/checklist", h.handleChecklist)
			r.Post("/create-release-page", h.handleCreateReleasePage)
		})

		r.Post("/translate", h.handleTranslate)
		r.Post("/slack/notify", h.handleSlackNotify)
	})

	if cfg.uploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.uploadDir)))
		router.Get("/uploads/*", fs.ServeHTTP)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
