package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/adapter/http/middleware"
	"github.com/bnema/thumbd/internal/adapter/http/ratelimit"
	"github.com/bnema/thumbd/internal/service"
)

// ObjectsPrefix is where locally stored derivatives are served from.
const ObjectsPrefix = "/objects/"

// Options carries the optional parts of the server.
type Options struct {
	// Limiter throttles generation requests per owner when set.
	Limiter *ratelimit.Limiter
	// Objects serves signed derivative URLs under ObjectsPrefix when set.
	Objects http.Handler
	// SourceEvents accepts pushed upload notifications when set.
	SourceEvents SourceEventHandler
	// DB is probed by /healthz when set.
	DB Pinger
}

type Server struct {
	router   chi.Router
	handlers *Handlers
	feed     *StatusFeed
	opts     Options
}

func NewServer(svc DerivativeService, eventBus *service.EventBus, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		handlers: NewHandlers(svc, opts.DB, log),
		feed:     NewStatusFeed(eventBus, svc, log),
		opts:     opts,
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.RequestLogger(log))
	s.router.Use(chimw.Recoverer)
	s.router.Use(middleware.SecurityHeaders)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handlers.Health())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", s.handlers.Stats())

		r.Route("/derivatives/{sourceId}", func(r chi.Router) {
			r.Get("/", s.handlers.ListReady())
			r.Get("/status", s.handlers.Status())
			r.Get("/events", s.feed.Events())
			r.Get("/{size}", s.handlers.Derivative())

			r.Group(func(r chi.Router) {
				r.Use(RequireOwner)
				if s.opts.Limiter != nil {
					r.Use(s.opts.Limiter.Middleware(ownerRateKey))
				}
				r.Post("/requests", s.handlers.RequestGeneration())
			})
			r.With(RequireOwner).Delete("/", s.handlers.DeleteAll())
		})

		if s.opts.SourceEvents != nil {
			r.Post("/sources/uploaded", s.handlers.SourceEvent(s.opts.SourceEvents.HandleUploaded))
			r.Post("/sources/deleted", s.handlers.SourceEvent(s.opts.SourceEvents.HandleDeleted))
		}
	})

	if s.opts.Objects != nil {
		s.router.Handle(ObjectsPrefix+"*", s.opts.Objects)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
