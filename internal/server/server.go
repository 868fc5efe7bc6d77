// Package server exposes the companion over HTTP for the robot client:
// POST /start opens a session, POST /chat runs one conversation turn
// through the curriculum, the topic drills, and finally the persona.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/paixi-lab/paixi/internal/config"
	"github.com/paixi-lab/paixi/internal/curriculum"
	"github.com/paixi-lab/paixi/internal/emotion"
	"github.com/paixi-lab/paixi/internal/logging"
	"github.com/paixi-lab/paixi/internal/persona"
	"github.com/paixi-lab/paixi/internal/store"
	"github.com/paixi-lab/paixi/internal/topicqa"
)

// Server wires the conversation layers together behind the HTTP API.
type Server struct {
	cfg config.Config
	log *logging.Logger

	router    *curriculum.Router
	topics    *topicqa.Manager
	emotions  *emotion.Classifier
	agent     *persona.Agent
	profiles  store.ProfileRepo
	events    store.EventRepo
	sessions  *sessionRegistry
	now       func() time.Time
	closeOnce sync.Once
	closing   chan struct{}
}

// Deps are the collaborators the server needs. Profiles and Events may be
// nil, which disables durable persistence.
type Deps struct {
	Logger   *logging.Logger
	Emotions *emotion.Classifier
	Persona  *persona.Agent
	Profiles store.ProfileRepo
	Events   store.EventRepo
}

func New(cfg config.Config, deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		router:   curriculum.NewRouter(),
		topics:   topicqa.NewManager(),
		emotions: deps.Emotions,
		agent:    deps.Persona,
		profiles: deps.Profiles,
		events:   deps.Events,
		sessions: newSessionRegistry(),
		now:      time.Now,
		closing:  make(chan struct{}),
	}
}

// Handler builds the gin engine with CORS and request logging.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.POST("/health", s.handleHealth)
	r.POST("/start", s.handleStart)
	r.POST("/chat", s.handleChat)
	return r
}

// Run serves until ctx is cancelled or a goodbye shuts the companion
// down, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case <-s.closing:
		s.log.Info("goodbye received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestShutdown arms the goodbye shutdown. Idempotent.
func (s *Server) requestShutdown() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
