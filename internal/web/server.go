// Package web serves the analyzer as an HTML page and a JSON endpoint.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/config"
	"github.com/yildizm/spamscope/internal/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

// ServiceName is reported by the health endpoint
const ServiceName = "spamscope"

// Server is the web front end
type Server struct {
	cfg     config.WebConfig
	service analyzer.Service
	log     *logger.Logger
	router  *gin.Engine
}

// NewServer builds the router. Every request gets its own Analyzer so
// concurrent visitors never see each other's state.
func NewServer(cfg config.WebConfig, service analyzer.Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:     cfg,
		service: service,
		log:     log.WithComponent("web"),
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(s.log))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	router.GET("/health", s.handleHealth)
	router.GET("/", s.handleIndex)
	router.POST("/", s.handleSubmitForm)

	api := router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
	}

	return router
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is canceled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("listening on %s", listener.Addr())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down")

		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
