// Package server serves the timeline editor as an HTML form application.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gantt-tools/gantt-go/internal/chart"
	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/logger"
	"github.com/gantt-tools/gantt-go/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 5 * time.Second
)

// Server is the form server.
type Server struct {
	cfg      *config.Config
	store    *session.Store
	renderer chart.Renderer
	router   *gin.Engine
	log      logger.Logger

	// now positions the chart's today marker.
	now func() time.Time
}

// New builds a server from configuration.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	renderer, err := chart.New(cfg.Gantt.Chart.Backend)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg: cfg,
		store: session.NewStore(cfg.Gantt.Server.SessionTTL, session.Options{
			Import:    cfg.ImportOptions(),
			Map:       cfg.MapOptions(),
			Normalize: cfg.NormalizeOptions(),
		}),
		renderer: renderer,
		log:      logger.With("component", "server"),
		now:      time.Now,
	}
	if err := s.buildRouter(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) buildRouter() error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(s.log))
	router.Use(SessionMiddleware(s.store))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.index)
	router.GET("/export/csv", s.exportCSV)
	router.GET("/chart", s.chart)
	router.GET("/chart.png", s.chartPNG)

	actions := router.Group("/")
	actions.Use(BodySizeLimiter(s.cfg.Gantt.Server.MaxUploadBytes))
	actions.POST("/import/file", s.importFile)
	actions.POST("/import/text", s.importText)
	actions.POST("/map", s.mapColumns)
	actions.POST("/rows", s.addRow)
	actions.POST("/rows/remove", s.removeRow)
	actions.POST("/edit", s.edit)

	s.router = router
	return nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the session store.
func (s *Server) Store() *session.Store {
	return s.store
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Gantt.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.store.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "address", srv.Addr, "backend", s.renderer.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Debug("Received shutdown signal, initiating graceful shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("Server shutdown completed")
	return nil
}

func (s *Server) chartOptions() chart.Options {
	c := s.cfg.Gantt.Chart
	return chart.Options{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		Now:       s.now(),
		ShowToday: c.ShowToday,
	}
}
