// Package statushttp serves a live progress page for a running search task.
package statushttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oldnick85/func-wander/search"
)

// Task is the slice of the search task the server needs. It is satisfied by
// *search.Task of any value type.
type Task interface {
	Status() *search.Status
	Stop() error
	Done() bool
}

// Options configures a Server.
type Options struct {
	// Logger receives request lifecycle events.
	Logger *slog.Logger
	// RefreshSeconds is the auto-refresh interval of the HTML page.
	RefreshSeconds int
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithRefreshSeconds sets the page auto-refresh interval.
func WithRefreshSeconds(s int) func(*Options) {
	return func(o *Options) { o.RefreshSeconds = s }
}

// Server exposes a search task over HTTP:
//
//	GET  /       progress page with the best-list and a stop button
//	GET  /status the same data as JSON
//	POST /stop   stops the task
type Server struct {
	task   Task
	logger *slog.Logger
	opts   Options
	srv    *http.Server
}

// New creates a Server for the task, listening on addr once started.
func New(task Task, addr string, optFns ...func(*Options)) *Server {
	opts := Options{RefreshSeconds: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		task:   task,
		logger: logger,
		opts:   opts,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", s.handlePage)
	router.GET("/status", s.handleStatus)
	router.POST("/stop", s.handleStop)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving on the configured address. It returns once the
// listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("status server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the route handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.task.Status())
}

func (s *Server) handleStop(c *gin.Context) {
	s.logger.Info("stop requested over http", "remote", c.ClientIP())
	if err := s.task.Stop(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}

type pageData struct {
	Status         *search.Status
	Elapsed        string
	Remaining      string
	RefreshSeconds int
}

func (s *Server) handlePage(c *gin.Context) {
	st := s.task.Status()
	c.HTML(http.StatusOK, "status", pageData{
		Status:         st,
		Elapsed:        formatHMS(st.Elapsed),
		Remaining:      formatHMS(st.Remaining),
		RefreshSeconds: s.opts.RefreshSeconds,
	})
}

func formatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
