package controlplane

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server provides the HTTP API for the missionctl daemon.
type Server struct {
	service *Service
	store   *store.Store
	addr    string
	echo    *echo.Echo
	logger  *log.Logger
	metrics *Metrics
}

// NewServer creates a new HTTP server. Metrics are registered on a private
// registry served at /metrics.
func NewServer(service *Service, st *store.Store, addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	reg := prometheus.NewRegistry()

	s := &Server{
		service: service,
		store:   st,
		addr:    addr,
		echo:    echo.New(),
		logger:  logger,
		metrics: MustNewMetrics(reg),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Server.ReadTimeout = 10 * time.Second
	s.echo.Server.WriteTimeout = 30 * time.Second

	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLogger())
	s.routes(reg)
	return s
}

func (s *Server) routes(reg *prometheus.Registry) {
	e := s.echo

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := e.Group("/api")

	// Agent endpoints
	api.GET("/agents", s.listAgents)
	api.GET("/agents/:id", s.getAgent)
	api.PUT("/agents/:id", s.updateAgent)
	api.GET("/directory", s.getDirectory)

	// Board endpoints
	api.GET("/board", s.getBoard)
	api.POST("/board/move", s.moveTask)

	// Feed endpoints
	api.GET("/feed", s.getFeed)
	api.POST("/feed/tab", s.selectTab)
	api.GET("/feed/summary", s.getActivitySummary)

	api.GET("/search", s.search)
	api.GET("/standup", s.getStandup)
	api.GET("/audit", s.getAudit)

	// Status checks
	api.GET("/status", s.listStatusChecks)
	api.POST("/status", s.createStatusCheck)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.addr).Info("starting missionctl daemon")
	return s.echo.Start(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			req := c.Request()
			status := c.Response().Status
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			s.metrics.ObserveRequest(req.Method, route, status, elapsed)

			entry := s.logger.WithFields(log.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     status,
				"latency_ms": float64(elapsed) / float64(time.Millisecond),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("http.request")
			} else {
				entry.Debug("http.request")
			}
			return nil
		}
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", c.Request().URL.Path).Error("request failed")
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

// --- Health ---

func (s *Server) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		OK:      true,
		DB:      "ok",
		Version: Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		resp.OK = false
		resp.DB = err.Error()
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}

// --- Agent Handlers ---

func (s *Server) listAgents(c echo.Context) error {
	agents, err := s.service.ListAgents()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, agents)
}

func (s *Server) getAgent(c echo.Context) error {
	agent, err := s.service.GetAgent(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, agent)
}

func (s *Server) updateAgent(c echo.Context) error {
	var req models.AgentUpdate
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	agent, err := s.service.UpdateAgent(c.Param("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, agent)
}

func (s *Server) getDirectory(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Directory())
}

// --- Board Handlers ---

func (s *Server) getBoard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Board())
}

// moveTask never rejects a request: a malformed body is a move of nothing.
func (s *Server) moveTask(c echo.Context) error {
	var req MoveRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		s.logger.WithError(err).Debug("ignoring malformed move payload")
		req = MoveRequest{}
	}

	resp := s.service.MoveTask(req.TaskID, req.Column)
	s.metrics.IncMove(resp.Moved)
	return c.JSON(http.StatusOK, resp)
}

// --- Feed Handlers ---

func (s *Server) getFeed(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Feed(c.QueryParam("tab")))
}

func (s *Server) selectTab(c echo.Context) error {
	var req TabRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}
	_, view := s.service.SelectTab(req.Tab)
	return c.JSON(http.StatusOK, view)
}

func (s *Server) getActivitySummary(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.ActivitySummary())
}

// --- Search, standup, audit ---

func (s *Server) search(c echo.Context) error {
	resp := s.service.Search(c.QueryParam("q"))
	s.metrics.IncSearch(resp)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getStandup(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Standup())
}

func (s *Server) getAudit(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return s.fail(c, fmt.Errorf("%w: limit must be a positive integer", ErrInvalidRequest))
		}
		limit = n
	}
	entries, err := s.service.Audit(limit)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// --- Status Check Handlers ---

func (s *Server) listStatusChecks(c echo.Context) error {
	checks, err := s.service.ListStatusChecks()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, checks)
}

func (s *Server) createStatusCheck(c echo.Context) error {
	var req StatusRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return s.fail(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	check, err := s.service.CreateStatusCheck(req.ClientName)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, check)
}
