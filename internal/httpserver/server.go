// Package httpserver exposes the ingestion endpoint and the read API the
// dashboard consumes. Ingestion is unauthenticated by design; abuse is
// damped by the injected rate limiter.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/flaregun-dev/flaregun/internal/model"
	"github.com/flaregun-dev/flaregun/internal/query"
	"github.com/flaregun-dev/flaregun/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// Server provides the Flaregun HTTP API.
type Server struct {
	addr           string
	store          model.EventStore
	limiter        *ratelimit.Limiter
	queries        *query.Service
	allowedOrigins string
	server         *http.Server
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// NewServer creates the HTTP API server. allowedOrigins is either the
// wildcard "*" or a comma-separated list of exact origins.
func NewServer(addr string, store model.EventStore, limiter *ratelimit.Limiter, allowedOrigins string) *Server {
	if addr == "" {
		addr = "0.0.0.0:8787"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:           addr,
		store:          store,
		limiter:        limiter,
		queries:        query.NewService(store),
		allowedOrigins: allowedOrigins,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := s.router()

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.cors)

	r.POST("/api/errors", s.handleIngest)
	r.GET("/api/groups", s.handleListGroups)
	r.GET("/api/groups/:fingerprint", s.handleGetDetail)
	r.GET("/api/health", s.handleHealth)

	// Everything else is rejected; the CORS middleware has already run
	// so browser-side reporters can observe the status.
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})
	return r
}

// cors resolves cross-origin permission for every request and answers
// preflights outright, before the rate limiter or the store is touched.
// When the request origin is not allowed the permission header is simply
// omitted; the browser enforces the denial.
func (s *Server) cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Max-Age", "86400")

	if s.allowedOrigins == "*" {
		c.Header("Access-Control-Allow-Origin", "*")
	} else if origin := c.GetHeader("Origin"); origin != "" {
		for _, allowed := range strings.Split(s.allowedOrigins, ",") {
			if strings.TrimSpace(allowed) == origin {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}
	}

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func (s *Server) handleHealth(c *gin.Context) {
	eventCount, err := s.store.TotalEventCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(s.startTime).String(),
		"event_count": eventCount,
	})
}

func (s *Server) handleListGroups(c *gin.Context) {
	window := model.ParseWindow(c.Query("range"))

	groups, err := s.queries.ListGroups(window)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "query failed"})
		return
	}
	if groups == nil {
		groups = []model.ErrorGroup{}
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"range":  window,
	})
}

func (s *Server) handleGetDetail(c *gin.Context) {
	window := model.ParseWindow(c.Query("range"))
	fingerprint := c.Param("fingerprint")

	detail, err := s.queries.GetDetail(c.Request.Context(), fingerprint, window)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "query failed"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown fingerprint"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
