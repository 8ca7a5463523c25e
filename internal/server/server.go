// Package server is the HTTP shell around the dialog engine: one chat
// endpoint, the intent catalog, health and Prometheus metrics.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/dialog"
	"banking-assistant/pkg/registry"
)

type Server struct {
	engine   *dialog.Engine
	intents  *registry.IntentRegistry
	logger   logger.Logger
	router   *gin.Engine
	validate *chatValidator
}

// Options carries the optional pieces of the HTTP shell. Intents may be nil
// when no registry file is configured; StaticDir is served at the root when
// set, for the bundled demo page.
type Options struct {
	Intents   *registry.IntentRegistry
	StaticDir string
}

func New(engine *dialog.Engine, opts Options, log logger.Logger) (*Server, error) {
	validator, err := newChatValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:   engine,
		intents:  opts.Intents,
		logger:   log.With(map[string]interface{}{"component": "http-server"}),
		validate: validator,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID(), s.cors(), s.accessLog())

	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/chat", s.handleChat)
	api.GET("/intents", s.handleIntents)

	if opts.StaticDir != "" {
		router.Static("/static", opts.StaticDir)
		router.StaticFile("/", opts.StaticDir+"/index.html")
	}

	s.router = router
	return s, nil
}

// Handler exposes the router for net/http and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (s *Server) handleChat(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
		return
	}

	req, verrs, err := s.validate.parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object"})
		return
	}
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "request validation failed",
			Details: verrs,
		})
		return
	}

	reply, err := s.engine.HandleMessage(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		s.logger.WithError(err).Error("turn failed", map[string]interface{}{
			"userId":    req.UserID,
			"requestId": c.GetString(requestIDKey),
		})
		c.JSON(http.StatusInternalServerError, errorResponse{Error: cerrors.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleIntents(c *gin.Context) {
	if s.intents == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "intent registry not configured"})
		return
	}
	c.JSON(http.StatusOK, s.intents)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
