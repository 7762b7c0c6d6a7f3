// Package gateway serves the generation proxy and the checklist API, and
// provides the HTTP client that talks to them.
package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/session"
)

// maxBodySize caps request bodies read by the handlers.
const maxBodySize = 1 << 20

// Options configures a Server.
type Options struct {
	// Generator calls the upstream model. Nil when no credential is
	// configured; generation requests then fail with a server error.
	Generator llm.Generator

	// ConfigErr explains why Generator is nil. Logged per request.
	ConfigErr error

	// Session backs the checklist API. A fresh one is created when nil.
	Session *session.Session

	Logger *log.Logger
}

// Server holds the handlers' dependencies.
type Server struct {
	generator llm.Generator
	configErr error
	session   *session.Session
	logger    *log.Logger
	now       func() time.Time
}

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		generator: opts.Generator,
		configErr: opts.ConfigErr,
		session:   opts.Session,
		logger:    opts.Logger,
		now:       time.Now,
	}
	if s.session == nil {
		s.session = session.New("")
	}
	if s.logger == nil {
		s.logger = log.StandardLogger()
	}
	if s.generator == nil && s.configErr == nil {
		s.configErr = llm.ErrMissingAPIKey
	}
	return s
}

// Register wires up all routes on the provided Echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.Any("/api/generate", s.generate)

	e.GET("/api/checklists/:domain", s.getChecklist)
	e.POST("/api/checklists/:domain", s.postChecklist)
	e.DELETE("/api/checklists/:domain", s.deleteChecklist)
	e.POST("/api/checklists/:domain/toggle", s.toggleItem)
	e.GET("/api/checklists/:domain/export", s.exportChecklist)

	e.GET("/healthz", healthz)
}

// NewEcho returns an Echo instance with the JSON codec, error handler and
// middleware every route shares.
func NewEcho(logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = SonicSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(RequestLogger(logger))
	return e
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// errorHandler renders echo errors with the same body shape as the handlers.
func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := http.StatusText(status)
		var herr *echo.HTTPError
		if errors.As(err, &herr) {
			status = herr.Code
			msg = fmt.Sprint(herr.Message)
		} else {
			logger.WithError(err).Error("unhandled handler error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: msg})
		}
		if err != nil {
			logger.WithError(err).Warn("failed to write error response")
		}
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			entry := logger.WithFields(log.Fields{
				"method":      c.Request().Method,
				"route":       c.Path(),
				"status":      status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("request failed")
			} else {
				entry.Debug("request handled")
			}
			return nil
		}
	}
}
