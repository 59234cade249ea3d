// Package server exposes the validation engine over HTTP. The surface is
// deliberately thin: two validation endpoints, a health check, CORS and a
// per-client rate limit. Everything else is the engine's job.
package server

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	vividvalid "github.com/jaainil/vivid-valid"
	"github.com/jaainil/vivid-valid/config"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wires the engine into a fiber application.
type Server struct {
	app      *fiber.App
	engine   *vividvalid.Validator
	cfg      *config.Config
	log      *logrus.Logger
	validate *validator.Validate
}

// New builds the application with routes and middleware installed.
func New(engine *vividvalid.Validator, cfg *config.Config, log *logrus.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "vivid-valid",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
	})

	s := &Server{
		app:      app,
		engine:   engine,
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
	}

	corsCfg := DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.AllowedOrigins
	}
	app.Use(CORS(corsCfg))
	app.Use(RateLimit(cfg.RateLimitPerMinute))
	app.Use(s.requestLogger)

	app.Get("/health", s.handleHealth)
	api := app.Group("/api")
	api.Post("/validate", s.handleValidate)
	api.Post("/validate/bulk", s.handleValidateBulk)

	return s
}

// Listen starts serving on the configured port. Blocks until Shutdown.
func (s *Server) Listen() error {
	s.log.WithField("port", s.cfg.ServerPort).Info("server starting")
	return s.app.Listen(":" + s.cfg.ServerPort)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// App exposes the fiber application (for tests).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.WithFields(logrus.Fields{
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   c.Response().StatusCode(),
		"duration": time.Since(start).String(),
	}).Debug("request")
	return err
}
