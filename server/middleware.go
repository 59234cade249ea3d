package server

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// CORSConfig defines the config for the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         string
}

// DefaultCORSConfig returns a default CORS config.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:         "3600",
	}
}

// CORS creates a CORS middleware handler.
func CORS(cfg CORSConfig) fiber.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	allowAll := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}
	methods := strings.Join(cfg.AllowedMethods, ",")
	headers := strings.Join(cfg.AllowedHeaders, ",")

	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || allowAll {
				c.Set("Access-Control-Allow-Origin", origin)
				c.Set("Access-Control-Allow-Methods", methods)
				c.Set("Access-Control-Allow-Headers", headers)
				c.Set("Access-Control-Max-Age", cfg.MaxAge)
			}
		}
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

// RateLimit creates a per-client token bucket middleware allowing perMinute
// requests per client IP. Zero or negative disables the limit.
func RateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)
	limit := rate.Limit(float64(perMinute) / 60)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := buckets[ip]
		if !ok {
			l = rate.NewLimiter(limit, perMinute)
			buckets[ip] = l
		}
		return l
	}

	return func(c *fiber.Ctx) error {
		if !limiterFor(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
				"code":  "RATE_LIMITED",
			})
		}
		return c.Next()
	}
}
