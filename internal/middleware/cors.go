package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS admits the configured admin front-ends. Credentials are only allowed
// with an explicit origin list; the wildcard stays anonymous.
func CORS(cfg *config.Config) fiber.Handler {
	origins := strings.TrimSpace(cfg.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Location, X-Request-ID",
		AllowCredentials: origins != "*",
		MaxAge:           600,
	})
}
