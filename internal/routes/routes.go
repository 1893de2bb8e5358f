package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/apps"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Bookings   *handlers.BookingHandler
	Categories *handlers.CategoryHandler
	Locations  *handlers.LocationHandler
	Users      *handlers.UserHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	m *metrics.Metrics,
	h Handlers,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/metrics", m.Handler())

	// Auth: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/google", h.Auth.GoogleSignIn)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout)

	// Registration and profile are reachable while the account is PENDING.
	jwt := middleware.JWTProtected(cfg)
	caller := middleware.LoadCaller(db)
	auth.Post("/register", jwt, caller, h.Auth.Register)
	api.Get("/me", jwt, caller, h.Auth.Me)
	api.Put("/me", jwt, caller, h.Auth.UpdateProfile)

	approved := middleware.RequireApproved(cfg)
	admin := api.Group("/admin", jwt, caller, approved, middleware.AdminRequired())

	bookings := admin.Group("/bookings")
	bookings.Get("/", h.Bookings.List)
	bookings.Get("/stats", h.Bookings.Stats)
	bookings.Post("/manual-payment", h.Bookings.ManualPayment)
	bookings.Get("/:id", h.Bookings.Get)
	bookings.Patch("/:id/status", h.Bookings.UpdateStatus)
	bookings.Patch("/:id/payment-status", h.Bookings.UpdatePaymentStatus)

	categories := admin.Group("/categories")
	categories.Get("/", h.Categories.List)
	categories.Get("/statuses", h.Categories.Statuses)
	categories.Post("/", h.Categories.Create)
	categories.Get("/:id", h.Categories.Get)
	categories.Put("/:id", h.Categories.Update)
	categories.Patch("/:id/status", h.Categories.UpdateStatus)
	categories.Delete("/:id", h.Categories.Delete)

	locations := admin.Group("/locations")
	locations.Get("/", h.Locations.List)
	locations.Get("/countries", h.Locations.Countries)
	locations.Get("/states", h.Locations.States)
	locations.Post("/", h.Locations.Create)
	locations.Get("/:id", h.Locations.Get)
	locations.Put("/:id", h.Locations.Update)
	locations.Patch("/:id/status", h.Locations.UpdateStatus)
	locations.Patch("/:id/approval-status", h.Locations.UpdateApprovalStatus)
	locations.Delete("/:id", h.Locations.Delete)

	users := admin.Group("/users")
	users.Get("/", h.Users.List)
	users.Get("/:id", h.Users.Get)
	users.Patch("/:id/status", h.Users.UpdateStatus)
	users.Patch("/:id/role", h.Users.UpdateRole)

	// Plugin routes: /api/p for approved callers, /api/admin/p for admins.
	protected := api.Group("/p", jwt, caller, approved)
	adminPlugins := admin.Group("/p")
	for _, p := range plugins {
		p.RegisterRoutes(protected, db, cfg)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(adminPlugins, db, cfg)
		}
	}
}
