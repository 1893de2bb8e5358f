package apps

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is a self-contained feature mounted beside the admin core.
type Plugin interface {
	// ID returns the unique plugin identifier, also used in log lines.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts plugin routes on the given Fiber group.
	// The group is prefixed with /api/p and already resolves an approved caller.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminPlugin extends Plugin with admin-only route registration.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts routes on a group that also requires ADMIN.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
