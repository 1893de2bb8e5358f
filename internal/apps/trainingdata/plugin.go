package trainingdata

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TrainingDataPlugin struct{}

func New() *TrainingDataPlugin {
	return &TrainingDataPlugin{}
}

func (p *TrainingDataPlugin) ID() string { return "trainingdata" }

func (p *TrainingDataPlugin) Models() []interface{} {
	return []interface{}{
		&TrainingEntry{},
	}
}

func (p *TrainingDataPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewEntryHandler(NewEntryService(db))

	router.Get("/training-data", handler.List)
	router.Post("/training-data", handler.Create)
	router.Put("/training-data/:id", handler.Update)
	router.Delete("/training-data/:id", handler.Delete)
}

func (p *TrainingDataPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewEntryHandler(NewEntryService(db))

	router.Get("/training-data", handler.AdminList)
}
