package routes

import (
	"github.com/gofiber/fiber/v2"

	"doc_processing_backend/handlers"
)

func RegisterDocumentRoutes(app *fiber.App, handler *handlers.DocHandler) {
	documents := app.Group("/documents")
	documents.Post("/", handler.Upload)
	documents.Get("/", handler.List)
	documents.Get("/:id", handler.Get)
}

func RegisterHealthRoutes(app *fiber.App, handler *handlers.HealthHandler) {
	app.Get("/health", handler.Check)
}
