package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
)

func SetupBencanaRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewBencanaHandler(d.Repos.Bencana, d.Lokasi)

	api := app.Group("/api/bencana")
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)

	admin := writeGroup(app, "/api/admin/bencana", d)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
