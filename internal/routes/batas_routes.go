package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
)

func SetupBatasRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewBatasHandler(d.Repos.Batas, d.Lokasi)

	api := app.Group("/api/batas")
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)

	admin := writeGroup(app, "/api/admin/batas", d)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
