package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
)

func SetupFasilitasRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewFasilitasHandler(d.Repos.Fasilitas, d.Lokasi)

	api := app.Group("/api/fasilitas")
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)

	admin := writeGroup(app, "/api/admin/fasilitas", d)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}

func SetupPOIRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewPOIHandler(d.Repos.TempatPenting, d.Lokasi)

	api := app.Group("/api/poi")
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)

	admin := writeGroup(app, "/api/admin/poi", d)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
