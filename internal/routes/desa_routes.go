package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
)

func SetupDesaRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewDesaHandler(d.Repos.Desa)

	app.Get("/api/desa", hdl.Get)

	admin := writeGroup(app, "/api/admin/desa", d)
	admin.Put("/", hdl.Update)
}
