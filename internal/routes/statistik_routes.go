package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
)

func SetupStatistikRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewStatistikHandler(d.Repos.Statistik)
	app.Get("/api/statistik", hdl.Get)
}
