package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
	"sistem-desa/internal/middleware"
)

func SetupPetaRoutes(app *fiber.App, d *Deps) {
	peta := handler.NewPetaHandler(handler.PetaSources{
		Batas:     d.Repos.Batas,
		Bencana:   d.Repos.Bencana,
		Fasilitas: d.Repos.Fasilitas,
		POI:       d.Repos.TempatPenting,
		Rumah:     d.Repos.Rumah,
	}, d.Registry, d.Cache, d.Lokasi)
	geo := handler.NewGeoHandler(d.Lokasi)

	// Route statis harus didaftarkan sebelum /:layer
	api := app.Group("/api/peta")
	api.Get("/rumah", middleware.Auth(d.JWTSecret), peta.GetRumah)
	api.Get("/lokasi", peta.Lokasi)
	api.Get("/sekitar", peta.Sekitar)
	api.Get("/:layer", peta.GetLayer)

	app.Post("/api/geo/ukur", geo.Ukur)
	app.Post("/api/geo/cek", geo.Cek)
}
