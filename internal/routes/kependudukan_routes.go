package routes

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/handler"
	"sistem-desa/internal/middleware"
	"sistem-desa/internal/usecase"
)

// SetupKependudukanRoutes: data pribadi (KK, penduduk, rumah) hanya untuk pengguna yang login.
func SetupKependudukanRoutes(app *fiber.App, d *Deps) {
	kk := handler.NewKartuKeluargaHandler(d.Repos.KartuKeluarga, d.Repos.Rumah)
	penduduk := handler.NewPendudukHandler(d.Repos.Penduduk, d.Repos.KartuKeluarga)
	rumah := handler.NewRumahHandler(d.Repos.Rumah, d.Lokasi)

	canWrite := middleware.Role(usecase.RoleAdmin, usecase.RoleOperator)
	admin := app.Group("/api/admin", middleware.Auth(d.JWTSecret))

	admin.Get("/kk", kk.GetAll)
	admin.Get("/kk/:id", kk.GetByID)
	admin.Post("/kk", canWrite, kk.Create)
	admin.Put("/kk/:id", canWrite, kk.Update)
	admin.Delete("/kk/:id", canWrite, kk.Delete)

	admin.Get("/penduduk", penduduk.GetAll)
	admin.Get("/penduduk/export", penduduk.Export)
	admin.Get("/penduduk/:id", penduduk.GetByID)
	admin.Post("/penduduk", canWrite, penduduk.Create)
	admin.Put("/penduduk/:id", canWrite, penduduk.Update)
	admin.Delete("/penduduk/:id", canWrite, penduduk.Delete)

	admin.Get("/rumah", rumah.GetAll)
	admin.Get("/rumah/:id", rumah.GetByID)
	admin.Post("/rumah", canWrite, rumah.Create)
	admin.Put("/rumah/:id", canWrite, rumah.Update)
	admin.Delete("/rumah/:id", canWrite, rumah.Delete)
}
