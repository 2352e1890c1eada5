package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"sistem-desa/internal/handler"
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/middleware"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/spatial"
	"sistem-desa/internal/usecase"
)

// Deps adalah semua yang dibutuhkan route. Repos boleh diisi sendiri (misalnya di test);
// jika kosong dibuat dari DB.
type Deps struct {
	DB        *gorm.DB
	Repos     *Repos
	Index     *spatial.Index
	Cache     *maplayer.Cache
	Registry  *maplayer.Registry
	Lokasi    *usecase.LokasiUsecase
	Health    *handler.HealthHandler
	JWTSecret string
}

type Repos struct {
	Desa          repository.DesaRepository
	Batas         repository.BatasRepository
	Bencana       repository.BencanaRepository
	Fasilitas     repository.FasilitasRepository
	TempatPenting repository.TempatPentingRepository
	Rumah         repository.RumahRepository
	KartuKeluarga repository.KartuKeluargaRepository
	Penduduk      repository.PendudukRepository
	Statistik     repository.StatistikRepository
}

func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Desa:          repository.NewDesaRepository(db),
		Batas:         repository.NewBatasRepository(db),
		Bencana:       repository.NewBencanaRepository(db),
		Fasilitas:     repository.NewFasilitasRepository(db),
		TempatPenting: repository.NewTempatPentingRepository(db),
		Rumah:         repository.NewRumahRepository(db),
		KartuKeluarga: repository.NewKartuKeluargaRepository(db),
		Penduduk:      repository.NewPendudukRepository(db),
		Statistik:     repository.NewStatistikRepository(db),
	}
}

// Setup mendaftarkan semua route aplikasi.
func Setup(app *fiber.App, d *Deps) {
	if d.Repos == nil {
		d.Repos = NewRepos(d.DB)
	}
	if d.Index == nil {
		d.Index = spatial.NewIndex()
	}
	if d.Registry == nil {
		d.Registry = maplayer.DefaultRegistry()
	}
	if d.Cache == nil {
		d.Cache = maplayer.NewCache(nil, 0)
	}
	if d.Lokasi == nil {
		d.Lokasi = usecase.NewLokasiUsecase(d.Repos.Batas, d.Index, d.Cache, true)
	}
	if d.Health == nil {
		d.Health = handler.NewHealthHandler(d.Index)
	}

	app.Get("/api/health", d.Health.Get)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	SetupDesaRoutes(app, d)
	SetupBatasRoutes(app, d)
	SetupBencanaRoutes(app, d)
	SetupFasilitasRoutes(app, d)
	SetupPOIRoutes(app, d)
	SetupKependudukanRoutes(app, d)
	SetupPetaRoutes(app, d)
	SetupStatistikRoutes(app, d)
}

// writeGroup membuat group untuk route yang mengubah data: wajib login dengan role admin atau operator.
func writeGroup(app *fiber.App, prefix string, d *Deps) fiber.Router {
	return app.Group(prefix, middleware.Auth(d.JWTSecret), middleware.Role(usecase.RoleAdmin, usecase.RoleOperator))
}
