package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/twpayne/go-geom/encoding/geojson"

	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/spatial"
	"sistem-desa/internal/usecase"
)

const (
	circleSegments = 64
	defaultRadius  = 500.0
)

// PetaSources berisi repository yang dibaca untuk menyusun layer peta.
type PetaSources struct {
	Batas     repository.BatasRepository
	Bencana   repository.BencanaRepository
	Fasilitas repository.FasilitasRepository
	POI       repository.TempatPentingRepository
	Rumah     repository.RumahRepository
}

type PetaHandler struct {
	src      PetaSources
	registry *maplayer.Registry
	cache    *maplayer.Cache
	lokasi   *usecase.LokasiUsecase
}

func NewPetaHandler(src PetaSources, registry *maplayer.Registry, cache *maplayer.Cache, lokasi *usecase.LokasiUsecase) *PetaHandler {
	return &PetaHandler{src: src, registry: registry, cache: cache, lokasi: lokasi}
}

// GetLayer mengembalikan FeatureCollection satu layer publik, atau gabungan semua layer publik.
func (h *PetaHandler) GetLayer(c *fiber.Ctx) error {
	layer := c.Params("layer")
	if layer != maplayer.LayerSemua && !oneOf(layer, maplayer.PublicLayers) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Layer tidak dikenal"})
	}
	return h.serve(c, layer)
}

// GetRumah sama seperti GetLayer untuk layer rumah, hanya untuk pengguna yang login.
func (h *PetaHandler) GetRumah(c *fiber.Ctx) error {
	return h.serve(c, maplayer.LayerRumah)
}

func (h *PetaHandler) serve(c *fiber.Ctx, layer string) error {
	opts := maplayer.Options{}
	variant := "point"
	if c.Query("circle") == "polygon" {
		opts.CircleSegments = circleSegments
		variant = "polygon"
	}

	ctx := c.UserContext()
	c.Set(fiber.HeaderContentType, "application/geo+json")
	if b, ok := h.cache.Get(ctx, layer, variant); ok {
		c.Set("X-Cache", "HIT")
		return c.Send(b)
	}

	fc, err := h.render(ctx, layer, opts)
	if err != nil {
		return respondError(c, err, "Gagal menyusun layer peta")
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return respondError(c, err, "Gagal menyusun layer peta")
	}
	h.cache.Set(ctx, layer, variant, b)
	c.Set("X-Cache", "MISS")
	return c.Send(b)
}

func (h *PetaHandler) render(ctx context.Context, layer string, opts maplayer.Options) (*geojson.FeatureCollection, error) {
	if layer == maplayer.LayerSemua {
		collections := make([]*geojson.FeatureCollection, 0, len(maplayer.PublicLayers))
		for _, l := range maplayer.PublicLayers {
			fc, err := h.render(ctx, l, opts)
			if err != nil {
				return nil, err
			}
			collections = append(collections, fc)
		}
		return maplayer.Merge(collections...), nil
	}

	features, err := h.features(layer)
	if err != nil {
		return nil, err
	}
	return h.registry.Render(layer, features, opts)
}

func (h *PetaHandler) features(layer string) ([]maplayer.Feature, error) {
	var out []maplayer.Feature
	switch layer {
	case maplayer.LayerBatas:
		list, err := h.src.Batas.GetAll(repository.BatasFilter{})
		if err != nil {
			return nil, err
		}
		for _, b := range list {
			out = append(out, maplayer.Feature{
				ID: b.ID, Nama: b.Nama, Kategori: b.Jenis, Shape: b.Wilayah, Luas: b.LuasM2,
				Extra: map[string]interface{}{"rt": b.RT, "rw": b.RW, "keterangan": b.Keterangan},
			})
		}
	case maplayer.LayerBencana:
		list, err := h.src.Bencana.GetAll(repository.BencanaFilter{})
		if err != nil {
			return nil, err
		}
		for _, b := range list {
			if b.Status == model.StatusSelesai {
				continue
			}
			out = append(out, maplayer.Feature{
				ID: b.ID, Nama: b.Jenis, Kategori: b.Jenis, Shape: b.Lokasi, Luas: b.LuasM2,
				Extra: map[string]interface{}{
					"kode": b.Kode, "status": b.Status, "tanggal": b.Tanggal, "keterangan": b.Keterangan,
					"korban_jiwa": b.KorbanJiwa, "korban_luka": b.KorbanLuka, "pengungsi": b.Pengungsi,
				},
			})
		}
	case maplayer.LayerFasilitas:
		list, err := h.src.Fasilitas.GetAll(repository.FasilitasFilter{})
		if err != nil {
			return nil, err
		}
		for _, f := range list {
			out = append(out, maplayer.Feature{
				ID: f.ID, Nama: f.Nama, Kategori: f.Kategori, Shape: f.Lokasi, Luas: f.LuasM2,
				Extra: map[string]interface{}{"kondisi": f.Kondisi, "keterangan": f.Keterangan},
			})
		}
	case maplayer.LayerPOI:
		list, err := h.src.POI.GetAll("", "")
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			out = append(out, maplayer.Feature{
				ID: p.ID, Nama: p.Nama, Kategori: p.Kategori, Shape: p.Lokasi(),
				Extra: map[string]interface{}{"keterangan": p.Keterangan},
			})
		}
	case maplayer.LayerRumah:
		list, err := h.src.Rumah.GetAll(repository.RumahFilter{})
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			out = append(out, maplayer.Feature{
				ID: r.ID, Nama: r.NoRumah, Kategori: maplayer.LayerRumah, Shape: r.Lokasi(),
				Extra: map[string]interface{}{"pemilik": r.Pemilik, "rt": r.RT, "rw": r.RW, "kondisi": r.Kondisi},
			})
		}
	}
	return out, nil
}

// Lokasi mencari batas wilayah dan bencana aktif di titik ?lat&lon.
func (h *PetaHandler) Lokasi(c *fiber.Ctx) error {
	p, err := queryPoint(c)
	if err != nil {
		return respondError(c, err, "")
	}
	out, err := h.lokasi.Locate(p)
	if err != nil {
		return respondError(c, err, "Gagal mencari lokasi")
	}
	return c.JSON(fiber.Map{"data": out})
}

// Sekitar mencari data publik dalam ?radius meter (bawaan 500) dari ?lat&lon, opsional dibatasi ?layer.
// Dengan ?k=N yang dikembalikan N data terdekat tanpa batas radius.
func (h *PetaHandler) Sekitar(c *fiber.Ctx) error {
	p, err := queryPoint(c)
	if err != nil {
		return respondError(c, err, "")
	}
	radius := defaultRadius
	if c.Query("radius") != "" {
		if radius, err = queryFloat(c, "radius"); err != nil {
			return respondError(c, err, "")
		}
	}

	var layers []string
	if layer := c.Query("layer"); layer != "" {
		if !oneOf(layer, maplayer.PublicLayers) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Layer tidak dikenal"})
		}
		layers = append(layers, layer)
	}

	var hits []spatial.Hit
	if raw := c.Query("k"); raw != "" {
		k, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return respondError(c, fiber.NewError(fiber.StatusBadRequest, "Parameter k harus berupa angka"), "")
		}
		hits, err = h.lokasi.NearestK(p, k, layers...)
	} else {
		hits, err = h.lokasi.Nearby(p, radius, layers...)
	}
	if err != nil {
		return respondError(c, err, "Gagal mencari data sekitar")
	}
	return c.JSON(fiber.Map{"data": hits})
}
