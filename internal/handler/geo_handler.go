package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/usecase"
)

type GeoHandler struct {
	lokasi *usecase.LokasiUsecase
}

func NewGeoHandler(lokasi *usecase.LokasiUsecase) *GeoHandler {
	return &GeoHandler{lokasi: lokasi}
}

// Ukur menghitung luas, keliling, dan pusat shape yang dikirim tanpa menyimpannya.
func (h *GeoHandler) Ukur(c *fiber.Ctx) error {
	var shape geo.Shape
	if err := c.BodyParser(&shape); err != nil {
		return badBody(c, err)
	}
	if shape.IsZero() {
		return invalid(c, "Lokasi wajib diisi")
	}
	out, err := h.lokasi.Measure(shape)
	if err != nil {
		return respondError(c, err, "Gagal mengukur lokasi")
	}
	return c.JSON(fiber.Map{"data": out})
}

type cekRequest struct {
	BatasID uint    `json:"batas_id"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Cek menguji apakah titik berada di dalam satu batas wilayah.
func (h *GeoHandler) Cek(c *fiber.Ctx) error {
	var req cekRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if req.BatasID == 0 {
		return invalid(c, "batas_id wajib diisi")
	}
	if err := requireFields(c, "lat", "lon"); err != nil {
		return respondError(c, err, "")
	}
	p := geo.Point{Lat: req.Lat, Lon: req.Lon}
	if err := geo.Validate(geo.Shape{Type: geo.ShapePoint, Point: p}); err != nil {
		return respondError(c, err, "")
	}

	inside, batas, err := h.lokasi.InBatas(req.BatasID, p)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa batas wilayah")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"di_dalam": inside,
		"titik":    p,
		"batas_id": batas.ID,
		"nama":     batas.Nama,
		"jenis":    batas.Jenis,
	}})
}
