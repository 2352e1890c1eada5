package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/usecase"
)

type POIHandler struct {
	repo   repository.TempatPentingRepository
	lokasi *usecase.LokasiUsecase
}

func NewPOIHandler(repo repository.TempatPentingRepository, lokasi *usecase.LokasiUsecase) *POIHandler {
	return &POIHandler{repo: repo, lokasi: lokasi}
}

func (h *POIHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll(maplayer.NormalizeKey(c.Query("kategori")), c.Query("search"))
	if err != nil {
		return respondError(c, err, "Gagal mengambil tempat penting")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *POIHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	poi, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil tempat penting")
	}
	return c.JSON(fiber.Map{"data": poi})
}

func (h *POIHandler) Create(c *fiber.Ctx) error {
	var req model.TempatPenting
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	req.Kategori = maplayer.NormalizeKey(req.Kategori)
	if req.Nama == "" {
		return invalid(c, "Nama tempat wajib diisi")
	}

	if err := requireFields(c, "latitude", "longitude"); err != nil {
		return respondError(c, err, "")
	}
	titik, _, err := h.lokasi.Prepare(geo.NewPoint(req.Latitude, req.Longitude))
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	poi := model.TempatPenting{
		Nama:       req.Nama,
		Kategori:   req.Kategori,
		Keterangan: req.Keterangan,
		Latitude:   titik.Point.Lat,
		Longitude:  titik.Point.Lon,
	}
	if err := h.repo.Create(&poi); err != nil {
		return respondError(c, err, "Gagal menyimpan tempat penting")
	}
	h.lokasi.Stored(c.UserContext(), usecase.POIItem(&poi))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Tempat penting berhasil dibuat", "data": poi})
}

func (h *POIHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	var req model.TempatPenting
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if req.Nama == "" {
		return invalid(c, "Nama tempat wajib diisi")
	}

	poi, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil tempat penting")
	}

	if err := requireFields(c, "latitude", "longitude"); err != nil {
		return respondError(c, err, "")
	}
	titik, _, err := h.lokasi.Prepare(geo.NewPoint(req.Latitude, req.Longitude))
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	poi.Nama = req.Nama
	poi.Kategori = maplayer.NormalizeKey(req.Kategori)
	poi.Keterangan = req.Keterangan
	poi.Latitude = titik.Point.Lat
	poi.Longitude = titik.Point.Lon

	if err := h.repo.Update(poi); err != nil {
		return respondError(c, err, "Gagal update tempat penting")
	}
	h.lokasi.Stored(c.UserContext(), usecase.POIItem(poi))
	return c.JSON(fiber.Map{"message": "Tempat penting berhasil diupdate", "data": poi})
}

func (h *POIHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus tempat penting")
	}
	h.lokasi.Removed(c.UserContext(), maplayer.LayerPOI, id)
	return c.JSON(fiber.Map{"message": "Tempat penting berhasil dihapus"})
}
