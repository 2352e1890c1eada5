package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
)

type DesaHandler struct {
	repo repository.DesaRepository
}

func NewDesaHandler(repo repository.DesaRepository) *DesaHandler {
	return &DesaHandler{repo: repo}
}

func (h *DesaHandler) Get(c *fiber.Ctx) error {
	desa, err := h.repo.Get()
	if err != nil {
		return respondError(c, err, "Gagal mengambil profil desa")
	}
	return c.JSON(fiber.Map{"data": desa})
}

func (h *DesaHandler) Update(c *fiber.Ctx) error {
	var req model.Desa
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if req.Nama == "" {
		return invalid(c, "Nama desa wajib diisi")
	}
	if req.CenterLat != 0 || req.CenterLon != 0 {
		if err := geo.Validate(geo.NewPoint(req.CenterLat, req.CenterLon)); err != nil {
			return respondError(c, err, "Titik tengah peta tidak valid")
		}
	}
	if req.Zoom == 0 {
		req.Zoom = 15
	}
	if req.Zoom < 1 || req.Zoom > 22 {
		return invalid(c, "Zoom peta harus antara 1 dan 22")
	}

	desa := model.Desa{
		Nama:         req.Nama,
		KodeWilayah:  req.KodeWilayah,
		Kecamatan:    req.Kecamatan,
		Kabupaten:    req.Kabupaten,
		Provinsi:     req.Provinsi,
		KepalaDesa:   req.KepalaDesa,
		AlamatKantor: req.AlamatKantor,
		CenterLat:    req.CenterLat,
		CenterLon:    req.CenterLon,
		Zoom:         req.Zoom,
	}
	if err := h.repo.Save(&desa); err != nil {
		return respondError(c, err, "Gagal menyimpan profil desa")
	}
	return c.JSON(fiber.Map{"message": "Profil desa berhasil disimpan", "data": desa})
}
