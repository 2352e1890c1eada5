package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/usecase"
)

type RumahHandler struct {
	repo   repository.RumahRepository
	lokasi *usecase.LokasiUsecase
}

func NewRumahHandler(repo repository.RumahRepository, lokasi *usecase.LokasiUsecase) *RumahHandler {
	return &RumahHandler{repo: repo, lokasi: lokasi}
}

func (h *RumahHandler) GetAll(c *fiber.Ctx) error {
	filter := repository.RumahFilter{Search: c.Query("search"), RT: c.Query("rt"), RW: c.Query("rw")}
	if err := normalizeWilayah(&filter.RT, &filter.RW); err != nil {
		return invalid(c, err.Error())
	}
	list, err := h.repo.GetAll(filter)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data rumah")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *RumahHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	rumah, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data rumah")
	}
	return c.JSON(fiber.Map{"data": rumah})
}

func (h *RumahHandler) Create(c *fiber.Ctx) error {
	var req model.Rumah
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return invalid(c, err.Error())
	}
	if req.NoRumah == "" && req.Pemilik == "" {
		return invalid(c, "No rumah atau pemilik wajib diisi")
	}

	if err := requireFields(c, "latitude", "longitude"); err != nil {
		return respondError(c, err, "")
	}
	titik, _, err := h.lokasi.Prepare(geo.NewPoint(req.Latitude, req.Longitude))
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	rumah := model.Rumah{
		NoRumah:   req.NoRumah,
		Pemilik:   req.Pemilik,
		Alamat:    req.Alamat,
		RT:        req.RT,
		RW:        req.RW,
		Latitude:  titik.Point.Lat,
		Longitude: titik.Point.Lon,
		Kondisi:   req.Kondisi,
	}
	if err := h.repo.Create(&rumah); err != nil {
		return respondError(c, err, "Gagal menyimpan data rumah")
	}
	h.lokasi.Invalidate(c.UserContext(), maplayer.LayerRumah)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rumah berhasil ditambahkan", "data": rumah})
}

func (h *RumahHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	var req model.Rumah
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return invalid(c, err.Error())
	}

	rumah, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data rumah")
	}

	if err := requireFields(c, "latitude", "longitude"); err != nil {
		return respondError(c, err, "")
	}
	titik, _, err := h.lokasi.Prepare(geo.NewPoint(req.Latitude, req.Longitude))
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	rumah.NoRumah = req.NoRumah
	rumah.Pemilik = req.Pemilik
	rumah.Alamat = req.Alamat
	rumah.RT = req.RT
	rumah.RW = req.RW
	rumah.Latitude = titik.Point.Lat
	rumah.Longitude = titik.Point.Lon
	rumah.Kondisi = req.Kondisi

	if err := h.repo.Update(rumah); err != nil {
		return respondError(c, err, "Gagal update data rumah")
	}
	h.lokasi.Invalidate(c.UserContext(), maplayer.LayerRumah)
	return c.JSON(fiber.Map{"message": "Data rumah berhasil diupdate", "data": rumah})
}

func (h *RumahHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus data rumah")
	}
	h.lokasi.Invalidate(c.UserContext(), maplayer.LayerRumah)
	return c.JSON(fiber.Map{"message": "Data rumah berhasil dihapus"})
}
