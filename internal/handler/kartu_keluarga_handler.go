package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
)

type KartuKeluargaHandler struct {
	repo      repository.KartuKeluargaRepository
	rumahRepo repository.RumahRepository
}

func NewKartuKeluargaHandler(repo repository.KartuKeluargaRepository, rumahRepo repository.RumahRepository) *KartuKeluargaHandler {
	return &KartuKeluargaHandler{repo: repo, rumahRepo: rumahRepo}
}

func (h *KartuKeluargaHandler) GetAll(c *fiber.Ctx) error {
	rt, rw := c.Query("rt"), c.Query("rw")
	if err := normalizeWilayah(&rt, &rw); err != nil {
		return invalid(c, err.Error())
	}
	list, err := h.repo.GetAll(c.Query("search"), rt, rw)
	if err != nil {
		return respondError(c, err, "Gagal mengambil kartu keluarga")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *KartuKeluargaHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	kk, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil kartu keluarga")
	}
	return c.JSON(fiber.Map{"data": kk})
}

func (h *KartuKeluargaHandler) Create(c *fiber.Ctx) error {
	var req model.KartuKeluarga
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := h.check(&req); msg != "" {
		return invalid(c, msg)
	}
	if _, err := h.repo.FindByNoKK(req.NoKK); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No KK sudah terdaftar"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err, "Gagal memeriksa No KK")
	}

	kk := model.KartuKeluarga{
		NoKK:           req.NoKK,
		KepalaKeluarga: req.KepalaKeluarga,
		Alamat:         req.Alamat,
		RT:             req.RT,
		RW:             req.RW,
		RumahID:        req.RumahID,
	}
	if err := h.repo.Create(&kk); err != nil {
		return respondError(c, err, "Gagal menyimpan kartu keluarga")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Kartu keluarga berhasil dibuat", "data": kk})
}

func (h *KartuKeluargaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	var req model.KartuKeluarga
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := h.check(&req); msg != "" {
		return invalid(c, msg)
	}

	kk, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil kartu keluarga")
	}
	if req.NoKK != kk.NoKK {
		if other, err := h.repo.FindByNoKK(req.NoKK); err == nil && other.ID != kk.ID {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No KK sudah terdaftar"})
		}
	}

	kk.NoKK = req.NoKK
	kk.KepalaKeluarga = req.KepalaKeluarga
	kk.Alamat = req.Alamat
	kk.RT = req.RT
	kk.RW = req.RW
	kk.RumahID = req.RumahID
	kk.Rumah = nil

	if err := h.repo.Update(kk); err != nil {
		return respondError(c, err, "Gagal update kartu keluarga")
	}
	return c.JSON(fiber.Map{"message": "Kartu keluarga berhasil diupdate", "data": kk})
}

func (h *KartuKeluargaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus kartu keluarga")
	}
	return c.JSON(fiber.Map{"message": "Kartu keluarga berhasil dihapus"})
}

func (h *KartuKeluargaHandler) check(req *model.KartuKeluarga) string {
	if !isDigits(req.NoKK, 16) {
		return "No KK harus 16 digit angka"
	}
	if req.KepalaKeluarga == "" {
		return "Kepala keluarga wajib diisi"
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return err.Error()
	}
	if req.RumahID != nil {
		if _, err := h.rumahRepo.GetByID(*req.RumahID); err != nil {
			return "Rumah tidak ditemukan"
		}
	}
	return ""
}
