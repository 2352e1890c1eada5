package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/usecase"
)

type BatasHandler struct {
	repo   repository.BatasRepository
	lokasi *usecase.LokasiUsecase
}

func NewBatasHandler(repo repository.BatasRepository, lokasi *usecase.LokasiUsecase) *BatasHandler {
	return &BatasHandler{repo: repo, lokasi: lokasi}
}

func (h *BatasHandler) GetAll(c *fiber.Ctx) error {
	filter := repository.BatasFilter{Jenis: maplayer.NormalizeKey(c.Query("jenis")), RT: c.Query("rt"), RW: c.Query("rw")}
	if err := normalizeWilayah(&filter.RT, &filter.RW); err != nil {
		return invalid(c, err.Error())
	}
	list, err := h.repo.GetAll(filter)
	if err != nil {
		return respondError(c, err, "Gagal mengambil batas wilayah")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *BatasHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	batas, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil batas wilayah")
	}
	return c.JSON(fiber.Map{"data": batas})
}

func (h *BatasHandler) Create(c *fiber.Ctx) error {
	var req model.BatasWilayah
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := h.check(&req); msg != "" {
		return invalid(c, msg)
	}

	wilayah, luas, err := h.lokasi.PrepareBatas(req.Jenis, req.Wilayah)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa wilayah")
	}

	batas := model.BatasWilayah{
		Nama:       req.Nama,
		Jenis:      req.Jenis,
		RT:         req.RT,
		RW:         req.RW,
		Keterangan: req.Keterangan,
		Wilayah:    wilayah,
		LuasM2:     luas,
	}
	if err := h.repo.Create(&batas); err != nil {
		return respondError(c, err, "Gagal menyimpan batas wilayah")
	}
	h.lokasi.Stored(c.UserContext(), usecase.BatasItem(&batas))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Batas wilayah berhasil dibuat", "data": batas})
}

func (h *BatasHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	var req model.BatasWilayah
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	batas, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil batas wilayah")
	}
	if req.Wilayah.IsZero() {
		req.Wilayah = batas.Wilayah
	}
	if msg := h.check(&req); msg != "" {
		return invalid(c, msg)
	}

	wilayah, luas, err := h.lokasi.PrepareBatas(req.Jenis, req.Wilayah)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa wilayah")
	}

	batas.Nama = req.Nama
	batas.Jenis = req.Jenis
	batas.RT = req.RT
	batas.RW = req.RW
	batas.Keterangan = req.Keterangan
	batas.Wilayah = wilayah
	batas.LuasM2 = luas

	if err := h.repo.Update(batas); err != nil {
		return respondError(c, err, "Gagal update batas wilayah")
	}
	h.lokasi.Stored(c.UserContext(), usecase.BatasItem(batas))
	return c.JSON(fiber.Map{"message": "Batas wilayah berhasil diupdate", "data": batas})
}

func (h *BatasHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus batas wilayah")
	}
	h.lokasi.Removed(c.UserContext(), maplayer.LayerBatas, id)
	return c.JSON(fiber.Map{"message": "Batas wilayah berhasil dihapus"})
}

func (h *BatasHandler) check(req *model.BatasWilayah) string {
	req.Jenis = maplayer.NormalizeKey(req.Jenis)
	if req.Nama == "" || req.Jenis == "" {
		return "Nama dan jenis batas wajib diisi"
	}
	if req.Wilayah.IsZero() {
		return "Wilayah wajib diisi"
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return err.Error()
	}
	return ""
}
