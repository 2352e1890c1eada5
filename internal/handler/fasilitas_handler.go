package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/usecase"
)

type FasilitasHandler struct {
	repo   repository.FasilitasRepository
	lokasi *usecase.LokasiUsecase
}

func NewFasilitasHandler(repo repository.FasilitasRepository, lokasi *usecase.LokasiUsecase) *FasilitasHandler {
	return &FasilitasHandler{repo: repo, lokasi: lokasi}
}

func (h *FasilitasHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetAll(repository.FasilitasFilter{
		Kategori: maplayer.NormalizeKey(c.Query("kategori")),
		Kondisi:  c.Query("kondisi"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, err, "Gagal mengambil data fasilitas")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *FasilitasHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	fasilitas, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data fasilitas")
	}
	return c.JSON(fiber.Map{"data": fasilitas})
}

func (h *FasilitasHandler) Create(c *fiber.Ctx) error {
	var req model.Fasilitas
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := checkFasilitas(&req); msg != "" {
		return invalid(c, msg)
	}

	lokasi, luas, err := h.lokasi.Prepare(req.Lokasi)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	fasilitas := model.Fasilitas{
		Nama:       req.Nama,
		Kategori:   req.Kategori,
		Kondisi:    req.Kondisi,
		Keterangan: req.Keterangan,
		RT:         req.RT,
		RW:         req.RW,
		Lokasi:     lokasi,
		LuasM2:     luas,
	}
	if err := h.repo.Create(&fasilitas); err != nil {
		return respondError(c, err, "Gagal menyimpan data fasilitas")
	}
	h.lokasi.Stored(c.UserContext(), usecase.FasilitasItem(&fasilitas))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Fasilitas berhasil dibuat", "data": fasilitas})
}

func (h *FasilitasHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	var req model.Fasilitas
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	fasilitas, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data fasilitas")
	}
	if req.Lokasi.IsZero() {
		req.Lokasi = fasilitas.Lokasi
	}
	if msg := checkFasilitas(&req); msg != "" {
		return invalid(c, msg)
	}

	lokasi, luas, err := h.lokasi.Prepare(req.Lokasi)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	fasilitas.Nama = req.Nama
	fasilitas.Kategori = req.Kategori
	fasilitas.Kondisi = req.Kondisi
	fasilitas.Keterangan = req.Keterangan
	fasilitas.RT = req.RT
	fasilitas.RW = req.RW
	fasilitas.Lokasi = lokasi
	fasilitas.LuasM2 = luas

	if err := h.repo.Update(fasilitas); err != nil {
		return respondError(c, err, "Gagal update data fasilitas")
	}
	h.lokasi.Stored(c.UserContext(), usecase.FasilitasItem(fasilitas))
	return c.JSON(fiber.Map{"message": "Fasilitas berhasil diupdate", "data": fasilitas})
}

func (h *FasilitasHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus data fasilitas")
	}
	h.lokasi.Removed(c.UserContext(), maplayer.LayerFasilitas, id)
	return c.JSON(fiber.Map{"message": "Fasilitas berhasil dihapus"})
}

func checkFasilitas(req *model.Fasilitas) string {
	req.Kategori = maplayer.NormalizeKey(req.Kategori)
	if req.Nama == "" || req.Kategori == "" {
		return "Nama dan kategori fasilitas wajib diisi"
	}
	if req.Kondisi == "" {
		req.Kondisi = model.KondisiBaik
	}
	if !oneOf(req.Kondisi, model.KondisiFasilitas) {
		return "Kondisi harus BAIK, RUSAK_RINGAN, atau RUSAK_BERAT"
	}
	if req.Lokasi.IsZero() {
		return "Lokasi fasilitas wajib diisi"
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return err.Error()
	}
	return ""
}
