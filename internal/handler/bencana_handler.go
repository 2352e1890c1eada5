package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/usecase"
)

type BencanaHandler struct {
	repo   repository.BencanaRepository
	lokasi *usecase.LokasiUsecase
}

func NewBencanaHandler(repo repository.BencanaRepository, lokasi *usecase.LokasiUsecase) *BencanaHandler {
	return &BencanaHandler{repo: repo, lokasi: lokasi}
}

func (h *BencanaHandler) GetAll(c *fiber.Ctx) error {
	filter := repository.BencanaFilter{
		Jenis:  maplayer.NormalizeKey(c.Query("jenis")),
		Status: c.Query("status"),
		RT:     c.Query("rt"),
		RW:     c.Query("rw"),
	}
	if err := normalizeWilayah(&filter.RT, &filter.RW); err != nil {
		return invalid(c, err.Error())
	}
	list, err := h.repo.GetAll(filter)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data bencana")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *BencanaHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	bencana, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data bencana")
	}
	return c.JSON(fiber.Map{"data": bencana})
}

func (h *BencanaHandler) Create(c *fiber.Ctx) error {
	var req model.Bencana
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := checkBencana(&req); msg != "" {
		return invalid(c, msg)
	}

	lokasi, luas, err := h.lokasi.Prepare(req.Lokasi)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	bencana := model.Bencana{
		Kode:       uuid.NewString(),
		Jenis:      req.Jenis,
		Tanggal:    req.Tanggal,
		Keterangan: req.Keterangan,
		Status:     req.Status,
		KorbanJiwa: req.KorbanJiwa,
		KorbanLuka: req.KorbanLuka,
		Pengungsi:  req.Pengungsi,
		RT:         req.RT,
		RW:         req.RW,
		Lokasi:     lokasi,
		LuasM2:     luas,
	}
	if err := h.repo.Create(&bencana); err != nil {
		return respondError(c, err, "Gagal menyimpan data bencana")
	}
	h.sync(c.UserContext(), &bencana)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Data bencana berhasil dibuat", "data": bencana})
}

func (h *BencanaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	var req model.Bencana
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	bencana, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data bencana")
	}
	if req.Lokasi.IsZero() {
		req.Lokasi = bencana.Lokasi
	}
	if msg := checkBencana(&req); msg != "" {
		return invalid(c, msg)
	}

	lokasi, luas, err := h.lokasi.Prepare(req.Lokasi)
	if err != nil {
		return respondError(c, err, "Gagal memeriksa lokasi")
	}

	bencana.Jenis = req.Jenis
	bencana.Tanggal = req.Tanggal
	bencana.Keterangan = req.Keterangan
	bencana.Status = req.Status
	bencana.KorbanJiwa = req.KorbanJiwa
	bencana.KorbanLuka = req.KorbanLuka
	bencana.Pengungsi = req.Pengungsi
	bencana.RT = req.RT
	bencana.RW = req.RW
	bencana.Lokasi = lokasi
	bencana.LuasM2 = luas

	if err := h.repo.Update(bencana); err != nil {
		return respondError(c, err, "Gagal update data bencana")
	}
	h.sync(c.UserContext(), bencana)
	return c.JSON(fiber.Map{"message": "Data bencana berhasil diupdate", "data": bencana})
}

func (h *BencanaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus data bencana")
	}
	h.lokasi.Removed(c.UserContext(), maplayer.LayerBencana, id)
	return c.JSON(fiber.Map{"message": "Data bencana berhasil dihapus"})
}

// sync memasukkan bencana ke indeks, atau mengeluarkannya jika sudah selesai.
func (h *BencanaHandler) sync(ctx context.Context, b *model.Bencana) {
	if usecase.BencanaIndexed(b) {
		h.lokasi.Stored(ctx, usecase.BencanaItem(b))
		return
	}
	h.lokasi.Removed(ctx, maplayer.LayerBencana, b.ID)
}

func checkBencana(req *model.Bencana) string {
	req.Jenis = maplayer.NormalizeKey(req.Jenis)
	if req.Jenis == "" {
		return "Jenis bencana wajib diisi"
	}
	if req.Status == "" {
		req.Status = model.StatusAktif
	}
	if !oneOf(req.Status, model.StatusBencana) {
		return "Status harus AKTIF, PENANGANAN, atau SELESAI"
	}
	if req.Tanggal != "" {
		if _, err := time.Parse("2006-01-02", req.Tanggal); err != nil {
			return "Format tanggal harus YYYY-MM-DD"
		}
	}
	if req.KorbanJiwa < 0 || req.KorbanLuka < 0 || req.Pengungsi < 0 {
		return "Jumlah korban tidak boleh negatif"
	}
	if req.Lokasi.IsZero() {
		return "Lokasi bencana wajib diisi"
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return err.Error()
	}
	return ""
}
