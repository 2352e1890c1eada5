package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistem-desa/internal/export"
	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
)

type PendudukHandler struct {
	repo   repository.PendudukRepository
	kkRepo repository.KartuKeluargaRepository
}

func NewPendudukHandler(repo repository.PendudukRepository, kkRepo repository.KartuKeluargaRepository) *PendudukHandler {
	return &PendudukHandler{repo: repo, kkRepo: kkRepo}
}

func (h *PendudukHandler) filter(c *fiber.Ctx) (repository.PendudukFilter, error) {
	f := repository.PendudukFilter{
		Search:       c.Query("search"),
		RT:           c.Query("rt"),
		RW:           c.Query("rw"),
		JenisKelamin: c.Query("jenis_kelamin"),
		Semua:        c.QueryBool("semua"),
	}
	if err := normalizeWilayah(&f.RT, &f.RW); err != nil {
		return f, err
	}
	if raw := c.Query("kk_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, fmt.Errorf("kk_id tidak valid")
		}
		f.KKID = uint(id)
	}
	return f, nil
}

func (h *PendudukHandler) GetAll(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return invalid(c, err.Error())
	}
	list, err := h.repo.GetAll(filter)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data penduduk")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *PendudukHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	penduduk, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data penduduk")
	}
	return c.JSON(fiber.Map{"data": penduduk})
}

// Export mengunduh daftar penduduk (dengan filter yang sama seperti GetAll) sebagai xlsx.
func (h *PendudukHandler) Export(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return invalid(c, err.Error())
	}
	list, err := h.repo.GetAll(filter)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data penduduk")
	}
	buf, err := export.PendudukXLSX(list)
	if err != nil {
		return respondError(c, err, "Gagal membuat file export")
	}

	filename := fmt.Sprintf("penduduk_%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *PendudukHandler) Create(c *fiber.Ctx) error {
	var req model.Penduduk
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := h.check(&req); msg != "" {
		return invalid(c, msg)
	}
	if _, err := h.repo.FindByNIK(req.NIK); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "NIK sudah terdaftar"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err, "Gagal memeriksa NIK")
	}

	penduduk := req
	penduduk.ID = 0
	penduduk.IsActive = true
	penduduk.KartuKeluarga = nil
	if err := h.repo.Create(&penduduk); err != nil {
		return respondError(c, err, "Gagal menyimpan data penduduk")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Penduduk berhasil ditambahkan", "data": penduduk})
}

func (h *PendudukHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	penduduk, err := h.repo.GetByID(id)
	if err != nil {
		return respondError(c, err, "Gagal mengambil data penduduk")
	}

	// is_active yang tidak dikirim tetap memakai nilai lama
	req := model.Penduduk{IsActive: penduduk.IsActive}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if msg := h.check(&req); msg != "" {
		return invalid(c, msg)
	}
	if req.NIK != penduduk.NIK {
		if other, err := h.repo.FindByNIK(req.NIK); err == nil && other.ID != penduduk.ID {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "NIK sudah terdaftar"})
		}
	}

	penduduk.NIK = req.NIK
	penduduk.Nama = req.Nama
	penduduk.JenisKelamin = req.JenisKelamin
	penduduk.TempatLahir = req.TempatLahir
	penduduk.TanggalLahir = req.TanggalLahir
	penduduk.Agama = req.Agama
	penduduk.Pendidikan = req.Pendidikan
	penduduk.Pekerjaan = req.Pekerjaan
	penduduk.StatusPerkawinan = req.StatusPerkawinan
	penduduk.HubunganKeluarga = req.HubunganKeluarga
	penduduk.KartuKeluargaID = req.KartuKeluargaID
	penduduk.RumahID = req.RumahID
	penduduk.RT = req.RT
	penduduk.RW = req.RW
	penduduk.IsActive = req.IsActive
	penduduk.KartuKeluarga = nil

	if err := h.repo.Update(penduduk); err != nil {
		return respondError(c, err, "Gagal update data penduduk")
	}
	return c.JSON(fiber.Map{"message": "Data penduduk berhasil diupdate", "data": penduduk})
}

func (h *PendudukHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.repo.Delete(id); err != nil {
		return respondError(c, err, "Gagal menghapus data penduduk")
	}
	return c.JSON(fiber.Map{"message": "Data penduduk berhasil dihapus"})
}

// check memvalidasi isian. RT, RW, dan rumah yang kosong diambil dari kartu keluarga.
func (h *PendudukHandler) check(req *model.Penduduk) string {
	if !isDigits(req.NIK, 16) {
		return "NIK harus 16 digit angka"
	}
	if req.Nama == "" {
		return "Nama wajib diisi"
	}
	if req.JenisKelamin != "L" && req.JenisKelamin != "P" {
		return "Jenis kelamin harus L atau P"
	}
	if req.TanggalLahir != "" {
		if _, err := time.Parse("2006-01-02", req.TanggalLahir); err != nil {
			return "Format tanggal lahir harus YYYY-MM-DD"
		}
	}
	if err := normalizeWilayah(&req.RT, &req.RW); err != nil {
		return err.Error()
	}

	if req.KartuKeluargaID != nil {
		kk, err := h.kkRepo.GetByID(*req.KartuKeluargaID)
		if err != nil {
			return "Kartu keluarga tidak ditemukan"
		}
		if req.RT == "" {
			req.RT = kk.RT
		}
		if req.RW == "" {
			req.RW = kk.RW
		}
		if req.RumahID == nil {
			req.RumahID = kk.RumahID
		}
	}
	return ""
}
