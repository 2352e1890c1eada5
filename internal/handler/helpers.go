package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/logger"
	"sistem-desa/internal/repository"
	"sistem-desa/internal/usecase"
)

var errIDTidakValid = fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errIDTidakValid
	}
	return uint(id), nil
}

// respondError memetakan error ke status HTTP. msg dipakai untuk error yang tidak dikenal.
func respondError(c *fiber.Ctx, err error, msg string) error {
	var verr *geo.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Lokasi tidak valid: " + verr.Reason,
			"detail": verr,
		})
	case errors.As(err, &ferr):
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	case errors.Is(err, usecase.ErrOutsideBoundary):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Lokasi berada di luar batas wilayah desa"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data tidak ditemukan"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Data sudah terdaftar"})
	case errors.Is(err, repository.ErrKKMasihPunyaAnggota):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Kartu keluarga masih memiliki anggota"})
	}

	log := logger.For("handler")
	log.Error().Err(err).Str("path", c.Path()).Msg(msg)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}

// invalid mengembalikan 422 untuk isian yang tidak lolos validasi.
func invalid(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": msg})
}

// badBody menangani gagal parse body. Lokasi yang tidak valid tetap dilaporkan sebagai 422.
func badBody(c *fiber.Ctx, err error) error {
	var verr *geo.ValidationError
	if errors.As(err, &verr) {
		return respondError(c, verr, "")
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
}

// requireFields memastikan setiap kunci ada di body JSON. Nilai 0 yang dikirim tetap sah,
// hanya kunci yang tidak dikirim (atau null) yang ditolak.
func requireFields(c *fiber.Ctx, keys ...string) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
	}
	for _, k := range keys {
		if v, ok := body[k]; !ok || string(v) == "null" {
			return &geo.ValidationError{Field: k, Code: geo.ReasonMissing, Reason: k + " wajib diisi"}
		}
	}
	return nil
}

// normalizeRTRW mengubah "1" menjadi "001". String kosong tetap kosong.
func normalizeRTRW(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 999 {
		return "", fmt.Errorf("RT/RW harus berupa angka 1-3 digit")
	}
	return fmt.Sprintf("%03d", n), nil
}

// normalizeWilayah menormalkan pasangan RT dan RW sekaligus.
func normalizeWilayah(rt, rw *string) error {
	var err error
	if *rt, err = normalizeRTRW(*rt); err != nil {
		return err
	}
	*rw, err = normalizeRTRW(*rw)
	return err
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// queryFloat membaca parameter query angka yang wajib ada.
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Parameter "+key+" wajib diisi")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Parameter "+key+" harus berupa angka")
	}
	return v, nil
}

func queryPoint(c *fiber.Ctx) (geo.Point, error) {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return geo.Point{}, err
	}
	lon, err := queryFloat(c, "lon")
	if err != nil {
		return geo.Point{}, err
	}
	p := geo.Point{Lat: lat, Lon: lon}
	if err := geo.Validate(geo.Shape{Type: geo.ShapePoint, Point: p}); err != nil {
		return geo.Point{}, err
	}
	return p, nil
}
