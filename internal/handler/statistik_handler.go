package handler

import (
	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/repository"
)

type StatistikHandler struct {
	repo repository.StatistikRepository
}

func NewStatistikHandler(repo repository.StatistikRepository) *StatistikHandler {
	return &StatistikHandler{repo: repo}
}

func (h *StatistikHandler) Get(c *fiber.Ctx) error {
	stats, err := h.repo.Get()
	if err != nil {
		return respondError(c, err, "Gagal mengambil statistik")
	}
	return c.JSON(fiber.Map{"data": stats})
}
