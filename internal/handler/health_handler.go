package handler

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"sistem-desa/internal/spatial"
)

type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	index  *spatial.Index
	checks map[string]HealthCheck
}

func NewHealthHandler(index *spatial.Index) *HealthHandler {
	return &HealthHandler{index: index, checks: make(map[string]HealthCheck)}
}

// AddCheck mendaftarkan dependensi yang diperiksa (misalnya database, redis).
func (h *HealthHandler) AddCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

func (h *HealthHandler) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	code := fiber.StatusOK
	deps := fiber.Map{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"index_items":  h.index.Size(),
	})
}
