package handler

import (
	"github.com/gofiber/fiber/v2"
)

// ReadinessCheck reports whether a dependency is usable
type ReadinessCheck func() error

type HealthHandler struct {
	checks map[string]ReadinessCheck
}

func NewHealthHandler(checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: "0.1.0",
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if len(h.checks) == 0 {
		return c.JSON(HealthResponse{
			Status: "ready",
		})
	}

	status := fiber.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(); err != nil {
			results[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	resp := HealthResponse{Status: "ready", Checks: results}
	if status != fiber.StatusOK {
		resp.Status = "not_ready"
	}

	return c.Status(status).JSON(resp)
}
