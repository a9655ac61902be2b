package handler

import (
	"time"

	"go-sales-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time) {
	var from, to *time.Time
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = &t
		}
	}
	return from, to
}

// GetOverview returns revenue, sale count, average ticket and customer count
// GET /api/v1/analytics/overview
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to := parseDateRange(c)
	overview, err := h.service.GetOverview(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(overview)
}

// GetSalesByMonth returns the month-over-month revenue series
// GET /api/v1/analytics/sales-by-month?months=12
func (h *AnalyticsHandler) GetSalesByMonth(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	months := c.QueryInt("months", 12)
	results, err := h.service.GetSalesByMonth(userID, months)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// GetSalesByRegion GET /api/v1/analytics/sales-by-region
func (h *AnalyticsHandler) GetSalesByRegion(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to := parseDateRange(c)
	results, err := h.service.GetSalesByRegion(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// GetSalesByCategory GET /api/v1/analytics/sales-by-category
func (h *AnalyticsHandler) GetSalesByCategory(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to := parseDateRange(c)
	results, err := h.service.GetSalesByCategory(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// GetSalesByGender GET /api/v1/analytics/sales-by-gender
func (h *AnalyticsHandler) GetSalesByGender(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to := parseDateRange(c)
	results, err := h.service.GetSalesByGender(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// GetTopProducts GET /api/v1/analytics/top-products?limit=10
func (h *AnalyticsHandler) GetTopProducts(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	limit := c.QueryInt("limit", 10)
	results, err := h.service.GetTopProducts(userID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}
