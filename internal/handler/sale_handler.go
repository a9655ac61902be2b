package handler

import (
	"errors"
	"time"

	"go-sales-ws/internal/model"
	"go-sales-ws/internal/repository"
	"go-sales-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// Helpers to read user info from the JWT context (set by RequireAuth)
func getUserID(c *fiber.Ctx) uuid.UUID {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func getUserIDString(c *fiber.Ctx) string {
	raw := c.Locals("user_id")
	if raw == nil {
		return "system"
	}
	return raw.(string)
}

// saleErrorStatus maps build errors (caller's fault) to 400 and anything
// else (store failures) to 500.
func saleErrorStatus(err error) (int, fiber.Map) {
	var valErr *service.ValidationError
	var dupErr *service.DuplicateProductError
	var unknownCustomer *service.UnknownCustomerError
	var unknownProduct *service.UnknownProductError

	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		return 400, fiber.Map{"error": err.Error(), "field": "items"}
	case errors.As(err, &valErr):
		return 400, fiber.Map{"error": err.Error(), "field": valErr.Field}
	case errors.As(err, &dupErr):
		return 400, fiber.Map{"error": err.Error(), "field": "items"}
	case errors.As(err, &unknownCustomer):
		return 400, fiber.Map{"error": err.Error(), "field": "customer_id"}
	case errors.As(err, &unknownProduct):
		return 400, fiber.Map{"error": err.Error(), "field": "items"}
	}
	return 500, fiber.Map{"error": err.Error()}
}

// CreateSale handles single-sale creation
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.service.CreateSale(userID, req)
	if err != nil {
		status, body := saleErrorStatus(err)
		return c.Status(status).JSON(body)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// ImportSalesRequest wraps the batch body
type ImportSalesRequest struct {
	Sales []service.CreateSaleRequest `json:"sales"`
}

// ImportSales handles bulk creation with per-row error isolation
// POST /api/v1/sales/import
func (h *SaleHandler) ImportSales(c *fiber.Ctx) error {
	var req ImportSalesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if len(req.Sales) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No sales to import"})
	}

	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	result := h.service.ImportSales(userID, req.Sales)

	// Full success 201, partial 207, nothing imported 400
	status := 201
	if len(result.Errors) > 0 {
		status = 207
		if len(result.ImportedIDs) == 0 {
			status = 400
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"message": fiberImportMessage(len(result.ImportedIDs), len(req.Sales)),
		"data":    result,
	})
}

func fiberImportMessage(imported, total int) string {
	if imported == total {
		return "All sales imported"
	}
	return "Some sales could not be imported"
}

// GetSales lists the caller's sales with optional filters
// GET /api/v1/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	filter := repository.SaleFilter{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 50),
	}

	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &t
		}
	}
	if v := c.Query("region"); v != "" {
		filter.Region = model.Region(v)
	}
	if v := c.Query("customer_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CustomerID = &id
		}
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CategoryID = &id
		}
	}

	sales, total, err := h.service.GetSales(userID, filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{
		"data": sales,
		"pagination": fiber.Map{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetSale returns one sale with its items, scoped to the caller
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.service.GetSaleByID(saleID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(sale)
}
