package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"go-sales-ws/internal/model"
	"go-sales-ws/internal/repository"
	"go-sales-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubSaleService lets each test script the service outcome.
type stubSaleService struct {
	createSale   func(userID uuid.UUID, req service.CreateSaleRequest) (*model.Sale, error)
	getSale      func(id, userID uuid.UUID) (*model.Sale, error)
	importResult *service.ImportResult
}

func (s *stubSaleService) CreateSale(userID uuid.UUID, req service.CreateSaleRequest) (*model.Sale, error) {
	return s.createSale(userID, req)
}

func (s *stubSaleService) ImportSales(userID uuid.UUID, reqs []service.CreateSaleRequest) *service.ImportResult {
	return s.importResult
}

func (s *stubSaleService) GetSales(userID uuid.UUID, filter repository.SaleFilter) ([]model.Sale, int64, error) {
	return nil, 0, nil
}

func (s *stubSaleService) GetSaleByID(id, userID uuid.UUID) (*model.Sale, error) {
	if s.getSale == nil {
		return nil, fmt.Errorf("not found")
	}
	return s.getSale(id, userID)
}

func newTestApp(svc service.SaleService) *fiber.App {
	app := fiber.New()
	h := NewSaleHandler(svc)

	// Stand-in for RequireAuth: inject the owner id
	authed := func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return c.Next()
	}

	app.Post("/sales", authed, h.CreateSale)
	app.Post("/sales/import", authed, h.ImportSales)
	app.Get("/sales/:id", authed, h.GetSale)
	return app
}

func getStatus(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}

func sampleRequest() service.CreateSaleRequest {
	return service.CreateSaleRequest{
		CustomerID: uuid.New(),
		Region:     model.RegionSouth,
		SoldAt:     time.Now(),
		Items:      []service.SaleItemRequest{{ProductID: uuid.New(), Quantity: 1}},
	}
}

func TestCreateSaleReturns201(t *testing.T) {
	svc := &stubSaleService{
		createSale: func(userID uuid.UUID, req service.CreateSaleRequest) (*model.Sale, error) {
			sale := &model.Sale{Total: decimal.RequireFromString("25.00")}
			sale.ID = uuid.New()
			return sale, nil
		},
	}

	status := postJSON(t, newTestApp(svc), "/sales", sampleRequest())
	assert.Equal(t, 201, status)
}

func TestCreateSaleMapsBuildErrorsTo400(t *testing.T) {
	cases := []error{
		service.ErrEmptyOrder,
		&service.ValidationError{Field: "CreateSaleRequest.Region", Tag: "oneof"},
		&service.DuplicateProductError{ProductIDs: []uuid.UUID{uuid.New()}},
		&service.UnknownCustomerError{CustomerID: uuid.New()},
		&service.UnknownProductError{ProductIDs: []uuid.UUID{uuid.New()}},
	}

	for _, buildErr := range cases {
		svc := &stubSaleService{
			createSale: func(userID uuid.UUID, req service.CreateSaleRequest) (*model.Sale, error) {
				return nil, buildErr
			},
		}

		status := postJSON(t, newTestApp(svc), "/sales", sampleRequest())
		assert.Equal(t, 400, status, "error %v must map to 400", buildErr)
	}
}

func TestCreateSaleMapsStoreFailureTo500(t *testing.T) {
	svc := &stubSaleService{
		createSale: func(userID uuid.UUID, req service.CreateSaleRequest) (*model.Sale, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}

	status := postJSON(t, newTestApp(svc), "/sales", sampleRequest())
	assert.Equal(t, 500, status)
}

func TestGetSaleReturns404OnlyForMissingRecord(t *testing.T) {
	missing := &stubSaleService{
		getSale: func(id, userID uuid.UUID) (*model.Sale, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	status := getStatus(t, newTestApp(missing), "/sales/"+uuid.New().String())
	assert.Equal(t, 404, status)

	broken := &stubSaleService{
		getSale: func(id, userID uuid.UUID) (*model.Sale, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}
	status = getStatus(t, newTestApp(broken), "/sales/"+uuid.New().String())
	assert.Equal(t, 500, status)
}

func TestImportSalesStatusCodes(t *testing.T) {
	id := uuid.New()
	row := sampleRequest()

	cases := []struct {
		name     string
		result   *service.ImportResult
		expected int
	}{
		{
			name:     "full success",
			result:   &service.ImportResult{ImportedIDs: []uuid.UUID{id}, Errors: []service.ImportRowError{}},
			expected: 201,
		},
		{
			name: "partial success",
			result: &service.ImportResult{
				ImportedIDs: []uuid.UUID{id},
				Errors:      []service.ImportRowError{{Row: 2, Error: "product not found"}},
			},
			expected: 207,
		},
		{
			name: "all rows failed",
			result: &service.ImportResult{
				ImportedIDs: []uuid.UUID{},
				Errors:      []service.ImportRowError{{Row: 1, Error: "customer not found"}},
			},
			expected: 400,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubSaleService{importResult: tc.result}
			body := ImportSalesRequest{Sales: []service.CreateSaleRequest{row}}

			status := postJSON(t, newTestApp(svc), "/sales/import", body)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestImportSalesRejectsEmptyBatch(t *testing.T) {
	svc := &stubSaleService{}
	body := ImportSalesRequest{Sales: []service.CreateSaleRequest{}}

	status := postJSON(t, newTestApp(svc), "/sales/import", body)
	assert.Equal(t, 400, status)
}
