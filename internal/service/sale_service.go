package service

import (
	"encoding/json"
	"fmt"

	"go-sales-ws/internal/model"
	"go-sales-ws/internal/repository"
	"go-sales-ws/internal/ws"

	"github.com/google/uuid"
)

type SaleService interface {
	CreateSale(userID uuid.UUID, req CreateSaleRequest) (*model.Sale, error)
	ImportSales(userID uuid.UUID, reqs []CreateSaleRequest) *ImportResult
	GetSales(userID uuid.UUID, filter repository.SaleFilter) ([]model.Sale, int64, error)
	GetSaleByID(id, userID uuid.UUID) (*model.Sale, error)
}

// ImportRowError records one failed import row; Row is the 1-based position
// in the submitted batch.
type ImportRowError struct {
	Row   int               `json:"row"`
	Input CreateSaleRequest `json:"input"`
	Error string            `json:"error"`
}

// ImportResult reports a batch import. Every submitted row lands in exactly
// one of the two lists, in input order.
type ImportResult struct {
	ImportedIDs []uuid.UUID      `json:"imported_ids"`
	Errors      []ImportRowError `json:"errors"`
}

type saleService struct {
	builder  *SaleBuilder
	saleRepo repository.SaleRepository
	wsHub    *ws.Hub
}

func NewSaleService(builder *SaleBuilder, saleRepo repository.SaleRepository, hub *ws.Hub) SaleService {
	return &saleService{
		builder:  builder,
		saleRepo: saleRepo,
		wsHub:    hub,
	}
}

func (s *saleService) CreateSale(userID uuid.UUID, req CreateSaleRequest) (*model.Sale, error) {
	// 1. Build the aggregate (validation + catalog resolution + total)
	sale, err := s.builder.Build(userID, req)
	if err != nil {
		return nil, err
	}

	// 2. Persist header + items atomically
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}

	// 3. Broadcast to connected dashboards
	s.broadcast(map[string]interface{}{
		"type":    "sale_created",
		"sale_id": sale.ID,
		"total":   sale.Total,
		"region":  sale.Region,
		"message": fmt.Sprintf("New sale of %s in %s", sale.Total.StringFixed(2), sale.Region),
	})

	return sale, nil
}

// ImportSales processes the batch sequentially with per-row isolation: a
// failed row is recorded and never aborts the batch, and rows already
// committed stay committed.
func (s *saleService) ImportSales(userID uuid.UUID, reqs []CreateSaleRequest) *ImportResult {
	result := &ImportResult{
		ImportedIDs: []uuid.UUID{},
		Errors:      []ImportRowError{},
	}

	for i, req := range reqs {
		sale, err := s.builder.Build(userID, req)
		if err == nil {
			err = s.saleRepo.Create(sale)
		}

		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{
				Row:   i + 1,
				Input: req,
				Error: err.Error(),
			})
			continue
		}

		result.ImportedIDs = append(result.ImportedIDs, sale.ID)
	}

	s.broadcast(map[string]interface{}{
		"type":     "import_completed",
		"imported": len(result.ImportedIDs),
		"failed":   len(result.Errors),
		"message":  fmt.Sprintf("%d of %d sales imported", len(result.ImportedIDs), len(reqs)),
	})

	return result
}

func (s *saleService) GetSales(userID uuid.UUID, filter repository.SaleFilter) ([]model.Sale, int64, error) {
	return s.saleRepo.FindAll(userID, filter)
}

func (s *saleService) GetSaleByID(id, userID uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id, userID)
}

func (s *saleService) broadcast(payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
