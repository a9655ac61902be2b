package service

import (
	"time"

	"go-sales-ws/internal/repository"

	"github.com/google/uuid"
)

type AnalyticsService interface {
	GetOverview(userID uuid.UUID, from, to *time.Time) (*repository.SalesOverview, error)
	GetSalesByMonth(userID uuid.UUID, months int) ([]repository.MonthlySales, error)
	GetSalesByRegion(userID uuid.UUID, from, to *time.Time) ([]repository.RegionSales, error)
	GetSalesByCategory(userID uuid.UUID, from, to *time.Time) ([]repository.CategorySales, error)
	GetSalesByGender(userID uuid.UUID, from, to *time.Time) ([]repository.GenderSales, error)
	GetTopProducts(userID uuid.UUID, limit int) ([]repository.ProductSales, error)
}

type analyticsService struct {
	saleRepo repository.SaleRepository
}

func NewAnalyticsService(saleRepo repository.SaleRepository) AnalyticsService {
	return &analyticsService{saleRepo: saleRepo}
}

func (s *analyticsService) GetOverview(userID uuid.UUID, from, to *time.Time) (*repository.SalesOverview, error) {
	return s.saleRepo.GetOverview(userID, from, to)
}

func (s *analyticsService) GetSalesByMonth(userID uuid.UUID, months int) ([]repository.MonthlySales, error) {
	if months < 1 {
		months = 12
	}
	return s.saleRepo.GetSalesByMonth(userID, months)
}

func (s *analyticsService) GetSalesByRegion(userID uuid.UUID, from, to *time.Time) ([]repository.RegionSales, error) {
	return s.saleRepo.GetSalesByRegion(userID, from, to)
}

func (s *analyticsService) GetSalesByCategory(userID uuid.UUID, from, to *time.Time) ([]repository.CategorySales, error) {
	return s.saleRepo.GetSalesByCategory(userID, from, to)
}

func (s *analyticsService) GetSalesByGender(userID uuid.UUID, from, to *time.Time) ([]repository.GenderSales, error) {
	return s.saleRepo.GetSalesByGender(userID, from, to)
}

func (s *analyticsService) GetTopProducts(userID uuid.UUID, limit int) ([]repository.ProductSales, error) {
	return s.saleRepo.GetTopProducts(userID, limit)
}
