package service

import (
	"errors"
	"fmt"

	"go-sales-ws/internal/model"
	"go-sales-ws/internal/repository"
	"go-sales-ws/pkg/validator"

	"github.com/google/uuid"
)

// CatalogService maintains the reference data that sales are recorded
// against. The sales core itself never writes through here.
type CatalogService interface {
	CreateCustomer(req *model.Customer, userID string) error
	GetCustomers(filter repository.CustomerFilter) ([]model.Customer, error)
	CreateProduct(req *model.Product, userID string) error
	GetProducts(filter repository.ProductFilter) ([]model.Product, error)
	CreateCategory(req *model.Category, userID string) error
	GetCategories() ([]model.Category, error)
}

type catalogService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(cRepo repository.CustomerRepository, pRepo repository.ProductRepository, catRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		customerRepo: cRepo,
		productRepo:  pRepo,
		categoryRepo: catRepo,
	}
}

func (s *catalogService) CreateCustomer(req *model.Customer, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	return s.customerRepo.Create(req)
}

func (s *catalogService) GetCustomers(filter repository.CustomerFilter) ([]model.Customer, error) {
	return s.customerRepo.FindAll(filter)
}

func (s *catalogService) CreateProduct(req *model.Product, userID string) error {
	// 1. Field validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Product code must be unique
	existing, _ := s.productRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return errors.New("product code already exists")
	}

	// 3. Category must exist
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return errors.New("category not found")
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	return s.productRepo.Create(req)
}

func (s *catalogService) GetProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindAll(filter)
}

func (s *catalogService) CreateCategory(req *model.Category, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	return s.categoryRepo.Create(req)
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}
