package service

import (
	"errors"

	"go-sales-ws/internal/model"
	"go-sales-ws/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogResolver is the sales core's only read dependency: canonical
// customer and product attributes, looked up before any write.
type CatalogResolver interface {
	// ResolveCustomer returns nil (no error) when the customer does not exist.
	ResolveCustomer(id uuid.UUID) (*model.Customer, error)
	// ResolveProducts batches the lookup in one query; ids not found are
	// simply absent from the map. The caller decides whether that is fatal.
	ResolveProducts(ids []uuid.UUID) (map[uuid.UUID]model.Product, error)
}

type catalogResolver struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

func NewCatalogResolver(cRepo repository.CustomerRepository, pRepo repository.ProductRepository) CatalogResolver {
	return &catalogResolver{
		customerRepo: cRepo,
		productRepo:  pRepo,
	}
}

func (r *catalogResolver) ResolveCustomer(id uuid.UUID) (*model.Customer, error) {
	customer, err := r.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

func (r *catalogResolver) ResolveProducts(ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	products, err := r.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		resolved[p.ID] = p
	}
	return resolved, nil
}
