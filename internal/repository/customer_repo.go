package repository

import (
	"go-sales-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(filter CustomerFilter) ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
}

// CustomerFilter holds the optional list predicates
type CustomerFilter struct {
	Search string
	Gender model.Gender
	AgeMin *int
	AgeMax *int
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll(filter CustomerFilter) ([]model.Customer, error) {
	var customers []model.Customer

	// Fold optional predicates onto the query
	q := r.db.Model(&model.Customer{})
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.AgeMin != nil {
		q = q.Where("age >= ?", *filter.AgeMin)
	}
	if filter.AgeMax != nil {
		q = q.Where("age <= ?", *filter.AgeMax)
	}

	err := q.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
