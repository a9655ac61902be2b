package repository

import (
	"time"

	"go-sales-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll(userID uuid.UUID, filter SaleFilter) ([]model.Sale, int64, error)
	FindByID(id, userID uuid.UUID) (*model.Sale, error)
	GetOverview(userID uuid.UUID, from, to *time.Time) (*SalesOverview, error)
	GetSalesByMonth(userID uuid.UUID, months int) ([]MonthlySales, error)
	GetSalesByRegion(userID uuid.UUID, from, to *time.Time) ([]RegionSales, error)
	GetSalesByCategory(userID uuid.UUID, from, to *time.Time) ([]CategorySales, error)
	GetSalesByGender(userID uuid.UUID, from, to *time.Time) ([]GenderSales, error)
	GetTopProducts(userID uuid.UUID, limit int) ([]ProductSales, error)
}

// SaleFilter holds the optional list predicates folded onto the query
type SaleFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Region     model.Region
	CustomerID *uuid.UUID
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

// SalesOverview for dashboard header cards
type SalesOverview struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	SaleCount     int64           `json:"sale_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	CustomerCount int64           `json:"customer_count"`
}

// MonthlySales for the month-over-month chart
type MonthlySales struct {
	Month     string          `json:"month"` // MM/YYYY
	Total     decimal.Decimal `json:"total"`
	SaleCount int64           `json:"sale_count"`
}

type RegionSales struct {
	Region    model.Region    `json:"region"`
	Total     decimal.Decimal `json:"total"`
	SaleCount int64           `json:"sale_count"`
}

type CategorySales struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Quantity     int64           `json:"quantity"`
}

type GenderSales struct {
	Gender    model.Gender    `json:"gender"`
	Total     decimal.Decimal `json:"total"`
	SaleCount int64           `json:"sale_count"`
}

type ProductSales struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create persists the sale header and all its items as one atomic unit.
// Either every row exists after return, or none does; the underlying error
// is propagated after rollback.
func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Header first; item rows keyed to the generated id
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return err
		}

		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
		}

		if err := tx.Create(&sale.Items).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *saleRepo) applyFilter(q *gorm.DB, userID uuid.UUID, filter SaleFilter) *gorm.DB {
	q = q.Where("user_id = ?", userID)

	if filter.DateFrom != nil {
		q = q.Where("sold_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("sold_at <= ?", *filter.DateTo)
	}
	if filter.Region != "" {
		q = q.Where("region = ?", filter.Region)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.CategoryID != nil {
		q = q.Where(`EXISTS (
			SELECT 1 FROM sale_items si
			WHERE si.sale_id = sales.id AND si.category_id = ?
		)`, *filter.CategoryID)
	}

	return q
}

func (r *saleRepo) FindAll(userID uuid.UUID, filter SaleFilter) ([]model.Sale, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var total int64
	if err := r.applyFilter(r.db.Model(&model.Sale{}), userID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	err := r.applyFilter(r.db.Model(&model.Sale{}), userID, filter).
		Preload("Items").
		Order("sold_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepo) FindByID(id, userID uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items").First(&sale, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) rangeQuery(userID uuid.UUID, from, to *time.Time) *gorm.DB {
	q := r.db.Model(&model.Sale{}).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("sold_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("sold_at <= ?", *to)
	}
	return q
}

func (r *saleRepo) GetOverview(userID uuid.UUID, from, to *time.Time) (*SalesOverview, error) {
	var overview SalesOverview
	err := r.rangeQuery(userID, from, to).
		Select(`
			COALESCE(SUM(total), 0) as total_revenue,
			COUNT(*) as sale_count,
			COALESCE(AVG(total), 0) as average_ticket,
			COUNT(DISTINCT customer_id) as customer_count
		`).
		Scan(&overview).Error
	return &overview, err
}

func (r *saleRepo) GetSalesByMonth(userID uuid.UUID, months int) ([]MonthlySales, error) {
	var results []MonthlySales
	err := r.db.Model(&model.Sale{}).
		Select(`
			TO_CHAR(sold_at, 'MM/YYYY') as month,
			COALESCE(SUM(total), 0) as total,
			COUNT(*) as sale_count
		`).
		Where("user_id = ? AND sold_at >= ?", userID, time.Now().AddDate(0, -months, 0)).
		Group("TO_CHAR(sold_at, 'MM/YYYY'), DATE_TRUNC('month', sold_at)").
		Order("DATE_TRUNC('month', sold_at) ASC").
		Scan(&results).Error
	return results, err
}

func (r *saleRepo) GetSalesByRegion(userID uuid.UUID, from, to *time.Time) ([]RegionSales, error) {
	var results []RegionSales
	err := r.rangeQuery(userID, from, to).
		Select(`
			region,
			COALESCE(SUM(total), 0) as total,
			COUNT(*) as sale_count
		`).
		Group("region").
		Order("total DESC").
		Scan(&results).Error
	return results, err
}

func (r *saleRepo) GetSalesByCategory(userID uuid.UUID, from, to *time.Time) ([]CategorySales, error) {
	var results []CategorySales
	q := r.db.Model(&model.SaleItem{}).
		Select(`
			sale_items.category_id,
			c.name as category_name,
			COALESCE(SUM(sale_items.subtotal), 0) as total,
			COALESCE(SUM(sale_items.quantity), 0) as quantity
		`).
		Joins("JOIN sales s ON s.id = sale_items.sale_id").
		Joins("LEFT JOIN categories c ON c.id = sale_items.category_id").
		Where("s.user_id = ?", userID)

	if from != nil {
		q = q.Where("s.sold_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("s.sold_at <= ?", *to)
	}

	err := q.Group("sale_items.category_id, c.name").
		Order("total DESC").
		Scan(&results).Error
	return results, err
}

func (r *saleRepo) GetSalesByGender(userID uuid.UUID, from, to *time.Time) ([]GenderSales, error) {
	var results []GenderSales
	err := r.rangeQuery(userID, from, to).
		Select(`
			customer_gender as gender,
			COALESCE(SUM(total), 0) as total,
			COUNT(*) as sale_count
		`).
		Group("customer_gender").
		Scan(&results).Error
	return results, err
}

func (r *saleRepo) GetTopProducts(userID uuid.UUID, limit int) ([]ProductSales, error) {
	if limit < 1 {
		limit = 10
	}

	var results []ProductSales
	err := r.db.Model(&model.SaleItem{}).
		Select(`
			sale_items.product_id,
			sale_items.product_name,
			COALESCE(SUM(sale_items.quantity), 0) as quantity,
			COALESCE(SUM(sale_items.subtotal), 0) as total
		`).
		Joins("JOIN sales s ON s.id = sale_items.sale_id").
		Where("s.user_id = ?", userID).
		Group("sale_items.product_id, sale_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
