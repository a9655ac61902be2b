package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-sales-ws/internal/model"
	"go-sales-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyOrder rejects sales with no items at all.
var ErrEmptyOrder = errors.New("sale must contain at least one item")

// ValidationError reports a request field that failed basic validation.
// It is caller-fault input, same as the rest of the build taxonomy.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// DuplicateProductError rejects sales that list the same product twice,
// even when both entries carry valid quantities.
type DuplicateProductError struct {
	ProductIDs []uuid.UUID
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product(s) in sale: %s", joinIDs(e.ProductIDs))
}

// UnknownCustomerError means the referenced customer is not in the catalog.
type UnknownCustomerError struct {
	CustomerID uuid.UUID
}

func (e *UnknownCustomerError) Error() string {
	return fmt.Sprintf("customer %s not found", e.CustomerID)
}

// UnknownProductError lists every requested product id missing from the
// catalog, not just the first one.
type UnknownProductError struct {
	ProductIDs []uuid.UUID
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product(s) not found: %s", joinIDs(e.ProductIDs))
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

// SaleItemRequest is one raw product + quantity line from the client.
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// CreateSaleRequest is the raw input for a single sale. Any client-supplied
// total is ignored; the builder always recomputes it.
type CreateSaleRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" validate:"uuid_required"`
	Region     model.Region      `json:"region" validate:"required,oneof=North Northeast Midwest Southeast South"`
	SoldAt     time.Time         `json:"sold_at" validate:"required"`
	Items      []SaleItemRequest `json:"items" validate:"dive"`
}

// SaleBuilder turns a raw request into a persistence-ready Sale aggregate:
// validates uniqueness, resolves catalog references, snapshots customer and
// product attributes and computes the authoritative total. No side effects
// beyond the two resolver reads.
type SaleBuilder struct {
	resolver CatalogResolver
}

func NewSaleBuilder(resolver CatalogResolver) *SaleBuilder {
	return &SaleBuilder{resolver: resolver}
}

func (b *SaleBuilder) Build(userID uuid.UUID, req CreateSaleRequest) (*model.Sale, error) {
	// 1. A sale needs at least one item
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	// 2. Field validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, &ValidationError{Field: firstErr.FailedField, Tag: firstErr.Tag}
	}

	// 3. Duplicate check on the raw requested ids, before resolution
	if dups := duplicateIDs(req.Items); len(dups) > 0 {
		return nil, &DuplicateProductError{ProductIDs: dups}
	}

	// 4. Resolve customer
	customer, err := b.resolver.ResolveCustomer(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &UnknownCustomerError{CustomerID: req.CustomerID}
	}

	// 5. Resolve the full product set in one batched call; the whole build
	// fails naming every missing id, partial matches are never dropped
	ids := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}

	products, err := b.resolver.ResolveProducts(ids)
	if err != nil {
		return nil, err
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &UnknownProductError{ProductIDs: missing}
	}

	// 6. Normalize items and sum the total with decimal arithmetic
	items := make([]model.SaleItem, len(req.Items))
	total := decimal.Zero
	for i, itemReq := range req.Items {
		item, err := normalizeItem(itemReq, products)
		if err != nil {
			// Existence was checked above, so this cannot happen here
			return nil, err
		}
		items[i] = item
		total = total.Add(item.Subtotal)
	}

	// 7. Assemble with customer snapshot; id is assigned on persist
	return &model.Sale{
		UserID:         userID,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerGender: customer.Gender,
		CustomerAge:    customer.Age,
		Region:         req.Region,
		SoldAt:         req.SoldAt,
		Total:          total,
		Items:          items,
	}, nil
}

// duplicateIDs reports every product id appearing more than once,
// in the order it first repeats.
func duplicateIDs(items []SaleItemRequest) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(items))
	reported := make(map[uuid.UUID]bool)
	var dups []uuid.UUID

	for _, item := range items {
		if seen[item.ProductID] && !reported[item.ProductID] {
			dups = append(dups, item.ProductID)
			reported[item.ProductID] = true
		}
		seen[item.ProductID] = true
	}
	return dups
}

// normalizeItem prices one requested line against the resolved catalog data.
// Pure function; the returned item carries denormalized snapshots so later
// catalog changes never touch recorded sales.
func normalizeItem(req SaleItemRequest, products map[uuid.UUID]model.Product) (model.SaleItem, error) {
	product, ok := products[req.ProductID]
	if !ok {
		return model.SaleItem{}, &UnknownProductError{ProductIDs: []uuid.UUID{req.ProductID}}
	}

	subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	return model.SaleItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   product.UnitPrice,
		CategoryID:  product.CategoryID,
		Subtotal:    subtotal,
	}, nil
}
