package service

import (
	"testing"
	"time"

	"go-sales-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	customers map[uuid.UUID]model.Customer
	products  map[uuid.UUID]model.Product
}

func (f *fakeResolver) ResolveCustomer(id uuid.UUID) (*model.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeResolver) ResolveProducts(ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	resolved := make(map[uuid.UUID]model.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			resolved[id] = p
		}
	}
	return resolved, nil
}

func newCatalog() (*fakeResolver, model.Customer, model.Product, model.Product) {
	customer := model.Customer{Name: "Maria Silva", Gender: model.GenderFemale, Age: 34}
	customer.ID = uuid.New()

	categoryID := uuid.New()

	productA := model.Product{
		Code:       "SKU-A",
		Name:       "Coffee Beans 1kg",
		UnitPrice:  decimal.RequireFromString("10.00"),
		CategoryID: categoryID,
	}
	productA.ID = uuid.New()

	productB := model.Product{
		Code:       "SKU-B",
		Name:       "Filter Paper",
		UnitPrice:  decimal.RequireFromString("5.00"),
		CategoryID: categoryID,
	}
	productB.ID = uuid.New()

	resolver := &fakeResolver{
		customers: map[uuid.UUID]model.Customer{customer.ID: customer},
		products: map[uuid.UUID]model.Product{
			productA.ID: productA,
			productB.ID: productB,
		},
	}
	return resolver, customer, productA, productB
}

func validRequest(customerID uuid.UUID, items ...SaleItemRequest) CreateSaleRequest {
	return CreateSaleRequest{
		CustomerID: customerID,
		Region:     model.RegionSoutheast,
		SoldAt:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Items:      items,
	}
}

func TestBuildComputesExactTotal(t *testing.T) {
	resolver, customer, productA, productB := newCatalog()
	builder := NewSaleBuilder(resolver)
	userID := uuid.New()

	req := validRequest(customer.ID,
		SaleItemRequest{ProductID: productA.ID, Quantity: 2},
		SaleItemRequest{ProductID: productB.ID, Quantity: 1},
	)

	sale, err := builder.Build(userID, req)
	require.NoError(t, err)

	assert.True(t, sale.Total.Equal(decimal.RequireFromString("25.00")),
		"expected 25.00, got %s", sale.Total)
	assert.Len(t, sale.Items, 2)
	assert.True(t, sale.Items[0].Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, sale.Items[1].Subtotal.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, userID, sale.UserID)
	assert.Equal(t, uuid.Nil, sale.ID, "id must be left for the store to assign")
}

func TestBuildTotalHasNoFloatDrift(t *testing.T) {
	resolver, customer, _, _ := newCatalog()

	// 0.10 summed many times is the classic float trap
	product := model.Product{
		Code:       "SKU-C",
		Name:       "Sticker",
		UnitPrice:  decimal.RequireFromString("0.10"),
		CategoryID: uuid.New(),
	}
	product.ID = uuid.New()
	resolver.products[product.ID] = product

	builder := NewSaleBuilder(resolver)
	req := validRequest(customer.ID, SaleItemRequest{ProductID: product.ID, Quantity: 3})

	sale, err := builder.Build(uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, "0.30", sale.Total.StringFixed(2))
}

func TestBuildSnapshotsCustomerAndProduct(t *testing.T) {
	resolver, customer, productA, _ := newCatalog()
	builder := NewSaleBuilder(resolver)

	req := validRequest(customer.ID, SaleItemRequest{ProductID: productA.ID, Quantity: 4})

	sale, err := builder.Build(uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, customer.Name, sale.CustomerName)
	assert.Equal(t, customer.Gender, sale.CustomerGender)
	assert.Equal(t, customer.Age, sale.CustomerAge)

	item := sale.Items[0]
	assert.Equal(t, productA.Name, item.ProductName)
	assert.True(t, productA.UnitPrice.Equal(item.UnitPrice))
	assert.Equal(t, productA.CategoryID, item.CategoryID)
	assert.Equal(t, 4, item.Quantity)
}

func TestBuildIsDeterministic(t *testing.T) {
	resolver, customer, productA, productB := newCatalog()
	builder := NewSaleBuilder(resolver)
	userID := uuid.New()

	req := validRequest(customer.ID,
		SaleItemRequest{ProductID: productA.ID, Quantity: 2},
		SaleItemRequest{ProductID: productB.ID, Quantity: 3},
	)

	first, err := builder.Build(userID, req)
	require.NoError(t, err)
	second, err := builder.Build(userID, req)
	require.NoError(t, err)

	assert.Equal(t, first.CustomerName, second.CustomerName)
	assert.True(t, first.Total.Equal(second.Total))
	require.Len(t, second.Items, len(first.Items))
	for i := range first.Items {
		assert.True(t, first.Items[i].UnitPrice.Equal(second.Items[i].UnitPrice))
		assert.True(t, first.Items[i].Subtotal.Equal(second.Items[i].Subtotal))
	}
}

func TestBuildRejectsEmptyOrder(t *testing.T) {
	resolver, customer, _, _ := newCatalog()
	builder := NewSaleBuilder(resolver)

	_, err := builder.Build(uuid.New(), validRequest(customer.ID))
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestBuildRejectsDuplicateProducts(t *testing.T) {
	resolver, customer, productA, _ := newCatalog()
	builder := NewSaleBuilder(resolver)

	// Same product twice with valid quantities is still rejected
	req := validRequest(customer.ID,
		SaleItemRequest{ProductID: productA.ID, Quantity: 1},
		SaleItemRequest{ProductID: productA.ID, Quantity: 2},
	)

	_, err := builder.Build(uuid.New(), req)

	var dupErr *DuplicateProductError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, []uuid.UUID{productA.ID}, dupErr.ProductIDs)
}

func TestBuildRejectsUnknownCustomer(t *testing.T) {
	resolver, _, productA, _ := newCatalog()
	builder := NewSaleBuilder(resolver)
	ghost := uuid.New()

	req := validRequest(ghost, SaleItemRequest{ProductID: productA.ID, Quantity: 1})

	_, err := builder.Build(uuid.New(), req)

	var custErr *UnknownCustomerError
	require.ErrorAs(t, err, &custErr)
	assert.Equal(t, ghost, custErr.CustomerID)
}

func TestBuildListsEveryUnknownProduct(t *testing.T) {
	resolver, customer, productA, _ := newCatalog()
	builder := NewSaleBuilder(resolver)

	missing1 := uuid.New()
	missing2 := uuid.New()
	req := validRequest(customer.ID,
		SaleItemRequest{ProductID: productA.ID, Quantity: 1},
		SaleItemRequest{ProductID: missing1, Quantity: 1},
		SaleItemRequest{ProductID: missing2, Quantity: 1},
	)

	_, err := builder.Build(uuid.New(), req)

	var prodErr *UnknownProductError
	require.ErrorAs(t, err, &prodErr)
	assert.Equal(t, []uuid.UUID{missing1, missing2}, prodErr.ProductIDs,
		"all missing ids must be named, not just the first")
}

func TestBuildRejectsInvalidRegion(t *testing.T) {
	resolver, customer, productA, _ := newCatalog()
	builder := NewSaleBuilder(resolver)

	req := validRequest(customer.ID, SaleItemRequest{ProductID: productA.ID, Quantity: 1})
	req.Region = "Atlantis"

	_, err := builder.Build(uuid.New(), req)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Field, "Region")
	assert.Equal(t, "oneof", valErr.Tag)
}

func TestBuildRejectsZeroQuantity(t *testing.T) {
	resolver, customer, productA, _ := newCatalog()
	builder := NewSaleBuilder(resolver)

	req := validRequest(customer.ID, SaleItemRequest{ProductID: productA.ID, Quantity: 0})

	_, err := builder.Build(uuid.New(), req)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Field, "Quantity")
}
