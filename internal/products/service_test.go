package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

type stubProductRepo struct {
	products map[uuid.UUID]*models.Product
	updates  map[uuid.UUID]map[string]any
	deleted  []uuid.UUID
	listed   []models.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: map[uuid.UUID]*models.Product{},
		updates:  map[uuid.UUID]map[string]any{},
	}
}

func (s *stubProductRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (s *stubProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates[id] = updates
	if name, ok := updates["name"].(string); ok {
		s.products[id].Name = name
	}
	if price, ok := updates["price"].(float64); ok {
		s.products[id].Price = price
	}
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.products, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProductRepo) List(_ context.Context, _ pagination.Params, _ Filters) ([]models.Product, int64, error) {
	return s.listed, int64(len(s.listed)), nil
}

type stubStoreLookup struct {
	stores map[uuid.UUID]*models.Store
}

func (s *stubStoreLookup) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	store, ok := s.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func newProductService(t *testing.T, repo *stubProductRepo, stores *stubStoreLookup) Service {
	t.Helper()
	svc, err := NewService(repo, stores)
	require.NoError(t, err)
	return svc
}

func requireProductCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}

func TestCreateProductDefaultsInventoryTracking(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	repo := newStubProductRepo()
	lookup := &stubStoreLookup{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: ownerID},
	}}
	svc := newProductService(t, repo, lookup)

	dto, err := svc.Create(context.Background(), ownerID, storeID, CreateProductInput{
		Name:          "  Masala Dosa ",
		Price:         120,
		StockQuantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Masala Dosa", dto.Name)
	assert.True(t, dto.TrackInventory)
	assert.Equal(t, 10, dto.LowStockThreshold)
	assert.True(t, dto.IsAvailable)
	assert.True(t, dto.IsInStock)
	assert.True(t, dto.IsLowStock)
}

func TestCreateProductRejectsForeignStore(t *testing.T) {
	storeID := uuid.New()
	repo := newStubProductRepo()
	lookup := &stubStoreLookup{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: uuid.New()},
	}}
	svc := newProductService(t, repo, lookup)

	_, err := svc.Create(context.Background(), uuid.New(), storeID, CreateProductInput{Name: "Idli", Price: 40})
	requireProductCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateProductUnknownStore(t *testing.T) {
	repo := newStubProductRepo()
	lookup := &stubStoreLookup{stores: map[uuid.UUID]*models.Store{}}
	svc := newProductService(t, repo, lookup)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateProductInput{Name: "Idli", Price: 40})
	requireProductCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateProductRejectsCrossStoreID(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	otherStoreID := uuid.New()
	repo := newStubProductRepo()
	productID := uuid.New()
	repo.products[productID] = &models.Product{ID: productID, StoreID: otherStoreID, Name: "Vada", Price: 30}
	lookup := &stubStoreLookup{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: ownerID},
	}}
	svc := newProductService(t, repo, lookup)

	name := "Medu Vada"
	_, err := svc.Update(context.Background(), ownerID, storeID, productID, UpdateProductInput{Name: &name})
	requireProductCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateProductAppliesPatch(t *testing.T) {
	ownerID := uuid.New()
	storeID := uuid.New()
	repo := newStubProductRepo()
	productID := uuid.New()
	repo.products[productID] = &models.Product{ID: productID, StoreID: storeID, Name: "Vada", Price: 30}
	lookup := &stubStoreLookup{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: ownerID},
	}}
	svc := newProductService(t, repo, lookup)

	name := "Medu Vada"
	price := 35.0
	dto, err := svc.Update(context.Background(), ownerID, storeID, productID, UpdateProductInput{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Medu Vada", dto.Name)
	assert.InDelta(t, 35.0, dto.Price, 0.001)
	assert.Contains(t, repo.updates[productID], "name")
	assert.Contains(t, repo.updates[productID], "price")
}

func TestDeleteProductEnforcesOwnership(t *testing.T) {
	storeID := uuid.New()
	repo := newStubProductRepo()
	productID := uuid.New()
	repo.products[productID] = &models.Product{ID: productID, StoreID: storeID}
	lookup := &stubStoreLookup{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: uuid.New()},
	}}
	svc := newProductService(t, repo, lookup)

	err := svc.Delete(context.Background(), uuid.New(), storeID, productID)
	requireProductCode(t, err, pkgerrors.CodeForbidden)
	assert.Empty(t, repo.deleted)
}

func TestBrowseComputesDiscountedPrice(t *testing.T) {
	repo := newStubProductRepo()
	repo.listed = []models.Product{
		{ID: uuid.New(), Name: "Thali", Price: 100, Discount: 20},
		{ID: uuid.New(), Name: "Chai", Price: 15},
	}
	svc := newProductService(t, repo, &stubStoreLookup{stores: map[uuid.UUID]*models.Store{}})

	page, err := svc.Browse(context.Background(), pagination.Params{Page: 1, Limit: 10}, Filters{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.InDelta(t, 80.0, page.Items[0].DiscountedPrice, 0.001)
	assert.InDelta(t, 15.0, page.Items[1].DiscountedPrice, 0.001)
}
