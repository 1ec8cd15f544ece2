package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

type stubStoreRepo struct {
	stores   map[uuid.UUID]*models.Store
	inBounds []models.Store
	updates  map[string]any
	status   *enums.StoreStatus
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: map[uuid.UUID]*models.Store{}}
}

func (s *stubStoreRepo) Create(ctx context.Context, store *models.Store) (*models.Store, error) {
	store.ID = uuid.New()
	s.stores[store.ID] = store
	return store, nil
}

func (s *stubStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, ok := s.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	if name, ok := updates["name"].(string); ok {
		s.stores[id].Name = name
	}
	return nil
}

func (s *stubStoreRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) error {
	s.status = &status
	s.stores[id].Status = status
	return nil
}

func (s *stubStoreRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var rows []models.Store
	for _, store := range s.stores {
		if store.OwnerID == ownerID {
			rows = append(rows, *store)
		}
	}
	return rows, nil
}

func (s *stubStoreRepo) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Store, int64, error) {
	var rows []models.Store
	for _, store := range s.stores {
		rows = append(rows, *store)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubStoreRepo) FindInBounds(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]models.Store, error) {
	return s.inBounds, nil
}

func storeFixture(t *testing.T) (*stubStoreRepo, Service) {
	t.Helper()
	repo := newStubStoreRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return repo, svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr, "expected app error, got %v", err)
	assert.Equal(t, code, appErr.Code())
}

func TestCreateStorePendingByDefault(t *testing.T) {
	_, svc := storeFixture(t)

	created, err := svc.Create(context.Background(), uuid.New(), CreateStoreInput{
		Name: "  Dosa Corner ",
		Type: enums.StoreTypeRestaurant,
		Address: AddressInput{
			Street:  "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560001",
			Lng:     77.59,
			Lat:     12.97,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dosa Corner", created.Name)
	assert.Equal(t, enums.StoreStatusPending, created.Status)
	assert.Equal(t, 77.59, created.Address.Location.Coordinates[0])
}

func TestCreateStoreRejectsUnknownType(t *testing.T) {
	_, svc := storeFixture(t)

	_, err := svc.Create(context.Background(), uuid.New(), CreateStoreInput{
		Name: "Mystery",
		Type: enums.StoreType("warehouse"),
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateStoreEnforcesOwnership(t *testing.T) {
	repo, svc := storeFixture(t)
	owner := uuid.New()
	store := &models.Store{OwnerID: owner, Name: "Original", Type: enums.StoreTypeRetail}
	repo.Create(context.Background(), store)

	name := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), store.ID, UpdateStoreInput{Name: &name})
	requireCode(t, err, pkgerrors.CodeForbidden)

	updated, err := svc.Update(context.Background(), owner, store.ID, UpdateStoreInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Name)
}

func TestNearbyFiltersAndSortsByDistance(t *testing.T) {
	repo, svc := storeFixture(t)
	repo.inBounds = []models.Store{
		{ID: uuid.New(), Name: "Far", Lng: 1.0, Lat: 0, Type: enums.StoreTypeRestaurant},
		{ID: uuid.New(), Name: "Near", Lng: 0.5, Lat: 0, Type: enums.StoreTypeRestaurant},
		{ID: uuid.New(), Name: "Outside", Lng: 2.0, Lat: 0, Type: enums.StoreTypeRestaurant},
	}

	results, err := svc.Nearby(context.Background(), NearbyQuery{Lng: 0, Lat: 0, RadiusKm: 150})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Near", results[0].Name)
	assert.Equal(t, "Far", results[1].Name)
	require.NotNil(t, results[0].DistanceKm)
	assert.InDelta(t, 55.6, *results[0].DistanceKm, 1.0)
	assert.InDelta(t, 111.2, *results[1].DistanceKm, 1.5)
}

func TestNearbyRejectsBadCoordinates(t *testing.T) {
	_, svc := storeFixture(t)

	_, err := svc.Nearby(context.Background(), NearbyQuery{Lng: 181, Lat: 0})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestNearbyDefaultsRadius(t *testing.T) {
	repo, svc := storeFixture(t)
	repo.inBounds = []models.Store{
		{ID: uuid.New(), Name: "Close", Lng: 0.01, Lat: 0, Type: enums.StoreTypeRetail},
		{ID: uuid.New(), Name: "TooFar", Lng: 0.5, Lat: 0, Type: enums.StoreTypeRetail},
	}

	results, err := svc.Nearby(context.Background(), NearbyQuery{Lng: 0, Lat: 0})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Close", results[0].Name)
}

func TestBrowseBuildsPage(t *testing.T) {
	repo, svc := storeFixture(t)
	for i := 0; i < 3; i++ {
		repo.Create(context.Background(), &models.Store{
			OwnerID: uuid.New(),
			Name:    "Store",
			Type:    enums.StoreTypeRetail,
			Status:  enums.StoreStatusActive,
		})
	}

	page, err := svc.Browse(context.Background(), pagination.Params{Page: 1, Limit: 2}, Filters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Page)
}

func TestSetStatusValidatesEnum(t *testing.T) {
	repo, svc := storeFixture(t)
	store := &models.Store{OwnerID: uuid.New(), Name: "Shop", Type: enums.StoreTypeRetail}
	repo.Create(context.Background(), store)

	_, err := svc.SetStatus(context.Background(), store.ID, enums.StoreStatus("frozen"))
	requireCode(t, err, pkgerrors.CodeValidation)

	updated, err := svc.SetStatus(context.Background(), store.ID, enums.StoreStatusActive)
	require.NoError(t, err)
	assert.Equal(t, enums.StoreStatusActive, updated.Status)
}
