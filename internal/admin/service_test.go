package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

type stubUserRepo struct {
	counts        map[enums.UserRole]int64
	recent        []models.User
	statusUpdates map[uuid.UUID]enums.UserStatus
}

func (s *stubUserRepo) List(ctx context.Context, params pagination.Params, filters users.Filters) (*pagination.Page[users.UserDTO], error) {
	page := pagination.NewPage([]users.UserDTO{}, 0, params)
	return &page, nil
}

func (s *stubUserRepo) CountByRole(ctx context.Context, role enums.UserRole) (int64, error) {
	return s.counts[role], nil
}

func (s *stubUserRepo) FindRecent(ctx context.Context, limit int) ([]models.User, error) {
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error {
	if s.statusUpdates == nil {
		s.statusUpdates = map[uuid.UUID]enums.UserStatus{}
	}
	s.statusUpdates[id] = status
	return nil
}

type stubStoreRepo struct {
	count         int64
	recent        []models.Store
	statusUpdates map[uuid.UUID]enums.StoreStatus
}

func (s *stubStoreRepo) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

func (s *stubStoreRepo) FindRecent(ctx context.Context, limit int) ([]models.Store, error) {
	return s.recent, nil
}

func (s *stubStoreRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) error {
	if s.statusUpdates == nil {
		s.statusUpdates = map[uuid.UUID]enums.StoreStatus{}
	}
	s.statusUpdates[id] = status
	return nil
}

type stubOrderRepo struct {
	count  int64
	recent []models.Order
	totals []float64
}

func (s *stubOrderRepo) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

func (s *stubOrderRepo) FindRecent(ctx context.Context, limit int) ([]models.Order, error) {
	return s.recent, nil
}

func (s *stubOrderRepo) DeliveredTotalsBetween(ctx context.Context, from, to *time.Time) ([]float64, error) {
	return s.totals, nil
}

func newAdminFixture(t *testing.T) (Service, *stubUserRepo, *stubStoreRepo, *stubOrderRepo) {
	t.Helper()
	userRepo := &stubUserRepo{counts: map[enums.UserRole]int64{
		enums.UserRoleCustomer: 120,
		enums.UserRoleMerchant: 15,
		enums.UserRoleDelivery: 8,
		enums.UserRoleAdmin:    2,
	}}
	storeRepo := &stubStoreRepo{count: 18}
	orderRepo := &stubOrderRepo{count: 450, totals: []float64{115.10, 84.90}}
	svc, err := NewService(userRepo, storeRepo, orderRepo)
	require.NoError(t, err)
	return svc, userRepo, storeRepo, orderRepo
}

func TestStats(t *testing.T) {
	svc, _, _, _ := newAdminFixture(t)

	stats, err := svc.Stats(context.Background(), StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(120), stats.Users.Customers)
	assert.Equal(t, int64(145), stats.Users.Total)
	assert.Equal(t, int64(18), stats.Stores)
	assert.Equal(t, int64(450), stats.Orders)
	assert.Equal(t, 200.0, stats.Revenue)
}

func TestRecentActivityLimitsToFive(t *testing.T) {
	svc, userRepo, storeRepo, orderRepo := newAdminFixture(t)
	for i := 0; i < 7; i++ {
		userRepo.recent = append(userRepo.recent, models.User{ID: uuid.New(), Role: enums.UserRoleCustomer})
	}
	storeRepo.recent = []models.Store{{ID: uuid.New(), Name: "Fresh Mart"}}
	orderRepo.recent = []models.Order{{ID: uuid.New(), OrderNumber: "ORD2601100001"}}

	activity, err := svc.RecentActivity(context.Background())
	require.NoError(t, err)
	assert.Len(t, activity.Users, 5)
	assert.Len(t, activity.Stores, 1)
	assert.Len(t, activity.Orders, 1)
}

func TestSetUserStatus(t *testing.T) {
	svc, userRepo, _, _ := newAdminFixture(t)
	userID := uuid.New()

	err := svc.SetUserStatus(context.Background(), userID, enums.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, enums.UserStatusSuspended, userRepo.statusUpdates[userID])

	err = svc.SetUserStatus(context.Background(), userID, enums.UserStatus("banished"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSetStoreStatus(t *testing.T) {
	svc, _, storeRepo, _ := newAdminFixture(t)
	storeID := uuid.New()

	err := svc.SetStoreStatus(context.Background(), storeID, enums.StoreStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, enums.StoreStatusSuspended, storeRepo.statusUpdates[storeID])
}
