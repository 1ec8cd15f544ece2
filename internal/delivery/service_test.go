package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/internal/orders"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

type stubUserRepo struct {
	users   map[uuid.UUID]*models.User
	updates map[string]any
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

type stubProfileRepo struct {
	profiles map[uuid.UUID]*models.DeliveryProfile
	updates  map[string]any
	saved    *models.DeliveryProfile
}

func (s *stubProfileRepo) Create(ctx context.Context, profile *models.DeliveryProfile) (*models.DeliveryProfile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	s.profiles[profile.UserID] = profile
	return profile, nil
}

func (s *stubProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *stubProfileRepo) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	if _, ok := s.profiles[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates = updates
	if v, ok := updates["is_available"].(bool); ok {
		s.profiles[userID].IsAvailable = v
	}
	return nil
}

func (s *stubProfileRepo) Save(ctx context.Context, profile *models.DeliveryProfile) error {
	s.saved = profile
	s.profiles[profile.UserID] = profile
	return nil
}

type stubOrderTasks struct {
	orders map[uuid.UUID]*models.Order
	fees   []float64
}

func (s *stubOrderTasks) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderTasks) ListByDeliveryPerson(ctx context.Context, deliveryPersonID uuid.UUID, statuses []enums.OrderStatus, params pagination.Params) ([]models.Order, int64, error) {
	rows := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.DeliveryPersonID == nil || *order.DeliveryPersonID != deliveryPersonID {
			continue
		}
		for _, status := range statuses {
			if order.Status == status {
				rows = append(rows, *order)
				break
			}
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *stubOrderTasks) DeliveryFeesBetween(ctx context.Context, deliveryPersonID uuid.UUID, from, to *time.Time) ([]float64, error) {
	return s.fees, nil
}

type stubStatusSetter struct {
	inputs []orders.SetStatusInput
	err    error
}

func (s *stubStatusSetter) SetStatus(ctx context.Context, input orders.SetStatusInput) (*orders.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.inputs = append(s.inputs, input)
	return &orders.OrderDTO{ID: input.OrderID, Status: input.Status}, nil
}

type deliveryFixture struct {
	svc       Service
	users     *stubUserRepo
	profiles  *stubProfileRepo
	orders    *stubOrderTasks
	statuses  *stubStatusSetter
	partnerID uuid.UUID
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	partnerID := uuid.New()
	phone := "+919876543210"
	userRepo := &stubUserRepo{
		users: map[uuid.UUID]*models.User{
			partnerID: {
				ID:          partnerID,
				PhoneNumber: &phone,
				Role:        enums.UserRoleDelivery,
				IsActive:    true,
			},
		},
	}
	profileRepo := &stubProfileRepo{
		profiles: map[uuid.UUID]*models.DeliveryProfile{
			partnerID: {
				ID:          uuid.New(),
				UserID:      partnerID,
				VehicleType: enums.VehicleTypeMotorcycle,
			},
		},
	}
	orderRepo := &stubOrderTasks{orders: map[uuid.UUID]*models.Order{}}
	statuses := &stubStatusSetter{}
	svc, err := NewService(userRepo, profileRepo, orderRepo, statuses)
	require.NoError(t, err)
	return &deliveryFixture{
		svc:       svc,
		users:     userRepo,
		profiles:  profileRepo,
		orders:    orderRepo,
		statuses:  statuses,
		partnerID: partnerID,
	}
}

func (f *deliveryFixture) addTask(status enums.OrderStatus, fee float64) *models.Order {
	order := &models.Order{
		ID:               uuid.New(),
		OrderNumber:      "ORD2601100001",
		CustomerID:       uuid.New(),
		StoreID:          uuid.New(),
		DeliveryPersonID: &f.partnerID,
		DeliveryFee:      fee,
		Status:           status,
	}
	f.orders.orders[order.ID] = order
	return order
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, code, typed.Code())
}

func TestUpdateTaskStatusGuardsWireStatuses(t *testing.T) {
	f := newDeliveryFixture(t)
	task := f.addTask(enums.OrderStatusAssigned, 20)

	_, err := f.svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusInput{
		DeliveryPersonID: f.partnerID,
		OrderID:          task.ID,
		Status:           enums.OrderStatusConfirmed,
	})
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.Empty(t, f.statuses.inputs)
}

func TestUpdateTaskStatusRejectsForeignTask(t *testing.T) {
	f := newDeliveryFixture(t)
	task := f.addTask(enums.OrderStatusAssigned, 20)
	other := uuid.New()
	task.DeliveryPersonID = &other

	_, err := f.svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusInput{
		DeliveryPersonID: f.partnerID,
		OrderID:          task.ID,
		Status:           enums.OrderStatusPicked,
	})
	requireCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateTaskStatusPicked(t *testing.T) {
	f := newDeliveryFixture(t)
	task := f.addTask(enums.OrderStatusAssigned, 20)

	updated, err := f.svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusInput{
		DeliveryPersonID: f.partnerID,
		OrderID:          task.ID,
		Status:           enums.OrderStatusPicked,
		Note:             "picked up from counter",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPicked, updated.Status)
	require.Len(t, f.statuses.inputs, 1)
	assert.Equal(t, enums.UserRoleDelivery.String(), f.statuses.inputs[0].ActorRole)
	require.NotNil(t, f.statuses.inputs[0].UpdatedBy)
	assert.Equal(t, f.partnerID, *f.statuses.inputs[0].UpdatedBy)
}

func TestUpdateTaskStatusDeliveredCreditsEarnings(t *testing.T) {
	f := newDeliveryFixture(t)
	task := f.addTask(enums.OrderStatusInTransit, 25)

	_, err := f.svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusInput{
		DeliveryPersonID: f.partnerID,
		OrderID:          task.ID,
		Status:           enums.OrderStatusDelivered,
	})
	require.NoError(t, err)

	profile := f.profiles.profiles[f.partnerID]
	assert.Equal(t, 25.0, profile.Earnings.Total)
	assert.Equal(t, 25.0, profile.Earnings.Available)
}

func TestActiveAndCompletedTasksSplitByStatus(t *testing.T) {
	f := newDeliveryFixture(t)
	f.addTask(enums.OrderStatusAssigned, 10)
	f.addTask(enums.OrderStatusInTransit, 10)
	f.addTask(enums.OrderStatusDelivered, 10)

	active, err := f.svc.ActiveTasks(context.Background(), f.partnerID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), active.Total)

	completed, err := f.svc.CompletedTasks(context.Background(), f.partnerID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed.Total)
}

func TestEarningsSumsDeliveryFees(t *testing.T) {
	f := newDeliveryFixture(t)
	f.orders.fees = []float64{25.10, 30.20, 14.70}

	summary, err := f.svc.Earnings(context.Background(), f.partnerID, EarningsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalDeliveries)
	assert.Equal(t, 70.0, summary.TotalEarnings)
}

func TestUpdateLocationValidatesBounds(t *testing.T) {
	f := newDeliveryFixture(t)

	err := f.svc.UpdateLocation(context.Background(), f.partnerID, UpdateLocationInput{Lng: 200, Lat: 0})
	requireCode(t, err, pkgerrors.CodeValidation)

	err = f.svc.UpdateLocation(context.Background(), f.partnerID, UpdateLocationInput{Lng: 78.4867, Lat: 17.385})
	require.NoError(t, err)
	require.Contains(t, f.profiles.updates, "current_location")
}

func TestSetAvailabilityToggles(t *testing.T) {
	f := newDeliveryFixture(t)

	profile, err := f.svc.SetAvailability(context.Background(), f.partnerID, SetAvailabilityInput{IsAvailable: true})
	require.NoError(t, err)
	assert.True(t, profile.IsAvailable)
}

func TestGetProfileRejectsOtherRoles(t *testing.T) {
	f := newDeliveryFixture(t)
	customerID := uuid.New()
	f.users.users[customerID] = &models.User{ID: customerID, Role: enums.UserRoleCustomer}

	_, err := f.svc.GetProfile(context.Background(), customerID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateProfileCreatesMissingProfile(t *testing.T) {
	f := newDeliveryFixture(t)
	newPartner := uuid.New()
	f.users.users[newPartner] = &models.User{ID: newPartner, Role: enums.UserRoleDelivery}

	vehicle := enums.VehicleTypeBicycle
	number := "TS09AB1234"
	profile, err := f.svc.UpdateProfile(context.Background(), newPartner, UpdateProfileInput{
		VehicleType:   &vehicle,
		VehicleNumber: &number,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.VehicleTypeBicycle, profile.VehicleType)
	assert.Equal(t, number, profile.VehicleNumber)
}

func TestUpdateProfileRequiresVehicleTypeWhenMissing(t *testing.T) {
	f := newDeliveryFixture(t)
	newPartner := uuid.New()
	f.users.users[newPartner] = &models.User{ID: newPartner, Role: enums.UserRoleDelivery}

	name := "Ravi"
	_, err := f.svc.UpdateProfile(context.Background(), newPartner, UpdateProfileInput{FirstName: &name})
	requireCode(t, err, pkgerrors.CodeValidation)
}
