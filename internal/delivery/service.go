package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/internal/orders"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

var activeTaskStatuses = []enums.OrderStatus{
	enums.OrderStatusAssigned,
	enums.OrderStatusPicked,
	enums.OrderStatusInTransit,
}

var completedTaskStatuses = []enums.OrderStatus{
	enums.OrderStatusDelivered,
}

// wireTaskStatuses are the only statuses a delivery partner may report.
var wireTaskStatuses = map[enums.OrderStatus]bool{
	enums.OrderStatusPicked:    true,
	enums.OrderStatusInTransit: true,
	enums.OrderStatusDelivered: true,
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type profileRepository interface {
	Create(ctx context.Context, profile *models.DeliveryProfile) (*models.DeliveryProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryProfile, error)
	Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error
	Save(ctx context.Context, profile *models.DeliveryProfile) error
}

type orderTasks interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByDeliveryPerson(ctx context.Context, deliveryPersonID uuid.UUID, statuses []enums.OrderStatus, params pagination.Params) ([]models.Order, int64, error)
	DeliveryFeesBetween(ctx context.Context, deliveryPersonID uuid.UUID, from, to *time.Time) ([]float64, error)
}

type orderStatusSetter interface {
	SetStatus(ctx context.Context, input orders.SetStatusInput) (*orders.OrderDTO, error)
}

// Service covers the delivery partner surface: profile, tasks, earnings,
// location and availability.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	ActiveTasks(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Page[orders.OrderDTO], error)
	CompletedTasks(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Page[orders.OrderDTO], error)
	UpdateTaskStatus(ctx context.Context, input UpdateTaskStatusInput) (*orders.OrderDTO, error)
	Earnings(ctx context.Context, userID uuid.UUID, query EarningsQuery) (*EarningsDTO, error)
	UpdateLocation(ctx context.Context, userID uuid.UUID, input UpdateLocationInput) error
	SetAvailability(ctx context.Context, userID uuid.UUID, input SetAvailabilityInput) (*ProfileDTO, error)
}

type service struct {
	users    userRepository
	profiles profileRepository
	orders   orderTasks
	statuses orderStatusSetter
}

// NewService builds the delivery partner service.
func NewService(users userRepository, profiles profileRepository, orderRepo orderTasks, statuses orderStatusSetter) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("order status setter required")
	}
	return &service{users: users, profiles: profiles, orders: orderRepo, statuses: statuses}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	user, err := s.findPartner(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery profile")
	}
	return toProfileDTO(user, profile), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	user, err := s.findPartner(ctx, userID)
	if err != nil {
		return nil, err
	}

	userUpdates := map[string]any{}
	if input.FirstName != nil {
		userUpdates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		userUpdates["last_name"] = *input.LastName
	}
	if input.Email != nil {
		userUpdates["email"] = *input.Email
	}
	if input.AvatarURL != nil {
		userUpdates["avatar_url"] = *input.AvatarURL
	}
	if len(userUpdates) > 0 {
		if err := s.users.Update(ctx, user.ID, userUpdates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
		}
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery profile")
		}
		if input.VehicleType == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicleType required")
		}
		profile = &models.DeliveryProfile{UserID: userID}
	}

	if input.VehicleType != nil {
		if !input.VehicleType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle type")
		}
		profile.VehicleType = *input.VehicleType
	}
	if input.VehicleNumber != nil {
		profile.VehicleNumber = *input.VehicleNumber
	}
	if input.Documents != nil {
		profile.Documents = input.Documents
	}

	if profile.ID == uuid.Nil {
		if _, err := s.profiles.Create(ctx, profile); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery profile")
		}
	} else if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save delivery profile")
	}

	return s.GetProfile(ctx, userID)
}

func (s *service) ActiveTasks(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Page[orders.OrderDTO], error) {
	return s.tasks(ctx, userID, activeTaskStatuses, params)
}

func (s *service) CompletedTasks(ctx context.Context, userID uuid.UUID, params pagination.Params) (*pagination.Page[orders.OrderDTO], error) {
	return s.tasks(ctx, userID, completedTaskStatuses, params)
}

func (s *service) tasks(ctx context.Context, userID uuid.UUID, statuses []enums.OrderStatus, params pagination.Params) (*pagination.Page[orders.OrderDTO], error) {
	rows, total, err := s.orders.ListByDeliveryPerson(ctx, userID, statuses, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	items := make([]orders.OrderDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *orders.FromModel(&rows[i]))
	}
	page := pagination.NewPage(items, total, params)
	return &page, nil
}

func (s *service) UpdateTaskStatus(ctx context.Context, input UpdateTaskStatusInput) (*orders.OrderDTO, error) {
	if !wireTaskStatuses[input.Status] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be picked, in_transit or delivered")
	}

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.DeliveryPersonID == nil || *order.DeliveryPersonID != input.DeliveryPersonID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "task is not assigned to this delivery partner")
	}

	updated, err := s.statuses.SetStatus(ctx, orders.SetStatusInput{
		OrderID:   input.OrderID,
		Status:    input.Status,
		Note:      input.Note,
		UpdatedBy: &input.DeliveryPersonID,
		ActorRole: enums.UserRoleDelivery.String(),
	})
	if err != nil {
		return nil, err
	}

	if input.Status == enums.OrderStatusDelivered {
		if err := s.creditDelivery(ctx, input.DeliveryPersonID, order.DeliveryFee); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// creditDelivery folds the delivery fee into the partner's running balance.
func (s *service) creditDelivery(ctx context.Context, userID uuid.UUID, fee float64) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery profile")
	}
	total := decimal.NewFromFloat(profile.Earnings.Total).Add(decimal.NewFromFloat(fee))
	available := decimal.NewFromFloat(profile.Earnings.Available).Add(decimal.NewFromFloat(fee))
	profile.Earnings.Total, _ = total.Float64()
	profile.Earnings.Available, _ = available.Float64()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save delivery profile")
	}
	return nil
}

func (s *service) Earnings(ctx context.Context, userID uuid.UUID, query EarningsQuery) (*EarningsDTO, error) {
	fees, err := s.orders.DeliveryFeesBetween(ctx, userID, query.From, query.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum delivery fees")
	}
	sum := decimal.Zero
	for _, fee := range fees {
		sum = sum.Add(decimal.NewFromFloat(fee))
	}
	total, _ := sum.Float64()
	return &EarningsDTO{
		TotalDeliveries: len(fees),
		TotalEarnings:   total,
		From:            query.From,
		To:              query.To,
	}, nil
}

func (s *service) UpdateLocation(ctx context.Context, userID uuid.UUID, input UpdateLocationInput) error {
	if input.Lng < -180 || input.Lng > 180 || input.Lat < -90 || input.Lat > 90 {
		return pkgerrors.New(pkgerrors.CodeValidation, "coordinates out of range")
	}
	if _, err := s.findPartner(ctx, userID); err != nil {
		return err
	}
	err := s.profiles.Update(ctx, userID, map[string]any{
		"current_location": types.NewGeoPoint(input.Lng, input.Lat),
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
	}
	return nil
}

func (s *service) SetAvailability(ctx context.Context, userID uuid.UUID, input SetAvailabilityInput) (*ProfileDTO, error) {
	if _, err := s.findPartner(ctx, userID); err != nil {
		return nil, err
	}
	err := s.profiles.Update(ctx, userID, map[string]any{"is_available": input.IsAvailable})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update availability")
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) findPartner(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.Role != enums.UserRoleDelivery {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery partner not found")
	}
	return user, nil
}
