package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sathishnaik786/Zekto/internal/orders"
	"github.com/Sathishnaik786/Zekto/internal/stores"
	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

const recentActivityLimit = 5

type userRepository interface {
	List(ctx context.Context, params pagination.Params, filters users.Filters) (*pagination.Page[users.UserDTO], error)
	CountByRole(ctx context.Context, role enums.UserRole) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error
}

type storeRepository interface {
	Count(ctx context.Context) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.Store, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) error
}

type orderRepository interface {
	Count(ctx context.Context) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.Order, error)
	DeliveredTotalsBetween(ctx context.Context, from, to *time.Time) ([]float64, error)
}

// UserCountsDTO breaks platform accounts down by role.
type UserCountsDTO struct {
	Customers int64 `json:"customers"`
	Merchants int64 `json:"merchants"`
	Delivery  int64 `json:"delivery"`
	Admins    int64 `json:"admins"`
	Total     int64 `json:"total"`
}

// StatsDTO is the dashboard headline block.
type StatsDTO struct {
	Users   UserCountsDTO `json:"users"`
	Stores  int64         `json:"stores"`
	Orders  int64         `json:"orders"`
	Revenue float64       `json:"revenue"`
	From    *time.Time    `json:"from,omitempty"`
	To      *time.Time    `json:"to,omitempty"`
}

// StatsQuery bounds the revenue window; counts are always global.
type StatsQuery struct {
	From *time.Time
	To   *time.Time
}

// RecentActivityDTO is the latest slice of each entity for the dashboard.
type RecentActivityDTO struct {
	Users  []users.UserDTO   `json:"users"`
	Stores []stores.StoreDTO `json:"stores"`
	Orders []orders.OrderDTO `json:"orders"`
}

// Service covers the admin dashboard and moderation operations.
type Service interface {
	Stats(ctx context.Context, query StatsQuery) (*StatsDTO, error)
	RecentActivity(ctx context.Context) (*RecentActivityDTO, error)
	ListUsers(ctx context.Context, params pagination.Params, filters users.Filters) (*pagination.Page[users.UserDTO], error)
	SetUserStatus(ctx context.Context, userID uuid.UUID, status enums.UserStatus) error
	SetStoreStatus(ctx context.Context, storeID uuid.UUID, status enums.StoreStatus) error
}

type service struct {
	users  userRepository
	stores storeRepository
	orders orderRepository
	now    func() time.Time
}

// NewService builds the admin service.
func NewService(userRepo userRepository, storeRepo storeRepository, orderRepo orderRepository) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{users: userRepo, stores: storeRepo, orders: orderRepo, now: time.Now}, nil
}

func (s *service) Stats(ctx context.Context, query StatsQuery) (*StatsDTO, error) {
	counts := UserCountsDTO{}
	for _, pair := range []struct {
		role enums.UserRole
		dest *int64
	}{
		{enums.UserRoleCustomer, &counts.Customers},
		{enums.UserRoleMerchant, &counts.Merchants},
		{enums.UserRoleDelivery, &counts.Delivery},
		{enums.UserRoleAdmin, &counts.Admins},
	} {
		n, err := s.users.CountByRole(ctx, pair.role)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
		}
		*pair.dest = n
	}
	counts.Total = counts.Customers + counts.Merchants + counts.Delivery + counts.Admins

	storeCount, err := s.stores.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}
	orderCount, err := s.orders.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	totals, err := s.orders.DeliveredTotalsBetween(ctx, query.From, query.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(decimal.NewFromFloat(total))
	}
	revenue, _ := sum.Float64()

	return &StatsDTO{
		Users:   counts,
		Stores:  storeCount,
		Orders:  orderCount,
		Revenue: revenue,
		From:    query.From,
		To:      query.To,
	}, nil
}

func (s *service) RecentActivity(ctx context.Context) (*RecentActivityDTO, error) {
	recentUsers, err := s.users.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent users")
	}
	recentStores, err := s.stores.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent stores")
	}
	recentOrders, err := s.orders.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent orders")
	}

	activity := &RecentActivityDTO{
		Users:  make([]users.UserDTO, 0, len(recentUsers)),
		Stores: make([]stores.StoreDTO, 0, len(recentStores)),
		Orders: make([]orders.OrderDTO, 0, len(recentOrders)),
	}
	for i := range recentUsers {
		activity.Users = append(activity.Users, *users.FromModel(&recentUsers[i]))
	}
	now := s.now()
	for i := range recentStores {
		activity.Stores = append(activity.Stores, *stores.FromModel(&recentStores[i], now))
	}
	for i := range recentOrders {
		activity.Orders = append(activity.Orders, *orders.FromModel(&recentOrders[i]))
	}
	return activity, nil
}

func (s *service) ListUsers(ctx context.Context, params pagination.Params, filters users.Filters) (*pagination.Page[users.UserDTO], error) {
	page, err := s.users.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return page, nil
}

func (s *service) SetUserStatus(ctx context.Context, userID uuid.UUID, status enums.UserStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid user status")
	}
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user status")
	}
	return nil
}

func (s *service) SetStoreStatus(ctx context.Context, storeID uuid.UUID, status enums.StoreStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid store status")
	}
	if err := s.stores.UpdateStatus(ctx, storeID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store status")
	}
	return nil
}
