package merchants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
)

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type profileRepository interface {
	Create(ctx context.Context, profile *models.MerchantProfile) (*models.MerchantProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MerchantProfile, error)
	Save(ctx context.Context, profile *models.MerchantProfile) error
}

type storeLister interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
}

type orderRevenue interface {
	DeliveredTotalsForStores(ctx context.Context, storeIDs []uuid.UUID, from, to *time.Time) ([]float64, error)
}

// Service covers merchant registration, the business profile and revenue.
type Service interface {
	Create(ctx context.Context, input CreateMerchantInput) (*MerchantDTO, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*MerchantDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*MerchantDTO, error)
	Earnings(ctx context.Context, userID uuid.UUID, query EarningsQuery) (*EarningsDTO, error)
}

type service struct {
	users    userRepository
	profiles profileRepository
	stores   storeLister
	orders   orderRevenue
}

// NewService builds the merchant service.
func NewService(userRepo userRepository, profiles profileRepository, stores storeLister, orders orderRevenue) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store lister required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order revenue source required")
	}
	return &service{users: userRepo, profiles: profiles, stores: stores, orders: orders}, nil
}

func (s *service) Create(ctx context.Context, input CreateMerchantInput) (*MerchantDTO, error) {
	if input.PhoneNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number required")
	}
	if input.BusinessName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name required")
	}

	existing, err := s.users.FindByPhone(ctx, input.PhoneNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup phone")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone number already registered")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		PhoneNumber: &input.PhoneNumber,
		Email:       input.Email,
		Role:        enums.UserRoleMerchant,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create merchant user")
	}

	profile, err := s.profiles.Create(ctx, &models.MerchantProfile{
		UserID:       user.ID,
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		GSTNumber:    input.GSTNumber,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create merchant profile")
	}

	return toMerchantDTO(user, profile), nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*MerchantDTO, error) {
	user, err := s.findMerchant(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant profile")
	}
	return toMerchantDTO(user, profile), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*MerchantDTO, error) {
	user, err := s.findMerchant(ctx, userID)
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
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant profile")
		}
		if input.BusinessName == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "businessName required")
		}
		profile = &models.MerchantProfile{UserID: userID}
	}

	if input.BusinessName != nil {
		profile.BusinessName = *input.BusinessName
	}
	if input.BusinessType != nil {
		profile.BusinessType = *input.BusinessType
	}
	if input.GSTNumber != nil {
		profile.GSTNumber = input.GSTNumber
	}
	if input.BankDetails != nil {
		profile.BankDetails = input.BankDetails
	}

	if profile.ID == uuid.Nil {
		if _, err := s.profiles.Create(ctx, profile); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create merchant profile")
		}
	} else if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save merchant profile")
	}

	return s.GetProfile(ctx, userID)
}

func (s *service) Earnings(ctx context.Context, userID uuid.UUID, query EarningsQuery) (*EarningsDTO, error) {
	if _, err := s.findMerchant(ctx, userID); err != nil {
		return nil, err
	}
	stores, err := s.stores.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	storeIDs := make([]uuid.UUID, 0, len(stores))
	for _, store := range stores {
		storeIDs = append(storeIDs, store.ID)
	}

	totals, err := s.orders.DeliveredTotalsForStores(ctx, storeIDs, query.From, query.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(decimal.NewFromFloat(total))
	}
	revenue, _ := sum.Float64()
	return &EarningsDTO{
		TotalOrders:  len(totals),
		TotalRevenue: revenue,
		From:         query.From,
		To:           query.To,
	}, nil
}

func (s *service) findMerchant(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.Role != enums.UserRoleMerchant {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
	}
	return user, nil
}
