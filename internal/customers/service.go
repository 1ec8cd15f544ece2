package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type profileRepository interface {
	Create(ctx context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error
	Save(ctx context.Context, profile *models.CustomerProfile) error
}

// Service exposes customer profile and address-book operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	AddFavorite(ctx context.Context, userID, storeID uuid.UUID) (*ProfileDTO, error)
	RemoveFavorite(ctx context.Context, userID, storeID uuid.UUID) (*ProfileDTO, error)
	AddAddress(ctx context.Context, userID uuid.UUID, input AddAddressInput) (*ProfileDTO, error)
	RemoveAddress(ctx context.Context, userID uuid.UUID, index int) (*ProfileDTO, error)
}

type service struct {
	users    userRepository
	profiles profileRepository
}

// NewService constructs the customer service.
func NewService(userRepo userRepository, profileRepo profileRepository) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if profileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	return &service{users: userRepo, profiles: profileRepo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(user, profile), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	user, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	userUpdates := map[string]any{}
	if input.FirstName != nil {
		userUpdates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		userUpdates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		userUpdates["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.AvatarURL != nil {
		userUpdates["avatar_url"] = *input.AvatarURL
	}
	if len(userUpdates) > 0 {
		if err := s.users.Update(ctx, user.ID, userUpdates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
		}
	}

	profileUpdates := map[string]any{}
	if input.Language != nil {
		profileUpdates["language"] = *input.Language
	}
	if input.Notifications != nil {
		profileUpdates["notifications"] = input.Notifications
	}
	if len(profileUpdates) > 0 {
		if err := s.profiles.Update(ctx, user.ID, profileUpdates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *service) AddFavorite(ctx context.Context, userID, storeID uuid.UUID) (*ProfileDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range profile.FavoriteStoreIDs {
		if id == storeID {
			return toProfileDTO(user, profile), nil
		}
	}
	profile.FavoriteStoreIDs = append(profile.FavoriteStoreIDs, storeID)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save favorites")
	}
	return toProfileDTO(user, profile), nil
}

func (s *service) RemoveFavorite(ctx context.Context, userID, storeID uuid.UUID) (*ProfileDTO, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := profile.FavoriteStoreIDs[:0]
	for _, id := range profile.FavoriteStoreIDs {
		if id != storeID {
			kept = append(kept, id)
		}
	}
	profile.FavoriteStoreIDs = kept
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save favorites")
	}
	return toProfileDTO(user, profile), nil
}

func (s *service) AddAddress(ctx context.Context, userID uuid.UUID, input AddAddressInput) (*ProfileDTO, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := types.SavedAddress{
		Label:     strings.TrimSpace(input.Label),
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Pincode:   strings.TrimSpace(input.Pincode),
		Location:  types.NewGeoPoint(input.Lng, input.Lat),
		IsDefault: input.IsDefault,
	}
	if address.IsDefault {
		for i := range profile.SavedAddresses {
			profile.SavedAddresses[i].IsDefault = false
		}
	}
	profile.SavedAddresses = append(profile.SavedAddresses, address)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save addresses")
	}
	return toProfileDTO(user, profile), nil
}

func (s *service) RemoveAddress(ctx context.Context, userID uuid.UUID, index int) (*ProfileDTO, error) {
	user, profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(profile.SavedAddresses) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	profile.SavedAddresses = append(profile.SavedAddresses[:index], profile.SavedAddresses[index+1:]...)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save addresses")
	}
	return toProfileDTO(user, profile), nil
}

// load fetches the user plus their profile, creating the profile row lazily.
func (s *service) load(ctx context.Context, userID uuid.UUID) (*models.User, *models.CustomerProfile, error) {
	if userID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
		}
		profile, err = s.profiles.Create(ctx, &models.CustomerProfile{UserID: userID})
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
		}
	}
	return user, profile, nil
}
