package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// ProfileDTO combines the identity row with customer-only state.
type ProfileDTO struct {
	User             *users.UserDTO                 `json:"user"`
	FavoriteStoreIDs []uuid.UUID                    `json:"favoriteStoreIds"`
	SavedAddresses   types.SavedAddresses           `json:"savedAddresses"`
	Notifications    *types.NotificationPreferences `json:"notifications,omitempty"`
	Language         string                         `json:"language"`
	UpdatedAt        time.Time                      `json:"updatedAt"`
}

// UpdateProfileInput carries the patchable fields.
type UpdateProfileInput struct {
	FirstName     *string                        `json:"firstName" validate:"omitempty,max=100"`
	LastName      *string                        `json:"lastName" validate:"omitempty,max=100"`
	Email         *string                        `json:"email" validate:"omitempty,email"`
	AvatarURL     *string                        `json:"avatarUrl" validate:"omitempty,url"`
	Language      *string                        `json:"language" validate:"omitempty,max=10"`
	Notifications *types.NotificationPreferences `json:"notifications"`
}

// AddAddressInput is a new address-book entry.
type AddAddressInput struct {
	Label     string  `json:"label" validate:"max=50"`
	Street    string  `json:"street" validate:"required,max=200"`
	City      string  `json:"city" validate:"required,max=100"`
	State     string  `json:"state" validate:"required,max=100"`
	Pincode   string  `json:"pincode" validate:"required,max=10"`
	Lng       float64 `json:"lng" validate:"min=-180,max=180"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	IsDefault bool    `json:"isDefault"`
}

func toProfileDTO(user *models.User, profile *models.CustomerProfile) *ProfileDTO {
	dto := &ProfileDTO{
		User:     users.FromModel(user),
		Language: "en",
	}
	if profile == nil {
		dto.FavoriteStoreIDs = []uuid.UUID{}
		dto.SavedAddresses = types.SavedAddresses{}
		return dto
	}
	dto.FavoriteStoreIDs = profile.FavoriteStoreIDs
	if dto.FavoriteStoreIDs == nil {
		dto.FavoriteStoreIDs = []uuid.UUID{}
	}
	dto.SavedAddresses = profile.SavedAddresses
	if dto.SavedAddresses == nil {
		dto.SavedAddresses = types.SavedAddresses{}
	}
	dto.Notifications = profile.Notifications
	if profile.Language != "" {
		dto.Language = profile.Language
	}
	dto.UpdatedAt = profile.UpdatedAt
	return dto
}
