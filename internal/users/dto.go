package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// UserDTO is the transport shape returned to clients.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	PhoneNumber *string          `json:"phoneNumber,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Role        enums.UserRole   `json:"role"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	AvatarURL   *string          `json:"avatarUrl,omitempty"`
	IsGuest     bool             `json:"isGuest"`
	IsActive    bool             `json:"isActive"`
	Status      enums.UserStatus `json:"status"`
	LastLoginAt *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	PhoneNumber *string
	Email       *string
	Role        enums.UserRole
	FirstName   string
	LastName    string
	DeviceInfo  *types.DeviceInfo
	IsGuest     bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		AvatarURL:   u.AvatarURL,
		IsGuest:     u.IsGuest,
		IsActive:    u.IsActive,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}
	return &models.User{
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Role:        role,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DeviceInfo:  c.DeviceInfo,
		IsGuest:     c.IsGuest,
		IsActive:    true,
		Status:      enums.UserStatusActive,
	}
}
