package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// User is the canonical identity row. Role-specific data lives in the
// profile tables joined by user_id, not on this row.
type User struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email       *string           `gorm:"column:email;uniqueIndex"`
	PhoneNumber *string           `gorm:"column:phone_number;uniqueIndex"`
	Role        enums.UserRole    `gorm:"column:role;type:text;not null;default:'customer'"`
	FirstName   string            `gorm:"column:first_name"`
	LastName    string            `gorm:"column:last_name"`
	AvatarURL   *string           `gorm:"column:avatar_url"`
	DeviceInfo  *types.DeviceInfo `gorm:"column:device_info;type:jsonb;serializer:json"`
	IsGuest     bool              `gorm:"column:is_guest;not null;default:false"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	Status      enums.UserStatus  `gorm:"column:status;type:text;not null;default:'active'"`
	LastLoginAt *time.Time        `gorm:"column:last_login_at"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
