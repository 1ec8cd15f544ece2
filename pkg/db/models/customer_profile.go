package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// CustomerProfile carries customer-only state keyed by user.
type CustomerProfile struct {
	ID               uuid.UUID                      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID                      `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FavoriteStoreIDs []uuid.UUID                    `gorm:"column:favorite_store_ids;type:jsonb;serializer:json"`
	SavedAddresses   types.SavedAddresses           `gorm:"column:saved_addresses;type:jsonb"`
	Notifications    *types.NotificationPreferences `gorm:"column:notifications;type:jsonb;serializer:json"`
	Language         string                         `gorm:"column:language;not null;default:'en'"`
	CreatedAt        time.Time                      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                      `gorm:"column:updated_at;autoUpdateTime"`
}
