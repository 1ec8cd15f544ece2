package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// DeliveryProfile carries delivery-partner state keyed by user.
type DeliveryProfile struct {
	ID              uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID                `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	VehicleType     enums.VehicleType        `gorm:"column:vehicle_type;type:text;not null"`
	VehicleNumber   string                   `gorm:"column:vehicle_number"`
	CurrentLocation *types.GeoPoint          `gorm:"column:current_location;type:jsonb"`
	IsAvailable     bool                     `gorm:"column:is_available;not null;default:false"`
	Documents       []types.DeliveryDocument `gorm:"column:documents;type:jsonb;serializer:json"`
	Earnings        types.Earnings           `gorm:"column:earnings;type:jsonb"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
