package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// Store is a merchant-owned storefront. The "currently open" flag is
// derived from BusinessHours at read time and intentionally has no column.
type Store struct {
	ID            uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID       uuid.UUID                    `gorm:"column:owner_id;type:uuid;not null;index"`
	Name          string                       `gorm:"column:name;not null"`
	Type          enums.StoreType              `gorm:"column:type;type:text;not null;default:'other'"`
	Category      string                       `gorm:"column:category;index"`
	Description   string                       `gorm:"column:description"`
	Contact       *types.ContactInfo           `gorm:"column:contact;type:jsonb;serializer:json"`
	Address       types.StoreAddress           `gorm:"column:address;type:jsonb;serializer:json"`
	Lng           float64                      `gorm:"column:lng;not null;default:0;index"`
	Lat           float64                      `gorm:"column:lat;not null;default:0;index"`
	BusinessHours types.BusinessHours          `gorm:"column:business_hours;type:jsonb"`
	Status        enums.StoreStatus            `gorm:"column:status;type:text;not null;default:'pending'"`
	Documents     []types.VerificationDocument `gorm:"column:documents;type:jsonb;serializer:json"`
	IsVerified    bool                         `gorm:"column:is_verified;not null;default:false"`
	Settings      types.StoreSettings          `gorm:"column:settings;type:jsonb;serializer:json"`
	Rating        types.RatingAggregate        `gorm:"column:rating;type:jsonb"`
	CreatedAt     time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}
