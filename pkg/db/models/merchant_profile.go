package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// MerchantProfile carries merchant-only state keyed by user.
type MerchantProfile struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	BusinessName string             `gorm:"column:business_name;not null"`
	BusinessType string             `gorm:"column:business_type"`
	GSTNumber    *string            `gorm:"column:gst_number;uniqueIndex"`
	BankDetails  *types.BankDetails `gorm:"column:bank_details;type:jsonb;serializer:json"`
	Earnings     types.Earnings     `gorm:"column:earnings;type:jsonb"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
