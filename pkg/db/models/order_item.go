package models

import (
	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// OrderItem is one line of an order with the price snapshotted at
// checkout time.
type OrderItem struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID               `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID               `gorm:"column:product_id;type:uuid;not null"`
	ProductName string                  `gorm:"column:product_name;not null"`
	Quantity    int                     `gorm:"column:quantity;not null"`
	Price       float64                 `gorm:"column:price;not null"`
	Variant     *types.OrderItemVariant `gorm:"column:variant;type:jsonb;serializer:json"`
	Notes       string                  `gorm:"column:notes"`
}
