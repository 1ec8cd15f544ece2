package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
)

// OrderStatusEvent is one append-only entry of an order's status history.
// Rows are never updated or pruned; repeated identical submissions append
// duplicate rows.
type OrderStatusEvent struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null"`
	Timestamp time.Time         `gorm:"column:timestamp;not null"`
	Note      string            `gorm:"column:note"`
	UpdatedBy *uuid.UUID        `gorm:"column:updated_by;type:uuid"`
}
