package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// Order is the customer's purchase. Money fields round-trip exactly as
// supplied at creation; TotalAmount is never recomputed after the fact.
// Orders are never deleted: cancellation is a status.
type Order struct {
	ID                    uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber           string                    `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID            uuid.UUID                 `gorm:"column:customer_id;type:uuid;not null;index"`
	StoreID               uuid.UUID                 `gorm:"column:store_id;type:uuid;not null;index"`
	DeliveryPersonID      *uuid.UUID                `gorm:"column:delivery_person_id;type:uuid;index"`
	Subtotal              float64                   `gorm:"column:subtotal;not null"`
	TaxAmount             float64                   `gorm:"column:tax_amount;not null;default:0"`
	TaxRate               float64                   `gorm:"column:tax_rate;not null;default:0"`
	DeliveryFee           float64                   `gorm:"column:delivery_fee;not null;default:0"`
	Discount              *types.OrderDiscount      `gorm:"column:discount;type:jsonb;serializer:json"`
	TotalAmount           float64                   `gorm:"column:total_amount;not null"`
	Status                enums.OrderStatus         `gorm:"column:status;type:text;not null;default:'pending';index"`
	CancellationReason    *enums.CancellationReason `gorm:"column:cancellation_reason;type:text"`
	DeliveryAddress       types.DeliveryAddress     `gorm:"column:delivery_address;type:jsonb"`
	PaymentStatus         enums.PaymentStatus       `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PaymentMethod         enums.PaymentMethod       `gorm:"column:payment_method;type:text;not null"`
	PaymentDetails        *types.PaymentDetails     `gorm:"column:payment_details;type:jsonb;serializer:json"`
	Rating                *types.OrderRating        `gorm:"column:rating;type:jsonb"`
	CustomerNotes         string                    `gorm:"column:customer_notes"`
	MerchantNotes         string                    `gorm:"column:merchant_notes"`
	DeliveryNotes         string                    `gorm:"column:delivery_notes"`
	EstimatedDeliveryTime *time.Time                `gorm:"column:estimated_delivery_time"`
	ActualDeliveryTime    *time.Time                `gorm:"column:actual_delivery_time"`
	Items                 []OrderItem               `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory         []OrderStatusEvent        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time                 `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt             time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
