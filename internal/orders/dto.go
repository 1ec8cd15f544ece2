package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// CreateOrderItemInput is one checkout line.
type CreateOrderItemInput struct {
	ProductID uuid.UUID               `json:"productId" validate:"required"`
	Quantity  int                     `json:"quantity" validate:"required,min=1"`
	Variant   *types.OrderItemVariant `json:"variant"`
	Notes     string                  `json:"notes" validate:"max=500"`
}

// CreateOrderInput carries the checkout payload. Monetary amounts are
// accepted as sent and stored without recomputation.
type CreateOrderInput struct {
	CustomerID      uuid.UUID              `json:"-"`
	StoreID         uuid.UUID              `json:"storeId" validate:"required"`
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress types.DeliveryAddress  `json:"deliveryAddress" validate:"required"`
	PaymentMethod   enums.PaymentMethod    `json:"paymentMethod" validate:"required"`
	Subtotal        float64                `json:"subtotal" validate:"min=0"`
	TaxAmount       float64                `json:"taxAmount" validate:"min=0"`
	TaxRate         float64                `json:"taxRate" validate:"min=0"`
	DeliveryFee     float64                `json:"deliveryFee" validate:"min=0"`
	Discount        *types.OrderDiscount   `json:"discount"`
	TotalAmount     float64                `json:"totalAmount" validate:"min=0"`
	CustomerNotes   string                 `json:"customerNotes" validate:"max=1000"`
}

// SetStatusInput moves an order to a new status. Every call appends a
// history row, including repeats of the current status.
type SetStatusInput struct {
	OrderID   uuid.UUID
	Status    enums.OrderStatus
	Note      string
	UpdatedBy *uuid.UUID
	ActorRole string
}

// CancelInput voids an order with a recorded reason.
type CancelInput struct {
	OrderID   uuid.UUID
	Reason    enums.CancellationReason
	Note      string
	UpdatedBy *uuid.UUID
	ActorRole string
}

// RateInput records the customer's post-delivery review.
type RateInput struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Food       int    `json:"food" validate:"required,min=1,max=5"`
	Delivery   int    `json:"delivery" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=1000"`
}

// Filters narrow order listings.
type Filters struct {
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	Query         string
}

// ItemDTO is one persisted order line.
type ItemDTO struct {
	ID          uuid.UUID               `json:"id"`
	ProductID   uuid.UUID               `json:"productId"`
	ProductName string                  `json:"productName"`
	Quantity    int                     `json:"quantity"`
	Price       float64                 `json:"price"`
	Variant     *types.OrderItemVariant `json:"variant,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
}

// StatusEventDTO is one append-only history entry.
type StatusEventDTO struct {
	Status    enums.OrderStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
	UpdatedBy *uuid.UUID        `json:"updatedBy,omitempty"`
}

// OrderDTO is the full order detail.
type OrderDTO struct {
	ID                    uuid.UUID                 `json:"id"`
	OrderNumber           string                    `json:"orderNumber"`
	CustomerID            uuid.UUID                 `json:"customerId"`
	StoreID               uuid.UUID                 `json:"storeId"`
	DeliveryPersonID      *uuid.UUID                `json:"deliveryPersonId,omitempty"`
	Items                 []ItemDTO                 `json:"items"`
	Subtotal              float64                   `json:"subtotal"`
	TaxAmount             float64                   `json:"taxAmount"`
	TaxRate               float64                   `json:"taxRate"`
	DeliveryFee           float64                   `json:"deliveryFee"`
	Discount              *types.OrderDiscount      `json:"discount,omitempty"`
	TotalAmount           float64                   `json:"totalAmount"`
	Status                enums.OrderStatus         `json:"status"`
	StatusHistory         []StatusEventDTO          `json:"statusHistory"`
	CancellationReason    *enums.CancellationReason `json:"cancellationReason,omitempty"`
	DeliveryAddress       types.DeliveryAddress     `json:"deliveryAddress"`
	PaymentStatus         enums.PaymentStatus       `json:"paymentStatus"`
	PaymentMethod         enums.PaymentMethod       `json:"paymentMethod"`
	PaymentDetails        *types.PaymentDetails     `json:"paymentDetails,omitempty"`
	Rating                *types.OrderRating        `json:"rating,omitempty"`
	CustomerNotes         string                    `json:"customerNotes,omitempty"`
	MerchantNotes         string                    `json:"merchantNotes,omitempty"`
	DeliveryNotes         string                    `json:"deliveryNotes,omitempty"`
	EstimatedDeliveryTime *time.Time                `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time                `json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time                 `json:"createdAt"`
	UpdatedAt             time.Time                 `json:"updatedAt"`
}

// FromModel converts an order row plus its preloaded associations.
func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]ItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Variant:     item.Variant,
			Notes:       item.Notes,
		})
	}
	history := make([]StatusEventDTO, 0, len(order.StatusHistory))
	for _, event := range order.StatusHistory {
		history = append(history, StatusEventDTO{
			Status:    event.Status,
			Timestamp: event.Timestamp,
			Note:      event.Note,
			UpdatedBy: event.UpdatedBy,
		})
	}
	return &OrderDTO{
		ID:                    order.ID,
		OrderNumber:           order.OrderNumber,
		CustomerID:            order.CustomerID,
		StoreID:               order.StoreID,
		DeliveryPersonID:      order.DeliveryPersonID,
		Items:                 items,
		Subtotal:              order.Subtotal,
		TaxAmount:             order.TaxAmount,
		TaxRate:               order.TaxRate,
		DeliveryFee:           order.DeliveryFee,
		Discount:              order.Discount,
		TotalAmount:           order.TotalAmount,
		Status:                order.Status,
		StatusHistory:         history,
		CancellationReason:    order.CancellationReason,
		DeliveryAddress:       order.DeliveryAddress,
		PaymentStatus:         order.PaymentStatus,
		PaymentMethod:         order.PaymentMethod,
		PaymentDetails:        order.PaymentDetails,
		Rating:                order.Rating,
		CustomerNotes:         order.CustomerNotes,
		MerchantNotes:         order.MerchantNotes,
		DeliveryNotes:         order.DeliveryNotes,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
		ActualDeliveryTime:    order.ActualDeliveryTime,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
}
