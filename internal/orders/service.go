package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/Sathishnaik786/Zekto/pkg/db"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/outbox"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

const orderNumberAttempts = 5

// errOrderNumberTaken signals that an insert lost the race on the order
// number unique index. A failed insert aborts the surrounding Postgres
// transaction, so the retry must start a fresh one.
var errOrderNumberTaken = errors.New("order number already taken")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// StockAdjuster reserves and returns product stock inside an order
// transaction.
type StockAdjuster interface {
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
	IncrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

type productLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type storeRatings interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating types.RatingAggregate) error
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	GetByNumber(ctx context.Context, orderNumber string) (*OrderDTO, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*OrderDTO, error)
	Cancel(ctx context.Context, input CancelInput) (*OrderDTO, error)
	Rate(ctx context.Context, input RateInput) (*OrderDTO, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters Filters) (*pagination.Page[OrderDTO], error)
	ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters Filters) (*pagination.Page[OrderDTO], error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[OrderDTO], error)
}

type service struct {
	repo     Repository
	tx       txRunner
	outbox   outboxPublisher
	stock    StockAdjuster
	products productLookup
	stores   storeRatings
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build the order service.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Outbox   outboxPublisher
	Stock    StockAdjuster
	Products productLookup
	Stores   storeRatings
}

// OrderCreatedEvent is emitted when checkout completes.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID           `json:"orderId"`
	OrderNumber string              `json:"orderNumber"`
	CustomerID  uuid.UUID           `json:"customerId"`
	StoreID     uuid.UUID           `json:"storeId"`
	TotalAmount float64             `json:"totalAmount"`
	ItemCount   int                 `json:"itemCount"`
	Payment     enums.PaymentMethod `json:"paymentMethod"`
}

// OrderStatusChangedEvent is emitted on every status append.
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID         `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	StoreID     uuid.UUID         `json:"storeId"`
	Status      enums.OrderStatus `json:"status"`
	Note        string            `json:"note,omitempty"`
}

// OrderCancelledEvent carries the recorded cancellation reason.
type OrderCancelledEvent struct {
	OrderID     uuid.UUID                `json:"orderId"`
	OrderNumber string                   `json:"orderNumber"`
	CustomerID  uuid.UUID                `json:"customerId"`
	StoreID     uuid.UUID                `json:"storeId"`
	Reason      enums.CancellationReason `json:"reason"`
}

// OrderRatedEvent carries the review snapshot.
type OrderRatedEvent struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	StoreID     uuid.UUID `json:"storeId"`
	Food        int       `json:"food"`
	Delivery    int       `json:"delivery"`
}

// NewService builds the order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock adjuster required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store lookup required")
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		outbox:   params.Outbox,
		stock:    params.Stock,
		products: params.Products,
		stores:   params.Stores,
		now:      time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	store, err := s.stores.FindByID(ctx, input.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.Status != enums.StoreStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "store is not accepting orders")
	}

	var created *models.Order
	for attempt := 0; ; attempt++ {
		orderNumber, numErr := generateOrderNumber(s.now().UTC())
		if numErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, numErr, "generate order number")
		}

		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			now := s.now().UTC()

			items := make([]models.OrderItem, 0, len(input.Items))
			for _, line := range input.Items {
				product, err := s.products.FindByID(ctx, line.ProductID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
					}
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
				}
				if product.StoreID != input.StoreID {
					return pkgerrors.New(pkgerrors.CodeValidation, "product does not belong to store")
				}
				if !product.IsAvailable {
					return pkgerrors.New(pkgerrors.CodeStateConflict, "product unavailable")
				}
				if err := s.stock.DecrementStock(ctx, tx, product.ID, line.Quantity); err != nil {
					return err
				}
				items = append(items, models.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					Quantity:    line.Quantity,
					Price:       product.DiscountedPrice(),
					Variant:     line.Variant,
					Notes:       line.Notes,
				})
			}

			order := &models.Order{
				OrderNumber:     orderNumber,
				CustomerID:      input.CustomerID,
				StoreID:         input.StoreID,
				Subtotal:        input.Subtotal,
				TaxAmount:       input.TaxAmount,
				TaxRate:         input.TaxRate,
				DeliveryFee:     input.DeliveryFee,
				Discount:        input.Discount,
				TotalAmount:     input.TotalAmount,
				Status:          enums.OrderStatusPending,
				DeliveryAddress: input.DeliveryAddress,
				PaymentStatus:   enums.PaymentStatusPending,
				PaymentMethod:   input.PaymentMethod,
				CustomerNotes:   input.CustomerNotes,
				Items:           items,
			}

			row, err := repo.Create(ctx, order)
			if err != nil {
				if dbpkg.IsUniqueViolation(err, "") {
					return fmt.Errorf("%w: %v", errOrderNumberTaken, err)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
			}
			created = row

			seed := &models.OrderStatusEvent{
				OrderID:   created.ID,
				Status:    enums.OrderStatusPending,
				Timestamp: now,
				Note:      "order placed",
				UpdatedBy: &input.CustomerID,
			}
			if err := repo.AppendStatusEvent(ctx, seed); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed status history")
			}

			return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderCreated,
				AggregateType: enums.AggregateOrder,
				AggregateID:   created.ID,
				Version:       1,
				Actor:         &outbox.ActorRef{UserID: input.CustomerID, Role: enums.UserRoleCustomer.String()},
				Data: OrderCreatedEvent{
					OrderID:     created.ID,
					OrderNumber: created.OrderNumber,
					CustomerID:  created.CustomerID,
					StoreID:     created.StoreID,
					TotalAmount: created.TotalAmount,
					ItemCount:   len(items),
					Payment:     created.PaymentMethod,
				},
			})
		})
		if err == nil {
			break
		}
		if errors.Is(err, errOrderNumberTaken) {
			if attempt < orderNumberAttempts-1 {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil, err
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*OrderDTO, error) {
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}

// SetStatus appends a history entry unconditionally. There is no
// transition table: replays and out-of-order submissions are preserved
// as-is so the history faithfully records what each actor reported.
func (s *service) SetStatus(ctx context.Context, input SetStatusInput) (*OrderDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	order, err := s.find(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now().UTC()

		updates := map[string]any{"status": input.Status}
		if input.Status == enums.OrderStatusDelivered && order.ActualDeliveryTime == nil {
			updates["actual_delivery_time"] = now
		}
		if err := repo.Update(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		event := &models.OrderStatusEvent{
			OrderID:   order.ID,
			Status:    input.Status,
			Timestamp: now,
			Note:      input.Note,
			UpdatedBy: input.UpdatedBy,
		}
		if err := repo.AppendStatusEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append status history")
		}

		eventType := enums.EventOrderStatusChanged
		if input.Status == enums.OrderStatusDelivered {
			eventType = enums.EventOrderDelivered
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.UpdatedBy, input.ActorRole),
			Data: OrderStatusChangedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				StoreID:     order.StoreID,
				Status:      input.Status,
				Note:        input.Note,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, order.ID)
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*OrderDTO, error) {
	if !input.Reason.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cancellation reason")
	}
	order, err := s.find(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	// Any status can be cancelled. Stock goes back only on the first
	// cancellation so a repeat does not restock the same items twice.
	alreadyCancelled := order.Status == enums.OrderStatusCancelled

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now().UTC()

		if !alreadyCancelled {
			for _, item := range order.Items {
				if err := s.stock.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock item")
				}
			}
		}

		updates := map[string]any{
			"status":              enums.OrderStatusCancelled,
			"cancellation_reason": input.Reason,
		}
		if err := repo.Update(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}

		note := input.Note
		if note == "" {
			note = string(input.Reason)
		}
		event := &models.OrderStatusEvent{
			OrderID:   order.ID,
			Status:    enums.OrderStatusCancelled,
			Timestamp: now,
			Note:      note,
			UpdatedBy: input.UpdatedBy,
		}
		if err := repo.AppendStatusEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append status history")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCancelled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.UpdatedBy, input.ActorRole),
			Data: OrderCancelledEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				CustomerID:  order.CustomerID,
				StoreID:     order.StoreID,
				Reason:      input.Reason,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, order.ID)
}

func (s *service) Rate(ctx context.Context, input RateInput) (*OrderDTO, error) {
	if input.Food < 1 || input.Food > 5 || input.Delivery < 1 || input.Delivery > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ratings must be between 1 and 5")
	}
	order, err := s.find(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.CustomerID != uuid.Nil && order.CustomerID != input.CustomerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to customer")
	}
	// The delivered check lives in the client flow; the server stores
	// whatever the customer submits. A re-submission replaces the
	// previous rating.
	firstRating := order.Rating == nil

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now().UTC()

		rating := types.OrderRating{
			Food:     input.Food,
			Delivery: input.Delivery,
			Comment:  input.Comment,
			RatedAt:  now,
		}
		if err := repo.Update(ctx, order.ID, map[string]any{"rating": rating}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save rating")
		}

		// Each order folds into the store aggregate once; a replaced
		// rating leaves the aggregate alone.
		if firstRating {
			store, err := s.stores.FindByID(ctx, order.StoreID)
			if err == nil {
				aggregate := foldRating(store.Rating, float64(input.Food))
				if err := s.stores.UpdateRating(ctx, store.ID, aggregate); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store rating")
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
			}
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderRated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(&order.CustomerID, enums.UserRoleCustomer.String()),
			Data: OrderRatedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				StoreID:     order.StoreID,
				Food:        input.Food,
				Delivery:    input.Delivery,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, order.ID)
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters Filters) (*pagination.Page[OrderDTO], error) {
	rows, total, err := s.repo.ListByCustomer(ctx, customerID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(rows, total, params), nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters Filters) (*pagination.Page[OrderDTO], error) {
	rows, total, err := s.repo.ListByStore(ctx, storeID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(rows, total, params), nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[OrderDTO], error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return buildPage(rows, total, params), nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func buildPage(rows []models.Order, total int64, params pagination.Params) *pagination.Page[OrderDTO] {
	items := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	page := pagination.NewPage(items, total, params)
	return &page
}

func buildActor(userID *uuid.UUID, role string) *outbox.ActorRef {
	if userID == nil {
		return nil
	}
	return &outbox.ActorRef{UserID: *userID, Role: role}
}

func foldRating(current types.RatingAggregate, value float64) types.RatingAggregate {
	count := current.Count + 1
	average := (current.Average*float64(current.Count) + value) / float64(count)
	return types.RatingAggregate{Average: average, Count: count}
}

// generateOrderNumber yields ORD + yymmdd + four random digits.
func generateOrderNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD%s%04d", now.Format("060102"), n.Int64()), nil
}
