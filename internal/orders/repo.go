package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) AppendStatusEvent(ctx context.Context, event *models.OrderStatusEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC, id ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC, id ASC")
		}).
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters Filters) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID)
	return r.page(ctx, query, params, filters)
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters Filters) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("store_id = ?", storeID)
	return r.page(ctx, query, params, filters)
}

func (r *repository) ListByDeliveryPerson(ctx context.Context, deliveryPersonID uuid.UUID, statuses []enums.OrderStatus, params pagination.Params) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("delivery_person_id = ?", deliveryPersonID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	return r.page(ctx, query, params, Filters{})
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	return r.page(ctx, query, params, filters)
}

func (r *repository) page(ctx context.Context, query *gorm.DB, params pagination.Params, filters Filters) ([]models.Order, int64, error) {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filters.PaymentStatus)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at < ?", *filters.DateTo)
	}
	if q := filters.Query; q != "" {
		query = query.Where("order_number LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeliveredTotalsBetween(ctx context.Context, from, to *time.Time) ([]float64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusDelivered)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	var totals []float64
	if err := query.Pluck("total_amount", &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *repository) DeliveredTotalsForStores(ctx context.Context, storeIDs []uuid.UUID, from, to *time.Time) ([]float64, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id IN ?", storeIDs).
		Where("status = ?", enums.OrderStatusDelivered)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	var totals []float64
	if err := query.Pluck("total_amount", &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *repository) DeliveryFeesBetween(ctx context.Context, deliveryPersonID uuid.UUID, from, to *time.Time) ([]float64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("delivery_person_id = ?", deliveryPersonID).
		Where("status = ?", enums.OrderStatusDelivered)
	if from != nil {
		query = query.Where("actual_delivery_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("actual_delivery_time < ?", *to)
	}
	var fees []float64
	if err := query.Pluck("delivery_fee", &fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}
