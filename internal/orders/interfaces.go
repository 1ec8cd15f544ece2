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

// Repository defines persistence operations for orders and their
// append-only status history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	AppendStatusEvent(ctx context.Context, event *models.OrderStatusEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters Filters) ([]models.Order, int64, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters Filters) ([]models.Order, int64, error)
	ListByDeliveryPerson(ctx context.Context, deliveryPersonID uuid.UUID, statuses []enums.OrderStatus, params pagination.Params) ([]models.Order, int64, error)
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Order, int64, error)
	Count(ctx context.Context) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.Order, error)
	DeliveredTotalsBetween(ctx context.Context, from, to *time.Time) ([]float64, error)
	DeliveredTotalsForStores(ctx context.Context, storeIDs []uuid.UUID, from, to *time.Time) ([]float64, error)
	DeliveryFeesBetween(ctx context.Context, deliveryPersonID uuid.UUID, from, to *time.Time) ([]float64, error)
}
