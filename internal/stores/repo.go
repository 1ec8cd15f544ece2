package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// Repository persists storefronts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stores repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) (*models.Store, error) {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Update applies a partial column update to the store row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatus moves a store through its verification lifecycle.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListByOwner returns every store owned by the merchant, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var rows []models.Store
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// List returns one page of stores matching the filters.
func (r *Repository) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Store{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if q := filters.Query; q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Store
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindInBounds returns active stores inside the lng/lat bounding box. The
// caller re-checks exact distance; this is only the index-backed prefilter.
func (r *Repository) FindInBounds(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]models.Store, error) {
	var rows []models.Store
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.StoreStatusActive).
		Where("lng BETWEEN ? AND ?", minLng, maxLng).
		Where("lat BETWEEN ? AND ?", minLat, maxLat).
		Find(&rows).Error
	return rows, err
}

// Count returns the total number of stores.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&total).Error
	return total, err
}

// FindRecent returns the latest registered stores.
func (r *Repository) FindRecent(ctx context.Context, limit int) ([]models.Store, error) {
	var rows []models.Store
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// UpdateRating replaces the store's review aggregate.
func (r *Repository) UpdateRating(ctx context.Context, id uuid.UUID, rating types.RatingAggregate) error {
	return r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}
