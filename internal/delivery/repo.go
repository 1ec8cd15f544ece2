package delivery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
)

// Repository persists delivery partner profiles keyed by user.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a delivery profile repo.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a fresh profile row for the user.
func (r *Repository) Create(ctx context.Context, profile *models.DeliveryProfile) (*models.DeliveryProfile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByUserID loads the profile belonging to the user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryProfile, error) {
	var profile models.DeliveryProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies a partial column update to the profile row.
func (r *Repository) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.DeliveryProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// Save persists the full profile row, used after slice mutations.
func (r *Repository) Save(ctx context.Context, profile *models.DeliveryProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
