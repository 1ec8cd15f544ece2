package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
)

// Repository persists merchant profiles keyed by user.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a merchant profile repo.
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

// Create inserts a fresh profile row for the user.
func (r *Repository) Create(ctx context.Context, profile *models.MerchantProfile) (*models.MerchantProfile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByUserID loads the profile belonging to the user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MerchantProfile, error) {
	var profile models.MerchantProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save persists the full profile row.
func (r *Repository) Save(ctx context.Context, profile *models.MerchantProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
