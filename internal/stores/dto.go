package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// StoreDTO is the transport shape for a storefront. IsOpen is computed
// from business hours at read time; DistanceKm only appears on nearby
// results.
type StoreDTO struct {
	ID            uuid.UUID                    `json:"id"`
	OwnerID       uuid.UUID                    `json:"ownerId"`
	Name          string                       `json:"name"`
	Type          enums.StoreType              `json:"type"`
	Category      string                       `json:"category,omitempty"`
	Description   string                       `json:"description,omitempty"`
	Contact       *types.ContactInfo           `json:"contact,omitempty"`
	Address       types.StoreAddress           `json:"address"`
	BusinessHours types.BusinessHours          `json:"businessHours,omitempty"`
	Status        enums.StoreStatus            `json:"status"`
	Documents     []types.VerificationDocument `json:"documents,omitempty"`
	IsVerified    bool                         `json:"isVerified"`
	IsOpen        bool                         `json:"isOpen"`
	Settings      types.StoreSettings          `json:"settings"`
	Rating        types.RatingAggregate        `json:"rating"`
	DistanceKm    *float64                     `json:"distanceKm,omitempty"`
	CreatedAt     time.Time                    `json:"createdAt"`
	UpdatedAt     time.Time                    `json:"updatedAt"`
}

// AddressInput is the writable address shape.
type AddressInput struct {
	Street  string  `json:"street" validate:"required,max=200"`
	City    string  `json:"city" validate:"required,max=100"`
	State   string  `json:"state" validate:"required,max=100"`
	Pincode string  `json:"pincode" validate:"required,max=10"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
}

// CreateStoreInput carries everything needed to register a storefront.
type CreateStoreInput struct {
	Name          string               `json:"name" validate:"required,max=200"`
	Type          enums.StoreType      `json:"type" validate:"required"`
	Category      string               `json:"category" validate:"max=100"`
	Description   string               `json:"description" validate:"max=2000"`
	Contact       *types.ContactInfo   `json:"contact"`
	Address       AddressInput         `json:"address" validate:"required"`
	BusinessHours types.BusinessHours  `json:"businessHours"`
	Settings      *types.StoreSettings `json:"settings"`
}

// UpdateStoreInput carries the patchable storefront fields.
type UpdateStoreInput struct {
	Name          *string              `json:"name" validate:"omitempty,max=200"`
	Category      *string              `json:"category" validate:"omitempty,max=100"`
	Description   *string              `json:"description" validate:"omitempty,max=2000"`
	Contact       *types.ContactInfo   `json:"contact"`
	Address       *AddressInput        `json:"address"`
	BusinessHours types.BusinessHours  `json:"businessHours"`
	Settings      *types.StoreSettings `json:"settings"`
}

// Filters narrow the public browse listing.
type Filters struct {
	Category string
	Status   *enums.StoreStatus
	Query    string
}

// NearbyQuery bounds a proximity search.
type NearbyQuery struct {
	Lng      float64
	Lat      float64
	RadiusKm float64
}

// FromModel converts a store row, deriving IsOpen from business hours.
func FromModel(store *models.Store, now time.Time) *StoreDTO {
	if store == nil {
		return nil
	}
	return &StoreDTO{
		ID:            store.ID,
		OwnerID:       store.OwnerID,
		Name:          store.Name,
		Type:          store.Type,
		Category:      store.Category,
		Description:   store.Description,
		Contact:       store.Contact,
		Address:       store.Address,
		BusinessHours: store.BusinessHours,
		Status:        store.Status,
		Documents:     store.Documents,
		IsVerified:    store.IsVerified,
		IsOpen:        store.BusinessHours.OpenAt(now),
		Settings:      store.Settings,
		Rating:        store.Rating,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}
