package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// ProfileDTO is the delivery partner's combined account and work state.
type ProfileDTO struct {
	User            *users.UserDTO           `json:"user"`
	VehicleType     enums.VehicleType        `json:"vehicleType"`
	VehicleNumber   string                   `json:"vehicleNumber,omitempty"`
	CurrentLocation *types.GeoPoint          `json:"currentLocation,omitempty"`
	IsAvailable     bool                     `json:"isAvailable"`
	Documents       []types.DeliveryDocument `json:"documents"`
	Earnings        types.Earnings           `json:"earnings"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// UpdateProfileInput patches the partner's account and vehicle fields.
type UpdateProfileInput struct {
	FirstName     *string                  `json:"firstName" validate:"omitempty,max=100"`
	LastName      *string                  `json:"lastName" validate:"omitempty,max=100"`
	Email         *string                  `json:"email" validate:"omitempty,email"`
	AvatarURL     *string                  `json:"avatarUrl" validate:"omitempty,url"`
	VehicleType   *enums.VehicleType       `json:"vehicleType"`
	VehicleNumber *string                  `json:"vehicleNumber" validate:"omitempty,max=20"`
	Documents     []types.DeliveryDocument `json:"documents"`
}

// UpdateTaskStatusInput moves an assigned order along the delivery leg.
type UpdateTaskStatusInput struct {
	DeliveryPersonID uuid.UUID
	OrderID          uuid.UUID
	Status           enums.OrderStatus `json:"status" validate:"required"`
	Note             string            `json:"note" validate:"max=500"`
}

// UpdateLocationInput is the partner's live position ping.
type UpdateLocationInput struct {
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

// SetAvailabilityInput toggles whether the partner accepts new tasks.
type SetAvailabilityInput struct {
	IsAvailable bool `json:"isAvailable"`
}

// EarningsQuery bounds the payout summary period.
type EarningsQuery struct {
	From *time.Time
	To   *time.Time
}

// EarningsDTO summarises completed deliveries over a period.
type EarningsDTO struct {
	TotalDeliveries int        `json:"totalDeliveries"`
	TotalEarnings   float64    `json:"totalEarnings"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
}

func toProfileDTO(user *models.User, profile *models.DeliveryProfile) *ProfileDTO {
	dto := &ProfileDTO{
		User:      users.FromModel(user),
		Documents: []types.DeliveryDocument{},
	}
	if profile != nil {
		dto.VehicleType = profile.VehicleType
		dto.VehicleNumber = profile.VehicleNumber
		dto.CurrentLocation = profile.CurrentLocation
		dto.IsAvailable = profile.IsAvailable
		dto.Earnings = profile.Earnings
		dto.UpdatedAt = profile.UpdatedAt
		if profile.Documents != nil {
			dto.Documents = profile.Documents
		}
	}
	return dto
}
