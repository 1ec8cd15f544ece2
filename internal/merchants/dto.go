package merchants

import (
	"time"

	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// MerchantDTO is the merchant account plus business details.
type MerchantDTO struct {
	User         *users.UserDTO     `json:"user"`
	BusinessName string             `json:"businessName"`
	BusinessType string             `json:"businessType,omitempty"`
	GSTNumber    *string            `json:"gstNumber,omitempty"`
	BankDetails  *types.BankDetails `json:"bankDetails,omitempty"`
	Earnings     types.Earnings     `json:"earnings"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// CreateMerchantInput registers a merchant account and business.
type CreateMerchantInput struct {
	PhoneNumber  string  `json:"phoneNumber" validate:"required,e164"`
	Email        *string `json:"email" validate:"omitempty,email"`
	FirstName    string  `json:"firstName" validate:"max=100"`
	LastName     string  `json:"lastName" validate:"max=100"`
	BusinessName string  `json:"businessName" validate:"required,max=200"`
	BusinessType string  `json:"businessType" validate:"max=100"`
	GSTNumber    *string `json:"gstNumber" validate:"omitempty,max=20"`
}

// UpdateProfileInput patches the merchant's account and business fields.
type UpdateProfileInput struct {
	FirstName    *string            `json:"firstName" validate:"omitempty,max=100"`
	LastName     *string            `json:"lastName" validate:"omitempty,max=100"`
	Email        *string            `json:"email" validate:"omitempty,email"`
	AvatarURL    *string            `json:"avatarUrl" validate:"omitempty,url"`
	BusinessName *string            `json:"businessName" validate:"omitempty,max=200"`
	BusinessType *string            `json:"businessType" validate:"omitempty,max=100"`
	GSTNumber    *string            `json:"gstNumber" validate:"omitempty,max=20"`
	BankDetails  *types.BankDetails `json:"bankDetails"`
}

// EarningsQuery bounds the revenue summary period.
type EarningsQuery struct {
	From *time.Time
	To   *time.Time
}

// EarningsDTO summarises delivered order revenue across the merchant's stores.
type EarningsDTO struct {
	TotalOrders  int        `json:"totalOrders"`
	TotalRevenue float64    `json:"totalRevenue"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
}

func toMerchantDTO(user *models.User, profile *models.MerchantProfile) *MerchantDTO {
	dto := &MerchantDTO{User: users.FromModel(user)}
	if profile != nil {
		dto.BusinessName = profile.BusinessName
		dto.BusinessType = profile.BusinessType
		dto.GSTNumber = profile.GSTNumber
		dto.BankDetails = profile.BankDetails
		dto.Earnings = profile.Earnings
		dto.UpdatedAt = profile.UpdatedAt
	}
	return dto
}
