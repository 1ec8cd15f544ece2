package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// ProductDTO is the transport shape. DiscountedPrice, IsInStock and
// IsLowStock are derived at read time.
type ProductDTO struct {
	ID                uuid.UUID             `json:"id"`
	StoreID           uuid.UUID             `json:"storeId"`
	Name              string                `json:"name"`
	Description       string                `json:"description,omitempty"`
	Price             float64               `json:"price"`
	OriginalPrice     *float64              `json:"originalPrice,omitempty"`
	Discount          float64               `json:"discount"`
	DiscountedPrice   float64               `json:"discountedPrice"`
	Category          string                `json:"category,omitempty"`
	Subcategory       string                `json:"subcategory,omitempty"`
	Images            []string              `json:"images,omitempty"`
	Tags              []string              `json:"tags,omitempty"`
	StockQuantity     int                   `json:"stockQuantity"`
	LowStockThreshold int                   `json:"lowStockThreshold"`
	TrackInventory    bool                  `json:"trackInventory"`
	IsInStock         bool                  `json:"isInStock"`
	IsLowStock        bool                  `json:"isLowStock"`
	Variants          []types.VariantGroup  `json:"variants,omitempty"`
	Rating            types.RatingAggregate `json:"rating"`
	IsAvailable       bool                  `json:"isAvailable"`
	IsFeatured        bool                  `json:"isFeatured"`
	TaxRate           float64               `json:"taxRate"`
	TaxType           string                `json:"taxType,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// CreateProductInput carries everything needed to list a product.
type CreateProductInput struct {
	Name              string               `json:"name" validate:"required,max=200"`
	Description       string               `json:"description" validate:"max=2000"`
	Price             float64              `json:"price" validate:"required,gt=0"`
	OriginalPrice     *float64             `json:"originalPrice" validate:"omitempty,gt=0"`
	Discount          float64              `json:"discount" validate:"min=0,max=100"`
	Category          string               `json:"category" validate:"max=100"`
	Subcategory       string               `json:"subcategory" validate:"max=100"`
	Images            []string             `json:"images" validate:"dive,url"`
	Tags              []string             `json:"tags" validate:"dive,max=50"`
	StockQuantity     int                  `json:"stockQuantity" validate:"min=0"`
	LowStockThreshold *int                 `json:"lowStockThreshold" validate:"omitempty,min=0"`
	TrackInventory    *bool                `json:"trackInventory"`
	Variants          []types.VariantGroup `json:"variants"`
	TaxRate           float64              `json:"taxRate" validate:"min=0,max=100"`
	TaxType           string               `json:"taxType" validate:"max=20"`
}

// UpdateProductInput carries the patchable product fields.
type UpdateProductInput struct {
	Name              *string              `json:"name" validate:"omitempty,max=200"`
	Description       *string              `json:"description" validate:"omitempty,max=2000"`
	Price             *float64             `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice     *float64             `json:"originalPrice" validate:"omitempty,gt=0"`
	Discount          *float64             `json:"discount" validate:"omitempty,min=0,max=100"`
	Category          *string              `json:"category" validate:"omitempty,max=100"`
	Subcategory       *string              `json:"subcategory" validate:"omitempty,max=100"`
	Images            []string             `json:"images" validate:"dive,url"`
	Tags              []string             `json:"tags" validate:"dive,max=50"`
	StockQuantity     *int                 `json:"stockQuantity" validate:"omitempty,min=0"`
	LowStockThreshold *int                 `json:"lowStockThreshold" validate:"omitempty,min=0"`
	TrackInventory    *bool                `json:"trackInventory"`
	Variants          []types.VariantGroup `json:"variants"`
	IsAvailable       *bool                `json:"isAvailable"`
	IsFeatured        *bool                `json:"isFeatured"`
	TaxRate           *float64             `json:"taxRate" validate:"omitempty,min=0,max=100"`
	TaxType           *string              `json:"taxType" validate:"omitempty,max=20"`
}

// Filters narrow the catalog listing.
type Filters struct {
	StoreID     *uuid.UUID
	Category    string
	OnlyInStock bool
	Featured    *bool
	Query       string
}

// FromModel converts a product row, deriving the computed read fields.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:                p.ID,
		StoreID:           p.StoreID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		OriginalPrice:     p.OriginalPrice,
		Discount:          p.Discount,
		DiscountedPrice:   p.DiscountedPrice(),
		Category:          p.Category,
		Subcategory:       p.Subcategory,
		Images:            p.Images,
		Tags:              p.Tags,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		TrackInventory:    p.TrackInventory,
		IsInStock:         p.IsInStock(),
		IsLowStock:        p.IsLowStock(),
		Variants:          p.Variants,
		Rating:            p.Rating,
		IsAvailable:       p.IsAvailable,
		IsFeatured:        p.IsFeatured,
		TaxRate:           p.TaxRate,
		TaxType:           p.TaxType,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
