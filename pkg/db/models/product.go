package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/types"
)

// Product is one sellable item in a store's catalog. DiscountedPrice,
// IsInStock and IsLowStock are computed on read and never stored.
type Product struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID           uuid.UUID             `gorm:"column:store_id;type:uuid;not null;index"`
	Name              string                `gorm:"column:name;not null"`
	Description       string                `gorm:"column:description"`
	Price             float64               `gorm:"column:price;not null"`
	OriginalPrice     *float64              `gorm:"column:original_price"`
	Discount          float64               `gorm:"column:discount;not null;default:0"`
	Category          string                `gorm:"column:category;index"`
	Subcategory       string                `gorm:"column:subcategory"`
	Images            []string              `gorm:"column:images;type:jsonb;serializer:json"`
	Tags              []string              `gorm:"column:tags;type:jsonb;serializer:json"`
	StockQuantity     int                   `gorm:"column:stock_quantity;not null;default:0"`
	LowStockThreshold int                   `gorm:"column:low_stock_threshold;not null;default:10"`
	TrackInventory    bool                  `gorm:"column:track_inventory;not null;default:true"`
	Variants          []types.VariantGroup  `gorm:"column:variants;type:jsonb;serializer:json"`
	Rating            types.RatingAggregate `gorm:"column:rating;type:jsonb"`
	IsAvailable       bool                  `gorm:"column:is_available;not null;default:true"`
	IsFeatured        bool                  `gorm:"column:is_featured;not null;default:false"`
	TaxRate           float64               `gorm:"column:tax_rate;not null;default:0"`
	TaxType           string                `gorm:"column:tax_type"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// DiscountedPrice applies the percentage discount to the list price.
func (p Product) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price - p.Price*p.Discount/100
}

// IsInStock reports whether the product can be ordered right now.
func (p Product) IsInStock() bool {
	if !p.TrackInventory {
		return true
	}
	return p.StockQuantity > 0
}

// IsLowStock reports whether stock has fallen to the alert threshold.
func (p Product) IsLowStock() bool {
	if !p.TrackInventory {
		return false
	}
	return p.StockQuantity <= p.LowStockThreshold
}
