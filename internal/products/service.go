package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
)

type repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Product, int64, error)
}

type storeLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes catalog management for merchants and browse for customers.
type Service interface {
	Create(ctx context.Context, ownerID, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Update(ctx context.Context, ownerID, storeID, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error
	Browse(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[ProductDTO], error)
}

type service struct {
	repo   repository
	stores storeLookup
}

// NewService constructs the products service.
func NewService(repo repository, stores storeLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store lookup is required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Create(ctx context.Context, ownerID, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.authorizeStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:       storeID,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Discount:      input.Discount,
		Category:      strings.TrimSpace(input.Category),
		Subcategory:   strings.TrimSpace(input.Subcategory),
		Images:        input.Images,
		Tags:          input.Tags,
		StockQuantity: input.StockQuantity,
		Variants:      input.Variants,
		IsAvailable:   true,
		TaxRate:       input.TaxRate,
		TaxType:       input.TaxType,
	}
	product.TrackInventory = true
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	}
	product.LowStockThreshold = 10
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) Update(ctx context.Context, ownerID, storeID, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.authorizeProduct(ctx, ownerID, storeID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.OriginalPrice != nil {
		updates["original_price"] = *input.OriginalPrice
	}
	if input.Discount != nil {
		updates["discount"] = *input.Discount
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Subcategory != nil {
		updates["subcategory"] = strings.TrimSpace(*input.Subcategory)
	}
	if input.Images != nil {
		updates["images"] = input.Images
	}
	if input.Tags != nil {
		updates["tags"] = input.Tags
	}
	if input.StockQuantity != nil {
		updates["stock_quantity"] = *input.StockQuantity
	}
	if input.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *input.LowStockThreshold
	}
	if input.TrackInventory != nil {
		updates["track_inventory"] = *input.TrackInventory
	}
	if input.Variants != nil {
		updates["variants"] = input.Variants
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		updates["is_featured"] = *input.IsFeatured
	}
	if input.TaxRate != nil {
		updates["tax_rate"] = *input.TaxRate
	}
	if input.TaxType != nil {
		updates["tax_type"] = *input.TaxType
	}

	if err := s.repo.Update(ctx, product.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.Get(ctx, product.ID)
}

func (s *service) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	product, err := s.authorizeProduct(ctx, ownerID, storeID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) Browse(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[ProductDTO], error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "browse products")
	}
	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	page := pagination.NewPage(items, total, params)
	return &page, nil
}

func (s *service) authorizeStore(ctx context.Context, ownerID, storeID uuid.UUID) error {
	if storeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if ownerID != uuid.Nil && store.OwnerID != ownerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "store does not belong to merchant")
	}
	return nil
}

func (s *service) authorizeProduct(ctx context.Context, ownerID, storeID, id uuid.UUID) (*models.Product, error) {
	if err := s.authorizeStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to store")
	}
	return product, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
