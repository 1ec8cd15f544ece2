package stores

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/geo"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

const defaultNearbyRadiusKm = 5.0

type repository interface {
	Create(ctx context.Context, store *models.Store) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Store, int64, error)
	FindInBounds(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]models.Store, error)
}

// Service exposes storefront management and discovery.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	Browse(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[StoreDTO], error)
	Nearby(ctx context.Context, query NearbyQuery) ([]StoreDTO, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) (*StoreDTO, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService constructs the stores service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stores repository is required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store type")
	}

	store := &models.Store{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		Contact:     input.Contact,
		Address: types.StoreAddress{
			Street:   strings.TrimSpace(input.Address.Street),
			City:     strings.TrimSpace(input.Address.City),
			State:    strings.TrimSpace(input.Address.State),
			Pincode:  strings.TrimSpace(input.Address.Pincode),
			Location: types.NewGeoPoint(input.Address.Lng, input.Address.Lat),
		},
		Lng:           input.Address.Lng,
		Lat:           input.Address.Lat,
		BusinessHours: input.BusinessHours,
		Status:        enums.StoreStatusPending,
	}
	if input.Settings != nil {
		store.Settings = *input.Settings
	}

	created, err := s.repo.Create(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(created, s.now()), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store, s.now()), nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != uuid.Nil && store.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store does not belong to merchant")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Contact != nil {
		updates["contact"] = input.Contact
	}
	if input.Address != nil {
		address := types.StoreAddress{
			Street:   strings.TrimSpace(input.Address.Street),
			City:     strings.TrimSpace(input.Address.City),
			State:    strings.TrimSpace(input.Address.State),
			Pincode:  strings.TrimSpace(input.Address.Pincode),
			Location: types.NewGeoPoint(input.Address.Lng, input.Address.Lat),
		}
		updates["address"] = address
		updates["lng"] = input.Address.Lng
		updates["lat"] = input.Address.Lat
	}
	if input.BusinessHours != nil {
		updates["business_hours"] = input.BusinessHours
	}
	if input.Settings != nil {
		updates["settings"] = input.Settings
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return s.Get(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	now := s.now()
	items := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i], now))
	}
	return items, nil
}

func (s *service) Browse(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[StoreDTO], error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "browse stores")
	}
	now := s.now()
	items := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i], now))
	}
	page := pagination.NewPage(items, total, params)
	return &page, nil
}

// Nearby prefilters with an index-backed bounding box, then ranks by exact
// haversine distance.
func (s *service) Nearby(ctx context.Context, query NearbyQuery) ([]StoreDTO, error) {
	if query.Lng < -180 || query.Lng > 180 || query.Lat < -90 || query.Lat > 90 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
	}
	radius := query.RadiusKm
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}

	center := [2]float64{query.Lng, query.Lat}
	box := geo.BoundingBox(center, radius)
	rows, err := s.repo.FindInBounds(ctx, box[0], box[1], box[2], box[3])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "nearby stores")
	}

	now := s.now()
	items := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		distance := geo.DistanceKm(center, [2]float64{rows[i].Lng, rows[i].Lat})
		if distance > radius {
			continue
		}
		dto := FromModel(&rows[i], now)
		d := distance
		dto.DistanceKm = &d
		items = append(items, *dto)
	}
	sort.Slice(items, func(i, j int) bool {
		return *items[i].DistanceKm < *items[j].DistanceKm
	})
	return items, nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus) (*StoreDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store status")
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store status")
	}
	return s.Get(ctx, id)
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}
