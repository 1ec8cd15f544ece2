package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/pagination"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

func setupStoresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL DEFAULT 'other',
  category TEXT,
  description TEXT,
  contact TEXT,
  address TEXT,
  lng REAL NOT NULL DEFAULT 0,
  lat REAL NOT NULL DEFAULT 0,
  business_hours TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  documents TEXT,
  is_verified INTEGER NOT NULL DEFAULT 0,
  settings TEXT,
  rating TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedStore(t *testing.T, repo *Repository, mutate func(*models.Store)) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		Name:     "Andhra Meals",
		Type:     enums.StoreTypeRestaurant,
		Category: "south-indian",
		Status:   enums.StoreStatusActive,
	}
	if mutate != nil {
		mutate(store)
	}
	created, err := repo.Create(context.Background(), store)
	require.NoError(t, err)
	return created
}

func TestStoreRepoCreateAndFind(t *testing.T) {
	repo := NewRepository(setupStoresTestDB(t))
	store := seedStore(t, repo, nil)

	found, err := repo.FindByID(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Equal(t, "Andhra Meals", found.Name)
	assert.Equal(t, enums.StoreStatusActive, found.Status)
}

func TestStoreRepoListFiltersByCategoryAndQuery(t *testing.T) {
	repo := NewRepository(setupStoresTestDB(t))
	seedStore(t, repo, nil)
	seedStore(t, repo, func(s *models.Store) {
		s.Name = "Chai Point"
		s.Category = "beverages"
	})

	rows, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, Filters{Category: "beverages"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chai Point", rows[0].Name)

	rows, total, err = repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, Filters{Query: "Meals"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Andhra Meals", rows[0].Name)
}

func TestStoreRepoFindInBoundsSkipsInactive(t *testing.T) {
	repo := NewRepository(setupStoresTestDB(t))
	seedStore(t, repo, func(s *models.Store) {
		s.Name = "Inside"
		s.Lng, s.Lat = 77.60, 12.97
	})
	seedStore(t, repo, func(s *models.Store) {
		s.Name = "Suspended"
		s.Lng, s.Lat = 77.60, 12.97
		s.Status = enums.StoreStatusSuspended
	})
	seedStore(t, repo, func(s *models.Store) {
		s.Name = "Outside"
		s.Lng, s.Lat = 78.50, 13.90
	})

	rows, err := repo.FindInBounds(context.Background(), 77.5, 12.9, 77.7, 13.1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Inside", rows[0].Name)
}

func TestStoreRepoUpdateRating(t *testing.T) {
	repo := NewRepository(setupStoresTestDB(t))
	store := seedStore(t, repo, nil)

	err := repo.UpdateRating(context.Background(), store.ID, types.RatingAggregate{Average: 4.5, Count: 2})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), store.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, found.Rating.Average, 0.001)
	assert.Equal(t, 2, found.Rating.Count)
}

func TestStoreRepoUpdateStatusAndCount(t *testing.T) {
	repo := NewRepository(setupStoresTestDB(t))
	store := seedStore(t, repo, func(s *models.Store) { s.Status = enums.StoreStatusPending })
	seedStore(t, repo, nil)

	require.NoError(t, repo.UpdateStatus(context.Background(), store.ID, enums.StoreStatusActive))
	found, err := repo.FindByID(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.StoreStatusActive, found.Status)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
