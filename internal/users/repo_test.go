package users

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
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  email TEXT,
  phone_number TEXT,
  role TEXT NOT NULL DEFAULT 'customer',
  first_name TEXT,
  last_name TEXT,
  avatar_url TEXT,
  device_info TEXT,
  is_guest INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  status TEXT NOT NULL DEFAULT 'active',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()
	phone := "+91" + uuid.NewString()[:10]
	user := &models.User{
		ID:          uuid.New(),
		PhoneNumber: &phone,
		Role:        enums.UserRoleCustomer,
		FirstName:   "Ravi",
		IsActive:    true,
		Status:      enums.UserStatusActive,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserRepoCreateAndFindByPhone(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	phone := "+919876543210"
	_, err := repo.Create(context.Background(), CreateUserDTO{
		PhoneNumber: &phone,
		Role:        enums.UserRoleMerchant,
		FirstName:   "Meena",
	})
	require.NoError(t, err)

	found, err := repo.FindByPhone(context.Background(), phone)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, found.ID)
	assert.Equal(t, enums.UserRoleMerchant, found.Role)
	assert.True(t, found.IsActive)
	assert.Equal(t, enums.UserStatusActive, found.Status)
}

func TestUserRepoListFiltersByRoleAndQuery(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	seedUser(t, db, nil)
	seedUser(t, db, func(u *models.User) {
		u.Role = enums.UserRoleDelivery
		u.FirstName = "Suresh"
	})
	seedUser(t, db, func(u *models.User) { u.FirstName = "Ramesh" })

	role := enums.UserRoleDelivery
	page, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, Filters{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Suresh", page.Items[0].FirstName)

	page, err = repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, Filters{Query: "mesh"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ramesh", page.Items[0].FirstName)
}

func TestUserRepoListPaginates(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	for i := 0; i < 5; i++ {
		seedUser(t, db, nil)
	}

	page, err := repo.List(context.Background(), pagination.Params{Page: 2, Limit: 2}, Filters{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Pages)
}

func TestUserRepoUpdateStatusSuspendClearsActive(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	user := seedUser(t, db, nil)

	require.NoError(t, repo.UpdateStatus(context.Background(), user.ID, enums.UserStatusSuspended))
	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.UserStatusSuspended, found.Status)
	assert.False(t, found.IsActive)

	require.NoError(t, repo.UpdateStatus(context.Background(), user.ID, enums.UserStatusActive))
	found, err = repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, found.IsActive)
}

func TestUserRepoCountByRole(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	seedUser(t, db, nil)
	seedUser(t, db, nil)
	seedUser(t, db, func(u *models.User) { u.Role = enums.UserRoleMerchant })

	total, err := repo.CountByRole(context.Background(), enums.UserRoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
