package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

type stubUserRepo struct {
	users   map[uuid.UUID]*models.User
	updates map[uuid.UUID]map[string]any
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updates == nil {
		s.updates = map[uuid.UUID]map[string]any{}
	}
	s.updates[id] = updates
	if name, ok := updates["first_name"].(string); ok {
		s.users[id].FirstName = name
	}
	if email, ok := updates["email"].(string); ok {
		s.users[id].Email = &email
	}
	return nil
}

type stubProfileRepo struct {
	profiles map[uuid.UUID]*models.CustomerProfile
	created  int
	saved    int
}

func (s *stubProfileRepo) Create(_ context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error) {
	profile.ID = uuid.New()
	s.profiles[profile.UserID] = profile
	s.created++
	return profile, nil
}

func (s *stubProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *stubProfileRepo) Update(_ context.Context, userID uuid.UUID, updates map[string]any) error {
	if lang, ok := updates["language"].(string); ok {
		s.profiles[userID].Language = lang
	}
	return nil
}

func (s *stubProfileRepo) Save(_ context.Context, profile *models.CustomerProfile) error {
	s.profiles[profile.UserID] = profile
	s.saved++
	return nil
}

func newCustomerFixture(t *testing.T) (Service, *stubUserRepo, *stubProfileRepo, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	phone := "+919876543210"
	userRepo := &stubUserRepo{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, PhoneNumber: &phone, Role: enums.UserRoleCustomer, FirstName: "Asha"},
	}}
	profileRepo := &stubProfileRepo{profiles: map[uuid.UUID]*models.CustomerProfile{}}
	svc, err := NewService(userRepo, profileRepo)
	require.NoError(t, err)
	return svc, userRepo, profileRepo, userID
}

func requireCustomerCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}

func TestGetProfileCreatesRowLazily(t *testing.T) {
	svc, _, profileRepo, userID := newCustomerFixture(t)

	dto, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, profileRepo.created)
	assert.Equal(t, "Asha", dto.User.FirstName)
	assert.Empty(t, dto.FavoriteStoreIDs)
	assert.Equal(t, "en", dto.Language)

	_, err = svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, profileRepo.created)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _, _, _ := newCustomerFixture(t)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	requireCustomerCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateProfileSplitsUserAndProfileFields(t *testing.T) {
	svc, userRepo, profileRepo, userID := newCustomerFixture(t)

	first := "  Asha Rani "
	email := "Asha@Example.COM"
	lang := "te"
	dto, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		FirstName: &first,
		Email:     &email,
		Language:  &lang,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rani", userRepo.users[userID].FirstName)
	require.NotNil(t, userRepo.users[userID].Email)
	assert.Equal(t, "asha@example.com", *userRepo.users[userID].Email)
	assert.Equal(t, "te", profileRepo.profiles[userID].Language)
	assert.Equal(t, "te", dto.Language)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	svc, _, profileRepo, userID := newCustomerFixture(t)
	storeID := uuid.New()

	dto, err := svc.AddFavorite(context.Background(), userID, storeID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{storeID}, dto.FavoriteStoreIDs)
	assert.Equal(t, 1, profileRepo.saved)

	dto, err = svc.AddFavorite(context.Background(), userID, storeID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{storeID}, dto.FavoriteStoreIDs)
	assert.Equal(t, 1, profileRepo.saved)
}

func TestRemoveFavorite(t *testing.T) {
	svc, _, _, userID := newCustomerFixture(t)
	keep := uuid.New()
	drop := uuid.New()
	_, err := svc.AddFavorite(context.Background(), userID, keep)
	require.NoError(t, err)
	_, err = svc.AddFavorite(context.Background(), userID, drop)
	require.NoError(t, err)

	dto, err := svc.RemoveFavorite(context.Background(), userID, drop)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{keep}, dto.FavoriteStoreIDs)
}

func TestAddAddressDefaultFlagWins(t *testing.T) {
	svc, _, _, userID := newCustomerFixture(t)

	_, err := svc.AddAddress(context.Background(), userID, AddAddressInput{
		Label: "home", Street: "12 MG Road", City: "Bengaluru", State: "KA",
		Pincode: "560001", Lng: 77.60, Lat: 12.97, IsDefault: true,
	})
	require.NoError(t, err)

	dto, err := svc.AddAddress(context.Background(), userID, AddAddressInput{
		Label: "work", Street: "4 Residency Road", City: "Bengaluru", State: "KA",
		Pincode: "560025", Lng: 77.61, Lat: 12.96, IsDefault: true,
	})
	require.NoError(t, err)
	require.Len(t, dto.SavedAddresses, 2)
	assert.False(t, dto.SavedAddresses[0].IsDefault)
	assert.True(t, dto.SavedAddresses[1].IsDefault)
	assert.Equal(t, types.NewGeoPoint(77.61, 12.96), dto.SavedAddresses[1].Location)
}

func TestRemoveAddressByIndex(t *testing.T) {
	svc, _, _, userID := newCustomerFixture(t)
	_, err := svc.AddAddress(context.Background(), userID, AddAddressInput{
		Label: "home", Street: "12 MG Road", City: "Bengaluru", State: "KA", Pincode: "560001",
	})
	require.NoError(t, err)

	dto, err := svc.RemoveAddress(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Empty(t, dto.SavedAddresses)

	_, err = svc.RemoveAddress(context.Background(), userID, 3)
	requireCustomerCode(t, err, pkgerrors.CodeNotFound)
}
