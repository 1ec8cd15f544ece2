package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/internal/users"
	"github.com/Sathishnaik786/Zekto/pkg/config"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
)

type stubUserRepo struct {
	byPhone map[string]*models.User
	created []*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byPhone: map[string]*models.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	if user.PhoneNumber != nil {
		s.byPhone[*user.PhoneNumber] = user
	}
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserRepo) FindByPhone(_ context.Context, phoneNumber string) (*models.User, error) {
	if user, ok := s.byPhone[phoneNumber]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error {
	return nil
}

type stubProfileRepo struct {
	created []*models.CustomerProfile
}

func (s *stubProfileRepo) Create(_ context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error) {
	s.created = append(s.created, profile)
	return profile, nil
}

type stubOTPStore struct {
	values map[string]string
	counts map[string]int64
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{values: map[string]string{}, counts: map[string]int64{}}
}

func (s *stubOTPStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	return nil
}

func (s *stubOTPStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (s *stubOTPStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func (s *stubOTPStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
		delete(s.counts, key)
	}
	return nil
}

func (s *stubOTPStore) OTPKey(id string) string         { return "otp:" + id }
func (s *stubOTPStore) OTPAttemptsKey(id string) string { return "otp:" + id + ":attempts" }

type stubSessionManager struct{}

func (stubSessionManager) Generate(context.Context, string) (string, error) {
	return "refresh-token", nil
}

func newTestService(t *testing.T, userRepo *stubUserRepo, store *stubOTPStore) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		UserRepo:       userRepo,
		ProfileRepo:    &stubProfileRepo{},
		OTPStore:       store,
		SessionManager: stubSessionManager{},
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "zekto-test",
			ExpirationMinutes: 15,
		},
		OTPConfig: config.OTPConfig{
			CodeLength:  6,
			TTL:         5 * time.Minute,
			MaxAttempts: 3,
			DevEcho:     true,
		},
		PasswordConfig: config.PasswordConfig{},
	})
	require.NoError(t, err)
	return svc
}

func TestSendAndVerifyOTPCreatesCustomer(t *testing.T) {
	userRepo := newStubUserRepo()
	store := newStubOTPStore()
	svc := newTestService(t, userRepo, store)

	sent, err := svc.SendOTP(context.Background(), SendOTPRequest{PhoneNumber: "+919876543210"})
	require.NoError(t, err)
	require.NotEmpty(t, sent.VerificationID)
	require.Len(t, sent.Code, 6)

	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           sent.Code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "refresh-token", resp.RefreshToken)
	require.NotNil(t, resp.User)
	require.Equal(t, enums.UserRoleCustomer, resp.User.Role)
	require.NotNil(t, resp.User.PhoneNumber)
	require.Equal(t, "+919876543210", *resp.User.PhoneNumber)
	require.False(t, resp.User.IsGuest)

	// code is single use
	_, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           sent.Code,
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestVerifyOTPExistingUserIsReused(t *testing.T) {
	userRepo := newStubUserRepo()
	store := newStubOTPStore()
	svc := newTestService(t, userRepo, store)

	phone := "+911234567890"
	existing := &models.User{
		ID:          uuid.New(),
		PhoneNumber: &phone,
		Role:        enums.UserRoleCustomer,
		IsActive:    true,
	}
	userRepo.byPhone[phone] = existing

	sent, err := svc.SendOTP(context.Background(), SendOTPRequest{PhoneNumber: phone})
	require.NoError(t, err)

	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           sent.Code,
	})
	require.NoError(t, err)
	require.Equal(t, existing.ID, resp.User.ID)
	require.Empty(t, userRepo.created)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), newStubOTPStore())

	sent, err := svc.SendOTP(context.Background(), SendOTPRequest{PhoneNumber: "+919876543210"})
	require.NoError(t, err)

	_, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           "000000",
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestVerifyOTPUnknownVerificationID(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), newStubOTPStore())

	_, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		VerificationID: uuid.NewString(),
		Code:           "123456",
	})
	requireCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestVerifyOTPTooManyAttempts(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), newStubOTPStore())

	sent, err := svc.SendOTP(context.Background(), SendOTPRequest{PhoneNumber: "+919876543210"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{
			VerificationID: sent.VerificationID,
			Code:           "000000",
		})
		requireCode(t, err, pkgerrors.CodeUnauthorized)
	}

	_, err = svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		VerificationID: sent.VerificationID,
		Code:           sent.Code,
	})
	requireCode(t, err, pkgerrors.CodeRateLimit)
}

func TestGuestLogin(t *testing.T) {
	userRepo := newStubUserRepo()
	svc := newTestService(t, userRepo, newStubOTPStore())

	resp, err := svc.GuestLogin(context.Background(), GuestRequest{DeviceID: "device-1", DeviceType: "android"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.True(t, resp.User.IsGuest)
	require.Equal(t, enums.UserRoleCustomer, resp.User.Role)
	require.Len(t, userRepo.created, 1)
	require.NotNil(t, userRepo.created[0].DeviceInfo)
	require.Equal(t, "device-1", userRepo.created[0].DeviceInfo.DeviceID)
}

func TestGuestLoginRequiresDeviceID(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), newStubOTPStore())

	_, err := svc.GuestLogin(context.Background(), GuestRequest{DeviceID: "  "})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}
