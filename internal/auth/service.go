package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Sathishnaik786/Zekto/internal/users"
	pkgAuth "github.com/Sathishnaik786/Zekto/pkg/auth"
	"github.com/Sathishnaik786/Zekto/pkg/auth/session"
	"github.com/Sathishnaik786/Zekto/pkg/config"
	"github.com/Sathishnaik786/Zekto/pkg/db/models"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	pkgerrors "github.com/Sathishnaik786/Zekto/pkg/errors"
	"github.com/Sathishnaik786/Zekto/pkg/security"
	"github.com/Sathishnaik786/Zekto/pkg/types"
)

const invalidCodeMessage = "invalid or expired code"

// Service defines the behavior required by the auth controller.
type Service interface {
	SendOTP(ctx context.Context, req SendOTPRequest) (*SendOTPResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error)
	GuestLogin(ctx context.Context, req GuestRequest) (*AuthResponse, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type profileRepository interface {
	Create(ctx context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error)
}

type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(verificationID string) string
	OTPAttemptsKey(verificationID string) string
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

// ServiceParams bundles the dependencies required to build the auth service.
type ServiceParams struct {
	UserRepo       userRepository
	ProfileRepo    profileRepository
	OTPStore       otpStore
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	OTPConfig      config.OTPConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	users    userRepository
	profiles profileRepository
	otp      otpStore
	session  sessionManager
	jwtCfg   config.JWTConfig
	otpCfg   config.OTPConfig
	passCfg  config.PasswordConfig
}

// otpRecord is the JSON document stored in redis per verification attempt.
type otpRecord struct {
	PhoneNumber string `json:"phoneNumber"`
	CodeHash    string `json:"codeHash"`
}

// NewService constructs the OTP auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.OTPStore == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:    params.UserRepo,
		profiles: params.ProfileRepo,
		otp:      params.OTPStore,
		session:  params.SessionManager,
		jwtCfg:   params.JWTConfig,
		otpCfg:   params.OTPConfig,
		passCfg:  params.PasswordConfig,
	}, nil
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) (*SendOTPResponse, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number required")
	}

	code, err := generateCode(s.otpCfg.CodeLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate code")
	}
	hash, err := security.HashSecret(code, s.passCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash code")
	}

	verificationID := uuid.NewString()
	record, err := json.Marshal(otpRecord{PhoneNumber: phone, CodeHash: hash})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode otp record")
	}
	if err := s.otp.Set(ctx, s.otp.OTPKey(verificationID), string(record), s.otpCfg.TTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}

	resp := &SendOTPResponse{
		VerificationID: verificationID,
		ExpiresIn:      int(s.otpCfg.TTL.Seconds()),
	}
	if s.otpCfg.DevEcho {
		resp.Code = code
	}
	return resp, nil
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error) {
	key := s.otp.OTPKey(req.VerificationID)
	raw, err := s.otp.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load otp")
	}

	attemptsKey := s.otp.OTPAttemptsKey(req.VerificationID)
	attempts, err := s.otp.IncrWithTTL(ctx, attemptsKey, s.otpCfg.TTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count attempts")
	}
	if s.otpCfg.MaxAttempts > 0 && attempts > int64(s.otpCfg.MaxAttempts) {
		_ = s.otp.Del(ctx, key, attemptsKey)
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many verification attempts")
	}

	var record otpRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode otp record")
	}

	valid, err := security.VerifySecret(req.Code, record.CodeHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify code")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
	}
	_ = s.otp.Del(ctx, key, attemptsKey)

	user, err := s.findOrCreateCustomer(ctx, record.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled")
	}
	return s.issueTokens(ctx, user)
}

func (s *service) GuestLogin(ctx context.Context, req GuestRequest) (*AuthResponse, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id required")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Role:    enums.UserRoleCustomer,
		IsGuest: true,
		DeviceInfo: &types.DeviceInfo{
			DeviceID:   deviceID,
			DeviceType: strings.TrimSpace(req.DeviceType),
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create guest user")
	}
	return s.issueTokens(ctx, user)
}

func (s *service) findOrCreateCustomer(ctx context.Context, phoneNumber string) (*models.User, error) {
	user, err := s.users.FindByPhone(ctx, phoneNumber)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	phone := phoneNumber
	user, err = s.users.Create(ctx, users.CreateUserDTO{
		PhoneNumber: &phone,
		Role:        enums.UserRoleCustomer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	if _, err := s.profiles.Create(ctx, &models.CustomerProfile{UserID: user.ID}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	return user, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*AuthResponse, error) {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	user.LastLoginAt = &now

	accessID := session.NewAccessID()
	var phone string
	if user.PhoneNumber != nil {
		phone = *user.PhoneNumber
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:      user.ID,
		Role:        user.Role,
		PhoneNumber: phone,
		IsGuest:     user.IsGuest,
		JTI:         accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

func generateCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
