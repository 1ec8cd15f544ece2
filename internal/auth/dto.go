package auth

import "github.com/Sathishnaik786/Zekto/internal/users"

// SendOTPRequest starts a phone verification.
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

// SendOTPResponse carries the handle the client presents on verify. Code is
// only populated when dev echo is enabled.
type SendOTPResponse struct {
	VerificationID string `json:"verificationId"`
	ExpiresIn      int    `json:"expiresIn"`
	Code           string `json:"code,omitempty"`
}

// VerifyOTPRequest completes a phone verification.
type VerifyOTPRequest struct {
	VerificationID string `json:"verificationId" validate:"required,uuid4"`
	Code           string `json:"code" validate:"required,min=4,max=8,numeric"`
}

// GuestRequest creates a device-bound guest identity.
type GuestRequest struct {
	DeviceID   string `json:"deviceId" validate:"required,max=128"`
	DeviceType string `json:"deviceType" validate:"omitempty,max=32"`
}

// AuthResponse is returned by verify and guest login.
type AuthResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         *users.UserDTO `json:"user"`
}
