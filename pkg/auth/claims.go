package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Role        enums.UserRole
	PhoneNumber string
	IsGuest     bool
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID      `json:"user_id"`
	Role        enums.UserRole `json:"role"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	IsGuest     bool           `json:"is_guest,omitempty"`
	jwt.RegisteredClaims
}
