package types

import (
	"time"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
)

// VerificationDocument is one entry of a store's verification checklist.
type VerificationDocument struct {
	Type       enums.DocumentType `json:"type"`
	URL        string             `json:"url,omitempty"`
	Verified   bool               `json:"verified"`
	UploadedAt *time.Time         `json:"uploadedAt,omitempty"`
}

// DeliveryDocument is an identity or vehicle document uploaded by a
// delivery partner.
type DeliveryDocument struct {
	Name       string     `json:"name"`
	URL        string     `json:"url,omitempty"`
	Verified   bool       `json:"verified"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

// BankDetails is a merchant's payout destination.
type BankDetails struct {
	AccountHolder string `json:"accountHolder,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSCCode      string `json:"ifscCode,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

// DeviceInfo captures the client device bound to a session or guest user.
type DeviceInfo struct {
	DeviceID   string `json:"deviceId,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
	FCMToken   string `json:"fcmToken,omitempty"`
}

// NotificationPreferences is a customer's channel opt-in set.
type NotificationPreferences struct {
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
	Email bool `json:"email"`
}
