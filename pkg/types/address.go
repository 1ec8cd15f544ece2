package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DeliveryAddress is the drop-off document stored on an order as JSONB.
type DeliveryAddress struct {
	Street       string   `json:"street"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Location     GeoPoint `json:"location"`
	Instructions string   `json:"instructions,omitempty"`
}

// Value marshals the address into JSON for Postgres.
func (a DeliveryAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan decodes JSONB into the address.
func (a *DeliveryAddress) Scan(value interface{}) error {
	if value == nil {
		*a = DeliveryAddress{}
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("delivery address: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, a)
}

// SavedAddress is one entry of a customer's address book.
type SavedAddress struct {
	Label     string   `json:"label,omitempty"`
	Street    string   `json:"street"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Pincode   string   `json:"pincode"`
	Location  GeoPoint `json:"location"`
	IsDefault bool     `json:"isDefault"`
}

// SavedAddresses persists a customer's address book as a JSONB array.
type SavedAddresses []SavedAddress

// Value marshals the list into JSON for Postgres.
func (s SavedAddresses) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the list.
func (s *SavedAddresses) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("saved addresses: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, s)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case string:
		return []byte(v), true
	case []byte:
		return v, true
	default:
		return nil, false
	}
}
