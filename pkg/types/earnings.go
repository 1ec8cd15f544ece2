package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Earnings is the running balance kept on merchant and delivery profiles.
// Total is expected to equal Pending + Available.
type Earnings struct {
	Total     float64 `json:"total"`
	Pending   float64 `json:"pending"`
	Available float64 `json:"available"`
}

// Value marshals the balance into JSON for Postgres.
func (e Earnings) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan decodes JSONB into the balance.
func (e *Earnings) Scan(value interface{}) error {
	if value == nil {
		*e = Earnings{}
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("earnings: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, e)
}
