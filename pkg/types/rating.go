package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderRating is the customer's post-order feedback, stored as JSONB.
type OrderRating struct {
	Food     int       `json:"food"`
	Delivery int       `json:"delivery"`
	Comment  string    `json:"comment,omitempty"`
	RatedAt  time.Time `json:"ratedAt"`
}

// Value marshals the rating into JSON for Postgres.
func (r OrderRating) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan decodes JSONB into the rating.
func (r *OrderRating) Scan(value interface{}) error {
	if value == nil {
		*r = OrderRating{}
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("order rating: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, r)
}

// RatingAggregate is the denormalized average kept on stores and products.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Value marshals the aggregate into JSON for Postgres.
func (r RatingAggregate) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan decodes JSONB into the aggregate.
func (r *RatingAggregate) Scan(value interface{}) error {
	if value == nil {
		*r = RatingAggregate{}
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("rating aggregate: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, r)
}
