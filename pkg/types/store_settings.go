package types

// ContactInfo is a store's public contact block.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// StoreAddress is a store's location, persisted as JSONB. The embedded
// point drives proximity queries.
type StoreAddress struct {
	Street   string   `json:"street"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	Pincode  string   `json:"pincode"`
	Location GeoPoint `json:"location"`
}

// StoreSettings holds operator-tunable ordering behaviour.
type StoreSettings struct {
	AcceptsOrders      bool    `json:"acceptsOrders"`
	MinimumOrderAmount float64 `json:"minimumOrderAmount"`
	DeliveryRadiusKm   float64 `json:"deliveryRadiusKm"`
}
