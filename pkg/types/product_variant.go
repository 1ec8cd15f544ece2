package types

// VariantOption is one selectable option inside a variant group.
type VariantOption struct {
	Name            string  `json:"name"`
	PriceAdjustment float64 `json:"priceAdjustment"`
	Stock           int     `json:"stock"`
}

// VariantGroup is a named set of options ("Size", "Crust") on a product.
type VariantGroup struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

// OrderItemVariant is the option snapshot captured on an order line.
type OrderItemVariant struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
