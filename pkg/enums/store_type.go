package enums

import "fmt"

// StoreType is the broad vertical a store sells in.
type StoreType string

const (
	StoreTypeRestaurant StoreType = "restaurant"
	StoreTypeRetail     StoreType = "retail"
	StoreTypeService    StoreType = "service"
	StoreTypeOther      StoreType = "other"
)

var validStoreTypes = []StoreType{
	StoreTypeRestaurant,
	StoreTypeRetail,
	StoreTypeService,
	StoreTypeOther,
}

// String implements fmt.Stringer.
func (s StoreType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreType.
func (s StoreType) IsValid() bool {
	for _, candidate := range validStoreTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreType converts raw input into a StoreType.
func ParseStoreType(value string) (StoreType, error) {
	for _, candidate := range validStoreTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store type %q", value)
}
