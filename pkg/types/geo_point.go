package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GeoPoint is a GeoJSON Point persisted as JSONB. Coordinates are
// [longitude, latitude], matching the stored document order.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a Point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Lng returns the longitude component.
func (g GeoPoint) Lng() float64 {
	return g.Coordinates[0]
}

// Lat returns the latitude component.
func (g GeoPoint) Lat() float64 {
	return g.Coordinates[1]
}

// IsZero reports whether the point carries no coordinates.
func (g GeoPoint) IsZero() bool {
	return g.Type == "" && g.Coordinates[0] == 0 && g.Coordinates[1] == 0
}

// Value marshals the point into JSON for Postgres.
func (g GeoPoint) Value() (driver.Value, error) {
	if g.Type == "" {
		g.Type = "Point"
	}
	return json.Marshal(g)
}

// Scan decodes JSONB into the point.
func (g *GeoPoint) Scan(value interface{}) error {
	if value == nil {
		*g = GeoPoint{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("geo point: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, g)
}
