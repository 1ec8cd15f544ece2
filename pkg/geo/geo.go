// Package geo provides the coordinate math shared by store proximity
// lookups and delivery routing. All point pairs are [longitude, latitude],
// matching the GeoJSON documents in storage.
package geo

import "math"

// EarthRadiusKm is the sphere radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two [lng, lat]
// pairs in kilometres. Inputs are not validated; NaN propagates.
func DistanceKm(p1, p2 [2]float64) float64 {
	lat1 := toRadians(p1[1])
	lat2 := toRadians(p2[1])
	dLat := toRadians(p2[1] - p1[1])
	dLng := toRadians(p2[0] - p1[0])

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// PointInPolygon reports whether the point falls inside the single ring
// using even-odd ray casting. Points exactly on an edge may land on either
// side.
func PointInPolygon(point [2]float64, ring [][2]float64) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		intersects := (yi > point[1]) != (yj > point[1]) &&
			point[0] < (xj-xi)*(point[1]-yi)/(yj-yi)+xi
		if intersects {
			inside = !inside
		}
	}
	return inside
}

// BoundingBox returns the [minLng, minLat, maxLng, maxLat] square that
// contains every point within radiusKm of the center. It is a coarse SQL
// prefilter; callers re-check candidates with DistanceKm.
func BoundingBox(center [2]float64, radiusKm float64) [4]float64 {
	dLat := radiusKm / EarthRadiusKm * (180 / math.Pi)

	cosLat := math.Cos(toRadians(center[1]))
	dLng := dLat
	if cosLat > 1e-9 {
		dLng = dLat / cosLat
	}

	return [4]float64{
		center[0] - dLng,
		center[1] - dLat,
		center[0] + dLng,
		center[1] + dLat,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
