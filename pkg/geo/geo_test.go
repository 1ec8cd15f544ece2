package geo

import (
	"math"
	"testing"
)

func TestDistanceKmZero(t *testing.T) {
	if d := DistanceKm([2]float64{0, 0}, [2]float64{0, 0}); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestDistanceKmOneDegreeLatitude(t *testing.T) {
	d := DistanceKm([2]float64{0, 0}, [2]float64{0, 1})
	if math.Abs(d-111.2) > 111.2*0.01 {
		t.Fatalf("expected ~111.2km for one degree of latitude, got %f", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := [2]float64{77.5946, 12.9716}
	b := [2]float64{72.8777, 19.0760}
	if DistanceKm(a, b) != DistanceKm(b, a) {
		t.Fatalf("expected symmetric distance")
	}
}

func TestPointInPolygon(t *testing.T) {
	square := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	if !PointInPolygon([2]float64{5, 5}, square) {
		t.Fatalf("expected interior point inside")
	}
	if PointInPolygon([2]float64{15, 5}, square) {
		t.Fatalf("expected exterior point outside")
	}
	if PointInPolygon([2]float64{5, -1}, square) {
		t.Fatalf("expected point below ring outside")
	}
}

func TestPointInPolygonConcave(t *testing.T) {
	// U shape: notch between x=4..6 above y=4.
	ring := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {6, 10}, {6, 4}, {4, 4}, {4, 10}, {0, 10}}

	if !PointInPolygon([2]float64{2, 8}, ring) {
		t.Fatalf("expected left arm inside")
	}
	if PointInPolygon([2]float64{5, 8}, ring) {
		t.Fatalf("expected notch outside")
	}
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	center := [2]float64{77.5946, 12.9716}
	box := BoundingBox(center, 5)

	if box[0] >= center[0] || box[2] <= center[0] {
		t.Fatalf("longitude bounds do not bracket center: %v", box)
	}
	if box[1] >= center[1] || box[3] <= center[1] {
		t.Fatalf("latitude bounds do not bracket center: %v", box)
	}

	// A point 5km due north must still be inside the box.
	north := [2]float64{center[0], center[1] + 5/EarthRadiusKm*(180/math.Pi)}
	if north[1] > box[3] {
		t.Fatalf("northern edge of radius escapes box: %v vs %v", north, box)
	}
}
