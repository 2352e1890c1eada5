package geo

import (
	"fmt"
	"math"
)

// Kode alasan penolakan geometri, dipakai juga sebagai label metrik.
const (
	ReasonUnknownType   = "unknown_type"
	ReasonOutOfRange    = "out_of_range"
	ReasonTooFewPoints  = "too_few_vertices"
	ReasonAntimeridian  = "antimeridian"
	ReasonSelfIntersect = "self_intersection"
	ReasonHoleOutside   = "hole_outside"
	ReasonDegenerate    = "degenerate"
	ReasonRadiusRange   = "radius_range"
	ReasonMissing       = "missing"
)

// ValidationError menjelaskan geometri yang ditolak.
type ValidationError struct {
	Field  string `json:"field"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, code, reason string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Reason: reason}
}

// Validate memeriksa shape yang sudah dinormalisasi (lihat Normalize).
func Validate(s Shape) error {
	switch s.Type {
	case ShapePoint:
		if !s.Point.valid() {
			return invalid("coordinates", ReasonOutOfRange, "koordinat di luar rentang lintang/bujur")
		}
		return nil
	case ShapeRadius:
		if !s.Point.valid() {
			return invalid("coordinates", ReasonOutOfRange, "koordinat pusat di luar rentang lintang/bujur")
		}
		if math.IsNaN(s.Radius) || s.Radius <= 0 || s.Radius > MaxRadius {
			return invalid("radius", ReasonRadiusRange, fmt.Sprintf("radius harus lebih dari 0 dan maksimal %.0f meter", MaxRadius))
		}
		return nil
	case ShapePolygon:
		return validatePolygon(s.Polygon)
	}
	return invalid("type", ReasonUnknownType, "jenis lokasi harus point, polygon, atau radius")
}

func validatePolygon(poly Polygon) error {
	if len(poly.Rings) == 0 {
		return invalid("coordinates", ReasonTooFewPoints, "poligon tidak memiliki titik")
	}
	for i, ring := range poly.Rings {
		field := fmt.Sprintf("coordinates[%d]", i)
		for _, p := range ring {
			if !p.valid() {
				return invalid(field, ReasonOutOfRange, "koordinat di luar rentang lintang/bujur")
			}
		}
		if distinctVertices(ring) < 3 {
			return invalid(field, ReasonTooFewPoints, "ring poligon minimal memiliki 3 titik berbeda")
		}
		for j := 1; j < len(ring); j++ {
			if math.Abs(ring[j].Lon-ring[j-1].Lon) > 180 {
				return invalid(field, ReasonAntimeridian, "sisi poligon melintasi garis bujur 180°")
			}
		}
		if selfIntersects(ring) {
			return invalid(field, ReasonSelfIntersect, "sisi poligon saling berpotongan")
		}
	}
	outer := poly.Rings[0]
	for i, hole := range poly.Rings[1:] {
		for _, p := range hole {
			if !pointInRing(p, outer) {
				return invalid(fmt.Sprintf("coordinates[%d]", i+1), ReasonHoleOutside, "lubang poligon berada di luar batas luar")
			}
		}
	}
	if PolygonArea(poly) < MinPolygonArea {
		return invalid("coordinates", ReasonDegenerate, "luas poligon terlalu kecil")
	}
	return nil
}

func distinctVertices(ring []Point) int {
	seen := make(map[Point]struct{}, len(ring))
	for _, p := range ring {
		seen[p] = struct{}{}
	}
	return len(seen)
}
