package geo

import (
	"math"
)

// ShapeType adalah jenis bentuk lokasi di peta.
type ShapeType string

const (
	ShapePoint   ShapeType = "point"
	ShapePolygon ShapeType = "polygon"
	ShapeRadius  ShapeType = "radius"
)

// Shape adalah lokasi sebuah data: titik, poligon, atau lingkaran (titik pusat + radius meter).
type Shape struct {
	Type    ShapeType
	Point   Point
	Polygon Polygon
	Radius  float64
}

// NewPoint membuat Shape titik.
func NewPoint(lat, lon float64) Shape {
	return Shape{Type: ShapePoint, Point: Point{Lat: lat, Lon: lon}}
}

// NewRadius membuat Shape lingkaran.
func NewRadius(lat, lon, radius float64) Shape {
	return Shape{Type: ShapeRadius, Point: Point{Lat: lat, Lon: lon}, Radius: radius}
}

// NewPolygon membuat Shape poligon dari ring luar dan lubang (opsional).
func NewPolygon(rings ...[]Point) Shape {
	return Shape{Type: ShapePolygon, Polygon: Polygon{Rings: rings}}
}

// IsZero mengembalikan true jika shape belum diisi.
func (s Shape) IsZero() bool {
	return s.Type == ""
}

// Area adalah luas shape dalam meter persegi. Titik tidak memiliki luas.
func (s Shape) Area() float64 {
	switch s.Type {
	case ShapePolygon:
		return PolygonArea(s.Polygon)
	case ShapeRadius:
		return CircleArea(s.Radius)
	}
	return 0
}

// Perimeter adalah keliling shape dalam meter.
func (s Shape) Perimeter() float64 {
	switch s.Type {
	case ShapePolygon:
		return PolygonPerimeter(s.Polygon)
	case ShapeRadius:
		return 2 * math.Pi * s.Radius
	}
	return 0
}

// Center adalah titik penanda shape. Untuk poligon dipakai rata-rata titik sudut ring luar.
func (s Shape) Center() Point {
	if s.Type == ShapePolygon {
		return vertexMean(s.Polygon.Outer())
	}
	return s.Point
}

// Contains menguji apakah p termasuk dalam shape.
func (s Shape) Contains(p Point) bool {
	switch s.Type {
	case ShapePoint:
		return Distance(s.Point, p) <= pointTolerance
	case ShapePolygon:
		return PointInPolygon(p, s.Polygon)
	case ShapeRadius:
		return Distance(s.Point, p) <= s.Radius
	}
	return false
}

// Bounds adalah kotak pembatas shape.
func (s Shape) Bounds() BBox {
	switch s.Type {
	case ShapePolygon:
		return s.Polygon.bounds()
	case ShapeRadius:
		dLat, dLon := degreesForMeters(s.Point.Lat, s.Radius)
		return BBox{
			MinLat: math.Max(s.Point.Lat-dLat, -90),
			MinLon: math.Max(s.Point.Lon-dLon, -180),
			MaxLat: math.Min(s.Point.Lat+dLat, 90),
			MaxLon: math.Min(s.Point.Lon+dLon, 180),
		}
	}
	return BBox{MinLat: s.Point.Lat, MinLon: s.Point.Lon, MaxLat: s.Point.Lat, MaxLon: s.Point.Lon}
}

// Normalize membulatkan koordinat ke 7 desimal, membuang titik ganda berurutan,
// menutup ring, dan mengarahkan ring luar berlawanan arah jarum jam serta lubang searah jarum jam.
func Normalize(s Shape) Shape {
	out := Shape{Type: s.Type, Radius: s.Radius}
	switch s.Type {
	case ShapePolygon:
		rings := make([][]Point, 0, len(s.Polygon.Rings))
		for i, ring := range s.Polygon.Rings {
			r := normalizeRing(ring)
			if len(r) >= 4 {
				ccw := signedArea(r) > 0
				if (i == 0 && !ccw) || (i > 0 && ccw) {
					r = reversed(r)
				}
			}
			rings = append(rings, r)
		}
		out.Polygon = Polygon{Rings: rings}
	default:
		out.Point = s.Point.rounded()
	}
	return out
}

func normalizeRing(ring []Point) []Point {
	out := make([]Point, 0, len(ring)+1)
	for _, p := range ring {
		p = p.rounded()
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 0 && !closed(out) {
		out = append(out, out[0])
	}
	return out
}
