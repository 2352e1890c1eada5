package geo

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
)

type shapeJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Radius      float64         `json:"radius,omitempty"`
}

// MarshalJSON menulis shape dengan urutan koordinat GeoJSON [lon, lat].
func (s Shape) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	var coords interface{}
	switch s.Type {
	case ShapePolygon:
		rings := make([][][2]float64, 0, len(s.Polygon.Rings))
		for _, ring := range s.Polygon.Rings {
			r := make([][2]float64, 0, len(ring))
			for _, p := range ring {
				r = append(r, [2]float64{p.Lon, p.Lat})
			}
			rings = append(rings, r)
		}
		coords = rings
	default:
		coords = [2]float64{s.Point.Lon, s.Point.Lat}
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	out := shapeJSON{Type: string(s.Type), Coordinates: raw}
	if s.Type == ShapeRadius {
		out.Radius = s.Radius
	}
	return json.Marshal(out)
}

// UnmarshalJSON membaca shape. Nama jenis GeoJSON (Point, Polygon) diterima tanpa memperhatikan huruf besar,
// dan poligon boleh dikirim sebagai satu ring [[lon,lat],...].
func (s *Shape) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Shape{}
		return nil
	}
	var in shapeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch ShapeType(strings.ToLower(in.Type)) {
	case ShapePoint:
		p, err := decodePosition(in.Coordinates)
		if err != nil {
			return err
		}
		*s = Shape{Type: ShapePoint, Point: p}
	case ShapeRadius, "circle":
		p, err := decodePosition(in.Coordinates)
		if err != nil {
			return err
		}
		*s = Shape{Type: ShapeRadius, Point: p, Radius: in.Radius}
	case ShapePolygon:
		poly, err := decodePolygon(in.Coordinates)
		if err != nil {
			return err
		}
		*s = Shape{Type: ShapePolygon, Polygon: poly}
	default:
		return invalid("type", ReasonUnknownType, fmt.Sprintf("jenis lokasi %q tidak dikenal", in.Type))
	}
	return nil
}

func decodePosition(raw json.RawMessage) (Point, error) {
	var pos []float64
	if err := json.Unmarshal(raw, &pos); err != nil {
		return Point{}, fmt.Errorf("koordinat titik tidak valid: %w", err)
	}
	return positionToPoint(pos)
}

func positionToPoint(pos []float64) (Point, error) {
	if len(pos) < 2 {
		return Point{}, errors.New("koordinat harus berisi [bujur, lintang]")
	}
	return Point{Lat: pos[1], Lon: pos[0]}, nil
}

func decodePolygon(raw json.RawMessage) (Polygon, error) {
	var rings [][][]float64
	if err := json.Unmarshal(raw, &rings); err != nil {
		var single [][]float64
		if errSingle := json.Unmarshal(raw, &single); errSingle != nil {
			return Polygon{}, fmt.Errorf("koordinat poligon tidak valid: %w", err)
		}
		rings = [][][]float64{single}
	}
	poly := Polygon{Rings: make([][]Point, 0, len(rings))}
	for _, ring := range rings {
		pts := make([]Point, 0, len(ring))
		for _, pos := range ring {
			p, err := positionToPoint(pos)
			if err != nil {
				return Polygon{}, err
			}
			pts = append(pts, p)
		}
		poly.Rings = append(poly.Rings, pts)
	}
	return poly, nil
}

// Value menyimpan shape sebagai teks JSON.
func (s Shape) Value() (driver.Value, error) {
	if s.IsZero() {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan membaca shape dari kolom teks JSON.
func (s *Shape) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*s = Shape{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("tipe kolom lokasi tidak didukung: %T", value)
	}
	if len(b) == 0 {
		*s = Shape{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// Geom mengubah shape menjadi geometri go-geom untuk GeoJSON.
// Radius ditulis sebagai titik pusat, atau poligon pendekatan jika circleSegments > 0.
func (s Shape) Geom(circleSegments int) (geom.T, error) {
	switch s.Type {
	case ShapePoint:
		return geom.NewPoint(geom.XY).SetCoords(geom.Coord{s.Point.Lon, s.Point.Lat})
	case ShapeRadius:
		if circleSegments > 0 {
			return polygonGeom(CirclePolygon(s.Point, s.Radius, circleSegments))
		}
		return geom.NewPoint(geom.XY).SetCoords(geom.Coord{s.Point.Lon, s.Point.Lat})
	case ShapePolygon:
		return polygonGeom(s.Polygon)
	}
	return nil, invalid("type", ReasonUnknownType, "jenis lokasi kosong")
}

func polygonGeom(poly Polygon) (*geom.Polygon, error) {
	rings := make([][]geom.Coord, 0, len(poly.Rings))
	for _, ring := range poly.Rings {
		coords := make([]geom.Coord, 0, len(ring))
		for _, p := range ring {
			coords = append(coords, geom.Coord{p.Lon, p.Lat})
		}
		rings = append(rings, coords)
	}
	return geom.NewPolygon(geom.XY).SetCoords(rings)
}

// FromGeom mengubah geometri hasil impor GeoJSON menjadi shape.
// MultiPolygon dipecah menjadi satu shape per poligon.
func FromGeom(g geom.T) ([]Shape, error) {
	switch v := g.(type) {
	case *geom.Point:
		c := v.Coords()
		return []Shape{NewPoint(c.Y(), c.X())}, nil
	case *geom.Polygon:
		return []Shape{polygonFromCoords(v.Coords())}, nil
	case *geom.MultiPolygon:
		shapes := make([]Shape, 0, v.NumPolygons())
		for i := 0; i < v.NumPolygons(); i++ {
			shapes = append(shapes, polygonFromCoords(v.Polygon(i).Coords()))
		}
		return shapes, nil
	case nil:
		return nil, invalid("geometry", ReasonUnknownType, "geometri kosong")
	}
	return nil, invalid("geometry", ReasonUnknownType, fmt.Sprintf("geometri %T tidak didukung", g))
}

func polygonFromCoords(coords [][]geom.Coord) Shape {
	rings := make([][]Point, 0, len(coords))
	for _, ring := range coords {
		pts := make([]Point, 0, len(ring))
		for _, c := range ring {
			pts = append(pts, Point{Lat: c.Y(), Lon: c.X()})
		}
		rings = append(rings, pts)
	}
	return NewPolygon(rings...)
}
