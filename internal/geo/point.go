// Package geo menyediakan perhitungan geometri untuk data spasial desa:
// jarak, uji titik di dalam poligon, luas (rumus shoelace), keliling dan lingkaran radius.
//
// Semua koordinat memakai WGS84 dalam derajat. Luas dan jarak dalam meter.
package geo

import "math"

const (
	// EarthRadius adalah jari-jari bumi dalam meter (sama dengan perhitungan radius absensi).
	EarthRadius = 6371000.0

	// MaxRadius membatasi radius area terdampak bencana.
	MaxRadius = 50000.0

	// MinPolygonArea di bawah nilai ini poligon dianggap degenerate.
	MinPolygonArea = 1.0

	// pointTolerance adalah jarak (meter) di mana dua titik dianggap sama.
	pointTolerance = 0.5

	// coordScale membulatkan koordinat ke 7 desimal (~1 cm).
	coordScale = 1e7
)

// Point adalah koordinat tunggal.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p Point) rounded() Point {
	return Point{
		Lat: math.Round(p.Lat*coordScale) / coordScale,
		Lon: math.Round(p.Lon*coordScale) / coordScale,
	}
}

// BBox adalah kotak pembatas dalam derajat.
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains mengembalikan true jika p berada di dalam atau pada tepi kotak.
func (b BBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

func (b BBox) extend(p Point) BBox {
	return BBox{
		MinLat: math.Min(b.MinLat, p.Lat),
		MinLon: math.Min(b.MinLon, p.Lon),
		MaxLat: math.Max(b.MaxLat, p.Lat),
		MaxLon: math.Max(b.MaxLon, p.Lon),
	}
}

// Distance menghitung jarak haversine dua titik dalam meter.
func Distance(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180.0)
	dLon := (b.Lon - a.Lon) * (math.Pi / 180.0)

	lat1Rad := a.Lat * (math.Pi / 180.0)
	lat2Rad := b.Lat * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadius * c
}

// Destination menghitung titik tujuan dari origin sejauh distance meter pada arah bearing (derajat dari utara).
func Destination(origin Point, bearing, distance float64) Point {
	delta := distance / EarthRadius
	theta := bearing * math.Pi / 180.0
	phi1 := origin.Lat * math.Pi / 180.0
	lambda1 := origin.Lon * math.Pi / 180.0

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	return Point{Lat: phi2 * 180.0 / math.Pi, Lon: lambda2 * 180.0 / math.Pi}
}

// CircleArea adalah luas lingkaran dengan jari-jari r meter.
func CircleArea(r float64) float64 {
	return math.Pi * r * r
}

// CirclePolygon mendekati lingkaran dengan poligon beraturan berlawanan arah jarum jam.
func CirclePolygon(center Point, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	ring := make([]Point, 0, segments+1)
	for i := 0; i < segments; i++ {
		bearing := -360.0 * float64(i) / float64(segments)
		ring = append(ring, Destination(center, bearing, radius).rounded())
	}
	ring = append(ring, ring[0])
	return Polygon{Rings: [][]Point{ring}}
}

// degreesForMeters mengonversi meter ke derajat lintang dan bujur di sekitar lat.
func degreesForMeters(lat, meters float64) (dLat, dLon float64) {
	dLat = (meters / EarthRadius) * (180 / math.Pi)
	cos := math.Cos(lat * math.Pi / 180.0)
	if cos < 1e-6 {
		return dLat, 180
	}
	return dLat, math.Min(dLat/cos, 180)
}
