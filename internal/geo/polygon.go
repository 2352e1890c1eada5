package geo

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// segmentEpsilon adalah toleransi perkalian silang (derajat²) untuk uji titik pada segmen.
const segmentEpsilon = 1e-12

// Polygon mengikuti konvensi GeoJSON: ring pertama adalah batas luar, sisanya lubang.
type Polygon struct {
	Rings [][]Point `json:"rings"`
}

// Outer mengembalikan ring luar, atau nil jika poligon kosong.
func (p Polygon) Outer() []Point {
	if len(p.Rings) == 0 {
		return nil
	}
	return p.Rings[0]
}

// PointInPolygon menguji apakah pt berada di dalam poligon.
// Titik tepat pada tepi luar dianggap di dalam. Titik di dalam lubang dianggap di luar,
// kecuali tepat pada tepi lubang.
func PointInPolygon(pt Point, poly Polygon) bool {
	if len(poly.Rings) == 0 {
		return false
	}
	if !pointInRing(pt, poly.Rings[0]) {
		return false
	}
	for _, hole := range poly.Rings[1:] {
		if pointInRing(pt, hole) && !pointOnRing(pt, hole) {
			return false
		}
	}
	return true
}

func pointInRing(pt Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}
	if pointOnRing(pt, ring) {
		return true
	}
	return xy.IsPointInRing(geom.XY, geom.Coord{pt.Lon, pt.Lat}, flatRing(ring))
}

func pointOnRing(pt Point, ring []Point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if pointOnSegment(pt, a, b) {
			return true
		}
	}
	return false
}

func pointOnSegment(p, a, b Point) bool {
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	if math.Abs(cross) > segmentEpsilon {
		return false
	}
	return p.Lon >= math.Min(a.Lon, b.Lon)-segmentEpsilon && p.Lon <= math.Max(a.Lon, b.Lon)+segmentEpsilon &&
		p.Lat >= math.Min(a.Lat, b.Lat)-segmentEpsilon && p.Lat <= math.Max(a.Lat, b.Lat)+segmentEpsilon
}

// flatRing menyusun koordinat datar (lon, lat) yang tertutup untuk go-geom.
func flatRing(ring []Point) []float64 {
	flat := make([]float64, 0, 2*(len(ring)+1))
	for _, p := range ring {
		flat = append(flat, p.Lon, p.Lat)
	}
	if !closed(ring) {
		flat = append(flat, ring[0].Lon, ring[0].Lat)
	}
	return flat
}

func closed(ring []Point) bool {
	return len(ring) > 1 && ring[0] == ring[len(ring)-1]
}

// PolygonArea menghitung luas poligon dalam meter persegi.
// Titik diproyeksikan ke bidang equirectangular lokal di sekitar lintang rata-rata ring luar,
// lalu luas tiap ring dihitung dengan rumus shoelace. Luas ring tidak bergantung arah putarannya;
// hasilnya luas ring luar dikurangi luas lubang.
func PolygonArea(poly Polygon) float64 {
	outer := poly.Outer()
	if len(outer) < 3 {
		return 0
	}
	origin := vertexMean(outer)
	cosLat := math.Cos(origin.Lat * math.Pi / 180.0)

	area := ringArea(outer, origin, cosLat)
	for _, hole := range poly.Rings[1:] {
		if len(hole) < 3 {
			continue
		}
		area -= ringArea(hole, origin, cosLat)
	}
	return math.Max(area, 0)
}

func ringArea(ring []Point, origin Point, cosLat float64) float64 {
	flat := make([]float64, 0, 2*(len(ring)+1))
	for _, p := range ring {
		c := project(p, origin, cosLat)
		flat = append(flat, c[0], c[1])
	}
	if !closed(ring) {
		flat = append(flat, flat[0], flat[1])
	}
	// Area pada go-geom bertanda sesuai arah putaran ring.
	return math.Abs(geom.NewLinearRingFlat(geom.XY, flat).Area())
}

func project(p, origin Point, cosLat float64) geom.Coord {
	x := EarthRadius * (p.Lon - origin.Lon) * (math.Pi / 180.0) * cosLat
	y := EarthRadius * (p.Lat - origin.Lat) * (math.Pi / 180.0)
	return geom.Coord{x, y}
}

// PolygonPerimeter menghitung keliling ring luar dalam meter.
func PolygonPerimeter(poly Polygon) float64 {
	outer := poly.Outer()
	if len(outer) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(outer); i++ {
		total += Distance(outer[i-1], outer[i])
	}
	if !closed(outer) {
		total += Distance(outer[len(outer)-1], outer[0])
	}
	return total
}

// vertexMean adalah rata-rata titik sudut ring, tanpa titik penutup.
func vertexMean(ring []Point) Point {
	pts := ring
	if closed(ring) {
		pts = ring[:len(ring)-1]
	}
	if len(pts) == 0 {
		return Point{}
	}
	var lat, lon float64
	for _, p := range pts {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(pts))
	return Point{Lat: lat / n, Lon: lon / n}
}

// signedArea bernilai positif untuk ring berlawanan arah jarum jam (sumbu x = bujur).
func signedArea(ring []Point) float64 {
	sum := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += a.Lon*b.Lat - b.Lon*a.Lat
	}
	return sum / 2
}

func reversed(ring []Point) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

func (p Polygon) bounds() BBox {
	outer := p.Outer()
	if len(outer) == 0 {
		return BBox{}
	}
	b := BBox{MinLat: outer[0].Lat, MinLon: outer[0].Lon, MaxLat: outer[0].Lat, MaxLon: outer[0].Lon}
	for _, pt := range outer[1:] {
		b = b.extend(pt)
	}
	return b
}

// selfIntersects memeriksa apakah dua sisi yang tidak bersebelahan saling bersentuhan atau berpotongan.
// ring harus tertutup.
func selfIntersects(ring []Point) bool {
	edges := len(ring) - 1
	for i := 0; i < edges; i++ {
		for j := i + 1; j < edges; j++ {
			if j == i+1 || (i == 0 && j == edges-1) {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

func orientation(a, b, c Point) int {
	v := (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
	switch {
	case v > segmentEpsilon:
		return 1
	case v < -segmentEpsilon:
		return -1
	}
	return 0
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && pointOnSegment(q1, p1, p2) {
		return true
	}
	if o2 == 0 && pointOnSegment(q2, p1, p2) {
		return true
	}
	if o3 == 0 && pointOnSegment(p1, q1, q2) {
		return true
	}
	if o4 == 0 && pointOnSegment(p2, q1, q2) {
		return true
	}
	return false
}
