package maplayer

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom/encoding/geojson"

	"sistem-desa/internal/geo"
)

// Feature adalah satu data yang akan digambar di peta.
type Feature struct {
	ID       uint
	Nama     string
	Kategori string
	Shape    geo.Shape
	Luas     float64
	Extra    map[string]interface{}
}

type Options struct {
	// CircleSegments > 0 menggambar radius sebagai poligon dengan jumlah sisi tersebut.
	CircleSegments int
}

// Render menyusun FeatureCollection untuk satu layer. Data tanpa lokasi dilewati.
func (r *Registry) Render(layer string, features []Feature, opts Options) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(features))}
	for _, f := range features {
		if f.Shape.IsZero() {
			continue
		}
		g, err := f.Shape.Geom(opts.CircleSegments)
		if err != nil {
			return nil, fmt.Errorf("%s-%d: %w", layer, f.ID, err)
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         fmt.Sprintf("%s-%d", layer, f.ID),
			Geometry:   g,
			Properties: r.properties(layer, f),
		})
	}
	return fc, nil
}

func (r *Registry) properties(layer string, f Feature) map[string]interface{} {
	style := r.Lookup(layer, f.Kategori)

	luas := f.Luas
	if luas == 0 {
		luas = math.Round(f.Shape.Area()*100) / 100
	}

	props := make(map[string]interface{}, 11+len(f.Extra))
	for k, v := range f.Extra {
		props[k] = v
	}
	props["id"] = f.ID
	props["layer"] = layer
	props["nama"] = f.Nama
	props["kategori"] = f.Kategori
	props["shape"] = string(f.Shape.Type)
	props["icon"] = style.Icon
	props["color"] = style.Color
	props["fill_color"] = style.FillColor
	props["fill_opacity"] = style.FillOpacity
	props["luas_m2"] = luas
	if f.Shape.Type == geo.ShapeRadius {
		props["radius_m"] = f.Shape.Radius
	}
	return props
}

// Merge menggabungkan beberapa FeatureCollection sesuai urutan argumen.
func Merge(collections ...*geojson.FeatureCollection) *geojson.FeatureCollection {
	out := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, fc := range collections {
		if fc == nil {
			continue
		}
		out.Features = append(out.Features, fc.Features...)
	}
	return out
}
