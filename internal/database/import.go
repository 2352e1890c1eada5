package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/maplayer"
	"sistem-desa/internal/model"
)

// ImportResult merangkum hasil impor batas wilayah.
type ImportResult struct {
	Created int
	Skipped []string
}

// ImportBatas membaca FeatureCollection GeoJSON dan menyimpan setiap Polygon/MultiPolygon
// sebagai batas wilayah dengan jenis yang diberikan (dinormalisasi seperti isian API, misalnya
// "Desa" menjadi "desa"). Nama diambil dari properti nameProp.
// Fitur yang geometrinya tidak valid dilewati dan dicatat di Skipped.
func ImportBatas(db *gorm.DB, r io.Reader, jenis, nameProp string) (*ImportResult, error) {
	jenis = maplayer.NormalizeKey(jenis)
	if jenis == "" {
		return nil, errors.New("jenis batas wajib diisi")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("berkas bukan FeatureCollection GeoJSON: %w", err)
	}

	res := &ImportResult{}
	err = db.Transaction(func(tx *gorm.DB) error {
		for i, f := range fc.Features {
			nama := featureName(f, nameProp, i)
			shapes, err := geo.FromGeom(f.Geometry)
			if err != nil {
				res.Skipped = append(res.Skipped, fmt.Sprintf("%s: %v", nama, err))
				continue
			}
			for j, s := range shapes {
				s = geo.Normalize(s)
				if s.Type != geo.ShapePolygon {
					res.Skipped = append(res.Skipped, fmt.Sprintf("%s: bukan poligon", nama))
					continue
				}
				if err := geo.Validate(s); err != nil {
					res.Skipped = append(res.Skipped, fmt.Sprintf("%s: %v", nama, err))
					continue
				}
				n := nama
				if len(shapes) > 1 {
					n = fmt.Sprintf("%s (%d)", nama, j+1)
				}
				batas := model.BatasWilayah{
					Nama:    n,
					Jenis:   jenis,
					RT:      stringProp(f, "rt"),
					RW:      stringProp(f, "rw"),
					Wilayah: s,
					LuasM2:  math.Round(s.Area()*100) / 100,
				}
				if err := tx.Create(&batas).Error; err != nil {
					return err
				}
				res.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func featureName(f *geojson.Feature, prop string, i int) string {
	if s := stringProp(f, prop); s != "" {
		return s
	}
	if f.ID != "" {
		return f.ID
	}
	return fmt.Sprintf("Wilayah %d", i+1)
}

func stringProp(f *geojson.Feature, key string) string {
	if key == "" || f.Properties == nil {
		return ""
	}
	switch v := f.Properties[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%03.0f", v)
	}
	return ""
}
