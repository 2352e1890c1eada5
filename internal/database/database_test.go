package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sistem-desa/internal/model"
	"sistem-desa/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSeedAllIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedAll(db))
	require.NoError(t, SeedAll(db))

	var n int64
	db.Model(&model.BatasWilayah{}).Count(&n)
	assert.Equal(t, int64(4), n)
	db.Model(&model.Penduduk{}).Count(&n)
	assert.Equal(t, int64(2), n)
	db.Model(&model.Desa{}).Count(&n)
	assert.Equal(t, int64(1), n)

	var desa model.BatasWilayah
	require.NoError(t, db.Where("jenis = ?", model.JenisDesa).First(&desa).Error)
	assert.Greater(t, desa.LuasM2, 0.0)

	var f model.Fasilitas
	require.NoError(t, db.Where("nama = ?", "SD Negeri 01 Sukamaju").First(&f).Error)
	assert.True(t, desa.Wilayah.Contains(f.Lokasi.Center()))
}

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "rt1", "properties": {"nama": "RT 001", "rt": 1, "rw": "001"},
     "geometry": {"type": "Polygon", "coordinates": [[[100.365,-0.9466],[100.37,-0.9466],[100.37,-0.9416],[100.365,-0.9416],[100.365,-0.9466]]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[100.371,-0.946],[100.372,-0.946],[100.372,-0.945],[100.371,-0.945],[100.371,-0.946]]],
       [[[100.373,-0.946],[100.374,-0.946],[100.374,-0.945],[100.373,-0.945],[100.373,-0.946]]]
     ]}},
    {"type": "Feature", "properties": {"nama": "Titik"},
     "geometry": {"type": "Point", "coordinates": [100.37,-0.94]}}
  ]
}`

func TestImportBatas(t *testing.T) {
	db := newTestDB(t)

	res, err := ImportBatas(db, strings.NewReader(sampleGeoJSON), model.JenisRT, "nama")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "Titik")

	var list []model.BatasWilayah
	require.NoError(t, db.Order("id").Find(&list).Error)
	require.Len(t, list, 3)
	assert.Equal(t, "RT 001", list[0].Nama)
	assert.Equal(t, "001", list[0].RT)
	assert.Equal(t, "001", list[0].RW)
	assert.Greater(t, list[0].LuasM2, 0.0)
	assert.Equal(t, "Wilayah 2 (1)", list[1].Nama)
	assert.Equal(t, "Wilayah 2 (2)", list[2].Nama)

	_, err = ImportBatas(db, strings.NewReader(`{"type":"Feature"`), model.JenisRT, "nama")
	assert.Error(t, err)
}

func TestImportBatasNormalizesJenis(t *testing.T) {
	db := newTestDB(t)

	res, err := ImportBatas(db, strings.NewReader(sampleGeoJSON), " Desa ", "nama")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)

	desa, err := repository.NewBatasRepository(db).FindDesa()
	require.NoError(t, err)
	assert.Equal(t, model.JenisDesa, desa.Jenis)
	assert.Equal(t, "RT 001", desa.Nama)

	_, err = ImportBatas(db, strings.NewReader(sampleGeoJSON), "  ", "nama")
	assert.Error(t, err)
}
