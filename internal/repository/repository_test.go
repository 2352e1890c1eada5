package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/model"
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

func square(lat, lon, d float64) geo.Shape {
	return geo.Normalize(geo.NewPolygon([]geo.Point{
		{Lat: lat, Lon: lon}, {Lat: lat, Lon: lon + d}, {Lat: lat + d, Lon: lon + d}, {Lat: lat + d, Lon: lon},
	}))
}

func TestDesaRepository(t *testing.T) {
	repo := NewDesaRepository(newTestDB(t))

	_, err := repo.Get()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Save(&model.Desa{Nama: "Sukamaju", Zoom: 15}))
	require.NoError(t, repo.Save(&model.Desa{Nama: "Sukamaju Baru", KepalaDesa: "Pak Budi"}))

	desa, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "Sukamaju Baru", desa.Nama)
	assert.Equal(t, uint(1), desa.ID)
}

func TestBatasRepositoryShapeRoundTrip(t *testing.T) {
	repo := NewBatasRepository(newTestDB(t))

	wilayah := square(-0.95, 100.36, 0.02)
	require.NoError(t, repo.Create(&model.BatasWilayah{Nama: "Desa", Jenis: model.JenisDesa, Wilayah: wilayah}))
	require.NoError(t, repo.Create(&model.BatasWilayah{Nama: "RT 001", Jenis: model.JenisRT, RT: "001", RW: "001", Wilayah: square(-0.945, 100.365, 0.005)}))

	desa, err := repo.FindDesa()
	require.NoError(t, err)
	assert.Equal(t, geo.ShapePolygon, desa.Wilayah.Type)
	assert.Equal(t, wilayah.Polygon, desa.Wilayah.Polygon)

	list, err := repo.GetAll(BatasFilter{Jenis: model.JenisRT})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "RT 001", list[0].Nama)

	list, err = repo.GetAll(BatasFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(list[0].ID))
	assert.ErrorIs(t, repo.Delete(list[0].ID), gorm.ErrRecordNotFound)
	_, err = repo.GetByID(list[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBencanaRepositoryFilter(t *testing.T) {
	repo := NewBencanaRepository(newTestDB(t))

	require.NoError(t, repo.Create(&model.Bencana{Kode: "a", Jenis: "banjir", Status: model.StatusAktif, Tanggal: "2024-01-02", Lokasi: geo.NewRadius(-0.94, 100.37, 250)}))
	require.NoError(t, repo.Create(&model.Bencana{Kode: "b", Jenis: "banjir", Status: model.StatusSelesai, Tanggal: "2024-03-01", Lokasi: geo.NewPoint(-0.94, 100.37)}))
	require.NoError(t, repo.Create(&model.Bencana{Kode: "c", Jenis: "kebakaran", Status: model.StatusAktif, Tanggal: "2024-02-01"}))

	list, err := repo.GetAll(BencanaFilter{Jenis: "banjir"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Kode, "terbaru dulu")

	list, err = repo.GetAll(BencanaFilter{Status: model.StatusAktif})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, geo.ShapeRadius, got.Lokasi.Type)
	assert.Equal(t, 250.0, got.Lokasi.Radius)

	got, err = repo.GetByID(3)
	require.NoError(t, err)
	assert.True(t, got.Lokasi.IsZero())
}

func TestFasilitasAndPOIRepository(t *testing.T) {
	db := newTestDB(t)
	fasilitas := NewFasilitasRepository(db)
	poi := NewTempatPentingRepository(db)

	require.NoError(t, fasilitas.Create(&model.Fasilitas{Nama: "SD 01", Kategori: "sekolah", Kondisi: model.KondisiBaik, Lokasi: geo.NewPoint(-0.94, 100.37)}))
	require.NoError(t, fasilitas.Create(&model.Fasilitas{Nama: "Puskesmas", Kategori: "kesehatan", Kondisi: model.KondisiRusakRingan, Lokasi: geo.NewPoint(-0.941, 100.371)}))

	list, err := fasilitas.GetAll(FasilitasFilter{Search: "pusk"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kesehatan", list[0].Kategori)

	item := list[0]
	item.Kondisi = model.KondisiBaik
	require.NoError(t, fasilitas.Update(&item))
	got, err := fasilitas.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KondisiBaik, got.Kondisi)

	require.NoError(t, poi.Create(&model.TempatPenting{Nama: "Air Terjun", Kategori: "wisata", Latitude: -0.93, Longitude: 100.38}))
	pois, err := poi.GetAll("wisata", "")
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, geo.NewPoint(-0.93, 100.38), pois[0].Lokasi())
	require.NoError(t, poi.Delete(pois[0].ID))
}

func TestKartuKeluargaRepository(t *testing.T) {
	db := newTestDB(t)
	kkRepo := NewKartuKeluargaRepository(db)
	pendudukRepo := NewPendudukRepository(db)
	rumahRepo := NewRumahRepository(db)

	rumah := &model.Rumah{NoRumah: "12", Pemilik: "Budi", RT: "001", RW: "002", Latitude: -0.94, Longitude: 100.37}
	require.NoError(t, rumahRepo.Create(rumah))

	kk := &model.KartuKeluarga{NoKK: "1371010101010001", KepalaKeluarga: "Budi", RT: "001", RW: "002", RumahID: &rumah.ID}
	require.NoError(t, kkRepo.Create(kk))
	assert.Error(t, kkRepo.Create(&model.KartuKeluarga{NoKK: "1371010101010001"}), "no_kk unik")

	p := &model.Penduduk{NIK: "1371010101900001", Nama: "Budi", JenisKelamin: "L", KartuKeluargaID: &kk.ID, RT: "001", RW: "002", IsActive: true}
	require.NoError(t, pendudukRepo.Create(p))

	got, err := kkRepo.GetByID(kk.ID)
	require.NoError(t, err)
	require.Len(t, got.Anggota, 1)
	require.NotNil(t, got.Rumah)
	assert.Equal(t, "12", got.Rumah.NoRumah)

	byNo, err := kkRepo.FindByNoKK("1371010101010001")
	require.NoError(t, err)
	assert.Equal(t, kk.ID, byNo.ID)

	assert.ErrorIs(t, kkRepo.Delete(kk.ID), ErrKKMasihPunyaAnggota)

	require.NoError(t, pendudukRepo.Delete(p.ID))
	require.NoError(t, kkRepo.Delete(kk.ID))

	n, err := kkRepo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPendudukRepositoryFilter(t *testing.T) {
	repo := NewPendudukRepository(newTestDB(t))

	data := []model.Penduduk{
		{NIK: "1371010101900001", Nama: "Andi", JenisKelamin: "L", RT: "001", RW: "001", IsActive: true},
		{NIK: "1371010101900002", Nama: "Siti", JenisKelamin: "P", RT: "002", RW: "001", IsActive: true},
		{NIK: "1371010101900003", Nama: "Rina", JenisKelamin: "P", RT: "001", RW: "002", IsActive: true},
	}
	for i := range data {
		require.NoError(t, repo.Create(&data[i]))
	}
	// GORM melewatkan nilai false karena default:true, jadi dinonaktifkan lewat update.
	data[2].IsActive = false
	require.NoError(t, repo.Update(&data[2]))

	list, err := repo.GetAll(PendudukFilter{JenisKelamin: "P"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Siti", list[0].Nama)

	list, err = repo.GetAll(PendudukFilter{JenisKelamin: "P", Semua: true})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = repo.GetAll(PendudukFilter{Search: "900001"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Andi", list[0].Nama)

	found, err := repo.FindByNIK("1371010101900002")
	require.NoError(t, err)
	assert.Equal(t, "Siti", found.Nama)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStatistikRepository(t *testing.T) {
	db := newTestDB(t)
	penduduk := NewPendudukRepository(db)
	for i, p := range []model.Penduduk{
		{Nama: "A", JenisKelamin: "L", RT: "001", RW: "001"},
		{Nama: "B", JenisKelamin: "P", RT: "001", RW: "001"},
		{Nama: "C", JenisKelamin: "P", RT: "002", RW: "001"},
	} {
		p.NIK = fmt.Sprintf("13710101019000%02d", i)
		p.IsActive = true
		require.NoError(t, penduduk.Create(&p))
	}
	bencana := NewBencanaRepository(db)
	require.NoError(t, bencana.Create(&model.Bencana{Kode: "1", Jenis: "banjir", Status: model.StatusAktif}))
	require.NoError(t, bencana.Create(&model.Bencana{Kode: "2", Jenis: "banjir", Status: model.StatusSelesai}))

	s, err := NewStatistikRepository(db).Get()
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.TotalPenduduk)
	assert.Equal(t, []Jumlah{{Kunci: "L", Jumlah: 1}, {Kunci: "P", Jumlah: 2}}, s.PendudukPerJK)
	assert.Equal(t, []Jumlah{{Kunci: "001/001", Jumlah: 2}, {Kunci: "001/002", Jumlah: 1}}, s.PendudukPerRT)
	assert.Equal(t, int64(1), s.BencanaAktif)
	assert.Equal(t, []Jumlah{{Kunci: "banjir", Jumlah: 2}}, s.BencanaPerJenis)
	assert.Empty(t, s.FasilitasPerJenis)
}

func TestStatistikRepositoryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `penduduk`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `kartu_keluarga`").
		WillReturnError(errors.New("koneksi putus"))

	_, err = NewStatistikRepository(db).Get()
	assert.EqualError(t, err, "koneksi putus")
	assert.NoError(t, mock.ExpectationsWereMet())
}
