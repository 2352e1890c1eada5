package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
	"sistem-desa/internal/logger"
	"sistem-desa/internal/model"
)

// Titik tengah desa contoh.
const (
	centerLat = -0.9416
	centerLon = 100.3700
)

func rect(minLat, minLon, maxLat, maxLon float64) geo.Shape {
	return geo.Normalize(geo.NewPolygon([]geo.Point{
		{Lat: minLat, Lon: minLon},
		{Lat: minLat, Lon: maxLon},
		{Lat: maxLat, Lon: maxLon},
		{Lat: maxLat, Lon: minLon},
	}))
}

func luas(s geo.Shape) float64 {
	return float64(int64(s.Area()*100+0.5)) / 100
}

// SeedAll mengisi data contoh. Aman dijalankan berulang karena memakai FirstOrCreate.
func SeedAll(db *gorm.DB) error {
	log := logger.For("seeder")

	// 1. Profil desa
	desa := model.Desa{
		Nama:         "Sukamaju",
		KodeWilayah:  "13.71.01.2001",
		Kecamatan:    "Padang Barat",
		Kabupaten:    "Kota Padang",
		Provinsi:     "Sumatera Barat",
		KepalaDesa:   "Budi Santoso",
		AlamatKantor: "Jl. Merdeka No. 1",
		CenterLat:    centerLat,
		CenterLon:    centerLon,
		Zoom:         15,
	}
	if err := db.FirstOrCreate(&desa, model.Desa{Nama: desa.Nama}).Error; err != nil {
		return fmt.Errorf("seed desa: %w", err)
	}

	// 2. Batas wilayah: desa lalu dua RT di dalamnya
	batas := []model.BatasWilayah{
		{Nama: "Desa Sukamaju", Jenis: model.JenisDesa, Wilayah: rect(-0.9516, 100.3600, -0.9316, 100.3800)},
		{Nama: "RT 001 / RW 001", Jenis: model.JenisRT, RT: "001", RW: "001", Wilayah: rect(-0.9466, 100.3650, -0.9416, 100.3700)},
		{Nama: "RT 002 / RW 001", Jenis: model.JenisRT, RT: "002", RW: "001", Wilayah: rect(-0.9416, 100.3650, -0.9366, 100.3700)},
		{Nama: "Sawah Timur", Jenis: "pertanian", Wilayah: rect(-0.9466, 100.3720, -0.9386, 100.3780)},
	}
	for _, b := range batas {
		b.LuasM2 = luas(b.Wilayah)
		if err := db.FirstOrCreate(&b, model.BatasWilayah{Nama: b.Nama}).Error; err != nil {
			return fmt.Errorf("seed batas %s: %w", b.Nama, err)
		}
	}

	// 3. Fasilitas dan tempat penting
	fasilitas := []model.Fasilitas{
		{Nama: "SD Negeri 01 Sukamaju", Kategori: "sekolah", Kondisi: model.KondisiBaik, RT: "001", RW: "001", Lokasi: geo.NewPoint(-0.9440, 100.3672)},
		{Nama: "Puskesmas Pembantu", Kategori: "kesehatan", Kondisi: model.KondisiBaik, RT: "002", RW: "001", Lokasi: geo.NewPoint(-0.9395, 100.3681)},
		{Nama: "Masjid Raya Sukamaju", Kategori: "tempat_ibadah", Kondisi: model.KondisiRusakRingan, RT: "002", RW: "001", Lokasi: geo.NewPoint(-0.9402, 100.3660)},
		{Nama: "Kantor Wali Nagari", Kategori: "kantor_pemerintahan", Kondisi: model.KondisiBaik, Lokasi: geo.NewPoint(centerLat, centerLon)},
		{Nama: "Lapangan Bola", Kategori: "olahraga", Kondisi: model.KondisiBaik, Lokasi: rect(-0.9480, 100.3710, -0.9470, 100.3725)},
	}
	for _, f := range fasilitas {
		f.LuasM2 = luas(f.Lokasi)
		if err := db.FirstOrCreate(&f, model.Fasilitas{Nama: f.Nama}).Error; err != nil {
			return fmt.Errorf("seed fasilitas %s: %w", f.Nama, err)
		}
	}

	poi := []model.TempatPenting{
		{Nama: "Pos Ronda RT 001", Kategori: "pos_ronda", Latitude: -0.9450, Longitude: 100.3690},
		{Nama: "Bank Sampah Melati", Kategori: "bank_sampah", Latitude: -0.9380, Longitude: 100.3665},
	}
	for _, p := range poi {
		if err := db.FirstOrCreate(&p, model.TempatPenting{Nama: p.Nama}).Error; err != nil {
			return fmt.Errorf("seed tempat penting %s: %w", p.Nama, err)
		}
	}

	// 4. Satu kejadian bencana aktif
	banjir := model.Bencana{
		Kode:       uuid.NewString(),
		Jenis:      "banjir",
		Tanggal:    "2024-11-20",
		Keterangan: "Luapan sungai setelah hujan deras",
		Status:     model.StatusAktif,
		Pengungsi:  12,
		RT:         "001",
		RW:         "001",
		Lokasi:     geo.NewRadius(-0.9455, 100.3668, 150),
	}
	banjir.LuasM2 = luas(banjir.Lokasi)
	if err := db.FirstOrCreate(&banjir, model.Bencana{Jenis: banjir.Jenis, Tanggal: banjir.Tanggal}).Error; err != nil {
		return fmt.Errorf("seed bencana: %w", err)
	}

	// 5. Rumah, KK, dan penduduk contoh
	rumah := model.Rumah{NoRumah: "12", Pemilik: "Budi Santoso", Alamat: "Jl. Merdeka No. 12", RT: "001", RW: "001", Latitude: -0.9445, Longitude: 100.3680, Kondisi: "permanen"}
	if err := db.FirstOrCreate(&rumah, model.Rumah{NoRumah: rumah.NoRumah, RT: rumah.RT, RW: rumah.RW}).Error; err != nil {
		return fmt.Errorf("seed rumah: %w", err)
	}

	kk := model.KartuKeluarga{NoKK: "1371010101240001", KepalaKeluarga: "Budi Santoso", Alamat: rumah.Alamat, RT: "001", RW: "001", RumahID: &rumah.ID}
	if err := db.FirstOrCreate(&kk, model.KartuKeluarga{NoKK: kk.NoKK}).Error; err != nil {
		return fmt.Errorf("seed kk: %w", err)
	}

	anggota := []model.Penduduk{
		{NIK: "1371010101800001", Nama: "Budi Santoso", JenisKelamin: "L", TempatLahir: "Padang", TanggalLahir: "1980-01-01", Agama: "Islam", Pekerjaan: "Petani", StatusPerkawinan: "Kawin", HubunganKeluarga: "Kepala Keluarga"},
		{NIK: "1371014101850002", Nama: "Siti Aminah", JenisKelamin: "P", TempatLahir: "Padang", TanggalLahir: "1985-01-01", Agama: "Islam", Pekerjaan: "Pedagang", StatusPerkawinan: "Kawin", HubunganKeluarga: "Istri"},
	}
	for _, p := range anggota {
		p.KartuKeluargaID = &kk.ID
		p.RumahID = &rumah.ID
		p.RT, p.RW = kk.RT, kk.RW
		p.IsActive = true
		if err := db.FirstOrCreate(&p, model.Penduduk{NIK: p.NIK}).Error; err != nil {
			return fmt.Errorf("seed penduduk %s: %w", p.NIK, err)
		}
	}

	log.Info().Str(logger.EVENT, "seeded").Msg("data contoh berhasil diisi")
	return nil
}
