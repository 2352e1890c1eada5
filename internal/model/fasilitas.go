package model

import (
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
)

const (
	KondisiBaik        = "BAIK"
	KondisiRusakRingan = "RUSAK_RINGAN"
	KondisiRusakBerat  = "RUSAK_BERAT"
)

var KondisiFasilitas = []string{KondisiBaik, KondisiRusakRingan, KondisiRusakBerat}

type Fasilitas struct {
	gorm.Model
	Nama       string    `json:"nama" gorm:"not null"`
	Kategori   string    `json:"kategori" gorm:"index;not null"`
	Kondisi    string    `json:"kondisi" gorm:"default:BAIK"`
	Keterangan string    `json:"keterangan"`
	RT         string    `json:"rt" gorm:"size:3"`
	RW         string    `json:"rw" gorm:"size:3"`
	Lokasi     geo.Shape `json:"lokasi" gorm:"type:text"`
	LuasM2     float64   `json:"luas_m2"`
}

func (Fasilitas) TableName() string { return "fasilitas" }

// TempatPenting adalah titik penting (POI) seperti tempat wisata atau pos ronda.
type TempatPenting struct {
	gorm.Model
	Nama       string  `json:"nama" gorm:"not null"`
	Kategori   string  `json:"kategori" gorm:"index"`
	Keterangan string  `json:"keterangan"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (TempatPenting) TableName() string { return "tempat_penting" }

func (t TempatPenting) Lokasi() geo.Shape {
	return geo.NewPoint(t.Latitude, t.Longitude)
}
