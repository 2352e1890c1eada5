package model

import (
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
)

// Desa adalah profil desa. Tabel ini hanya berisi satu baris.
type Desa struct {
	gorm.Model
	Nama         string  `json:"nama" gorm:"not null"`
	KodeWilayah  string  `json:"kode_wilayah"`
	Kecamatan    string  `json:"kecamatan"`
	Kabupaten    string  `json:"kabupaten"`
	Provinsi     string  `json:"provinsi"`
	KepalaDesa   string  `json:"kepala_desa"`
	AlamatKantor string  `json:"alamat_kantor"`
	CenterLat    float64 `json:"center_lat"`
	CenterLon    float64 `json:"center_lon"`
	Zoom         int     `json:"zoom" gorm:"default:15"`
}

func (Desa) TableName() string { return "desa" }

// Jenis batas wilayah. Selain ini jenis tata guna lahan (pemukiman, pertanian, ...) juga diterima.
const (
	JenisDesa  = "desa"
	JenisDusun = "dusun"
	JenisRW    = "rw"
	JenisRT    = "rt"
)

type BatasWilayah struct {
	gorm.Model
	Nama       string    `json:"nama" gorm:"not null"`
	Jenis      string    `json:"jenis" gorm:"index;not null"`
	RT         string    `json:"rt" gorm:"size:3"`
	RW         string    `json:"rw" gorm:"size:3"`
	Keterangan string    `json:"keterangan"`
	Wilayah    geo.Shape `json:"wilayah" gorm:"type:text"`
	LuasM2     float64   `json:"luas_m2"`
}

func (BatasWilayah) TableName() string { return "batas_wilayah" }
