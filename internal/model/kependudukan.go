package model

import (
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
)

type KartuKeluarga struct {
	gorm.Model
	NoKK           string `json:"no_kk" gorm:"column:no_kk;size:16;uniqueIndex;not null"`
	KepalaKeluarga string `json:"kepala_keluarga"`
	Alamat         string `json:"alamat"`
	RT             string `json:"rt" gorm:"size:3;index"`
	RW             string `json:"rw" gorm:"size:3;index"`
	RumahID        *uint  `json:"rumah_id"`

	// Relasi
	Anggota []Penduduk `json:"anggota,omitempty" gorm:"foreignKey:KartuKeluargaID"`
	Rumah   *Rumah     `json:"rumah,omitempty" gorm:"foreignKey:RumahID"`
}

func (KartuKeluarga) TableName() string { return "kartu_keluarga" }

type Penduduk struct {
	gorm.Model
	NIK              string `json:"nik" gorm:"column:nik;size:16;uniqueIndex;not null"`
	Nama             string `json:"nama" gorm:"not null"`
	JenisKelamin     string `json:"jenis_kelamin" gorm:"size:1"` // L / P
	TempatLahir      string `json:"tempat_lahir"`
	TanggalLahir     string `json:"tanggal_lahir"` // Format YYYY-MM-DD
	Agama            string `json:"agama"`
	Pendidikan       string `json:"pendidikan"`
	Pekerjaan        string `json:"pekerjaan"`
	StatusPerkawinan string `json:"status_perkawinan"`
	HubunganKeluarga string `json:"hubungan_keluarga"`
	KartuKeluargaID  *uint  `json:"kartu_keluarga_id" gorm:"index"`
	RumahID          *uint  `json:"rumah_id"`
	RT               string `json:"rt" gorm:"size:3;index"`
	RW               string `json:"rw" gorm:"size:3;index"`
	IsActive         bool   `json:"is_active" gorm:"default:true"`

	// Relasi
	KartuKeluarga *KartuKeluarga `json:"kartu_keluarga,omitempty" gorm:"foreignKey:KartuKeluargaID"`
}

func (Penduduk) TableName() string { return "penduduk" }

type Rumah struct {
	gorm.Model
	NoRumah   string  `json:"no_rumah"`
	Pemilik   string  `json:"pemilik"`
	Alamat    string  `json:"alamat"`
	RT        string  `json:"rt" gorm:"size:3;index"`
	RW        string  `json:"rw" gorm:"size:3;index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Kondisi   string  `json:"kondisi"`
}

func (Rumah) TableName() string { return "rumah" }

func (r Rumah) Lokasi() geo.Shape {
	return geo.NewPoint(r.Latitude, r.Longitude)
}
