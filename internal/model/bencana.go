package model

import (
	"gorm.io/gorm"

	"sistem-desa/internal/geo"
)

const (
	StatusAktif      = "AKTIF"
	StatusPenanganan = "PENANGANAN"
	StatusSelesai    = "SELESAI"
)

var StatusBencana = []string{StatusAktif, StatusPenanganan, StatusSelesai}

type Bencana struct {
	gorm.Model
	Kode       string    `json:"kode" gorm:"size:36;uniqueIndex"`
	Jenis      string    `json:"jenis" gorm:"index;not null"`
	Tanggal    string    `json:"tanggal"` // Format YYYY-MM-DD
	Keterangan string    `json:"keterangan"`
	Status     string    `json:"status" gorm:"index;default:AKTIF"`
	KorbanJiwa int       `json:"korban_jiwa"`
	KorbanLuka int       `json:"korban_luka"`
	Pengungsi  int       `json:"pengungsi"`
	RT         string    `json:"rt" gorm:"size:3"`
	RW         string    `json:"rw" gorm:"size:3"`
	Lokasi     geo.Shape `json:"lokasi" gorm:"type:text"`
	LuasM2     float64   `json:"luas_m2"`
}

func (Bencana) TableName() string { return "bencana" }
