package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

// Jumlah adalah satu baris hasil GROUP BY.
type Jumlah struct {
	Kunci  string `json:"kunci"`
	Jumlah int64  `json:"jumlah"`
}

type Statistik struct {
	TotalPenduduk     int64    `json:"total_penduduk"`
	TotalKK           int64    `json:"total_kk"`
	TotalRumah        int64    `json:"total_rumah"`
	PendudukPerJK     []Jumlah `json:"penduduk_per_jenis_kelamin"`
	PendudukPerRW     []Jumlah `json:"penduduk_per_rw"`
	PendudukPerRT     []Jumlah `json:"penduduk_per_rt"`
	BencanaAktif      int64    `json:"bencana_aktif"`
	BencanaPerJenis   []Jumlah `json:"bencana_per_jenis"`
	FasilitasPerJenis []Jumlah `json:"fasilitas_per_kategori"`
}

type StatistikRepository interface {
	Get() (*Statistik, error)
}

type statistikRepository struct {
	db *gorm.DB
}

func NewStatistikRepository(db *gorm.DB) StatistikRepository {
	return &statistikRepository{db}
}

func (r *statistikRepository) Get() (*Statistik, error) {
	s := &Statistik{}

	// 1. Total
	if err := r.db.Model(&model.Penduduk{}).Where("is_active = ?", true).Count(&s.TotalPenduduk).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.KartuKeluarga{}).Count(&s.TotalKK).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Rumah{}).Count(&s.TotalRumah).Error; err != nil {
		return nil, err
	}

	// 2. Penduduk per jenis kelamin dan wilayah
	var err error
	if s.PendudukPerJK, err = r.groupPenduduk("jenis_kelamin"); err != nil {
		return nil, err
	}
	if s.PendudukPerRW, err = r.groupPenduduk("rw"); err != nil {
		return nil, err
	}
	if s.PendudukPerRT, err = r.pendudukPerRT(); err != nil {
		return nil, err
	}

	// 3. Bencana dan fasilitas
	if err := r.db.Model(&model.Bencana{}).Where("status = ?", model.StatusAktif).Count(&s.BencanaAktif).Error; err != nil {
		return nil, err
	}
	if err := r.group(&model.Bencana{}, "jenis", &s.BencanaPerJenis); err != nil {
		return nil, err
	}
	if err := r.group(&model.Fasilitas{}, "kategori", &s.FasilitasPerJenis); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *statistikRepository) groupPenduduk(column string) ([]Jumlah, error) {
	var rows []Jumlah
	err := r.db.Model(&model.Penduduk{}).
		Select(column+" AS kunci, COUNT(*) AS jumlah").
		Where("is_active = ?", true).
		Group(column).Order(column + " asc").
		Scan(&rows).Error
	return rows, err
}

// pendudukPerRT mengelompokkan per pasangan RW/RT dengan kunci "RW/RT", misalnya "002/001".
func (r *statistikRepository) pendudukPerRT() ([]Jumlah, error) {
	var rows []struct {
		RW     string
		RT     string
		Jumlah int64
	}
	err := r.db.Model(&model.Penduduk{}).
		Select("rw, rt, COUNT(*) AS jumlah").
		Where("is_active = ?", true).
		Group("rw, rt").Order("rw asc, rt asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]Jumlah, 0, len(rows))
	for _, row := range rows {
		out = append(out, Jumlah{Kunci: row.RW + "/" + row.RT, Jumlah: row.Jumlah})
	}
	return out, nil
}

func (r *statistikRepository) group(value interface{}, column string, out *[]Jumlah) error {
	return r.db.Model(value).
		Select(column + " AS kunci, COUNT(*) AS jumlah").
		Group(column).Order(column + " asc").
		Scan(out).Error
}
