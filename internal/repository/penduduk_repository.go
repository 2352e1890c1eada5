package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type PendudukFilter struct {
	Search       string
	RT           string
	RW           string
	KKID         uint
	JenisKelamin string
	// Semua ikut menampilkan penduduk tidak aktif (pindah/meninggal).
	Semua bool
}

type PendudukRepository interface {
	GetAll(filter PendudukFilter) ([]model.Penduduk, error)
	GetByID(id uint) (*model.Penduduk, error)
	FindByNIK(nik string) (*model.Penduduk, error)
	Create(penduduk *model.Penduduk) error
	Update(penduduk *model.Penduduk) error
	Delete(id uint) error
	Count() (int64, error)
}

type pendudukRepository struct {
	db *gorm.DB
}

func NewPendudukRepository(db *gorm.DB) PendudukRepository {
	return &pendudukRepository{db}
}

func (r *pendudukRepository) GetAll(filter PendudukFilter) ([]model.Penduduk, error) {
	var list []model.Penduduk
	query := r.db.Model(&model.Penduduk{}).Preload("KartuKeluarga")

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("nama LIKE ? OR nik LIKE ?", searchPattern, searchPattern)
	}
	if filter.RT != "" {
		query = query.Where("rt = ?", filter.RT)
	}
	if filter.RW != "" {
		query = query.Where("rw = ?", filter.RW)
	}
	if filter.KKID != 0 {
		query = query.Where("kartu_keluarga_id = ?", filter.KKID)
	}
	if filter.JenisKelamin != "" {
		query = query.Where("jenis_kelamin = ?", filter.JenisKelamin)
	}
	if !filter.Semua {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("nama asc").Find(&list).Error
	return list, err
}

func (r *pendudukRepository) GetByID(id uint) (*model.Penduduk, error) {
	var penduduk model.Penduduk
	err := r.db.Preload("KartuKeluarga").First(&penduduk, id).Error
	return &penduduk, err
}

func (r *pendudukRepository) FindByNIK(nik string) (*model.Penduduk, error) {
	var penduduk model.Penduduk
	err := r.db.Where("nik = ?", nik).First(&penduduk).Error
	return &penduduk, err
}

func (r *pendudukRepository) Create(penduduk *model.Penduduk) error {
	return r.db.Create(penduduk).Error
}

func (r *pendudukRepository) Update(penduduk *model.Penduduk) error {
	return r.db.Omit("KartuKeluarga").Save(penduduk).Error
}

// Delete adalah soft delete (deleted_at), data tetap ada untuk arsip.
func (r *pendudukRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Penduduk{}, id)
}

func (r *pendudukRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Penduduk{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
