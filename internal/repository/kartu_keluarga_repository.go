package repository

import (
	"errors"

	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

var ErrKKMasihPunyaAnggota = errors.New("kartu keluarga masih memiliki anggota")

type KartuKeluargaRepository interface {
	GetAll(search, rt, rw string) ([]model.KartuKeluarga, error)
	GetByID(id uint) (*model.KartuKeluarga, error)
	FindByNoKK(noKK string) (*model.KartuKeluarga, error)
	Create(kk *model.KartuKeluarga) error
	Update(kk *model.KartuKeluarga) error
	Delete(id uint) error
	Count() (int64, error)
}

type kartuKeluargaRepository struct {
	db *gorm.DB
}

func NewKartuKeluargaRepository(db *gorm.DB) KartuKeluargaRepository {
	return &kartuKeluargaRepository{db}
}

func (r *kartuKeluargaRepository) GetAll(search, rt, rw string) ([]model.KartuKeluarga, error) {
	var list []model.KartuKeluarga
	query := r.db.Model(&model.KartuKeluarga{})
	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("no_kk LIKE ? OR kepala_keluarga LIKE ?", searchPattern, searchPattern)
	}
	if rt != "" {
		query = query.Where("rt = ?", rt)
	}
	if rw != "" {
		query = query.Where("rw = ?", rw)
	}
	err := query.Order("rw asc, rt asc, kepala_keluarga asc").Find(&list).Error
	return list, err
}

func (r *kartuKeluargaRepository) GetByID(id uint) (*model.KartuKeluarga, error) {
	var kk model.KartuKeluarga
	err := r.db.Preload("Anggota").Preload("Rumah").First(&kk, id).Error
	return &kk, err
}

func (r *kartuKeluargaRepository) FindByNoKK(noKK string) (*model.KartuKeluarga, error) {
	var kk model.KartuKeluarga
	err := r.db.Where("no_kk = ?", noKK).First(&kk).Error
	return &kk, err
}

func (r *kartuKeluargaRepository) Create(kk *model.KartuKeluarga) error {
	return r.db.Create(kk).Error
}

func (r *kartuKeluargaRepository) Update(kk *model.KartuKeluarga) error {
	return r.db.Omit("Anggota", "Rumah").Save(kk).Error
}

// Delete menolak menghapus KK yang masih dipakai penduduk.
func (r *kartuKeluargaRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var anggota int64
		if err := tx.Model(&model.Penduduk{}).Where("kartu_keluarga_id = ?", id).Count(&anggota).Error; err != nil {
			return err
		}
		if anggota > 0 {
			return ErrKKMasihPunyaAnggota
		}
		return deleteByID(tx, &model.KartuKeluarga{}, id)
	})
}

func (r *kartuKeluargaRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.KartuKeluarga{}).Count(&count).Error
	return count, err
}
