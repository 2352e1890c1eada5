package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type BatasFilter struct {
	Jenis string
	RT    string
	RW    string
}

type BatasRepository interface {
	GetAll(filter BatasFilter) ([]model.BatasWilayah, error)
	GetByID(id uint) (*model.BatasWilayah, error)
	FindDesa() (*model.BatasWilayah, error)
	Create(batas *model.BatasWilayah) error
	Update(batas *model.BatasWilayah) error
	Delete(id uint) error
}

type batasRepository struct {
	db *gorm.DB
}

func NewBatasRepository(db *gorm.DB) BatasRepository {
	return &batasRepository{db}
}

func (r *batasRepository) GetAll(filter BatasFilter) ([]model.BatasWilayah, error) {
	var list []model.BatasWilayah
	query := r.db.Model(&model.BatasWilayah{})
	if filter.Jenis != "" {
		query = query.Where("jenis = ?", filter.Jenis)
	}
	if filter.RT != "" {
		query = query.Where("rt = ?", filter.RT)
	}
	if filter.RW != "" {
		query = query.Where("rw = ?", filter.RW)
	}
	err := query.Order("jenis asc, nama asc").Find(&list).Error
	return list, err
}

func (r *batasRepository) GetByID(id uint) (*model.BatasWilayah, error) {
	var batas model.BatasWilayah
	err := r.db.First(&batas, id).Error
	return &batas, err
}

// FindDesa mengembalikan batas wilayah desa (jenis "desa") yang pertama dibuat.
func (r *batasRepository) FindDesa() (*model.BatasWilayah, error) {
	var batas model.BatasWilayah
	err := r.db.Where("jenis = ?", model.JenisDesa).Order("id asc").First(&batas).Error
	return &batas, err
}

func (r *batasRepository) Create(batas *model.BatasWilayah) error {
	return r.db.Create(batas).Error
}

func (r *batasRepository) Update(batas *model.BatasWilayah) error {
	return r.db.Save(batas).Error
}

func (r *batasRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.BatasWilayah{}, id)
}
