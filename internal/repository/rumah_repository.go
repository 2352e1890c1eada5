package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type RumahFilter struct {
	Search string
	RT     string
	RW     string
}

type RumahRepository interface {
	GetAll(filter RumahFilter) ([]model.Rumah, error)
	GetByID(id uint) (*model.Rumah, error)
	Create(rumah *model.Rumah) error
	Update(rumah *model.Rumah) error
	Delete(id uint) error
}

type rumahRepository struct {
	db *gorm.DB
}

func NewRumahRepository(db *gorm.DB) RumahRepository {
	return &rumahRepository{db}
}

func (r *rumahRepository) GetAll(filter RumahFilter) ([]model.Rumah, error) {
	var list []model.Rumah
	query := r.db.Model(&model.Rumah{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("no_rumah LIKE ? OR pemilik LIKE ? OR alamat LIKE ?", searchPattern, searchPattern, searchPattern)
	}
	if filter.RT != "" {
		query = query.Where("rt = ?", filter.RT)
	}
	if filter.RW != "" {
		query = query.Where("rw = ?", filter.RW)
	}
	err := query.Order("rw asc, rt asc, no_rumah asc").Find(&list).Error
	return list, err
}

func (r *rumahRepository) GetByID(id uint) (*model.Rumah, error) {
	var rumah model.Rumah
	err := r.db.First(&rumah, id).Error
	return &rumah, err
}

func (r *rumahRepository) Create(rumah *model.Rumah) error {
	return r.db.Create(rumah).Error
}

func (r *rumahRepository) Update(rumah *model.Rumah) error {
	return r.db.Save(rumah).Error
}

func (r *rumahRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Rumah{}, id)
}
