package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type TempatPentingRepository interface {
	GetAll(kategori, search string) ([]model.TempatPenting, error)
	GetByID(id uint) (*model.TempatPenting, error)
	Create(poi *model.TempatPenting) error
	Update(poi *model.TempatPenting) error
	Delete(id uint) error
}

type tempatPentingRepository struct {
	db *gorm.DB
}

func NewTempatPentingRepository(db *gorm.DB) TempatPentingRepository {
	return &tempatPentingRepository{db}
}

func (r *tempatPentingRepository) GetAll(kategori, search string) ([]model.TempatPenting, error) {
	var list []model.TempatPenting
	query := r.db.Model(&model.TempatPenting{})
	if kategori != "" {
		query = query.Where("kategori = ?", kategori)
	}
	if search != "" {
		query = query.Where("nama LIKE ?", "%"+search+"%")
	}
	err := query.Order("nama asc").Find(&list).Error
	return list, err
}

func (r *tempatPentingRepository) GetByID(id uint) (*model.TempatPenting, error) {
	var poi model.TempatPenting
	err := r.db.First(&poi, id).Error
	return &poi, err
}

func (r *tempatPentingRepository) Create(poi *model.TempatPenting) error {
	return r.db.Create(poi).Error
}

func (r *tempatPentingRepository) Update(poi *model.TempatPenting) error {
	return r.db.Save(poi).Error
}

func (r *tempatPentingRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.TempatPenting{}, id)
}
