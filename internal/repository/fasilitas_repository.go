package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type FasilitasFilter struct {
	Kategori string
	Kondisi  string
	Search   string
}

type FasilitasRepository interface {
	GetAll(filter FasilitasFilter) ([]model.Fasilitas, error)
	GetByID(id uint) (*model.Fasilitas, error)
	Create(fasilitas *model.Fasilitas) error
	Update(fasilitas *model.Fasilitas) error
	Delete(id uint) error
}

type fasilitasRepository struct {
	db *gorm.DB
}

func NewFasilitasRepository(db *gorm.DB) FasilitasRepository {
	return &fasilitasRepository{db}
}

func (r *fasilitasRepository) GetAll(filter FasilitasFilter) ([]model.Fasilitas, error) {
	var list []model.Fasilitas
	query := r.db.Model(&model.Fasilitas{})
	if filter.Kategori != "" {
		query = query.Where("kategori = ?", filter.Kategori)
	}
	if filter.Kondisi != "" {
		query = query.Where("kondisi = ?", filter.Kondisi)
	}
	if filter.Search != "" {
		query = query.Where("nama LIKE ?", "%"+filter.Search+"%")
	}
	err := query.Order("kategori asc, nama asc").Find(&list).Error
	return list, err
}

func (r *fasilitasRepository) GetByID(id uint) (*model.Fasilitas, error) {
	var fasilitas model.Fasilitas
	err := r.db.First(&fasilitas, id).Error
	return &fasilitas, err
}

func (r *fasilitasRepository) Create(fasilitas *model.Fasilitas) error {
	return r.db.Create(fasilitas).Error
}

func (r *fasilitasRepository) Update(fasilitas *model.Fasilitas) error {
	return r.db.Save(fasilitas).Error
}

func (r *fasilitasRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Fasilitas{}, id)
}
