package repository

import (
	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type BencanaFilter struct {
	Jenis  string
	Status string
	RT     string
	RW     string
}

type BencanaRepository interface {
	GetAll(filter BencanaFilter) ([]model.Bencana, error)
	GetByID(id uint) (*model.Bencana, error)
	Create(bencana *model.Bencana) error
	Update(bencana *model.Bencana) error
	Delete(id uint) error
}

type bencanaRepository struct {
	db *gorm.DB
}

func NewBencanaRepository(db *gorm.DB) BencanaRepository {
	return &bencanaRepository{db}
}

func (r *bencanaRepository) GetAll(filter BencanaFilter) ([]model.Bencana, error) {
	var list []model.Bencana
	query := r.db.Model(&model.Bencana{})
	if filter.Jenis != "" {
		query = query.Where("jenis = ?", filter.Jenis)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RT != "" {
		query = query.Where("rt = ?", filter.RT)
	}
	if filter.RW != "" {
		query = query.Where("rw = ?", filter.RW)
	}
	err := query.Order("tanggal desc, id desc").Find(&list).Error
	return list, err
}

func (r *bencanaRepository) GetByID(id uint) (*model.Bencana, error) {
	var bencana model.Bencana
	err := r.db.First(&bencana, id).Error
	return &bencana, err
}

func (r *bencanaRepository) Create(bencana *model.Bencana) error {
	return r.db.Create(bencana).Error
}

func (r *bencanaRepository) Update(bencana *model.Bencana) error {
	return r.db.Save(bencana).Error
}

func (r *bencanaRepository) Delete(id uint) error {
	return deleteByID(r.db, &model.Bencana{}, id)
}
