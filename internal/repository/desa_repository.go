package repository

import (
	"errors"

	"gorm.io/gorm"

	"sistem-desa/internal/model"
)

type DesaRepository interface {
	Get() (*model.Desa, error)
	Save(desa *model.Desa) error
}

type desaRepository struct {
	db *gorm.DB
}

func NewDesaRepository(db *gorm.DB) DesaRepository {
	return &desaRepository{db}
}

func (r *desaRepository) Get() (*model.Desa, error) {
	var desa model.Desa
	err := r.db.Order("id asc").First(&desa).Error
	return &desa, err
}

// Save mengisi baris profil yang sudah ada, atau membuatnya jika belum ada.
func (r *desaRepository) Save(desa *model.Desa) error {
	existing, err := r.Get()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		desa.ID = existing.ID
		desa.CreatedAt = existing.CreatedAt
	}
	return r.db.Save(desa).Error
}
