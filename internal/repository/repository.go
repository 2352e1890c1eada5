package repository

import "gorm.io/gorm"

// deleteByID menghapus satu baris dan mengembalikan gorm.ErrRecordNotFound jika id tidak ada.
func deleteByID(db *gorm.DB, value interface{}, id uint) error {
	res := db.Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
