package repository

import (
	"gorm.io/gorm"
)

// exists reports whether a row of m matches the condition. Updates cannot be
// used for this: MySQL counts only rows whose values changed.
func exists(tx *gorm.DB, m interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := tx.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// updateColumn sets one column of the row with id, or returns
// gorm.ErrRecordNotFound when there is no such row.
func updateColumn(tx *gorm.DB, m interface{}, id interface{}, column string, value interface{}) error {
	found, err := exists(tx, m, "id = ?", id)
	if err != nil {
		return err
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	return tx.Model(m).Where("id = ?", id).Update(column, value).Error
}
