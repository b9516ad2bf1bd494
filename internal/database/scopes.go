package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows owned by email
func OwnedBy(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_email = ?", email)
	}
}

// InsertionOrder orders rows by creation time, breaking ties by id
func InsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
