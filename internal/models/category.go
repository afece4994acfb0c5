package models

// Category is a custom category name added by a user. The default categories
// are not stored.
type Category struct {
	Base
	UserID string `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"name"`
}
