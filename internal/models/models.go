// Package models holds the GORM row types of the expenses database.
package models

// All returns every model, for AutoMigrate on SQLite where the SQL
// migrations are not used.
func All() []interface{} {
	return []interface{}{
		&Expense{},
		&Category{},
		&AuditLog{},
	}
}
