package services

import (
	"context"

	"gorm.io/gorm"

	"expensetracker/internal/ledger"
	"expensetracker/internal/store"
)

// ExpenseServicer defines the contract for the user-scoped expenses table.
type ExpenseServicer interface {
	ListExpenses(ctx context.Context, userID string) ([]ledger.Transaction, error)
	InsertExpense(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error)
	UpdateExpense(ctx context.Context, userID, id string, d ledger.Draft) (*ledger.Transaction, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}

// CategoryServicer defines the contract for the user-scoped categories table.
type CategoryServicer interface {
	ListCategories(ctx context.Context, userID string) ([]string, error)
	InsertCategory(ctx context.Context, userID, name string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(tx *gorm.DB, userID, action, resourceType, resourceID string, changes map[string]any)
}

// DataService is the remote persistence collaborator backing every session
// store.
type DataService struct {
	ExpenseServicer
	CategoryServicer
}

var _ store.Remote = (*DataService)(nil)

// NewDataService wires the expense and category services over db.
func NewDataService(db *gorm.DB) *DataService {
	return &DataService{
		ExpenseServicer:  NewExpenseService(db, NewAuditService(db)),
		CategoryServicer: NewCategoryService(db),
	}
}
