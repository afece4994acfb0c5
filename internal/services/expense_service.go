package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/models"
)

// expenseService reads and writes the expenses table. Every query is scoped
// to the calling user.
type expenseService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, audit AuditServicer) ExpenseServicer {
	return &expenseService{db: db, audit: audit}
}

// ListExpenses returns every expense of the user, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, userID string) ([]ledger.Transaction, error) {
	var rows []models.Expense
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]ledger.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Transaction())
	}
	return out, nil
}

// InsertExpense stores a new expense and returns it with its assigned id.
func (s *expenseService) InsertExpense(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	row := &models.Expense{UserID: userID}
	row.Apply(d)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(s.db.WithContext(ctx), userID, "create", "expense", row.ID, map[string]any{
		"amount":   d.Amount.String(),
		"currency": d.Currency,
		"category": d.Category,
		"type":     d.Type,
	})

	tx := row.Transaction()
	return &tx, nil
}

// UpdateExpense replaces every editable field of the user's expense id.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, id string, d ledger.Draft) (*ledger.Transaction, error) {
	var updated *models.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.find(tx, userID, id)
		if err != nil {
			return err
		}
		row.Apply(d)
		if err := tx.Select("amount", "currency", "category", "type", "note", "date", "updated_at").
			Save(row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(s.db.WithContext(ctx), userID, "update", "expense", id, map[string]any{
		"amount":   d.Amount.String(),
		"currency": d.Currency,
		"category": d.Category,
		"type":     d.Type,
	})

	result := updated.Transaction()
	return &result, nil
}

// DeleteExpense removes the user's expense id.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	s.audit.Log(s.db.WithContext(ctx), userID, "delete", "expense", id, nil)
	return nil
}

func (s *expenseService) find(db *gorm.DB, userID, id string) (*models.Expense, error) {
	var row models.Expense
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}
