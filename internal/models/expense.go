package models

import (
	"github.com/shopspring/decimal"

	"expensetracker/internal/ledger"
)

// Expense is a stored income or expense row. Amount and Type are nullable
// because rows written before those columns were enforced may lack them;
// they are read back through ledger.Normalize.
type Expense struct {
	Base
	UserID   string              `gorm:"not null;index:idx_expenses_user_date,priority:1" json:"user_id"`
	Amount   decimal.NullDecimal `gorm:"type:numeric(14,4)" json:"amount"`
	Currency string              `gorm:"size:3;not null;default:USD" json:"currency"`
	Category string              `gorm:"not null;default:Other" json:"category"`
	Type     *string             `gorm:"size:10" json:"type"`
	Note     string              `json:"note"`
	Date     ledger.Date         `gorm:"type:date;not null;index:idx_expenses_user_date,priority:2" json:"date"`
}

// Raw returns the row in its undecoded form.
func (e *Expense) Raw() ledger.RawTransaction {
	raw := ledger.RawTransaction{
		ID:       e.ID,
		UserID:   e.UserID,
		Currency: e.Currency,
		Category: e.Category,
		Note:     e.Note,
		Date:     e.Date,
	}
	if e.Amount.Valid {
		raw.Amount = e.Amount.Decimal
	}
	if e.Type != nil {
		raw.Type = *e.Type
	}
	return raw
}

// Transaction decodes the row.
func (e *Expense) Transaction() ledger.Transaction {
	return ledger.Normalize(e.Raw())
}

// Apply copies every editable field of d onto the row.
func (e *Expense) Apply(d ledger.Draft) {
	t := string(d.Type)
	e.Amount = decimal.NewNullDecimal(d.Amount)
	e.Currency = d.Currency
	e.Category = d.Category
	e.Type = &t
	e.Note = d.Note
	e.Date = d.Date
}
