// Package ledger holds the transaction model and the filtering and
// aggregation engine that derives totals, category breakdowns and trend
// series from an in-memory transaction list.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"expensetracker/internal/currency"
)

// EntryType distinguishes money going out (debit) from money coming in (credit).
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// Valid reports whether t is debit or credit.
func (t EntryType) Valid() bool {
	return t == Debit || t == Credit
}

// DefaultCategories exist for every user before any custom category is added.
var DefaultCategories = []string{"Food", "Transport", "Utilities", "Entertainment", "Health", "Other"}

// FallbackCategory is recorded when an entry arrives without a category.
const FallbackCategory = "Other"

// Transaction is a single income or expense entry owned by one user.
type Transaction struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Category string          `json:"category"`
	Type     EntryType       `json:"type"`
	Note     string          `json:"note"`
	Date     Date            `json:"date"`
}

// Validation errors. They are returned before any state changes.
var (
	ErrInvalidAmount   = errors.New("amount must be a number greater than zero")
	ErrUnknownCurrency = errors.New("currency is not supported")
	ErrInvalidType     = errors.New("type must be debit or credit")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingDate     = errors.New("date is required")
)

// Draft carries the user-editable fields of a transaction for create and
// full-field update.
type Draft struct {
	Amount   decimal.Decimal
	Currency string
	Category string
	Type     EntryType
	Note     string
	Date     Date
}

// ApplyDefaults fills the fields the entry form treats as optional.
func (d *Draft) ApplyDefaults() {
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if d.Currency == "" {
		d.Currency = currency.DefaultEntry
	}
	d.Category = strings.TrimSpace(d.Category)
	if d.Category == "" {
		d.Category = FallbackCategory
	}
	if d.Type == "" {
		d.Type = Debit
	}
	d.Note = strings.TrimSpace(d.Note)
}

// Validate checks the draft after defaults have been applied.
func (d Draft) Validate() error {
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !currency.IsKnown(d.Currency) {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, d.Currency)
	}
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	if d.Category == "" {
		return ErrMissingCategory
	}
	if d.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Transaction materializes the draft under the given id and owner.
func (d Draft) Transaction(id, userID string) Transaction {
	return Transaction{
		ID:       id,
		UserID:   userID,
		Amount:   d.Amount,
		Currency: d.Currency,
		Category: d.Category,
		Type:     d.Type,
		Note:     d.Note,
		Date:     d.Date,
	}
}

// MergeCategories returns the defaults followed by custom names, dropping
// duplicates and blanks while keeping first-seen order.
func MergeCategories(defaults, custom []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(custom))
	merged := make([]string, 0, len(defaults)+len(custom))
	for _, list := range [][]string{defaults, custom} {
		for _, name := range list {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}
