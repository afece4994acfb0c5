package ledger

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/currency"
)

// RawTransaction is a transaction as it arrives from storage or an import,
// before defaults are applied. Amount and Date are loosely typed because
// legacy rows carry strings, numbers or nothing at all.
type RawTransaction struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Amount   any    `json:"amount"`
	Currency string `json:"currency"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Note     string `json:"note"`
	Date     any    `json:"date"`
}

// Normalize is the single decoding step for incoming rows. A missing or
// non-numeric amount becomes zero, a missing or unrecognized type becomes
// debit, a blank currency becomes the entry default and an unreadable date
// becomes the zero date.
func Normalize(raw RawTransaction) Transaction {
	cur := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if cur == "" {
		cur = currency.DefaultEntry
	}
	return Transaction{
		ID:       raw.ID,
		UserID:   raw.UserID,
		Amount:   CoerceAmount(raw.Amount),
		Currency: cur,
		Category: raw.Category,
		Type:     NormalizeType(raw.Type),
		Note:     raw.Note,
		Date:     coerceDate(raw.Date),
	}
}

// NormalizeAll decodes a batch of rows.
func NormalizeAll(rows []RawTransaction) []Transaction {
	out := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, Normalize(r))
	}
	return out
}

// NormalizeType maps legacy values onto an EntryType.
func NormalizeType(s string) EntryType {
	switch EntryType(strings.ToLower(strings.TrimSpace(s))) {
	case Credit:
		return Credit
	default:
		return Debit
	}
}

// CoerceAmount converts v to a decimal, treating anything unreadable as zero.
func CoerceAmount(v any) decimal.Decimal {
	switch a := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return a
	case *decimal.Decimal:
		if a == nil {
			return decimal.Zero
		}
		return *a
	case decimal.NullDecimal:
		if !a.Valid {
			return decimal.Zero
		}
		return a.Decimal
	case float64:
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(a)
	case float32:
		return CoerceAmount(float64(a))
	case int:
		return decimal.NewFromInt(int64(a))
	case int64:
		return decimal.NewFromInt(a)
	case int32:
		return decimal.NewFromInt32(a)
	case json.Number:
		return CoerceAmount(string(a))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(a))
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		return CoerceAmount(string(a))
	default:
		return decimal.Zero
	}
}

func coerceDate(v any) Date {
	switch d := v.(type) {
	case Date:
		return d
	case time.Time:
		return DateOf(d)
	case *time.Time:
		if d == nil {
			return Date{}
		}
		return DateOf(*d)
	case string:
		parsed, err := ParseDate(d)
		if err != nil {
			return Date{}
		}
		return parsed
	default:
		return Date{}
	}
}
