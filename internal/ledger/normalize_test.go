package ledger

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	t.Run("defaults_missing_fields", func(t *testing.T) {
		got := Normalize(RawTransaction{ID: "1", UserID: "u", Category: "Food", Date: "2024-06-01"})
		if got.Type != Debit {
			t.Errorf("expected debit, got %q", got.Type)
		}
		if got.Currency != "USD" {
			t.Errorf("expected USD, got %q", got.Currency)
		}
		if !got.Amount.IsZero() {
			t.Errorf("expected zero amount, got %s", got.Amount)
		}
		if got.Date.String() != "2024-06-01" {
			t.Errorf("expected 2024-06-01, got %s", got.Date)
		}
	})

	t.Run("keeps_credit", func(t *testing.T) {
		got := Normalize(RawTransaction{Type: " CREDIT ", Amount: "12.34", Currency: "omr"})
		if got.Type != Credit {
			t.Errorf("expected credit, got %q", got.Type)
		}
		if got.Currency != "OMR" {
			t.Errorf("expected OMR, got %q", got.Currency)
		}
		if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
			t.Errorf("expected 12.34, got %s", got.Amount)
		}
	})

	t.Run("unknown_type_becomes_debit", func(t *testing.T) {
		if got := Normalize(RawTransaction{Type: "refund"}); got.Type != Debit {
			t.Errorf("expected debit, got %q", got.Type)
		}
	})

	t.Run("timestamp_keeps_day", func(t *testing.T) {
		got := Normalize(RawTransaction{Date: time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)})
		if got.Date.String() != "2024-03-09" {
			t.Errorf("expected 2024-03-09, got %s", got.Date)
		}
	})

	t.Run("unreadable_date_is_zero", func(t *testing.T) {
		if got := Normalize(RawTransaction{Date: "yesterday"}); !got.Date.IsZero() {
			t.Errorf("expected zero date, got %s", got.Date)
		}
	})

	t.Run("decodes_json_rows", func(t *testing.T) {
		var rows []RawTransaction
		data := `[{"id":"a","amount":"oops"},{"id":"b","amount":42.5,"type":"credit","date":"2024-06-02T10:00:00Z"}]`
		dec := json.NewDecoder(strings.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&rows); err != nil {
			t.Fatalf("decode: %v", err)
		}
		txs := NormalizeAll(rows)
		if len(txs) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(txs))
		}
		if !txs[0].Amount.IsZero() || txs[0].Type != Debit {
			t.Errorf("unexpected first row %+v", txs[0])
		}
		if !txs[1].Amount.Equal(decimal.RequireFromString("42.5")) || txs[1].Type != Credit {
			t.Errorf("unexpected second row %+v", txs[1])
		}
		if txs[1].Date.String() != "2024-06-02" {
			t.Errorf("expected 2024-06-02, got %s", txs[1].Date)
		}
	})
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "0"},
		{name: "string", in: " 19.99 ", want: "19.99"},
		{name: "non_numeric_string", in: "n/a", want: "0"},
		{name: "empty_string", in: "", want: "0"},
		{name: "float", in: 2.5, want: "2.5"},
		{name: "nan", in: math.NaN(), want: "0"},
		{name: "int", in: 7, want: "7"},
		{name: "bytes", in: []byte("3.10"), want: "3.1"},
		{name: "null_decimal", in: decimal.NullDecimal{}, want: "0"},
		{name: "bool", in: true, want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CoerceAmount(tc.in)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
