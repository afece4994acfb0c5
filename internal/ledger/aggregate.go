package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Converter converts an amount between two currency codes. It must not fail;
// unknown codes return the amount unchanged.
type Converter interface {
	Convert(amount decimal.Decimal, from, to string) decimal.Decimal
}

// Filter returns the transactions passing every facet, in input order.
func Filter(txs []Transaction, f Facets, now time.Time) []Transaction {
	w := f.Range.Window(now)
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx, w) {
			out = append(out, tx)
		}
	}
	return out
}

// Total aggregates the already filtered list into the display currency. With
// the all facet credits add and debits subtract; with a single-type facet the
// list is homogeneous and magnitudes are summed.
func Total(filtered []Transaction, facet TypeFacet, display string, conv Converter) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range filtered {
		amount := conv.Convert(tx.Amount, tx.Currency, display)
		if (facet == TypeAll || facet == "") && tx.Type != Credit {
			amount = amount.Neg()
		}
		total = total.Add(amount)
	}
	return total
}

// TotalLabel is the user-facing name of the total for a type facet.
func TotalLabel(facet TypeFacet) string {
	switch facet {
	case TypeDebit:
		return "Total Expenses"
	case TypeCredit:
		return "Total Income"
	default:
		return "Net Balance"
	}
}

// CategoryAmount is one bucket of a category breakdown.
type CategoryAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CategoryBreakdown groups filtered transactions by category and sums their
// converted amounts. Zero-value groups are omitted and the result is ordered
// by descending value, ties broken by name.
func CategoryBreakdown(filtered []Transaction, display string, conv Converter) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range filtered {
		sums[tx.Category] = sums[tx.Category].Add(conv.Convert(tx.Amount, tx.Currency, display))
	}

	out := make([]CategoryAmount, 0, len(sums))
	for name, v := range sums {
		if v.IsZero() {
			continue
		}
		out = append(out, CategoryAmount{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MonthLabels are the fixed labels of a trend series.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// TrendPoint is one month of a trend series.
type TrendPoint struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// TrendSeries is a full year of monthly spending.
type TrendSeries struct {
	Year   int          `json:"year"`
	Points []TrendPoint `json:"points"`
}

// Trend buckets debit transactions dated in year by calendar month. It
// ignores every facet and always spans twelve months.
func Trend(txs []Transaction, year int, display string, conv Converter) TrendSeries {
	var buckets [12]decimal.Decimal
	for _, tx := range txs {
		if tx.Type != Debit || tx.Date.IsZero() || tx.Date.Year() != year {
			continue
		}
		m := tx.Date.Month() - 1
		buckets[m] = buckets[m].Add(conv.Convert(tx.Amount, tx.Currency, display))
	}

	series := TrendSeries{Year: year, Points: make([]TrendPoint, 12)}
	for i, label := range MonthLabels {
		series.Points[i] = TrendPoint{Month: label, Value: buckets[i]}
	}
	return series
}

// Summary splits a filtered list into spending and income.
type Summary struct {
	Spending decimal.Decimal `json:"spending"`
	Income   decimal.Decimal `json:"income"`
	Net      decimal.Decimal `json:"net"`
}

// Summarize computes spending, income and their difference in the display currency.
func Summarize(filtered []Transaction, display string, conv Converter) Summary {
	var s Summary
	for _, tx := range filtered {
		amount := conv.Convert(tx.Amount, tx.Currency, display)
		if tx.Type == Credit {
			s.Income = s.Income.Add(amount)
		} else {
			s.Spending = s.Spending.Add(amount)
		}
	}
	s.Net = s.Income.Sub(s.Spending)
	return s
}

// SortByDateDesc orders txs newest first, keeping input order for equal dates.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date.Time)
	})
}
