// Package currency holds the compiled-in exchange rate table and converts
// and formats monetary amounts between the supported currencies.
package currency

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a supported currency with its fixed rate to USD.
type Currency struct {
	Code      string          `json:"code"`
	Symbol    string          `json:"symbol"`
	RateToUSD decimal.Decimal `json:"rate_to_usd"`
}

const (
	// DefaultDisplay is the display currency selected for a new session.
	DefaultDisplay = "OMR"
	// DefaultEntry is the currency recorded when an entry omits one.
	DefaultEntry = "USD"
)

// Table lists the supported currencies. Rates are static; 1 OMR = 2.6008 USD,
// 1 EGP = 0.0202 USD.
var Table = []Currency{
	{Code: "OMR", Symbol: "﷼", RateToUSD: decimal.RequireFromString("2.6008")},
	{Code: "USD", Symbol: "$", RateToUSD: decimal.NewFromInt(1)},
	{Code: "EGP", Symbol: "£", RateToUSD: decimal.RequireFromString("0.0202")},
}

var byCode = index(Table)

func index(table []Currency) map[string]Currency {
	m := make(map[string]Currency, len(table))
	for _, c := range table {
		m[strings.ToUpper(c.Code)] = c
	}
	return m
}

// Lookup returns the currency for code.
func Lookup(code string) (Currency, bool) {
	c, ok := byCode[strings.ToUpper(code)]
	return c, ok
}

// IsKnown reports whether code is in the rate table.
func IsKnown(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Codes returns the supported codes in alphabetical order.
func Codes() []string {
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
