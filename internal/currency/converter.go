package currency

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"expensetracker/internal/logger"
)

// Converter converts amounts through USD using a fixed rate table and formats
// them for display. Conversion and formatting never fail: unknown codes are
// logged and the input is returned unconverted or rendered as plain text.
type Converter struct {
	rates map[string]Currency
	log   *zap.SugaredLogger
	tag   language.Tag
}

// NewConverter creates a Converter over table. A nil log uses the global logger.
func NewConverter(table []Currency, log *zap.SugaredLogger) *Converter {
	return &Converter{
		rates: index(table),
		log:   log,
		tag:   language.AmericanEnglish,
	}
}

var defaultConverter = NewConverter(Table, nil)

// Default returns the converter over the compiled-in table.
func Default() *Converter { return defaultConverter }

// Convert converts amount using the compiled-in table.
func Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	return defaultConverter.Convert(amount, from, to)
}

// Format formats amount using the compiled-in table.
func Format(amount decimal.Decimal, code string) string {
	return defaultConverter.Format(amount, code)
}

func (c *Converter) logger() *zap.SugaredLogger {
	if c.log != nil {
		return c.log
	}
	return logger.Named("currency")
}

// Convert returns amount * rate(from) / rate(to). When either code is not in
// the table the amount is returned unchanged and a warning is logged.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	src, okFrom := c.rates[strings.ToUpper(from)]
	dst, okTo := c.rates[strings.ToUpper(to)]
	if !okFrom || !okTo {
		c.logger().Warnw("currency conversion skipped: unknown currency",
			"from", from,
			"to", to,
		)
		return amount
	}
	if src.Code == dst.Code {
		return amount
	}
	return amount.Mul(src.RateToUSD).Div(dst.RateToUSD)
}

// Format renders amount with en-US currency rules for code, e.g. "$1,234.50"
// or "OMR 38.450". Codes that are not ISO 4217 fall back to "<code> <amount>".
func (c *Converter) Format(amount decimal.Decimal, code string) string {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		c.logger().Errorw("currency formatting failed",
			"currency", code,
			"error", err,
		)
		return fmt.Sprintf("%s %s", code, amount.String())
	}

	scale, _ := xcurrency.Standard.Rounding(unit)
	value, _ := amount.Abs().Round(int32(scale)).Float64()

	p := message.NewPrinter(c.tag)
	symbol := p.Sprint(xcurrency.Symbol(unit))
	digits := p.Sprint(number.Decimal(value, number.Scale(scale)))

	var b strings.Builder
	if amount.Round(int32(scale)).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	if endsInLetter(symbol) {
		b.WriteByte(' ')
	}
	b.WriteString(digits)
	return b.String()
}

func endsInLetter(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}
