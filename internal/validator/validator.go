// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"expensetracker/internal/currency"
	"expensetracker/internal/ledger"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("entry_type", validateEntryType)
	_ = v.RegisterValidation("type_facet", validateTypeFacet)
	_ = v.RegisterValidation("date_range", validateDateRange)
	_ = v.RegisterValidation("iso_date", validateISODate)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currency.IsKnown(strings.TrimSpace(fl.Field().String()))
}

func validateEntryType(fl validator.FieldLevel) bool {
	return ledger.EntryType(strings.ToLower(fl.Field().String())).Valid()
}

func validateTypeFacet(fl validator.FieldLevel) bool {
	_, err := ledger.ParseTypeFacet(fl.Field().String())
	return err == nil
}

// validateDateRange accepts the preset names. Custom spans are sent as
// explicit from/to dates instead.
func validateDateRange(fl validator.FieldLevel) bool {
	_, err := ledger.ParseRangeKind(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ledger.ParseDate(fl.Field().String())
	return err == nil
}
