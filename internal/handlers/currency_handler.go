package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/currency"
	apperrors "expensetracker/internal/errors"
)

// CurrencyHandler exposes the rate table and ad hoc conversions
type CurrencyHandler struct {
	conv Converter
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(conv Converter) *CurrencyHandler {
	return &CurrencyHandler{conv: conv}
}

// ConvertQuery represents the query parameters of a conversion
type ConvertQuery struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,currency_code"`
	To     string `form:"to" binding:"required,currency_code"`
}

// CurrencyListResponse lists the supported currencies
type CurrencyListResponse struct {
	Currencies     []currency.Currency `json:"currencies"`
	DefaultDisplay string              `json:"default_display"`
	DefaultEntry   string              `json:"default_entry"`
}

// ConvertResponse is the result of a conversion
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Result    decimal.Decimal `json:"result" swaggertype:"string"`
	Formatted string          `json:"formatted"`
}

// ListCurrencies handles listing the supported currencies
// @Summary     List currencies
// @Description Supported currency codes with their symbols and fixed rates to USD
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CurrencyListResponse "Currencies"
// @Router      /currencies [get]
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	list := make([]currency.Currency, 0, len(currency.Table))
	for _, code := range currency.Codes() {
		cur, _ := currency.Lookup(code)
		list = append(list, cur)
	}

	c.JSON(http.StatusOK, CurrencyListResponse{
		Currencies:     list,
		DefaultDisplay: currency.DefaultDisplay,
		DefaultEntry:   currency.DefaultEntry,
	})
}

// Convert handles converting an amount between two currencies
// @Summary     Convert an amount
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Param       amount query string true "Amount"
// @Param       from   query string true "Source currency"
// @Param       to     query string true "Target currency"
// @Success     200 {object} ConvertResponse "Converted amount"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /currencies/convert [get]
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var query ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(query.Amount))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a number"))
		return
	}
	from := strings.ToUpper(query.From)
	to := strings.ToUpper(query.To)

	result := h.conv.Convert(amount, from, to)
	c.JSON(http.StatusOK, ConvertResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Result:    result,
		Formatted: h.conv.Format(result, to),
	})
}
