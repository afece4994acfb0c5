package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/pagination"
	"expensetracker/internal/uuid"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	sessions SessionProvider
	conv     Converter
	clock    Clock
}

// NewTransactionHandler creates a new TransactionHandler. A nil clock means
// time.Now.
func NewTransactionHandler(sessions SessionProvider, conv Converter, clock Clock) *TransactionHandler {
	return &TransactionHandler{sessions: sessions, conv: conv, clock: clock}
}

// FacetQuery carries the filter facets shared by list and report endpoints.
type FacetQuery struct {
	Type     string `form:"type" binding:"omitempty,type_facet"`
	Category string `form:"category"`
	Range    string `form:"range" binding:"omitempty,date_range"`
	From     string `form:"from" binding:"omitempty,iso_date"`
	To       string `form:"to" binding:"omitempty,iso_date"`
	Currency string `form:"currency" binding:"omitempty,currency_code"`
}

// Facets converts the query into ledger facets. Explicit from/to dates take
// precedence over a range preset.
func (q FacetQuery) Facets() (ledger.Facets, error) {
	typeFacet, err := ledger.ParseTypeFacet(q.Type)
	if err != nil {
		return ledger.Facets{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	var dateRange ledger.DateRange
	if q.From != "" || q.To != "" {
		dateRange, err = explicitRange(q.From, q.To)
		if err != nil {
			return ledger.Facets{}, err
		}
	} else {
		kind, err := ledger.ParseRangeKind(q.Range)
		if err != nil {
			return ledger.Facets{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange, err.Error())
		}
		dateRange = ledger.Preset(kind)
	}

	return ledger.Facets{
		Type:       typeFacet,
		Categories: ledger.NewCategorySet(strings.Split(q.Category, ",")...),
		Range:      dateRange,
	}, nil
}

func explicitRange(from, to string) (ledger.DateRange, error) {
	var start, end ledger.Date
	var err error
	if from != "" {
		if start, err = ledger.ParseDate(from); err != nil {
			return ledger.DateRange{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange, err.Error())
		}
	}
	if to != "" {
		if end, err = ledger.ParseDate(to); err != nil {
			return ledger.DateRange{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange, err.Error())
		}
	}
	r, err := ledger.Between(start, end)
	if err != nil {
		return ledger.DateRange{}, apperrors.WithMessage(apperrors.ErrInvalidDateRange, err.Error())
	}
	return r, nil
}

// ListTransactionsQuery represents the query parameters for listing transactions
type ListTransactionsQuery struct {
	FacetQuery
	pagination.PageRequest
}

// TransactionRequest represents the request payload for creating or replacing a transaction
type TransactionRequest struct {
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50"`
	Currency string          `json:"currency" binding:"omitempty,currency_code" example:"USD"`
	Category string          `json:"category" example:"Food"`
	Type     string          `json:"type" binding:"omitempty,entry_type" example:"debit"`
	Note     string          `json:"note"`
	Date     string          `json:"date" binding:"required,iso_date" example:"2024-06-01"`
}

func (r TransactionRequest) draft() (ledger.Draft, error) {
	date, err := ledger.ParseDate(r.Date)
	if err != nil {
		return ledger.Draft{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return ledger.Draft{
		Amount:   r.Amount,
		Currency: r.Currency,
		Category: r.Category,
		Type:     ledger.EntryType(strings.ToLower(strings.TrimSpace(r.Type))),
		Note:     r.Note,
		Date:     date,
	}, nil
}

// TransactionResponse is a transaction with its amount shown in the display currency
type TransactionResponse struct {
	ledger.Transaction
	Pending          bool            `json:"pending"`
	DisplayAmount    decimal.Decimal `json:"display_amount" swaggertype:"string"`
	DisplayFormatted string          `json:"display_formatted"`
}

// TotalResponse is the headline total of a filtered view
type TotalResponse struct {
	Label     string          `json:"label"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Formatted string          `json:"formatted"`
}

// TransactionListResponse is a page of transactions plus the total over every match
type TransactionListResponse struct {
	pagination.PageResponse[TransactionResponse]
	Total TotalResponse `json:"total"`
}

func (h *TransactionHandler) present(tx ledger.Transaction, display string) TransactionResponse {
	converted := h.conv.Convert(tx.Amount, tx.Currency, display)
	return TransactionResponse{
		Transaction:      tx,
		Pending:          uuid.IsTemporary(tx.ID),
		DisplayAmount:    converted,
		DisplayFormatted: h.conv.Format(converted, display),
	}
}

// ListTransactions handles listing the caller's transactions
// @Summary     List transactions
// @Description Filter the caller's transactions by type, categories and date range, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "all, debit or credit"
// @Param       category  query string false "Comma-separated category names"
// @Param       range     query string false "Today, Week, Month or All"
// @Param       from      query string false "Start date (YYYY-MM-DD), inclusive"
// @Param       to        query string false "End date (YYYY-MM-DD), inclusive"
// @Param       currency  query string false "Display currency"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} TransactionListResponse "Filtered transactions"
// @Failure     400 {object} ErrorResponse "Invalid filters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	facets, err := query.Facets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	display := displayCurrency(query.Currency, s)
	filtered := ledger.Filter(s.Store.Transactions(), facets, h.clock.now())
	total := ledger.Total(filtered, facets.Type, display, h.conv)

	items := make([]TransactionResponse, len(filtered))
	for i, tx := range filtered {
		items[i] = h.present(tx, display)
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		PageResponse: pagination.Slice(items, query.PageRequest),
		Total: TotalResponse{
			Label:     ledger.TotalLabel(facets.Type),
			Currency:  display,
			Amount:    total,
			Formatted: h.conv.Format(total, display),
		},
	})
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an expense or income entry. The entry is visible immediately and confirmed by the data service.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Data service unavailable"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	draft, err := req.draft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := s.Store.Create(c.Request.Context(), draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": h.present(tx, s.DisplayCurrency())})
}

// UpdateTransaction handles replacing every editable field of a transaction
// @Summary     Update a transaction
// @Description Replace amount, currency, category, type, note and date of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction is still being saved"
// @Failure     502 {object} ErrorResponse "Data service unavailable"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	draft, err := req.draft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := s.Store.Update(c.Request.Context(), id, draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": h.present(tx, s.DisplayCurrency())})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction is still being saved"
// @Failure     502 {object} ErrorResponse "Data service unavailable"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := s.Store.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
