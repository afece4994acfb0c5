package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
)

// ReportHandler serves the category breakdown, monthly trend and summary views
type ReportHandler struct {
	sessions SessionProvider
	conv     Converter
	clock    Clock
}

// NewReportHandler creates a new ReportHandler. A nil clock means time.Now.
func NewReportHandler(sessions SessionProvider, conv Converter, clock Clock) *ReportHandler {
	return &ReportHandler{sessions: sessions, conv: conv, clock: clock}
}

// BreakdownQuery selects the span of a category breakdown. Explicit from/to
// dates win over year/month; with neither the current calendar month is used.
type BreakdownQuery struct {
	From     string `form:"from" binding:"omitempty,iso_date"`
	To       string `form:"to" binding:"omitempty,iso_date"`
	Year     int    `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month    int    `form:"month" binding:"omitempty,min=1,max=12"`
	Type     string `form:"type" binding:"omitempty,type_facet"`
	Category string `form:"category"`
	Currency string `form:"currency" binding:"omitempty,currency_code"`
}

// TrendQuery selects the year of a trend series
type TrendQuery struct {
	Year     int    `form:"year" binding:"omitempty,min=1970,max=9999"`
	Currency string `form:"currency" binding:"omitempty,currency_code"`
}

// AmountResponse is an amount in the display currency with its formatted form
type AmountResponse struct {
	Value     decimal.Decimal `json:"value" swaggertype:"string"`
	Formatted string          `json:"formatted"`
}

// CategoryAmountResponse is one bucket of a category breakdown
type CategoryAmountResponse struct {
	Name string `json:"name"`
	AmountResponse
}

// BreakdownResponse is the per-category view of a span
type BreakdownResponse struct {
	Currency   string                   `json:"currency"`
	Type       ledger.TypeFacet         `json:"type"`
	Start      ledger.Date              `json:"start" swaggertype:"string"`
	End        ledger.Date              `json:"end" swaggertype:"string"`
	Total      AmountResponse           `json:"total"`
	Categories []CategoryAmountResponse `json:"categories"`
}

// TrendPointResponse is one month of a trend series
type TrendPointResponse struct {
	Month string `json:"month"`
	AmountResponse
}

// TrendResponse is a year of monthly spending
type TrendResponse struct {
	Year     int                  `json:"year"`
	Currency string               `json:"currency"`
	Points   []TrendPointResponse `json:"points"`
}

// SummaryResponse splits a filtered view into spending and income
type SummaryResponse struct {
	Currency string         `json:"currency"`
	Spending AmountResponse `json:"spending"`
	Income   AmountResponse `json:"income"`
	Net      AmountResponse `json:"net"`
}

func (h *ReportHandler) amount(v decimal.Decimal, display string) AmountResponse {
	return AmountResponse{Value: v, Formatted: h.conv.Format(v, display)}
}

func (q BreakdownQuery) facets(now time.Time) (ledger.Facets, error) {
	typeFacet := ledger.TypeDebit
	if strings.TrimSpace(q.Type) != "" {
		parsed, err := ledger.ParseTypeFacet(q.Type)
		if err != nil {
			return ledger.Facets{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		typeFacet = parsed
	}

	var dateRange ledger.DateRange
	if q.From != "" || q.To != "" {
		r, err := explicitRange(q.From, q.To)
		if err != nil {
			return ledger.Facets{}, err
		}
		dateRange = r
	} else {
		year, month := now.Year(), now.Month()
		if q.Year != 0 {
			year = q.Year
		}
		if q.Month != 0 {
			month = time.Month(q.Month)
		}
		dateRange = ledger.MonthOf(year, month)
	}

	return ledger.Facets{
		Type:       typeFacet,
		Categories: ledger.NewCategorySet(strings.Split(q.Category, ",")...),
		Range:      dateRange,
	}, nil
}

// GetBreakdown handles the category breakdown report
// @Summary     Category breakdown
// @Description Sum converted amounts per category over a span, largest first. Defaults to debits in the current calendar month.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       from     query string false "Start date (YYYY-MM-DD), inclusive"
// @Param       to       query string false "End date (YYYY-MM-DD), inclusive"
// @Param       year     query int    false "Calendar year"
// @Param       month    query int    false "Calendar month (1-12)"
// @Param       type     query string false "all, debit or credit"
// @Param       category query string false "Comma-separated category names"
// @Param       currency query string false "Display currency"
// @Success     200 {object} BreakdownResponse "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/breakdown [get]
func (h *ReportHandler) GetBreakdown(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query BreakdownQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	now := h.clock.now()
	facets, err := query.facets(now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	display := displayCurrency(query.Currency, s)
	filtered := ledger.Filter(s.Store.Transactions(), facets, now)
	groups := ledger.CategoryBreakdown(filtered, display, h.conv)

	categories := make([]CategoryAmountResponse, len(groups))
	for i, g := range groups {
		categories[i] = CategoryAmountResponse{Name: g.Name, AmountResponse: h.amount(g.Value, display)}
	}

	c.JSON(http.StatusOK, BreakdownResponse{
		Currency:   display,
		Type:       facets.Type,
		Start:      facets.Range.Start,
		End:        facets.Range.End,
		Total:      h.amount(ledger.Total(filtered, facets.Type, display, h.conv), display),
		Categories: categories,
	})
}

// GetTrend handles the monthly spending trend report
// @Summary     Monthly trend
// @Description Debit totals for each calendar month of a year
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year     query int    false "Calendar year, defaults to the current year"
// @Param       currency query string false "Display currency"
// @Success     200 {object} TrendResponse "Trend"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/trend [get]
func (h *ReportHandler) GetTrend(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query TrendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	year := query.Year
	if year == 0 {
		year = h.clock.now().Year()
	}

	display := displayCurrency(query.Currency, s)
	series := ledger.Trend(s.Store.Transactions(), year, display, h.conv)

	points := make([]TrendPointResponse, len(series.Points))
	for i, p := range series.Points {
		points[i] = TrendPointResponse{Month: p.Month, AmountResponse: h.amount(p.Value, display)}
	}

	c.JSON(http.StatusOK, TrendResponse{Year: series.Year, Currency: display, Points: points})
}

// GetSummary handles the spending and income summary
// @Summary     Spending and income summary
// @Description Spending, income and net over the transactions matching the filters
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Comma-separated category names"
// @Param       range    query string false "Today, Week, Month or All"
// @Param       from     query string false "Start date (YYYY-MM-DD), inclusive"
// @Param       to       query string false "End date (YYYY-MM-DD), inclusive"
// @Param       currency query string false "Display currency"
// @Success     200 {object} SummaryResponse "Summary"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query FacetQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.Type = ""
	facets, err := query.Facets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	display := displayCurrency(query.Currency, s)
	filtered := ledger.Filter(s.Store.Transactions(), facets, h.clock.now())
	sum := ledger.Summarize(filtered, display, h.conv)

	c.JSON(http.StatusOK, SummaryResponse{
		Currency: display,
		Spending: h.amount(sum.Spending, display),
		Income:   h.amount(sum.Income, display),
		Net:      h.amount(sum.Net, display),
	})
}
