package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"expensetracker/internal/currency"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/session"
	"expensetracker/internal/uuid"
	"expensetracker/internal/validator"
)

const testUserID = "user-1"

// Fixed ids of the seeded transactions.
const (
	idFood   = "0190a000-0000-7000-8000-000000000001"
	idSalary = "0190a000-0000-7000-8000-000000000002"
	idBus    = "0190a000-0000-7000-8000-000000000003"
)

// fixedNow sits inside the June 23 - July 23 billing cycle.
var fixedNow = time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// --- mock remote ---

type mockRemote struct {
	mu         sync.Mutex
	rows       []ledger.Transaction
	categories []string

	listExpensesFn   func(ctx context.Context, userID string) ([]ledger.Transaction, error)
	insertExpenseFn  func(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error)
	updateExpenseFn  func(ctx context.Context, userID, id string, d ledger.Draft) (*ledger.Transaction, error)
	deleteExpenseFn  func(ctx context.Context, userID, id string) error
	insertCategoryFn func(ctx context.Context, userID, name string) error
}

func newMockRemote() *mockRemote {
	return &mockRemote{
		rows: []ledger.Transaction{
			{ID: idFood, UserID: testUserID, Amount: decimal.NewFromInt(50), Currency: "USD", Category: "Food", Type: ledger.Debit, Date: ledger.NewDate(2024, 6, 25)},
			{ID: idSalary, UserID: testUserID, Amount: decimal.NewFromInt(100), Currency: "USD", Category: "Salary", Type: ledger.Credit, Date: ledger.NewDate(2024, 6, 24)},
			{ID: idBus, UserID: testUserID, Amount: decimal.NewFromInt(10), Currency: "USD", Category: "Transport", Type: ledger.Debit, Date: ledger.NewDate(2024, 5, 10)},
		},
		categories: []string{"Travel"},
	}
}

func (m *mockRemote) ListExpenses(ctx context.Context, userID string) ([]ledger.Transaction, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ledger.Transaction, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockRemote) InsertExpense(ctx context.Context, userID string, d ledger.Draft) (*ledger.Transaction, error) {
	if m.insertExpenseFn != nil {
		return m.insertExpenseFn(ctx, userID, d)
	}
	tx := d.Transaction(uuid.New(), userID)
	m.mu.Lock()
	m.rows = append([]ledger.Transaction{tx}, m.rows...)
	m.mu.Unlock()
	return &tx, nil
}

func (m *mockRemote) UpdateExpense(ctx context.Context, userID, id string, d ledger.Draft) (*ledger.Transaction, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(ctx, userID, id, d)
	}
	tx := d.Transaction(id, userID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i] = tx
			return &tx, nil
		}
	}
	return nil, apperrors.ErrTransactionNotFound
}

func (m *mockRemote) DeleteExpense(ctx context.Context, userID, id string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrTransactionNotFound
}

func (m *mockRemote) ListCategories(context.Context, string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.categories...), nil
}

func (m *mockRemote) InsertCategory(ctx context.Context, userID, name string) error {
	if m.insertCategoryFn != nil {
		return m.insertCategoryFn(ctx, userID, name)
	}
	m.mu.Lock()
	m.categories = append(m.categories, name)
	m.mu.Unlock()
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func newTestManager(remote *mockRemote) *session.Manager {
	return session.NewManager(remote, session.WithLogger(zap.NewNop().Sugar()))
}

func newTestConverter() *currency.Converter {
	return currency.NewConverter(currency.Table, zap.NewNop().Sugar())
}

// setupRouter wires every session-scoped handler behind an injected user id.
func setupRouter(sessions SessionProvider) *gin.Engine {
	conv := newTestConverter()
	sessionHandler := NewSessionHandler(sessions)
	transactionHandler := NewTransactionHandler(sessions, conv, fixedClock)
	categoryHandler := NewCategoryHandler(sessions)
	reportHandler := NewReportHandler(sessions, conv, fixedClock)
	currencyHandler := NewCurrencyHandler(conv)
	notificationHandler := NewNotificationHandler(sessions)
	webhookHandler := NewWebhookHandler(sessions)

	r := gin.New()
	r.POST("/webhooks/auth", webhookHandler.AuthEvent)
	r.GET("/anonymous/transactions", transactionHandler.ListTransactions)

	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/session", sessionHandler.OpenSession)
	auth.DELETE("/session", sessionHandler.CloseSession)
	auth.PUT("/session/currency", sessionHandler.UpdateDisplayCurrency)
	auth.GET("/transactions", transactionHandler.ListTransactions)
	auth.POST("/transactions", transactionHandler.CreateTransaction)
	auth.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	auth.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	auth.GET("/categories", categoryHandler.GetCategories)
	auth.POST("/categories", categoryHandler.CreateCategory)
	auth.GET("/reports/breakdown", reportHandler.GetBreakdown)
	auth.GET("/reports/trend", reportHandler.GetTrend)
	auth.GET("/reports/summary", reportHandler.GetSummary)
	auth.GET("/currencies", currencyHandler.ListCurrencies)
	auth.GET("/currencies/convert", currencyHandler.Convert)
	auth.GET("/notifications", notificationHandler.DrainNotifications)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// assertDecimal compares a JSON-encoded decimal (a quoted string) with want.
func assertDecimal(t *testing.T, got interface{}, want string) {
	t.Helper()
	s, ok := got.(string)
	if !ok {
		t.Fatalf("expected decimal string, got %T (%v)", got, got)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	if !d.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s, got %s", want, s)
	}
}
