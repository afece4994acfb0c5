package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensetracker/internal/ledger"
	"expensetracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a unique user id.
func NewUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// NewTestToken signs an HS256 access token for userID the way the auth
// backend does, valid for one hour.
func NewTestToken(t *testing.T, secret, userID string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

// CreateTestExpense stores a debit of amount USD in Food on date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, amount, date string) *models.Expense {
	t.Helper()

	d, err := ledger.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", date, err)
	}
	row := &models.Expense{UserID: userID}
	row.Apply(ledger.Draft{
		Amount:   decimal.RequireFromString(amount),
		Currency: "USD",
		Category: "Food",
		Type:     ledger.Debit,
		Date:     d,
	})
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return row
}

// CreateLegacyExpense stores a row without amount or type, as written before
// those columns were enforced.
func CreateLegacyExpense(t *testing.T, db *gorm.DB, userID, date string) *models.Expense {
	t.Helper()

	d, err := ledger.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid fixture date %q: %v", date, err)
	}
	row := &models.Expense{UserID: userID, Currency: "USD", Category: "Other", Date: d}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create legacy expense: %v", err)
	}
	return row
}

// CreateTestCategory stores a custom category for userID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	category := &models.Category{UserID: userID, Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}
