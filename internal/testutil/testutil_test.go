package testutil_test

import (
	"testing"

	"expensetracker/internal/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"expenses", "categories", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestCategory(t, first, "user-1", "Travel")

	var count int64
	second.Table("categories").Count(&count)
	if count != 0 {
		t.Errorf("expected an empty second database, got %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := testutil.NewUserID()

	expense := testutil.CreateTestExpense(t, db, userID, "12.50", "2024-06-01")
	if expense.ID == "" {
		t.Fatal("expense should have an ID")
	}
	tx := expense.Transaction()
	if tx.Type != ledger.Debit || tx.Amount.String() != "12.5" {
		t.Errorf("unexpected expense %+v", tx)
	}

	legacy := testutil.CreateLegacyExpense(t, db, userID, "2024-06-02")
	if legacy.Amount.Valid || legacy.Type != nil {
		t.Errorf("legacy expense should have no amount or type, got %+v", legacy)
	}

	category := testutil.CreateTestCategory(t, db, userID, "Travel")
	if category.Name != "Travel" {
		t.Errorf("expected Travel, got %s", category.Name)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrTransactionNotFound, "custom message")
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
