package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := models.Transaction{
		Date:        date(2024, 1, 5),
		Amount:      -150.50,
		Category:    models.CatGroceries,
		Type:        models.TxExpense,
		Description: "Walmart purchase",
	}
	if err := store.InsertTransaction(ctx, tx, "statement.pdf"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := store.GetTransactions(ctx, TransactionFilter{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
	if !got[0].Date.Equal(tx.Date) {
		t.Errorf("date mismatch: %v != %v", got[0].Date, tx.Date)
	}
	if got[0].Amount != tx.Amount || got[0].Category != tx.Category || got[0].Type != tx.Type || got[0].Description != tx.Description {
		t.Errorf("round trip mismatch: %+v != %+v", got[0], tx)
	}
}

func TestTransactionFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []models.Transaction{
		{Date: date(2024, 1, 5), Amount: -150, Category: models.CatGroceries, Type: models.TxExpense},
		{Date: date(2024, 1, 15), Amount: 3000, Category: models.CatSalary, Type: models.TxIncome},
		{Date: date(2024, 2, 3), Amount: -42, Category: models.CatDining, Type: models.TxExpense},
		{Date: date(2024, 2, 20), Amount: -60, Category: models.CatGroceries, Type: models.TxExpense},
	}
	for _, tx := range seed {
		if err := store.InsertTransaction(ctx, tx, ""); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	t.Run("by category", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, TransactionFilter{Category: "groceries"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 groceries transactions, got %d", len(got))
		}
	})

	t.Run("by type", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, TransactionFilter{Type: "income"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 income transaction, got %d", len(got))
		}
	})

	t.Run("by date range", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, TransactionFilter{
			StartDate: date(2024, 2, 1),
			EndDate:   date(2024, 2, 28),
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 February transactions, got %d", len(got))
		}
	})

	t.Run("limit and order", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, TransactionFilter{Limit: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(got))
		}
		if got[0].Date.Before(got[1].Date) {
			t.Error("expected newest first ordering")
		}
	})
}

func TestGetCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, c := range []models.Category{models.CatDining, models.CatGroceries, models.CatDining} {
		tx := models.Transaction{Date: date(2024, 1, 1), Amount: -1, Category: c, Type: models.TxExpense}
		if err := store.InsertTransaction(ctx, tx, ""); err != nil {
			t.Fatal(err)
		}
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", categories)
	}
	if categories[0] != "dining" || categories[1] != "groceries" {
		t.Errorf("expected sorted distinct categories, got %v", categories)
	}
}

func TestLotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	lot := models.Lot{
		Symbol:        "NVDA",
		CompanyName:   "NVIDIA Corporation",
		Shares:        10.5,
		PurchasePrice: 450.25,
		PurchaseDate:  date(2024, 3, 1),
	}
	if err := store.InsertLot(ctx, lot); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	lots, err := store.GetLots(ctx)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	got := lots[0]
	if got.Symbol != lot.Symbol || got.CompanyName != lot.CompanyName ||
		got.Shares != lot.Shares || got.PurchasePrice != lot.PurchasePrice ||
		!got.PurchaseDate.Equal(lot.PurchaseDate) {
		t.Errorf("round trip mismatch: %+v != %+v", got, lot)
	}
}

func TestUpsertGoalPreservesProgress(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertGoal(ctx, "emergency_fund", 10000); err != nil {
		t.Fatal(err)
	}
	// Raising the target must not reset accumulated progress.
	if err := store.UpsertGoal(ctx, "emergency_fund", 15000); err != nil {
		t.Fatal(err)
	}

	goals, err := store.GetGoals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal after upsert, got %d", len(goals))
	}
	if goals[0].TargetAmount != 15000 {
		t.Errorf("expected updated target 15000, got %v", goals[0].TargetAmount)
	}
	if goals[0].CurrentAmount != 0 {
		t.Errorf("expected current amount 0, got %v", goals[0].CurrentAmount)
	}
}

func TestMonthlySummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []models.Transaction{
		{Date: date(2024, 1, 15), Amount: 3000, Category: models.CatSalary, Type: models.TxIncome},
		{Date: date(2024, 1, 5), Amount: -150.50, Category: models.CatGroceries, Type: models.TxExpense},
		{Date: date(2024, 1, 20), Amount: -49.50, Category: models.CatDining, Type: models.TxExpense},
		// Different month, must not contribute.
		{Date: date(2024, 2, 1), Amount: -999, Category: models.CatRent, Type: models.TxExpense},
	}
	for _, tx := range seed {
		if err := store.InsertTransaction(ctx, tx, ""); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := store.MonthlySummary(ctx, 2024, 1)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Income != 3000 {
		t.Errorf("expected income 3000, got %v", summary.Income)
	}
	if summary.Expenses != 200 {
		t.Errorf("expected expenses 200, got %v", summary.Expenses)
	}
	if summary.Savings != 2800 {
		t.Errorf("expected savings 2800, got %v", summary.Savings)
	}
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	store := newTestStore(t)

	summary, err := store.MonthlySummary(context.Background(), 2024, 6)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Income != 0 || summary.Expenses != 0 || summary.Savings != 0 {
		t.Errorf("empty month must be all-zero, got %+v", summary)
	}
}
