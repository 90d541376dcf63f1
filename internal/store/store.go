// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"fintrack/internal/models"
)

// Store defines the interface for finance data persistence. The core
// packages depend on these signatures only, not on any particular
// persistence technology.
type Store interface {
	// Transactions
	InsertTransaction(ctx context.Context, tx models.Transaction, sourceLabel string) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	GetCategories(ctx context.Context) ([]string, error)

	// Portfolio lots
	InsertLot(ctx context.Context, lot models.Lot) error
	GetLots(ctx context.Context) ([]models.Lot, error)

	// Goals
	UpsertGoal(ctx context.Context, goalType string, targetAmount float64) error
	GetGoals(ctx context.Context) ([]models.Goal, error)

	// Summaries
	MonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error)

	// Lifecycle
	Close() error
}

// TransactionFilter represents filters for querying transactions.
type TransactionFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Category  string
	Type      string
	Limit     int
}
