package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fintrack/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date DATE NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT,
		source_file TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS stock_portfolio (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		company_name TEXT,
		shares REAL NOT NULL,
		purchase_price REAL NOT NULL,
		purchase_date DATE NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS goals (
		goal_type TEXT PRIMARY KEY,
		target_amount REAL,
		current_amount REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS monthly_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		income REAL DEFAULT 0,
		expenses REAL DEFAULT 0,
		savings REAL DEFAULT 0,
		net_worth REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(month, year)
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
	CREATE INDEX IF NOT EXISTS idx_portfolio_symbol ON stock_portfolio(symbol);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertTransaction saves a transaction. sourceLabel records where the
// record came from (file name for imports, empty for manual entry).
func (s *SQLiteStore) InsertTransaction(ctx context.Context, tx models.Transaction, sourceLabel string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (date, amount, category, type, description, source_file)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tx.Date.Format(models.DateFormat), tx.Amount, string(tx.Category), string(tx.Type), tx.Description, sourceLabel)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransactions retrieves transactions matching the filter, newest first.
func (s *SQLiteStore) GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := "SELECT date, amount, category, type, COALESCE(description, '') FROM transactions WHERE 1=1"
	args := []interface{}{}

	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate.Format(models.DateFormat))
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate.Format(models.DateFormat))
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}

	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var dateStr, category, txType string
		if err := rows.Scan(&dateStr, &tx.Amount, &category, &txType, &tx.Description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Date, err = time.Parse(models.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction date %q: %w", dateStr, err)
		}
		tx.Category = models.Category(category)
		tx.Type = models.TxType(txType)
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// GetCategories returns the distinct categories present in storage.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM transactions ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// InsertLot saves a stock purchase.
func (s *SQLiteStore) InsertLot(ctx context.Context, lot models.Lot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_portfolio (symbol, company_name, shares, purchase_price, purchase_date)
		VALUES (?, ?, ?, ?, ?)
	`, lot.Symbol, lot.CompanyName, lot.Shares, lot.PurchasePrice, lot.PurchaseDate.Format(models.DateFormat))
	if err != nil {
		return fmt.Errorf("failed to insert lot: %w", err)
	}
	return nil
}

// GetLots retrieves all stock purchases, newest first.
func (s *SQLiteStore) GetLots(ctx context.Context) ([]models.Lot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, COALESCE(company_name, ''), shares, purchase_price, purchase_date
		FROM stock_portfolio ORDER BY purchase_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lots: %w", err)
	}
	defer rows.Close()

	var lots []models.Lot
	for rows.Next() {
		var lot models.Lot
		var dateStr string
		if err := rows.Scan(&lot.Symbol, &lot.CompanyName, &lot.Shares, &lot.PurchasePrice, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		lot.PurchaseDate, err = time.Parse(models.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse purchase date %q: %w", dateStr, err)
		}
		lots = append(lots, lot)
	}

	return lots, rows.Err()
}

// UpsertGoal inserts or replaces a goal by type.
func (s *SQLiteStore) UpsertGoal(ctx context.Context, goalType string, targetAmount float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO goals (goal_type, target_amount, current_amount)
		VALUES (?, ?, COALESCE((SELECT current_amount FROM goals WHERE goal_type = ?), 0))
	`, goalType, targetAmount, goalType)
	if err != nil {
		return fmt.Errorf("failed to upsert goal: %w", err)
	}
	return nil
}

// GetGoals retrieves all goals, newest first.
func (s *SQLiteStore) GetGoals(ctx context.Context) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT goal_type, COALESCE(target_amount, 0), COALESCE(current_amount, 0), created_at
		FROM goals ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.Type, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// MonthlySummary computes income, expenses and savings for one calendar
// month from the stored transactions, caching the result in the
// monthly_summaries table.
func (s *SQLiteStore) MonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	summary := &models.MonthlySummary{Year: year, Month: month}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, SUM(amount)
		FROM transactions
		WHERE strftime('%Y', date) = ? AND strftime('%m', date) = ?
		GROUP BY type
	`, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var txType string
		var total sql.NullFloat64
		if err := rows.Scan(&txType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		switch models.TxType(txType) {
		case models.TxIncome:
			summary.Income = total.Float64
		case models.TxExpense:
			// Expenses are stored negative by convention.
			summary.Expenses = math.Abs(total.Float64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.Savings = summary.Income - summary.Expenses
	summary.NetWorth = summary.Savings

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO monthly_summaries (month, year, income, expenses, savings, net_worth)
		VALUES (?, ?, ?, ?, ?, ?)
	`, month, year, summary.Income, summary.Expenses, summary.Savings, summary.NetWorth)
	if err != nil {
		return nil, fmt.Errorf("failed to cache monthly summary: %w", err)
	}

	return summary, nil
}
