// Package models provides domain models for the finance tracker.
package models

import (
	"strings"
	"time"

	"fintrack/internal/errors"
)

// DateFormat is the canonical date layout for transactions and lots.
const DateFormat = "2006-01-02"

// TxType represents the kind of a financial transaction.
type TxType string

const (
	TxExpense  TxType = "expense"
	TxIncome   TxType = "income"
	TxTransfer TxType = "transfer"
)

// ParseTxType maps a raw type string to a TxType.
// Unknown or empty values default to expense.
func ParseTxType(s string) TxType {
	switch TxType(strings.ToLower(strings.TrimSpace(s))) {
	case TxIncome:
		return TxIncome
	case TxTransfer:
		return TxTransfer
	default:
		return TxExpense
	}
}

// Category represents a transaction category.
type Category string

const (
	CatGroceries     Category = "groceries"
	CatDining        Category = "dining"
	CatGas           Category = "gas"
	CatUtilities     Category = "utilities"
	CatRent          Category = "rent"
	CatSalary        Category = "salary"
	CatFreelance     Category = "freelance"
	CatInvestment    Category = "investment"
	CatEntertainment Category = "entertainment"
	CatHealthcare    Category = "healthcare"
	CatShopping      Category = "shopping"
	CatOther         Category = "other"
)

// Categories lists every recognized category.
var Categories = []Category{
	CatGroceries, CatDining, CatGas, CatUtilities, CatRent,
	CatSalary, CatFreelance, CatInvestment, CatEntertainment,
	CatHealthcare, CatShopping, CatOther,
}

// ParseCategory maps a raw category string to a Category.
// Unrecognized or empty values map to other.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return known
		}
	}
	return CatOther
}

// Transaction represents one financial event. Records are immutable once
// created; corrections are new records, not updates.
type Transaction struct {
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	Type        TxType    `json:"type"`
	Description string    `json:"description"`
}

// Lot represents one stock purchase. Lots are immutable after entry.
type Lot struct {
	Symbol        string    `json:"symbol"`
	CompanyName   string    `json:"company_name"`
	Shares        float64   `json:"shares"`
	PurchasePrice float64   `json:"purchase_price"`
	PurchaseDate  time.Time `json:"purchase_date"`
}

// Validate checks the lot invariants for new entries.
func (l *Lot) Validate() error {
	if strings.TrimSpace(l.Symbol) == "" {
		return errors.NewValidationError("symbol", l.Symbol, "symbol is required")
	}
	if l.Symbol != strings.ToUpper(l.Symbol) {
		return errors.NewValidationError("symbol", l.Symbol, "symbol must be uppercase")
	}
	if l.Shares <= 0 {
		return errors.NewValidationError("shares", l.Shares, "must be positive")
	}
	if l.PurchasePrice <= 0 {
		return errors.NewValidationError("purchase_price", l.PurchasePrice, "must be positive")
	}
	return nil
}

// CostBasis returns the total acquisition cost of the lot.
func (l *Lot) CostBasis() float64 {
	return l.Shares * l.PurchasePrice
}

// Quote represents a live price snapshot for a ticker.
type Quote struct {
	Symbol        string    `json:"symbol"`
	CompanyName   string    `json:"company_name"`
	Price         float64   `json:"current_price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	MarketCap     int64     `json:"market_cap"`
	Volume        int64     `json:"volume"`
	FetchedAt     time.Time `json:"last_updated"`
}

// Holding is a lot enriched with a live quote. Derived on every valuation,
// never persisted or cached.
type Holding struct {
	Symbol          string    `json:"symbol"`
	CompanyName     string    `json:"company_name"`
	Shares          float64   `json:"shares"`
	PurchasePrice   float64   `json:"purchase_price"`
	PurchaseDate    time.Time `json:"purchase_date"`
	CurrentPrice    float64   `json:"current_price"`
	CostBasis       float64   `json:"cost_basis"`
	CurrentValue    float64   `json:"current_value"`
	GainLoss        float64   `json:"gain_loss"`
	GainLossPercent float64   `json:"gain_loss_percent"`
}

// PortfolioValue aggregates all resolved holdings.
type PortfolioValue struct {
	TotalValue           float64   `json:"total_value"`
	TotalCost            float64   `json:"total_cost"`
	TotalGainLoss        float64   `json:"total_gain_loss"`
	TotalGainLossPercent float64   `json:"total_gain_loss_percent"`
	Holdings             []Holding `json:"holdings"`
}

// Goal represents a savings or spending goal.
type Goal struct {
	Type          string    `json:"goal_type"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// MonthlySummary aggregates transactions for one calendar month.
type MonthlySummary struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
	NetWorth float64 `json:"net_worth"`
}
