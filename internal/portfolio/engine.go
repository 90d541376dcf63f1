// Package portfolio computes holdings, aggregate valuation, allocation
// metrics and market sentiment from lots and live quotes.
package portfolio

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fintrack/internal/logging"
	"fintrack/internal/market"
	"fintrack/internal/models"
)

// Engine values lots against a quote provider. Each valuation is a pure
// function of the lots and the quotes returned during the call; nothing
// is cached across calls.
type Engine struct {
	quotes        market.QuoteProvider
	logger        zerolog.Logger
	maxConcurrent int
}

// NewEngine creates a valuation engine. maxConcurrent bounds parallel
// quote fetches; values below 1 mean sequential fetching.
func NewEngine(quotes market.QuoteProvider, logger zerolog.Logger, maxConcurrent int) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Engine{
		quotes:        quotes,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// ValueHolding enriches one lot with a live quote.
func ValueHolding(lot models.Lot, quote *models.Quote) models.Holding {
	costBasis := lot.Shares * lot.PurchasePrice
	currentValue := lot.Shares * quote.Price
	gainLoss := currentValue - costBasis

	gainLossPercent := 0.0
	if costBasis > 0 {
		gainLossPercent = gainLoss / costBasis * 100
	}

	name := quote.CompanyName
	if name == "" {
		name = lot.CompanyName
	}

	return models.Holding{
		Symbol:          lot.Symbol,
		CompanyName:     name,
		Shares:          lot.Shares,
		PurchasePrice:   lot.PurchasePrice,
		PurchaseDate:    lot.PurchaseDate,
		CurrentPrice:    quote.Price,
		CostBasis:       costBasis,
		CurrentValue:    currentValue,
		GainLoss:        gainLoss,
		GainLossPercent: gainLossPercent,
	}
}

// Value values all lots against live quotes. Quote fetches fan out per
// lot and join before aggregation; lots whose quote cannot be resolved
// are excluded from the holdings and from every aggregate sum. An empty
// lot list or all-unresolved portfolio yields the all-zero result, which
// is a valid state, not an error.
func (e *Engine) Value(ctx context.Context, lots []models.Lot) *models.PortfolioValue {
	quotes := e.fetchQuotes(ctx, lots)

	holdings := make([]models.Holding, 0, len(lots))
	for i, lot := range lots {
		if quotes[i] == nil {
			continue
		}
		holdings = append(holdings, ValueHolding(lot, quotes[i]))
	}

	// Largest position first; ties broken by symbol so the order does
	// not depend on quote completion order.
	sort.SliceStable(holdings, func(i, j int) bool {
		if holdings[i].CurrentValue != holdings[j].CurrentValue {
			return holdings[i].CurrentValue > holdings[j].CurrentValue
		}
		return holdings[i].Symbol < holdings[j].Symbol
	})

	value := &models.PortfolioValue{Holdings: holdings}
	for _, h := range holdings {
		value.TotalValue += h.CurrentValue
		value.TotalCost += h.CostBasis
	}
	value.TotalGainLoss = value.TotalValue - value.TotalCost
	if value.TotalCost > 0 {
		value.TotalGainLossPercent = value.TotalGainLoss / value.TotalCost * 100
	}
	return value
}

// fetchQuotes fetches one quote per lot, bounded by maxConcurrent.
// Failures and unknown symbols both yield a nil entry.
func (e *Engine) fetchQuotes(ctx context.Context, lots []models.Lot) []*models.Quote {
	quotes := make([]*models.Quote, len(lots))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.maxConcurrent)
	for i, lot := range lots {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			quote, err := e.quotes.GetQuote(ctx, symbol)
			logging.LogQuoteFetch(e.logger, symbol, time.Since(start), quote != nil, err)
			if err != nil {
				return // single attempt, failure-as-null
			}
			quotes[i] = quote
		}(i, lot.Symbol)
	}
	wg.Wait()

	return quotes
}
