package portfolio

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fintrack/internal/market"
	"fintrack/internal/models"
)

func testLot(symbol string, shares, price float64) models.Lot {
	return models.Lot{
		Symbol:        symbol,
		CompanyName:   symbol,
		Shares:        shares,
		PurchasePrice: price,
		PurchaseDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func testQuote(symbol string, price, changePercent float64) models.Quote {
	return models.Quote{
		Symbol:        symbol,
		CompanyName:   symbol + " Inc.",
		Price:         price,
		ChangePercent: changePercent,
	}
}

func TestValueHoldingGainLoss(t *testing.T) {
	lot := testLot("NVDA", 10, 100)
	quote := testQuote("NVDA", 150, 1.2)

	h := ValueHolding(lot, &quote)
	if h.CostBasis != 1000 {
		t.Errorf("expected cost basis 1000, got %v", h.CostBasis)
	}
	if h.CurrentValue != 1500 {
		t.Errorf("expected current value 1500, got %v", h.CurrentValue)
	}
	if h.GainLoss != 500 {
		t.Errorf("expected gain 500, got %v", h.GainLoss)
	}
	if h.GainLossPercent != 50 {
		t.Errorf("expected gain percent 50, got %v", h.GainLossPercent)
	}
	if h.CompanyName != "NVDA Inc." {
		t.Errorf("expected quote name to win, got %q", h.CompanyName)
	}
}

func TestValueHoldingZeroCostBasis(t *testing.T) {
	lot := models.Lot{Symbol: "FREE", Shares: 0, PurchasePrice: 0}
	quote := testQuote("FREE", 10, 0)

	h := ValueHolding(lot, &quote)
	if h.GainLossPercent != 0 {
		t.Errorf("zero cost basis must report 0 percent, got %v", h.GainLossPercent)
	}
}

func TestValueExcludesUnresolvedLots(t *testing.T) {
	provider := market.NewStaticProvider(map[string]models.Quote{
		"NVDA": testQuote("NVDA", 150, 1.0),
	})
	engine := NewEngine(provider, zerolog.Nop(), 4)

	lots := []models.Lot{
		testLot("NVDA", 10, 100),
		testLot("GHOST", 5, 50),
	}

	value := engine.Value(context.Background(), lots)
	if len(value.Holdings) != 1 {
		t.Fatalf("expected 1 priced holding, got %d", len(value.Holdings))
	}
	if value.Holdings[0].Symbol != "NVDA" {
		t.Errorf("expected NVDA, got %s", value.Holdings[0].Symbol)
	}
	if value.TotalValue != 1500 {
		t.Errorf("expected total 1500, got %v", value.TotalValue)
	}
	if value.TotalCost != 1000 {
		t.Errorf("unresolved lot leaked into cost basis: %v", value.TotalCost)
	}
}

func TestValueEmptyPortfolio(t *testing.T) {
	engine := NewEngine(market.NewStaticProvider(nil), zerolog.Nop(), 4)

	value := engine.Value(context.Background(), nil)
	if value.TotalValue != 0 || value.TotalCost != 0 || value.TotalGainLoss != 0 || value.TotalGainLossPercent != 0 {
		t.Errorf("empty portfolio must be all-zero, got %+v", value)
	}
	if len(value.Holdings) != 0 {
		t.Errorf("expected no holdings, got %d", len(value.Holdings))
	}
}

func TestValueSortsByValueThenSymbol(t *testing.T) {
	provider := market.NewStaticProvider(map[string]models.Quote{
		"AAA": testQuote("AAA", 100, 0),
		"BBB": testQuote("BBB", 100, 0),
		"CCC": testQuote("CCC", 500, 0),
	})
	engine := NewEngine(provider, zerolog.Nop(), 4)

	lots := []models.Lot{
		testLot("BBB", 1, 90),
		testLot("CCC", 1, 450),
		testLot("AAA", 1, 90),
	}

	value := engine.Value(context.Background(), lots)
	got := []string{}
	for _, h := range value.Holdings {
		got = append(got, h.Symbol)
	}
	want := []string{"CCC", "AAA", "BBB"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

// errorProvider fails for every symbol.
type errorProvider struct{}

func (errorProvider) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return nil, fmt.Errorf("feed down")
}

func TestValueAllQuotesFailing(t *testing.T) {
	engine := NewEngine(errorProvider{}, zerolog.Nop(), 2)

	value := engine.Value(context.Background(), []models.Lot{
		testLot("NVDA", 10, 100),
		testLot("MSFT", 5, 300),
	})
	if len(value.Holdings) != 0 {
		t.Errorf("expected no holdings when all quotes fail, got %d", len(value.Holdings))
	}
	if value.TotalValue != 0 {
		t.Errorf("expected zero total, got %v", value.TotalValue)
	}
}

func TestValueConcurrencyBound(t *testing.T) {
	var mu sync.Mutex
	inUse, peak := 0, 0

	provider := market.ProviderFunc(func(ctx context.Context, symbol string) (*models.Quote, error) {
		mu.Lock()
		inUse++
		if inUse > peak {
			peak = inUse
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inUse--
		mu.Unlock()

		q := testQuote(symbol, 100, 0)
		return &q, nil
	})

	engine := NewEngine(provider, zerolog.Nop(), 2)
	lots := make([]models.Lot, 8)
	for i := range lots {
		lots[i] = testLot(fmt.Sprintf("S%02d", i), 1, 100)
	}

	value := engine.Value(context.Background(), lots)
	if len(value.Holdings) != 8 {
		t.Fatalf("expected 8 holdings, got %d", len(value.Holdings))
	}
	if peak > 2 {
		t.Errorf("concurrency bound exceeded: %d simultaneous fetches", peak)
	}
}
