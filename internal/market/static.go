package market

import (
	"context"
	"sync"
	"time"

	"fintrack/internal/models"
)

// StaticProvider serves quotes from a fixed in-memory table. It backs
// offline use and tests; unknown symbols resolve to nil like any other
// provider.
type StaticProvider struct {
	mu     sync.RWMutex
	quotes map[string]models.Quote
}

// NewStaticProvider creates a provider over the given quotes.
func NewStaticProvider(quotes map[string]models.Quote) *StaticProvider {
	copied := make(map[string]models.Quote, len(quotes))
	for symbol, q := range quotes {
		copied[symbol] = q
	}
	return &StaticProvider{quotes: copied}
}

// Set adds or replaces a quote.
func (s *StaticProvider) Set(q models.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.Symbol] = q
}

// GetQuote returns the stored quote for symbol, or (nil, nil) when absent.
func (s *StaticProvider) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[symbol]
	if !ok {
		return nil, nil
	}
	q.FetchedAt = time.Now()
	return &q, nil
}
