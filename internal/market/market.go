// Package market provides live quote providers.
package market

import (
	"context"

	"fintrack/internal/models"
)

// QuoteProvider defines the interface for live quote sources.
//
// GetQuote returns (nil, nil) for unknown or delisted symbols; an error
// means the source itself failed. Callers make a single attempt and treat
// failure as an unresolved quote; there is no retry or backoff here.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

// ProviderFunc adapts a function to the QuoteProvider interface.
type ProviderFunc func(ctx context.Context, symbol string) (*models.Quote, error)

// GetQuote calls f.
func (f ProviderFunc) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return f(ctx, symbol)
}
