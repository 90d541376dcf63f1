package portfolio

import (
	"context"
	"math"
	"time"
)

// sentimentBasket is the fixed reference symbol set for sentiment scoring.
var sentimentBasket = []string{"NVDA", "GOOGL", "MSFT", "AMZN"}

// SentimentReport is the market sentiment signal for the reference basket.
type SentimentReport struct {
	Sentiment        string    `json:"sentiment"`
	AvgChangePercent float64   `json:"avg_change"`
	PositiveRatio    float64   `json:"positive_ratio"`
	Resolved         int       `json:"resolved"`
	BasketSize       int       `json:"basket_size"`
	FetchedAt        time.Time `json:"last_updated"`
}

// Sentiment scores overall market direction from the reference basket.
// Quotes are fetched independently; unresolved symbols are excluded from
// the average, and the average divides by the count of resolved quotes so
// partial resolution does not silently drag it toward zero. The positive
// ratio stays relative to the full basket size.
func (e *Engine) Sentiment(ctx context.Context) SentimentReport {
	report := SentimentReport{
		BasketSize: len(sentimentBasket),
		FetchedAt:  time.Now(),
	}

	totalChange := 0.0
	positive := 0
	for _, symbol := range sentimentBasket {
		quote, err := e.quotes.GetQuote(ctx, symbol)
		if err != nil || quote == nil {
			continue
		}
		report.Resolved++
		totalChange += quote.ChangePercent
		if quote.ChangePercent > 0 {
			positive++
		}
	}

	if report.Resolved > 0 {
		report.AvgChangePercent = math.Round(totalChange/float64(report.Resolved)*100) / 100
	}
	report.PositiveRatio = math.Round(float64(positive)/float64(len(sentimentBasket))*1000) / 10
	report.Sentiment = bandSentiment(report.AvgChangePercent)
	return report
}

// bandSentiment maps an average daily change percent to a label.
func bandSentiment(avgChange float64) string {
	switch {
	case avgChange > 2:
		return "Very Bullish"
	case avgChange > 0.5:
		return "Bullish"
	case avgChange > -0.5:
		return "Neutral"
	case avgChange > -2:
		return "Bearish"
	default:
		return "Very Bearish"
	}
}
