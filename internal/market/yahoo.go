package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/internal/models"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches quotes from the Yahoo Finance chart endpoint.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

// NewYahooClient creates a new Yahoo quote client. timeout bounds each
// fetch; zero means no client-side timeout.
func NewYahooClient(timeout time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: defaultYahooBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewYahooClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at a local server.
func NewYahooClientWithBaseURL(baseURL string, timeout time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// chartResponse mirrors the subset of the chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol              string  `json:"symbol"`
				LongName            string  `json:"longName"`
				ShortName           string  `json:"shortName"`
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				PreviousClose       float64 `json:"previousClose"`
				ChartPreviousClose  float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches the current quote for symbol. Unknown symbols return
// (nil, nil).
func (y *YahooClient) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", y.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "fintrack/0.1")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // unknown or delisted symbol
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request for %s: %s", symbol, resp.Status)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding quote for %s: %w", symbol, err)
	}
	if payload.Chart.Error != nil || len(payload.Chart.Result) == 0 {
		return nil, nil
	}

	meta := payload.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	prevClose := meta.PreviousClose
	if prevClose == 0 {
		prevClose = meta.ChartPreviousClose
	}
	if prevClose == 0 {
		prevClose = price
	}

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	change := price - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = change / prevClose * 100
	}

	return &models.Quote{
		Symbol:        symbol,
		CompanyName:   name,
		Price:         price,
		PreviousClose: prevClose,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        meta.RegularMarketVolume,
		FetchedAt:     time.Now(),
	}, nil
}
