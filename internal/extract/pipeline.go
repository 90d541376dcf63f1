package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fintrack/internal/errors"
	"fintrack/internal/llm"
	"fintrack/internal/logging"
	"fintrack/internal/models"
)

const (
	// minUsableText is the minimum extracted-text length worth an LLM call.
	minUsableText = 50
	// maxPromptText bounds the text sent to the provider. Longer documents
	// are truncated rather than split; precision loss is accepted over
	// unbounded request cost.
	maxPromptText = 4000
	// previewLimit caps the extracted-text preview returned to callers.
	previewLimit = 500
)

const systemPrompt = "You are a precise financial data extraction tool. Return only valid JSON."

// Result is the outcome of a successful pipeline run.
type Result struct {
	Transactions []models.Transaction `json:"transactions"`
	TextPreview  string               `json:"extracted_text_preview"`
	Count        int                  `json:"transaction_count"`
	Dropped      int                  `json:"dropped_count"`
}

// Pipeline orchestrates text extraction, LLM completion and response
// validation. Each run is a pure function of its inputs; nothing is
// cached or mutated between calls.
type Pipeline struct {
	registry *llm.Registry
	logger   zerolog.Logger
}

// NewPipeline creates a new extraction pipeline over the configured
// provider registry.
func NewPipeline(registry *llm.Registry, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		logger:   logger,
	}
}

// ProcessDocument runs the full PDF-to-transactions pipeline using the
// named provider. Every failure is terminal for this request; the caller
// decides whether to retry.
func (p *Pipeline) ProcessDocument(ctx context.Context, data []byte, provider string) (*Result, error) {
	text, err := ExtractText(data)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(ctx, text, provider)
}

// ProcessText runs the pipeline on already-extracted statement text.
func (p *Pipeline) ProcessText(ctx context.Context, text string, provider string) (*Result, error) {
	if len(strings.TrimSpace(text)) < minUsableText {
		// Never spend an LLM call on unusable input.
		return nil, errors.NewExtractionError(errors.EmptyOrUnreadable,
			"document appears to be empty or text extraction failed", nil)
	}

	completer, ok := p.registry.Get(provider)
	if !ok {
		return nil, errors.NewExtractionError(errors.NoProviderConfigured,
			fmt.Sprintf("no API key configured for provider %q", provider), nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewExtractionError(errors.ProviderFailure, "cancelled before dispatch", err)
	}

	logger := logging.WithProvider(p.logger, provider)

	start := time.Now()
	response, err := completer.Complete(ctx, systemPrompt, buildPrompt(text))
	if err != nil {
		return nil, errors.NewExtractionError(errors.ProviderFailure,
			fmt.Sprintf("%s completion failed", provider), err)
	}
	logger.Debug().
		Dur("duration", time.Since(start)).
		Int("response_len", len(response)).
		Msg("LLM completion received")

	transactions, dropped, err := parseResponse(response)
	if err != nil {
		return nil, err
	}

	return &Result{
		Transactions: transactions,
		TextPreview:  preview(text),
		Count:        len(transactions),
		Dropped:      dropped,
	}, nil
}

// buildPrompt constructs the deterministic extraction instruction.
func buildPrompt(text string) string {
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	var sb strings.Builder
	sb.WriteString("You are a financial data extraction expert. Extract transaction data from this bank statement or financial document text.\n\n")
	sb.WriteString("Return ONLY a valid JSON array with this exact structure:\n")
	sb.WriteString(`[
  {"date": "YYYY-MM-DD", "amount": -150.50, "category": "groceries", "type": "expense", "description": "Walmart purchase"},
  {"date": "YYYY-MM-DD", "amount": 3000.00, "category": "salary", "type": "income", "description": "Monthly salary"}
]`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("- Use negative amounts for expenses, positive for income\n")
	sb.WriteString("- Categories: ")
	for i, c := range models.Categories {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(c))
	}
	sb.WriteString("\n- Types: expense, income, transfer\n")
	sb.WriteString("- Format dates as YYYY-MM-DD\n")
	sb.WriteString("- Keep descriptions concise\n")
	sb.WriteString("- Only extract clear financial transactions\n")
	sb.WriteString("- If no transactions found, return []\n\n")
	sb.WriteString("Text to process:\n")
	sb.WriteString(text)
	return sb.String()
}

// parseResponse strips code fences, parses the completion as a JSON array
// and validates each element independently. Invalid elements are dropped,
// not fatal; a partial batch beats an all-or-nothing failure.
func parseResponse(response string) ([]models.Transaction, int, error) {
	cleaned := stripFences(response)

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, 0, errors.NewExtractionError(errors.MalformedResponse,
			"response is not a valid JSON transaction array", err)
	}

	transactions := make([]models.Transaction, 0, len(raw))
	dropped := 0
	for _, element := range raw {
		tx, ok := validateRecord(element)
		if !ok {
			dropped++
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, dropped, nil
}

// stripFences removes surrounding triple-backtick markup, with or without
// a json language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// validateRecord checks one loosely-typed model record and converts it to
// the canonical Transaction. The loose shape never escapes this package.
func validateRecord(element map[string]json.RawMessage) (models.Transaction, bool) {
	for _, key := range []string{"date", "amount", "category", "type"} {
		if _, ok := element[key]; !ok {
			return models.Transaction{}, false
		}
	}

	var dateStr string
	if err := json.Unmarshal(element["date"], &dateStr); err != nil {
		return models.Transaction{}, false
	}
	date, err := time.Parse(models.DateFormat, dateStr)
	if err != nil {
		return models.Transaction{}, false
	}

	amount, ok := coerceAmount(element["amount"])
	if !ok {
		return models.Transaction{}, false
	}

	var category, txType, description string
	json.Unmarshal(element["category"], &category)
	json.Unmarshal(element["type"], &txType)
	if raw, ok := element["description"]; ok {
		json.Unmarshal(raw, &description)
	}

	return models.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    models.ParseCategory(category),
		Type:        models.ParseTxType(txType),
		Description: description,
	}, true
}

// coerceAmount accepts a JSON number or a numeric string.
func coerceAmount(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// preview truncates text for display, marking the cut with an ellipsis.
func preview(text string) string {
	if len(text) <= previewLimit {
		return text
	}
	return text[:previewLimit] + "..."
}
