package portfolio

import (
	"math"
	"sort"

	"fintrack/internal/models"
)

// topPerformerCount is how many best and worst performers are reported.
const topPerformerCount = 3

// sectorMap is the fixed symbol-to-sector lookup. Unmapped symbols fall
// into the Other bucket.
var sectorMap = map[string]string{
	"NVDA":  "Semiconductors",
	"AMD":   "Semiconductors",
	"INTC":  "Semiconductors",
	"GOOGL": "Software",
	"MSFT":  "Software",
	"META":  "Software",
	"CRM":   "Software",
	"AMZN":  "Cloud/E-commerce",
	"ORCL":  "Database",
	"IBM":   "Enterprise",
	"TSLA":  "Automotive/Energy",
	"PLTR":  "Analytics",
	"NET":   "Infrastructure",
	"SNOW":  "Data",
	"AAPL":  "Consumer Tech",
}

// SectorOf returns the sector for a symbol, or "Other" when unmapped.
func SectorOf(symbol string) string {
	if sector, ok := sectorMap[symbol]; ok {
		return sector
	}
	return "Other"
}

// PortfolioMetrics summarizes diversification and relative performance.
type PortfolioMetrics struct {
	SectorAllocation map[string]float64 `json:"sector_allocation"`
	TopPerformers    []models.Holding   `json:"top_performers"`
	WorstPerformers  []models.Holding   `json:"worst_performers"`
	TotalPositions   int                `json:"total_positions"`
}

// Metrics computes sector allocation and ranked performer lists over the
// given holdings. Allocation percentages are rounded to one decimal; a
// zero total value yields an empty allocation map.
func Metrics(holdings []models.Holding) PortfolioMetrics {
	metrics := PortfolioMetrics{
		SectorAllocation: make(map[string]float64),
		TotalPositions:   len(holdings),
	}
	if len(holdings) == 0 {
		return metrics
	}

	totalValue := 0.0
	sectors := make(map[string]float64)
	for _, h := range holdings {
		totalValue += h.CurrentValue
		sectors[SectorOf(h.Symbol)] += h.CurrentValue
	}

	if totalValue > 0 {
		for sector, value := range sectors {
			metrics.SectorAllocation[sector] = math.Round(value/totalValue*1000) / 10
		}
	}

	// Stable sorts keep input order on ties, so rankings are reproducible.
	best := make([]models.Holding, len(holdings))
	copy(best, holdings)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].GainLossPercent > best[j].GainLossPercent
	})

	worst := make([]models.Holding, len(holdings))
	copy(worst, holdings)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].GainLossPercent < worst[j].GainLossPercent
	})

	n := topPerformerCount
	if len(holdings) < n {
		n = len(holdings)
	}
	metrics.TopPerformers = best[:n]
	metrics.WorstPerformers = worst[:n]
	return metrics
}
