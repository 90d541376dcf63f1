package portfolio

import (
	"math"
	"testing"

	"fintrack/internal/models"
)

func holding(symbol string, currentValue, gainLossPercent float64) models.Holding {
	return models.Holding{
		Symbol:          symbol,
		CurrentValue:    currentValue,
		GainLossPercent: gainLossPercent,
	}
}

func TestSectorOf(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"NVDA", "Semiconductors"},
		{"GOOGL", "Software"},
		{"AMZN", "Cloud/E-commerce"},
		{"AAPL", "Consumer Tech"},
		{"ZZZZ", "Other"},
	}
	for _, tt := range tests {
		if got := SectorOf(tt.symbol); got != tt.want {
			t.Errorf("SectorOf(%s) = %s, want %s", tt.symbol, got, tt.want)
		}
	}
}

func TestMetricsEmptyHoldings(t *testing.T) {
	m := Metrics(nil)
	if m.TotalPositions != 0 {
		t.Errorf("expected 0 positions, got %d", m.TotalPositions)
	}
	if len(m.SectorAllocation) != 0 {
		t.Errorf("expected empty allocation, got %v", m.SectorAllocation)
	}
	if len(m.TopPerformers) != 0 || len(m.WorstPerformers) != 0 {
		t.Error("expected empty performer lists")
	}
}

func TestMetricsZeroTotalValue(t *testing.T) {
	m := Metrics([]models.Holding{holding("NVDA", 0, 0)})
	if len(m.SectorAllocation) != 0 {
		t.Errorf("zero total value must yield empty allocation, got %v", m.SectorAllocation)
	}
	if m.TotalPositions != 1 {
		t.Errorf("expected 1 position, got %d", m.TotalPositions)
	}
}

func TestMetricsSectorAllocationSumsToRoughly100(t *testing.T) {
	holdings := []models.Holding{
		holding("NVDA", 3333, 10),
		holding("GOOGL", 3333, 5),
		holding("AMZN", 3334, -2),
	}
	m := Metrics(holdings)

	sum := 0.0
	for _, pct := range m.SectorAllocation {
		sum += pct
	}
	if math.Abs(sum-100) > 0.5 {
		t.Errorf("allocation sums to %v, expected ~100", sum)
	}
}

func TestMetricsAllocationGroupsBySector(t *testing.T) {
	holdings := []models.Holding{
		holding("NVDA", 500, 0),
		holding("AMD", 500, 0),
		holding("MSFT", 1000, 0),
	}
	m := Metrics(holdings)

	if got := m.SectorAllocation["Semiconductors"]; got != 50.0 {
		t.Errorf("expected Semiconductors 50.0, got %v", got)
	}
	if got := m.SectorAllocation["Software"]; got != 50.0 {
		t.Errorf("expected Software 50.0, got %v", got)
	}
}

func TestMetricsPerformerRanking(t *testing.T) {
	holdings := []models.Holding{
		holding("A", 100, -10),
		holding("B", 100, 25),
		holding("C", 100, 5),
		holding("D", 100, 40),
		holding("E", 100, 0),
	}
	m := Metrics(holdings)

	if len(m.TopPerformers) != 3 {
		t.Fatalf("expected 3 top performers, got %d", len(m.TopPerformers))
	}
	if m.TopPerformers[0].Symbol != "D" || m.TopPerformers[1].Symbol != "B" || m.TopPerformers[2].Symbol != "C" {
		t.Errorf("unexpected top order: %s %s %s",
			m.TopPerformers[0].Symbol, m.TopPerformers[1].Symbol, m.TopPerformers[2].Symbol)
	}
	if m.WorstPerformers[0].Symbol != "A" || m.WorstPerformers[1].Symbol != "E" || m.WorstPerformers[2].Symbol != "C" {
		t.Errorf("unexpected worst order: %s %s %s",
			m.WorstPerformers[0].Symbol, m.WorstPerformers[1].Symbol, m.WorstPerformers[2].Symbol)
	}
}

func TestMetricsFewerThanThreeHoldings(t *testing.T) {
	m := Metrics([]models.Holding{
		holding("A", 100, 10),
		holding("B", 100, -5),
	})
	if len(m.TopPerformers) != 2 || len(m.WorstPerformers) != 2 {
		t.Errorf("expected performer lists of 2, got %d/%d",
			len(m.TopPerformers), len(m.WorstPerformers))
	}
}
