package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: Currency formatting produces valid grouped dollar amounts
//
// For any amount, FormatUSD should:
// 1. Start with $ (or -$ for negative amounts)
// 2. Have exactly 2 decimal places
// 3. Group the integer part in threes from the right
// 4. Preserve the numeric value when parsed back
func TestProperty_USDFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	groupedPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("FormatUSD produces valid grouped format", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}
			if math.Abs(amount) > 1e15 {
				return true
			}

			formatted := FormatUSD(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					t.Logf("Expected $ prefix for %f, got %s", amount, formatted)
					return false
				}
			} else {
				if !strings.HasPrefix(formatted, "-$") {
					t.Logf("Expected -$ prefix for %f, got %s", amount, formatted)
					return false
				}
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}

			numPart := strings.TrimPrefix(strings.TrimPrefix(parts[0], "-"), "$")
			if !groupedPattern.MatchString(numPart) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}

			// Parsed-back value must match to cent precision.
			plain := strings.ReplaceAll(strings.TrimPrefix(strings.TrimPrefix(formatted, "-"), "$"), ",", "")
			parsed, err := strconv.ParseFloat(plain, 64)
			if err != nil {
				t.Logf("Unparseable output for %f: %s", amount, formatted)
				return false
			}
			if formatted[0] == '-' {
				parsed = -parsed
			}
			return math.Abs(parsed-amount) <= 0.005+math.Abs(amount)*1e-12
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

// Property: Signed formatting marks gains explicitly
func TestProperty_SignedUSDFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("positive amounts get an explicit plus", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatSignedUSD(amount)
			if amount > 0 {
				return strings.HasPrefix(formatted, "+$")
			}
			if amount < 0 {
				return strings.HasPrefix(formatted, "-$")
			}
			return strings.HasPrefix(formatted, "$")
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestFormatUSDExamples(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
		{-150.5, "-$150.50"},
		{999.999, "$1,000.00"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatShares(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{10.5, "10.5"},
		{0.3333, "0.3333"},
		{2.5000, "2.5"},
	}
	for _, tt := range tests {
		if got := FormatShares(tt.in); got != tt.want {
			t.Errorf("FormatShares(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := TruncateString("a very long description", 10); got != "a very ..." {
		t.Errorf("expected truncation with ellipsis, got %q", got)
	}
}
