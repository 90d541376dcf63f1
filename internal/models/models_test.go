package models

import (
	"testing"
	"time"
)

func TestParseTxType(t *testing.T) {
	tests := []struct {
		in   string
		want TxType
	}{
		{"expense", TxExpense},
		{"income", TxIncome},
		{"transfer", TxTransfer},
		{"INCOME", TxIncome},
		{" transfer ", TxTransfer},
		{"", TxExpense},
		{"garbage", TxExpense},
	}
	for _, tt := range tests {
		if got := ParseTxType(tt.in); got != tt.want {
			t.Errorf("ParseTxType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"groceries", CatGroceries},
		{"SALARY", CatSalary},
		{" dining ", CatDining},
		{"", CatOther},
		{"cryptocurrency", CatOther},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLotValidate(t *testing.T) {
	valid := Lot{
		Symbol:        "NVDA",
		Shares:        10,
		PurchasePrice: 450,
		PurchaseDate:  time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid lot rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Lot)
	}{
		{"empty symbol", func(l *Lot) { l.Symbol = "  " }},
		{"lowercase symbol", func(l *Lot) { l.Symbol = "nvda" }},
		{"zero shares", func(l *Lot) { l.Shares = 0 }},
		{"negative shares", func(l *Lot) { l.Shares = -1 }},
		{"zero price", func(l *Lot) { l.PurchasePrice = 0 }},
		{"negative price", func(l *Lot) { l.PurchasePrice = -10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := valid
			tt.mutate(&lot)
			if err := lot.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLotCostBasis(t *testing.T) {
	lot := Lot{Symbol: "NVDA", Shares: 10.5, PurchasePrice: 100}
	if got := lot.CostBasis(); got != 1050 {
		t.Errorf("expected cost basis 1050, got %v", got)
	}
}
