package format

import "testing"

func TestINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{75517, "₹75,517.00"},
		{1485.75, "₹1,485.75"},
		{1234567.891, "₹1,234,567.89"},
		{-1500.5, "-₹1,500.50"},
	}

	for _, tt := range tests {
		if got := INR(tt.amount); got != tt.want {
			t.Errorf("INR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestUSD(t *testing.T) {
	if got := USD(1666.67); got != "$1,666.67" {
		t.Errorf("USD(1666.67) = %q", got)
	}
}

func TestQuantities(t *testing.T) {
	if got := Minutes(3500); got != "3,500 min" {
		t.Errorf("Minutes(3500) = %q", got)
	}
	if got := Tokens(1050000.4); got != "1,050,000 tokens" {
		t.Errorf("Tokens = %q", got)
	}
	if got := Count(12); got != "12" {
		t.Errorf("Count(12) = %q", got)
	}

	limit := 20
	if got := Limit(&limit); got != "20" {
		t.Errorf("Limit(20) = %q", got)
	}
	if got := Limit(nil); got != "unlimited" {
		t.Errorf("Limit(nil) = %q", got)
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		spent, budget, want float64
	}{
		{50, 100, 50},
		{150, 100, 150},
		{0, 0, 0},
		{10, 0, 100},
	}

	for _, tt := range tests {
		if got := PercentOf(tt.spent, tt.budget); got != tt.want {
			t.Errorf("PercentOf(%v, %v) = %v, want %v", tt.spent, tt.budget, got, tt.want)
		}
	}
}
