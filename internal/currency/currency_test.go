package currency

import "testing"

func TestValid(t *testing.T) {
	for _, c := range []Code{USD, INR, EUR, GBP, JPY} {
		if !Valid(c) {
			t.Errorf("Valid(%q) = false, want true", c)
		}
	}
	if Valid("XYZ") {
		t.Error("Valid(XYZ) = true, want false")
	}
	if Valid("") {
		t.Error("Valid(empty) = true, want false")
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		code Code
		want string
	}{
		{"usd millions", 2500000, USD, "2.5M"},
		{"usd thousands", 1500, USD, "1.5k"},
		{"usd small", 999, USD, "999"},
		{"inr crore", 25000000, INR, "2.50 Cr"},
		{"inr lakh", 250000, INR, "2.50 L"},
		{"inr thousands", 5000, INR, "5.0 k"},
		{"inr small", 500, INR, "500"},
		{"eur uses metric groupings", 1000000, EUR, "1.0M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCompact(tt.num, tt.code); got != tt.want {
				t.Errorf("FormatCompact(%v, %q) = %q, want %q", tt.num, tt.code, got, tt.want)
			}
		})
	}
}

func TestSuggestedAmounts(t *testing.T) {
	if got := SuggestedAmounts(INR); got[0] != 500 {
		t.Errorf("SuggestedAmounts(INR)[0] = %v, want 500", got[0])
	}
	if got := SuggestedAmounts(USD); got[0] != 10 {
		t.Errorf("SuggestedAmounts(USD)[0] = %v, want 10", got[0])
	}
	if got := SuggestedAmounts(JPY); len(got) != 4 {
		t.Errorf("SuggestedAmounts(JPY) has %d entries, want 4", len(got))
	}
}
