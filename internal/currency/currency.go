// Package currency holds the display currencies and their formatting
// conventions. Amounts in the ledger are currency-agnostic magnitudes;
// the currency is purely a presentation setting.
package currency

import "fmt"

// Code identifies a supported display currency.
type Code string

const (
	USD Code = "USD"
	INR Code = "INR"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
)

// Info describes one supported currency.
type Info struct {
	Symbol string
	Label  string
}

// Currencies maps each supported code to its display info.
var Currencies = map[Code]Info{
	USD: {Symbol: "$", Label: "US Dollar"},
	INR: {Symbol: "₹", Label: "Indian Rupee"},
	EUR: {Symbol: "€", Label: "Euro"},
	GBP: {Symbol: "£", Label: "British Pound"},
	JPY: {Symbol: "¥", Label: "Japanese Yen"},
}

// Valid reports whether c is a supported currency code.
func Valid(c Code) bool {
	_, ok := Currencies[c]
	return ok
}

// FormatCompact renders a large amount in the short form conventional for
// the currency: INR uses Lakh/Crore groupings, everything else uses k/M.
func FormatCompact(num float64, c Code) string {
	if c == INR {
		switch {
		case num >= 10000000:
			return fmt.Sprintf("%.2f Cr", num/10000000)
		case num >= 100000:
			return fmt.Sprintf("%.2f L", num/100000)
		case num >= 1000:
			return fmt.Sprintf("%.1f k", num/1000)
		}
		return fmt.Sprintf("%g", num)
	}

	switch {
	case num >= 1000000:
		return fmt.Sprintf("%.1fM", num/1000000)
	case num >= 1000:
		return fmt.Sprintf("%.1fk", num/1000)
	}
	return fmt.Sprintf("%g", num)
}

// SuggestedAmounts returns the quick-entry amounts shown for the currency.
func SuggestedAmounts(c Code) []float64 {
	switch c {
	case INR:
		return []float64{500, 1000, 5000, 10000, 50000}
	case JPY:
		return []float64{1000, 5000, 10000, 50000}
	default:
		return []float64{10, 50, 100, 500, 1000}
	}
}
