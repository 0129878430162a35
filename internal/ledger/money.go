package ledger

import "github.com/shopspring/decimal"

// Currency is the only currency the ledger deals in.
const Currency = "MAD"

// FormatMAD renders an amount rounded to whole dirhams, e.g. "240 MAD".
func FormatMAD(amount float64) string {
	return decimal.NewFromFloat(amount).Round(0).String() + " " + Currency
}

// FormatMADCents renders an amount with two decimals, e.g. "20.00 MAD".
func FormatMADCents(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2) + " " + Currency
}
