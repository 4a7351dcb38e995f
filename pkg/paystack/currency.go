package paystack

import "math"

// Currency describes a settlement currency accepted by the gateway.
type Currency struct {
	Code       string
	Name       string
	Symbol     string
	Multiplier int64
}

// DefaultCurrency is used when a transaction does not specify one.
const DefaultCurrency = "USD"

// SupportedCurrencies lists the currencies the gateway settles in.
// All currently carry two implied decimal places, but the codec reads
// the multiplier per currency rather than assuming 100.
var SupportedCurrencies = map[string]Currency{
	"NGN": {Code: "NGN", Name: "Nigerian Naira", Symbol: "₦", Multiplier: 100},
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", Multiplier: 100},
	"GHS": {Code: "GHS", Name: "Ghanaian Cedi", Symbol: "₵", Multiplier: 100},
	"ZAR": {Code: "ZAR", Name: "South African Rand", Symbol: "R", Multiplier: 100},
	"KES": {Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh", Multiplier: 100},
}

// IsSupported reports whether the currency code is accepted.
func IsSupported(code string) bool {
	_, ok := SupportedCurrencies[code]
	return ok
}

// CurrencyInfo returns the currency descriptor and whether it exists.
func CurrencyInfo(code string) (Currency, bool) {
	c, ok := SupportedCurrencies[code]
	return c, ok
}

// ToMinorUnits converts a display amount into the gateway's smallest
// denomination (kobo, cents, pesewas).
func ToMinorUnits(amount float64, currency string) int64 {
	multiplier := multiplierFor(currency)
	return int64(math.Round(amount * float64(multiplier)))
}

// FromMinorUnits converts a gateway minor-unit amount back into a
// display amount.
func FromMinorUnits(minor int64, currency string) float64 {
	multiplier := multiplierFor(currency)
	return float64(minor) / float64(multiplier)
}

func multiplierFor(currency string) int64 {
	if c, ok := SupportedCurrencies[currency]; ok {
		return c.Multiplier
	}
	return 100
}
