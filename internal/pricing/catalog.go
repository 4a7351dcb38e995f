package pricing

import (
	"math"
	"sort"
	"strconv"

	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

// Base prices in USD; converted to other currencies via the static
// rate table below.
var defaultBasePrices = map[string]float64{
	"LinkedIn Optimization":     49,
	"CV Optimization":           29,
	"AI Automation Training":    79,
	"Sales & Rebranding":        59,
	"Voice Coaching & Tonality": 39,
	"CRM Training":              49,
	"AI Prompt Engineering":     69,
	"Email Marketing":           44,
	"Interview Preparation":     34,
	"Personal Goal Setting":     54,
	"Job Opportunities":         0,
	"Talent Staffing":           0,
}

// Static conversion rates from the USD base price. Rates are
// configuration, not sourced live.
var defaultRates = map[string]float64{
	"USD": 1,
	"NGN": 1650,
	"GHS": 12,
	"ZAR": 18,
	"KES": 150,
}

// Catalog maps training programs to prices per currency. It is
// immutable after construction and safe for concurrent reads.
//
// Unknown programs price to zero, which makes them behave as free.
// This mirrors the long-standing production behavior; turning it into
// a hard validation error needs product sign-off first.
type Catalog struct {
	basePrices map[string]float64
	rates      map[string]float64
}

// NewCatalog builds a catalog with the standard program and rate tables.
func NewCatalog() *Catalog {
	return &Catalog{basePrices: defaultBasePrices, rates: defaultRates}
}

// NewCatalogWithTables builds a catalog from explicit tables, used by tests.
func NewCatalogWithTables(basePrices, rates map[string]float64) *Catalog {
	return &Catalog{basePrices: basePrices, rates: rates}
}

// PriceOf returns the program price in the given currency, rounded
// half away from zero to whole display units. Free and unknown
// programs return 0.
func (c *Catalog) PriceOf(program, currency string) float64 {
	base := c.basePrices[program]
	if base == 0 {
		return 0
	}
	rate, ok := c.rates[currency]
	if !ok {
		return 0
	}
	return math.Round(base * rate)
}

// IsFree reports whether the program is registered with a zero base
// price. Unknown programs are not considered free here even though
// they price to zero.
func (c *Catalog) IsFree(program string) bool {
	base, ok := c.basePrices[program]
	return ok && base == 0
}

// Programs returns the registered program names sorted alphabetically.
func (c *Catalog) Programs() []string {
	names := make([]string, 0, len(c.basePrices))
	for name := range c.basePrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormattedPrice renders a program price with its currency symbol, or
// "Free" for zero-priced programs.
func (c *Catalog) FormattedPrice(program, currency string) string {
	price := c.PriceOf(program, currency)
	if price == 0 {
		return "Free"
	}
	symbol := ""
	if info, ok := paystack.CurrencyInfo(currency); ok {
		symbol = info.Symbol
	}
	return symbol + groupThousands(int64(price))
}

func groupThousands(n int64) string {
	raw := strconv.FormatInt(n, 10)
	if len(raw) <= 3 {
		return raw
	}
	var out []byte
	lead := len(raw) % 3
	if lead > 0 {
		out = append(out, raw[:lead]...)
	}
	for i := lead; i < len(raw); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, raw[i:i+3]...)
	}
	return string(out)
}
