package core

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// DefaultCurrency returns the currency code for an ISO 3166-1 alpha-2
// country code. Unknown or empty codes default to USD, the pricing currency
// of the search providers.
func DefaultCurrency(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return "USD"
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return "USD"
	}
	cur, ok := currency.FromRegion(region)
	if !ok {
		return "USD"
	}
	return cur.String()
}
