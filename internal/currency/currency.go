// Package currency maps ISO 4217 currency codes to their minor-unit precision
// and display symbols. All lookups are total functions: unknown or malformed
// codes fall back to sensible defaults instead of erroring.
package currency

import "strings"

// DefaultMinorUnits is the decimal-place count assumed for unknown codes.
const DefaultMinorUnits int32 = 2

// zeroDecimal lists currencies with no minor unit (amounts are whole units).
var zeroDecimal = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "ISK": {}, "JPY": {},
	"KMF": {}, "KRW": {}, "PYG": {}, "RWF": {}, "UGX": {}, "UYI": {},
	"VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// threeDecimal lists currencies whose minor unit is a thousandth.
var threeDecimal = map[string]struct{}{
	"BHD": {}, "IQD": {}, "JOD": {}, "KWD": {}, "LYD": {}, "OMR": {}, "TND": {},
}

// symbols holds display symbols for common currencies. Display only; never
// used in split calculations.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"BRL": "R$",
	"MXN": "$",
	"SAR": "﷼",
	"AED": "د.إ",
	"KWD": "د.ك",
	"BHD": ".د.ب",
	"TRY": "₺",
	"RUB": "₽",
	"VND": "₫",
	"THB": "฿",
	"SGD": "S$",
	"NZD": "NZ$",
	"ZAR": "R",
}

// MinorUnits returns the number of decimal places for a currency code:
// 0 for zero-decimal currencies such as JPY, 3 for three-decimal currencies
// such as KWD, and 2 for everything else including unknown codes.
func MinorUnits(code string) int32 {
	c := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := zeroDecimal[c]; ok {
		return 0
	}
	if _, ok := threeDecimal[c]; ok {
		return 3
	}
	return DefaultMinorUnits
}

// Symbol returns the display symbol for a currency code, or the normalized
// code itself when no symbol is known.
func Symbol(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if s, ok := symbols[c]; ok {
		return s
	}
	return c
}
