package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		code string
		want int32
	}{
		{"USD", 2},
		{"EUR", 2},
		{"GBP", 2},
		{"JPY", 0},
		{"KRW", 0},
		{"VND", 0},
		{"KWD", 3},
		{"BHD", 3},
		{"OMR", 3},
		{"TND", 3},
		{"usd", 2},
		{"jpy", 0},
		{" kwd ", 3},
		{"XYZ", 2},
		{"", 2},
		{"not-a-code", 2},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(tt.code))
		})
	}
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "¥", Symbol("JPY"))
	assert.Equal(t, "د.ك", Symbol("KWD"))
	assert.Equal(t, "$", Symbol("usd"))

	// Unknown codes fall back to the normalized code itself.
	assert.Equal(t, "XYZ", Symbol("xyz"))
	assert.Equal(t, "", Symbol("  "))
}
