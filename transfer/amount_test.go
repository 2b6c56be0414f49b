package transfer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		expected string
		reason   string
	}{
		{name: "integer", amount: "10", decimals: 18, expected: "10000000000000000000"},
		{name: "fraction", amount: "0.5", decimals: 18, expected: "500000000000000000"},
		{name: "smallest unit", amount: "0.000000000000000001", decimals: 18, expected: "1"},
		{name: "whitespace", amount: " 1.25 ", decimals: 2, expected: "125"},
		{name: "empty", amount: "", decimals: 18, reason: "required"},
		{name: "zero", amount: "0", decimals: 18, reason: "must be greater than zero"},
		{name: "negative", amount: "-1", decimals: 18, reason: "must be greater than zero"},
		{name: "not a number", amount: "ten", decimals: 18, reason: "must be a decimal number"},
		{name: "scientific", amount: "1e18", decimals: 18, reason: "must be a plain decimal number"},
		{name: "letters with e", amount: "one", decimals: 18, reason: "must be a decimal number"},
		{name: "too precise", amount: "1.001", decimals: 2, reason: "too many decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, reason := ParseAmount(tt.amount, tt.decimals)
			require.Equal(t, tt.reason, reason)
			if tt.reason != "" {
				require.Nil(t, value)
				return
			}
			require.Equal(t, tt.expected, value.String())
		})
	}
}
