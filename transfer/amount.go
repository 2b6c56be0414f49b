package transfer

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a human readable decimal amount into the token's
// smallest unit. It returns a reason string when the amount is rejected.
func ParseAmount(amount string, decimals int32) (*big.Int, string) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, "required"
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, "must be a decimal number"
	}
	if strings.ContainsAny(s, "eE") {
		return nil, "must be a plain decimal number"
	}
	if !d.IsPositive() {
		return nil, "must be greater than zero"
	}

	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, "too many decimal places"
	}
	return shifted.BigInt(), ""
}
