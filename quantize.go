package flash1

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantize scales a decimal amount by the token's quantization factor and returns the
// integer the settlement contract expects. Amounts that are negative, zero or carry more
// precision than the factor allows are rejected with ErrInvalidAmount.
func Quantize(amount string, quantization int64) (*big.Int, error) {
	if quantization <= 0 {
		return nil, fmt.Errorf("%w: quantization must be positive, got %d", ErrInvalidAmount, quantization)
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0, got %s", ErrInvalidAmount, amount)
	}

	scaled := value.Mul(decimal.NewFromInt(quantization))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %s has more precision than quantization %d", ErrInvalidAmount, amount, quantization)
	}

	return scaled.BigInt(), nil
}

// ParseWei parses an integer amount of wei.
func ParseWei(amount string) (*big.Int, error) {
	wei, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer amount of wei", ErrInvalidAmount, amount)
	}
	if wei.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0, got %s", ErrInvalidAmount, amount)
	}
	return wei, nil
}
