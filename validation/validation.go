// Package validation checks caller input before any network call is made.
package validation

import (
	"fmt"
	"math/big"
	"regexp"

	"github.com/flash1-exchange/flash1-go"
)

var (
	// evmAddressRegex matches Ethereum addresses (0x followed by 40 hex chars)
	evmAddressRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

	// starkKeyRegex matches a 0x-prefixed field element of at most 64 hex chars
	starkKeyRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{1,64}$`)
)

// ValidateAmount validates that an amount string is a positive base-10 integer.
func ValidateAmount(amount string) error {
	if amount == "" {
		return fmt.Errorf("%w: amount cannot be empty", flash1.ErrInvalidAmount)
	}

	amt, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("%w: invalid amount format: %s", flash1.ErrInvalidAmount, amount)
	}

	if amt.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0, got: %s", flash1.ErrInvalidAmount, amount)
	}

	return nil
}

// ValidateAddress validates an Ethereum address.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: address cannot be empty", flash1.ErrInvalidAddress)
	}
	if !evmAddressRegex.MatchString(address) {
		return fmt.Errorf("%w: %s (expected 0x followed by 40 hex characters)", flash1.ErrInvalidAddress, address)
	}
	return nil
}

// ValidateStarkKey validates a hex encoded STARK public key.
func ValidateStarkKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: stark key cannot be empty", flash1.ErrInvalidKey)
	}
	if !starkKeyRegex.MatchString(key) {
		return fmt.Errorf("%w: %s (expected 0x followed by up to 64 hex characters)", flash1.ErrInvalidKey, key)
	}
	return nil
}

// ValidateToken checks that a token descriptor carries the fields its kind needs.
func ValidateToken(token flash1.Token) error {
	switch t := token.(type) {
	case flash1.ETHToken:
		return nil

	case flash1.ERC20Token:
		if err := ValidateAddress(t.TokenAddress); err != nil {
			return fmt.Errorf("invalid token: %w", err)
		}
		return nil

	case flash1.ERC20Collateral:
		if err := ValidateAddress(t.TokenAddress); err != nil {
			return fmt.Errorf("invalid collateral: %w", err)
		}
		if t.Quantization < 0 {
			return fmt.Errorf("%w: collateral quantization cannot be negative: %d", flash1.ErrInvalidAmount, t.Quantization)
		}
		return nil

	case nil:
		return fmt.Errorf("%w: token cannot be nil", flash1.ErrUnsupportedToken)

	default:
		return fmt.Errorf("%w: %T", flash1.ErrUnsupportedToken, token)
	}
}

// ValidateTokenAmount validates the token and checks the amount is a positive decimal.
// Decimal scaling itself is done by flash1.Quantize.
func ValidateTokenAmount(amount flash1.TokenAmount) error {
	if err := ValidateToken(amount.Token); err != nil {
		return err
	}
	if amount.Amount == "" {
		return fmt.Errorf("%w: amount cannot be empty", flash1.ErrInvalidAmount)
	}
	return nil
}
