package stark

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/encoding"
)

// curveOrder is the order n of the STARK curve generator.
var curveOrder = fr.Modulus()

// FixMessageHashLength prepares a hex message hash for signing.
//
// Hashes of at most 62 significant hex digits are returned unchanged (without prefix).
// A hash of exactly 63 digits gets a zero nibble appended so that the right shift applied
// to 32-byte digests during signing recovers the original value. Any other length returns
// flash1.ErrInvalidMessageLength.
func FixMessageHashLength(hash string) (string, error) {
	raw := encoding.StripHexPrefix(strings.TrimSpace(hash))
	if raw == "" {
		return "", fmt.Errorf("%w: empty hash", flash1.ErrInvalidMessageLength)
	}
	value, ok := new(big.Int).SetString(raw, 16)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a hex string", flash1.ErrInvalidMessageLength, hash)
	}

	digits := value.Text(16)
	switch {
	case len(digits) <= 62:
		return raw, nil
	case len(digits) == 63:
		return digits + "0", nil
	default:
		return "", fmt.Errorf("%w: %d hex digits", flash1.ErrInvalidMessageLength, len(digits))
	}
}

// signingDigest converts a fixed message hash into the integer that is actually signed.
// Digests whose significant byte length exceeds the curve order are shifted right by the
// excess bits, then reduced once.
func signingDigest(fixed string) (*big.Int, error) {
	b, err := encoding.DecodeHex(fixed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", flash1.ErrInvalidMessageLength, err)
	}
	z := new(big.Int).SetBytes(b)

	byteLen := (z.BitLen() + 7) / 8
	if delta := byteLen*8 - curveOrder.BitLen(); delta > 0 {
		z.Rsh(z, uint(delta))
	}
	if z.Cmp(curveOrder) >= 0 {
		z.Sub(z, curveOrder)
	}
	return z, nil
}
