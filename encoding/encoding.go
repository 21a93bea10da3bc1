// Package encoding provides hex helpers shared by the STARK signer, the Ethereum signer
// and the contract bindings: prefix handling, padding, signature serialization and
// parsing of uint256 arguments given as decimal or hex strings.
package encoding

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// StripHexPrefix removes a leading 0x or 0X.
func StripHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// AddHexPrefix adds a 0x prefix if missing.
func AddHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s
	}
	return "0x" + s
}

// PadLeft left-pads s with zeros to length n. Longer strings are returned unchanged.
func PadLeft(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// SanitizeHex lowercases s, pads it to an even number of digits and adds a 0x prefix.
func SanitizeHex(s string) string {
	s = strings.ToLower(StripHexPrefix(s))
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return "0x" + s
}

// DecodeHex decodes a hex string with or without prefix. Odd-length input is left-padded.
func DecodeHex(s string) ([]byte, error) {
	s = StripHexPrefix(s)
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string %q: %w", s, err)
	}
	return b, nil
}

// ParseUint256 parses a 0x-prefixed hex or a decimal string into a uint256 value.
func ParseUint256(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty uint256 value")
	}

	var (
		v  *big.Int
		ok bool
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok = new(big.Int).SetString(StripHexPrefix(s), 16)
	} else {
		v, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("invalid uint256 value %q", s)
	}
	if v.Sign() < 0 || v.Cmp(math.MaxBig256) > 0 {
		return nil, fmt.Errorf("uint256 value %q out of range", s)
	}
	return v, nil
}

// SerializeStarkSignature renders r and s as 0x followed by two 64-digit halves.
func SerializeStarkSignature(r, s *big.Int) string {
	return "0x" + PadLeft(r.Text(16), 64) + PadLeft(s.Text(16), 64)
}

// SerializeEthSignature renders a 65-byte Ethereum signature as 0x + r + s + v where v is
// the recovery parameter (00 or 01).
func SerializeEthSignature(sig []byte) (string, error) {
	if len(sig) != 65 {
		return "", fmt.Errorf("invalid signature length %d", len(sig))
	}
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	return hexutil.Encode(sig[:64]) + fmt.Sprintf("%02x", v), nil
}
