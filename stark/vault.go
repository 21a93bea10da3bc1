package stark

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/encoding"
)

// DeriveVaultID returns the default vault ID of a STARK public key: the SHA-256 digest of
// the key bytes taken modulo 2^64, as a decimal string.
func DeriveVaultID(publicKey string) (string, error) {
	if encoding.StripHexPrefix(publicKey) == "" {
		return "", fmt.Errorf("%w: empty public key", flash1.ErrInvalidKey)
	}
	key, err := encoding.DecodeHex(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", flash1.ErrInvalidKey, err)
	}

	digest := sha256.Sum256(key)
	// A big-endian integer modulo 2^64 is its low 8 bytes.
	return strconv.FormatUint(binary.BigEndian.Uint64(digest[24:]), 10), nil
}
