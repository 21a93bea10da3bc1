package contracts

import (
	"fmt"

	"github.com/flash1-exchange/flash1-go/encoding"
)

// uints parses decimal or 0x-hex strings into uint256 arguments.
func uints(values ...string) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		n, err := encoding.ParseUint256(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func bytesArg(hexValue string) ([]byte, error) {
	if encoding.StripHexPrefix(hexValue) == "" {
		return []byte{}, nil
	}
	b, err := encoding.DecodeHex(hexValue)
	if err != nil {
		return nil, fmt.Errorf("bytes argument: %w", err)
	}
	return b, nil
}
