package contracts

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ReasonUserUnregistered is the revert reason of getEthKey for an unknown STARK key.
const ReasonUserUnregistered = "USER_UNREGISTERED"

const revertPrefix = "execution reverted: "

// RevertReason extracts the revert reason from a contract call error. It decodes the
// Error(string) payload carried by JSON-RPC errors and falls back to the node's
// "execution reverted: <reason>" message. ok is false when err is not a revert.
func RevertReason(err error) (reason string, ok bool) {
	if err == nil {
		return "", false
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, isString := dataErr.ErrorData().(string); isString {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if unpacked, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return unpacked, true
				}
			}
		}
	}

	msg := err.Error()
	if i := strings.Index(msg, revertPrefix); i >= 0 {
		return strings.TrimSpace(msg[i+len(revertPrefix):]), true
	}
	if strings.Contains(msg, "execution reverted") {
		return "", true
	}
	return "", false
}

// IsReverted reports whether err is a contract revert.
func IsReverted(err error) bool {
	_, ok := RevertReason(err)
	return ok
}
