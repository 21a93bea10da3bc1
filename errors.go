package flash1

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBasePath indicates a custom environment without an API base path.
	ErrEmptyBasePath = errors.New("flash1: basePath can not be empty")

	// ErrWrongNetwork indicates the connected wallet is on a different chain than the configuration.
	ErrWrongNetwork = errors.New("flash1: the wallet used for this operation is not from the correct network")

	// ErrInvalidMessageLength indicates a STARK message hash that cannot be signed.
	ErrInvalidMessageLength = errors.New("flash1: invalid message length for the stark curve")

	// ErrInvalidAmount indicates a malformed, negative or unrepresentable amount.
	ErrInvalidAmount = errors.New("flash1: invalid amount")

	// ErrInvalidKey indicates a malformed private or public key.
	ErrInvalidKey = errors.New("flash1: invalid key")

	// ErrInvalidAddress indicates a malformed Ethereum address.
	ErrInvalidAddress = errors.New("flash1: invalid address")

	// ErrInvalidKeystore indicates a keystore file that cannot be read or decrypted.
	ErrInvalidKeystore = errors.New("flash1: invalid keystore file")

	// ErrInvalidMnemonic indicates an invalid BIP-39 mnemonic.
	ErrInvalidMnemonic = errors.New("flash1: invalid mnemonic phrase")

	// ErrUnsupportedToken indicates a token type the operation does not handle.
	ErrUnsupportedToken = errors.New("flash1: unsupported token type")

	// ErrSelfMintUnavailable indicates a self-mint attempt outside a test network.
	ErrSelfMintUnavailable = errors.New("flash1: self-minting collateral is only available on test networks")

	// ErrNoBackend indicates an Ethereum signer without a JSON-RPC backend.
	ErrNoBackend = errors.New("flash1: no ethereum backend configured")

	// ErrTransactionFailed indicates a mined transaction with a failed status.
	ErrTransactionFailed = errors.New("flash1: transaction failed")
)

// ErrorCode classifies normalized SDK errors.
type ErrorCode string

const (
	ErrCodeWrongNetwork      ErrorCode = "wrong_network"
	ErrCodeInvalidArgument   ErrorCode = "invalid_argument"
	ErrCodeAPI               ErrorCode = "api_error"
	ErrCodeContractReverted  ErrorCode = "contract_reverted"
	ErrCodeTransactionFailed ErrorCode = "transaction_failed"
	ErrCodeUnknown           ErrorCode = "unknown"
)

// Error is the uniform error shape returned by the client package.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error

	// Details carries structured context (HTTP status, revert reason, ...).
	Details map[string]any
}

// NewError creates an Error with an initialized Details map.
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
		Details: make(map[string]any),
	}
}

// WithDetails adds a detail entry and returns the error for chaining.
func (e *Error) WithDetails(key string, value any) *Error {
	e.Details[key] = value
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
