package client

import (
	"errors"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/contracts"
)

var invalidArgument = []error{
	flash1.ErrEmptyBasePath,
	flash1.ErrInvalidMessageLength,
	flash1.ErrInvalidAmount,
	flash1.ErrInvalidKey,
	flash1.ErrInvalidAddress,
	flash1.ErrUnsupportedToken,
	flash1.ErrSelfMintUnavailable,
}

// normalize rewrites err into a *flash1.Error. The cause stays reachable through Unwrap,
// so errors.Is and errors.As keep working on the result.
func normalize(op string, err error) error {
	if err == nil {
		return nil
	}

	var sdkErr *flash1.Error
	if errors.As(err, &sdkErr) {
		return err
	}

	var apiErr *api.Error
	switch {
	case errors.Is(err, flash1.ErrWrongNetwork):
		return flash1.NewError(flash1.ErrCodeWrongNetwork, "wallet is on the wrong network", err).
			WithDetails("operation", op)

	case isAny(err, invalidArgument):
		return flash1.NewError(flash1.ErrCodeInvalidArgument, "invalid argument", err).
			WithDetails("operation", op)

	case errors.Is(err, flash1.ErrTransactionFailed):
		return flash1.NewError(flash1.ErrCodeTransactionFailed, "transaction failed", err).
			WithDetails("operation", op)

	case errors.As(err, &apiErr):
		e := flash1.NewError(flash1.ErrCodeAPI, "api request failed", err).
			WithDetails("operation", op).
			WithDetails("status", apiErr.StatusCode)
		if apiErr.Code != "" {
			e.WithDetails("api_code", apiErr.Code)
		}
		return e
	}

	if reason, ok := contracts.RevertReason(err); ok {
		return flash1.NewError(flash1.ErrCodeContractReverted, "contract call reverted", err).
			WithDetails("operation", op).
			WithDetails("reason", reason)
	}

	return flash1.NewError(flash1.ErrCodeUnknown, "operation failed", err).
		WithDetails("operation", op)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
