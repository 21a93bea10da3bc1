package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/contracts"
	"github.com/flash1-exchange/flash1-go/encoding"
)

// RegisterOffchain registers the wallet's STARK key with the API. The signable payload is
// signed by both keys: the Ethereum key signs the message, the STARK key the payload hash.
func (w *Workflows) RegisterOffchain(ctx context.Context, wc flash1.WalletConnection) (*api.RegisterUserResponse, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return nil, err
	}

	ethKey := wc.EthSigner.Address().Hex()
	starkKey := wc.StarkSigner.Address()

	signable, err := w.api.Users.GetSignableRegistrationOffchain(ctx, api.SignableRegistrationRequest{
		EtherKey: ethKey,
		StarkKey: starkKey,
	})
	if err != nil {
		return nil, fmt.Errorf("get signable registration: %w", err)
	}

	ethSignature, err := signRaw(ctx, wc.EthSigner, signable.SignableMessage)
	if err != nil {
		return nil, err
	}
	starkSignature, err := wc.StarkSigner.SignMessage(ctx, signable.PayloadHash)
	if err != nil {
		return nil, fmt.Errorf("stark sign: %w", err)
	}

	resp, err := w.api.Users.RegisterUser(ctx, api.RegisterUserRequest{
		EthSignature:   ethSignature,
		EtherKey:       ethKey,
		StarkSignature: starkSignature,
		StarkKey:       starkKey,
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	w.logger.Info("user registered offchain", zap.String("ether_key", ethKey), zap.String("stark_key", starkKey))
	return resp, nil
}

// RegisterOnchain registers the wallet's STARK key on the core contract using the operator
// signature issued by the API.
func (w *Workflows) RegisterOnchain(ctx context.Context, wc flash1.WalletConnection) (*types.Transaction, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return nil, err
	}

	ethKey := wc.EthSigner.Address()
	starkKey := wc.StarkSigner.Address()

	signable, err := w.api.Users.GetSignableRegistration(ctx, api.SignableRegistrationRequest{
		EtherKey: ethKey.Hex(),
		StarkKey: starkKey,
	})
	if err != nil {
		return nil, fmt.Errorf("get signable registration: %w", err)
	}

	operatorSignature, err := encoding.DecodeHex(signable.OperatorSignature)
	if err != nil {
		return nil, fmt.Errorf("operator signature: %w", err)
	}

	req, err := w.core.RegisterUser(ethKey, starkKey, operatorSignature)
	if err != nil {
		return nil, err
	}
	tx, err := wc.EthSigner.SendTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send registration: %w", err)
	}

	w.logger.Info("registration submitted", zap.String("tx", tx.Hash().Hex()), zap.String("stark_key", starkKey))
	return tx, nil
}

// IsRegisteredOnchain reports whether the wallet's STARK key has an Ethereum key on the core
// contract. The USER_UNREGISTERED revert means false; any other failure is returned.
func (w *Workflows) IsRegisteredOnchain(ctx context.Context, wc flash1.WalletConnection) (bool, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return false, err
	}

	ethKey, err := w.core.GetEthKey(ctx, wc.EthSigner, wc.StarkSigner.Address())
	if err != nil {
		if reason, ok := contracts.RevertReason(err); ok && reason == contracts.ReasonUserUnregistered {
			return false, nil
		}
		return false, err
	}
	return ethKey != (common.Address{}), nil
}

// IsRegisteredOffchain reports whether the API lists the wallet's STARK key under its
// Ethereum address. An unknown user is not an error.
func (w *Workflows) IsRegisteredOffchain(ctx context.Context, wc flash1.WalletConnection) (bool, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return false, err
	}

	users, err := w.api.Users.GetUsers(ctx, wc.EthSigner.Address().Hex())
	if err != nil {
		if api.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get users: %w", err)
	}

	starkKey := encoding.SanitizeHex(wc.StarkSigner.Address())
	return slices.ContainsFunc(users.Accounts, func(account string) bool {
		return encoding.SanitizeHex(account) == starkKey
	}), nil
}
