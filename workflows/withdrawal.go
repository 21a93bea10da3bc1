package workflows

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/validation"
)

// PrepareWithdrawal asks the exchange to move funds from the wallet's vault into the
// withdrawal area. The funds are claimed on-chain with CompleteWithdrawal once the batch settles.
func (w *Workflows) PrepareWithdrawal(ctx context.Context, wc flash1.WalletConnection, amount flash1.TokenAmount) (*api.CreateWithdrawalResponse, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return nil, err
	}
	if err := validation.ValidateTokenAmount(amount); err != nil {
		return nil, err
	}

	token, err := signableToken(amount.Token)
	if err != nil {
		return nil, err
	}

	ethAddress := wc.EthSigner.Address().Hex()
	signable, err := w.api.Withdrawals.GetSignableWithdrawal(ctx, api.SignableWithdrawalRequest{
		User:   ethAddress,
		Token:  token,
		Amount: amount.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("get signable withdrawal: %w", err)
	}

	starkSignature, err := wc.StarkSigner.SignMessage(ctx, signable.PayloadHash)
	if err != nil {
		return nil, fmt.Errorf("stark sign: %w", err)
	}
	ethSignature, err := signRaw(ctx, wc.EthSigner, signable.SignableMessage)
	if err != nil {
		return nil, err
	}

	resp, err := w.api.Withdrawals.CreateWithdrawal(ctx, ethAddress, ethSignature, api.CreateWithdrawalRequest{
		Amount:         signable.Amount,
		AssetID:        signable.AssetID,
		Nonce:          signable.Nonce,
		StarkKey:       signable.StarkKey,
		StarkSignature: starkSignature,
		VaultID:        signable.VaultID,
	})
	if err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}

	w.logger.Info("withdrawal prepared", zap.Int64("withdrawal_id", resp.WithdrawalID), zap.String("status", resp.Status))
	return resp, nil
}

// CompleteWithdrawal claims prepared funds of token for starkKey by calling withdraw on the
// core contract. starkKey may also be an Ethereum address for keys registered that way.
// The user is assumed to be registered on-chain.
func (w *Workflows) CompleteWithdrawal(ctx context.Context, signer flash1.EthSigner, starkKey string, token flash1.Token) (*types.Transaction, error) {
	if err := w.validateChain(ctx, signer); err != nil {
		return nil, err
	}
	if err := validation.ValidateStarkKey(starkKey); err != nil {
		return nil, err
	}
	if err := validation.ValidateToken(token); err != nil {
		return nil, err
	}

	assetType, err := w.assetType(ctx, token)
	if err != nil {
		return nil, err
	}

	req, err := w.core.Withdraw(starkKey, assetType)
	if err != nil {
		return nil, err
	}
	tx, err := signer.SendTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send withdrawal: %w", err)
	}

	w.logger.Info("withdrawal completed", zap.String("tx", tx.Hash().Hex()), zap.String("token", string(token.Type())))
	return tx, nil
}

// assetType resolves the StarkEx asset type of a token. Collateral carries its own;
// other tokens are encoded by the API.
func (w *Workflows) assetType(ctx context.Context, token flash1.Token) (string, error) {
	var encode api.EncodeAssetToken
	switch t := token.(type) {
	case flash1.ERC20Collateral:
		if t.AssetID != "" {
			return t.AssetID, nil
		}
		return w.config.Eth.CollateralAssetID, nil
	case flash1.ETHToken:
		encode = api.EncodeAssetToken{Type: string(flash1.TokenTypeETH)}
	case flash1.ERC20Token:
		encode = api.EncodeAssetToken{
			Type: string(flash1.TokenTypeERC20),
			Data: &api.EncodeAssetTokenData{TokenAddress: t.TokenAddress},
		}
	default:
		return "", fmt.Errorf("%w: %T", flash1.ErrUnsupportedToken, token)
	}

	encoded, err := w.api.Encoding.EncodeAsset(ctx, "asset", api.EncodeAssetRequest{Token: encode})
	if err != nil {
		return "", fmt.Errorf("encode asset: %w", err)
	}
	return encoded.AssetType, nil
}
