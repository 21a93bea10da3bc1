package workflows

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/contracts"
	"github.com/flash1-exchange/flash1-go/stark"
	"github.com/flash1-exchange/flash1-go/validation"
)

// maxTokenDecimals bounds the decimals a quantization factor can be derived from (10^18 fits int64).
const maxTokenDecimals = 18

// Deposit moves funds from the signer's Ethereum account into the exchange. ETH amounts are
// in wei; collateral amounts are decimal token units. Plain ERC-20 tokens are not accepted.
func (w *Workflows) Deposit(ctx context.Context, signer flash1.EthSigner, deposit flash1.TokenAmount) (*types.Transaction, error) {
	if err := w.validateChain(ctx, signer); err != nil {
		return nil, err
	}
	if err := validation.ValidateTokenAmount(deposit); err != nil {
		return nil, err
	}

	switch token := deposit.Token.(type) {
	case flash1.ETHToken:
		return w.depositEth(ctx, signer, deposit.Amount)
	case flash1.ERC20Collateral:
		return w.depositERC20(ctx, signer, token, deposit.Amount)
	default:
		return nil, fmt.Errorf("%w: deposits accept ETH or collateral, got %s", flash1.ErrUnsupportedToken, deposit.Token.Type())
	}
}

func (w *Workflows) depositEth(ctx context.Context, signer flash1.EthSigner, amount string) (*types.Transaction, error) {
	wei, err := flash1.ParseWei(amount)
	if err != nil {
		return nil, err
	}

	token, err := signableToken(flash1.ETHToken{})
	if err != nil {
		return nil, err
	}
	signable, err := w.api.Deposits.GetSignableDeposit(ctx, api.SignableDepositRequest{
		User:   signer.Address().Hex(),
		Token:  token,
		Amount: amount,
	})
	if err != nil {
		return nil, fmt.Errorf("get signable deposit: %w", err)
	}

	encoded, err := w.api.Encoding.EncodeAsset(ctx, "asset", api.EncodeAssetRequest{
		Token: api.EncodeAssetToken{Type: string(flash1.TokenTypeETH)},
	})
	if err != nil {
		return nil, fmt.Errorf("encode asset: %w", err)
	}

	vaultID := strconv.FormatUint(signable.VaultID, 10)
	req, err := w.core.Deposit(signable.StarkKey, encoded.AssetType, vaultID, wei)
	if err != nil {
		return nil, err
	}
	tx, err := signer.SendTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send deposit: %w", err)
	}

	w.logger.Info("eth deposit submitted",
		zap.String("tx", tx.Hash().Hex()),
		zap.String("vault_id", vaultID),
		zap.String("wei", wei.String()),
	)
	return tx, nil
}

// depositERC20 approves the core contract to pull the quantized amount, waits for the
// approval to be mined, then deposits into the vault derived from the user's STARK key.
func (w *Workflows) depositERC20(ctx context.Context, signer flash1.EthSigner, token flash1.ERC20Collateral, amount string) (*types.Transaction, error) {
	starkKey := w.user.Stark.PublicKey
	if starkKey == "" {
		return nil, fmt.Errorf("%w: stark public key is required for collateral deposits", flash1.ErrInvalidKey)
	}
	vaultID, err := stark.DeriveVaultID(starkKey)
	if err != nil {
		return nil, err
	}

	erc20 := contracts.NewERC20(common.HexToAddress(token.TokenAddress))

	quantization, err := w.quantization(ctx, signer, erc20, token)
	if err != nil {
		return nil, err
	}
	quantized, err := flash1.Quantize(amount, quantization)
	if err != nil {
		return nil, err
	}

	approval, err := erc20.Approve(w.core.Address(), quantized)
	if err != nil {
		return nil, err
	}
	approvalTx, err := signer.SendTransaction(ctx, approval)
	if err != nil {
		return nil, fmt.Errorf("send approval: %w", err)
	}
	w.logger.Debug("approval submitted", zap.String("tx", approvalTx.Hash().Hex()))

	receipt, err := signer.WaitMined(ctx, approvalTx)
	if err != nil {
		return nil, fmt.Errorf("wait for approval: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("approval %s: %w", approvalTx.Hash().Hex(), flash1.ErrTransactionFailed)
	}

	assetType := token.AssetID
	if assetType == "" {
		assetType = w.config.Eth.CollateralAssetID
	}

	req, err := w.core.DepositERC20(starkKey, assetType, vaultID, quantized)
	if err != nil {
		return nil, err
	}
	tx, err := signer.SendTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send deposit: %w", err)
	}

	w.logger.Info("collateral deposit submitted",
		zap.String("tx", tx.Hash().Hex()),
		zap.String("vault_id", vaultID),
		zap.String("quantized_amount", quantized.String()),
	)
	return tx, nil
}

// quantization returns the token's quantization factor, reading the token decimals from
// the chain when the descriptor leaves it unset.
func (w *Workflows) quantization(ctx context.Context, signer flash1.EthSigner, erc20 *contracts.ERC20, token flash1.ERC20Collateral) (int64, error) {
	if token.Quantization > 0 {
		return token.Quantization, nil
	}

	decimals, err := erc20.Decimals(ctx, signer)
	if err != nil {
		return 0, fmt.Errorf("token decimals: %w", err)
	}
	if decimals > maxTokenDecimals {
		return 0, fmt.Errorf("%w: token has %d decimals", flash1.ErrInvalidAmount, decimals)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil).Int64(), nil
}

// SelfMintCollateral mints test collateral to the signer. It is refused on mainnet.
func (w *Workflows) SelfMintCollateral(ctx context.Context, signer flash1.EthSigner, amount string) (*types.Transaction, error) {
	if !w.config.IsTestnet() {
		return nil, flash1.ErrSelfMintUnavailable
	}
	if err := w.validateChain(ctx, signer); err != nil {
		return nil, err
	}

	token, err := flash1.CollateralToken(flash1.SelfMintTestnet)
	if err != nil {
		return nil, err
	}
	quantized, err := flash1.Quantize(amount, token.Quantization)
	if err != nil {
		return nil, err
	}

	req, err := contracts.NewERC20(common.HexToAddress(token.TokenAddress)).Mint(signer.Address(), quantized)
	if err != nil {
		return nil, err
	}
	tx, err := signer.SendTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send mint: %w", err)
	}

	w.logger.Info("collateral minted", zap.String("tx", tx.Hash().Hex()), zap.String("amount", quantized.String()))
	return tx, nil
}
