package workflows

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
)

// ForcedTrade submits a forced trade request to the core contract. The parameters are
// passed through unchanged.
func (w *Workflows) ForcedTrade(ctx context.Context, signer flash1.EthSigner, req flash1.ForcedTradeRequest) (*types.Transaction, error) {
	if err := w.validateChain(ctx, signer); err != nil {
		return nil, err
	}

	txReq, err := w.core.ForcedTradeRequest(req)
	if err != nil {
		return nil, err
	}
	tx, err := signer.SendTransaction(ctx, txReq)
	if err != nil {
		return nil, fmt.Errorf("send forced trade: %w", err)
	}

	w.logger.Info("forced trade submitted", zap.String("tx", tx.Hash().Hex()), zap.String("nonce", req.Nonce))
	return tx, nil
}

// ForcedWithdrawal submits a forced withdrawal request to the core contract.
func (w *Workflows) ForcedWithdrawal(ctx context.Context, signer flash1.EthSigner, req flash1.ForcedWithdrawalRequest) (*types.Transaction, error) {
	if err := w.validateChain(ctx, signer); err != nil {
		return nil, err
	}

	txReq, err := w.core.ForcedWithdrawalRequest(req)
	if err != nil {
		return nil, err
	}
	tx, err := signer.SendTransaction(ctx, txReq)
	if err != nil {
		return nil, fmt.Errorf("send forced withdrawal: %w", err)
	}

	w.logger.Info("forced withdrawal submitted", zap.String("tx", tx.Hash().Hex()), zap.String("vault_id", req.VaultID))
	return tx, nil
}
