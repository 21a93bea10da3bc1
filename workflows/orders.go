package workflows

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/validation"
)

// CreateOrder signs and submits an order. The STARK key signs the payload hash returned by
// the API and the Ethereum key signs its message, which authorises the submission.
func (w *Workflows) CreateOrder(ctx context.Context, wc flash1.WalletConnection, req flash1.UnsignedOrderRequest) (*api.CreateOrderResponse, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return nil, err
	}
	if err := validation.ValidateTokenAmount(req.Buy); err != nil {
		return nil, fmt.Errorf("buy: %w", err)
	}
	if err := validation.ValidateTokenAmount(req.Sell); err != nil {
		return nil, fmt.Errorf("sell: %w", err)
	}

	tokenBuy, err := signableToken(req.Buy.Token)
	if err != nil {
		return nil, err
	}
	tokenSell, err := signableToken(req.Sell.Token)
	if err != nil {
		return nil, err
	}

	ethAddress := wc.EthSigner.Address().Hex()
	signable, err := w.api.Orders.GetSignableOrder(ctx, api.SignableOrderRequest{
		User:                ethAddress,
		AmountBuy:           req.Buy.Amount,
		TokenBuy:            tokenBuy,
		AmountSell:          req.Sell.Amount,
		TokenSell:           tokenSell,
		Fees:                req.Fees,
		ExpirationTimestamp: req.ExpirationTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("get signable order: %w", err)
	}

	starkSignature, ethSignature, err := signBoth(ctx, wc, signable.PayloadHash, signable.SignableMessage)
	if err != nil {
		return nil, err
	}

	resp, err := w.api.Orders.CreateOrder(ctx, ethAddress, ethSignature, api.CreateOrderRequest{
		AmountBuy:           signable.AmountBuy,
		AmountSell:          signable.AmountSell,
		AssetIDBuy:          signable.AssetIDBuy,
		AssetIDSell:         signable.AssetIDSell,
		ExpirationTimestamp: signable.ExpirationTimestamp,
		Fees:                req.Fees,
		Nonce:               signable.Nonce,
		StarkKey:            signable.StarkKey,
		StarkSignature:      starkSignature,
		VaultIDBuy:          signable.VaultIDBuy,
		VaultIDSell:         signable.VaultIDSell,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	w.logger.Info("order created", zap.Int64("order_id", resp.OrderID), zap.String("status", resp.Status))
	return resp, nil
}

// CancelOrder signs and submits the cancellation of an order.
func (w *Workflows) CancelOrder(ctx context.Context, wc flash1.WalletConnection, orderID int64) (*api.CancelOrderResponse, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return nil, err
	}

	signable, err := w.api.Orders.GetSignableCancelOrder(ctx, api.SignableCancelOrderRequest{OrderID: orderID})
	if err != nil {
		return nil, fmt.Errorf("get signable cancel order: %w", err)
	}

	starkSignature, ethSignature, err := signBoth(ctx, wc, signable.PayloadHash, signable.SignableMessage)
	if err != nil {
		return nil, err
	}

	resp, err := w.api.Orders.CancelOrder(ctx, wc.EthSigner.Address().Hex(), ethSignature, api.CancelOrderRequest{
		OrderID:        orderID,
		StarkSignature: starkSignature,
	})
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	w.logger.Info("order cancelled", zap.Int64("order_id", resp.OrderID))
	return resp, nil
}

// CreateTrade signs and submits a trade against an existing order.
func (w *Workflows) CreateTrade(ctx context.Context, wc flash1.WalletConnection, req flash1.UnsignedTradeRequest) (*api.CreateTradeResponse, error) {
	if err := w.validateChain(ctx, wc.EthSigner); err != nil {
		return nil, err
	}

	ethAddress := wc.EthSigner.Address().Hex()
	signable, err := w.api.Trades.GetSignableTrade(ctx, api.SignableTradeRequest{
		User:    ethAddress,
		OrderID: req.OrderID,
		Fees:    req.Fees,
	})
	if err != nil {
		return nil, fmt.Errorf("get signable trade: %w", err)
	}

	starkSignature, ethSignature, err := signBoth(ctx, wc, signable.PayloadHash, signable.SignableMessage)
	if err != nil {
		return nil, err
	}

	resp, err := w.api.Trades.CreateTrade(ctx, ethAddress, ethSignature, api.CreateTradeRequest{
		AmountBuy:           signable.AmountBuy,
		AmountSell:          signable.AmountSell,
		AssetIDBuy:          signable.AssetIDBuy,
		AssetIDSell:         signable.AssetIDSell,
		ExpirationTimestamp: signable.ExpirationTimestamp,
		Fees:                req.Fees,
		Nonce:               signable.Nonce,
		OrderID:             req.OrderID,
		StarkKey:            signable.StarkKey,
		StarkSignature:      starkSignature,
		VaultIDBuy:          signable.VaultIDBuy,
		VaultIDSell:         signable.VaultIDSell,
	})
	if err != nil {
		return nil, fmt.Errorf("create trade: %w", err)
	}

	w.logger.Info("trade created", zap.Int64("trade_id", resp.TradeID), zap.String("status", resp.Status))
	return resp, nil
}

// signBoth produces the STARK signature of payloadHash and the serialized Ethereum
// signature of message.
func signBoth(ctx context.Context, wc flash1.WalletConnection, payloadHash, message string) (starkSig, ethSig string, err error) {
	starkSig, err = wc.StarkSigner.SignMessage(ctx, payloadHash)
	if err != nil {
		return "", "", fmt.Errorf("stark sign: %w", err)
	}
	ethSig, err = signRaw(ctx, wc.EthSigner, message)
	if err != nil {
		return "", "", err
	}
	return starkSig, ethSig, nil
}
