package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flash1-exchange/flash1-go"
)

// OrdersService creates and cancels orders.
type OrdersService struct{ c *Client }

type SignableOrderRequest struct {
	User                string        `json:"user"`
	AmountBuy           string        `json:"amount_buy"`
	TokenBuy            SignableToken `json:"token_buy"`
	AmountSell          string        `json:"amount_sell"`
	TokenSell           SignableToken `json:"token_sell"`
	Fees                []flash1.Fee  `json:"fees,omitempty"`
	ExpirationTimestamp int64         `json:"expiration_timestamp,omitempty"`
}

// SignableOrderResponse carries the order terms, the STARK payload hash and the message
// the Ethereum key signs to authorise the submission.
type SignableOrderResponse struct {
	AmountBuy           string `json:"amount_buy"`
	AmountSell          string `json:"amount_sell"`
	AssetIDBuy          string `json:"asset_id_buy"`
	AssetIDSell         string `json:"asset_id_sell"`
	ExpirationTimestamp int64  `json:"expiration_timestamp"`
	Nonce               int64  `json:"nonce"`
	PayloadHash         string `json:"payload_hash"`
	SignableMessage     string `json:"signable_message"`
	StarkKey            string `json:"stark_key"`
	VaultIDBuy          uint64 `json:"vault_id_buy"`
	VaultIDSell         uint64 `json:"vault_id_sell"`
}

type CreateOrderRequest struct {
	AmountBuy           string       `json:"amount_buy"`
	AmountSell          string       `json:"amount_sell"`
	AssetIDBuy          string       `json:"asset_id_buy"`
	AssetIDSell         string       `json:"asset_id_sell"`
	ExpirationTimestamp int64        `json:"expiration_timestamp"`
	Fees                []flash1.Fee `json:"fees,omitempty"`
	Nonce               int64        `json:"nonce"`
	StarkKey            string       `json:"stark_key"`
	StarkSignature      string       `json:"stark_signature"`
	VaultIDBuy          uint64       `json:"vault_id_buy"`
	VaultIDSell         uint64       `json:"vault_id_sell"`
}

type CreateOrderResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Time    int64  `json:"time"`
}

type SignableCancelOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type SignableCancelOrderResponse struct {
	PayloadHash     string `json:"payload_hash"`
	SignableMessage string `json:"signable_message"`
}

type CancelOrderRequest struct {
	OrderID        int64  `json:"order_id"`
	StarkSignature string `json:"stark_signature"`
}

type CancelOrderResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// GetSignableOrder returns the payload to sign for a new order.
func (s *OrdersService) GetSignableOrder(ctx context.Context, req SignableOrderRequest) (*SignableOrderResponse, error) {
	var resp SignableOrderResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v3/signable-order-details", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrder submits a signed order.
func (s *OrdersService) CreateOrder(ctx context.Context, ethAddress, ethSignature string, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	r := request{method: http.MethodPost, path: "/v3/orders", headers: signedBy(ethAddress, ethSignature), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSignableCancelOrder returns the payload to sign to cancel an order.
func (s *OrdersService) GetSignableCancelOrder(ctx context.Context, req SignableCancelOrderRequest) (*SignableCancelOrderResponse, error) {
	var resp SignableCancelOrderResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v3/signable-cancel-order-details", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelOrder submits a signed cancellation.
func (s *OrdersService) CancelOrder(ctx context.Context, ethAddress, ethSignature string, req CancelOrderRequest) (*CancelOrderResponse, error) {
	var resp CancelOrderResponse
	r := request{
		method:  http.MethodDelete,
		path:    fmt.Sprintf("/v3/orders/%d", req.OrderID),
		headers: signedBy(ethAddress, ethSignature),
		body:    req,
	}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TradesService creates trades against existing orders.
type TradesService struct{ c *Client }

type SignableTradeRequest struct {
	User    string       `json:"user"`
	OrderID int64        `json:"order_id"`
	Fees    []flash1.Fee `json:"fees,omitempty"`
}

type SignableTradeResponse struct {
	AmountBuy           string `json:"amount_buy"`
	AmountSell          string `json:"amount_sell"`
	AssetIDBuy          string `json:"asset_id_buy"`
	AssetIDSell         string `json:"asset_id_sell"`
	ExpirationTimestamp int64  `json:"expiration_timestamp"`
	Nonce               int64  `json:"nonce"`
	PayloadHash         string `json:"payload_hash"`
	SignableMessage     string `json:"signable_message"`
	StarkKey            string `json:"stark_key"`
	VaultIDBuy          uint64 `json:"vault_id_buy"`
	VaultIDSell         uint64 `json:"vault_id_sell"`
}

type CreateTradeRequest struct {
	AmountBuy           string       `json:"amount_buy"`
	AmountSell          string       `json:"amount_sell"`
	AssetIDBuy          string       `json:"asset_id_buy"`
	AssetIDSell         string       `json:"asset_id_sell"`
	ExpirationTimestamp int64        `json:"expiration_timestamp"`
	Fees                []flash1.Fee `json:"fees,omitempty"`
	Nonce               int64        `json:"nonce"`
	OrderID             int64        `json:"order_id"`
	StarkKey            string       `json:"stark_key"`
	StarkSignature      string       `json:"stark_signature"`
	VaultIDBuy          uint64       `json:"vault_id_buy"`
	VaultIDSell         uint64       `json:"vault_id_sell"`
}

type CreateTradeResponse struct {
	TradeID int64  `json:"trade_id"`
	Status  string `json:"status"`
}

// GetSignableTrade returns the payload to sign for a trade.
func (s *TradesService) GetSignableTrade(ctx context.Context, req SignableTradeRequest) (*SignableTradeResponse, error) {
	var resp SignableTradeResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v3/signable-trade-details", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTrade submits a signed trade.
func (s *TradesService) CreateTrade(ctx context.Context, ethAddress, ethSignature string, req CreateTradeRequest) (*CreateTradeResponse, error) {
	var resp CreateTradeResponse
	r := request{method: http.MethodPost, path: "/v3/trades", headers: signedBy(ethAddress, ethSignature), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
