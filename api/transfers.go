package api

import (
	"context"
	"net/http"
)

// SignableToken is the token descriptor accepted by the signable endpoints.
type SignableToken struct {
	Type string            `json:"type"`
	Data SignableTokenData `json:"data"`
}

type SignableTokenData struct {
	Decimals     int    `json:"decimals,omitempty"`
	TokenAddress string `json:"token_address,omitempty"`
	TokenID      string `json:"token_id,omitempty"`
}

// DepositsService prepares deposits.
type DepositsService struct{ c *Client }

type SignableDepositRequest struct {
	User   string        `json:"user"`
	Token  SignableToken `json:"token"`
	Amount string        `json:"amount"`
}

type SignableDepositResponse struct {
	Amount   string `json:"amount"`
	AssetID  string `json:"asset_id"`
	Nonce    int64  `json:"nonce"`
	StarkKey string `json:"stark_key"`
	VaultID  uint64 `json:"vault_id"`
}

// GetSignableDeposit returns the STARK key and vault a deposit should be credited to.
func (s *DepositsService) GetSignableDeposit(ctx context.Context, req SignableDepositRequest) (*SignableDepositResponse, error) {
	var resp SignableDepositResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v1/signable-deposit-details", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WithdrawalsService prepares withdrawals.
type WithdrawalsService struct{ c *Client }

type SignableWithdrawalRequest struct {
	User   string        `json:"user"`
	Token  SignableToken `json:"token"`
	Amount string        `json:"amount"`
}

type SignableWithdrawalResponse struct {
	Amount          string `json:"amount"`
	AssetID         string `json:"asset_id"`
	Nonce           int64  `json:"nonce"`
	PayloadHash     string `json:"payload_hash"`
	SignableMessage string `json:"signable_message"`
	StarkKey        string `json:"stark_key"`
	VaultID         uint64 `json:"vault_id"`
}

type CreateWithdrawalRequest struct {
	Amount         string `json:"amount"`
	AssetID        string `json:"asset_id"`
	Nonce          int64  `json:"nonce"`
	StarkKey       string `json:"stark_key"`
	StarkSignature string `json:"stark_signature"`
	VaultID        uint64 `json:"vault_id"`
}

type CreateWithdrawalResponse struct {
	WithdrawalID int64  `json:"withdrawal_id"`
	Status       string `json:"status"`
	TimeCreated  int64  `json:"time_created"`
}

// GetSignableWithdrawal returns the payload to sign for a withdrawal.
func (s *WithdrawalsService) GetSignableWithdrawal(ctx context.Context, req SignableWithdrawalRequest) (*SignableWithdrawalResponse, error) {
	var resp SignableWithdrawalResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v1/signable-withdrawal-details", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateWithdrawal submits a signed withdrawal. ethAddress and ethSignature authorise it.
func (s *WithdrawalsService) CreateWithdrawal(ctx context.Context, ethAddress, ethSignature string, req CreateWithdrawalRequest) (*CreateWithdrawalResponse, error) {
	var resp CreateWithdrawalResponse
	r := request{method: http.MethodPost, path: "/v1/withdrawals", headers: signedBy(ethAddress, ethSignature), body: req}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
