package api

import (
	"context"
	"net/http"
	"net/url"
)

// UsersService handles user registration.
type UsersService struct{ c *Client }

type SignableRegistrationRequest struct {
	EtherKey string `json:"ether_key"`
	StarkKey string `json:"stark_key"`
}

type SignableRegistrationResponse struct {
	OperatorSignature string `json:"operator_signature"`
	PayloadHash       string `json:"payload_hash"`
}

type SignableRegistrationOffchainResponse struct {
	SignableMessage string `json:"signable_message"`
	PayloadHash     string `json:"payload_hash"`
}

type RegisterUserRequest struct {
	EthSignature   string `json:"eth_signature"`
	EtherKey       string `json:"ether_key"`
	StarkSignature string `json:"stark_signature"`
	StarkKey       string `json:"stark_key"`
}

type RegisterUserResponse struct {
	TxHash string `json:"tx_hash"`
}

type GetUsersResponse struct {
	Accounts []string `json:"accounts"`
}

// GetSignableRegistration returns the operator signature for on-chain registration.
func (s *UsersService) GetSignableRegistration(ctx context.Context, req SignableRegistrationRequest) (*SignableRegistrationResponse, error) {
	var resp SignableRegistrationResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v1/signable-registration", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSignableRegistrationOffchain returns the message and payload hash to sign for
// off-chain registration.
func (s *UsersService) GetSignableRegistrationOffchain(ctx context.Context, req SignableRegistrationRequest) (*SignableRegistrationOffchainResponse, error) {
	var resp SignableRegistrationOffchainResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v1/signable-registration-offchain", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterUser submits both registration signatures.
func (s *UsersService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterUserResponse, error) {
	var resp RegisterUserResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v1/users", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUsers returns the STARK keys registered to an Ethereum address.
func (s *UsersService) GetUsers(ctx context.Context, user string) (*GetUsersResponse, error) {
	var resp GetUsersResponse
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/v1/users/" + url.PathEscape(user)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EncodingService encodes token descriptors into StarkEx asset identifiers.
type EncodingService struct{ c *Client }

type EncodeAssetTokenData struct {
	TokenAddress string `json:"token_address,omitempty"`
	TokenID      string `json:"token_id,omitempty"`
}

type EncodeAssetToken struct {
	Type string                `json:"type"`
	Data *EncodeAssetTokenData `json:"data,omitempty"`
}

type EncodeAssetRequest struct {
	Token EncodeAssetToken `json:"token"`
}

type EncodeAssetResponse struct {
	AssetID   string `json:"asset_id"`
	AssetType string `json:"asset_type"`
}

// EncodeAsset encodes a token. assetType is "asset" or "mintable-asset".
func (s *EncodingService) EncodeAsset(ctx context.Context, assetType string, req EncodeAssetRequest) (*EncodeAssetResponse, error) {
	var resp EncodeAssetResponse
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/v1/encode/" + url.PathEscape(assetType), body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
