package api

import (
	"context"
	"net/http"
	"net/url"
)

// BalancesService reads Layer-2 balances.
type BalancesService struct{ c *Client }

type Balance struct {
	Symbol              string `json:"symbol"`
	Balance             string `json:"balance"`
	PreparingWithdrawal string `json:"preparing_withdrawal"`
	Withdrawable        string `json:"withdrawable"`
	TokenAddress        string `json:"token_address"`
}

type ListBalancesResponse struct {
	Result    []Balance `json:"result"`
	Cursor    string    `json:"cursor"`
	Remaining int       `json:"remaining"`
}

// GetBalance returns the owner's balance of one token.
func (s *BalancesService) GetBalance(ctx context.Context, owner, address string) (*Balance, error) {
	var resp Balance
	path := "/v2/balances/" + url.PathEscape(owner) + "/" + url.PathEscape(address)
	if err := s.c.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBalances returns all of the owner's balances.
func (s *BalancesService) ListBalances(ctx context.Context, owner string, params ListParams) (*ListBalancesResponse, error) {
	var resp ListBalancesResponse
	r := request{method: http.MethodGet, path: "/v2/balances/" + url.PathEscape(owner), query: params.values()}
	if err := s.c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
