package workflows

import (
	"context"

	"github.com/flash1-exchange/flash1-go/api"
)

// GetBalance returns owner's balance of the token at address.
func (w *Workflows) GetBalance(ctx context.Context, owner, address string) (*api.Balance, error) {
	return w.api.Balances.GetBalance(ctx, owner, address)
}

// ListBalances returns all of owner's balances.
func (w *Workflows) ListBalances(ctx context.Context, owner string, params api.ListParams) (*api.ListBalancesResponse, error) {
	return w.api.Balances.ListBalances(ctx, owner, params)
}
