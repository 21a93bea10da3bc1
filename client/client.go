// Package client is the entry point of the SDK. Client exposes every workflow and, unless
// disabled, rewrites the errors they return into *flash1.Error.
package client

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/workflows"
)

// Client is the Flash1 SDK client for one environment.
type Client struct {
	workflows *workflows.Workflows

	logger     *zap.Logger
	httpClient *http.Client
	normalize  bool
}

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets the logger passed to the workflows.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithoutErrorNormalization returns workflow errors unchanged.
func WithoutErrorNormalization() Option {
	return func(c *Client) error {
		c.normalize = false
		return nil
	}
}

// New creates a client for cfg.
func New(cfg flash1.Configuration, user flash1.UserConfiguration, opts ...Option) (*Client, error) {
	c := &Client{
		logger:    zap.NewNop(),
		normalize: true,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	wfOpts := []workflows.Option{workflows.WithLogger(c.logger)}
	if c.httpClient != nil {
		wfOpts = append(wfOpts, workflows.WithHTTPClient(c.httpClient))
	}
	w, err := workflows.New(cfg, user, wfOpts...)
	if err != nil {
		return nil, c.wrap("new", err)
	}
	c.workflows = w

	return c, nil
}

func (c *Client) wrap(op string, err error) error {
	if err == nil || !c.normalize {
		return err
	}
	return normalize(op, err)
}

func result[T any](c *Client, op string, v T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, c.wrap(op, err)
	}
	return v, nil
}

// Deposit moves ETH (in wei) or collateral (in token units) into the exchange.
func (c *Client) Deposit(ctx context.Context, signer flash1.EthSigner, deposit flash1.TokenAmount) (*types.Transaction, error) {
	tx, err := c.workflows.Deposit(ctx, signer, deposit)
	return result(c, "deposit", tx, err)
}

// SelfMintCollateral mints test collateral. Test networks only.
func (c *Client) SelfMintCollateral(ctx context.Context, signer flash1.EthSigner, amount string) (*types.Transaction, error) {
	tx, err := c.workflows.SelfMintCollateral(ctx, signer, amount)
	return result(c, "self_mint_collateral", tx, err)
}

// RegisterOffchain registers the wallet with the API.
func (c *Client) RegisterOffchain(ctx context.Context, wc flash1.WalletConnection) (*api.RegisterUserResponse, error) {
	resp, err := c.workflows.RegisterOffchain(ctx, wc)
	return result(c, "register_offchain", resp, err)
}

// RegisterOnchain registers the wallet on the core contract.
func (c *Client) RegisterOnchain(ctx context.Context, wc flash1.WalletConnection) (*types.Transaction, error) {
	tx, err := c.workflows.RegisterOnchain(ctx, wc)
	return result(c, "register_onchain", tx, err)
}

// IsRegisteredOnchain reports whether the wallet's STARK key is registered on-chain.
func (c *Client) IsRegisteredOnchain(ctx context.Context, wc flash1.WalletConnection) (bool, error) {
	ok, err := c.workflows.IsRegisteredOnchain(ctx, wc)
	return result(c, "is_registered_onchain", ok, err)
}

// IsRegisteredOffchain reports whether the API knows the wallet's STARK key.
func (c *Client) IsRegisteredOffchain(ctx context.Context, wc flash1.WalletConnection) (bool, error) {
	ok, err := c.workflows.IsRegisteredOffchain(ctx, wc)
	return result(c, "is_registered_offchain", ok, err)
}

// PrepareWithdrawal creates a withdrawal on the exchange.
func (c *Client) PrepareWithdrawal(ctx context.Context, wc flash1.WalletConnection, amount flash1.TokenAmount) (*api.CreateWithdrawalResponse, error) {
	resp, err := c.workflows.PrepareWithdrawal(ctx, wc, amount)
	return result(c, "prepare_withdrawal", resp, err)
}

// CompleteWithdrawal claims prepared funds on-chain.
func (c *Client) CompleteWithdrawal(ctx context.Context, signer flash1.EthSigner, starkKey string, token flash1.Token) (*types.Transaction, error) {
	tx, err := c.workflows.CompleteWithdrawal(ctx, signer, starkKey, token)
	return result(c, "complete_withdrawal", tx, err)
}

// ForcedTrade submits a forced trade request.
func (c *Client) ForcedTrade(ctx context.Context, signer flash1.EthSigner, req flash1.ForcedTradeRequest) (*types.Transaction, error) {
	tx, err := c.workflows.ForcedTrade(ctx, signer, req)
	return result(c, "forced_trade", tx, err)
}

// ForcedWithdrawal submits a forced withdrawal request.
func (c *Client) ForcedWithdrawal(ctx context.Context, signer flash1.EthSigner, req flash1.ForcedWithdrawalRequest) (*types.Transaction, error) {
	tx, err := c.workflows.ForcedWithdrawal(ctx, signer, req)
	return result(c, "forced_withdrawal", tx, err)
}

// CreateOrder signs and submits an order.
func (c *Client) CreateOrder(ctx context.Context, wc flash1.WalletConnection, req flash1.UnsignedOrderRequest) (*api.CreateOrderResponse, error) {
	resp, err := c.workflows.CreateOrder(ctx, wc, req)
	return result(c, "create_order", resp, err)
}

// CancelOrder signs and submits an order cancellation.
func (c *Client) CancelOrder(ctx context.Context, wc flash1.WalletConnection, orderID int64) (*api.CancelOrderResponse, error) {
	resp, err := c.workflows.CancelOrder(ctx, wc, orderID)
	return result(c, "cancel_order", resp, err)
}

// CreateTrade signs and submits a trade.
func (c *Client) CreateTrade(ctx context.Context, wc flash1.WalletConnection, req flash1.UnsignedTradeRequest) (*api.CreateTradeResponse, error) {
	resp, err := c.workflows.CreateTrade(ctx, wc, req)
	return result(c, "create_trade", resp, err)
}

func (c *Client) CreateProject(ctx context.Context, signer flash1.EthSigner, req api.CreateProjectRequest) (*api.CreateProjectResponse, error) {
	resp, err := c.workflows.CreateProject(ctx, signer, req)
	return result(c, "create_project", resp, err)
}

func (c *Client) GetProject(ctx context.Context, signer flash1.EthSigner, id string) (*api.Project, error) {
	resp, err := c.workflows.GetProject(ctx, signer, id)
	return result(c, "get_project", resp, err)
}

func (c *Client) GetProjects(ctx context.Context, signer flash1.EthSigner, params api.ListParams) (*api.GetProjectsResponse, error) {
	resp, err := c.workflows.GetProjects(ctx, signer, params)
	return result(c, "get_projects", resp, err)
}

func (c *Client) CreateCollection(ctx context.Context, signer flash1.EthSigner, req api.CreateCollectionRequest) (*api.Collection, error) {
	resp, err := c.workflows.CreateCollection(ctx, signer, req)
	return result(c, "create_collection", resp, err)
}

func (c *Client) UpdateCollection(ctx context.Context, signer flash1.EthSigner, address string, req api.UpdateCollectionRequest) (*api.Collection, error) {
	resp, err := c.workflows.UpdateCollection(ctx, signer, address, req)
	return result(c, "update_collection", resp, err)
}

func (c *Client) AddMetadataSchemaToCollection(ctx context.Context, signer flash1.EthSigner, address string, req api.AddMetadataSchemaToCollectionRequest) (*api.SuccessResponse, error) {
	resp, err := c.workflows.AddMetadataSchemaToCollection(ctx, signer, address, req)
	return result(c, "add_metadata_schema", resp, err)
}

func (c *Client) UpdateMetadataSchemaByName(ctx context.Context, signer flash1.EthSigner, address, name string, req api.MetadataSchemaRequest) (*api.SuccessResponse, error) {
	resp, err := c.workflows.UpdateMetadataSchemaByName(ctx, signer, address, name, req)
	return result(c, "update_metadata_schema", resp, err)
}

func (c *Client) ListMetadataRefreshes(ctx context.Context, signer flash1.EthSigner, collectionAddress string, params api.ListParams) (*api.ListMetadataRefreshesResponse, error) {
	resp, err := c.workflows.ListMetadataRefreshes(ctx, signer, collectionAddress, params)
	return result(c, "list_metadata_refreshes", resp, err)
}

func (c *Client) GetMetadataRefreshErrors(ctx context.Context, signer flash1.EthSigner, refreshID string, params api.ListParams) (*api.MetadataRefreshErrorsResponse, error) {
	resp, err := c.workflows.GetMetadataRefreshErrors(ctx, signer, refreshID, params)
	return result(c, "get_metadata_refresh_errors", resp, err)
}

func (c *Client) GetMetadataRefreshResults(ctx context.Context, signer flash1.EthSigner, refreshID string) (*api.MetadataRefresh, error) {
	resp, err := c.workflows.GetMetadataRefreshResults(ctx, signer, refreshID)
	return result(c, "get_metadata_refresh_results", resp, err)
}

func (c *Client) CreateMetadataRefresh(ctx context.Context, signer flash1.EthSigner, req api.CreateMetadataRefreshRequest) (*api.CreateMetadataRefreshResponse, error) {
	resp, err := c.workflows.CreateMetadataRefresh(ctx, signer, req)
	return result(c, "create_metadata_refresh", resp, err)
}

// GetBalance returns owner's balance of the token at address.
func (c *Client) GetBalance(ctx context.Context, owner, address string) (*api.Balance, error) {
	resp, err := c.workflows.GetBalance(ctx, owner, address)
	return result(c, "get_balance", resp, err)
}

// ListBalances returns all of owner's balances.
func (c *Client) ListBalances(ctx context.Context, owner string, params api.ListParams) (*api.ListBalancesResponse, error) {
	resp, err := c.workflows.ListBalances(ctx, owner, params)
	return result(c, "list_balances", resp, err)
}
