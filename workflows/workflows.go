// Package workflows sequences REST API calls, contract calls and signatures into the
// exchange operations exposed by the SDK. Each operation runs its steps in order and stops
// at the first failure; nothing is retried or rolled back.
package workflows

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/contracts"
	"github.com/flash1-exchange/flash1-go/encoding"
)

// Workflows holds the API services and contract bindings of one environment.
type Workflows struct {
	config flash1.Configuration
	user   flash1.UserConfiguration

	api  *api.Client
	core *contracts.Core

	logger     *zap.Logger
	httpClient *http.Client
	now        func() time.Time
}

// Option configures Workflows.
type Option func(*Workflows) error

// WithLogger sets the logger. Workflows log each step at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Workflows) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		w.logger = logger
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(w *Workflows) error {
		w.httpClient = httpClient
		return nil
	}
}

// New creates the workflows for cfg. user supplies the STARK public key used by ERC-20 deposits.
func New(cfg flash1.Configuration, user flash1.UserConfiguration, opts ...Option) (*Workflows, error) {
	if strings.TrimSpace(cfg.API.BasePath) == "" {
		return nil, flash1.ErrEmptyBasePath
	}

	w := &Workflows{
		config: cfg,
		user:   user,
		core:   contracts.NewCore(cfg.Eth.CoreContractAddress),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	apiOpts := []api.Option{api.WithLogger(w.logger)}
	if w.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(w.httpClient))
	}
	w.api = api.New(cfg.API, apiOpts...)

	return w, nil
}

// Config returns the environment configuration.
func (w *Workflows) Config() flash1.Configuration {
	return w.config
}

// validateChain fails with ErrWrongNetwork unless the signer is on the configured chain.
func (w *Workflows) validateChain(ctx context.Context, signer flash1.EthSigner) error {
	chainID, err := signer.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if chainID.Cmp(big.NewInt(w.config.Eth.ChainID)) != 0 {
		w.logger.Debug("chain mismatch",
			zap.String("wallet_chain", chainID.String()),
			zap.Int64("expected_chain", w.config.Eth.ChainID),
		)
		return flash1.ErrWrongNetwork
	}
	return nil
}

// signRaw signs message with the Ethereum key and serializes it the way the API expects.
func signRaw(ctx context.Context, signer flash1.EthSigner, message string) (string, error) {
	sig, err := signer.SignMessage(ctx, []byte(message))
	if err != nil {
		return "", fmt.Errorf("eth sign: %w", err)
	}
	return encoding.SerializeEthSignature(sig)
}

// authorise signs the current unix timestamp, producing the headers of privileged calls.
func (w *Workflows) authorise(ctx context.Context, signer flash1.EthSigner) (api.Auth, error) {
	timestamp := strconv.FormatInt(w.now().Unix(), 10)
	signature, err := signRaw(ctx, signer, timestamp)
	if err != nil {
		return api.Auth{}, fmt.Errorf("authorisation headers: %w", err)
	}
	return api.Auth{
		Address:   signer.Address().Hex(),
		Signature: signature,
		Timestamp: timestamp,
	}, nil
}

// signableToken converts a token descriptor to the API's token shape.
func signableToken(token flash1.Token) (api.SignableToken, error) {
	switch t := token.(type) {
	case flash1.ETHToken:
		return api.SignableToken{Type: string(flash1.TokenTypeETH), Data: api.SignableTokenData{Decimals: 18}}, nil
	case flash1.ERC20Token:
		return api.SignableToken{Type: string(flash1.TokenTypeERC20), Data: api.SignableTokenData{TokenAddress: t.TokenAddress}}, nil
	case flash1.ERC20Collateral:
		return api.SignableToken{Type: string(flash1.TokenTypeERC20), Data: api.SignableTokenData{TokenAddress: t.TokenAddress}}, nil
	default:
		return api.SignableToken{}, fmt.Errorf("%w: %T", flash1.ErrUnsupportedToken, token)
	}
}
