// Package cmd holds the commands of the flash1 CLI.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/client"
	"github.com/flash1-exchange/flash1-go/config"
	"github.com/flash1-exchange/flash1-go/evm"
	"github.com/flash1-exchange/flash1-go/stark"
)

var (
	errNoWallet   = errors.New("no wallet configured: set wallet.private_key, wallet.keystore_path or wallet.mnemonic")
	errNoStarkKey = errors.New("no stark key configured: set stark.private_key or a wallet")
)

// app is the state shared by the commands of one invocation.
type app struct {
	configPath string
	network    string

	settings *config.Settings
	logger   *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "flash1",
		Short:        "Flash1 exchange command-line client",
		Long:         "Register, deposit, withdraw and inspect balances on the Flash1 exchange.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./flash1.yaml or $HOME/.flash1/flash1.yaml)")
	root.PersistentFlags().StringVarP(&a.network, "network", "n", "", "network to use: mainnet, goerli or custom")

	root.AddCommand(
		newStarkCmd(a),
		newRegisterCmd(a),
		newIsRegisteredCmd(a),
		newDepositCmd(a),
		newSelfMintCmd(a),
		newCompleteWithdrawalCmd(a),
		newBalancesCmd(a),
	)

	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) load() error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.network != "" {
		settings.Network = a.network
	}

	logger, err := settings.App.Logger()
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = logger
	return nil
}

// client builds an SDK client. starkKey is the STARK public key ERC-20 deposits are
// credited to and may be empty for commands that do not deposit.
func (a *app) client(starkKey string) (*client.Client, error) {
	cfg, err := a.settings.Configuration()
	if err != nil {
		return nil, err
	}

	user := flash1.UserConfiguration{Stark: flash1.KeyPair{PublicKey: starkKey}}
	return client.New(cfg, user, client.WithLogger(a.logger))
}

// ethSigner opens the configured wallet. Without an RPC URL the signer is pinned to the
// environment's chain and can only sign messages. Callers must Close it.
func (a *app) ethSigner() (*evm.Signer, error) {
	w := a.settings.Wallet

	var opts []evm.SignerOption
	switch {
	case w.PrivateKey != "":
		opts = append(opts, evm.WithPrivateKey(w.PrivateKey))
	case w.KeystorePath != "":
		opts = append(opts, evm.WithKeystore(w.KeystorePath, w.Password))
	case w.Mnemonic != "":
		opts = append(opts, evm.WithMnemonic(w.Mnemonic, w.AccountIndex))
	default:
		return nil, errNoWallet
	}

	if a.settings.Eth.RPCURL != "" {
		opts = append(opts, evm.WithRPC(a.settings.Eth.RPCURL))
	} else {
		cfg, err := a.settings.Configuration()
		if err != nil {
			return nil, err
		}
		opts = append(opts, evm.WithChainID(cfg.Eth.ChainID))
	}

	return evm.NewSigner(opts...)
}

// starkSigner returns the configured STARK key, or derives it from the wallet when none
// is set.
func (a *app) starkSigner(ctx context.Context, eth flash1.EthSigner) (*stark.Signer, error) {
	if a.settings.Stark.PrivateKey != "" {
		return stark.NewSigner(a.settings.Stark.PrivateKey)
	}
	if eth == nil {
		return nil, errNoStarkKey
	}
	return stark.GenerateKey(ctx, eth)
}

// wallet opens both signers.
func (a *app) wallet(ctx context.Context) (flash1.WalletConnection, *evm.Signer, error) {
	eth, err := a.ethSigner()
	if err != nil {
		return flash1.WalletConnection{}, nil, err
	}

	starkSigner, err := a.starkSigner(ctx, eth)
	if err != nil {
		eth.Close()
		return flash1.WalletConnection{}, nil, err
	}

	return flash1.WalletConnection{EthSigner: eth, StarkSigner: starkSigner}, eth, nil
}
