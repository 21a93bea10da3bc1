package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/api"
	"github.com/flash1-exchange/flash1-go/config"
)

// tokenFlags selects a token on the command line.
type tokenFlags struct {
	kind         string
	collateral   string
	address      string
	assetID      string
	quantization int64
}

func (f *tokenFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "token", "t", "collateral", "token kind: eth, erc20 or collateral")
	cmd.Flags().StringVar(&f.collateral, "collateral", "", "known collateral token (default SELF_MINT_TESTNET, or USDT_MAINNET on mainnet)")
	cmd.Flags().StringVar(&f.address, "token-address", "", "token contract address")
	cmd.Flags().StringVar(&f.assetID, "asset-id", "", "StarkEx asset ID of a custom collateral token")
	cmd.Flags().Int64Var(&f.quantization, "quantization", 0, "quantization of a custom collateral token (0 reads decimals on-chain)")
}

func (f *tokenFlags) token(network string) (flash1.Token, error) {
	switch strings.ToLower(f.kind) {
	case "eth":
		return flash1.ETHToken{}, nil
	case "erc20":
		return flash1.ERC20Token{TokenAddress: f.address}, nil
	case "collateral":
		if f.address != "" {
			return flash1.ERC20Collateral{
				TokenAddress: f.address,
				AssetID:      f.assetID,
				Quantization: f.quantization,
			}, nil
		}
		name := flash1.CollateralTokenName(f.collateral)
		if name == "" {
			name = flash1.SelfMintTestnet
			if strings.EqualFold(network, config.NetworkMainnet) {
				name = flash1.USDTMainnet
			}
		}
		return flash1.CollateralToken(name)
	default:
		return nil, fmt.Errorf("%w: %q", flash1.ErrUnsupportedToken, f.kind)
	}
}

func newDepositCmd(a *app) *cobra.Command {
	var tf tokenFlags

	cmd := &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit ETH or collateral into the exchange",
		Long: `Deposit funds into the wallet's default vault. ETH amounts are in wei, collateral
amounts in token units. Needs eth.rpc_url.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			token, err := tf.token(a.settings.Network)
			if err != nil {
				return err
			}

			wc, eth, err := a.wallet(ctx)
			if err != nil {
				return err
			}
			defer eth.Close()

			c, err := a.client(wc.StarkSigner.Address())
			if err != nil {
				return err
			}

			tx, err := c.Deposit(ctx, eth, flash1.TokenAmount{Token: token, Amount: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tx.Hash().Hex())
			return nil
		},
	}

	tf.register(cmd)
	return cmd
}

func newSelfMintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "self-mint <amount>",
		Short: "Mint test collateral to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eth, err := a.ethSigner()
			if err != nil {
				return err
			}
			defer eth.Close()

			c, err := a.client("")
			if err != nil {
				return err
			}

			tx, err := c.SelfMintCollateral(cmd.Context(), eth, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tx.Hash().Hex())
			return nil
		},
	}
}

func newCompleteWithdrawalCmd(a *app) *cobra.Command {
	var (
		tf       tokenFlags
		starkKey string
	)

	cmd := &cobra.Command{
		Use:   "complete-withdrawal",
		Short: "Withdraw prepared funds to the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			token, err := tf.token(a.settings.Network)
			if err != nil {
				return err
			}

			wc, eth, err := a.wallet(ctx)
			if err != nil {
				return err
			}
			defer eth.Close()

			if starkKey == "" {
				starkKey = wc.StarkSigner.Address()
			}

			c, err := a.client(wc.StarkSigner.Address())
			if err != nil {
				return err
			}

			tx, err := c.CompleteWithdrawal(ctx, eth, starkKey, token)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tx.Hash().Hex())
			return nil
		},
	}

	tf.register(cmd)
	cmd.Flags().StringVar(&starkKey, "stark-key", "", "STARK key that owns the withdrawal (default the configured key)")
	return cmd
}

func newBalancesCmd(a *app) *cobra.Command {
	var (
		tokenAddress string
		pageSize     int
		cursor       string
	)

	cmd := &cobra.Command{
		Use:   "balances [owner]",
		Short: "List exchange balances",
		Long:  "List the balances of owner, or of the configured wallet when no owner is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var owner string
			if len(args) == 1 {
				owner = args[0]
			} else {
				eth, err := a.ethSigner()
				if err != nil {
					return err
				}
				owner = eth.Address().Hex()
				eth.Close()
			}

			c, err := a.client("")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if tokenAddress != "" {
				bal, err := c.GetBalance(ctx, owner, tokenAddress)
				if err != nil {
					return err
				}
				printBalance(out, *bal)
				return nil
			}

			resp, err := c.ListBalances(ctx, owner, api.ListParams{PageSize: pageSize, Cursor: cursor})
			if err != nil {
				return err
			}
			for _, bal := range resp.Result {
				printBalance(out, bal)
			}
			if resp.Remaining > 0 {
				fmt.Fprintf(out, "next cursor: %s\n", resp.Cursor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenAddress, "token-address", "", "show only this token")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")
	cmd.Flags().StringVar(&cursor, "cursor", "", "page cursor from a previous call")
	return cmd
}

func printBalance(w io.Writer, bal api.Balance) {
	fmt.Fprintf(w, "%s\tbalance=%s\tpreparing=%s\twithdrawable=%s\n",
		bal.Symbol, bal.Balance, bal.PreparingWithdrawal, bal.Withdrawable)
}
