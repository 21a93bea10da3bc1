package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var onchain bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the wallet with the exchange",
		Long: `Register the wallet's STARK key with the Flash1 API. With --onchain the key is also
registered on the core contract, which needs eth.rpc_url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			wc, eth, err := a.wallet(ctx)
			if err != nil {
				return err
			}
			defer eth.Close()

			c, err := a.client(wc.StarkSigner.Address())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			resp, err := c.RegisterOffchain(ctx, wc)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "offchain: %s\n", resp.TxHash)

			if onchain {
				tx, err := c.RegisterOnchain(ctx, wc)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "onchain:  %s\n", tx.Hash().Hex())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&onchain, "onchain", false, "also register on the core contract")
	return cmd
}

func newIsRegisteredCmd(a *app) *cobra.Command {
	var onchain bool

	cmd := &cobra.Command{
		Use:   "is-registered",
		Short: "Report whether the wallet is registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			wc, eth, err := a.wallet(ctx)
			if err != nil {
				return err
			}
			defer eth.Close()

			c, err := a.client(wc.StarkSigner.Address())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			registered, err := c.IsRegisteredOffchain(ctx, wc)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "offchain: %t\n", registered)

			if onchain {
				registered, err = c.IsRegisteredOnchain(ctx, wc)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "onchain:  %t\n", registered)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&onchain, "onchain", false, "also query the core contract")
	return cmd
}
