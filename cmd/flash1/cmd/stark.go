package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flash1-exchange/flash1-go/encoding"
	"github.com/flash1-exchange/flash1-go/stark"
)

func newStarkCmd(a *app) *cobra.Command {
	starkCmd := &cobra.Command{
		Use:   "stark",
		Short: "STARK key utilities",
	}
	starkCmd.AddCommand(
		newStarkAddressCmd(a),
		newStarkVaultIDCmd(a),
		newStarkDeriveCmd(a),
	)
	return starkCmd
}

func newStarkAddressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the STARK public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := a.configuredStarkSigner(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signer.Address())
			return nil
		},
	}
}

func newStarkVaultIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vault-id [public-key]",
		Short: "Print the default vault ID of a STARK public key",
		Long:  "Print the default vault ID of the given STARK public key, or of the configured key when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var publicKey string
			if len(args) == 1 {
				publicKey = args[0]
			} else {
				signer, err := a.configuredStarkSigner(cmd)
				if err != nil {
					return err
				}
				publicKey = signer.Address()
			}

			vaultID, err := stark.DeriveVaultID(publicKey)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), vaultID)
			return nil
		},
	}
}

func newStarkDeriveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "derive",
		Short: "Derive the STARK key pair from the wallet",
		Long: `Sign the key derivation message with the configured wallet and print the STARK
key pair derived from the signature. The private key can be stored as stark.private_key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eth, err := a.ethSigner()
			if err != nil {
				return err
			}
			defer eth.Close()

			sig, err := eth.SignMessage(cmd.Context(), []byte(stark.DefaultSignatureMessage))
			if err != nil {
				return err
			}
			priv, err := stark.DeriveKeyFromEthSignature(eth.Address(), sig)
			if err != nil {
				return err
			}
			privateKey := encoding.SanitizeHex(priv.Text(16))

			signer, err := stark.NewSigner(privateKey)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "eth address:  %s\n", eth.Address().Hex())
			fmt.Fprintf(out, "public key:   %s\n", signer.Address())
			fmt.Fprintf(out, "private key:  %s\n", privateKey)
			return nil
		},
	}
}

// configuredStarkSigner returns the STARK signer from settings, opening the wallet only
// when the key has to be derived.
func (a *app) configuredStarkSigner(cmd *cobra.Command) (*stark.Signer, error) {
	if a.settings.Stark.PrivateKey != "" {
		return a.starkSigner(cmd.Context(), nil)
	}

	eth, err := a.ethSigner()
	if err != nil {
		return nil, err
	}
	defer eth.Close()

	return a.starkSigner(cmd.Context(), eth)
}
