package cmd

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/internal/apitest"
	"github.com/flash1-exchange/flash1-go/stark"
)

const starkPrivateKey = "0x3c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc"

// env points the CLI at srv on chain 5 with a fresh wallet. A nil srv leaves the API
// unreachable.
func env(t *testing.T, srv *apitest.Server) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	t.Setenv("FLASH1_APP_LOG_LEVEL", "error")
	t.Setenv("FLASH1_NETWORK", "custom")
	t.Setenv("FLASH1_ETH_CHAIN_ID", "5")
	t.Setenv("FLASH1_ETH_CORE_CONTRACT_ADDRESS", "0x2785680c010510c4ef5be451c69c9d6ee748b3de")
	t.Setenv("FLASH1_WALLET_PRIVATE_KEY", hex.EncodeToString(crypto.FromECDSA(key)))
	t.Setenv("FLASH1_STARK_PRIVATE_KEY", starkPrivateKey)
	basePath := "http://127.0.0.1:1"
	if srv != nil {
		basePath = srv.URL
	}
	t.Setenv("FLASH1_API_BASE_PATH", basePath)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStarkAddress(t *testing.T) {
	env(t, nil)

	signer, err := stark.NewSigner(starkPrivateKey)
	require.NoError(t, err)

	out, err := run(t, "stark", "address")
	require.NoError(t, err)
	assert.Equal(t, signer.Address()+"\n", out)
}

func TestStarkVaultID(t *testing.T) {
	env(t, nil)

	signer, err := stark.NewSigner(starkPrivateKey)
	require.NoError(t, err)
	want, err := stark.DeriveVaultID(signer.Address())
	require.NoError(t, err)

	out, err := run(t, "stark", "vault-id")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	out, err = run(t, "stark", "vault-id", signer.Address())
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	_, err = run(t, "stark", "vault-id", "0xzz")
	assert.ErrorIs(t, err, flash1.ErrInvalidKey)
}

func TestStarkDerive(t *testing.T) {
	env(t, nil)

	out, err := run(t, "stark", "derive")
	require.NoError(t, err)

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, ok := strings.Cut(line, ":")
		require.True(t, ok, line)
		fields[k] = strings.TrimSpace(v)
	}

	signer, err := stark.NewSigner(fields["private key"])
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), fields["public key"])

	// Deterministic for a given wallet.
	again, err := run(t, "stark", "derive")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRegister(t *testing.T) {
	srv := apitest.NewServer(t)
	env(t, srv)

	out, err := run(t, "register")
	require.NoError(t, err)
	assert.Equal(t, "offchain: 0x01\n", out)
	assert.Equal(t, []string{
		"POST /v1/signable-registration-offchain",
		"POST /v1/users",
	}, srv.Routes())
}

func TestIsRegistered(t *testing.T) {
	srv := apitest.NewServer(t)
	env(t, srv)

	signer, err := stark.NewSigner(starkPrivateKey)
	require.NoError(t, err)
	srv.Handle("GET /v1/users/{user}", http.StatusOK, map[string]any{"accounts": []string{signer.Address()}})

	out, err := run(t, "is-registered")
	require.NoError(t, err)
	assert.Equal(t, "offchain: true\n", out)

	srv.Handle("GET /v1/users/{user}", http.StatusNotFound, map[string]string{"code": "not_found"})
	out, err = run(t, "is-registered")
	require.NoError(t, err)
	assert.Equal(t, "offchain: false\n", out)
}

func TestBalances(t *testing.T) {
	srv := apitest.NewServer(t)
	env(t, srv)

	out, err := run(t, "balances", "0xowner")
	require.NoError(t, err)
	assert.Contains(t, out, "USDC\tbalance=1000000")

	req, ok := srv.Last("GET /v2/balances/{owner}")
	require.True(t, ok)
	assert.Equal(t, "/v2/balances/0xowner", req.Path)

	out, err = run(t, "balances", "0xowner", "--token-address", "0xd44BB808bfE43095dBb94c83077766382D63952a")
	require.NoError(t, err)
	assert.Equal(t, "USDC\tbalance=1000000\tpreparing=\twithdrawable=0\n", out)
}

func TestAPIErrorIsReturned(t *testing.T) {
	srv := apitest.NewServer(t)
	env(t, srv)
	srv.Handle("GET /v2/balances/{owner}", http.StatusInternalServerError, map[string]string{"code": "internal", "message": "boom"})

	_, err := run(t, "balances", "0xowner")

	var sdkErr *flash1.Error
	require.ErrorAs(t, err, &sdkErr)
	assert.Equal(t, flash1.ErrCodeAPI, sdkErr.Code)
}

func TestMissingWallet(t *testing.T) {
	env(t, nil)
	t.Setenv("FLASH1_WALLET_PRIVATE_KEY", "")

	_, err := run(t, "balances")
	assert.ErrorIs(t, err, errNoWallet)
}

func TestUnknownNetwork(t *testing.T) {
	env(t, nil)

	_, err := run(t, "--network", "ropsten", "balances", "0xowner")
	assert.ErrorContains(t, err, "unknown network")
}

func TestSelfMintRejectedOnMainnet(t *testing.T) {
	env(t, nil)

	_, err := run(t, "--network", "mainnet", "self-mint", "10")
	assert.ErrorIs(t, err, flash1.ErrSelfMintUnavailable)
}

func TestTokenFlags(t *testing.T) {
	selfMint, err := flash1.CollateralToken(flash1.SelfMintTestnet)
	require.NoError(t, err)
	usdt, err := flash1.CollateralToken(flash1.USDTMainnet)
	require.NoError(t, err)

	tests := []struct {
		name    string
		flags   tokenFlags
		network string
		want    flash1.Token
		wantErr error
	}{
		{name: "eth", flags: tokenFlags{kind: "ETH"}, want: flash1.ETHToken{}},
		{name: "erc20", flags: tokenFlags{kind: "erc20", address: "0xabc"}, want: flash1.ERC20Token{TokenAddress: "0xabc"}},
		{name: "testnet collateral", flags: tokenFlags{kind: "collateral"}, network: "goerli", want: selfMint},
		{name: "mainnet collateral", flags: tokenFlags{kind: "collateral"}, network: "mainnet", want: usdt},
		{name: "named collateral", flags: tokenFlags{kind: "collateral", collateral: "usdt_mainnet"}, network: "goerli", want: usdt},
		{
			name:  "custom collateral",
			flags: tokenFlags{kind: "collateral", address: "0xabc", assetID: "0x1", quantization: 100},
			want:  flash1.ERC20Collateral{TokenAddress: "0xabc", AssetID: "0x1", Quantization: 100},
		},
		{name: "unknown collateral", flags: tokenFlags{kind: "collateral", collateral: "dai"}, wantErr: flash1.ErrUnsupportedToken},
		{name: "unknown kind", flags: tokenFlags{kind: "btc"}, wantErr: flash1.ErrUnsupportedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.token(tt.network)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
