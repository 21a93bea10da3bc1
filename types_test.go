package flash1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenTypes(t *testing.T) {
	tests := []struct {
		token Token
		want  TokenType
	}{
		{ETHToken{}, TokenTypeETH},
		{ERC20Token{TokenAddress: "0x1"}, TokenTypeERC20},
		{ERC20Collateral{TokenAddress: "0x1", AssetID: "0x2", Quantization: 10}, TokenTypeERC20Collateral},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.Type())
		})
	}
}

func TestCollateralToken(t *testing.T) {
	token, err := CollateralToken(SelfMintTestnet)
	require.NoError(t, err)
	assert.Equal(t, "0xd44BB808bfE43095dBb94c83077766382D63952a", token.TokenAddress)
	assert.Equal(t, Goerli().Eth.CollateralAssetID, token.AssetID)
	assert.Equal(t, int64(1_000_000), token.Quantization)

	token, err = CollateralToken("usdt_mainnet")
	require.NoError(t, err)
	assert.Equal(t, int64(10), token.Quantization)

	_, err = CollateralToken("DAI")
	assert.True(t, errors.Is(err, ErrUnsupportedToken))
}
