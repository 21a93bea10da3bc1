package contracts

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flash1-exchange/flash1-go"
)

var coreAddress = common.HexToAddress("0x2785680c010510c4ef5be451c69c9d6ee748b3de")

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func TestCoreSelectors(t *testing.T) {
	core := NewCore(coreAddress)

	tests := []struct {
		name      string
		build     func() (*flash1.TransactionRequest, error)
		signature string
	}{
		{
			name:      "deposit",
			build:     func() (*flash1.TransactionRequest, error) { return core.Deposit("0x1", "0x2", "3", big.NewInt(1)) },
			signature: "deposit(uint256,uint256,uint256)",
		},
		{
			name:      "depositERC20",
			build:     func() (*flash1.TransactionRequest, error) { return core.DepositERC20("0x1", "0x2", "3", big.NewInt(4)) },
			signature: "depositERC20(uint256,uint256,uint256,uint256)",
		},
		{
			name: "registerUser",
			build: func() (*flash1.TransactionRequest, error) {
				return core.RegisterUser(common.HexToAddress("0x01"), "0x1", []byte{1, 2})
			},
			signature: "registerUser(address,uint256,bytes)",
		},
		{
			name:      "withdraw",
			build:     func() (*flash1.TransactionRequest, error) { return core.Withdraw("0x1", "0x2") },
			signature: "withdraw(uint256,uint256)",
		},
		{
			name: "forcedWithdrawalRequest",
			build: func() (*flash1.TransactionRequest, error) {
				return core.ForcedWithdrawalRequest(flash1.ForcedWithdrawalRequest{StarkKey: "0x1", VaultID: "2", QuantizedAmount: "3"})
			},
			signature: "forcedWithdrawalRequest(uint256,uint256,uint256,bool)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, coreAddress, req.To)
			assert.Equal(t, selector(tt.signature), req.Data[:4])
		})
	}
}

func TestDepositCarriesValue(t *testing.T) {
	req, err := NewCore(coreAddress).Deposit("0xabc", "0x1", "42", big.NewInt(1e18))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1e18), req.Value)

	args, err := coreABI.Methods["deposit"].Inputs.Unpack(req.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0xabc), args[0])
	assert.Equal(t, big.NewInt(1), args[1])
	assert.Equal(t, big.NewInt(42), args[2])
}

func TestForcedTradeRequestPassThrough(t *testing.T) {
	req, err := NewCore(coreAddress).ForcedTradeRequest(flash1.ForcedTradeRequest{
		StarkKeyA:                "0x1",
		StarkKeyB:                "0x2",
		VaultIDA:                 "3",
		VaultIDB:                 "4",
		CollateralAssetID:        "0x5",
		SyntheticAssetID:         "0x6",
		AmountCollateral:         "7",
		AmountSynthetic:          "8",
		AIsBuyingSynthetic:       true,
		SubmissionExpirationTime: "9",
		Nonce:                    "10",
		Signature:                "0xdead",
		PremiumCost:              true,
	})
	require.NoError(t, err)
	assert.Equal(t, selector("forcedTradeRequest(uint256,uint256,uint256,uint256,uint256,uint256,uint256,uint256,bool,uint256,uint256,bytes,bool)"), req.Data[:4])

	args, err := coreABI.Methods["forcedTradeRequest"].Inputs.Unpack(req.Data[4:])
	require.NoError(t, err)
	require.Len(t, args, 13)
	for i, want := range []int64{1, 2, 3, 4, 5, 6, 7, 8} {
		assert.Equal(t, big.NewInt(want), args[i], "argument %d", i)
	}
	assert.Equal(t, true, args[8])
	assert.Equal(t, big.NewInt(9), args[9])
	assert.Equal(t, big.NewInt(10), args[10])
	assert.Equal(t, []byte{0xde, 0xad}, args[11])
	assert.Equal(t, true, args[12])
}

func TestCoreRejectsMalformedArguments(t *testing.T) {
	core := NewCore(coreAddress)

	_, err := core.Deposit("not-a-number", "0x1", "1", big.NewInt(1))
	assert.Error(t, err)

	_, err = core.Withdraw("0x1", "")
	assert.Error(t, err)

	_, err = core.ForcedTradeRequest(flash1.ForcedTradeRequest{Signature: "0xzz"})
	assert.Error(t, err)
}

type callerFunc func(ctx context.Context, call ethereum.CallMsg) ([]byte, error)

func (f callerFunc) CallContract(ctx context.Context, call ethereum.CallMsg) ([]byte, error) {
	return f(ctx, call)
}

func TestGetEthKey(t *testing.T) {
	registered := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	var got ethereum.CallMsg
	caller := callerFunc(func(_ context.Context, call ethereum.CallMsg) ([]byte, error) {
		got = call
		return common.LeftPadBytes(registered.Bytes(), 32), nil
	})

	addr, err := NewCore(coreAddress).GetEthKey(context.Background(), caller, "0x1234")
	require.NoError(t, err)
	assert.Equal(t, registered, addr)
	assert.Equal(t, coreAddress, *got.To)
	assert.Equal(t, selector("getEthKey(uint256)"), got.Data[:4])
}

func TestERC20(t *testing.T) {
	token := NewERC20(common.HexToAddress("0xd44BB808bfE43095dBb94c83077766382D63952a"))

	approve, err := token.Approve(coreAddress, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, token.Address(), approve.To)
	assert.Equal(t, selector("approve(address,uint256)"), approve.Data[:4])

	mint, err := token.Mint(coreAddress, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, selector("mint(address,uint256)"), mint.Data[:4])

	decimals, err := token.Decimals(context.Background(), callerFunc(func(context.Context, ethereum.CallMsg) ([]byte, error) {
		return common.LeftPadBytes([]byte{6}, 32), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)
}

type dataError struct {
	msg  string
	data any
}

func (e dataError) Error() string  { return e.msg }
func (e dataError) ErrorData() any { return e.data }

func packRevert(t *testing.T, reason string) string {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return hexutil.Encode(append(selector("Error(string)"), packed...))
}

func TestRevertReason(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason string
		wantOK     bool
	}{
		{
			name:       "rpc data error",
			err:        dataError{msg: "execution reverted", data: packRevert(t, ReasonUserUnregistered)},
			wantReason: ReasonUserUnregistered,
			wantOK:     true,
		},
		{
			name:       "wrapped rpc data error",
			err:        fmt.Errorf("getEthKey: %w", dataError{msg: "execution reverted", data: packRevert(t, "NOPE")}),
			wantReason: "NOPE",
			wantOK:     true,
		},
		{
			name:       "message only",
			err:        errors.New("execution reverted: USER_UNREGISTERED"),
			wantReason: ReasonUserUnregistered,
			wantOK:     true,
		},
		{
			name:   "revert without reason",
			err:    errors.New("execution reverted"),
			wantOK: true,
		},
		{
			name:   "network error",
			err:    errors.New("dial tcp: connection refused"),
			wantOK: false,
		},
		{
			name:   "nil",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := RevertReason(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.wantOK, IsReverted(tt.err))
		})
	}
}
