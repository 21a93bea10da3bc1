// Package ethtest provides an in-memory flash1.EthSigner that records every call, so
// tests can assert on the order of chain interactions.
package ethtest

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/flash1-exchange/flash1-go"
)

// Call names recorded by Signer.
const (
	CallChainID         = "ChainID"
	CallSignMessage     = "SignMessage"
	CallSendTransaction = "SendTransaction"
	CallWaitMined       = "WaitMined"
	CallContract        = "CallContract"
)

// Signer is a fake Ethereum account. Exported fields may be set before use.
type Signer struct {
	// ReceiptStatus is reported by WaitMined. Defaults to success.
	ReceiptStatus uint64

	// CallResult and CallErr are returned by CallContract.
	CallResult []byte
	CallErr    error

	// SendErr fails SendTransaction when set.
	SendErr error

	key     *ecdsa.PrivateKey
	chainID *big.Int

	mu    sync.Mutex
	calls []string
	sent  []*flash1.TransactionRequest
}

var _ flash1.EthSigner = (*Signer)(nil)

// NewSigner returns a signer with a fresh key connected to chainID.
func NewSigner(t testing.TB, chainID int64) *Signer {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &Signer{
		ReceiptStatus: types.ReceiptStatusSuccessful,
		key:           key,
		chainID:       big.NewInt(chainID),
	}
}

func (s *Signer) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

// Calls returns the recorded call names in order.
func (s *Signer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Sent returns the submitted transaction requests in order.
func (s *Signer) Sent() []*flash1.TransactionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*flash1.TransactionRequest(nil), s.sent...)
}

func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *Signer) ChainID(context.Context) (*big.Int, error) {
	s.record(CallChainID)
	return new(big.Int).Set(s.chainID), nil
}

func (s *Signer) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	s.record(CallSignMessage)
	sig, err := crypto.Sign(accounts.TextHash(msg), s.key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

func (s *Signer) SendTransaction(_ context.Context, req *flash1.TransactionRequest) (*types.Transaction, error) {
	s.record(CallSendTransaction)
	if s.SendErr != nil {
		return nil, s.SendErr
	}

	s.mu.Lock()
	nonce := uint64(len(s.sent))
	s.sent = append(s.sent, req)
	s.mu.Unlock()

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := req.To
	return types.SignNewTx(s.key, types.LatestSignerForChainID(s.chainID), &types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      100_000,
		GasPrice: big.NewInt(1),
		Data:     req.Data,
	})
}

func (s *Signer) WaitMined(_ context.Context, tx *types.Transaction) (*types.Receipt, error) {
	s.record(CallWaitMined)
	return &types.Receipt{Status: s.ReceiptStatus, TxHash: tx.Hash()}, nil
}

func (s *Signer) CallContract(context.Context, ethereum.CallMsg) ([]byte, error) {
	s.record(CallContract)
	return s.CallResult, s.CallErr
}
