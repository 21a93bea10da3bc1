// Package evm provides the Ethereum signer used by the Flash1 workflows. It signs
// personal messages and EIP-1559 transactions locally and talks to a node through a
// JSON-RPC backend such as *ethclient.Client.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/retry"
)

// Backend is the subset of *ethclient.Client the signer needs.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

var _ Backend = (*ethclient.Client)(nil)

// Signer holds an Ethereum private key and an optional backend.
type Signer struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	backend    Backend
	polling    retry.Config

	mu      sync.Mutex
	chainID *big.Int
	closer  func()
}

var _ flash1.EthSigner = (*Signer)(nil)

// SignerOption configures a Signer.
type SignerOption func(*Signer) error

// NewSigner creates a new Ethereum signer with the given options.
// A key option is required; a backend is only needed for chain and transaction calls.
func NewSigner(opts ...SignerOption) (*Signer, error) {
	s := &Signer{
		polling: retry.ReceiptPolling,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Close()
			return nil, err
		}
	}

	if s.privateKey == nil {
		s.Close()
		return nil, flash1.ErrInvalidKey
	}
	s.address = crypto.PubkeyToAddress(s.privateKey.PublicKey)

	return s, nil
}

// WithPrivateKey sets the private key from a hex string.
func WithPrivateKey(hexKey string) SignerOption {
	return func(s *Signer) error {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return flash1.ErrInvalidKey
		}
		s.privateKey = privateKey
		return nil
	}
}

// WithBackend sets the JSON-RPC backend.
func WithBackend(backend Backend) SignerOption {
	return func(s *Signer) error {
		s.backend = backend
		return nil
	}
}

// WithRPC dials the node at url and uses it as the backend. Close releases the connection.
func WithRPC(url string) SignerOption {
	return func(s *Signer) error {
		client, err := ethclient.Dial(url)
		if err != nil {
			return fmt.Errorf("dial ethereum node: %w", err)
		}
		s.backend = client
		s.closer = client.Close
		return nil
	}
}

// WithChainID pins the chain ID instead of querying the backend.
func WithChainID(chainID int64) SignerOption {
	return func(s *Signer) error {
		s.chainID = big.NewInt(chainID)
		return nil
	}
}

// WithReceiptPolling overrides the backoff used by WaitMined.
func WithReceiptPolling(cfg retry.Config) SignerOption {
	return func(s *Signer) error {
		s.polling = cfg
		return nil
	}
}

// Close releases a backend dialed by WithRPC.
func (s *Signer) Close() {
	if s.closer != nil {
		s.closer()
		s.closer = nil
	}
}

// Address returns the signer's Ethereum address.
func (s *Signer) Address() common.Address {
	return s.address
}

// ChainID returns the pinned chain ID or asks the backend once and caches the answer.
func (s *Signer) ChainID(ctx context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chainID != nil {
		return new(big.Int).Set(s.chainID), nil
	}
	if s.backend == nil {
		return nil, flash1.ErrNoBackend
	}

	id, err := s.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("query chain id: %w", err)
	}
	s.chainID = id
	return new(big.Int).Set(id), nil
}

// SignMessage signs msg as an EIP-191 personal message. v is 27 or 28.
func (s *Signer) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// SendTransaction fills nonce, gas and fees, signs the transaction and submits it.
func (s *Signer) SendTransaction(ctx context.Context, req *flash1.TransactionRequest) (*types.Transaction, error) {
	if s.backend == nil {
		return nil, flash1.ErrNoBackend
	}

	chainID, err := s.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := s.backend.PendingNonceAt(ctx, s.address)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	to := req.To
	gas, err := s.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.address,
		To:    &to,
		Value: value,
		Data:  req.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	txData, err := s.feeFields(ctx, chainID, nonce, gas, to, value, req.Data)
	if err != nil {
		return nil, err
	}

	tx, err := types.SignNewTx(s.privateKey, types.LatestSignerForChainID(chainID), txData)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	if err := s.backend.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	return tx, nil
}

// feeFields builds a dynamic fee transaction on London chains and a legacy one otherwise.
func (s *Signer) feeFields(ctx context.Context, chainID *big.Int, nonce, gas uint64, to common.Address, value *big.Int, data []byte) (types.TxData, error) {
	head, err := s.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get latest header: %w", err)
	}

	if head.BaseFee == nil {
		gasPrice, err := s.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}
		return &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    value,
			Data:     data,
		}, nil
	}

	tip, err := s.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas tip: %w", err)
	}
	feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))

	return &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	}, nil
}

// WaitMined polls for the receipt of tx. A receipt with a failed status is returned
// together with flash1.ErrTransactionFailed.
func (s *Signer) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if s.backend == nil {
		return nil, flash1.ErrNoBackend
	}

	receipt, err := retry.Do(ctx, s.polling, isNotFound, func(ctx context.Context) (*types.Receipt, error) {
		return s.backend.TransactionReceipt(ctx, tx.Hash())
	})
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", flash1.ErrTransactionFailed, tx.Hash().Hex())
	}
	return receipt, nil
}

// CallContract executes a read-only call against the latest block.
func (s *Signer) CallContract(ctx context.Context, call ethereum.CallMsg) ([]byte, error) {
	if s.backend == nil {
		return nil, flash1.ErrNoBackend
	}
	if call.From == (common.Address{}) {
		call.From = s.address
	}
	return s.backend.CallContract(ctx, call, nil)
}

func isNotFound(err error) bool {
	return errors.Is(err, ethereum.NotFound)
}
