// Package stark implements the STARK-curve key handling of the Flash1 exchange:
// message signing, public key addresses, vault ID derivation and key derivation
// from an Ethereum signature.
package stark

import (
	"context"
	"fmt"
	"math/big"

	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/ecdsa"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"
	"github.com/dontpanicdao/caigo"
	"github.com/dontpanicdao/caigo/types"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/encoding"
)

// Signer signs StarkEx message hashes with a STARK private key.
type Signer struct {
	key  *ecdsa.PrivateKey
	priv *big.Int
	pubX *big.Int
	pubY *big.Int
}

var _ flash1.StarkSigner = (*Signer)(nil)

// NewSigner creates a signer from a hex encoded private key.
func NewSigner(privateKey string) (*Signer, error) {
	priv := types.HexToBN(encoding.AddHexPrefix(privateKey))
	if priv == nil || priv.Sign() <= 0 || priv.Cmp(curveOrder) >= 0 {
		return nil, flash1.ErrInvalidKey
	}
	return newSigner(priv)
}

func newSigner(priv *big.Int) (*Signer, error) {
	pubX, pubY, err := caigo.Curve.PrivateToPoint(priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", flash1.ErrInvalidKey, err)
	}

	_, g := starkcurve.Generators()
	pub := new(ecdsa.PublicKey)
	pub.A.ScalarMultiplication(&g, priv)

	key := new(ecdsa.PrivateKey)
	buf := append(pub.Bytes(), priv.FillBytes(make([]byte, fr.Bytes))...)
	if _, err := key.SetBytes(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", flash1.ErrInvalidKey, err)
	}

	return &Signer{key: key, priv: new(big.Int).Set(priv), pubX: pubX, pubY: pubY}, nil
}

// Address returns the x-coordinate of the public key as 0x-prefixed, even-length hex.
func (s *Signer) Address() string {
	return encoding.SanitizeHex(s.pubX.Text(16))
}

// PublicKey returns the public key coordinates.
func (s *Signer) PublicKey() (x, y *big.Int) {
	return new(big.Int).Set(s.pubX), new(big.Int).Set(s.pubY)
}

// SignMessage signs a hex encoded message hash and returns 0x followed by the 64-digit r
// and s halves. The nonce is derived per RFC 6979, so the same key and hash always
// produce the same signature.
func (s *Signer) SignMessage(ctx context.Context, hash string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fixed, err := FixMessageHashLength(hash)
	if err != nil {
		return "", err
	}
	z, err := signingDigest(fixed)
	if err != nil {
		return "", err
	}

	r, sv := s.sign(z)
	return encoding.SerializeStarkSignature(r, sv), nil
}

// sign computes r = x(k*G) mod n and s = (z + r*d) / k mod n. k comes from the
// HMAC-SHA256 generator shared with other StarkEx signers; the seed is bumped until
// both halves are non-zero.
func (s *Signer) sign(z *big.Int) (r, sv *big.Int) {
	_, g := starkcurve.Generators()
	one := big.NewInt(1)

	for seed := big.NewInt(0); ; seed.Add(seed, one) {
		// GenerateSecret rescales its arguments in place.
		k := caigo.Curve.GenerateSecret(new(big.Int).Set(z), new(big.Int).Set(s.priv), new(big.Int).Set(seed))

		var p starkcurve.G1Affine
		p.ScalarMultiplication(&g, k)
		r = p.X.BigInt(new(big.Int))
		r.Mod(r, curveOrder)
		if r.Sign() == 0 {
			continue
		}

		sv = new(big.Int).Mul(r, s.priv)
		sv.Add(sv, z)
		sv.Mod(sv, curveOrder)
		if sv.Sign() == 0 {
			continue
		}
		sv.Mul(sv, new(big.Int).ModInverse(k, curveOrder))
		sv.Mod(sv, curveOrder)
		return r, sv
	}
}

// Verify checks a serialized signature over a message hash against the signer's public key.
func (s *Signer) Verify(hash, signature string) (bool, error) {
	fixed, err := FixMessageHashLength(hash)
	if err != nil {
		return false, err
	}
	z, err := signingDigest(fixed)
	if err != nil {
		return false, err
	}

	raw := encoding.StripHexPrefix(signature)
	if len(raw) != 128 {
		return false, fmt.Errorf("invalid stark signature length %d", len(raw))
	}
	r, ok := new(big.Int).SetString(raw[:64], 16)
	if !ok {
		return false, fmt.Errorf("invalid stark signature %q", signature)
	}
	sv, ok := new(big.Int).SetString(raw[64:], 16)
	if !ok {
		return false, fmt.Errorf("invalid stark signature %q", signature)
	}

	return caigo.Curve.Verify(z, r, sv, s.pubX, s.pubY), nil
}
