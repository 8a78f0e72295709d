package secp256k1

import (
	"crypto/sha256"
	"math/big"

	"threshold.network/roast/ciphersuite"
)

const contextString = "FROST-secp256k1-BIP340-v1"

// Suite is the secp256k1/BIP340 taproot adaptor FROST ciphersuite. Unlike
// ristretto255.Suite it does not embed ciphersuite.IdentityHooks: every
// effective_* hook and finalizer is overridden, per §4.H. The hook bodies
// live in adaptor.go.
type Suite struct {
	group Group
}

// New constructs the secp256k1/BIP340 ciphersuite.
func New() *Suite { return &Suite{group: Group{}} }

func (s *Suite) Name() string             { return contextString }
func (s *Suite) Group() ciphersuite.Group { return s.group }

// taggedHash implements the BIP340 tagged hash:
// SHA256(SHA256(tag) || SHA256(tag) || msg). Grounded on teacher
// frost/hash.go's Bip340Hash.hash, which implements the identical
// construction.
func taggedHash(tag string, msgs ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, m := range msgs {
		h.Write(m)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// hashToScalar tagged-hashes msgs and reduces the 32-byte digest modulo the
// curve order. Per BIP340 (and teacher frost/hash.go's hashToScalar), taking
// a uniform 256-bit integer mod the secp256k1 order is not meaningfully
// biased because the order is so close to 2^256 — a shortcut that is only
// safe for this specific curve, not a general technique (contrast with the
// ristretto255 ciphersuite, which hashes to 64 bytes precisely because its
// order is not close to a power of two).
func hashToScalar(tag string, msgs ...[]byte) ciphersuite.Scalar {
	digest := taggedHash(tag, msgs...)
	v := new(big.Int).SetBytes(digest[:])
	return newScalar(v)
}

// H1 is the binding-factor hash ("rho"), domain-separated by contextString.
func (s *Suite) H1(m ...[]byte) ciphersuite.Scalar {
	return hashToScalar(contextString+"rho", m...)
}

// H2 is the BIP340 challenge hash. Unlike every other Hi it uses BIP340's
// own "BIP0340/challenge" tag rather than a contextString-derived one,
// because the adapted signature must verify under the standard, unmodified
// BIP340 verification equation.
func (s *Suite) H2(m ...[]byte) ciphersuite.Scalar {
	return hashToScalar("BIP0340/challenge", m...)
}

// H3 is the nonce-generation hash.
func (s *Suite) H3(m ...[]byte) ciphersuite.Scalar {
	return hashToScalar(contextString+"nonce", m...)
}

// H4 is the message-commitment hash.
func (s *Suite) H4(m []byte) []byte {
	digest := taggedHash(contextString+"msg", m)
	return digest[:]
}

// H5 is the commitments-list hash.
func (s *Suite) H5(m []byte) []byte {
	digest := taggedHash(contextString+"com", m)
	return digest[:]
}
