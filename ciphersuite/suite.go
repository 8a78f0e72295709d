// Package ciphersuite defines the algebraic capability bundle a [FROST]
// ciphersuite must provide: a scalar field, a prime-order group, five
// domain-separated hash functions, and the small set of overridable hooks
// that let a variant (such as the secp256k1/BIP340 adaptor ciphersuite)
// depart from the generic signing flow without the core protocol package
// knowing anything curve-specific.
//
// This mirrors the strategy pattern used by the retrieved FROST prototype's
// own Ciphersuite/Hashing/Curve split, generalized from concrete *big.Int /
// *Point types to interfaces so more than one curve backend can satisfy the
// same contract at once.
package ciphersuite

import "io"

// Scalar is an element of a prime-order field. Implementations representing
// secret material must support constant-time equality; Destroy must clear
// any backing buffer.
type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	// Invert returns the multiplicative inverse. Implementations must report
	// an error rather than panic when called on the zero scalar.
	Invert() (Scalar, error)
	IsZero() bool
	// Equal performs constant-time comparison.
	Equal(Scalar) bool
	// Bytes returns the canonical, ciphersuite-defined encoding.
	Bytes() []byte
	// LittleEndianBytes returns the scalar's fixed-width little-endian
	// encoding, independent of whichever endianness Bytes uses natively.
	// §4.A/§4.D's nonce-generation hash input is always
	// little_endian_serialize(secret), regardless of curve: ristretto255's
	// Bytes is already little-endian (RFC 8032), while secp256k1's Bytes is
	// big-endian, so only the Scalar implementation itself can produce this
	// without a caller having to know which curve it is.
	LittleEndianBytes() []byte
	// SetCanonicalBytes decodes a canonical encoding, rejecting any
	// encoding that is not the unique minimal representation.
	SetCanonicalBytes([]byte) (Scalar, error)
	// Destroy clears any backing secret buffer. Safe to call multiple times.
	Destroy()
}

// Element is a point of a prime-order group. Equality may be variable-time
// since group elements are always public.
type Element interface {
	Add(Element) Element
	ScalarMult(Scalar) Element
	Negate() Element
	Equal(Element) bool
	IsIdentity() bool
	// Bytes returns the compressed encoding, fixed length Ne.
	Bytes() []byte
	SetCanonicalBytes([]byte) (Element, error)
	// IsYOdd reports the parity of the affine y-coordinate. Ciphersuites
	// whose group has no meaningful affine y (e.g. ristretto255) always
	// return false; callers that care about parity only do so through the
	// secp256k1/BIP340 ciphersuite.
	IsYOdd() bool
}

// Group is a prime-order group: a fixed generator, an identity element, a
// cofactor, and constructors for fresh scalars/elements.
type Group interface {
	Identity() Element
	Generator() Element
	// Cofactor is 1 for every prime-order curve this package ships, but is
	// exposed so the batch/single-signer verification equations in §4.G/§4.I
	// can be written generically against h, as the RFC itself does.
	Cofactor() Scalar
	// One returns the multiplicative identity scalar. Callers that need a
	// literal "1" (Horner's method, Lagrange numerator/denominator
	// accumulators) must go through this rather than hand-rolling a
	// SetCanonicalBytes byte layout: the canonical encoding's endianness is
	// ciphersuite-specific (little-endian for ristretto255, big-endian for
	// secp256k1), so only the Group implementation itself knows which byte
	// to set.
	One() Scalar
	NewScalar() Scalar
	NewElement() Element
	// RandomScalar draws a uniform, rejection-sampled scalar in [0, q-1].
	RandomScalar(rng io.Reader) (Scalar, error)
	ScalarSize() int
	ElementSize() int
}

// SigningParameters carries ciphersuite-specific signing configuration.
// Generic ciphersuites ignore it (ristretto255 callers pass nil); the
// secp256k1/BIP340 adaptor
// ciphersuite defines a concrete type carrying the taproot merkle root and
// adaptor point (see ciphersuite/secp256k1).
type SigningParameters interface{}

// Signature is the generic (R, z) Schnorr signature pair. Ciphersuites with
// a non-generic wire encoding (BIP340's 64-byte x-only form) still produce
// one of these internally and serialize it on demand.
type Signature struct {
	R Element
	Z Scalar
}

// Suite is the full capability bundle a FROST ciphersuite exposes: ID,
// Group, the five hash functions H1-H5, and the effective_* hooks plus
// finalizers described in §4.B. The identity-hook default implementation
// lives in IdentityHooks (hooks.go) and is embedded by ciphersuites that do
// not need to override it.
type Suite interface {
	// Name is the RFC-style contextString, e.g. "FROST-ristretto255-SHA512-v1".
	Name() string
	Group() Group

	H1(m ...[]byte) Scalar
	H2(m ...[]byte) Scalar
	H3(m ...[]byte) Scalar
	H4(m []byte) []byte
	H5(m []byte) []byte

	// EffectiveNonceElement, EffectiveNonceSecret and EffectiveCommitmentShare
	// take SigningParameters alongside the element §4.B's prose names, since
	// the secp256k1/BIP340 adaptor variant needs the adaptor point T carried
	// in params to compute R_adapted = R+T before it can decide the parity
	// normalization each of them applies. EffectivePubkeyElement,
	// EffectiveSecretKey and EffectiveVerifyingShare take params for the
	// taproot merkle root and apply the public key's parity corrections
	// rather than R's.
	EffectivePubkeyElement(pk Element, params SigningParameters) Element
	EffectiveNonceElement(r Element, params SigningParameters) Element
	EffectiveSecretKey(s Scalar, pk Element, params SigningParameters) Scalar
	EffectiveNonceSecret(k Scalar, r Element, params SigningParameters) Scalar
	EffectiveCommitmentShare(share Element, r Element, params SigningParameters) Element
	EffectiveVerifyingShare(y Element, pk Element, params SigningParameters) Element

	Challenge(rEff, pkEff Element, msg []byte) Scalar
	// FinalizeSignature and FinalizeSingleSig both take pk and msg alongside
	// what §4.F/§4.G's aggregate_sig_finalize/single_sig_finalize prose
	// names, because the secp256k1/BIP340 adaptor finalizer must recompute
	// PK_eff and the challenge itself to fold in the taproot tweak exactly
	// once, at finalization, rather than per signer share.
	FinalizeSignature(z Scalar, r Element, pk Element, msg []byte, params SigningParameters) (*Signature, error)
	FinalizeSingleSig(k Scalar, r Element, skEff Scalar, c Scalar, pk Element, params SigningParameters) (*Signature, error)

	// VerifySignature checks sig against pk under the ciphersuite's
	// verification equation; the default (cofactored) equation is what
	// batch verification always uses regardless of ciphersuite overrides.
	VerifySignature(msg []byte, sig *Signature, pk Element, params SigningParameters) error
}
