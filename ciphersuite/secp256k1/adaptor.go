package secp256k1

import (
	"math/big"

	"threshold.network/roast/ciphersuite"
)

// SigningParameters carries the taproot tweak and adaptor-point inputs the
// secp256k1/BIP340 ciphersuite needs on top of the generic (PK, R) a plain
// FROST ciphersuite signs with, per §4.H. Grounded on the
// SigningParameters{tapscript_merkle_root, adaptor_point} shape used by
// sideprotocol/frost's frost-schnorr-adaptor test suite
// (original_source/frost-schnorr-adaptor/tests/schnorr-adaptor-signature-tests.rs).
type SigningParameters struct {
	// HasMerkleRoot distinguishes "None" (key-spend-only, no tweak applied
	// at all) from "Some(m)" (apply the BIP341 tweak with root m, where m
	// may itself be the empty byte string). A bare nil/empty
	// TapscriptMerkleRoot with HasMerkleRoot false and with HasMerkleRoot
	// true are not the same signing parameters: the former signs under the
	// raw group key, the latter under the tweaked output key.
	HasMerkleRoot       bool
	TapscriptMerkleRoot []byte

	// AdaptorPoint is the encoded adaptor point T (33-byte SEC1 compressed
	// form). Empty means a plain signature; non-empty produces a
	// pre-signature that Adapt must complete with the matching witness.
	AdaptorPoint []byte
}

func (p SigningParameters) adaptorPoint() (*Element, error) {
	if len(p.AdaptorPoint) == 0 {
		return identity(), nil
	}
	el, err := (&Element{}).SetCanonicalBytes(p.AdaptorPoint)
	if err != nil {
		return nil, err
	}
	return el.(*Element), nil
}

// xOnly returns the 32-byte x-coordinate encoding BIP340 uses for both
// public keys and nonces. Unlike Bytes (the 33-byte SEC1 form used for
// general point serialization), this discards the parity bit entirely: a
// verifier recovering a point from only its x-only encoding always takes
// the even-y representative (BIP340's lift_x), which is exactly why every
// point this ciphersuite feeds into a challenge hash or final signature
// must first be normalized to even y.
func xOnly(e *Element) [32]byte {
	var out [32]byte
	e.x.FillBytes(out[:])
	return out
}

// normalizeEvenY returns (e, +1) if e already has even y, or (-e, -1)
// otherwise. The returned sign is the scalar correction a caller must apply
// to whatever secret produced e so that the secret still corresponds to the
// normalized, even-y point.
func normalizeEvenY(e *Element) (*Element, *big.Int) {
	if !e.IsYOdd() {
		return e, big.NewInt(1)
	}
	return e.Negate().(*Element), big.NewInt(-1)
}

// tapTweak computes the BIP341 tweak scalar t = hash_TapTweak(xonly(pkEven)
// || merkleRoot). pkEven must already be the even-y normalized internal key;
// "TapTweak" is BIP341's own tag, not a contextString-derived one, since the
// tweak must match what any other BIP341-aware verifier recomputes.
func tapTweak(pkEven *Element, merkleRoot []byte) *Scalar {
	digest := taggedHash("TapTweak", xOnly(pkEven)[:], merkleRoot)
	return newScalar(new(big.Int).SetBytes(digest[:]))
}

// taprootTweak computes the internal-key and tweak material §4.H needs:
// pkEven (PK, negated to even y per BIP340 keygen), signP (the correction
// that negation implies), t (the tweak scalar, zero if params carries no
// merkle root), Q = pkEven + t*G, and signQ (Q's own even-y correction).
func (params SigningParameters) taprootTweak(pk *Element) (pkEven *Element, signP *big.Int, t *Scalar, pkEff *Element, signQ *big.Int) {
	pkEven, signP = normalizeEvenY(pk)

	if !params.HasMerkleRoot {
		t = newScalar(big.NewInt(0))
		pkEff, signQ = normalizeEvenY(pkEven)
		return
	}

	t = tapTweak(pkEven, params.TapscriptMerkleRoot)
	q := pkEven.Add(group.Generator().ScalarMult(t)).(*Element)
	pkEff, signQ = normalizeEvenY(q)
	return
}

// EffectivePubkeyElement returns PK_eff = Q_even, the taproot-tweaked output
// key normalized to even y, per §4.H. It depends only on the public key and
// the signing parameters, so every signer computes the identical value
// independently, with no aggregation step required.
func (s *Suite) EffectivePubkeyElement(pk ciphersuite.Element, p ciphersuite.SigningParameters) ciphersuite.Element {
	params := p.(SigningParameters)
	_, _, _, pkEff, _ := params.taprootTweak(pk.(*Element))
	return pkEff
}

// EffectiveSecretKey returns s * signP * signQ: the per-signer share
// transform that folds in both the BIP340 base-key negation (so the signed
// key matches the even-y point a verifier's lift_x reconstructs from PK)
// and the taproot output-key negation (so it matches Q_even rather than the
// un-normalized Q = PK_even + t*G). The tweak scalar t itself is additive,
// not multiplicative per share, so it cannot be folded in here: it is
// carried by every signer's local secret polynomial evaluation unchanged
// and added exactly once, during FinalizeSignature/FinalizeSingleSig.
func (s *Suite) EffectiveSecretKey(sc ciphersuite.Scalar, pk ciphersuite.Element, p ciphersuite.SigningParameters) ciphersuite.Scalar {
	params := p.(SigningParameters)
	_, signP, _, _, signQ := params.taprootTweak(pk.(*Element))
	sign := newScalar(new(big.Int).Mul(signP, signQ))
	return sc.Mul(sign)
}

// EffectiveVerifyingShare applies the same signP*signQ correction to a
// per-signer verifying share Y_i, so that Y_i_eff = EffectiveSecretKey(s_i,
// PK, params) * G holds for every signer without requiring the coordinator
// to know any signer's secret share.
func (s *Suite) EffectiveVerifyingShare(y ciphersuite.Element, pk ciphersuite.Element, p ciphersuite.SigningParameters) ciphersuite.Element {
	params := p.(SigningParameters)
	_, signP, _, _, signQ := params.taprootTweak(pk.(*Element))
	sign := newScalar(new(big.Int).Mul(signP, signQ))
	return y.ScalarMult(sign)
}

func (params SigningParameters) adaptedCommitment(r *Element) (rAdapted *Element, signR *big.Int, err error) {
	t, err := params.adaptorPoint()
	if err != nil {
		return nil, nil, err
	}
	rAdapted = r.Add(t).(*Element)
	rAdapted, signR = normalizeEvenY(rAdapted)
	return
}

// EffectiveNonceElement returns R_eff = normalize(R + T), per §4.H's parity
// normalization of R. This is the advertised nonce fed into the challenge
// hash (the pre-signature itself stores the raw R); it is always even-y by
// construction regardless of T's own parity.
func (s *Suite) EffectiveNonceElement(r ciphersuite.Element, p ciphersuite.SigningParameters) ciphersuite.Element {
	params := p.(SigningParameters)
	rEff, _, err := params.adaptedCommitment(r.(*Element))
	if err != nil {
		// An invalid adaptor point can only come from a caller-constructed
		// SigningParameters; there is nowhere to surface the error through
		// this hook's signature, so callers must validate params.
		// AdaptorPoint decodes before it reaches signing.
		return r
	}
	return rEff
}

// EffectiveNonceSecret returns k * signR, the correction that keeps k*G
// equal to EffectiveNonceElement(R, params) even though R itself (the
// group commitment Σ(D_j+ρ_jE_j)) carries no adaptor offset of its own.
func (s *Suite) EffectiveNonceSecret(k ciphersuite.Scalar, r ciphersuite.Element, p ciphersuite.SigningParameters) ciphersuite.Scalar {
	params := p.(SigningParameters)
	_, signR, err := params.adaptedCommitment(r.(*Element))
	if err != nil {
		return k
	}
	return k.Mul(newScalar(signR))
}

// EffectiveCommitmentShare mirrors EffectiveNonceSecret at the element
// level: share is a signer's per-round commitment share D_i+ρ_iE_i, which
// equals k_i*G before any sign correction.
func (s *Suite) EffectiveCommitmentShare(share ciphersuite.Element, r ciphersuite.Element, p ciphersuite.SigningParameters) ciphersuite.Element {
	params := p.(SigningParameters)
	_, signR, err := params.adaptedCommitment(r.(*Element))
	if err != nil {
		return share
	}
	return share.ScalarMult(newScalar(signR))
}

// Challenge computes BIP340's e = H2(bytes(r) || bytes(P) || m) using the
// 32-byte x-only encodings of rEff and pkEff, not the 33-byte compressed
// form: the final signature and any external BIP340 verifier both operate
// on x-only points, so the challenge must be computed the same way.
func (s *Suite) Challenge(rEff, pkEff ciphersuite.Element, msg []byte) ciphersuite.Scalar {
	rx := xOnly(rEff.(*Element))
	px := xOnly(pkEff.(*Element))
	return s.H2(rx[:], px[:], msg)
}

// tweakCorrection returns c * signQ * t, the term FinalizeSignature and
// FinalizeSingleSig must add exactly once to fold the taproot tweak into
// the aggregated or single-signer z, since t is an additive public
// constant that cannot be distributed across per-signer Lagrange shares.
func tweakCorrection(c ciphersuite.Scalar, pk *Element, params SigningParameters) ciphersuite.Scalar {
	_, _, t, _, signQ := params.taprootTweak(pk)
	return c.Mul(t).Mul(newScalar(signQ))
}

// FinalizeSignature recomputes R_eff/PK_eff/c from the raw group commitment
// R and raw public key PK, applies the taproot tweak correction to z, and
// returns the pre-signature: Signature.R is the raw group commitment R,
// neither offset by T nor parity-normalized, which is the R that Adapt and
// Extract add T to.
func (s *Suite) FinalizeSignature(z ciphersuite.Scalar, r ciphersuite.Element, pk ciphersuite.Element, msg []byte, p ciphersuite.SigningParameters) (*ciphersuite.Signature, error) {
	params := p.(SigningParameters)
	rRaw := r.(*Element)
	pkRaw := pk.(*Element)

	if _, _, err := params.adaptedCommitment(rRaw); err != nil {
		return nil, err
	}

	rEff := s.EffectiveNonceElement(rRaw, params).(*Element)
	pkEff := s.EffectivePubkeyElement(pkRaw, params).(*Element)
	c := s.Challenge(rEff, pkEff, msg)

	zTrue := z.Add(tweakCorrection(c, pkRaw, params))
	return &ciphersuite.Signature{R: rRaw, Z: zTrue}, nil
}

// FinalizeSingleSig is the non-threshold counterpart of FinalizeSignature:
// skEff already carries the EffectiveSecretKey transform, so only the
// EffectiveNonceSecret-style R-side correction (applied here to the raw
// nonce k) and the tweak correction remain to apply. As in
// FinalizeSignature, Signature.R is the raw R.
func (s *Suite) FinalizeSingleSig(k ciphersuite.Scalar, r ciphersuite.Element, skEff ciphersuite.Scalar, c ciphersuite.Scalar, pk ciphersuite.Element, p ciphersuite.SigningParameters) (*ciphersuite.Signature, error) {
	params := p.(SigningParameters)
	rRaw := r.(*Element)
	pkRaw := pk.(*Element)

	_, signR, err := params.adaptedCommitment(rRaw)
	if err != nil {
		return nil, err
	}
	kEff := k.Mul(newScalar(signR))

	z := kEff.Add(c.Mul(skEff))
	zTrue := z.Add(tweakCorrection(c, pkRaw, params))
	return &ciphersuite.Signature{R: rRaw, Z: zTrue}, nil
}

// VerifySignature checks z*G == signR*R + c*PK_eff under the tweaked
// effective key, where c is the BIP340 challenge over R_eff = normalize(R +
// T) and signR is the sign that normalization applied. With no adaptor point
// signR*R is R_eff itself and this is the standard, unmodified BIP340
// equation, which is how a fully-adapted signature is checked
// (params.AdaptorPoint empty); a pre-signature is checked against its own T
// through the same code, its z not yet containing the witness.
func (s *Suite) VerifySignature(msg []byte, sig *ciphersuite.Signature, pk ciphersuite.Element, p ciphersuite.SigningParameters) error {
	params := p.(SigningParameters)
	rRaw := sig.R.(*Element)
	rEff, signR, err := params.adaptedCommitment(rRaw)
	if err != nil {
		return err
	}
	pkEff := s.EffectivePubkeyElement(pk, params).(*Element)
	c := s.Challenge(rEff, pkEff, msg)

	zG := group.Generator().ScalarMult(sig.Z)
	cPK := pkEff.ScalarMult(c)
	diff := zG.Add(cPK.Negate()).Add(rRaw.ScalarMult(newScalar(signR)).Negate())
	if !diff.IsIdentity() {
		return ciphersuite.ErrInvalidSignature
	}
	return nil
}

// SerializeBIP340 encodes a completed (non-adaptor) signature in BIP340's
// standard 64-byte wire format: xonly(R) || bytes(z).
func SerializeBIP340(sig *ciphersuite.Signature) []byte {
	r := sig.R.(*Element)
	rx := xOnly(r)
	out := make([]byte, 64)
	copy(out[:32], rx[:])
	copy(out[32:], sig.Z.Bytes())
	return out
}

// Adapt completes a pre-signature with the witness scalar t (where T =
// t*G must equal params.AdaptorPoint), producing a standard 64-byte BIP340
// signature, per §4.H's adaptor completion: R' = R+T; z' = z+t if R' has
// even y, else z' = z-t.
func Adapt(preSig *ciphersuite.Signature, witness ciphersuite.Scalar, adaptorPoint []byte) ([]byte, error) {
	t, err := (&Element{}).SetCanonicalBytes(adaptorPoint)
	if err != nil {
		return nil, err
	}
	r := preSig.R.(*Element)
	rPrime := r.Add(t).(*Element)

	var zPrime ciphersuite.Scalar
	if !rPrime.IsYOdd() {
		zPrime = preSig.Z.Add(witness)
	} else {
		zPrime = preSig.Z.Sub(witness)
	}

	out := make([]byte, 64)
	rx := xOnly(rPrime)
	copy(out[:32], rx[:])
	copy(out[32:], zPrime.Bytes())
	return out, nil
}

// Extract recovers the witness scalar t from a pre-signature and its
// completed adaptor signature, verifying it against the advertised adaptor
// point T before returning it, per §4.H's final paragraph.
func Extract(preSig *ciphersuite.Signature, adaptedSig []byte, adaptorPoint []byte) (ciphersuite.Scalar, error) {
	if len(adaptedSig) != 64 {
		return nil, ciphersuite.ErrInvalidSignature
	}
	t, err := (&Element{}).SetCanonicalBytes(adaptorPoint)
	if err != nil {
		return nil, err
	}
	r := preSig.R.(*Element)
	rPrime := r.Add(t).(*Element)

	zPrime, err := (&Scalar{}).SetCanonicalBytes(adaptedSig[32:])
	if err != nil {
		return nil, err
	}

	var witness ciphersuite.Scalar
	if !rPrime.IsYOdd() {
		witness = zPrime.Sub(preSig.Z)
	} else {
		witness = preSig.Z.Sub(zPrime)
	}

	check := group.Generator().ScalarMult(witness)
	if !check.Equal(t) {
		return nil, ciphersuite.ErrInvalidProofOfKnowledge
	}
	return witness, nil
}

var group = Group{}
