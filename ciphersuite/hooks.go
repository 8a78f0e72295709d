package ciphersuite

// IdentityHooks is the "effective_* hooks are identity by default" half of
// §4.B's variant-dispatch design, realized through Go struct embedding
// rather than interface inheritance (SPEC_FULL.md §9, option (a): "a
// trait/interface with default methods and a concrete implementation
// overriding a subset"). A generic ciphersuite such as ristretto255 embeds
// IdentityHooks unmodified; the secp256k1/BIP340 adaptor ciphersuite does
// not embed it and implements every hook itself.
type IdentityHooks struct {
	Grp    Group
	Hash2  func(m ...[]byte) Scalar
}

func (h IdentityHooks) EffectivePubkeyElement(pk Element, _ SigningParameters) Element {
	return pk
}

func (h IdentityHooks) EffectiveNonceElement(r Element, _ SigningParameters) Element {
	return r
}

func (h IdentityHooks) EffectiveSecretKey(s Scalar, _ Element, _ SigningParameters) Scalar {
	return s
}

func (h IdentityHooks) EffectiveNonceSecret(k Scalar, _ Element, _ SigningParameters) Scalar {
	return k
}

func (h IdentityHooks) EffectiveCommitmentShare(share Element, _ Element, _ SigningParameters) Element {
	return share
}

func (h IdentityHooks) EffectiveVerifyingShare(y Element, _ Element, _ SigningParameters) Element {
	return y
}

// Challenge computes c = H2(serialize(R_eff) || serialize(PK_eff) || msg),
// per §3/§4.E step 3.
func (h IdentityHooks) Challenge(rEff, pkEff Element, msg []byte) Scalar {
	return h.Hash2(rEff.Bytes(), pkEff.Bytes(), msg)
}

// FinalizeSignature is the default aggregate_sig_finalize: Signature{R, z}.
func (h IdentityHooks) FinalizeSignature(z Scalar, r Element, _ Element, _ []byte, _ SigningParameters) (*Signature, error) {
	return &Signature{R: r, Z: z}, nil
}

// FinalizeSingleSig is the default single_sig_finalize: z = k + c*sk_eff.
func (h IdentityHooks) FinalizeSingleSig(k Scalar, r Element, skEff Scalar, c Scalar, _ Element, _ SigningParameters) (*Signature, error) {
	z := k.Add(c.Mul(skEff))
	return &Signature{R: r, Z: z}, nil
}

// VerifySignature is the default cofactored verification equation from
// §4.G: h * (z*G - c*PK_eff - R_eff) == O.
func (h IdentityHooks) VerifySignature(msg []byte, sig *Signature, pk Element, params SigningParameters) error {
	pkEff := h.EffectivePubkeyElement(pk, params)
	rEff := h.EffectiveNonceElement(sig.R, params)
	c := h.Challenge(rEff, pkEff, msg)

	zG := h.Grp.Generator().ScalarMult(sig.Z)
	cPK := pkEff.ScalarMult(c)
	diff := zG.Add(cPK.Negate()).Add(rEff.Negate())

	if !diff.ScalarMult(h.Grp.Cofactor()).IsIdentity() {
		return ErrInvalidSignature
	}
	return nil
}
