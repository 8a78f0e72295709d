package frost

import (
	"crypto/rand"
	"fmt"
	"io"

	"threshold.network/roast/ciphersuite"
)

// BatchEntry is one (message, signature, public key) triple submitted to
// BatchVerify.
type BatchEntry struct {
	Message   []byte
	Signature *ciphersuite.Signature
	PublicKey ciphersuite.Element
	Params    ciphersuite.SigningParameters
}

// BatchVerify implements RFC-style batched randomized verification, §4.I:
// rather than running each entry's ciphersuite-specific VerifySignature in
// turn, it draws a fresh random non-zero coefficient r_i per entry and
// checks the single combined equation
//
//	h * ( (sum r_i*z_i)*G - sum r_i*c_i*PK_eff_i - sum r_i*R_eff_i ) == O
//
// This always uses the default cofactored equation, by design (§4.I:
// "Batch always uses the default (cofactored) equation regardless of
// per-ciphersuite overrides") — it calls the ciphersuite's
// EffectivePubkeyElement/EffectiveNonceElement/Challenge hooks to compute
// each entry's PK_eff/R_eff/c_i (those are what the challenge was computed
// against and cannot be skipped), but folds them into the group-level
// batch equation itself rather than delegating to the ciphersuite's own
// VerifySignature, which for a variant like secp256k1/BIP340 does not
// multiply by a cofactor at all (cofactor 1 makes no difference there, but
// the point is the equation form is fixed, not inherited per entry).
//
// rng supplies the per-entry randomness; a nil rng defaults to
// crypto/rand.Reader. Each r_i is drawn with at least 128 bits of entropy
// and re-drawn until non-zero.
func BatchVerify(suite ciphersuite.Suite, entries []BatchEntry, rng io.Reader) error {
	if rng == nil {
		rng = rand.Reader
	}
	if len(entries) == 0 {
		return nil
	}

	grp := suite.Group()
	zSum := grp.NewScalar()
	negPKSum := grp.Identity()
	negRSum := grp.Identity()

	for i, e := range entries {
		r, err := randomNonZeroScalar(grp, rng)
		if err != nil {
			return fmt.Errorf("frost: batch entry %d: %w", i, err)
		}

		pkEff := suite.EffectivePubkeyElement(e.PublicKey, e.Params)
		rEff := suite.EffectiveNonceElement(e.Signature.R, e.Params)
		c := suite.Challenge(rEff, pkEff, e.Message)

		zSum = zSum.Add(r.Mul(e.Signature.Z))
		negPKSum = negPKSum.Add(pkEff.ScalarMult(r.Mul(c)).Negate())
		negRSum = negRSum.Add(rEff.ScalarMult(r).Negate())
	}

	lhs := grp.Generator().ScalarMult(zSum).Add(negPKSum).Add(negRSum)
	if !lhs.ScalarMult(grp.Cofactor()).IsIdentity() {
		return ciphersuite.ErrInvalidSignature
	}
	return nil
}

// randomNonZeroScalar rejection-samples until it draws a non-zero scalar,
// matching §4.A's RandomScalar contract (uniform, unbiased) plus the
// non-zero requirement §4.I's r_i coefficients need so a malicious
// signature cannot cancel itself out of the batch sum with r_i = 0.
func randomNonZeroScalar(grp ciphersuite.Group, rng io.Reader) (ciphersuite.Scalar, error) {
	for {
		s, err := grp.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}
