package frost

import (
	"crypto/rand"
	"fmt"
	"io"

	"threshold.network/roast/ciphersuite"
)

// Sign implements single-signer Schnorr signing, §4.G: the non-threshold
// path that reuses the same H2 challenge and effective_* hooks as the
// threshold protocol, so a ciphersuite's BIP340/adaptor overrides apply
// identically whether the secret key is held by one party or shared among
// many. Grounded on the teacher's root-level bip340.go sign/verify pair,
// generalized over ciphersuite.Suite instead of a hardcoded secp256k1
// implementation.
func Sign(
	suite ciphersuite.Suite,
	sk ciphersuite.Scalar,
	pk ciphersuite.Element,
	message []byte,
	params ciphersuite.SigningParameters,
	rng io.Reader,
) (*ciphersuite.Signature, error) {
	if rng == nil {
		rng = rand.Reader
	}

	k, err := nonceGenerate(suite, sk, rng)
	if err != nil {
		return nil, fmt.Errorf("frost: single-signer nonce: %w", err)
	}

	r := suite.Group().Generator().ScalarMult(k)

	rEff := suite.EffectiveNonceElement(r, params)
	pkEff := suite.EffectivePubkeyElement(pk, params)
	c := suite.Challenge(rEff, pkEff, message)

	skEff := suite.EffectiveSecretKey(sk, pk, params)

	// FinalizeSingleSig applies the nonce-side parity correction itself, so
	// it receives the raw nonce k.
	return suite.FinalizeSingleSig(k, r, skEff, c, pk, params)
}

// Verify implements single-signer Schnorr verification, §4.G: it simply
// delegates to the ciphersuite's own VerifySignature hook, since the
// default (cofactored) equation and the BIP340 override both check the
// same (msg, sig, pk) shape.
func Verify(suite ciphersuite.Suite, pk ciphersuite.Element, message []byte, sig *ciphersuite.Signature, params ciphersuite.SigningParameters) error {
	return suite.VerifySignature(message, sig, pk, params)
}
