package secp256k1_test

import (
	"crypto/rand"
	"testing"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/ciphersuite/secp256k1"
)

// TestPlainSignatureVerifiesUnderEvenYKey is the key-spend-only counterpart
// of S2: with no merkle root and no adaptor point, PK_eff is the even-y
// normalized key and a signed message verifies under the standard BIP340
// equation.
func TestPlainSignatureVerifiesUnderEvenYKey(t *testing.T) {
	suite := secp256k1.New()
	sk, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pk := suite.Group().Generator().ScalarMult(sk)
	message := []byte("taproot key-spend")

	params := secp256k1.SigningParameters{}
	sig, err := frostSign(t, suite, sk, pk, message, params)
	if err != nil {
		t.Fatal(err)
	}
	if err := suite.VerifySignature(message, sig, pk, params); err != nil {
		t.Fatalf("expected signature to verify, got %v", err)
	}
}

// TestTaprootTweakAppliesMerkleRoot implements S2's tweaked-key branch: a
// non-empty merkle root changes both the effective public key and the
// resulting signature relative to the untweaked case, but still verifies.
func TestTaprootTweakAppliesMerkleRoot(t *testing.T) {
	suite := secp256k1.New()
	sk, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pk := suite.Group().Generator().ScalarMult(sk)
	message := []byte("taproot script-spend")

	tweaked := secp256k1.SigningParameters{HasMerkleRoot: true, TapscriptMerkleRoot: []byte("merkle root")}
	pkEffUntweaked := suite.EffectivePubkeyElement(pk, secp256k1.SigningParameters{})
	pkEffTweaked := suite.EffectivePubkeyElement(pk, tweaked)
	if pkEffUntweaked.Equal(pkEffTweaked) {
		t.Fatal("expected a merkle root to change the effective public key")
	}

	sig, err := frostSign(t, suite, sk, pk, message, tweaked)
	if err != nil {
		t.Fatal(err)
	}
	if err := suite.VerifySignature(message, sig, pk, tweaked); err != nil {
		t.Fatalf("expected tweaked signature to verify, got %v", err)
	}
}

// TestAdaptorRoundTrip implements S3/§8 properties 8-9: adapting a
// pre-signature with the correct witness yields a signature that both
// verifies as a plain signature and, via Extract, reveals the same witness.
func TestAdaptorRoundTrip(t *testing.T) {
	suite := secp256k1.New()
	sk, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pk := suite.Group().Generator().ScalarMult(sk)

	witness, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	adaptorPoint := suite.Group().Generator().ScalarMult(witness)

	params := secp256k1.SigningParameters{AdaptorPoint: adaptorPoint.Bytes()}
	message := []byte("adaptor scenario")

	preSig, err := frostSign(t, suite, sk, pk, message, params)
	if err != nil {
		t.Fatal(err)
	}

	adapted, err := secp256k1.Adapt(preSig, witness, adaptorPoint.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	adaptedSig := &ciphersuite.Signature{
		R: decodeXOnlyR(t, suite, adapted[:32]),
		Z: decodeZ(t, suite, adapted[32:]),
	}
	if err := suite.VerifySignature(message, adaptedSig, pk, secp256k1.SigningParameters{}); err != nil {
		t.Fatalf("expected adapted signature to verify as a plain signature, got %v", err)
	}

	extracted, err := secp256k1.Extract(preSig, adapted, adaptorPoint.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !extracted.Equal(witness) {
		t.Fatal("expected Extract to recover the original witness")
	}
}

// TestExtractRejectsWrongWitness implements S3's negative case: adapting
// with an unrelated scalar must not extract the true witness nor verify
// under the advertised adaptor point.
func TestExtractRejectsWrongWitness(t *testing.T) {
	suite := secp256k1.New()
	sk, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pk := suite.Group().Generator().ScalarMult(sk)

	witness, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	adaptorPoint := suite.Group().Generator().ScalarMult(witness)
	wrongWitness, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	params := secp256k1.SigningParameters{AdaptorPoint: adaptorPoint.Bytes()}
	message := []byte("adaptor mismatch")
	preSig, err := frostSign(t, suite, sk, pk, message, params)
	if err != nil {
		t.Fatal(err)
	}

	adapted, err := secp256k1.Adapt(preSig, wrongWitness, adaptorPoint.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := secp256k1.Extract(preSig, adapted, adaptorPoint.Bytes()); err == nil {
		t.Fatal("expected Extract to reject a signature adapted with the wrong witness")
	}
}

// frostSign drives the single-signer path used throughout this file. It
// follows the same hook sequence as frost.Sign, but draws the nonce k
// directly from RandomScalar rather than through frost's hedged nonce
// generation.
func frostSign(
	t *testing.T,
	suite *secp256k1.Suite,
	sk ciphersuite.Scalar,
	pk ciphersuite.Element,
	message []byte,
	params ciphersuite.SigningParameters,
) (*ciphersuite.Signature, error) {
	t.Helper()
	k, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		return nil, err
	}
	r := suite.Group().Generator().ScalarMult(k)
	rEff := suite.EffectiveNonceElement(r, params)
	pkEff := suite.EffectivePubkeyElement(pk, params)
	c := suite.Challenge(rEff, pkEff, message)
	skEff := suite.EffectiveSecretKey(sk, pk, params)
	return suite.FinalizeSingleSig(k, r, skEff, c, pk, params)
}

func decodeXOnlyR(t *testing.T, suite *secp256k1.Suite, xOnly []byte) ciphersuite.Element {
	t.Helper()
	even, err := suite.Group().NewElement().SetCanonicalBytes(append([]byte{0x02}, xOnly...))
	if err != nil {
		t.Fatal(err)
	}
	return even
}

func decodeZ(t *testing.T, suite *secp256k1.Suite, z []byte) ciphersuite.Scalar {
	t.Helper()
	s, err := suite.Group().NewScalar().SetCanonicalBytes(z)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
