package frost_test

import (
	"crypto/rand"
	"testing"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/ciphersuite/ristretto255"
	"threshold.network/roast/frost"
)

// makeSingleSig produces a fresh keypair and single-signer signature over
// message, for exercising BatchVerify independently of the threshold path.
func makeSingleSig(t *testing.T, suite ciphersuite.Suite, message []byte) (ciphersuite.Element, *ciphersuite.Signature) {
	t.Helper()
	sk, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pk := suite.Group().Generator().ScalarMult(sk)
	sig, err := frost.Sign(suite, sk, pk, message, nil, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return pk, sig
}

// TestBatchVerifyMatchesIndividual implements §8 property 7 and S6: batch
// verification succeeds iff every individual verification succeeds, and
// flipping one byte of any signature's z flips the batch result too.
func TestBatchVerifyMatchesIndividual(t *testing.T) {
	suite := ristretto255.New()

	var entries []frost.BatchEntry
	messages := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	for _, m := range messages {
		pk, sig := makeSingleSig(t, suite, m)
		entries = append(entries, frost.BatchEntry{Message: m, Signature: sig, PublicKey: pk})

		if err := frost.Verify(suite, pk, m, sig, nil); err != nil {
			t.Fatalf("individual verify failed: %v", err)
		}
	}

	if err := frost.BatchVerify(suite, entries, rand.Reader); err != nil {
		t.Fatalf("expected batch verification to succeed, got %v", err)
	}

	// Flip one byte of the second signature's z; batch verification must
	// now fail.
	corrupted := make([]frost.BatchEntry, len(entries))
	copy(corrupted, entries)
	zBytes := append([]byte(nil), corrupted[1].Signature.Z.Bytes()...)
	zBytes[len(zBytes)-1] ^= 0x01
	flipped, err := suite.Group().NewScalar().SetCanonicalBytes(zBytes)
	if err != nil {
		t.Fatal(err)
	}
	corrupted[1] = frost.BatchEntry{
		Message:   corrupted[1].Message,
		Signature: &ciphersuite.Signature{R: corrupted[1].Signature.R, Z: flipped},
		PublicKey: corrupted[1].PublicKey,
	}

	if err := frost.BatchVerify(suite, corrupted, rand.Reader); err == nil {
		t.Fatal("expected batch verification to fail after corrupting one signature")
	}
}

// TestBatchVerifyEmpty exercises the degenerate zero-entry case.
func TestBatchVerifyEmpty(t *testing.T) {
	suite := ristretto255.New()
	if err := frost.BatchVerify(suite, nil, rand.Reader); err != nil {
		t.Fatalf("expected empty batch to succeed trivially, got %v", err)
	}
}
