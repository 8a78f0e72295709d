package frost_test

import (
	"crypto/rand"
	"testing"

	"threshold.network/roast/ciphersuite/ristretto255"
	"threshold.network/roast/frost"
)

func TestSingleSignerSignVerify(t *testing.T) {
	suite := ristretto255.New()
	sk, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pk := suite.Group().Generator().ScalarMult(sk)
	message := []byte("single signer")

	sig, err := frost.Sign(suite, sk, pk, message, nil, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if err := frost.Verify(suite, pk, message, sig, nil); err != nil {
		t.Fatalf("expected signature to verify, got %v", err)
	}

	if err := frost.Verify(suite, pk, []byte("different message"), sig, nil); err == nil {
		t.Fatal("expected verification to fail for a different message")
	}
}
