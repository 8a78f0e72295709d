package roast_test

import (
	"context"
	"crypto/rand"
	"testing"

	"threshold.network/roast/ciphersuite/ristretto255"
	"threshold.network/roast/frost"
	"threshold.network/roast/frost/roast"
	"threshold.network/roast/internal/testutils"
)

// TestCoordinatorExcludesMisbehavingSigners implements §8.1 scenario S7: of
// five signers with threshold three, one always responds with a corrupted
// share and one never responds to a sign request at all. Run must still
// produce a valid aggregate signature by excluding both and retrying with
// substitutes from the remaining pool.
func TestCoordinatorExcludesMisbehavingSigners(t *testing.T) {
	suite := ristretto255.New()
	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, 5, 3, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	pool := make([]roast.Signer, 0, 5)
	for i := 1; i <= 5; i++ {
		signer := roast.NewLocalSigner(suite, keyPackages[i])
		switch i {
		case 1:
			signer.Misbehave = roast.RespondsMaliciously
		case 2:
			signer.Misbehave = roast.DoesNotRespond
		}
		pool = append(pool, signer)
	}

	coordinator := &roast.Coordinator{
		Suite:     suite,
		PubKeyPkg: pubKeyPkg,
		Threshold: 3,
		Message:   []byte("robust aggregation"),
	}

	sig, err := coordinator.Run(context.Background(), pool)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if err := frost.Verify(suite, pubKeyPkg.VerifyingKey.Element, coordinator.Message, sig, nil); err != nil {
		t.Fatalf("expected the aggregated signature to verify, got %v", err)
	}
}

// TestCoordinatorReturnsPoolExhausted implements §4.J step 5: once too few
// signers remain to reach the threshold, Run must stop retrying and report
// ErrPoolExhausted rather than loop forever.
func TestCoordinatorReturnsPoolExhausted(t *testing.T) {
	suite := ristretto255.New()
	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, 3, 3, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	pool := make([]roast.Signer, 0, 3)
	for i := 1; i <= 3; i++ {
		signer := roast.NewLocalSigner(suite, keyPackages[i])
		if i == 1 {
			signer.Misbehave = roast.DoesNotRespond
		}
		pool = append(pool, signer)
	}

	coordinator := &roast.Coordinator{
		Suite:     suite,
		PubKeyPkg: pubKeyPkg,
		Threshold: 3,
		Message:   []byte("no room for substitutes"),
	}

	_, err = coordinator.Run(context.Background(), pool)
	testutils.AssertErrorIs(t, "exhausted pool error", err, roast.ErrPoolExhausted)
}
