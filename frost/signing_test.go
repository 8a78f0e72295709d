package frost_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/ciphersuite/ristretto255"
	"threshold.network/roast/frost"
	"threshold.network/roast/internal/testutils"
)

// signAs runs round 1 and round 2 for exactly the participants in ids and
// returns the aggregated, verified signature — the S1 scenario's "any
// size-t subset of signers produces a Signature that verifies under the
// group VerifyingKey" (§8 property 2).
func signAs(
	t *testing.T,
	suite ciphersuite.Suite,
	keyPackages map[int]*frost.KeyPackage,
	pubKeyPkg *frost.PublicKeyPackage,
	ids []int,
	message []byte,
) *ciphersuite.Signature {
	t.Helper()

	var commitments []*frost.SigningCommitments
	nonces := make(map[int]*frost.SigningNonces, len(ids))
	for _, id := range ids {
		kp := keyPackages[id]
		n, c, err := frost.Commit(suite, kp.ID, kp.SigningShare, rand.Reader)
		if err != nil {
			t.Fatalf("Commit(%d): %v", id, err)
		}
		nonces[id] = n
		commitments = append(commitments, c)
	}

	pkg := &frost.SigningPackage{Message: message, Commitments: commitments}

	var shares []frost.SignatureShare
	for _, id := range ids {
		kp := keyPackages[id]
		z, err := frost.Round2(suite, kp, nonces[id], pkg, nil)
		if err != nil {
			t.Fatalf("Round2(%d): %v", id, err)
		}
		shares = append(shares, frost.SignatureShare{ID: kp.ID, Z: z})
	}

	sig, err := frost.Aggregate(suite, pkg, shares, pubKeyPkg, nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if err := frost.Verify(suite, pubKeyPkg.VerifyingKey.Element, message, sig, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return sig
}

// TestThresholdCorrectness implements S1: ristretto255-sha512, t=2 of n=3,
// message "test". Every size-2 subset of {1,2,3} produces a signature that
// verifies under the group key, and distinct subsets produce distinct
// (R, z) pairs that are each independently valid (§8 properties 2, and S1's
// "signers {1,3} and {2,3} produce different but equally-valid Signatures").
func TestThresholdCorrectness(t *testing.T) {
	suite := ristretto255.New()
	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, 3, 2, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("test")
	sig12 := signAs(t, suite, keyPackages, pubKeyPkg, []int{1, 2}, message)
	sig13 := signAs(t, suite, keyPackages, pubKeyPkg, []int{1, 3}, message)
	sig23 := signAs(t, suite, keyPackages, pubKeyPkg, []int{2, 3}, message)

	if bytes.Equal(sig12.R.Bytes(), sig13.R.Bytes()) || bytes.Equal(sig12.Z.Bytes(), sig13.Z.Bytes()) {
		t.Fatal("expected distinct subsets to produce distinct signatures")
	}
	if bytes.Equal(sig13.R.Bytes(), sig23.R.Bytes()) {
		t.Fatal("expected distinct subsets to produce distinct R")
	}
}

// TestAggregationMonotonicity implements §8 property 3: the final
// signature is independent of the order shares are presented for
// aggregation.
func TestAggregationMonotonicity(t *testing.T) {
	suite := ristretto255.New()
	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, 3, 2, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("order independence")
	var commitments []*frost.SigningCommitments
	nonces := make(map[int]*frost.SigningNonces)
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		n, c, err := frost.Commit(suite, kp.ID, kp.SigningShare, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		nonces[id] = n
		commitments = append(commitments, c)
	}
	pkg := &frost.SigningPackage{Message: message, Commitments: commitments}

	var shares []frost.SignatureShare
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		z, err := frost.Round2(suite, kp, nonces[id], pkg, nil)
		if err != nil {
			t.Fatal(err)
		}
		shares = append(shares, frost.SignatureShare{ID: kp.ID, Z: z})
	}

	forward, err := frost.Aggregate(suite, pkg, shares, pubKeyPkg, nil)
	if err != nil {
		t.Fatal(err)
	}
	reversed := []frost.SignatureShare{shares[1], shares[0]}
	backward, err := frost.Aggregate(suite, pkg, reversed, pubKeyPkg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(forward.R.Bytes(), backward.R.Bytes()) || !bytes.Equal(forward.Z.Bytes(), backward.Z.Bytes()) {
		t.Fatal("expected share order to not affect the aggregated signature")
	}
}

// TestShareVerificationSoundness implements S4/§8 property 4: corrupting a
// share causes aggregation to fail with InvalidSignatureShareError naming
// the culprit.
func TestShareVerificationSoundness(t *testing.T) {
	suite := ristretto255.New()
	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, 3, 2, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("corruption")
	var commitments []*frost.SigningCommitments
	nonces := make(map[int]*frost.SigningNonces)
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		n, c, err := frost.Commit(suite, kp.ID, kp.SigningShare, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		nonces[id] = n
		commitments = append(commitments, c)
	}
	pkg := &frost.SigningPackage{Message: message, Commitments: commitments}

	var shares []frost.SignatureShare
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		z, err := frost.Round2(suite, kp, nonces[id], pkg, nil)
		if err != nil {
			t.Fatal(err)
		}
		shares = append(shares, frost.SignatureShare{ID: kp.ID, Z: z})
	}

	shares[1].Z = shares[1].Z.Add(suite.Group().One())

	_, err = frost.Aggregate(suite, pkg, shares, pubKeyPkg, nil)
	var shareErr *frost.InvalidSignatureShareError
	if !errors.As(err, &shareErr) {
		t.Fatalf("expected InvalidSignatureShareError, got %v", err)
	}
	testutils.AssertBytesEqual(t, keyPackages[2].ID.Bytes(), shareErr.Culprit.Bytes())
	testutils.AssertErrorIs(t, "aggregation error", err, frost.ErrInvalidSignatureShare)
}

// TestBindingFactorSensitivity implements §8 property 5: a signer producing
// a share under one SigningPackage must fail aggregation if the
// commitments map presented to the aggregator later differs.
func TestBindingFactorSensitivity(t *testing.T) {
	suite := ristretto255.New()
	secret, err := suite.Group().RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	keyPackages, pubKeyPkg, err := testutils.TrustedDealerKeyGen(suite, secret, 3, 2, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("binding")
	var commitmentsA, commitmentsB []*frost.SigningCommitments
	nonces := make(map[int]*frost.SigningNonces)
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		n, c, err := frost.Commit(suite, kp.ID, kp.SigningShare, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		nonces[id] = n
		commitmentsA = append(commitmentsA, c)
	}
	// A different, independently generated commitment round for the same
	// two signers.
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		_, c, err := frost.Commit(suite, kp.ID, kp.SigningShare, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		commitmentsB = append(commitmentsB, c)
	}

	pkgA := &frost.SigningPackage{Message: message, Commitments: commitmentsA}
	pkgB := &frost.SigningPackage{Message: message, Commitments: commitmentsB}

	var shares []frost.SignatureShare
	for _, id := range []int{1, 2} {
		kp := keyPackages[id]
		z, err := frost.Round2(suite, kp, nonces[id], pkgA, nil)
		if err != nil {
			t.Fatal(err)
		}
		shares = append(shares, frost.SignatureShare{ID: kp.ID, Z: z})
	}

	// Shares were computed against pkgA's binding factors; aggregating
	// them against pkgB (a different commitment round) must fail.
	_, err = frost.Aggregate(suite, pkgB, shares, pubKeyPkg, nil)
	if err == nil {
		t.Fatal("expected aggregation against a different SigningPackage to fail")
	}
}

// TestDuplicateIdentifierRejected implements S5: two signers sharing an
// identifier must be rejected rather than silently miscomputing binding
// factors or Lagrange coefficients.
func TestDuplicateIdentifierRejected(t *testing.T) {
	suite := ristretto255.New()
	id5 := frost.IdentifierFromUint16(suite, 5)

	d1, c1, err := frost.Commit(suite, id5, frost.SigningShare{ID: id5, Scalar: mustScalar(t, suite, 1)}, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	_ = d1
	_, c2, err := frost.Commit(suite, id5, frost.SigningShare{ID: id5, Scalar: mustScalar(t, suite, 2)}, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	pkg := &frost.SigningPackage{Message: []byte("dup"), Commitments: []*frost.SigningCommitments{c1, c2}}

	_, err = frost.Aggregate(suite, pkg, nil, nil, nil)
	testutils.AssertErrorIs(t, "duplicate-identifier aggregation error", err, frost.ErrDuplicateIdentifier)
}

func mustScalar(t *testing.T, suite ciphersuite.Suite, v byte) ciphersuite.Scalar {
	t.Helper()
	b := make([]byte, suite.Group().ScalarSize())
	b[len(b)-1] = v
	s, err := suite.Group().NewScalar().SetCanonicalBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
