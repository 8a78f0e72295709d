package testutils

import (
	"encoding/hex"
	"fmt"
	"io"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/frost"
)

// TrustedDealerKeyGen implements §4.K's trusted-dealer test fixture: it
// splits a secret scalar into n Shamir shares of a degree-(t-1) polynomial
// over the ciphersuite's own scalar field, generalized from teacher
// internal/testutils/shamir.go's *big.Int/order-modulus arithmetic to
// ciphersuite.Scalar/ciphersuite.Group so the same dealer works for every
// ciphersuite this module ships. DKG is an explicit core Non-goal (§1); this
// exists purely so package tests and cmd/roastdemo have key material to
// drive the real signing path without one.
func TrustedDealerKeyGen(
	suite ciphersuite.Suite,
	secret ciphersuite.Scalar,
	n, t int,
	rng io.Reader,
) (map[int]*frost.KeyPackage, *frost.PublicKeyPackage, error) {
	if t < 1 || t > n {
		return nil, nil, fmt.Errorf("testutils: invalid threshold %d of %d", t, n)
	}

	grp := suite.Group()
	coefficients := make([]ciphersuite.Scalar, t)
	coefficients[0] = secret
	for i := 1; i < t; i++ {
		c, err := grp.RandomScalar(rng)
		if err != nil {
			return nil, nil, fmt.Errorf("testutils: generating coefficient %d: %w", i, err)
		}
		coefficients[i] = c
	}

	commitment := frost.VSSCommitment{Coefficients: make([]ciphersuite.Element, t)}
	for i, c := range coefficients {
		commitment.Coefficients[i] = grp.Generator().ScalarMult(c)
	}

	verifyingKey := frost.VerifyingKey{Element: commitment.Coefficients[0]}

	keyPackages := make(map[int]*frost.KeyPackage, n)
	pubShares := make(map[string]frost.VerifyingShare, n)

	for i := 1; i <= n; i++ {
		id := frost.IdentifierFromUint16(suite, uint16(i))
		secretShare := evaluatePolynomial(coefficients, id)
		verifyingShare := commitment.VerifyingShareFor(suite, id)

		keyPackages[i] = &frost.KeyPackage{
			ID:             id,
			SigningShare:   frost.SigningShare{ID: id, Scalar: secretShare},
			VerifyingShare: verifyingShare,
			VerifyingKey:   verifyingKey,
			MinSigners:     t,
		}
		pubShares[hex.EncodeToString(id.Bytes())] = verifyingShare
	}

	pubKeyPkg := &frost.PublicKeyPackage{
		VerifyingKey:    verifyingKey,
		VerifyingShares: pubShares,
	}

	return keyPackages, pubKeyPkg, nil
}

// evaluatePolynomial computes Σ_j coefficients[j] * id^j over the
// ciphersuite's scalar field, the Shamir share a trusted dealer hands to
// the participant at x-coordinate id.
func evaluatePolynomial(coefficients []ciphersuite.Scalar, id ciphersuite.Scalar) ciphersuite.Scalar {
	result := coefficients[len(coefficients)-1]
	for i := len(coefficients) - 2; i >= 0; i-- {
		result = result.Mul(id).Add(coefficients[i])
	}
	return result
}
