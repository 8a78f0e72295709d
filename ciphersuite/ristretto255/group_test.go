package ristretto255_test

import (
	"crypto/rand"
	"testing"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/ciphersuite/ristretto255"
	"threshold.network/roast/internal/testutils"
)

// TestScalarRoundTrip implements §8 property 1 for Scalars.
func TestScalarRoundTrip(t *testing.T) {
	grp := ristretto255.New().Group()
	s, err := grp.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := grp.NewScalar().SetCanonicalBytes(s.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	testutils.AssertBytesEqual(t, s.Bytes(), decoded.Bytes())
}

// TestElementRoundTrip implements §8 property 1 for Elements (excluding
// identity).
func TestElementRoundTrip(t *testing.T) {
	grp := ristretto255.New().Group()
	s, err := grp.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	el := grp.Generator().ScalarMult(s)
	decoded, err := grp.NewElement().SetCanonicalBytes(el.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	testutils.AssertBytesEqual(t, el.Bytes(), decoded.Bytes())
}

// TestIdentityRejected implements §8 property 6: deserializing the
// identity element must fail.
func TestIdentityRejected(t *testing.T) {
	grp := ristretto255.New().Group()
	identityBytes := grp.Identity().Bytes()
	if _, err := grp.NewElement().SetCanonicalBytes(identityBytes); err == nil {
		t.Fatal("expected deserializing the identity element to fail")
	}
}

func TestScalarArithmetic(t *testing.T) {
	grp := ristretto255.New().Group()
	a, err := grp.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	b, err := grp.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	sum := a.Add(b)
	diff := sum.Sub(b)
	if !diff.Equal(a) {
		t.Fatal("expected (a+b)-b == a")
	}

	inv, err := a.Invert()
	if err != nil {
		t.Fatal(err)
	}
	one := a.Mul(inv)
	if !one.Equal(grp.One()) {
		t.Fatal("expected a * a^-1 == 1")
	}
}

func TestHashFunctionsAreDomainSeparated(t *testing.T) {
	suite := ristretto255.New()
	m := []byte("message")
	var rho, chal ciphersuite.Scalar = suite.H1(m), suite.H2(m)
	if rho.Equal(chal) {
		t.Fatal("expected H1 and H2 to be domain-separated from one another")
	}
	testutils.AssertBytesEqual(t, suite.H4(m), suite.H4(m))
}
