package ristretto255

import (
	"crypto/sha512"

	"github.com/gtank/ristretto255"

	"threshold.network/roast/ciphersuite"
)

const contextString = "FROST-ristretto255-SHA512-v1"

// Suite is the generic, non-tweaked FROST ciphersuite over ristretto255.
// Every effective_* hook is the identity (embedded from
// ciphersuite.IdentityHooks), matching SPEC_FULL.md §9's "generic
// ciphersuites simply define SigningParameters = () and identity hooks".
type Suite struct {
	ciphersuite.IdentityHooks
	group Group
}

// New constructs the ristretto255-sha512 ciphersuite.
func New() *Suite {
	s := &Suite{group: Group{}}
	s.IdentityHooks = ciphersuite.IdentityHooks{Grp: s.group, Hash2: s.H2}
	return s
}

func (s *Suite) Name() string           { return contextString }
func (s *Suite) Group() ciphersuite.Group { return s.group }

// hashToScalar hashes a domain-separated, tagged message with SHA-512 and
// reduces the 64-byte digest modulo the group order via SetUniformBytes.
// Using the full wide digest (rather than truncating to 32 bytes the way
// BIP340's tagged hash does for secp256k1) keeps bias negligible regardless
// of how close the group order is to a power of two, per §9's randomness
// discipline note.
func hashToScalar(label string, parts ...[]byte) ciphersuite.Scalar {
	h := sha512.New()
	h.Write([]byte(contextString))
	h.Write([]byte(label))
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)

	sc := ristretto255.NewScalar()
	if _, err := sc.SetUniformBytes(digest); err != nil {
		// SetUniformBytes only rejects wrong-length input; a 64-byte
		// sha512.Sum is always the right length.
		panic(err)
	}
	return wrapScalar(sc)
}

func hashRaw(label string, parts ...[]byte) []byte {
	h := sha512.New()
	h.Write([]byte(contextString))
	h.Write([]byte(label))
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// H1 is the binding-factor hash ("rho"), §4.B.
func (s *Suite) H1(m ...[]byte) ciphersuite.Scalar { return hashToScalar("rho", m...) }

// H2 is the challenge hash, §4.B.
func (s *Suite) H2(m ...[]byte) ciphersuite.Scalar { return hashToScalar("chal", m...) }

// H3 is the nonce-generation hash, §4.D.
func (s *Suite) H3(m ...[]byte) ciphersuite.Scalar { return hashToScalar("nonce", m...) }

// H4 is the message-commitment hash, §4.E step 1.
func (s *Suite) H4(m []byte) []byte { return hashRaw("msg", m) }

// H5 is the commitments-list hash, §4.E step 1.
func (s *Suite) H5(m []byte) []byte { return hashRaw("com", m) }
