package frost

import (
	"crypto/rand"
	"fmt"
	"io"

	"threshold.network/roast/ciphersuite"
)

// SigningNonces is the pair of secret nonces a signer generates in Round
// One and must hold onto (and destroy after use) until Round Two.
type SigningNonces struct {
	Hiding  ciphersuite.Scalar
	Binding ciphersuite.Scalar
}

// Destroy clears both nonce scalars. Callers must call this once Round Two
// has produced a signature share; per §5, nonces must never be reused.
func (n *SigningNonces) Destroy() {
	n.Hiding.Destroy()
	n.Binding.Destroy()
}

// SigningCommitments is the public commitment pair a signer broadcasts in
// Round One, tagged with its identifier so a coordinator can assemble the
// sorted commitment_list [FROST] §5.2 requires.
type SigningCommitments struct {
	ID      Identifier
	Hiding  ciphersuite.Element
	Binding ciphersuite.Element
}

// nonceGenerate implements def nonce_generate(secret) from [FROST] §5.1:
// hedge a fresh nonce against a weak RNG by hashing random bytes together
// with the signer's own secret share, rather than trusting the RNG alone.
func nonceGenerate(suite ciphersuite.Suite, secret ciphersuite.Scalar, rng io.Reader) (ciphersuite.Scalar, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rng, b); err != nil {
		return nil, fmt.Errorf("frost: nonce generation failed to read randomness: %w", err)
	}
	// nonce = H3(random_bytes || little_endian_serialize(secret))
	return suite.H3(b, secret.LittleEndianBytes()), nil
}

// Commit implements Round One - Commitment from [FROST] §5.1: generate a
// hiding and a binding nonce (each hedged per nonceGenerate), and return
// both the secret nonce pair and the public commitment a signer sends to
// the coordinator.
func Commit(suite ciphersuite.Suite, id Identifier, share SigningShare, rng io.Reader) (*SigningNonces, *SigningCommitments, error) {
	if rng == nil {
		rng = rand.Reader
	}

	hiding, err := nonceGenerate(suite, share.Scalar, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("frost: hiding nonce: %w", err)
	}
	binding, err := nonceGenerate(suite, share.Scalar, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("frost: binding nonce: %w", err)
	}

	g := suite.Group().Generator()
	nonces := &SigningNonces{Hiding: hiding, Binding: binding}
	commitments := &SigningCommitments{
		ID:      id,
		Hiding:  g.ScalarMult(hiding),
		Binding: g.ScalarMult(binding),
	}
	return nonces, commitments, nil
}
