package roast

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/frost"
)

// sortCommitments returns a copy of commitments sorted ascending by
// identifier, the canonical order frost.SigningPackage requires.
func sortCommitments(commitments []*frost.SigningCommitments) []*frost.SigningCommitments {
	out := make([]*frost.SigningCommitments, len(commitments))
	copy(out, commitments)
	slices.SortFunc(out, func(a, b *frost.SigningCommitments) int {
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})
	return out
}

// LocalSigner is the Signer implementation used by cmd/roastdemo and this
// package's own tests: a single-process participant holding a real
// frost.KeyPackage, answering Commit/Sign in-process rather than over a
// network (§1 Non-goals: "does not prescribe a network transport").
//
// It tracks at most one pending SigningNonces per outstanding commitment
// (keyed by the commitment's own encoding), and destroys that nonce pair
// the instant Sign consumes it, enforcing §5's "signer MUST refuse to emit
// another [share] for the same (session, nonces)" by construction: a
// second Sign call for the same commitment list finds nothing pending and
// answers with a nil share, exactly like the teacher's member.go spent flag.
type LocalSigner struct {
	Suite  ciphersuite.Suite
	KeyPkg *frost.KeyPackage

	// Misbehave, when set, reproduces one of the teacher's member.go
	// corruption modes for testing §8.1 scenario S7.
	Misbehave Misbehavior

	mu      sync.Mutex
	pending map[string]*frost.SigningNonces
}

// Misbehavior selects a LocalSigner's deliberate fault for ROAST robustness
// testing, mirroring teacher member.go's DoesNotCommit/DoesNotRespond/
// RespondsMaliciously constants.
type Misbehavior int

const (
	// Honest behaves correctly at all times.
	Honest Misbehavior = iota
	// DoesNotCommit never answers a commit request.
	DoesNotCommit
	// DoesNotRespond commits but never answers a sign request.
	DoesNotRespond
	// RespondsMaliciously answers a sign request with a corrupted share.
	RespondsMaliciously
)

func NewLocalSigner(suite ciphersuite.Suite, keyPkg *frost.KeyPackage) *LocalSigner {
	return &LocalSigner{Suite: suite, KeyPkg: keyPkg, pending: make(map[string]*frost.SigningNonces)}
}

func (m *LocalSigner) ID() frost.Identifier { return m.KeyPkg.ID }

func commitmentKey(c *frost.SigningCommitments) string {
	return string(c.ID.Bytes()) + "|" + string(c.Hiding.Bytes()) + "|" + string(c.Binding.Bytes())
}

// Commit implements Signer.Commit: generate a fresh nonce pair (§4.D) and
// retain it under its own commitment encoding until a matching Sign call
// consumes it.
func (m *LocalSigner) Commit(ctx context.Context) (*frost.SigningCommitments, error) {
	if m.Misbehave == DoesNotCommit {
		return nil, nil
	}

	nonces, commitments, err := frost.Commit(m.Suite, m.KeyPkg.ID, m.KeyPkg.SigningShare, nil)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.pending[commitmentKey(commitments)] = nonces
	m.mu.Unlock()

	return commitments, nil
}

// Sign implements Signer.Sign: answer a SigningPackage with a signature
// share computed from the nonce pair retained for this signer's own
// commitment in pkg.Commitments, destroying that nonce pair in the
// process. Returns a nil share (not an error) if this signer never
// committed for this exact commitment list, or has already signed for it.
func (m *LocalSigner) Sign(ctx context.Context, pkg *frost.SigningPackage, params ciphersuite.SigningParameters) (*frost.SignatureShare, error) {
	if m.Misbehave == DoesNotRespond {
		return nil, nil
	}

	var mine *frost.SigningCommitments
	for _, c := range pkg.Commitments {
		if bytes.Equal(c.ID.Bytes(), m.KeyPkg.ID.Bytes()) {
			mine = c
			break
		}
	}
	if mine == nil {
		return nil, nil
	}

	key := commitmentKey(mine)
	m.mu.Lock()
	nonces, ok := m.pending[key]
	if ok {
		delete(m.pending, key)
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	defer nonces.Destroy()

	if m.Misbehave == RespondsMaliciously {
		garbage, err := m.Suite.Group().RandomScalar(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("roast: generating malicious share: %w", err)
		}
		return &frost.SignatureShare{ID: m.KeyPkg.ID, Z: garbage}, nil
	}

	z, err := frost.Round2(m.Suite, m.KeyPkg, nonces, pkg, params)
	if err != nil {
		return nil, err
	}
	return &frost.SignatureShare{ID: m.KeyPkg.ID, Z: z}, nil
}
