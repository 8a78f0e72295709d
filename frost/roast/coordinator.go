// Package roast implements the ROAST robust-asynchronous wrapper (§4.J)
// around the frost package's two-round signing protocol: a coordinator
// that retries with a fresh subset whenever a participant is unreachable or
// returns an invalid signature share, permanently excluding the culprit,
// rather than aborting the whole session.
//
// [ROAST]
//
//	Ruffing T., Ronge V., Jin E., Schneider-Bensch J., Schroder D.,
//	"ROAST: Robust Asynchronous Schnorr Threshold Signatures"
//	<https://eprint.iacr.org/2022/550.pdf>
//
// Grounded on the teacher's channel-based roast.go/coordinator.go/member.go/
// protocol.go simulation, generalized over any ciphersuite.Suite instead of
// being hardwired to package-level BIP340 globals.
package roast

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"threshold.network/roast/ciphersuite"
	"threshold.network/roast/frost"
)

// Signer is the coordinator's view of a remote participant: the two
// request/response calls ROAST drives per attempt. Implementations are
// expected to be safe for concurrent use by at most one in-flight call at a
// time (the coordinator never calls Commit/Sign on the same Signer
// concurrently), mirroring the teacher's one-goroutine-per-member shape.
type Signer interface {
	ID() frost.Identifier
	// Commit answers a round-1 commitment request. An error or a nil
	// commitments pointer both mean "unreachable this attempt" — the
	// teacher's DoesNotCommit/DoesNotRespond behaviors.
	Commit(ctx context.Context) (*frost.SigningCommitments, error)
	// Sign answers a round-2 signing request for exactly the given
	// SigningPackage. A nil share means "did not respond"; an error
	// propagates as an unreachable signer for this attempt.
	Sign(ctx context.Context, pkg *frost.SigningPackage, params ciphersuite.SigningParameters) (*frost.SignatureShare, error)
}

// ErrPoolExhausted is returned once fewer signers remain than the
// threshold requires, per §4.J step 5.
var ErrPoolExhausted = errors.New("roast: remaining signer pool is smaller than the threshold")

// Coordinator drives the ROAST retry/exclude loop against a pool of
// Signers, producing one aggregate Signature per Run call. It is the one
// place in this repository that is genuinely concurrent (§5.1): each
// attempt fans commit/sign requests out across goroutines synchronized
// with a sync.WaitGroup and buffered channels, while every individual
// Signer call remains the synchronous, single-threaded frost protocol.
type Coordinator struct {
	Suite     ciphersuite.Suite
	PubKeyPkg *frost.PublicKeyPackage
	Threshold int
	Message   []byte
	Params    ciphersuite.SigningParameters

	// Log receives one line each time a signer fails to respond or is
	// excluded, matching the teacher's
	// member.go/protocol.go fmt.Printf idiom (§6.1) rather than a
	// structured logging library the teacher never reaches for. A nil Log
	// disables logging.
	Log func(format string, args ...any)

	mu       sync.Mutex
	excluded map[string]bool
}

func idKey(id frost.Identifier) string { return hex.EncodeToString(id.Bytes()) }

func (c *Coordinator) logf(format string, args ...any) {
	if c.Log != nil {
		c.Log(format, args...)
	}
}

func (c *Coordinator) isExcluded(id frost.Identifier) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.excluded[idKey(id)]
}

func (c *Coordinator) exclude(id frost.Identifier) {
	c.mu.Lock()
	if c.excluded == nil {
		c.excluded = make(map[string]bool)
	}
	c.excluded[idKey(id)] = true
	c.mu.Unlock()
}

// Run implements the full §4.J algorithm: it keeps attempting rounds
// against the subset of pool that is not yet excluded until aggregation
// (§4.F) succeeds, or returns ErrPoolExhausted once too few signers are
// left to reach Threshold. An attempt that fails with no attributable
// culprit ends Run at once with that error, without a retry.
func (c *Coordinator) Run(ctx context.Context, pool []Signer) (*ciphersuite.Signature, error) {
	for {
		candidates := c.activeSigners(pool)
		if len(candidates) < c.Threshold {
			return nil, ErrPoolExhausted
		}
		subset := candidates[:c.Threshold]

		sig, culprit, err := c.attempt(ctx, subset)
		if err == nil {
			return sig, nil
		}
		if culprit != nil {
			c.logf("roast: excluding misbehaving signer %x", culprit.Bytes())
			c.exclude(culprit)
			continue
		}
		// No specific culprit identified: the failure is not attributable
		// to any one signer (e.g. a malformed SigningPackage), so excluding
		// nobody and retrying the identical subset would loop forever.
		// Surface the error instead.
		return nil, fmt.Errorf("roast: attempt failed with no culprit to exclude: %w", err)
	}
}

// activeSigners returns pool members that have not yet been excluded, in
// their original order.
func (c *Coordinator) activeSigners(pool []Signer) []Signer {
	out := make([]Signer, 0, len(pool))
	for _, s := range pool {
		if !c.isExcluded(s.ID()) {
			out = append(out, s)
		}
	}
	return out
}

// attempt runs one full commit/sign/aggregate round against subset,
// §4.J steps 1-3. It returns a non-nil culprit identifier when a specific
// signer is to blame (unreachable at commit time, unreachable at sign
// time, or an invalid signature share), so Run can exclude exactly that
// signer and retry with a fresh nonce round, per step 4.
func (c *Coordinator) attempt(ctx context.Context, subset []Signer) (sig *ciphersuite.Signature, culprit frost.Identifier, err error) {
	commitments, culprit, err := c.collectCommitments(ctx, subset)
	if err != nil {
		return nil, culprit, err
	}

	pkg := &frost.SigningPackage{Message: c.Message, Commitments: commitments}

	shares, culprit, err := c.collectShares(ctx, subset, pkg)
	if err != nil {
		return nil, culprit, err
	}

	aggregated, err := frost.Aggregate(c.Suite, pkg, shares, c.PubKeyPkg, c.Params)
	if err != nil {
		var shareErr *frost.InvalidSignatureShareError
		if errors.As(err, &shareErr) {
			return nil, shareErr.Culprit, err
		}
		return nil, nil, err
	}
	return aggregated, nil, nil
}

type commitResult struct {
	id      frost.Identifier
	commits *frost.SigningCommitments
	err     error
}

// collectCommitments fans Commit out across subset using a goroutine per
// signer synchronized with a sync.WaitGroup, matching the teacher's
// RunMember/protocol.go concurrency idiom (§5.1), with context.Context
// replacing the teacher's bespoke done channel for cancellation.
func (c *Coordinator) collectCommitments(ctx context.Context, subset []Signer) ([]*frost.SigningCommitments, frost.Identifier, error) {
	results := make(chan commitResult, len(subset))
	var wg sync.WaitGroup
	wg.Add(len(subset))
	for _, s := range subset {
		go func(s Signer) {
			defer wg.Done()
			commits, err := s.Commit(ctx)
			results <- commitResult{id: s.ID(), commits: commits, err: err}
		}(s)
	}
	wg.Wait()
	close(results)

	out := make([]*frost.SigningCommitments, 0, len(subset))
	for r := range results {
		if r.err != nil || r.commits == nil {
			c.logf("roast: signer %x did not respond to commit request", r.id.Bytes())
			return nil, r.id, fmt.Errorf("roast: signer did not respond to commit request")
		}
		out = append(out, r.commits)
	}

	return sortCommitments(out), nil, nil
}

type shareResult struct {
	id    frost.Identifier
	share *frost.SignatureShare
	err   error
}

// collectShares fans Sign out the same way collectCommitments fans Commit
// out, over exactly the subset whose commitments were just gathered.
func (c *Coordinator) collectShares(ctx context.Context, subset []Signer, pkg *frost.SigningPackage) ([]frost.SignatureShare, frost.Identifier, error) {
	results := make(chan shareResult, len(subset))
	var wg sync.WaitGroup
	wg.Add(len(subset))
	for _, s := range subset {
		go func(s Signer) {
			defer wg.Done()
			share, err := s.Sign(ctx, pkg, c.Params)
			results <- shareResult{id: s.ID(), share: share, err: err}
		}(s)
	}
	wg.Wait()
	close(results)

	out := make([]frost.SignatureShare, 0, len(subset))
	for r := range results {
		if r.err != nil || r.share == nil {
			c.logf("roast: signer %x did not respond to sign request", r.id.Bytes())
			return nil, r.id, fmt.Errorf("roast: signer did not respond to sign request")
		}
		out = append(out, *r.share)
	}

	return out, nil, nil
}
