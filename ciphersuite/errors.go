package ciphersuite

import "errors"

// Sentinel errors surfaced by Suite implementations and the low-level
// algebra, per SPEC_FULL.md §7.
var (
	ErrInvalidScalar   = errors.New("ciphersuite: invalid scalar encoding")
	ErrInvalidElement  = errors.New("ciphersuite: invalid element encoding")
	ErrIdentityElement = errors.New("ciphersuite: element is the identity")
	ErrInvalidSignature = errors.New("ciphersuite: signature failed verification")
	// ErrInvalidProofOfKnowledge is returned by adaptor-signature extraction
	// when the recovered witness does not satisfy t*G == T.
	ErrInvalidProofOfKnowledge = errors.New("ciphersuite: extracted witness does not match adaptor point")
)
