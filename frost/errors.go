package frost

import "fmt"

// Sentinel errors returned by the frost package, per SPEC_FULL.md §7.
var (
	ErrInvalidCommitmentList  = fmt.Errorf("frost: commitment list failed validation")
	ErrCommitmentNotSorted    = fmt.Errorf("frost: commitment list is not sorted in ascending order by identifier")
	ErrSignerNotInCommitments = fmt.Errorf("frost: signer's own commitment is missing from the commitment list")
	ErrDuplicateIdentifier    = fmt.Errorf("frost: duplicate identifier")
	ErrNotEnoughShares        = fmt.Errorf("frost: number of signature shares does not match the number of commitments")
	ErrIdentifierNotFound     = fmt.Errorf("frost: identifier not present in the supplied set")
	// ErrInvalidSignatureShare is the shared sentinel InvalidSignatureShareError
	// unwraps to, so callers that only need to know "some share was invalid"
	// can use errors.Is(err, frost.ErrInvalidSignatureShare) instead of a type
	// assertion to read Culprit.
	ErrInvalidSignatureShare = fmt.Errorf("frost: signature share failed verification")
)

// InvalidSignatureShareError reports that a particular signer's share
// failed the per-share verification equation during aggregation (§4.F step
// 6). Unlike the sentinels above, this carries the offending identifier so
// a coordinator (or ROAST, §4.J) can exclude exactly that signer and retry
// rather than aborting the whole session.
type InvalidSignatureShareError struct {
	Culprit Identifier
}

func (e *InvalidSignatureShareError) Error() string {
	return fmt.Sprintf("frost: signature share from signer %x failed verification", e.Culprit.Bytes())
}

func (e *InvalidSignatureShareError) Unwrap() error { return ErrInvalidSignatureShare }
