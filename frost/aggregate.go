package frost

import (
	"fmt"

	"threshold.network/roast/ciphersuite"
)

// SignatureShare is a single signer's contribution to Round Two, tagged
// with the identifier it came from so Aggregate can report precisely which
// share failed verification.
type SignatureShare struct {
	ID Identifier
	Z  ciphersuite.Scalar
}

// Aggregate implements Signature Share Aggregation from [FROST] §5.3.
//
// Unlike the teacher's Coordinator.Aggregate, which sums signature shares
// with no validation at all, every share is checked against its signer's
// VerifyingShare before being trusted (§4.F step 6): z_i*G must equal
// effective_commitment_share(R_i, R) + c*lambda_i*effective_verifying_share(Y_i, PK).
// A share that fails this check is reported via InvalidSignatureShareError
// naming the culprit, rather than silently corrupting the aggregate the way
// the teacher's version would.
func Aggregate(
	suite ciphersuite.Suite,
	pkg *SigningPackage,
	shares []SignatureShare,
	pubKeyPkg *PublicKeyPackage,
	params ciphersuite.SigningParameters,
) (*ciphersuite.Signature, error) {
	if err := pkg.validateCommitments(nil); err != nil {
		return nil, err
	}
	if len(shares) != len(pkg.Commitments) {
		return nil, fmt.Errorf("%w: got %d shares for %d commitments", ErrNotEnoughShares, len(shares), len(pkg.Commitments))
	}

	groupPK := pubKeyPkg.VerifyingKey.Element
	factors := computeBindingFactors(suite, groupPK, pkg.Message, pkg.Commitments)
	rawR := computeGroupCommitment(suite, pkg.Commitments, factors)
	participants := pkg.participantIDs()

	rEff := suite.EffectiveNonceElement(rawR, params)
	pkEff := suite.EffectivePubkeyElement(groupPK, params)
	c := suite.Challenge(rEff, pkEff, pkg.Message)

	g := suite.Group().Generator()
	z := suite.Group().NewScalar()

	for _, share := range shares {
		commitment, err := commitmentFor(pkg.Commitments, share.ID)
		if err != nil {
			return nil, err
		}
		lambda, err := lagrangeCoefficient(suite, share.ID, participants)
		if err != nil {
			return nil, err
		}
		verifyingShare, err := pubKeyPkg.ShareFor(share.ID)
		if err != nil {
			return nil, err
		}

		rho := factors[idKey(share.ID)]
		commitmentShare := commitment.Hiding.Add(commitment.Binding.ScalarMult(rho))
		lhs := g.ScalarMult(share.Z)
		rhs := suite.EffectiveCommitmentShare(commitmentShare, rawR, params).
			Add(suite.EffectiveVerifyingShare(verifyingShare.Element, groupPK, params).ScalarMult(c.Mul(lambda)))

		if !lhs.Equal(rhs) {
			return nil, &InvalidSignatureShareError{Culprit: share.ID}
		}

		z = z.Add(share.Z)
	}

	return suite.FinalizeSignature(z, rawR, groupPK, pkg.Message, params)
}

func commitmentFor(commitments []*SigningCommitments, id Identifier) (*SigningCommitments, error) {
	for _, c := range commitments {
		if identifiersEqual(c.ID, id) {
			return c, nil
		}
	}
	return nil, ErrIdentifierNotFound
}
