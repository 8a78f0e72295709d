package frost

import (
	"fmt"

	"threshold.network/roast/ciphersuite"
)

// SigningPackage is the message and commitment list a coordinator
// distributes to every signer at the start of Round Two.
type SigningPackage struct {
	Message     []byte
	Commitments []*SigningCommitments
}

// participantIDs returns the commitment list's identifiers in the order
// they were supplied; validateCommitments must be called first to
// guarantee that order is the required ascending sort.
func (p *SigningPackage) participantIDs() []Identifier {
	ids := make([]Identifier, len(p.Commitments))
	for i, c := range p.Commitments {
		ids[i] = c.ID
	}
	return ids
}

// validateCommitments implements participants_from_commitment_list from
// [FROST] §4.3, plus the ordering and self-inclusion checks [FROST] §5.2
// requires of a signer before it trusts a commitment list: commitments
// must be sorted ascending by identifier, contain no duplicate, and (when
// selfID is non-nil) include the calling signer's own commitment.
func (p *SigningPackage) validateCommitments(selfID Identifier) error {
	if len(p.Commitments) == 0 {
		return ErrInvalidCommitmentList
	}

	found := selfID == nil
	var last Identifier
	for i, c := range p.Commitments {
		if c == nil {
			return fmt.Errorf("%w: commitment at position %d is nil", ErrInvalidCommitmentList, i)
		}
		if last != nil {
			switch {
			case identifiersEqual(last, c.ID):
				return ErrDuplicateIdentifier
			case !(bytesLess(last.Bytes(), c.ID.Bytes())):
				return ErrCommitmentNotSorted
			}
		}
		last = c.ID
		if selfID != nil && identifiersEqual(selfID, c.ID) {
			found = true
		}
	}
	if !found {
		return ErrSignerNotInCommitments
	}
	return nil
}

func bytesLess(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// encodeCommitmentsList implements encode_group_commitment_list from
// [FROST] §4.3: identifier || hiding commitment || binding commitment,
// concatenated across the (already sorted) commitment list.
func encodeCommitmentsList(commitments []*SigningCommitments) []byte {
	var b []byte
	for _, c := range commitments {
		b = append(b, c.ID.Bytes()...)
		b = append(b, c.Hiding.Bytes()...)
		b = append(b, c.Binding.Bytes()...)
	}
	return b
}

// computeBindingFactors implements compute_binding_factors from [FROST]
// §4.4: rho_i = H1(group_public_key || H4(msg) || H5(encoded commitments) ||
// i), one per participant in the commitment list.
func computeBindingFactors(
	suite ciphersuite.Suite,
	groupPublicKey ciphersuite.Element,
	message []byte,
	commitments []*SigningCommitments,
) map[string]ciphersuite.Scalar {
	msgHash := suite.H4(message)
	commitmentsHash := suite.H5(encodeCommitmentsList(commitments))
	prefix := concat(groupPublicKey.Bytes(), msgHash, commitmentsHash)

	factors := make(map[string]ciphersuite.Scalar, len(commitments))
	for _, c := range commitments {
		factors[idKey(c.ID)] = suite.H1(prefix, c.ID.Bytes())
	}
	return factors
}

// computeGroupCommitment implements compute_group_commitment from [FROST]
// §4.5: R = Σ_i (hiding_i + rho_i * binding_i), the raw (pre effective_*)
// group nonce commitment.
func computeGroupCommitment(
	suite ciphersuite.Suite,
	commitments []*SigningCommitments,
	bindingFactors map[string]ciphersuite.Scalar,
) ciphersuite.Element {
	r := suite.Group().Identity()
	for _, c := range commitments {
		rho := bindingFactors[idKey(c.ID)]
		r = r.Add(c.Hiding).Add(c.Binding.ScalarMult(rho))
	}
	return r
}

// lagrangeCoefficient implements derive_interpolating_value from [FROST]
// §4.2, generalized from the teacher's int64 x-coordinates to full
// ciphersuite.Scalar identifiers: lambda_i = Π_{j != i} x_j / (x_j - x_i).
func lagrangeCoefficient(suite ciphersuite.Suite, id Identifier, participants []Identifier) (ciphersuite.Scalar, error) {
	grp := suite.Group()
	one := grp.One()

	num := one
	den := one
	for _, xj := range participants {
		if identifiersEqual(xj, id) {
			continue
		}
		num = num.Mul(xj)
		den = den.Mul(xj.Sub(id))
	}
	denInv, err := den.Invert()
	if err != nil {
		return nil, fmt.Errorf("frost: duplicate or degenerate participant set: %w", err)
	}
	return num.Mul(denInv), nil
}

// Round2 implements Round Two - Signature Share Generation from [FROST]
// §5.2, generalized over the effective_* hooks so the same code path
// produces a plain share for a generic ciphersuite and a taproot/adaptor
// share for the secp256k1 ciphersuite (§4.H): z_i =
// effective_nonce_secret(hiding_i) + rho_i * effective_nonce_secret(binding_i)
// + c * lambda_i * effective_secret_key(s_i).
func Round2(
	suite ciphersuite.Suite,
	keyPkg *KeyPackage,
	nonces *SigningNonces,
	pkg *SigningPackage,
	params ciphersuite.SigningParameters,
) (ciphersuite.Scalar, error) {
	if err := pkg.validateCommitments(keyPkg.ID); err != nil {
		return nil, err
	}

	groupPK := keyPkg.VerifyingKey.Element
	factors := computeBindingFactors(suite, groupPK, pkg.Message, pkg.Commitments)
	rawR := computeGroupCommitment(suite, pkg.Commitments, factors)

	participants := pkg.participantIDs()
	lambda, err := lagrangeCoefficient(suite, keyPkg.ID, participants)
	if err != nil {
		return nil, err
	}

	rEff := suite.EffectiveNonceElement(rawR, params)
	pkEff := suite.EffectivePubkeyElement(groupPK, params)
	c := suite.Challenge(rEff, pkEff, pkg.Message)

	rho := factors[idKey(keyPkg.ID)]
	hidingEff := suite.EffectiveNonceSecret(nonces.Hiding, rawR, params)
	bindingEff := suite.EffectiveNonceSecret(nonces.Binding, rawR, params)
	skEff := suite.EffectiveSecretKey(keyPkg.SigningShare.Scalar, groupPK, params)

	z := hidingEff.Add(bindingEff.Mul(rho)).Add(c.Mul(lambda).Mul(skEff))
	return z, nil
}
