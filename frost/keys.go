package frost

import (
	"encoding/hex"

	"threshold.network/roast/ciphersuite"
)

// VerifyingKey is the group public key, PK in [FROST], against which a
// completed signature verifies.
type VerifyingKey struct {
	Element ciphersuite.Element
}

// Bytes returns the ciphersuite's canonical compressed encoding of the key.
func (k VerifyingKey) Bytes() []byte { return k.Element.Bytes() }

// SigningShare is a single participant's share s_i of the group secret key,
// as produced by trusted-dealer key generation or a DKG this package does
// not implement (§6, Non-goals).
type SigningShare struct {
	ID     Identifier
	Scalar ciphersuite.Scalar
}

// Destroy clears the share's secret scalar.
func (s SigningShare) Destroy() { s.Scalar.Destroy() }

// VerifyingShare is the public commitment Y_i = s_i * G to a participant's
// signing share, used to verify that participant's signature share during
// aggregation without learning s_i.
type VerifyingShare struct {
	ID      Identifier
	Element ciphersuite.Element
}

// VSSCommitment is the list of Feldman/Pedersen-style commitments to the
// coefficients of the secret-sharing polynomial, [a_0*G, a_1*G, ..., a_{t-1}*G]
// with a_0*G = the group's VerifyingKey. A trusted dealer publishes this
// alongside each participant's share so every participant can independently
// derive (and later re-derive) every other participant's VerifyingShare,
// per [FROST] §2.1's verifiable secret sharing requirement.
type VSSCommitment struct {
	Coefficients []ciphersuite.Element
}

// VerifyingShareFor evaluates the VSS commitment at id, producing the
// VerifyingShare a trusted dealer would otherwise have to transmit
// separately: Y_i = Σ_j (id^j * Coefficients[j]).
func (c VSSCommitment) VerifyingShareFor(suite ciphersuite.Suite, id Identifier) VerifyingShare {
	grp := suite.Group()
	acc := grp.Identity()
	power := grp.One()

	for _, coeff := range c.Coefficients {
		acc = acc.Add(coeff.ScalarMult(power))
		power = power.Mul(id)
	}
	return VerifyingShare{ID: id, Element: acc}
}

// KeyPackage bundles everything a single signer needs to participate in a
// signing session: its own index, secret share, public commitment to that
// share, and the group's overall verifying key.
type KeyPackage struct {
	ID             Identifier
	SigningShare   SigningShare
	VerifyingShare VerifyingShare
	VerifyingKey   VerifyingKey
	MinSigners     int
}

// PublicKeyPackage is the public counterpart every participant and the
// coordinator hold: the group verifying key plus every participant's
// verifying share, keyed by the hex encoding of its canonical identifier
// bytes (Identifier is an interface value and so cannot be a map key
// directly).
type PublicKeyPackage struct {
	VerifyingKey    VerifyingKey
	VerifyingShares map[string]VerifyingShare
}

func idKey(id Identifier) string { return hex.EncodeToString(id.Bytes()) }

// ShareFor looks up the VerifyingShare for id, returning
// ErrIdentifierNotFound if the package does not carry one.
func (pkg PublicKeyPackage) ShareFor(id Identifier) (VerifyingShare, error) {
	share, ok := pkg.VerifyingShares[idKey(id)]
	if !ok {
		return VerifyingShare{}, ErrIdentifierNotFound
	}
	return share, nil
}
