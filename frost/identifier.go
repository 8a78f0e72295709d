package frost

import (
	"bytes"

	"threshold.network/roast/ciphersuite"
)

// Identifier is a participant's index into the secret-sharing polynomial, a
// NonZeroScalar per [FROST] §4.2. Unlike the teacher's bare uint64
// signerIndex, it is a full ciphersuite.Scalar: per SPEC_FULL.md §9.1, using
// the ciphersuite's own scalar type (rather than a small integer later cast
// up) means identifiers sort and serialize exactly like every other Scalar
// in the protocol, and a ciphersuite with a differently-sized scalar field
// never has to special-case identifier width.
type Identifier = ciphersuite.Scalar

// IdentifierFromUint16 builds the Identifier for participant index i
// (1-indexed; 0 is reserved and never a valid participant identifier,
// matching [FROST]'s NonZeroScalar requirement). The scalar is built by
// double-and-add from Group.One(), since the byte order of the canonical
// encoding differs between ciphersuites.
func IdentifierFromUint16(suite ciphersuite.Suite, i uint16) Identifier {
	grp := suite.Group()
	out := grp.NewScalar()
	for bit := 15; bit >= 0; bit-- {
		out = out.Add(out)
		if i&(1<<bit) != 0 {
			out = out.Add(grp.One())
		}
	}
	return out
}

func identifiersEqual(a, b Identifier) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// concat returns a freshly allocated concatenation of a and bs, never
// aliasing or mutating its inputs.
func concat(a []byte, bs ...[]byte) []byte {
	c := make([]byte, len(a))
	copy(c, a)
	for _, b := range bs {
		c = append(c, b...)
	}
	return c
}
