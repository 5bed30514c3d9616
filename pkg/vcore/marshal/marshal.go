// Package marshal implements the canonical "marshalized object" format:
// every persistable vcore type wraps itself as
// Node(Leaf(class_id), payload) and is reconstructed by looking the class id
// up in a Registry and dispatching to a typed factory.
package marshal

import (
	"encoding/hex"
	"fmt"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
)

// ClassID is the stable textual identifier chosen once per persistable
// type.
type ClassID string

// RandomSource is the auxiliary randomness a factory may consume for
// probabilistic validation of embedded parameters. It mirrors
// entropy.Source method-for-method; it is declared here rather than
// imported so that package entropy can itself register marshalable types
// without a dependency cycle. Any entropy.Source satisfies it directly.
type RandomSource interface {
	GetBytes(dest []byte) error
}

// Marshaler is implemented by every persistable vcore type: its own class
// id, and the byte-tree encoding of everything but the class id itself.
type Marshaler interface {
	ClassID() ClassID
	ToByteTree() *bytetree.ByteTree
}

// Marshal wraps obj as Node(Leaf(class_id), payload).
func Marshal(obj Marshaler) *bytetree.ByteTree {
	return bytetree.Node(bytetree.StringLeaf(string(obj.ClassID())), obj.ToByteTree())
}

// MarshalHex renders obj as the human-readable line "class_id::HEX(bytes)".
func MarshalHex(obj Marshaler) string {
	tree := Marshal(obj)
	return fmt.Sprintf("%s::%s", obj.ClassID(), hex.EncodeToString(tree.ToBytes()))
}

// Factory reconstructs a value of some registered type from the payload
// byte-tree (the node's second child, i.e. everything after the class-id
// leaf), an auxiliary random source, and a certainty parameter for any
// probabilistic subchecks (e.g. primality, group membership).
type Factory func(payload *bytetree.ByteTree, rs RandomSource, certainty int) (any, error)
