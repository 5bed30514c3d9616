package wire

import (
	"fmt"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// Unmarshal reconstructs a typed T from tree via reg, returning a
// marshal.FormatError if the registry produced a value of the wrong Go
// type: a reconstruction-time assertion failure rather than a wire-format
// one, but still a condition attacker-controlled bytes can trigger (a class
// id whose factory legitimately returns some other interface implementer),
// so it must not panic.
func Unmarshal[T any](reg *marshal.Registry, tree *bytetree.ByteTree, rs entropy.Source, certainty int) (T, error) {
	var zero T
	v, err := reg.Unmarshal(tree, rs, certainty)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &marshal.FormatError{Cause: fmt.Errorf("unmarshal: expected %T, got %T", zero, v)}
	}
	return t, nil
}
