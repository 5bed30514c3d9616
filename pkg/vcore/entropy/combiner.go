package entropy

import (
	"fmt"
	"sync"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// MaxCombinerChildren caps the number of child sources a Combiner may hold.
const MaxCombinerChildren = 50

// ClassIDCombiner is the stable class id for Combiner.
const ClassIDCombiner marshal.ClassID = "vcore.entropy.Combiner"

// Combiner XORs the outputs of up to MaxCombinerChildren child sources: it
// reads the full output from child 0, then XORs in each subsequent child's
// output of the same length.
type Combiner struct {
	mu       sync.Mutex
	children []Source
}

// NewCombiner builds a Combiner over the given children.
func NewCombiner(children ...Source) (*Combiner, error) {
	if len(children) == 0 {
		return nil, &ValidationError{Cause: fmt.Errorf("combiner needs at least one child")}
	}
	if len(children) > MaxCombinerChildren {
		return nil, &ValidationError{Cause: fmt.Errorf("combiner children %d exceeds max %d", len(children), MaxCombinerChildren)}
	}
	cp := make([]Source, len(children))
	copy(cp, children)
	return &Combiner{children: cp}, nil
}

// GetBytes fills dest with the XOR of every child's output of len(dest)
// bytes, serialized against concurrent callers on the same Combiner.
func (c *Combiner) GetBytes(dest []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.children[0].GetBytes(dest); err != nil {
		return err
	}
	if len(c.children) == 1 {
		return nil
	}

	tmp := make([]byte, len(dest))
	for _, child := range c.children[1:] {
		if err := child.GetBytes(tmp); err != nil {
			return err
		}
		for i := range dest {
			dest[i] ^= tmp[i]
		}
	}
	return nil
}

// ClassID implements marshal.Marshaler.
func (c *Combiner) ClassID() marshal.ClassID { return ClassIDCombiner }

// ToByteTree implements marshal.Marshaler: Node(marshal(child_0), ...,
// marshal(child_{n-1})). Only children that are
// themselves Marshaler are representable; Device is deliberately not
// persistable (it names a local OS resource, not portable data), so a
// Combiner built over a Device cannot be marshaled: ToByteTree panics in
// that case, since it is a programmer error to attempt it, not a malformed
// wire condition.
func (c *Combiner) ToByteTree() *bytetree.ByteTree {
	children := make([]*bytetree.ByteTree, len(c.children))
	for i, child := range c.children {
		m, ok := child.(marshal.Marshaler)
		if !ok {
			panic(fmt.Sprintf("entropy: combiner child %d (%T) is not marshalable", i, child))
		}
		children[i] = marshal.Marshal(m)
	}
	return bytetree.Node(children...)
}

// CombinerFactory returns the registry factory for Combiner, recursing into
// reg to reconstruct each child. A child count beyond MaxCombinerChildren
// is a FormatError before any child is even unmarshaled.
func CombinerFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() {
			return nil, &marshal.FormatError{Cause: fmt.Errorf("combiner payload must be a node")}
		}
		n := payload.NumChildren()
		if n == 0 || n > MaxCombinerChildren {
			return nil, &marshal.FormatError{Cause: fmt.Errorf("combiner children %d exceeds max %d", n, MaxCombinerChildren)}
		}
		children := make([]Source, n)
		for i := 0; i < n; i++ {
			childAny, err := reg.Unmarshal(payload.Child(i), rs, certainty)
			if err != nil {
				return nil, err
			}
			child, ok := childAny.(Source)
			if !ok {
				return nil, &marshal.FormatError{Cause: fmt.Errorf("combiner child %d is not a random source", i)}
			}
			children[i] = child
		}
		return NewCombiner(children...)
	}
}
