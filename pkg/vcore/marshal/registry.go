package marshal

import (
	"fmt"
	"sync"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
)

// Registry maps a class id to the factory that reconstructs it from a
// byte-tree. The registry is populated once at initialization and is
// read-only thereafter in normal operation; the
// mutex exists so tests and multi-module setups can still register
// concurrently without a data race.
type Registry struct {
	mu        sync.RWMutex
	factories map[ClassID]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ClassID]Factory)}
}

// Register associates id with f. Registering the same id twice overwrites
// the previous factory; callers are expected to register each type exactly
// once during wiring (see package wire).
func (r *Registry) Register(id ClassID, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

// Unmarshal looks up tree's class id and dispatches to its factory.
// tree must be the full Node(Leaf(class_id), payload)
// produced by Marshal; rs and certainty are threaded down to the factory
// for any probabilistic validation of embedded parameters.
func (r *Registry) Unmarshal(tree *bytetree.ByteTree, rs RandomSource, certainty int) (any, error) {
	if !tree.IsNode() || tree.NumChildren() != 2 {
		return nil, &FormatError{Cause: fmt.Errorf("marshalized object must be a 2-child node, got %v", shapeOf(tree))}
	}
	idLeaf := tree.Child(0)
	if !idLeaf.IsLeaf() {
		return nil, &FormatError{Cause: fmt.Errorf("class id must be a leaf")}
	}
	reader := bytetree.NewReader(idLeaf)
	idBytes, err := reader.Read()
	if err != nil {
		return nil, &FormatError{Cause: err}
	}
	if len(idBytes) > MaxClassIDLen {
		return nil, &FormatError{Cause: fmt.Errorf("class id exceeds %d bytes", MaxClassIDLen)}
	}
	id := ClassID(idBytes)

	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &FormatError{Cause: fmt.Errorf("unknown class id %q", id)}
	}

	return factory(tree.Child(1), rs, certainty)
}

func shapeOf(t *bytetree.ByteTree) string {
	if t.IsLeaf() {
		return "leaf"
	}
	return fmt.Sprintf("node(%d children)", t.NumChildren())
}

// MaxClassIDLen bounds the class-id leaf length, the same cap applied to
// algorithm names (class ids and algorithm names share the same
// textual-identifier shape).
const MaxClassIDLen = 100
