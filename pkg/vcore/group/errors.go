package group

import (
	"fmt"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
)

func errTupleShape(want int, t *bytetree.ByteTree) error {
	got := 0
	if t.IsNode() {
		got = t.NumChildren()
	}
	return fmt.Errorf("expected a %d-element tuple node, got %d children (isNode=%v)", want, got, t.IsNode())
}

// FormatError reports a malformed byte-tree encoding of a group/ring
// element.
type FormatError struct {
	Cause error
}

func (e *FormatError) Error() string { return fmt.Sprintf("group: format error: %v", e.Cause) }
func (e *FormatError) Unwrap() error { return e.Cause }

// ValidationError reports an element that parses but fails a membership or
// range check.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("group: validation error: %v", e.Cause)
}
func (e *ValidationError) Unwrap() error { return e.Cause }
