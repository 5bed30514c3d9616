package bytetree

import "fmt"

// FormatError reports a malformed byte-tree: a length field exceeding the
// remaining buffer, an unrecognized tag byte, or trailing garbage. Every
// decoding entry point in this package returns *FormatError instead of
// panicking on attacker-controlled bytes.
type FormatError struct {
	Cause error
}

func (e *FormatError) Error() string {
	if e.Cause == nil {
		return "bytetree: malformed byte-tree"
	}
	return fmt.Sprintf("bytetree: malformed byte-tree: %v", e.Cause)
}

func (e *FormatError) Unwrap() error { return e.Cause }
