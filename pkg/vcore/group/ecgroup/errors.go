package ecgroup

import "fmt"

func errNotALeaf() error { return fmt.Errorf("expected a leaf") }
func errWrongElementType() error { return fmt.Errorf("element does not belong to this group") }
func errNotEncodable() error { return fmt.Errorf("element is not a valid small-message encoding") }

func errWrongLength(want, got int) error {
	return fmt.Errorf("expected %d bytes, got %d", want, got)
}
