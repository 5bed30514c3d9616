// Package bytetree implements the canonical self-describing serialization
// format used throughout vcore: a recursive, length-framed, big-endian byte
// tree with exactly two variants, a leaf of raw bytes and a node of ordered
// children. Every persistable object in vcore round-trips through this
// format; see package marshal for the class-id wrapper layered on top.
package bytetree

import (
	"encoding/binary"
	"fmt"
)

// Kind distinguishes the two byte-tree variants on the wire.
type Kind byte

const (
	// KindNode tags an ordered sequence of child byte-trees.
	KindNode Kind = 0x00
	// KindLeaf tags a payload of raw bytes.
	KindLeaf Kind = 0x01
)

// MaxLength is the largest number of bytes a leaf may hold, or the largest
// number of children a node may hold: 2^31 - 1, the biggest value the 4-byte
// big-endian length prefix can carry while staying within a signed 32-bit
// range.
const MaxLength = 1<<31 - 1

// headerLen is the tag byte plus the 4-byte big-endian length prefix.
const headerLen = 5

// ByteTree is a recursive algebraic type: a Leaf of bytes, or a Node of an
// ordered sequence of child byte-trees. The zero value is not a valid
// ByteTree; construct one with Leaf or Node.
type ByteTree struct {
	kind     Kind
	leaf     []byte
	children []*ByteTree
}

// Leaf builds a leaf byte-tree wrapping a defensive copy of b.
func Leaf(b []byte) *ByteTree {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &ByteTree{kind: KindLeaf, leaf: cp}
}

// IntLeaf builds a leaf holding a 4-byte big-endian encoding of i, the
// canonical form for integer fields embedded in serialized objects.
func IntLeaf(i int32) *ByteTree {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(i))
	return Leaf(b[:])
}

// StringLeaf builds a leaf holding the UTF-8 encoding of s.
func StringLeaf(s string) *ByteTree {
	return Leaf([]byte(s))
}

// Node builds a node byte-tree over the given ordered children.
func Node(children ...*ByteTree) *ByteTree {
	cp := make([]*ByteTree, len(children))
	copy(cp, children)
	return &ByteTree{kind: KindNode, children: cp}
}

// IsLeaf reports whether t is a leaf.
func (t *ByteTree) IsLeaf() bool { return t.kind == KindLeaf }

// IsNode reports whether t is a node.
func (t *ByteTree) IsNode() bool { return t.kind == KindNode }

// LeafBytes returns a defensive copy of a leaf's payload. It panics if t is
// not a leaf: that is a programmer error, not a malformed-input condition.
func (t *ByteTree) LeafBytes() []byte {
	if t.kind != KindLeaf {
		panic("bytetree: LeafBytes called on a node")
	}
	cp := make([]byte, len(t.leaf))
	copy(cp, t.leaf)
	return cp
}

// NumChildren returns the number of children of a node, or panics if t is a
// leaf.
func (t *ByteTree) NumChildren() int {
	if t.kind != KindNode {
		panic("bytetree: NumChildren called on a leaf")
	}
	return len(t.children)
}

// Child returns the i-th child of a node, or panics if t is a leaf or i is
// out of range.
func (t *ByteTree) Child(i int) *ByteTree {
	if t.kind != KindNode {
		panic("bytetree: Child called on a leaf")
	}
	return t.children[i]
}

// Equal reports whether t and other encode to identical bytes.
func (t *ByteTree) Equal(other *ByteTree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}
	if t.kind == KindLeaf {
		return bytesEqual(t.leaf, other.leaf)
	}
	if len(t.children) != len(other.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ToBytes serializes t into its canonical wire form: tag byte, 4-byte
// big-endian length, payload. Encoding is deterministic; a well-formed
// ByteTree round-trips through FromBytes to an equal value.
func (t *ByteTree) ToBytes() []byte {
	out := make([]byte, 0, t.encodedLen())
	return t.appendBytes(out)
}

func (t *ByteTree) encodedLen() int {
	if t.kind == KindLeaf {
		return headerLen + len(t.leaf)
	}
	n := headerLen
	for _, c := range t.children {
		n += c.encodedLen()
	}
	return n
}

func (t *ByteTree) appendBytes(out []byte) []byte {
	var hdr [headerLen]byte
	hdr[0] = byte(t.kind)
	if t.kind == KindLeaf {
		binary.BigEndian.PutUint32(hdr[1:], uint32(len(t.leaf)))
		out = append(out, hdr[:]...)
		return append(out, t.leaf...)
	}
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(t.children)))
	out = append(out, hdr[:]...)
	for _, c := range t.children {
		out = c.appendBytes(out)
	}
	return out
}

// FromBytes parses the canonical wire form produced by ToBytes. It rejects
// any input whose declared lengths exceed the remaining buffer, any
// unrecognized tag byte, and any input with trailing bytes left over after
// the outermost tree is fully consumed, all as a *FormatError, never a
// panic.
func FromBytes(buf []byte) (*ByteTree, error) {
	t, consumed, err := parse(buf)
	if err != nil {
		return nil, err
	}
	if consumed != len(buf) {
		return nil, &FormatError{Cause: fmt.Errorf("%d trailing byte(s) after byte-tree", len(buf)-consumed)}
	}
	return t, nil
}

func parse(buf []byte) (*ByteTree, int, error) {
	if len(buf) < headerLen {
		return nil, 0, &FormatError{Cause: fmt.Errorf("buffer too short for byte-tree header: have %d bytes, need %d", len(buf), headerLen)}
	}
	tag := Kind(buf[0])
	length := binary.BigEndian.Uint32(buf[1:headerLen])
	if length > MaxLength {
		return nil, 0, &FormatError{Cause: fmt.Errorf("declared length %d exceeds max %d", length, MaxLength)}
	}

	switch tag {
	case KindLeaf:
		n := int(length)
		if len(buf)-headerLen < n {
			return nil, 0, &FormatError{Cause: fmt.Errorf("leaf declares %d bytes, only %d remain", n, len(buf)-headerLen)}
		}
		return Leaf(buf[headerLen : headerLen+n]), headerLen + n, nil

	case KindNode:
		// The declared child count is attacker-controlled; cap the
		// allocation hint by what the remaining buffer could possibly
		// hold (each child needs at least a header) so a hostile count
		// cannot force a huge preallocation before any child is read.
		hint := int(length)
		if m := (len(buf) - headerLen) / headerLen; hint > m {
			hint = m
		}
		children := make([]*ByteTree, 0, hint)
		off := headerLen
		for i := uint32(0); i < length; i++ {
			if off >= len(buf) {
				return nil, 0, &FormatError{Cause: fmt.Errorf("node declares %d children, ran out of buffer after %d", length, i)}
			}
			child, n, err := parse(buf[off:])
			if err != nil {
				return nil, 0, err
			}
			children = append(children, child)
			off += n
		}
		return Node(children...), off, nil

	default:
		return nil, 0, &FormatError{Cause: fmt.Errorf("unrecognized byte-tree tag 0x%02x", byte(tag))}
	}
}
