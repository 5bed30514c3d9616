package naoryung

import (
	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// PublicKey is the Naor-Yung public key: two independent generators g1, g2
// of the same group, a derived element h = g1^z, and the Fiat-Shamir hash
// function and challenge length shared with the secret key. The base Group
// is carried alongside, since Encrypt needs it to build the product group
// G^w.
type PublicKey struct {
	ROH    hash.Hashfunction // random oracle used for the Fiat-Shamir challenge
	Group  group.Group
	G1, G2 group.Element
	H      group.Element
	SecPro int
}

// SecretKey is the Naor-Yung secret key.
type SecretKey struct {
	ROH    hash.Hashfunction
	Group  group.Group
	G1, G2 group.Element
	Z      group.RingElement
	SecPro int
}

// KeyGenerator bundles the parameters Generate needs: the group to draw
// keys in, the random oracle for Fiat-Shamir, and the challenge length.
// It is itself persistable, so a fixed key-generation setup can be shipped
// between parties before any key exists.
type KeyGenerator struct {
	Group  group.Group
	ROH    hash.Hashfunction
	SecPro int
}

// NewKeyGenerator validates secpro against MaxSecPro and builds a
// KeyGenerator.
func NewKeyGenerator(g group.Group, roh hash.Hashfunction, secpro int) (*KeyGenerator, error) {
	if secpro < 1 || secpro > MaxSecPro {
		return nil, &ValidationError{Cause: errSecProRange(secpro)}
	}
	return &KeyGenerator{Group: g, ROH: roh, SecPro: secpro}, nil
}

// Generate runs Naor-Yung keygen: draw z and r uniformly
// from the group's exponent ring with statistical distance statDist from
// uniform, set g1 to the group's canonical generator, g2 = g1^r, and
// h = g1^z.
func (kg *KeyGenerator) Generate(rs entropy.Source, statDist int) (*PublicKey, *SecretKey, error) {
	ring := kg.Group.Ring()

	z, err := ring.RandomElement(rs, statDist)
	if err != nil {
		return nil, nil, err
	}
	r, err := ring.RandomElement(rs, statDist)
	if err != nil {
		return nil, nil, err
	}

	g1 := kg.Group.Generator()
	g2 := g1.Exp(r)
	h := g1.Exp(z)

	pk := &PublicKey{ROH: kg.ROH, Group: kg.Group, G1: g1, G2: g2, H: h, SecPro: kg.SecPro}
	sk := &SecretKey{ROH: kg.ROH, Group: kg.Group, G1: g1, G2: g2, Z: z, SecPro: kg.SecPro}
	return pk, sk, nil
}

// ClassID implements marshal.Marshaler.
func (kg *KeyGenerator) ClassID() marshal.ClassID { return ClassIDKeyGenerator }

// ToByteTree implements marshal.Marshaler: Node(marshal(group), marshal(roh),
// int_leaf(secpro)).
func (kg *KeyGenerator) ToByteTree() *bytetree.ByteTree {
	groupM := kg.Group.(marshal.Marshaler)
	rohM := kg.ROH.(marshal.Marshaler)
	return bytetree.Node(marshal.Marshal(groupM), marshal.Marshal(rohM), bytetree.IntLeaf(int32(kg.SecPro)))
}

// KeyGeneratorFactory returns the registry factory for KeyGenerator.
func KeyGeneratorFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 3 {
			return nil, &marshal.FormatError{Cause: errWrongChildren("key generator", 3, payload.NumChildren())}
		}
		groupAny, err := reg.Unmarshal(payload.Child(0), rs, certainty)
		if err != nil {
			return nil, err
		}
		g, ok := groupAny.(group.Group)
		if !ok {
			return nil, &marshal.FormatError{Cause: errNotANode("key generator group")}
		}
		rohAny, err := reg.Unmarshal(payload.Child(1), rs, certainty)
		if err != nil {
			return nil, err
		}
		roh, ok := rohAny.(hash.Hashfunction)
		if !ok {
			return nil, &marshal.FormatError{Cause: errNotANode("key generator roh")}
		}
		secpro, err := bytetree.NewReader(payload.Child(2)).ReadInt()
		if err != nil {
			return nil, &marshal.FormatError{Cause: err}
		}
		return NewKeyGenerator(g, roh, int(secpro))
	}
}

// ClassID implements marshal.Marshaler.
func (pk *PublicKey) ClassID() marshal.ClassID { return ClassIDPublicKey }

// ToByteTree implements marshal.Marshaler: Node(marshal(roh), marshal(group),
// g1, g2, h, int_leaf(secpro)).
func (pk *PublicKey) ToByteTree() *bytetree.ByteTree {
	rohM := pk.ROH.(marshal.Marshaler)
	groupM := pk.Group.(marshal.Marshaler)
	return bytetree.Node(
		marshal.Marshal(rohM),
		marshal.Marshal(groupM),
		pk.G1.ToByteTree(),
		pk.G2.ToByteTree(),
		pk.H.ToByteTree(),
		bytetree.IntLeaf(int32(pk.SecPro)),
	)
}

// PublicKeyFactory returns the registry factory for PublicKey.
func PublicKeyFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 6 {
			return nil, &marshal.FormatError{Cause: errWrongChildren("public key", 6, payload.NumChildren())}
		}
		roh, g, err := unmarshalROHAndGroup(reg, payload, rs, certainty)
		if err != nil {
			return nil, err
		}
		g1, err := g.ElementFromByteTree(payload.Child(2))
		if err != nil {
			return nil, err
		}
		g2, err := g.ElementFromByteTree(payload.Child(3))
		if err != nil {
			return nil, err
		}
		h, err := g.ElementFromByteTree(payload.Child(4))
		if err != nil {
			return nil, err
		}
		secpro, err := bytetree.NewReader(payload.Child(5)).ReadInt()
		if err != nil {
			return nil, &marshal.FormatError{Cause: err}
		}
		if secpro < 1 || secpro > MaxSecPro {
			return nil, &marshal.ValidationError{Cause: errSecProRange(int(secpro))}
		}
		return &PublicKey{ROH: roh, Group: g, G1: g1, G2: g2, H: h, SecPro: int(secpro)}, nil
	}
}

// ClassID implements marshal.Marshaler.
func (sk *SecretKey) ClassID() marshal.ClassID { return ClassIDSecretKey }

// ToByteTree implements marshal.Marshaler: Node(marshal(roh), marshal(group),
// g1, g2, z, int_leaf(secpro)).
func (sk *SecretKey) ToByteTree() *bytetree.ByteTree {
	rohM := sk.ROH.(marshal.Marshaler)
	groupM := sk.Group.(marshal.Marshaler)
	return bytetree.Node(
		marshal.Marshal(rohM),
		marshal.Marshal(groupM),
		sk.G1.ToByteTree(),
		sk.G2.ToByteTree(),
		sk.Z.ToByteTree(),
		bytetree.IntLeaf(int32(sk.SecPro)),
	)
}

// SecretKeyFactory returns the registry factory for SecretKey.
func SecretKeyFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 6 {
			return nil, &marshal.FormatError{Cause: errWrongChildren("secret key", 6, payload.NumChildren())}
		}
		roh, g, err := unmarshalROHAndGroup(reg, payload, rs, certainty)
		if err != nil {
			return nil, err
		}
		g1, err := g.ElementFromByteTree(payload.Child(2))
		if err != nil {
			return nil, err
		}
		g2, err := g.ElementFromByteTree(payload.Child(3))
		if err != nil {
			return nil, err
		}
		z, err := g.Ring().ToElementFromByteTree(payload.Child(4))
		if err != nil {
			return nil, err
		}
		secpro, err := bytetree.NewReader(payload.Child(5)).ReadInt()
		if err != nil {
			return nil, &marshal.FormatError{Cause: err}
		}
		if secpro < 1 || secpro > MaxSecPro {
			return nil, &marshal.ValidationError{Cause: errSecProRange(int(secpro))}
		}
		return &SecretKey{ROH: roh, Group: g, G1: g1, G2: g2, Z: z, SecPro: int(secpro)}, nil
	}
}

func unmarshalROHAndGroup(reg *marshal.Registry, payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (hash.Hashfunction, group.Group, error) {
	rohAny, err := reg.Unmarshal(payload.Child(0), rs, certainty)
	if err != nil {
		return nil, nil, err
	}
	roh, ok := rohAny.(hash.Hashfunction)
	if !ok {
		return nil, nil, &marshal.FormatError{Cause: errNotANode("roh")}
	}
	groupAny, err := reg.Unmarshal(payload.Child(1), rs, certainty)
	if err != nil {
		return nil, nil, err
	}
	g, ok := groupAny.(group.Group)
	if !ok {
		return nil, nil, &marshal.FormatError{Cause: errNotANode("group")}
	}
	return roh, g, nil
}
