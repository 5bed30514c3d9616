package naoryung

import "github.com/sigilvote/vcore/pkg/vcore/marshal"

// Class ids for the persistable Naor-Yung types.
const (
	ClassIDPublicKey    marshal.ClassID = "vcore.naoryung.PublicKey"
	ClassIDSecretKey    marshal.ClassID = "vcore.naoryung.SecretKey"
	ClassIDKeyGenerator marshal.ClassID = "vcore.naoryung.KeyGenerator"
)

// MaxSecPro bounds the Fiat-Shamir challenge length in bits: an
// unbounded secpro invites a denial-of-service via an arbitrarily huge
// challenge, so callers are capped here rather than left to self-police.
const MaxSecPro = 1024

// DefaultSecPro is the default challenge length in bits
const DefaultSecPro = 256
