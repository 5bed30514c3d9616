// Package wire is vcore's integration glue: it wires every persistable
// vcore type's class id into a single marshal.Registry, so callers get one
// entry point instead of assembling the registry by hand from five
// packages, and it is the seam where per-type size guards and the four
// error kinds get their final, caller-facing shape. It owns no
// cryptographic logic of its own.
package wire

import (
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group/ecgroup"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
	"github.com/sigilvote/vcore/pkg/vcore/naoryung"
	"github.com/sigilvote/vcore/pkg/vcore/prg"
)

// NewRegistry builds a marshal.Registry with every persistable vcore type
// registered under its class id: the four Hashfunction variants, the
// Combiner random source, both PRGs, the reference secp256k1 group, and
// the three Naor-Yung types. PRGs are persisted as their construction
// parameters only; a reconstructed PRG is unseeded.
func NewRegistry() *marshal.Registry {
	reg := marshal.NewRegistry()

	reg.Register(hash.ClassIDPlatform, hash.UnmarshalPlatform)
	reg.Register(hash.ClassIDMerkleDamgard, hash.MerkleDamgardFactory(reg))
	reg.Register(hash.ClassIDRandomOracle, hash.RandomOracleFactory(reg))
	reg.Register(hash.ClassIDPedersen, hash.PedersenFactory(reg))

	reg.Register(entropy.ClassIDCombiner, entropy.CombinerFactory(reg))

	reg.Register(prg.ClassIDHashCounter, prg.HashCounterFactory(reg))
	reg.Register(prg.ClassIDElGamal, prg.ElGamalFactory(reg))

	reg.Register(ecgroup.ClassIDGroup, ecgroup.Factory)

	reg.Register(naoryung.ClassIDKeyGenerator, naoryung.KeyGeneratorFactory(reg))
	reg.Register(naoryung.ClassIDPublicKey, naoryung.PublicKeyFactory(reg))
	reg.Register(naoryung.ClassIDSecretKey, naoryung.SecretKeyFactory(reg))

	return reg
}
