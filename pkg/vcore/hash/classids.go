package hash

import "github.com/sigilvote/vcore/pkg/vcore/marshal"

// Class ids for the four Hashfunction variants.
const (
	ClassIDPlatform      marshal.ClassID = "vcore.hash.Platform"
	ClassIDMerkleDamgard marshal.ClassID = "vcore.hash.MerkleDamgard"
	ClassIDRandomOracle  marshal.ClassID = "vcore.hash.RandomOracle"
	ClassIDPedersen      marshal.ClassID = "vcore.hash.Pedersen"
)

// MaxAlgoNameLen bounds a platform algorithm name leaf; textual identifiers
// embedded in attacker-supplied byte-trees are never read past this.
const MaxAlgoNameLen = 100
