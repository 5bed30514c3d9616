package wire

import (
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
	"github.com/sigilvote/vcore/pkg/vcore/prg"
)

// Per-type hard caps, re-exported in one place so a reader can see the
// whole bounded-resource-use table without chasing it through four
// packages. Each constant is defined and enforced in the package that owns
// the type.
const (
	MaxClassIDBytes       = marshal.MaxClassIDLen
	MaxAlgorithmNameBytes = hash.MaxAlgoNameLen
	MaxPedersenWidth      = hash.MaxPedersenWidth
	MaxModulusBytes       = prg.MaxModulusBytes
	MaxCombinerChildren   = entropy.MaxCombinerChildren
)
