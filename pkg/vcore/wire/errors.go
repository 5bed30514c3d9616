package wire

import (
	"errors"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
	"github.com/sigilvote/vcore/pkg/vcore/naoryung"
	"github.com/sigilvote/vcore/pkg/vcore/prg"
)

// Kind is one of the four error categories shared by the whole core.
// Every package below implements the same shape with its own
// local type (FormatError, ValidationError, ...); Classify lets a caller at
// the top of the stack react to the category without importing seven
// packages' error types individually.
type Kind int

const (
	KindUnknown Kind = iota
	KindFormat
	KindValidation
	KindIO
	KindInternal
)

// Classify maps err to its error kind by walking the error's
// Unwrap chain against every concrete error type this module defines.
// Errors that don't match any known type (a bug, not an attacker-triggered
// condition) classify as KindUnknown.
func Classify(err error) Kind {
	switch {
	case isFormat(err):
		return KindFormat
	case isValidation(err):
		return KindValidation
	case isIO(err):
		return KindIO
	case isInternal(err):
		return KindInternal
	default:
		return KindUnknown
	}
}

func isFormat(err error) bool {
	var a *bytetree.FormatError
	var b *marshal.FormatError
	var c *hash.FormatError
	var d *group.FormatError
	var e *naoryung.FormatError
	return errors.As(err, &a) || errors.As(err, &b) || errors.As(err, &c) || errors.As(err, &d) || errors.As(err, &e)
}

func isValidation(err error) bool {
	var a *marshal.ValidationError
	var b *entropy.ValidationError
	var c *prg.ValidationError
	var d *group.ValidationError
	var e *naoryung.ValidationError
	return errors.As(err, &a) || errors.As(err, &b) || errors.As(err, &c) || errors.As(err, &d) || errors.As(err, &e)
}

func isIO(err error) bool {
	var a *entropy.IoError
	return errors.As(err, &a)
}

func isInternal(err error) bool {
	var a *hash.InternalError
	return errors.As(err, &a)
}
