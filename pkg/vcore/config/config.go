// Package config carries the small set of ambient knobs vcore's call sites
// need, deliberately thin: the CLI "generator" front-ends that would
// consume a richer configuration are out of scope.
package config

import (
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/naoryung"
)

// Config bundles the defaults a caller typically wants for every operation
// that needs a random source, a certainty parameter, or a Naor-Yung
// challenge length.
type Config struct {
	// DevicePath is the OS random device path fed to entropy.NewDevice.
	DevicePath string

	// Certainty is the default exponent t such that a probabilistic
	// parameter check (primality, group membership) accepts an incorrect
	// input with probability at most 2^-t.
	Certainty int

	// StatDist is the default number of extra bits of randomness drawn
	// above a modulus's bit length when sampling ring elements and PRG
	// seeds, keeping the reduction within 2^-StatDist of uniform.
	StatDist int

	// SecPro is the default Fiat-Shamir challenge length in bits for a
	// new Naor-Yung key.
	SecPro int
}

// Default returns vcore's baseline configuration: the OS default random
// device, a 100-bit certainty/statistical-distance margin, and a 256-bit
// challenge length.
func Default() Config {
	return Config{
		DevicePath: entropy.DefaultDevicePath,
		Certainty:  100,
		StatDist:   100,
		SecPro:     naoryung.DefaultSecPro,
	}
}
