package prg

import (
	"math/big"

	"github.com/sigilvote/vcore/pkg/vcore/entropy"
)

// isSafePrime reports whether p is a safe prime (p and (p-1)/2 both prime).
// Randomness for the Miller-Rabin witnesses is drawn from rs rather than a
// library default, so the check is reproducible given a deterministic rs.
// rounds controls the false-accept probability, at most 4^-rounds.
func isSafePrime(p *big.Int, rs entropy.Source, rounds int) (bool, error) {
	q := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	okP, err := millerRabin(p, rs, rounds)
	if err != nil || !okP {
		return false, err
	}
	return millerRabin(q, rs, rounds)
}

// millerRabin runs the standard witness-loop primality test, drawing each
// witness from rs.
func millerRabin(n *big.Int, rs entropy.Source, rounds int) (bool, error) {
	one := big.NewInt(1)
	two := big.NewInt(2)
	three := big.NewInt(3)

	if n.Cmp(two) < 0 {
		return false, nil
	}
	if n.Cmp(three) <= 0 {
		return true, nil
	}
	if new(big.Int).Mod(n, two).Sign() == 0 {
		return false, nil
	}

	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for new(big.Int).Mod(d, two).Sign() == 0 {
		d.Rsh(d, 1)
		r++
	}

	nBytes := (n.BitLen() + 7) / 8
	upper := new(big.Int).Sub(n, big.NewInt(3)) // witnesses drawn from [2, n-2]

	for i := 0; i < rounds; i++ {
		a, err := randBelow(rs, upper, nBytes)
		if err != nil {
			return false, err
		}
		a.Add(a, two)

		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		composite := true
		for j := 0; j < r-1; j++ {
			x.Exp(x, two, n)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}

// randBelow draws a value in [0, bound) by reducing an nBytes-byte draw
// from rs. The slight modulo bias is irrelevant for witness selection.
func randBelow(rs entropy.Source, bound *big.Int, nBytes int) (*big.Int, error) {
	if bound.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	buf := make([]byte, nBytes)
	if err := rs.GetBytes(buf); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf)
	v.Mod(v, bound)
	return v, nil
}
