// Package smallfactor implements the C2 small-factor engines: Hart's
// one-line factorization race and the two Montgomery-domain Pollard-ρ
// variants the classifier (C4) dispatches to for residues below 63 bits,
// once the probable-prime oracle (utils/factorization) has ruled the
// residue composite.
package smallfactor

import (
	"math/big"

	"github.com/siqscore/siqs/utils"
)

// HartMaxBits is the width below which the Hart race is preferred over
// Pollard-ρ, per spec §4.1 step 5.
const HartMaxBits = 50

// Hart finds a nontrivial factor of the odd composite n using Hart's
// one-line factorization method: for increasing multipliers k, test
// whether ⌈√(k·n)⌉² − k·n is a perfect square. Odd divisors p with
// p³ ≤ n are tried by trial division first, since the multiplier sweep
// does not reach factors that small. k·n can exceed 64 bits
// well before k reaches its √n search bound, so the exact
// arithmetic runs over math/big even though n itself is a uint64 — only
// the occasional per-k squareness test pays for the allocation, not a
// per-candidate sieve inner loop. Returns 0 if no factor turns up within
// the search bound (n is assumed composite, so in practice this always
// terminates).
func Hart(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	for p := uint64(3); p*p*p <= n; p += 2 {
		if n%p == 0 {
			return p
		}
	}

	nBig := new(big.Int).SetUint64(n)
	limit := isqrtBig(nBig) // generous bound: correctness does not depend on tightness here
	limit.Add(limit, big.NewInt(1))

	kn := new(big.Int)
	s := new(big.Int)
	t := new(big.Int)
	r := new(big.Int)
	m := new(big.Int)

	for k := big.NewInt(1); k.Cmp(limit) <= 0; k.Add(k, bigOne) {
		kn.Mul(k, nBig)
		s.Sqrt(kn)
		if new(big.Int).Mul(s, s).Cmp(kn) < 0 {
			s.Add(s, bigOne)
		}
		t.Mul(s, s)
		t.Sub(t, kn)
		r.Sqrt(t)
		if new(big.Int).Mul(r, r).Cmp(t) == 0 {
			m.Sub(s, r)
			mMod := new(big.Int).Mod(m, nBig).Uint64()
			g := utils.GCD(mMod, n)
			if g > 1 && g < n {
				return g
			}
		}
	}
	return 0
}

var bigOne = big.NewInt(1)

// isqrtBig returns ⌊√n⌋ as a *big.Int.
func isqrtBig(n *big.Int) *big.Int {
	return new(big.Int).Sqrt(n)
}
