package smallfactor

import (
	"github.com/siqscore/siqs/ring"
	"github.com/siqscore/siqs/utils"
)

// maxPollardRestarts bounds how many additive constants c we try before
// giving up; a 63-bit composite's smallest factor is at most ~2^31.5, so
// Brent's expected iteration count (O(√p)) converges within the first
// handful of restarts in practice — this exists only to guarantee
// termination on a pathological input (e.g. a prime passed in by
// mistake).
const maxPollardRestarts = 32

// batchSize is the number of steps accumulated into one product before
// each GCD check, Brent's improvement over Floyd's one-GCD-per-step.
const batchSize = 128

// PollardRhoMontgomery63 runs Brent's Pollard-ρ with the residue kept in
// Montgomery form throughout (R = 2^64), reducing with ring.MRed — the
// variant the classifier calls for residues below 57 bits, where the
// per-step product x·y always fits the 63-bit-safe multiply the
// Montgomery reduction was built for (spec §4.1 step 5).
func PollardRhoMontgomery63(n uint64) uint64 {
	return pollardRhoBrentMontgomery(n, 1)
}

// PollardRhoMontgomery64 runs the same Brent/Montgomery iteration as
// PollardRhoMontgomery63 but is the variant named for residues up to 63
// bits, where the reduction must use the full 64-bit Montgomery
// multiplication (ring.MRed's bits.Mul64-based path) rather than the
// narrower 63-bit-safe one. The two are offered as distinct entry points
// because spec §4.1 step 5 dispatches on residue width to name them
// separately, even though both share the same underlying Montgomery
// engine — ring.MRed already computes the full 128-bit product via
// bits.Mul64 regardless of operand width, so PollardRhoMontgomery64 pays
// for this at no extra cost over the narrower variant.
func PollardRhoMontgomery64(n uint64) uint64 {
	return pollardRhoBrentMontgomery(n, 2)
}

// pollardRhoBrentMontgomery finds a nontrivial factor of the odd
// composite n using Brent's improvement to Pollard's ρ, with every
// arithmetic step performed in the Montgomery domain via ring.MRed. seed
// offsets the additive constant so the two exported variants explore
// different polynomials if the first stalls on a cycle that misses n's
// factor.
func pollardRhoBrentMontgomery(n uint64, seed uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	if n < 4 {
		return 0
	}

	qInv := ring.MRedParams(n)
	bred := ring.BRedParams(n)
	one := ring.MForm(1, n, bred)

	for attempt := uint64(0); attempt < maxPollardRestarts; attempt++ {
		c := (seed*7919 + attempt*104729 + 1) % n
		cm := ring.MForm(c, n, bred)
		if cm == 0 {
			continue
		}

		step := func(xm uint64) uint64 {
			r := ring.MRed(xm, xm, n, qInv)
			r += cm
			if r >= n {
				r -= n
			}
			return r
		}

		x, y := one, one
		g, r, q := uint64(1), uint64(1), one
		var ys uint64

		for g == 1 {
			x = y
			for i := uint64(0); i < r; i++ {
				y = step(y)
			}
			k := uint64(0)
			for k < r && g == 1 {
				ys = y
				lim := batchSize
				if remain := int(r - k); remain < lim {
					lim = remain
				}
				for i := 0; i < lim; i++ {
					y = step(y)
					diff := absDiff(x, y)
					if diff == 0 {
						continue
					}
					q = ring.MRed(q, diff, n, qInv)
				}
				g = utils.GCD(q, n)
				k += uint64(lim)
			}
			r *= 2
			if r > uint64(1)<<40 {
				break
			}
		}

		if g == n {
			for {
				ys = step(ys)
				diff := absDiff(x, ys)
				if diff == 0 {
					g = n
					break
				}
				g = utils.GCD(diff, n)
				if g > 1 {
					break
				}
			}
		}

		if g > 1 && g < n {
			return g
		}
	}
	return 0
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
