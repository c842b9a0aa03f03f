// Package utils collects small numeric helpers shared by the factoring
// core that do not belong to any single component: binary GCD on 64-bit
// integers, and the random-integer plumbing in utils/sampling.
package utils

import "math/bits"

// GCD returns the greatest common divisor of a and b using Stein's
// binary algorithm (no division instruction, only shifts and
// subtraction) — the same GCD the Pollard-ρ, Hart and Lehman engines
// call to test for a nontrivial common factor.
func GCD(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}

	shift := bits.TrailingZeros64(a | b)
	a >>= bits.TrailingZeros64(a)

	for b != 0 {
		b >>= bits.TrailingZeros64(b)
		if a > b {
			a, b = b, a
		}
		b -= a
	}
	return a << uint(shift)
}
