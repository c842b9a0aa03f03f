package smallfactor

import "math/bits"

// FindFactor dispatches an odd composite n (n must not be prime or 1) to
// the size-appropriate engine per spec §4.1 step 5: Hart below 50 bits,
// the 63-bit-safe Montgomery Pollard-ρ below 57 bits, and the full
// 64-bit Montgomery Pollard-ρ below 63 bits. Returns 0 on failure.
func FindFactor(n uint64) uint64 {
	switch {
	case bits.Len64(n) < HartMaxBits:
		if f := Hart(n); f != 0 {
			return f
		}
		return PollardRhoMontgomery63(n)
	case bits.Len64(n) < 57:
		return PollardRhoMontgomery63(n)
	default: // < 63 bits; callers must not invoke this for ≥63-bit inputs
		return PollardRhoMontgomery64(n)
	}
}
