package classifier

// barrettMod32 implements the pass-1 residue test's reduction (§4.1 step
// 3): p fits in 32 bits, x is a signed 32-bit sieve offset, and the
// product x·reciprocal is guaranteed to fit a signed 64-bit register
// (§9, "signed vs unsigned base indices" — widths preserved exactly as
// specified, distinct from ring.BRed's 64-bit-modulus Barrett reduction
// used elsewhere in this module for Pollard-ρ).
//
// pinv is the caller-supplied reciprocal floor(2^32/p). When |x| < p the
// remainder is x itself, shifted into [0,p) if negative; otherwise the
// Barrett estimate q = (x·pinv) >> 32 is off by at most one, so a single
// correction in either direction recovers the exact remainder.
func barrettMod32(x int32, p uint64, pinv uint64) int64 {
	ix := int64(x)
	absX := ix
	if absX < 0 {
		absX = -absX
	}
	if uint64(absX) < p {
		if ix < 0 {
			return ix + int64(p)
		}
		return ix
	}

	q := (ix * int64(pinv)) >> 32
	r := ix - q*int64(p)
	if r < 0 {
		r += int64(p)
	} else if r >= int64(p) {
		r -= int64(p)
	}
	return r
}
