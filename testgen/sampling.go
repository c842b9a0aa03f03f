package testgen

import "math/big"

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// uniformBig draws a uniform value in [lo, hi) from r, using rejection
// sampling over the smallest byte-aligned bitmask that covers the range
// width — the same bitmask-and-retry shape as the teacher's
// ring/sampler_uniform.go uniform sampler, generalized from a fixed
// modulus to an arbitrary [lo, hi) window. Per §4.3's closing line, a
// degenerate hi <= lo promotes the range width to 1 rather than looping
// forever or panicking.
func uniformBig(r *boundedReader, lo, hi *big.Int) *big.Int {
	width := new(big.Int).Sub(hi, lo)
	if width.Sign() <= 0 {
		width = big.NewInt(1)
	}

	bitLen := width.BitLen()
	byteLen := (bitLen + 7) / 8
	if byteLen == 0 {
		byteLen = 1
	}
	var topMask byte = 0xff
	if rem := bitLen % 8; rem != 0 {
		topMask = byte(1<<uint(rem)) - 1
	}

	buf := make([]byte, byteLen)
	for {
		r.mustRead(buf)
		buf[0] &= topMask
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(width) < 0 {
			return new(big.Int).Add(lo, v)
		}
	}
}

// uniformInt draws a uniform int in [lo, hi) the same way as uniformBig,
// for the small ranges (bit-length windows) §4.3's semiprime modes need.
func uniformInt(r *boundedReader, lo, hi int) int {
	v := uniformBig(r, big.NewInt(int64(lo)), big.NewInt(int64(hi)))
	return int(v.Int64())
}

// randomBitsExact draws a uniform integer with exactly the given number
// of bits: the high bit is forced set by restricting the draw to
// [2^(bits-1), 2^bits).
func randomBitsExact(r *boundedReader, bits int) *big.Int {
	if bits <= 0 {
		return big.NewInt(0)
	}
	lo := new(big.Int).Lsh(bigOne, uint(bits-1))
	hi := new(big.Int).Lsh(bigOne, uint(bits))
	return uniformBig(r, lo, hi)
}

// nextProbablePrime returns the smallest probable prime >= n (forced
// odd first, since every prime above 2 is odd).
func nextProbablePrime(n *big.Int) *big.Int {
	c := new(big.Int).Set(n)
	if c.Cmp(bigTwo) < 0 {
		return big.NewInt(2)
	}
	if c.Bit(0) == 0 {
		c.Add(c, bigOne)
	}
	for !c.ProbablyPrime(mrRounds) {
		c.Add(c, bigTwo)
	}
	return c
}

// mrRounds matches utils/factorization's probable-prime oracle rounds,
// so a value this package calls "prime" agrees with the rest of the
// module's primality convention.
const mrRounds = 20

func isComposite(n *big.Int) bool {
	return n.Cmp(bigTwo) >= 0 && !n.ProbablyPrime(mrRounds)
}
