// Package classifier implements the C4 trial-division classifier: the
// component that converts raw sieve candidates into AQ-pair relations,
// orchestrating the probable-prime oracle (utils/factorization), the
// small-factor engines (smallfactor, lehman) and — for residues at or
// beyond 63 bits — a nested SIQS instance reached through the Factoriser
// seam (siqsiface).
package classifier

import "math/big"

// FactorBaseView is the classifier's non-owning view of the factor base
// for the lifetime of one polynomial. The base itself is owned by the
// surrounding sieve driver (spec §3, "Ownership"); the classifier never
// mutates these slices.
type FactorBaseView struct {
	// Primes holds the factor-base prime for each index (index 0 is
	// always 2, handled separately in the power-of-two reduction step).
	Primes []uint64
	// PArray holds the divisor used in pass 2 — usually the prime
	// itself, occasionally a small power of it.
	PArray []uint64
	// Exponents holds the per-hit exponent contribution for each index.
	Exponents []int
	// PinvArrayL holds the 64-bit Barrett-style reciprocal
	// floor(2^32/p) for each index, sized for signed-32-bit numerators.
	PinvArrayL []uint64
	// X1Array and X2Array hold the two solutions of Q(x) ≡ 0 (mod p)
	// for the current polynomial.
	X1Array []int64
	X2Array []int64
	// Unsieved lists base indices excluded from the sieve's
	// bit-accumulation pass but still trial-divided in pass 2.
	Unsieved []int
}

// Profile carries per-session configuration, including the debug-only
// invariant-checking switch (§7.1).
type Profile struct {
	Debug bool
}

// FactorExp is one (prime, exponent) entry in a candidate's small-factor
// accumulator. signMarker is the reserved "prime" value recording a
// negative Q, per §4.1 step 1.
type FactorExp struct {
	Prime    uint64
	Exponent int
}

const signMarker = 0

// Candidate is one sieve position together with the already-reconstructed
// A(x) and Q(x) values the surrounding sieve driver computed for it; the
// classifier's job starts from here; it does not itself evaluate the
// polynomial.
type Candidate struct {
	X int32
	A *big.Int
	Q *big.Int
}

// AQPair is the closed sum type of classification outcomes (§3,
// "AQ-pair"): exactly one of the four concrete types below, mirroring
// the interface + concrete-struct pattern of the teacher's
// ring.DistributionParameters.
type AQPair interface {
	isAQPair()
}

// SmoothPerfect is emitted when Q_rest == 1: every prime factor of Q is
// in the factor base.
type SmoothPerfect struct {
	A            *big.Int
	SmallFactors []FactorExp
}

// Smooth1LargeSquare is emitted when the unfactored residue is p² for a
// prime p beyond pMax.
type Smooth1LargeSquare struct {
	A            *big.Int
	SmallFactors []FactorExp
	P            uint32
}

// Partial1Large is emitted when the unfactored residue is itself a
// single prime p beyond pMax, fitting in 31 bits.
type Partial1Large struct {
	A            *big.Int
	SmallFactors []FactorExp
	P            uint32
}

// Partial2Large is emitted when the unfactored residue splits into two
// distinct primes, each 31 bits or fewer.
type Partial2Large struct {
	A            *big.Int
	SmallFactors []FactorExp
	P1, P2       uint32
}

func (*SmoothPerfect) isAQPair()       {}
func (*Smooth1LargeSquare) isAQPair()  {}
func (*Partial1Large) isAQPair()       {}
func (*Partial2Large) isAQPair()       {}
