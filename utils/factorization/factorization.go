// Package factorization implements the probable-prime oracle (C1):
// "is this integer prime?", a BPSW-equivalent test. The sieve's other
// factoring collaborators (small-factor engines, Lehman search) live in
// their own packages — this one only answers the primality question.
package factorization

import "math/big"

// mrRounds is the number of Miller-Rabin rounds big.Int.ProbablyPrime
// runs after its unconditional BPSW-equivalent base-2 strong test. The
// library default (20) makes a false positive astronomically unlikely;
// it is not a tunable exposed to callers because the classifier's
// correctness argument (§8) assumes a negligible error probability.
const mrRounds = 20

// IsPrime reports whether n is probably prime. Negative numbers and 0
// and 1 are never prime.
func IsPrime(n *big.Int) bool {
	return n.ProbablyPrime(mrRounds)
}

// IsPrimeUint64 reports whether the uint64 n is probably prime, using the
// same test as IsPrime on a big.Int copy of n.
func IsPrimeUint64(n uint64) bool {
	return new(big.Int).SetUint64(n).ProbablyPrime(mrRounds)
}
