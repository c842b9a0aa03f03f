// Package lehman implements the C3 Lehman ordered-k search: a fast
// fall-through factor finder for odd composites in the 45-63 bit range,
// tried before the classifier commits to a full small-factor race
// (smallfactor) or a nested SIQS instance.
//
// The method is Lehman's 1974 one-line improvement on Fermat's method:
// for a sequence of multipliers k it looks for an a with
// a² - 4kN = b² a perfect square, giving N's factor as gcd(a+b, N).
// The multipliers are visited in an order chosen to surface factors with
// favourable small-prime residues first (the bucket table below), and
// within each multiplier only the handful of a-values consistent with
// N·k's residue mod a small power of two are tried, following the
// classical quadratic-residue pruning.
package lehman

import (
	"math"
	"math/big"
	"sync"

	"github.com/siqscore/siqs/utils"
)

// KMax bounds the precomputed multiplier table: k ranges over [1, KMax]
// for buckets 1-5, and bucket 0 (multiples of 315/495, the strongest
// residue class) is extended out to 16*KMax since it is cheap to hold
// and is the bucket most likely to carry the factor for the largest
// inputs this package is asked to handle.
const KMax = 1 << 20

const kMaxExtended = 16 * KMax

// numBuckets is the number of priority buckets k's are sorted into.
const numBuckets = 6

// table holds, for one priority bucket, the ascending multipliers that
// fall into it together with their precomputed √k and 1/√k — both
// needed every time the search visits that k, so they are computed once
// at table-build time rather than per call to FindSingleFactor.
type table struct {
	k        []uint64
	sqrtK    []float64
	invSqrtK []float64
}

// Table is the full set of priority buckets, built once and shared by
// every call to FindSingleFactor: the bucket contents depend only on
// KMax, never on the N being factored, so there is nothing to
// recompute per call.
type Table struct {
	buckets [numBuckets]table
}

var (
	sharedOnce  sync.Once
	sharedTable *Table
)

func getTable() *Table {
	sharedOnce.Do(func() {
		sharedTable = buildTable()
	})
	return sharedTable
}

// residueBucket returns the priority bucket for an odd k by the first
// matching rule; the caller demotes even k by one bucket (row 6, the
// catch-all, has no demotion target and is simply dropped for even k —
// those multipliers carry no useful residue structure).
func residueBucket(k uint64) int {
	switch {
	case k%315 == 0 || k%495 == 0:
		return 0
	case k%45 == 0 || k%105 == 0:
		return 1
	case k%15 == 0 || k%63 == 0:
		return 2
	case k%9 == 0 || k%21 == 0:
		return 3
	case k%3 == 0:
		return 4
	default:
		return 5
	}
}

func buildTable() *Table {
	t := &Table{}
	add := func(b int, k uint64) {
		t.buckets[b].k = append(t.buckets[b].k, k)
		sk := math.Sqrt(float64(k))
		t.buckets[b].sqrtK = append(t.buckets[b].sqrtK, sk)
		t.buckets[b].invSqrtK = append(t.buckets[b].invSqrtK, 1/sk)
	}

	for k := uint64(1); k <= KMax; k++ {
		odd := residueBucket(k)
		if k%2 == 0 {
			if odd == numBuckets-1 {
				continue // catch-all row has no even demotion target
			}
			add(odd+1, k)
			continue
		}
		add(odd, k)
	}

	// Bucket 0's extension: odd multiples of 315 beyond KMax, out to
	// 16*KMax, appended in ascending order after the base range so the
	// bucket stays sorted.
	for k := uint64(KMax) + 315 - uint64(KMax)%315; k <= kMaxExtended; k += 315 {
		if k%2 == 0 {
			continue
		}
		add(0, k)
	}

	return t
}

// multiplier scales KMax into the per-bucket search ceiling: bucket 0
// carries the extended table, so its search range is allowed to follow
// suit.
var multiplier = [numBuckets]uint64{16, 1, 1, 1, 1, 1}

// fastCeil approximates ⌈x⌉ for a value that is mathematically an
// integer or very close to one, the way Lehman's method computes
// ⌈√(4kN)⌉ from a double-precision square root: IEEE754 rounding can
// leave x a hair below the true integer, so nudging by a constant
// short of 1 before truncating recovers the ceiling without overshooting
// on exact values.
func fastCeil(x float64) uint64 {
	return uint64(x + 0.9999999665)
}

// FindSingleFactor searches for a nontrivial factor of the odd
// composite n using Lehman's method. n is expected to fit in the
// 45-63 bit range the classifier reserves for this fallback; smaller
// composites are cheaper to resolve with smallfactor.FindFactor, and
// the multiplier table is only proportioned (KMax, kMaxExtended) for
// this range. Returns 1 if the search is exhausted without finding a
// factor.
func FindSingleFactor(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	if n == 9 {
		return 3
	}

	nBig := new(big.Int).SetUint64(n)
	nf := float64(n)

	// cbrt(n) computed via floating point is accurate enough to bound
	// the search; ⌊n^(1/3)⌋ exactly is not required since the bucket
	// ceilings below are already generous (they bound *which k's we
	// visit*, not whether a found factor is correct — that is always
	// re-verified exactly).
	cbrtF := math.Cbrt(nf)

	s4N := math.Sqrt(4 * nf)
	nSixthRoot := math.Pow(nf, 1.0/6.0)

	// kTwoA = ⌈cbrt/128⌉, the small-k/large-k phase boundary (§4.2's
	// "kTwoA = (cbrt + 127) >> 7").
	kTwoA := (uint64(cbrtF) + 127) >> 7

	four := big.NewInt(4)
	a2 := new(big.Int)
	fourKN := new(big.Int)
	t := new(big.Int)
	r := new(big.Int)
	sum := new(big.Int)

	tryA := func(k uint64, a uint64) uint64 {
		aBig := new(big.Int).SetUint64(a)
		a2.Mul(aBig, aBig)
		fourKN.Mul(four, nBig)
		fourKN.Mul(fourKN, new(big.Int).SetUint64(k))
		t.Sub(a2, fourKN)
		if t.Sign() < 0 {
			return 0
		}
		r.Sqrt(t)
		check := new(big.Int).Mul(r, r)
		if check.Cmp(t) != 0 {
			return 0
		}
		sum.Add(aBig, r)
		gcdMod := new(big.Int).Mod(sum, nBig).Uint64()
		g := utils.GCD(gcdMod, n)
		if g > 1 && g < n {
			return g
		}
		return 0
	}

	tbl := getTable()

	for b := 0; b < numBuckets; b++ {
		bucket := tbl.buckets[b]
		boundary := uint64(KMax) * multiplier[b]

		for i, k := range bucket.k {
			if k > boundary {
				break
			}

			sqrtK := bucket.sqrtK[i]
			invSqrtK := bucket.invSqrtK[i]
			sqrt4kN := s4N * sqrtK

			if k < kTwoA {
				// Small-k phase: several candidate a's lie in
				// [⌈√(4kN)⌉, √(4kN) + N^(1/6)/(4√k)].
				aStart := fastCeil(sqrt4kN)
				aLimit := sqrt4kN + (nSixthRoot/4)*invSqrtK

				for aF := aLimit; aF >= float64(aStart); aF-- {
					a := uint64(aF)
					if a < aStart {
						break
					}
					if congruent(k, n, a) {
						if f := tryA(k, a); f != 0 {
							return f
						}
					}
				}
			} else {
				// Large-k phase: the ceiling and the integer just
				// above it are each tested once, without the residue
				// filter; the correction loop below covers the
				// ceiling minus one that double precision can cause.
				a := fastCeil(sqrt4kN)
				for delta := uint64(0); delta < 2; delta++ {
					if f := tryA(k, a+delta); f != 0 {
						return f
					}
				}
			}
		}
	}

	// Correction loop (§4.2, mandatory per §9): sqrt4kN computed in
	// double precision can land a hair under the true integer, making
	// fastCeil round down one short of the true ⌈√(4kN)⌉. Re-check
	// a = ⌈s4N·√k⌉ - 1 for every k across every bucket before giving up.
	for b := 0; b < numBuckets; b++ {
		bucket := tbl.buckets[b]
		boundary := uint64(KMax) * multiplier[b]
		for i, k := range bucket.k {
			if k > boundary {
				break
			}
			sqrt4kN := s4N * bucket.sqrtK[i]
			a := fastCeil(sqrt4kN)
			if a == 0 {
				continue
			}
			if f := tryA(k, a-1); f != 0 {
				return f
			}
		}
	}

	// Every phase failed: spec.md §4.2's contract returns 1 (not 0) for
	// "no factor found in budget" — 1 is never itself a valid nontrivial
	// factor, so it is an unambiguous sentinel distinct from the other
	// engines in this module, which use 0.
	return 1
}

// congruent reports whether a is one of the residues a perfect-square
// b² = a² - 4kN can actually produce, given k and n's parity: an even k
// forces a odd (since 4kN is then ≡ 0 mod 8 and a² must be ≡ a² mod 8,
// requiring a odd to keep b an integer with the right parity), and an
// odd k constrains a mod 4 (or mod 8) by k·n mod 4 so that a² - 4kN can
// be a quadratic residue at all. Candidates outside these residues are
// skipped without touching big.Int arithmetic.
func congruent(k, n, a uint64) bool {
	if k%2 == 0 {
		return a%2 == 1
	}

	kn := k * n // only the low bits matter: mod 4 is invariant under the
	// uint64 wraparound of k*n, since k*n mod 4 depends solely on the
	// product's low 2 bits regardless of how far the true product
	// exceeds 64 bits.
	switch kn % 4 {
	case 1:
		return a%2 == 0
	case 3:
		return a%4 == 0
	default: // kn % 4 == 0 or 2, both impossible for odd k * odd-or-even n
		// without a itself constrained further; fall back to trying
		// every a rather than risk excluding the factor.
		return true
	}
}
