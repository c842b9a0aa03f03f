package classifier

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/siqscore/siqs/lehman"
	"github.com/siqscore/siqs/ring"
	"github.com/siqscore/siqs/siqsiface"
	"github.com/siqscore/siqs/smallfactor"
	"github.com/siqscore/siqs/utils/factorization"
)

// pass2Capacity bounds the per-candidate pass-2 work list, following the
// "capacity 100" scratch buffer named in spec §5.
const pass2Capacity = 100

// nestedSIQSBits is the bit width at or beyond which a residue is handed
// to the nested Factoriser rather than one of the in-process
// small-factor engines (§4.1 step 5).
const nestedSIQSBits = 63

// Classifier is bound to one polynomial at a time and owns its internal
// scratch buffers for the classifying session (§5, "single-threaded
// cooperative within one factoring session"). It is not safe for
// concurrent use; clone the base view into a second Classifier for
// parallel polynomial evaluation.
type Classifier struct {
	profile Profile
	nested  siqsiface.Factoriser

	kN       *ring.Int
	maxQRest *ring.Int

	da uint64
	b  *big.Int

	base     FactorBaseView
	pMax     uint64
	pMax2    uint64
	unsieved []int

	qRest        *ring.Int
	smallFactors []FactorExp
	pass2Work    []int

	stats     Stats
	durations *durationRingBuffers
}

// New builds a Classifier bound to the given factor base and nested
// Factoriser. nested satisfies the ≥63-bit branch of §4.1 step 5; pass
// &FallbackFactoriser{} for a self-contained big-integer Pollard-ρ
// stand-in, or an embedding application's own SIQS implementation.
func New(profile Profile, base FactorBaseView, nested siqsiface.Factoriser) *Classifier {
	c := &Classifier{
		profile:      profile,
		nested:       nested,
		kN:           new(ring.Int),
		maxQRest:     new(ring.Int),
		qRest:        new(ring.Int),
		smallFactors: make([]FactorExp, 0, 16),
		pass2Work:    make([]int, 0, pass2Capacity),
		durations:    newDurationRingBuffers(),
	}
	c.InitialiseForA(0, big.NewInt(0), base, len(base.Primes), base.Unsieved)
	return c
}

// InitialiseForN stores the current k·N and the smoothness cutoff
// maxQRest above which an unfactored residue is rejected without further
// work (§4.1, "initialise_for_N").
func (c *Classifier) InitialiseForN(kN *big.Int, maxQRest *big.Int, profile Profile) {
	c.kN.Value.Set(kN)
	c.maxQRest.Value.Set(maxQRest)
	c.profile = profile
}

// InitialiseForA installs polynomial coefficients and the factor-base
// view for the next group of candidates sharing the coefficient a, and
// derives pMax/pMax² (§4.1, "initialise_for_A").
func (c *Classifier) InitialiseForA(da uint64, b *big.Int, base FactorBaseView, filteredBaseSize int, unsievedIndices []int) {
	c.da = da
	c.b = b
	c.base = base
	if filteredBaseSize > len(base.Primes) {
		filteredBaseSize = len(base.Primes)
	}
	if filteredBaseSize > 0 {
		c.pMax = base.Primes[filteredBaseSize-1]
	} else {
		c.pMax = 0
	}
	c.pMax2 = c.pMax * c.pMax
	c.unsieved = unsievedIndices
}

// SetB updates only the linear coefficient between sub-polynomials that
// share a (§4.1, "set_B").
func (c *Classifier) SetB(b *big.Int) {
	c.b = b
}

// TestList runs test() over every candidate, in order, and returns the
// AQ-pairs that survive classification. Ordering guarantees from §5
// hold: emitted pairs appear in the same order as their input
// candidates.
func (c *Classifier) TestList(candidates []Candidate) []AQPair {
	out := make([]AQPair, 0, len(candidates))
	for _, cand := range candidates {
		c.stats.TestCount++
		if pair, ok := c.test(cand); ok {
			c.stats.SufficientSmoothCount++
			out = append(out, pair)
		}
	}
	return out
}

// test implements the per-candidate algorithm of §4.1: sign extraction,
// power-of-two reduction, pass-1 candidate-prime selection, pass-2
// division, and classification by the remaining Q_rest.
func (c *Classifier) test(cand Candidate) (AQPair, bool) {
	aqStart := time.Now()

	if c.profile.Debug && c.kN.Sign() != 0 {
		lhs := new(big.Int).Mul(cand.A, cand.A)
		lhs.Mod(lhs, &c.kN.Value)
		rhs := new(big.Int).Mod(cand.Q, &c.kN.Value)
		debugAssert(c.profile, lhs.Cmp(rhs) == 0, "A^2 mod kN != Q mod kN")
	}

	c.qRest.Value.Set(cand.Q)
	smallFactors := c.smallFactors[:0]

	// Step 1: sign extraction.
	negative := c.qRest.Sign() < 0
	if negative {
		c.qRest.Value.Abs(&c.qRest.Value)
		smallFactors = append(smallFactors, FactorExp{Prime: signMarker, Exponent: 1})
	}

	// Step 2: power-of-two reduction.
	if v2 := c.qRest.TrailingZeroBits(); v2 > 0 {
		c.qRest.Rsh(c.qRest, v2)
		smallFactors = append(smallFactors, FactorExp{Prime: 2, Exponent: int(v2)})
	}

	// Step 3: pass-1 candidate-prime selection.
	pass1Start := time.Now()
	pass2 := c.pass2Work[:0]
	pass2 = append(pass2, c.unsieved...)
	for i := len(c.base.Primes) - 1; i >= 1; i-- {
		p := c.base.PArray[i]
		r := barrettMod32(cand.X, p, c.base.PinvArrayL[i])
		if r == c.base.X1Array[i] || r == c.base.X2Array[i] {
			pass2 = append(pass2, i)
		}
	}
	c.stats.Pass1Duration += time.Since(pass1Start)

	// Step 4: pass-2 division.
	pass2Start := time.Now()
	for _, idx := range pass2 {
		p := c.base.PArray[idx]
		exp := 0
		for c.qRest.ModSmall(p) == 0 {
			c.qRest.DivExactSmall(p)
			exp++
		}
		if exp > 0 {
			smallFactors = append(smallFactors, FactorExp{
				Prime:    c.base.Primes[idx],
				Exponent: exp * c.base.Exponents[idx],
			})
		}
	}
	c.pass2Work = pass2
	c.smallFactors = smallFactors
	c.stats.Pass2Duration += time.Since(pass2Start)

	pair, ok := c.classify(cand, smallFactors)
	c.stats.AQDuration += time.Since(aqStart)
	return pair, ok
}

// classify implements step 5 of §4.1.
func (c *Classifier) classify(cand Candidate, smallFactors []FactorExp) (AQPair, bool) {
	if c.qRest.IsOne() {
		return &SmoothPerfect{A: cand.A, SmallFactors: cloneFactors(smallFactors)}, true
	}

	if c.qRest.Compare(c.maxQRest) >= 0 {
		return nil, false
	}

	bitLen := c.qRest.BitLen()
	c.stats.QRestSizeHistogram[minInt(bitLen, 63)]++

	primeStart := time.Now()
	isPrime := c.isResiduePrime()
	c.stats.PrimeTestDuration += time.Since(primeStart)

	if isPrime {
		if bitLen > 31 {
			return nil, false
		}
		p := uint32(c.qRest.Uint64())
		debugAssert(c.profile, p >= uint32(c.pMax), "classifier: large prime factor below pMax")
		return &Partial1Large{A: cand.A, SmallFactors: cloneFactors(smallFactors), P: p}, true
	}

	factorStart := time.Now()
	f1, f2, ok := c.splitComposite()
	c.stats.FactorDuration += time.Since(factorStart)
	if !ok {
		return nil, false
	}
	if f1.BitLen() > 31 || f2.BitLen() > 31 {
		return nil, false
	}

	p1, p2 := uint32(f1.Uint64()), uint32(f2.Uint64())
	if p1 == p2 {
		return &Smooth1LargeSquare{A: cand.A, SmallFactors: cloneFactors(smallFactors), P: p1}, true
	}
	return &Partial2Large{A: cand.A, SmallFactors: cloneFactors(smallFactors), P1: p1, P2: p2}, true
}

// isResiduePrime tests primality of Q_rest, short-circuiting to "trivially
// prime" below pMax² per §4.1 step 5.
func (c *Classifier) isResiduePrime() bool {
	if c.pMax2 > 0 && c.qRest.IsUint64() && c.qRest.Uint64() < c.pMax2 {
		return true
	}
	return factorization.IsPrime(&c.qRest.Value)
}

// splitComposite dispatches Q_rest to the size-appropriate engine: the
// in-process small-factor engines below 63 bits, or the nested
// Factoriser at or beyond it (§4.1 step 5, §4.4).
func (c *Classifier) splitComposite() (f1, f2 *big.Int, ok bool) {
	if c.qRest.BitLen() < nestedSIQSBits {
		n := c.qRest.Uint64()
		var factor uint64
		switch {
		case c.qRest.BitLen() < smallfactor.HartMaxBits:
			factor = smallfactor.Hart(n)
			if factor == 0 {
				factor = smallfactor.PollardRhoMontgomery63(n)
			}
		case c.qRest.BitLen() < 57:
			factor = smallfactor.PollardRhoMontgomery63(n)
		default:
			factor = smallfactor.PollardRhoMontgomery64(n)
		}
		if factor == 0 {
			factor = lehman.FindSingleFactor(n)
		}
		if factor == 0 || factor == 1 {
			return nil, nil, false
		}
		f1 = new(big.Int).SetUint64(factor)
		f2 = new(big.Int).SetUint64(n / factor)
		return f1, f2, true
	}

	if c.nested == nil {
		panic("classifier: residue reached the nested-SIQS branch but no Factoriser was wired")
	}
	n := new(big.Int).Set(&c.qRest.Value)
	factor, err := c.nested.FindFactor(context.Background(), n)
	if err != nil || factor == nil || factor.Sign() <= 0 {
		panic(fmt.Sprintf("classifier: nested factoriser failed on a %d-bit residue: %v", n.BitLen(), err))
	}
	complement := new(big.Int).Quo(n, factor)
	return factor, complement, true
}

// Report returns a snapshot of the classifier's accumulated statistics
// (§6, "Statistics block").
func (c *Classifier) Report() Stats {
	c.durations.aq = recordSample(c.durations.aq, float64(c.stats.AQDuration))
	c.durations.pass1 = recordSample(c.durations.pass1, float64(c.stats.Pass1Duration))
	c.durations.pass2 = recordSample(c.durations.pass2, float64(c.stats.Pass2Duration))
	c.durations.primeTest = recordSample(c.durations.primeTest, float64(c.stats.PrimeTestDuration))
	c.durations.factor = recordSample(c.durations.factor, float64(c.stats.FactorDuration))
	return c.stats
}

// DurationSummary reports mean/p50/p90/p99 over the classifier's recent
// per-Report duration samples (§6.1).
func (c *Classifier) DurationSummary() DurationSummary {
	return c.durationSummary()
}

// CleanUp releases the classifier's scratch state between factoring
// sessions. There is nothing to free beyond resetting counters since
// every scratch buffer is reused in place.
func (c *Classifier) CleanUp() {
	c.stats = Stats{}
	c.durations = newDurationRingBuffers()
}

func cloneFactors(src []FactorExp) []FactorExp {
	out := make([]FactorExp, len(src))
	copy(out, src)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// debugAssert panics with a descriptive message when cond is false and
// Profile.Debug is set; a no-op otherwise. It exists so a library
// consumer can turn on targeted internal consistency checks (§7.1)
// without recompiling the module behind a build tag.
func debugAssert(p Profile, cond bool, msg string) {
	if p.Debug && !cond {
		panic("classifier: debug assertion failed: " + msg)
	}
}
