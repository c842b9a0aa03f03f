package classifier

import (
	"context"
	"math/big"
	"math/rand"

	"github.com/ALTree/bigfloat"
)

// fallbackMaxRestarts bounds how many randomized Brent polynomials
// FallbackFactoriser tries before giving up. Real SIQS instances do not
// fail to terminate in practice; this exists only so a pathological
// residue (e.g. a prime slipping through the caller's primality check)
// cannot hang the nested branch forever.
const fallbackMaxRestarts = 64

// FallbackFactoriser is the default siqsiface.Factoriser this repo
// ships: a big-integer Brent Pollard-ρ search repeated with randomized
// polynomials, standing in for "a nested SIQS instance with reduced
// parameters" (§4.1 step 5, §4.4) now that the surrounding
// sieve/polynomial-generator/matrix-solver subsystems are out of scope
// (§1). An embedding application that builds the full recursive sieve
// wires its own Factoriser at this seam instead.
type FallbackFactoriser struct{}

// FindFactor implements siqsiface.Factoriser.
func (FallbackFactoriser) FindFactor(ctx context.Context, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errNonPositive
	}
	if n.Bit(0) == 0 {
		return big.NewInt(2), nil
	}

	// Expected iteration count for Pollard-ρ is O(N^(1/4)); this residue
	// is large enough that float64 overflows well before that exponent
	// is reached, so the estimate is computed with bigfloat's
	// arbitrary-precision Sqrt (applied twice for the fourth root)
	// purely to size a generous restart budget below.
	nf := new(big.Float).SetPrec(128).SetInt(n)
	quarterRoot := bigfloat.Sqrt(bigfloat.Sqrt(nf))
	restarts := restartBudget(quarterRoot)

	one := big.NewInt(1)
	two := big.NewInt(2)

	for attempt := 0; attempt < restarts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := randomBigInt(n)
		if c.Cmp(one) <= 0 {
			c.Add(c, two)
		}

		if f := brentPollardRhoBig(n, c); f != nil {
			return f, nil
		}
	}
	return nil, errExhausted
}

// brentPollardRhoBig runs Brent's improvement to Pollard's ρ over
// arbitrary-precision arithmetic with f(x) = x² + c mod n, mirroring the
// same cycle-detection structure smallfactor's Montgomery variant uses
// at 64-bit width, generalized here to N of unbounded size.
func brentPollardRhoBig(n, c *big.Int) *big.Int {
	x := big.NewInt(2)
	y := big.NewInt(2)
	g := big.NewInt(1)
	r := big.NewInt(1)
	q := big.NewInt(1)
	ys := new(big.Int)

	step := func(v *big.Int) *big.Int {
		out := new(big.Int).Mul(v, v)
		out.Add(out, c)
		out.Mod(out, n)
		return out
	}

	tmp := new(big.Int)
	for g.Cmp(one()) == 0 {
		x.Set(y)
		for i := big.NewInt(0); i.Cmp(r) < 0; i.Add(i, one()) {
			y = step(y)
		}
		k := big.NewInt(0)
		for k.Cmp(r) < 0 && g.Cmp(one()) == 0 {
			ys.Set(y)
			limit := new(big.Int).Sub(r, k)
			if limit.Cmp(big.NewInt(128)) > 0 {
				limit.SetInt64(128)
			}
			for i := int64(0); i < limit.Int64(); i++ {
				y = step(y)
				tmp.Sub(x, y)
				tmp.Abs(tmp)
				if tmp.Sign() == 0 {
					continue
				}
				q.Mul(q, tmp)
				q.Mod(q, n)
			}
			g.GCD(nil, nil, q, n)
			k.Add(k, limit)
		}
		r.Mul(r, big.NewInt(2))
		if r.BitLen() > 48 {
			break
		}
	}

	if g.Cmp(n) == 0 {
		for {
			ys = step(ys)
			tmp.Sub(x, ys)
			tmp.Abs(tmp)
			if tmp.Sign() == 0 {
				return nil
			}
			g.GCD(nil, nil, tmp, n)
			if g.Sign() > 0 && g.Cmp(one()) != 0 {
				break
			}
		}
	}

	if g.Sign() > 0 && g.Cmp(one()) != 0 && g.Cmp(n) != 0 {
		return g
	}
	return nil
}

func one() *big.Int { return big.NewInt(1) }

// restartBudget widens the restart loop for residues whose expected
// Brent iteration count (O(N^(1/4))) is large, capped at
// fallbackMaxRestarts*4 so a single nested-factoriser call still
// terminates in bounded time regardless of how hard the residue turns
// out to be.
func restartBudget(quarterRoot *big.Float) int {
	exp := quarterRoot.MantExp(nil)
	budget := fallbackMaxRestarts + exp/8
	if budget > fallbackMaxRestarts*4 {
		budget = fallbackMaxRestarts * 4
	}
	if budget < fallbackMaxRestarts {
		budget = fallbackMaxRestarts
	}
	return budget
}

// randomBigInt draws a uniform value in [0, n) using math/rand seeded
// implicitly; the caller only uses this to pick a Brent polynomial's
// additive constant, not for any cryptographic purpose, so the weaker
// non-CSPRNG source is appropriate here (unlike testgen's process-scope
// CSPRNG, §5.1).
func randomBigInt(n *big.Int) *big.Int {
	bitLen := n.BitLen()
	if bitLen == 0 {
		return big.NewInt(0)
	}
	for {
		buf := make([]byte, (bitLen+7)/8)
		for i := range buf {
			buf[i] = byte(rand.Intn(256))
		}
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(n) < 0 {
			return v
		}
	}
}

type factoriserError string

func (e factoriserError) Error() string { return string(e) }

const (
	errNonPositive = factoriserError("classifier: FallbackFactoriser requires a positive n")
	errExhausted   = factoriserError("classifier: FallbackFactoriser exhausted its restart budget")
)
