package testgen

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/siqscore/siqs/utils/sampling"
)

// maxRejectionAttempts bounds the reject-and-retry loop for every mode
// (§4.3, "reject-and-retry until count accepted integers are
// collected"). A correctly parameterised request converges in a handful
// of tries; this guards against an always-rejecting combination (e.g. an
// unreasonably narrow bit window) looping forever.
const maxRejectionAttempts = 1 << 20

// sharedPRNG is the process-scope CSPRNG described in SPEC_FULL.md §5.1:
// a single keyed-BLAKE3 XOF seeded once from crypto/rand, shared by every
// Generator rather than reseeded per call. sharedPRNGMu serialises reads
// against it, since blake3's XOF reader advances shared internal state
// and has no concurrency guarantee of its own.
var (
	sharedPRNGOnce sync.Once
	sharedPRNG     *sampling.KeyedPRNG
	sharedPRNGErr  error
	sharedPRNGMu   sync.Mutex
)

func getSharedPRNG() (*sampling.KeyedPRNG, error) {
	sharedPRNGOnce.Do(func() {
		sharedPRNG, sharedPRNGErr = sampling.NewPRNG()
	})
	return sharedPRNG, sharedPRNGErr
}

// boundedReader adapts the shared PRNG's Read to the panic-on-error style
// used internally by the rejection samplers below: blake3's XOF reader,
// like math/big's own PRNG adapters, cannot fail once constructed, so
// surfacing an error type through every private sampling helper would be
// boilerplate with no real failure path to report.
type boundedReader struct {
	prng *sampling.KeyedPRNG
}

func (b *boundedReader) mustRead(p []byte) {
	sharedPRNGMu.Lock()
	defer sharedPRNGMu.Unlock()
	if _, err := b.prng.Read(p); err != nil {
		panic("testgen: process-scope PRNG read failed: " + err.Error())
	}
}

// Generator produces calibrated test integers per §4.3, backed by the
// process-scope CSPRNG described in SPEC_FULL.md §5.1.
type Generator struct {
	cfg Config
	r   *boundedReader
}

// New builds a Generator over the shared process-scope CSPRNG, seeded
// from crypto/rand on first use via utils/sampling.NewPRNG (§5.1),
// matching the teacher's keyed-BLAKE3-XOF CSPRNG contract.
func New(cfg Config) (*Generator, error) {
	prng, err := getSharedPRNG()
	if err != nil {
		return nil, fmt.Errorf("testgen: seeding shared PRNG: %w", err)
	}
	return &Generator{cfg: cfg, r: &boundedReader{prng: prng}}, nil
}

// Generate returns count integers of exact bit-length bits, shaped by
// nature (§4.3, §6 "Generator interface").
func (g *Generator) Generate(count, bits int, nature Nature) ([]*big.Int, error) {
	minBits, err := minBitsForNature(nature)
	if err != nil {
		return nil, err
	}
	if bits < minBits {
		return nil, fmt.Errorf("testgen: bits=%d below minimum %d for %s", bits, minBits, nature)
	}

	out := make([]*big.Int, 0, count)
	for len(out) < count {
		n, ok, err := g.draw(bits, nature)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// draw attempts a single accept/reject round for nature, retrying
// internally up to maxRejectionAttempts before reporting failure to
// Generate.
func (g *Generator) draw(bits int, nature Nature) (*big.Int, bool, error) {
	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		var n *big.Int
		var accept bool

		switch nature {
		case RandomComposite:
			n = randomBitsExact(g.r, bits)
			accept = isComposite(n)
		case RandomOddComposite:
			n = randomBitsExact(g.r, bits)
			n.Or(n, bigOne)
			accept = n.BitLen() == bits && isComposite(n)
		case ModerateSemiprime:
			n, accept = g.drawModerateSemiprime(bits)
		case ModerateSemiprime2:
			n, accept = g.drawModerateSemiprime2(bits)
		case HardSemiprime:
			n, accept = g.drawHardSemiprime(bits)
		default:
			return nil, false, fmt.Errorf("testgen: unknown nature %d", int(nature))
		}

		if accept {
			return n, true, nil
		}
	}
	return nil, false, fmt.Errorf("testgen: %s(bits=%d) did not converge after %d attempts", nature, bits, maxRejectionAttempts)
}

// drawModerateSemiprime implements §4.3's ModerateSemiprime mode:
// minBits = (bits+2)/3, maxBits = (bits+1)/2; n1 is a prime of a bit
// length drawn from that window, n2 is the next probable prime at or
// above a bits-bit draw divided by n1.
func (g *Generator) drawModerateSemiprime(bits int) (*big.Int, bool) {
	minBits := (bits + 2) / 3
	maxBits := (bits + 1) / 2
	if maxBits < minBits {
		maxBits = minBits
	}

	n1bits := uniformInt(g.r, minBits, maxBits+1)
	c1 := randomBitsExact(g.r, n1bits)
	n1 := nextProbablePrime(c1)
	if n1.BitLen() != n1bits {
		return nil, false
	}

	draw := randomBitsExact(g.r, bits)
	q := new(big.Int).Quo(draw, n1)
	if q.Sign() == 0 {
		return nil, false
	}
	n2 := nextProbablePrime(q)

	product := new(big.Int).Mul(n1, n2)
	if product.BitLen() != bits {
		return nil, false
	}
	if g.cfg.RejectPerfectSquare && n1.Cmp(n2) == 0 {
		return nil, false
	}
	return product, true
}

// drawModerateSemiprime2 implements §4.3's ModerateSemiprime2 mode: both
// factors' high bits are forced directly, rather than deriving n2 from a
// quotient. The Knuth-Schroeppel-dependent "k·N ≡ 1 (mod 8)" gate named
// in §4.3 is left unimplemented here — the multiplier chooser is an
// out-of-scope named collaborator (spec.md §1) with no concrete
// interface in this repo to call; see DESIGN.md.
func (g *Generator) drawModerateSemiprime2(bits int) (*big.Int, bool) {
	minBits := (bits + 2) / 3
	maxBits := (bits + 1) / 2
	if maxBits < minBits {
		maxBits = minBits
	}

	n1bits := uniformInt(g.r, minBits, maxBits+1)
	c1 := randomBitsExact(g.r, n1bits)
	n1 := nextProbablePrime(c1)
	if n1.BitLen() != n1bits {
		return nil, false
	}

	n2bits := bits - n1.BitLen()
	if n2bits < 2 {
		return nil, false
	}
	c2 := randomBitsExact(g.r, n2bits)
	n2 := nextProbablePrime(c2)
	if n2.BitLen() != n2bits {
		return nil, false
	}

	product := new(big.Int).Mul(n1, n2)
	if product.BitLen() != bits {
		return nil, false
	}
	if g.cfg.RejectPerfectSquare && n1.Cmp(n2) == 0 {
		return nil, false
	}
	return product, true
}

// drawHardSemiprime implements §4.3's HardSemiprime mode: both factors
// are roughly bits/2 wide with their high bit forced, the worst case for
// trial division.
func (g *Generator) drawHardSemiprime(bits int) (*big.Int, bool) {
	n1bits := bits / 2
	n2bits := bits - n1bits

	c1 := randomBitsExact(g.r, n1bits)
	n1 := nextProbablePrime(c1)
	if n1.BitLen() != n1bits {
		return nil, false
	}

	c2 := randomBitsExact(g.r, n2bits)
	n2 := nextProbablePrime(c2)
	if n2.BitLen() != n2bits {
		return nil, false
	}

	product := new(big.Int).Mul(n1, n2)
	if product.BitLen() != bits {
		return nil, false
	}
	return product, true
}
