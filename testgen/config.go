// Package testgen implements the C5 hard-semiprime generator: calibrated
// test inputs of prescribed bit-length and factor balance, driving both
// the Lehman search (lehman) and the trial-division classifier
// (classifier) in development and benchmarking.
package testgen

import "fmt"

// Nature selects the generation mode (§4.3).
type Nature int

const (
	// RandomComposite draws uniform bits-bit integers, accepting any
	// composite.
	RandomComposite Nature = iota
	// RandomOddComposite is RandomComposite forced odd.
	RandomOddComposite
	// ModerateSemiprime draws a prime n1 whose bit length falls in the
	// window [(bits+2)/3, (bits+1)/2], so the split can be less balanced
	// than HardSemiprime's even split.
	ModerateSemiprime
	// ModerateSemiprime2 is ModerateSemiprime with both factors' high
	// bits forced so their bit lengths are exact, rather than derived
	// from a quotient.
	ModerateSemiprime2
	// HardSemiprime draws two primes of almost equal bit length, both
	// with their high bit forced — the worst case for trial division
	// and the case SIQS exists to handle.
	HardSemiprime
)

func (n Nature) String() string {
	switch n {
	case RandomComposite:
		return "RandomComposite"
	case RandomOddComposite:
		return "RandomOddComposite"
	case ModerateSemiprime:
		return "ModerateSemiprime"
	case ModerateSemiprime2:
		return "ModerateSemiprime2"
	case HardSemiprime:
		return "HardSemiprime"
	default:
		return fmt.Sprintf("Nature(%d)", int(n))
	}
}

// minBitsForNature is the minimum bit-length §4.3 requires for each mode;
// Generate fails eagerly (§7, "input out of range") below it.
func minBitsForNature(n Nature) (int, error) {
	switch n {
	case RandomComposite:
		return 3, nil
	case RandomOddComposite, ModerateSemiprime, ModerateSemiprime2, HardSemiprime:
		return 4, nil
	default:
		return 0, fmt.Errorf("testgen: unknown nature %d", int(n))
	}
}

// Config adjusts generator behaviour beyond the bare §4.3 contract.
type Config struct {
	// RejectPerfectSquare controls whether ModerateSemiprime rejects a
	// draw where the two factors coincide (n1 == n2, a perfect square).
	// spec.md §9's open question leaves this to the implementation;
	// this repo defaults to false (preserve, matching the source) and
	// lets a caller opt into rejection — see DESIGN.md.
	RejectPerfectSquare bool
}
