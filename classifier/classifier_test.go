package classifier

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// bigIntComparer lets cmp.Diff compare *big.Int values by Cmp rather than
// by their unexported internal representation.
var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.Cmp(y) == 0
})

func syntheticBase() FactorBaseView {
	pinv := func(p uint64) uint64 { return (uint64(1) << 32) / p }
	return FactorBaseView{
		Primes:     []uint64{2, 3, 5, 7},
		PArray:     []uint64{2, 3, 5, 7},
		Exponents:  []int{1, 1, 1, 1},
		PinvArrayL: []uint64{0, pinv(3), pinv(5), pinv(7)},
		X1Array:    []int64{0, 0, 0, 0},
		X2Array:    []int64{0, 1, 1, 1},
	}
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := New(Profile{Debug: true}, syntheticBase(), FallbackFactoriser{})
	c.InitialiseForN(big.NewInt(0), big.NewInt(1<<40), Profile{Debug: true})
	return c
}

func TestTestListEmptyInput(t *testing.T) {
	c := newTestClassifier(t)
	got := c.TestList(nil)
	if len(got) != 0 {
		t.Fatalf("TestList(nil) = %v, want empty", got)
	}
}

func TestSmoothPerfect(t *testing.T) {
	c := newTestClassifier(t)
	q := big.NewInt(3 * 3 * 5 * 7)
	pairs := c.TestList([]Candidate{{X: 0, A: big.NewInt(10), Q: q}})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if _, ok := pairs[0].(*SmoothPerfect); !ok {
		t.Fatalf("expected *SmoothPerfect, got %T", pairs[0])
	}
	want := &SmoothPerfect{
		A: big.NewInt(10),
		SmallFactors: []FactorExp{
			{Prime: 7, Exponent: 1},
			{Prime: 5, Exponent: 1},
			{Prime: 3, Exponent: 2},
		},
	}
	if diff := cmp.Diff(want, pairs[0], bigIntComparer); diff != "" {
		t.Fatalf("SmoothPerfect mismatch (-want +got):\n%s", diff)
	}
}

func TestPartial1Large(t *testing.T) {
	c := newTestClassifier(t)
	const largePrime = 1000003
	q := new(big.Int).Mul(big.NewInt(2*3), big.NewInt(largePrime))
	pairs := c.TestList([]Candidate{{X: 0, A: big.NewInt(7), Q: q}})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if _, ok := pairs[0].(*Partial1Large); !ok {
		t.Fatalf("expected *Partial1Large, got %T", pairs[0])
	}
	want := &Partial1Large{
		A: big.NewInt(7),
		SmallFactors: []FactorExp{
			{Prime: 2, Exponent: 1},
			{Prime: 3, Exponent: 1},
		},
		P: largePrime,
	}
	if diff := cmp.Diff(want, pairs[0], bigIntComparer); diff != "" {
		t.Fatalf("Partial1Large mismatch (-want +got):\n%s", diff)
	}
}

func TestPartial2Large(t *testing.T) {
	c := newTestClassifier(t)
	const p1, p2 = 1000003, 1000033
	q := new(big.Int).Mul(big.NewInt(2), big.NewInt(p1))
	q.Mul(q, big.NewInt(p2))
	pairs := c.TestList([]Candidate{{X: 0, A: big.NewInt(3), Q: q}})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	pair, ok := pairs[0].(*Partial2Large)
	if !ok {
		t.Fatalf("expected *Partial2Large, got %T", pairs[0])
	}
	// The split order between f1/f2 is not guaranteed by the classifier,
	// so normalise to ascending order before comparing.
	if pair.P1 > pair.P2 {
		pair.P1, pair.P2 = pair.P2, pair.P1
	}
	want := &Partial2Large{
		A:            big.NewInt(3),
		SmallFactors: []FactorExp{{Prime: 2, Exponent: 1}},
		P1:           p1,
		P2:           p2,
	}
	if diff := cmp.Diff(want, pair, bigIntComparer); diff != "" {
		t.Fatalf("Partial2Large mismatch (-want +got):\n%s", diff)
	}
}

func TestRejectAboveMaxQRest(t *testing.T) {
	c := New(Profile{}, syntheticBase(), FallbackFactoriser{})
	c.InitialiseForN(big.NewInt(0), big.NewInt(100), Profile{})
	q := big.NewInt(2 * 1000003) // residue 1000003 exceeds maxQRest=100
	pairs := c.TestList([]Candidate{{X: 0, A: big.NewInt(1), Q: q}})
	if len(pairs) != 0 {
		t.Fatalf("expected silent rejection, got %v", pairs)
	}
}

func TestBarrettMod32MatchesModuloDefinition(t *testing.T) {
	primes := []uint64{3, 5, 7, 1009, 1048573}
	for _, p := range primes {
		pinv := (uint64(1) << 32) / p
		for _, x := range []int32{0, 1, -1, 2, -2, 1 << 20, -(1 << 20), 1<<31 - 1, -(1 << 31)} {
			got := barrettMod32(x, p, pinv)
			want := int64(x) % int64(p)
			if want < 0 {
				want += int64(p)
			}
			if got != want {
				t.Fatalf("barrettMod32(%d, %d) = %d, want %d", x, p, got, want)
			}
		}
	}
}

func TestReportAccumulatesTestCount(t *testing.T) {
	c := newTestClassifier(t)
	q := big.NewInt(3 * 5)
	c.TestList([]Candidate{{X: 0, A: big.NewInt(1), Q: q}})
	c.TestList([]Candidate{{X: 0, A: big.NewInt(2), Q: q}})
	stats := c.Report()
	if stats.TestCount != 2 {
		t.Fatalf("TestCount = %d, want 2", stats.TestCount)
	}
	if stats.SufficientSmoothCount != 2 {
		t.Fatalf("SufficientSmoothCount = %d, want 2", stats.SufficientSmoothCount)
	}
	c.CleanUp()
	if c.Report().TestCount != 0 {
		t.Fatalf("CleanUp did not reset TestCount")
	}
}
