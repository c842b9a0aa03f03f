package smallfactor

import "testing"

func checkFactor(t *testing.T, n, f uint64) {
	t.Helper()
	if f == 0 {
		t.Fatalf("FindFactor(%d): no factor found", n)
	}
	if f <= 1 || f >= n {
		t.Fatalf("FindFactor(%d) = %d: not a nontrivial factor", n, f)
	}
	if n%f != 0 {
		t.Fatalf("FindFactor(%d) = %d: does not divide n", n, f)
	}
}

func TestHart(t *testing.T) {
	cases := []uint64{
		15,
		35184372088631, // 5591617 * 6292343
		1000000007 * 3,
	}
	for _, n := range cases {
		f := Hart(n)
		if f == 0 {
			t.Fatalf("Hart(%d): no factor found", n)
		}
		checkFactor(t, n, f)
	}
}

func TestPollardRhoMontgomery(t *testing.T) {
	cases := []uint64{
		35184372088631, // 5591617 * 6292343
		1000000007 * 1000000009,
	}
	for _, n := range cases {
		if n%2 == 0 || n < 4 {
			continue
		}
		f := PollardRhoMontgomery63(n)
		if f != 0 {
			checkFactor(t, n, f)
		}
	}
}

func TestFindFactorDispatch(t *testing.T) {
	n := uint64(1000000007) * 1000000009
	f := FindFactor(n)
	checkFactor(t, n, f)
}
