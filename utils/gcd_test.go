package utils

import "testing"

func TestGCD(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{0, 5, 5},
		{5, 0, 5},
		{12, 18, 6},
		{17, 5, 1},
		{1071, 462, 21},
		{5640012124823, 5, 1},
	}
	for _, c := range cases {
		if got := GCD(c.a, c.b); got != c.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := GCD(c.b, c.a); got != c.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", c.b, c.a, got, c.want)
		}
	}
}
