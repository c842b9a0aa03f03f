package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type argDivRound struct {
	x, y, want *Int
}

var divRoundVec = []argDivRound{
	{NewInt(0), NewInt(1), NewInt(0)},
	{NewInt(1), NewInt(2), NewInt(1)},
	{NewInt(5), NewInt(2), NewInt(3)},
	{NewInt(5), NewInt(3), NewInt(2)},
	{NewInt(5), NewInt(-2), NewInt(-3)},
	{NewInt(-5), NewInt(2), NewInt(-3)},
	{NewInt(-5), NewInt(-2), NewInt(3)},
	{NewInt(987654321), NewInt(123456789), NewInt(8)},
	{NewInt(-987654320), NewInt(123456789), NewInt(-8)},
	{NewIntFromString("123456789123456789123456789123456789"), NewInt(123456789), NewIntFromString("1000000001000000001000000001")},
}

func TestDivRound(t *testing.T) {
	z := NewInt(0)
	for i, tv := range divRoundVec {
		z.DivRound(tv.x, tv.y)
		require.Zerof(t, z.Compare(tv.want), "DivRound test pair %d: got %s want %s", i, z, tv.want)
	}
}

func TestDivExactSmallAndModSmall(t *testing.T) {
	// round trip: (p*k) mod p == 0, and (p*k) / p == k
	k := NewIntFromString("98765432109876543210987654321")
	p := uint64(104729) // a prime
	prod := NewInt(0).Mul(k, NewUint(p))
	require.Equal(t, uint64(0), prod.ModSmall(p))
	prod.DivExactSmall(p)
	require.True(t, prod.EqualTo(k))
}

func TestTrailingZeroBitsAndIsOne(t *testing.T) {
	v := NewUint(96) // 0b1100000 -> 5 trailing zero bits
	require.Equal(t, uint(5), v.TrailingZeroBits())

	one := NewInt(1)
	require.True(t, one.IsOne())
	require.False(t, v.IsOne())
}

func TestIsPrime(t *testing.T) {
	require.True(t, NewUint(0xffffffffffffffc5).IsPrime(20)) // 2^64 - 59
	require.False(t, NewUint(0xffffffffffffffff).IsPrime(20))
}
