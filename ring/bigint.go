// Package ring implements the arbitrary-precision modular arithmetic
// primitives shared by the sieve's relation-collection core: Barrett and
// Montgomery reduction on 64-bit moduli, and a reusable big-integer
// wrapper used to hold the in-place Q-residue a candidate is reduced
// against during trial division.
package ring

import (
	"crypto/rand"
	"math/big"
)

// Int is a mutable arbitrary-precision integer. Operations write their
// result into the receiver, mirroring math/big's own in-place style, so
// that a classifier can reuse one Int as scratch across many candidates
// without allocating.
type Int struct {
	Value big.Int
}

// NewInt creates a new Int with a given int64 value.
func NewInt(v int64) *Int {
	i := new(Int)
	i.Value.SetInt64(v)
	return i
}

// NewUint creates a new Int with a given uint64 value.
func NewUint(v uint64) *Int {
	i := new(Int)
	i.Value.SetUint64(v)
	return i
}

// Copy creates a new Int which is a copy of the input Int.
func Copy(v *Int) *Int {
	i := new(Int)
	i.Value.Set(&v.Value)
	return i
}

// RandInt generates a random Int in [0, max-1].
func RandInt(max *Int) *Int {
	n, err := rand.Int(rand.Reader, &max.Value)
	if err != nil {
		panic("ring: crypto/rand unavailable: " + err.Error())
	}
	i := new(Int)
	i.Value = *n
	return i
}

// NewIntFromString creates a new Int from a string. A prefix of "0x"/"0X"
// selects base 16, "0" selects base 8, "0b"/"0B" selects base 2; otherwise
// the selected base is 10.
func NewIntFromString(s string) *Int {
	i := new(Int)
	i.Value.SetString(s, 0)
	return i
}

// String returns the value of Int i in string form.
func (i *Int) String() string {
	return i.Value.String()
}

// SetInt sets Int i with value v.
func (i *Int) SetInt(v int64) *Int {
	i.Value.SetInt64(v)
	return i
}

// SetUint sets Int i with value v.
func (i *Int) SetUint(v uint64) *Int {
	i.Value.SetUint64(v)
	return i
}

// SetBigInt sets Int i with the value of v.
func (i *Int) SetBigInt(v *Int) *Int {
	i.Value.Set(&v.Value)
	return i
}

// IsPrime returns true if the target passes n rounds of Miller-Rabin
// after a BPSW-equivalent base check (see math/big.Int.ProbablyPrime's
// documented guarantee for n == 0).
func (i *Int) IsPrime(n int) bool {
	return i.Value.ProbablyPrime(n)
}

// IsOne reports whether i == 1, the SmoothPerfect classification test.
func (i *Int) IsOne() bool {
	return i.Value.Cmp(bigOne) == 0
}

// Sign returns -1, 0 or +1 depending on whether i is negative, zero or
// positive.
func (i *Int) Sign() int {
	return i.Value.Sign()
}

// Abs sets i to |a|.
func (i *Int) Abs(a *Int) *Int {
	i.Value.Abs(&a.Value)
	return i
}

// BitLen returns the length of the absolute value of i in bits. The
// bit-length of zero is zero.
func (i *Int) BitLen() int {
	return i.Value.BitLen()
}

// Add sets the target i to a + b.
func (i *Int) Add(a, b *Int) *Int {
	i.Value.Add(&a.Value, &b.Value)
	return i
}

// Sub sets the target i to a - b.
func (i *Int) Sub(a, b *Int) *Int {
	i.Value.Sub(&a.Value, &b.Value)
	return i
}

// Mul sets the target i to a * b.
func (i *Int) Mul(a, b *Int) *Int {
	i.Value.Mul(&a.Value, &b.Value)
	return i
}

// Div sets the target i to floor(a / b).
func (i *Int) Div(a, b *Int) *Int {
	i.Value.Quo(&a.Value, &b.Value)
	return i
}

// DivRound sets the target i to round(a/b), rounding half away from zero.
func (i *Int) DivRound(a, b *Int) *Int {
	_a := NewInt(1)
	_a.SetBigInt(a)
	i.Value.Quo(&_a.Value, &b.Value)
	r := NewInt(1)
	r.Value.Rem(&_a.Value, &b.Value)
	r2 := NewInt(1).Mul(r, NewInt(2))
	if r2.Value.CmpAbs(&b.Value) != -1 {
		if _a.Value.Sign() == b.Value.Sign() {
			i.Add(i, NewInt(1))
		} else {
			i.Sub(i, NewInt(1))
		}
	}
	return i
}

// Mod sets the target i to a mod m, m > 0, result in [0, m).
func (i *Int) Mod(a, m *Int) *Int {
	i.Value.Mod(&a.Value, &m.Value)
	return i
}

// EqualTo reports whether i and i2 hold the same value.
func (i *Int) EqualTo(i2 *Int) bool {
	return i.Value.Cmp(&i2.Value) == 0
}

// Compare compares i and i2 and returns -1, 0 or +1 for <, ==, >.
func (i *Int) Compare(i2 *Int) int {
	return i.Value.Cmp(&i2.Value)
}

// Uint64 returns the low 64 bits of i as uint64.
func (i *Int) Uint64() uint64 {
	return i.Value.Uint64()
}

// Int64 returns the low 63 bits of i as int64.
func (i *Int) Int64() int64 {
	return i.Value.Int64()
}

// IsUint64 reports whether i fits in an unsigned 64 bit word.
func (i *Int) IsUint64() bool {
	return i.Value.IsUint64()
}

// Rsh sets the target i to a >> n.
func (i *Int) Rsh(a *Int, n uint) *Int {
	i.Value.Rsh(&a.Value, n)
	return i
}

// TrailingZeroBits returns v2(i), the 2-adic valuation of i, i.e. the
// power-of-two reduction exponent of §4.1 step 2.
func (i *Int) TrailingZeroBits() uint {
	return uint(i.Value.TrailingZeroBits())
}

// DivExactSmall divides i by the small divisor p in place, assuming p
// divides i exactly (callers probe divisibility first via ModSmall), and
// reuses the receiver's backing storage rather than allocating a fresh
// big.Int — the pass-2 "in-place arbitrary-precision divide-by-small-
// integer that avoids allocation" operation of §4.1 step 4.
func (i *Int) DivExactSmall(p uint64) {
	var divisor big.Int
	divisor.SetUint64(p)
	i.Value.Quo(&i.Value, &divisor)
}

// ModSmall returns i mod p for a small uint64 modulus p, without
// disturbing i — used to probe whether p divides the residue before
// committing to a division.
func (i *Int) ModSmall(p uint64) uint64 {
	var divisor big.Int
	divisor.SetUint64(p)
	var rem big.Int
	rem.Mod(&i.Value, &divisor)
	return rem.Uint64()
}

var bigOne = big.NewInt(1)
