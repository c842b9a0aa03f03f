package factorization_test

import (
	"math/big"
	"testing"

	"github.com/siqscore/siqs/utils/factorization"
	"github.com/stretchr/testify/assert"
)

func TestIsPrime(t *testing.T) {
	// 2^64 - 59 is prime
	assert.True(t, factorization.IsPrime(new(big.Int).SetUint64(0xffffffffffffffc5)))
	// 2^64 + 13 is prime
	bigPrime, _ := new(big.Int).SetString("18446744073709551629", 10)
	assert.True(t, factorization.IsPrime(bigPrime))
	// 2^64 - 1 is not prime
	assert.False(t, factorization.IsPrime(new(big.Int).SetUint64(0xffffffffffffffff)))
	// small composites and primes
	assert.False(t, factorization.IsPrime(big.NewInt(1)))
	assert.True(t, factorization.IsPrime(big.NewInt(2)))
	assert.False(t, factorization.IsPrime(big.NewInt(9)))
	assert.True(t, factorization.IsPrime(big.NewInt(97)))
}

func TestIsPrimeUint64(t *testing.T) {
	assert.True(t, factorization.IsPrimeUint64(5591617))
	assert.False(t, factorization.IsPrimeUint64(35184372088631)) // 5591617 * 6292343
}
