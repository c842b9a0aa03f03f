package ring

// Min returns the minimum of x and y.
func Min(x, y int) int {
	if x > y {
		return y
	}
	return x
}

// ModExp performs the modular exponentiation x^e mod p using repeated
// Barrett reduction; x, e and p are required to be at most 64 bits to
// avoid overflow.
func ModExp(x, e, p uint64) (result uint64) {
	params := BRedParams(p)
	result = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, p, params)
		}
		x = BRed(x, x, p, params)
	}
	return result
}

