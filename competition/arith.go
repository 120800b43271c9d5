// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"fmt"
	"math"
	"math/bits"
)

// pow10 returns 10^exp or ErrOverflow if it does not fit in a uint64
func pow10(exp uint32) (uint64, error) {
	result := uint64(1)
	for i := uint32(0); i < exp; i++ {
		var err error
		result, err = mulChecked(result, 10)
		if err != nil {
			return 0, fmt.Errorf("%w: 10^%d", ErrOverflow, exp)
		}
	}
	return result, nil
}

func mulChecked(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return lo, nil
}

func addChecked(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}

// mulDiv computes a*b/c without intermediate overflow. Callers guarantee
// b <= c, so the quotient never exceeds a.
func mulDiv(a, b, c uint64) uint64 {
	if c == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, c)
	return q
}
