// Package conv provides checked integer conversions.
//
// Unlike a plain conversion, these report whether the value survived the
// narrowing, so callers can turn an overflow into an error instead of
// silently truncating.
package conv

import "math"

// Int64ToInt converts n to int. The second result is false if n does not
// fit, which can only happen on 32-bit platforms.
func Int64ToInt(n int64) (int, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}
