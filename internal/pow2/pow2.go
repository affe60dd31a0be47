// Package pow2 holds the power-of-two arithmetic shared by the frame
// allocator, physical memory and configuration validation.
package pow2

// IsPowerOfTwo reports whether n is 1, 2, 4, 8, ...
// Zero and negative values are never powers of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// CeilDiv returns ceil(n / d) using integer arithmetic only.
// d must be positive; n must be non-negative.
//
// Examples:
//
//	CeilDiv(512, 256) = 2
//	CeilDiv(257, 256) = 2
//	CeilDiv(16, 256)  = 1
func CeilDiv(n, d int) int {
	if n == 0 {
		return 0
	}
	return (n-1)/d + 1
}

// AlignUp returns n rounded up to the next multiple of align.
// align must be a power of two.
func AlignUp(n, align int) int {
	mask := align - 1
	return (n + mask) &^ mask
}

// AlignDown returns n rounded down to a multiple of align.
// align must be a power of two.
func AlignDown(n, align int) int {
	return n &^ (align - 1)
}
