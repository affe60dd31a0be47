// Package buf provides overflow-safe offset arithmetic over byte slices.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// FrameSpan returns the byte range [start, end) that frame index occupies in
// a store of storeLen bytes carved into frames of frameSize bytes.
//
//	start, end, err := buf.FrameSpan(len(data), frame, pageSize)
//	if err != nil {
//	    return fmt.Errorf("physmem: %w", err)
//	}
//	copy(data[start:end], page)
func FrameSpan(storeLen, index, frameSize int) (int, int, error) {
	if index < 0 {
		return 0, 0, fmt.Errorf("negative frame index: %d", index)
	}
	if frameSize <= 0 {
		return 0, 0, fmt.Errorf("non-positive frame size: %d", frameSize)
	}

	start, ok := MulOverflowSafe(index, frameSize)
	if !ok {
		return 0, 0, fmt.Errorf("overflow: frame=%d * size=%d", index, frameSize)
	}
	end, ok := AddOverflowSafe(start, frameSize)
	if !ok {
		return 0, 0, fmt.Errorf("overflow: start=%d + size=%d", start, frameSize)
	}
	if end > storeLen {
		return 0, 0, fmt.Errorf("bounds: frame %d ends at %d > len=%d", index, end, storeLen)
	}
	return start, end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}
