package pow2

import (
	"math"
	"testing"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{math.MinInt, false},
		{-8, false},
		{-1, false},
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{4, true},
		{6, false},
		{255, false},
		{256, true},
		{1000, false},
		{1024, true},
		{1 << 30, true},
		{1<<30 + 1, false},
		{math.MaxInt, false},
	}
	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo_AllShifts(t *testing.T) {
	for k := 0; k < bitsInInt()-1; k++ {
		n := 1 << k
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(1<<%d) = false", k)
		}
		if k > 1 && IsPowerOfTwo(n-1) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n-1)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		n, d, want int
	}{
		{0, 256, 0},
		{1, 256, 1},
		{16, 256, 1},
		{255, 256, 1},
		{256, 256, 1},
		{257, 256, 2},
		{512, 256, 2},
		{513, 256, 3},
		{1024, 1, 1024},
		{math.MaxInt, 1, math.MaxInt},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.n, tt.d); got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.n, tt.d, got, tt.want)
		}
	}
}

func TestAlign(t *testing.T) {
	if got := AlignUp(1, 4096); got != 4096 {
		t.Errorf("AlignUp(1, 4096) = %d", got)
	}
	if got := AlignUp(4096, 4096); got != 4096 {
		t.Errorf("AlignUp(4096, 4096) = %d", got)
	}
	if got := AlignDown(4097, 4096); got != 4096 {
		t.Errorf("AlignDown(4097, 4096) = %d", got)
	}
	if got := AlignDown(4095, 4096); got != 0 {
		t.Errorf("AlignDown(4095, 4096) = %d", got)
	}
}

func bitsInInt() int {
	return 32 << (^uint(0) >> 63)
}
