package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(3, 256); !ok || got != 768 {
		t.Fatalf("MulOverflowSafe(3,256)=%d,%v want 768,true", got, ok)
	}
	if got, ok := MulOverflowSafe(0, math.MaxInt); !ok || got != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow for MaxInt/2+1 * 2")
	}
	if _, ok := MulOverflowSafe(-1, 2); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestFrameSpan(t *testing.T) {
	tests := []struct {
		name      string
		storeLen  int
		index     int
		frameSize int
		start     int
		end       int
		wantErr   bool
	}{
		{"first frame", 1024, 0, 256, 0, 256, false},
		{"last frame", 1024, 3, 256, 768, 1024, false},
		{"single frame store", 16, 0, 16, 0, 16, false},
		{"past end", 1024, 4, 256, 0, 0, true},
		{"negative index", 1024, -1, 256, 0, 0, true},
		{"zero frame size", 1024, 0, 0, 0, 0, true},
		{"overflow", 1024, math.MaxInt, 256, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := FrameSpan(tt.storeLen, tt.index, tt.frameSize)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got [%d,%d)", start, end)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.start || end != tt.end {
				t.Fatalf("FrameSpan = [%d,%d), want [%d,%d)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if _, ok := Slice(data, 2, 4); ok {
		t.Fatalf("Slice should fail for out-of-bounds range")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}
