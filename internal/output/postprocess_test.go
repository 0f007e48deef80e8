package output

import (
	"testing"

	"github.com/llehouerou/go-aec/internal/testenc"
)

// Every (previous, next) pair of a narrow sample width must survive the
// forward mapping and the reconstruction.
func TestPostprocessor_InvertsMapping(t *testing.T) {
	for _, bits := range []int{1, 2, 3, 5, 8} {
		for _, signed := range []bool{false, true} {
			m := testenc.NewMapper(bits, signed)
			xmin, xmax := m.Bounds()
			for prev := xmin; prev <= xmax; prev++ {
				for x := xmin; x <= xmax; x++ {
					p := NewPostprocessor(bits, signed)
					p.Reference(m.Raw(uint32(prev)))
					d := m.Map(prev, x)
					if got := p.Next(d); got != uint32(x) {
						t.Fatalf("bits=%d signed=%v prev=%d x=%d: Next(%d) = %d, want %d",
							bits, signed, prev, x, d, int32(got), x)
					}
				}
			}
		}
	}
}

func TestPostprocessor_WideSamples(t *testing.T) {
	tests := []struct {
		bits    int
		signed  bool
		prev, x int64
	}{
		{16, false, 0, 65535},
		{16, false, 65535, 0},
		{16, true, -32768, 32767},
		{16, true, 32767, -32768},
		{24, true, -1, 1},
		{32, false, 0, 0xFFFFFFFF},
		{32, false, 0x80000000, 0x7FFFFFFF},
		{32, false, 0xFFFFFFFE, 3},
		{32, true, -2147483648, 2147483647},
		{32, true, 2147483647, -2147483648},
		{32, true, 0, -1},
		{32, true, -5, 100000},
	}

	for _, tt := range tests {
		m := testenc.NewMapper(tt.bits, tt.signed)
		p := NewPostprocessor(tt.bits, tt.signed)
		p.Reference(m.Raw(uint32(tt.prev)))
		d := m.Map(tt.prev, tt.x)
		if got := p.Next(d); got != uint32(tt.x) {
			t.Errorf("bits=%d signed=%v prev=%d: Next(%d) = 0x%X, want %d", tt.bits, tt.signed, tt.prev, d, got, tt.x)
		}
	}
}

// Scenario C: unsigned 8-bit samples around 100.
func TestPostprocessor_Sequence(t *testing.T) {
	p := NewPostprocessor(8, false)
	if got := p.Reference(100); got != 100 {
		t.Fatalf("Reference(100) = %d, want 100", got)
	}
	residuals := []uint32{2, 3, 6, 7, 10, 11, 14}
	want := []uint32{101, 99, 102, 98, 103, 97, 104}
	for i, d := range residuals {
		if got := p.Next(d); got != want[i] {
			t.Errorf("Next(%d) = %d, want %d", d, got, want[i])
		}
	}
	if p.last != 104 {
		t.Errorf("last = %d, want 104", p.last)
	}
}

func TestPostprocessor_UpperHalf(t *testing.T) {
	// 250 is 5 below the top of the range, so residual 20 lands on
	// 255-20 = 235.
	p := NewPostprocessor(8, false)
	p.Reference(250)
	if got := p.Next(20); got != 235 {
		t.Errorf("Next(20) = %d, want 235", got)
	}
}

func TestPostprocessor_Reference(t *testing.T) {
	tests := []struct {
		bits   int
		signed bool
		raw    uint32
		want   uint32
	}{
		{8, false, 0xFF, 0xFF},
		{8, true, 0xFF, 0xFFFFFFFF},
		{8, true, 0x7F, 0x7F},
		{8, true, 0x80, 0xFFFFFF80},
		{12, true, 0x800, 0xFFFFF800},
		{32, true, 0x80000000, 0x80000000},
		{1, true, 1, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		p := NewPostprocessor(tt.bits, tt.signed)
		if got := p.Reference(tt.raw); got != tt.want {
			t.Errorf("bits=%d signed=%v: Reference(0x%X) = 0x%X, want 0x%X", tt.bits, tt.signed, tt.raw, got, tt.want)
		}
		if p.last != tt.want {
			t.Errorf("last = 0x%X, want 0x%X", p.last, tt.want)
		}
	}
}

func TestNewPostprocessor_Bounds(t *testing.T) {
	tests := []struct {
		bits       int
		signed     bool
		xmin, xmax uint32
	}{
		{8, false, 0, 255},
		{8, true, 0xFFFFFF80, 127},
		{1, false, 0, 1},
		{1, true, 0xFFFFFFFF, 0},
		{16, true, 0xFFFF8000, 0x7FFF},
		{32, false, 0, 0xFFFFFFFF},
		{32, true, 0x80000000, 0x7FFFFFFF},
	}

	for _, tt := range tests {
		p := NewPostprocessor(tt.bits, tt.signed)
		if p.xmin != tt.xmin || p.xmax != tt.xmax {
			t.Errorf("bits=%d signed=%v: bounds = (0x%X, 0x%X), want (0x%X, 0x%X)",
				tt.bits, tt.signed, p.xmin, p.xmax, tt.xmin, tt.xmax)
		}
	}
}
