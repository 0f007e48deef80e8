package tables

import "testing"

func TestSecondExtension_Size(t *testing.T) {
	if len(SecondExtension) != 91 {
		t.Errorf("len(SecondExtension) = %d, want 91", len(SecondExtension))
	}
	if SecondExtensionMax != 90 {
		t.Errorf("SecondExtensionMax = %d, want 90", SecondExtensionMax)
	}
}

func TestSecondExtension_TriangularNumbering(t *testing.T) {
	m := 0
	for i := uint32(0); i <= 12; i++ {
		for j := uint32(0); j <= i; j++ {
			p := SecondExtension[m]
			if p.Sum != i {
				t.Errorf("table[%d].Sum = %d, want %d", m, p.Sum, i)
			}
			if want := i * (i + 1) / 2; p.Offset != want {
				t.Errorf("table[%d].Offset = %d, want %d", m, p.Offset, want)
			}
			m++
		}
	}
	if m != len(SecondExtension) {
		t.Errorf("walked %d entries, table has %d", m, len(SecondExtension))
	}
}

func TestPair_Split(t *testing.T) {
	tests := []struct {
		m      uint32
		d0, d1 uint32
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 0, 1},
		{3, 2, 0},
		{5, 0, 2},
		{12, 2, 2},
		{13, 1, 3},
		{78, 12, 0},
		{90, 0, 12},
	}

	for _, tt := range tests {
		d0, d1 := SecondExtension[tt.m].Split(tt.m)
		if d0 != tt.d0 || d1 != tt.d1 {
			t.Errorf("Split(%d) = (%d, %d), want (%d, %d)", tt.m, d0, d1, tt.d0, tt.d1)
		}
	}
}

func TestPair_SplitRoundTrip(t *testing.T) {
	for d0 := uint32(0); d0 <= 12; d0++ {
		for d1 := uint32(0); d0+d1 <= 12; d1++ {
			s := d0 + d1
			m := s*(s+1)/2 + d1
			g0, g1 := SecondExtension[m].Split(m)
			if g0 != d0 || g1 != d1 {
				t.Errorf("pair (%d, %d): code %d splits to (%d, %d)", d0, d1, m, g0, g1)
			}
		}
	}
}
