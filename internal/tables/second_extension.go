package tables

// SecondExtensionMax is the largest joint code value of the second-extension
// option. Larger values cannot come from a conformant encoder.
const SecondExtensionMax = 90

// secondExtensionRows is the number of distinct pair sums (0-12).
const secondExtensionRows = 13

// Pair locates a joint code value m in the triangular numbering
// m = Sum*(Sum+1)/2 + d1 of a sample pair (d0, d1) with d0+d1 = Sum.
type Pair struct {
	Sum    uint32 // d0 + d1
	Offset uint32 // Sum*(Sum+1)/2, the code of (Sum, 0)
}

// Split returns the sample pair coded by m, which must be the table index.
func (p Pair) Split(m uint32) (d0, d1 uint32) {
	d1 = m - p.Offset
	return p.Sum - d1, d1
}

// SecondExtension is indexed by joint code value.
var SecondExtension = buildSecondExtension()

// Ported from: create_se_table() in ~/dev/libaec/src/decode.c
func buildSecondExtension() [SecondExtensionMax + 1]Pair {
	var t [SecondExtensionMax + 1]Pair
	k := 0
	for i := uint32(0); i < secondExtensionRows; i++ {
		offset := uint32(k)
		for j := uint32(0); j <= i; j++ {
			t[k] = Pair{Sum: i, Offset: offset}
			k++
		}
	}
	return t
}
