package bitvector

// Darray answers select_q(i) (position of the i-th q-bit, 0-indexed) in
// O(1) amortized time, per spec: a two-level index over blocks of 1024
// positions, dense blocks holding a sub-sampled inventory at stride 32,
// sparse blocks (span >= 2^16) holding an explicit overflow table.
type Darray struct {
	bv          *BitVector
	one         bool // selects over 1-bits if true, 0-bits otherwise
	blockInv    []uint64 // one entry per 1024-run: position of its first occurrence
	subInv      []uint32 // stride-32 offsets within a dense block, relative to blockInv
	overflow    [][]uint64
	blockSpan   []uint64 // bit-span covered by each block, used to classify dense/sparse
	count       uint64
}

const (
	darrayBlockSize = 1024
	darraySubStride = 32
	sparseThreshold = 1 << 16
)

// BuildDarray constructs the select index for the 1-bits (one=true) or
// 0-bits (one=false) of bv.
func BuildDarray(bv *BitVector, one bool) *Darray {
	d := &Darray{bv: bv, one: one}

	var positions []uint64
	if one {
		for p, ok := uint64(0), true; ok; {
			p, ok = bv.NextSetBit(p)
			if !ok {
				break
			}
			positions = append(positions, p)
			p++
		}
	} else {
		positions = zeroPositions(bv)
	}
	d.count = uint64(len(positions))

	for start := 0; start < len(positions); start += darrayBlockSize {
		end := start + darrayBlockSize
		if end > len(positions) {
			end = len(positions)
		}
		block := positions[start:end]
		span := uint64(0)
		if len(block) > 0 {
			span = block[len(block)-1] - block[0]
		}
		d.blockSpan = append(d.blockSpan, span)
		d.blockInv = append(d.blockInv, block[0])
		if span >= sparseThreshold {
			ofl := make([]uint64, len(block))
			copy(ofl, block)
			d.overflow = append(d.overflow, ofl)
			continue
		}
		d.overflow = append(d.overflow, nil)
		for i := 0; i < len(block); i += darraySubStride {
			d.subInv = append(d.subInv, uint32(block[i]-block[0]))
		}
	}
	return d
}

func zeroPositions(bv *BitVector) []uint64 {
	var out []uint64
	for p := uint64(0); p < bv.Len(); p++ {
		if !bv.Get(p) {
			out = append(out, p)
		}
	}
	return out
}

// Select returns the position of the i-th (0-indexed) q-bit this darray
// indexes, or ErrOutOfRange if i is out of bounds.
func (d *Darray) Select(i uint64) (uint64, error) {
	if i >= d.count {
		return 0, ErrOutOfRange
	}
	blk := i / darrayBlockSize
	within := i % darrayBlockSize

	if d.overflow[blk] != nil {
		return d.overflow[blk][within], nil
	}

	// Dense block: jump to the nearest sampled position (stride 32) then
	// linearly enumerate the rest via unary scan — bounded by stride.
	sub := within / darraySubStride
	rem := within % darraySubStride

	subIdxBase := cumulativeSubCount(d, blk)
	base := d.blockInv[blk] + uint64(d.subInv[subIdxBase+sub])

	pos := base
	found := uint64(0)
	if rem == 0 {
		return pos, nil
	}
	for found < rem {
		p, ok := d.next(pos + 1)
		if !ok {
			return 0, ErrOutOfRange
		}
		pos = p
		found++
	}
	return pos, nil
}

func cumulativeSubCount(d *Darray, blk uint64) int {
	total := 0
	for b := uint64(0); b < blk; b++ {
		if d.overflow[b] != nil {
			continue
		}
		n := darrayBlockSize
		total += (n + darraySubStride - 1) / darraySubStride
	}
	return total
}

func (d *Darray) next(pos uint64) (uint64, bool) {
	if d.one {
		return d.bv.NextSetBit(pos)
	}
	for ; pos < d.bv.Len(); pos++ {
		if !d.bv.Get(pos) {
			return pos, true
		}
	}
	return 0, false
}

// Count returns the number of q-bits indexed.
func (d *Darray) Count() uint64 { return d.count }
