package picross

// PlacementIter walks every legal placement of a line's hints inside the
// inclusive bounds [left, right], in strictly increasing lexicographic order
// of start positions with no duplicates. The walk is a mixed-radix odometer:
// the leftmost feasible start of each block comes from greedy left-packing,
// the rightmost from greedy right-packing, and Next increments the last
// block's start, carrying into earlier blocks and re-packing the tail when a
// block runs past its rightmost bound. The sequence is empty exactly when
// the hints cannot fit in the bounds. Hints must be non-empty.
type PlacementIter struct {
	left   int
	right  int
	hints  []int
	starts []int
	maxes  []int
	idx    int
}

func NewPlacementIter(left, right int, hints []int) *PlacementIter {
	p := &PlacementIter{
		left:   left,
		right:  right,
		hints:  hints,
		starts: make([]int, len(hints)),
		maxes:  make([]int, len(hints)),
	}
	p.Reset()
	return p
}

// Reset rewinds the iterator to the first placement.
func (p *PlacementIter) Reset() {
	l2 := p.left
	for i, h := range p.hints {
		p.starts[i] = l2
		l2 += h + 1
	}
	r2 := p.right + 1
	for i := len(p.hints) - 1; i >= 0; i-- {
		r2 -= p.hints[i]
		p.maxes[i] = r2
		r2--
	}
	// back the last block off by one so the first Next lands on the
	// left-packed placement
	p.idx = len(p.hints) - 1
	p.starts[p.idx]--
}

// Next advances to the next placement and returns the start positions, one
// per hint. The slice is reused; it is only valid until the next call.
// ok is false once the sequence is exhausted.
func (p *PlacementIter) Next() (starts []int, ok bool) {
	last := len(p.hints) - 1
	for {
		p.starts[p.idx]++
		if p.starts[p.idx] > p.maxes[p.idx] {
			if p.idx == 0 {
				return nil, false
			}
			p.idx--
			continue
		}
		for p.idx < last {
			p.starts[p.idx+1] = p.starts[p.idx] + p.hints[p.idx] + 1
			p.idx++
		}
		return p.starts, true
	}
}

// fits reports whether a placement is consistent with the marks already on
// the line: a block may not cover a Blank cell, and no Filled cell may lie
// outside or strictly between the placed blocks.
func fits(line []Cell, hints []int, starts []int, left, right int) bool {
	prev := left
	for i, start := range starts {
		for x := prev; x < start; x++ {
			if line[x] == Filled {
				return false
			}
		}
		end := start + hints[i]
		for x := start; x < end; x++ {
			if line[x] == Blank {
				return false
			}
		}
		prev = end
	}
	for x := prev; x <= right; x++ {
		if line[x] == Filled {
			return false
		}
	}
	return true
}

// IsLegal reports whether at least one placement of hints is consistent with
// the line's current marks, short-circuiting on the first survivor. With
// empty hints the line is legal iff no cell is Filled.
func IsLegal(line []Cell, hints []int) bool {
	if len(hints) == 0 {
		for _, c := range line {
			if c == Filled {
				return false
			}
		}
		return true
	}
	left, right := trim(line)
	if minSpan(hints) > right-left+1 {
		return false
	}
	it := NewPlacementIter(left, right, hints)
	for {
		starts, ok := it.Next()
		if !ok {
			return false
		}
		if fits(line, hints, starts, left, right) {
			return true
		}
	}
}

// trim skips the forced-Blank margin cells from both ends, returning the
// inclusive bounds of the region still worth considering. A fully blank line
// comes back with right < left.
func trim(line []Cell) (left, right int) {
	left, right = 0, len(line)-1
	for left < len(line) && line[left] == Blank {
		left++
	}
	for right > left && line[right] == Blank {
		right--
	}
	return left, right
}
