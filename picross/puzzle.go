package picross

import "fmt"

// Puzzle is the immutable problem definition: grid dimensions plus one
// ordered hint list per row and per column. An empty hint list means the
// whole line is blank.
type Puzzle struct {
	RowCount int
	ColCount int
	RowHints [][]int
	ColHints [][]int
}

func (p *Puzzle) Hints(id LineID) []int {
	if id.Axis == AxisRow {
		return p.RowHints[id.Index]
	}
	return p.ColHints[id.Index]
}

func (p *Puzzle) LineLen(id LineID) int {
	if id.Axis == AxisRow {
		return p.ColCount
	}
	return p.RowCount
}

// Validate checks the dimensions and hint lists. A hint list that cannot fit
// its line is reported as a Contradiction, the same error kind the solver
// raises when marks shrink the available space mid-solve.
func (p *Puzzle) Validate() error {
	if p.RowCount < 1 || p.ColCount < 1 {
		return fmt.Errorf("puzzle dimensions must be positive, got %dx%d", p.RowCount, p.ColCount)
	}
	if len(p.RowHints) != p.RowCount {
		return fmt.Errorf("have %d row hint lists for %d rows", len(p.RowHints), p.RowCount)
	}
	if len(p.ColHints) != p.ColCount {
		return fmt.Errorf("have %d col hint lists for %d cols", len(p.ColHints), p.ColCount)
	}
	for axis, lists := range [][][]int{p.RowHints, p.ColHints} {
		for i, hints := range lists {
			id := LineID{Axis(axis), i}
			for _, h := range hints {
				if h < 1 {
					return fmt.Errorf("%s: hint %d is not a positive integer", id, h)
				}
			}
			if minSpan(hints) > p.LineLen(id) {
				return &Contradiction{
					Line:   id,
					Hints:  hints,
					Reason: fmt.Sprintf("hints need %d cells but the line has %d", minSpan(hints), p.LineLen(id)),
				}
			}
		}
	}
	return nil
}

// minSpan is the tightest width the hints can pack into: the blocks plus one
// gap between each pair.
func minSpan(hints []int) int {
	total := len(hints) - 1
	for _, h := range hints {
		total += h
	}
	return total
}

func maxHint(hints []int) int {
	m := 0
	for _, h := range hints {
		if h > m {
			m = h
		}
	}
	return m
}
