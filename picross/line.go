package picross

import (
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// Contradiction is the engine's one error kind: a line with zero consistent
// assignments given its hints and the marks already on the board.
type Contradiction struct {
	Line   LineID
	Hints  []int
	Reason string
}

func (e *Contradiction) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Line, e.Hints, e.Reason)
}

// NoForce selects normal deduction mode for SolveLine.
const NoForce = -1

// LineResult reports what one SolveLine call did to the line.
type LineResult struct {
	Changed    []int  // indexes whose state changed
	Placements uint32 // surviving placements; meaningless when a choice was forced
	Done       bool
}

// SolveLine applies the deduction rules to one line, mutating it in place.
// The caller owns writing the line back into the board. With forced >= 0 the
// general path commits the forced-th surviving placement outright instead of
// intersecting all of them; the returned placement count is not valid in
// that mode.
func (s *Solver) SolveLine(line []Cell, hints []int, id LineID, forced int) (LineResult, error) {
	full := len(line)

	// rule 'zero' - no hints means the whole line is blank
	if len(hints) == 0 {
		for _, c := range line {
			if c == Filled {
				return LineResult{}, s.contradiction(id, hints, "no hints but the line has a filled cell")
			}
		}
		res := LineResult{Done: true}
		for x := range line {
			if line[x] != Blank {
				line[x] = Blank
				res.Changed = append(res.Changed, x)
			}
		}
		return res, nil
	}

	// rule 'one' - a single hint spanning the whole line
	if len(hints) == 1 && hints[0] == full {
		for _, c := range line {
			if c == Blank {
				return LineResult{}, s.contradiction(id, hints, "hint spans the full line but a cell is blank")
			}
		}
		res := LineResult{Done: true, Placements: 1}
		for x := range line {
			if line[x] != Filled {
				line[x] = Filled
				res.Changed = append(res.Changed, x)
			}
		}
		return res, nil
	}

	left, right := trim(line)
	available := right - left + 1
	if available == 0 {
		// nothing left to work with; treat as a done line
		return LineResult{Done: true}, nil
	}

	span := minSpan(hints)
	if span > available {
		return LineResult{}, s.contradiction(id, hints,
			fmt.Sprintf("hints need %d cells but only %d are available", span, available))
	}

	// rule full - the hints fit the available region exactly, so the one
	// placement is forced: blocks left to right with single blank gaps
	if span == available {
		res := LineResult{Done: true, Placements: 1}
		x := left
		for i, h := range hints {
			for end := x + h; x < end; x++ {
				if line[x] == Blank {
					return LineResult{}, s.contradiction(id, hints, "exact fit crosses a blank cell")
				}
				if line[x] != Filled {
					line[x] = Filled
					res.Changed = append(res.Changed, x)
				}
			}
			if i < len(hints)-1 {
				if line[x] == Filled {
					return LineResult{}, s.contradiction(id, hints, "exact fit needs a gap on a filled cell")
				}
				if line[x] != Blank {
					line[x] = Blank
					res.Changed = append(res.Changed, x)
				}
				x++
			}
		}
		return res, nil
	}

	return s.enumerateLine(line, hints, id, left, right, available, forced)
}

// enumerateLine is the big hammer: walk every placement consistent with the
// current marks, count how often each cell would be filled, and keep the
// cells that are filled in every placement or in none.
func (s *Solver) enumerateLine(line []Cell, hints []int, id LineID, left, right, available, forced int) (LineResult, error) {
	// An untouched line with more slack than its largest hint can't produce
	// an overlap anywhere, so enumeration would deduce nothing. The placement
	// count is still needed for guess weighting; on a line with no marks it
	// is the slack distributed over the gaps.
	if forced < 0 && allUnknown(line) {
		slack := available - minSpan(hints)
		if slack >= maxHint(hints) {
			return LineResult{Placements: freePlacements(slack, len(hints))}, nil
		}
	}

	fillCount := make([]uint32, len(line))
	var posCount uint32
	it := NewPlacementIter(left, right, hints)
	for {
		starts, ok := it.Next()
		if !ok {
			break
		}
		if !fits(line, hints, starts, left, right) {
			continue
		}
		if forced >= 0 && int(posCount) == forced {
			return s.commitPlacement(line, hints, starts, left, right), nil
		}
		posCount++
		for i, start := range starts {
			for x := start; x < start+hints[i]; x++ {
				fillCount[x]++
			}
		}
	}

	if forced >= 0 {
		return LineResult{}, s.contradiction(id, hints,
			fmt.Sprintf("forced placement %d is past the last survivor", forced))
	}
	if posCount == 0 {
		return LineResult{}, s.contradiction(id, hints, "no possible placements")
	}

	res := LineResult{Placements: posCount}
	for x := left; x <= right; x++ {
		if line[x] != Unknown {
			continue
		}
		if fillCount[x] == posCount {
			line[x] = Filled
			res.Changed = append(res.Changed, x)
		} else if fillCount[x] == 0 {
			line[x] = Blank
			res.Changed = append(res.Changed, x)
		}
	}
	if len(res.Changed) == 0 {
		return res, nil
	}
	s.log.WithFields(logrus.Fields{
		"line":       id.String(),
		"placements": posCount,
		"changed":    len(res.Changed),
	}).Debug("enumeration deduced cells")

	recheckRuns(line, hints, &res)
	return res, nil
}

// commitPlacement writes one placement outright: its blocks to Filled and
// every other cell inside the trimmed bounds to Blank.
func (s *Solver) commitPlacement(line []Cell, hints []int, starts []int, left, right int) LineResult {
	res := LineResult{Done: true}
	want := make([]Cell, len(line))
	for x := left; x <= right; x++ {
		want[x] = Blank
	}
	for i, start := range starts {
		for x := start; x < start+hints[i]; x++ {
			want[x] = Filled
		}
	}
	for x := left; x <= right; x++ {
		if line[x] != want[x] {
			line[x] = want[x]
			res.Changed = append(res.Changed, x)
		}
	}
	return res
}

// recheckRuns looks at the line's filled runs after a deduction; when they
// already spell out the hints exactly, every remaining Unknown is blank and
// the line is done. A mismatch is not an error: partial runs can outnumber
// the hints mid-solve, since two separate runs may later merge inside one
// block.
func recheckRuns(line []Cell, hints []int, res *LineResult) {
	runs := make([]int, 0, len(hints)+1)
	inRun := false
	for _, c := range line {
		if c != Filled {
			inRun = false
			continue
		}
		if inRun {
			runs[len(runs)-1]++
		} else {
			runs = append(runs, 1)
			inRun = true
			if len(runs) > len(hints) {
				return
			}
		}
	}
	if !slices.Equal(runs, hints) {
		return
	}
	for x := range line {
		if line[x] == Unknown {
			line[x] = Blank
			res.Changed = append(res.Changed, x)
		}
	}
	res.Done = true
}

func allUnknown(line []Cell) bool {
	for _, c := range line {
		if c != Unknown {
			return false
		}
	}
	return true
}

// freePlacements counts the placements of k blocks on a line with the given
// slack: C(slack+k, k), clamped rather than overflowed.
func freePlacements(slack, k int) uint32 {
	n := uint64(1)
	for i := 1; i <= k; i++ {
		n = n * uint64(slack+i) / uint64(i)
		if n > math.MaxUint32 {
			return math.MaxUint32
		}
	}
	return uint32(n)
}

func (s *Solver) contradiction(id LineID, hints []int, reason string) error {
	s.log.WithFields(logrus.Fields{
		"line":  id.String(),
		"hints": hints,
	}).Debug(reason)
	return &Contradiction{Line: id, Hints: hints, Reason: reason}
}
