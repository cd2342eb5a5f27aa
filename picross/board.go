package picross

import "fmt"

// Cell is the state of one grid square.
type Cell int

const (
	Unknown Cell = iota
	Filled
	Blank
)

func (c Cell) String() string {
	switch c {
	case Unknown:
		return "Unknown"
	case Filled:
		return "Filled"
	case Blank:
		return "Blank"
	}
	return "?"
}

type Axis int

const (
	AxisRow Axis = iota
	AxisCol
)

// LineID names one row or column of the grid.
type LineID struct {
	Axis  Axis
	Index int
}

func (id LineID) String() string {
	if id.Axis == AxisRow {
		return fmt.Sprintf("Row %d", id.Index+1)
	}
	return fmt.Sprintf("Col %d", id.Index+1)
}

// LineStatus is the solver's per-line bookkeeping. Placements caches the
// surviving-placement count from the last full enumeration of the line; it is
// stale while Dirty is set.
type LineStatus struct {
	Solved     bool
	Dirty      bool
	Placements uint32
}

// Board owns the cell grid and the per-line statuses. Lines are read out and
// written back through CopyLine/WriteLine; both axes share the one backing
// array, so a row write is immediately visible to every column read.
type Board struct {
	RowCount int
	ColCount int
	cells    []Cell // row-major
	RowStat  []LineStatus
	ColStat  []LineStatus

	Step        int
	TotalMarked int // cells no longer Unknown
}

// NewBoard returns an all-Unknown board with every line dirty and unsolved.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		RowCount: rows,
		ColCount: cols,
		cells:    make([]Cell, rows*cols),
		RowStat:  make([]LineStatus, rows),
		ColStat:  make([]LineStatus, cols),
		Step:     1,
	}
	for i := range b.RowStat {
		b.RowStat[i].Dirty = true
	}
	for i := range b.ColStat {
		b.ColStat[i].Dirty = true
	}
	return b
}

func (b *Board) Get(r, c int) Cell {
	return b.cells[r*b.ColCount+c]
}

func (b *Board) Set(r, c int, v Cell) {
	old := b.cells[r*b.ColCount+c]
	if old == v {
		return
	}
	if old == Unknown {
		b.TotalMarked++
	} else if v == Unknown {
		b.TotalMarked--
	}
	b.cells[r*b.ColCount+c] = v
}

func (b *Board) Size() int {
	return b.RowCount * b.ColCount
}

func (b *Board) LineLen(id LineID) int {
	if id.Axis == AxisRow {
		return b.ColCount
	}
	return b.RowCount
}

func (b *Board) Status(id LineID) *LineStatus {
	if id.Axis == AxisRow {
		return &b.RowStat[id.Index]
	}
	return &b.ColStat[id.Index]
}

// CopyLine copies line id into dst, which must hold LineLen(id) cells.
func (b *Board) CopyLine(id LineID, dst []Cell) {
	if id.Axis == AxisRow {
		copy(dst, b.cells[id.Index*b.ColCount:(id.Index+1)*b.ColCount])
		return
	}
	for r := 0; r < b.RowCount; r++ {
		dst[r] = b.cells[r*b.ColCount+id.Index]
	}
}

// WriteLine writes src back into line id. The caller mutates a copied line
// and writes it back before the opposite axis is consulted.
func (b *Board) WriteLine(id LineID, src []Cell) {
	if id.Axis == AxisRow {
		for c, v := range src {
			b.Set(id.Index, c, v)
		}
		return
	}
	for r, v := range src {
		b.Set(r, id.Index, v)
	}
}

// Clone deep-copies the board: cells, line statuses, and counters. Used for
// the backtracking checkpoint and for guess undo.
func (b *Board) Clone() *Board {
	n := &Board{
		RowCount:    b.RowCount,
		ColCount:    b.ColCount,
		cells:       make([]Cell, len(b.cells)),
		RowStat:     make([]LineStatus, len(b.RowStat)),
		ColStat:     make([]LineStatus, len(b.ColStat)),
		Step:        b.Step,
		TotalMarked: b.TotalMarked,
	}
	copy(n.cells, b.cells)
	copy(n.RowStat, b.RowStat)
	copy(n.ColStat, b.ColStat)
	return n
}
