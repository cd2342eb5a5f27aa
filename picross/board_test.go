package picross

import "testing"

func TestBoardLineAliasing(t *testing.T) {
	b := NewBoard(3, 4)
	row := []Cell{Filled, Blank, Unknown, Filled}
	b.WriteLine(LineID{AxisRow, 1}, row)

	col := make([]Cell, 3)
	b.CopyLine(LineID{AxisCol, 0}, col)
	if col[1] != Filled {
		t.Errorf("col 0 did not see the row write: %v", col)
	}
	b.CopyLine(LineID{AxisCol, 1}, col)
	if col[1] != Blank {
		t.Errorf("col 1 did not see the row write: %v", col)
	}
	b.CopyLine(LineID{AxisCol, 2}, col)
	if col[1] != Unknown {
		t.Errorf("col 2 should still be unknown: %v", col)
	}
}

func TestBoardTotalMarked(t *testing.T) {
	b := NewBoard(2, 2)
	b.Set(0, 0, Filled)
	b.Set(0, 1, Blank)
	if b.TotalMarked != 2 {
		t.Errorf("TotalMarked = %d, want 2", b.TotalMarked)
	}
	b.Set(0, 0, Blank) // flip, not a new mark
	if b.TotalMarked != 2 {
		t.Errorf("TotalMarked after flip = %d, want 2", b.TotalMarked)
	}
	b.Set(0, 0, Unknown)
	if b.TotalMarked != 1 {
		t.Errorf("TotalMarked after unmark = %d, want 1", b.TotalMarked)
	}
}

func TestBoardClone(t *testing.T) {
	b := NewBoard(2, 2)
	b.Set(0, 0, Filled)
	b.RowStat[0].Solved = true

	c := b.Clone()
	c.Set(1, 1, Blank)
	c.RowStat[0].Solved = false

	if b.Get(1, 1) != Unknown {
		t.Error("clone write leaked into the original")
	}
	if !b.RowStat[0].Solved {
		t.Error("clone status write leaked into the original")
	}
	if c.Get(0, 0) != Filled || c.TotalMarked != 2 {
		t.Error("clone did not carry the original's state")
	}
}

func TestLineIDString(t *testing.T) {
	if got := (LineID{AxisRow, 0}).String(); got != "Row 1" {
		t.Errorf("got %q, want %q", got, "Row 1")
	}
	if got := (LineID{AxisCol, 9}).String(); got != "Col 10" {
		t.Errorf("got %q, want %q", got, "Col 10")
	}
}
