package picross

import (
	"slices"
	"testing"
)

func TestLayoutColumnHeaders(t *testing.T) {
	p := &Puzzle{
		RowCount: 3,
		ColCount: 3,
		RowHints: [][]int{{}, {}, {}},
		ColHints: [][]int{{1, 2, 3, 2}, {4, 4}, {10, 2}},
	}
	l := NewLayout(p, DefaultChars())
	want := []string{
		"  1| | ",
		"   | | ",
		"  2| | ",
		"   | |1",
		"  3|4|0",
		"   | | ",
		"  2|4|2",
		"  -----",
	}
	if !slices.Equal(l.ColHeaders, want) {
		t.Errorf("ColHeaders:\n%v\nwant:\n%v", l.ColHeaders, want)
	}
}

func TestLayoutRowHeaders(t *testing.T) {
	p := &Puzzle{
		RowCount: 3,
		ColCount: 1,
		RowHints: [][]int{{1, 3, 2}, {10}, {}},
		ColHints: [][]int{{1}},
	}
	l := NewLayout(p, DefaultChars())
	// widest row needs "1 3 2 " plus the leading pad column
	want := []string{" 1 3 2 |", "    10 |", "       |"}
	if !slices.Equal(l.RowHeaders, want) {
		t.Errorf("RowHeaders:\n%v\nwant:\n%v", l.RowHeaders, want)
	}
}

func TestRenderPlain(t *testing.T) {
	p := &Puzzle{
		RowCount: 2,
		ColCount: 2,
		RowHints: [][]int{{2}, {}},
		ColHints: [][]int{{1}, {1}},
	}
	l := NewLayout(p, DefaultChars())
	b := NewBoard(2, 2)
	b.Set(0, 0, Filled)
	b.Set(0, 1, Filled)
	b.Set(1, 0, Blank)
	b.Step = 3

	got := l.Render(b, false)
	// the step number overlays the header's left padding
	want := []string{
		"   31|1",
		"    ---",
		" 2 |* * ",
		"   |- . ",
		"",
	}
	if !slices.Equal(got, want) {
		t.Errorf("render:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderCustomChars(t *testing.T) {
	p := &Puzzle{
		RowCount: 1,
		ColCount: 3,
		RowHints: [][]int{{1}},
		ColHints: [][]int{{1}, {}, {}},
	}
	l := NewLayout(p, CellChars{Unknown: '?', Filled: '#', Blank: ' '})
	b := NewBoard(1, 3)
	b.Set(0, 0, Filled)
	b.Set(0, 1, Blank)

	got := l.Render(b, false)
	body := got[len(got)-2]
	if body != " 1 |#   ? " {
		t.Errorf("body = %q", body)
	}
}
