package picross

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

// parseLine builds a line from a string: '.' unknown, '*' filled, '-' blank.
func parseLine(s string) []Cell {
	line := make([]Cell, len(s))
	for i, c := range s {
		switch c {
		case '*':
			line[i] = Filled
		case '-':
			line[i] = Blank
		}
	}
	return line
}

func lineString(line []Cell) string {
	out := make([]byte, len(line))
	for i, c := range line {
		switch c {
		case Filled:
			out[i] = '*'
		case Blank:
			out[i] = '-'
		default:
			out[i] = '.'
		}
	}
	return string(out)
}

func lineSolver() *Solver {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Solver{log: log}
}

var testLine = LineID{AxisRow, 0}

func TestSolveLineDeductions(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		hints      []int
		want       string
		wantDone   bool
		placements uint32
	}{
		{"overlap", ".....", []int{3}, "..*..", false, 3},
		{"exact fit", ".....", []int{2, 2}, "**-**", true, 1},
		{"exact fit over blank gap", "..-..", []int{2, 2}, "**-**", true, 1},
		{"full width", "....", []int{4}, "****", true, 1},
		{"empty hints", ".....", []int{}, "-----", true, 0},
		{"anchored block", "*....", []int{3}, "***--", true, 1},
		{"completed runs blank the rest", "**...", []int{2}, "**---", true, 1},
		{"margins ignored", "--...", []int{3}, "--***", true, 1},
		{"nothing to deduce", ".....", []int{1}, ".....", false, 5},
	}
	s := lineSolver()
	for _, tc := range tests {
		line := parseLine(tc.line)
		res, err := s.SolveLine(line, tc.hints, testLine, NoForce)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got := lineString(line); got != tc.want {
			t.Errorf("%s: line = %q, want %q", tc.name, got, tc.want)
		}
		if res.Done != tc.wantDone {
			t.Errorf("%s: Done = %v, want %v", tc.name, res.Done, tc.wantDone)
		}
		if tc.placements != 0 && res.Placements != tc.placements {
			t.Errorf("%s: Placements = %d, want %d", tc.name, res.Placements, tc.placements)
		}
	}
}

func TestSolveLineContradictions(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		hints []int
	}{
		{"hints too wide", "...", []int{2, 2}},
		{"filled cell with no hints", "..*..", []int{}},
		{"blank under full-width hint", "..-.", []int{4}},
		{"marks shrink the space", "-*-", []int{2}},
		{"boxed-in filled cell", "-*-..", []int{2}},
		{"too many runs", "*.*.*", []int{1, 1}},
	}
	s := lineSolver()
	for _, tc := range tests {
		line := parseLine(tc.line)
		_, err := s.SolveLine(line, tc.hints, testLine, NoForce)
		var c *Contradiction
		if !errors.As(err, &c) {
			t.Errorf("%s: got %v, want a Contradiction", tc.name, err)
		}
	}
}

func TestSolveLinePartialRunsOutnumberHints(t *testing.T) {
	// three separate filled runs against two hints is fine mid-solve: the
	// runs at 4 and 6 can still merge inside the second block
	s := lineSolver()
	line := parseLine("....*.*....*....")
	res, err := s.SolveLine(line, []int{4, 6}, testLine, NoForce)
	if err != nil {
		t.Fatal(err)
	}
	if got := lineString(line); got != "-...*.*...**...." {
		t.Errorf("line = %q, want %q", got, "-...*.*...**....")
	}
	if res.Placements != 6 {
		t.Errorf("Placements = %d, want 6", res.Placements)
	}
	if res.Done {
		t.Error("line still has unknown cells")
	}
}

func TestSolveLineIdempotent(t *testing.T) {
	s := lineSolver()
	line := parseLine(".....")
	if _, err := s.SolveLine(line, []int{3}, testLine, NoForce); err != nil {
		t.Fatal(err)
	}
	res, err := s.SolveLine(line, []int{3}, testLine, NoForce)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changed) != 0 {
		t.Errorf("second pass changed cells %v on %q", res.Changed, lineString(line))
	}
}

func TestSolveLineSkipsHopelessEnumeration(t *testing.T) {
	// untouched line, slack 6 >= largest hint 2: no overlap is possible, so
	// the line must come back unchanged but still carry its placement count
	s := lineSolver()
	line := parseLine("..........")
	res, err := s.SolveLine(line, []int{1, 2}, testLine, NoForce)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changed) != 0 {
		t.Errorf("changed cells %v, want none", res.Changed)
	}
	if res.Placements != 28 {
		t.Errorf("Placements = %d, want 28", res.Placements)
	}
}

func TestSolveLineForced(t *testing.T) {
	s := lineSolver()
	line := parseLine(".....")
	res, err := s.SolveLine(line, []int{1}, testLine, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := lineString(line); got != "--*--" {
		t.Errorf("line = %q, want %q", got, "--*--")
	}
	if !res.Done {
		t.Error("forced placement should finish the line")
	}
}

func TestSolveLineForcedPastEnd(t *testing.T) {
	s := lineSolver()
	line := parseLine(".....")
	_, err := s.SolveLine(line, []int{1}, testLine, 99)
	var c *Contradiction
	if !errors.As(err, &c) {
		t.Errorf("got %v, want a Contradiction", err)
	}
}

func TestFreePlacements(t *testing.T) {
	tests := []struct {
		slack int
		k     int
		want  uint32
	}{
		{0, 3, 1},
		{6, 2, 28},
		{4, 1, 5},
		{1000, 20, 1<<32 - 1}, // clamped
	}
	for _, tc := range tests {
		if got := freePlacements(tc.slack, tc.k); got != tc.want {
			t.Errorf("freePlacements(%d, %d) = %d, want %d", tc.slack, tc.k, got, tc.want)
		}
	}
}

func TestEnumerationMatchesExactFit(t *testing.T) {
	// the exact-fit shortcut and full enumeration must agree when the hints
	// fill the available space
	s := lineSolver()
	shortcut := parseLine(".....")
	if _, err := s.SolveLine(shortcut, []int{2, 2}, testLine, NoForce); err != nil {
		t.Fatal(err)
	}
	long := parseLine(".....")
	res, err := s.enumerateLine(long, []int{2, 2}, testLine, 0, 4, 5, NoForce)
	if err != nil {
		t.Fatal(err)
	}
	if lineString(long) != lineString(shortcut) {
		t.Errorf("enumeration gave %q, shortcut gave %q", lineString(long), lineString(shortcut))
	}
	if res.Placements != 1 {
		t.Errorf("Placements = %d, want 1", res.Placements)
	}
}
