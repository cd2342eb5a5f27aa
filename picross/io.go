package picross

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type parseState int

const (
	expectSize parseState = iota
	expectRowHeader
	expectRows
	expectColHeader
	expectCols
	expectDone
)

// PuzzleFromString parses the puzzle text format: an "RxC" size line, a
// "Rows:" header followed by one hint line per row, a "Cols:" (or
// "Columns:") header followed by one hint line per column, and a final
// "Done". Hints are positive integers split on spaces or commas; a bare "0"
// or an empty line is an empty hint list. Lines starting with #, ; or //
// are comments; blank lines are ignored everywhere except inside the Rows
// and Cols sections, where they are valid entries.
func PuzzleFromString(input string) (*Puzzle, error) {
	p := &Puzzle{}
	state := expectSize
	idx := 0
	for lineNo, raw := range strings.Split(input, "\n") {
		no := lineNo + 1
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}

		switch state {
		case expectSize:
			if line == "" {
				continue
			}
			rc := strings.Split(line, "x")
			if len(rc) != 2 {
				return nil, fmt.Errorf("line %d: %q: expected '[rows]x[cols]' like '10x10'", no, line)
			}
			rown, err1 := strconv.Atoi(strings.TrimSpace(rc[0]))
			coln, err2 := strconv.Atoi(strings.TrimSpace(rc[1]))
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: %q: expected '[rows]x[cols]' like '10x10'", no, line)
			}
			if rown < 1 || coln < 1 {
				return nil, fmt.Errorf("line %d: %q: [rows]x[cols] must be positive non-zero", no, line)
			}
			p.RowCount, p.ColCount = rown, coln
			p.RowHints = make([][]int, rown)
			p.ColHints = make([][]int, coln)
			state = expectRowHeader

		case expectRowHeader:
			if line == "" {
				continue
			}
			if !strings.EqualFold(line, "rows:") {
				return nil, fmt.Errorf("line %d: %q: expected 'Rows:' header", no, line)
			}
			state = expectRows
			idx = 0

		case expectRows:
			hints, err := parseHintLine(line, no, "Rows")
			if err != nil {
				return nil, err
			}
			p.RowHints[idx] = hints
			idx++
			if idx >= p.RowCount {
				state = expectColHeader
			}

		case expectColHeader:
			if line == "" {
				continue
			}
			if !strings.EqualFold(line, "cols:") && !strings.EqualFold(line, "columns:") {
				return nil, fmt.Errorf("line %d: %q: expected 'Cols:' or 'Columns:' header", no, line)
			}
			state = expectCols
			idx = 0

		case expectCols:
			hints, err := parseHintLine(line, no, "Cols")
			if err != nil {
				return nil, err
			}
			p.ColHints[idx] = hints
			idx++
			if idx >= p.ColCount {
				state = expectDone
			}

		case expectDone:
			if line == "" {
				continue
			}
			if !strings.EqualFold(line, "done") {
				return nil, fmt.Errorf("line %d: %q: expected 'Done'", no, line)
			}
		}
	}
	if state != expectDone {
		return nil, fmt.Errorf("puzzle file ended before all hints were read")
	}
	return p, nil
}

func parseHintLine(line string, no int, section string) ([]int, error) {
	if line == "" || line == "0" {
		return nil, nil
	}
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	hints := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("line %d: %q: each %s entry must be a positive non-zero integer", no, line, section)
		}
		hints = append(hints, n)
	}
	return hints, nil
}

func PuzzleFromFile(f string) (*Puzzle, error) {
	data, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return PuzzleFromString(string(data))
}
