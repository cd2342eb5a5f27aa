package picross

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vyevs/ansi"
)

// CellChars are the single characters used for each cell state.
type CellChars struct {
	Unknown byte
	Filled  byte
	Blank   byte
}

func DefaultChars() CellChars {
	return CellChars{Unknown: '.', Filled: '*', Blank: '-'}
}

// Layout holds the precomputed row and column headers for a puzzle. Row
// headers are right-justified hint lists with a | gutter; column headers are
// the hints rotated vertically, | separated, over a dashed rule:
//
//	[ 1, 2, 3, 2 ]  "1| | "
//	[ 4,  4 ]   ->  " | | "
//	[ 10, 2 ]       "2| | "
//	                " | |1"
//	                "3|4|0"
//	                " | | "
//	                "2|4|2"
//	                "--------"
type Layout struct {
	p          *Puzzle
	Chars      CellChars
	RowHeaders []string
	ColHeaders []string
}

func NewLayout(p *Puzzle, chars CellChars) *Layout {
	l := &Layout{p: p, Chars: chars}

	width := 1
	for _, hints := range p.RowHints {
		w := 1
		for _, n := range hints {
			w += 2
			if n > 9 {
				w++
			}
		}
		if w > width {
			width = w
		}
	}
	for _, hints := range p.RowHints {
		var sb strings.Builder
		for _, n := range hints {
			sb.WriteString(strconv.Itoa(n))
			sb.WriteByte(' ')
		}
		hdr := sb.String()
		if pad := width - len(hdr); pad > 0 {
			hdr = strings.Repeat(" ", pad) + hdr
		}
		l.RowHeaders = append(l.RowHeaders, hdr+"|")
	}

	height := 1
	for _, hints := range p.ColHints {
		h := -1
		for _, n := range hints {
			h += 2
			if n > 9 {
				h++
			}
		}
		if h > height {
			height = h
		}
	}
	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(" ", p.ColCount))
	}
	for x, hints := range p.ColHints {
		if len(hints) == 0 {
			continue
		}
		// leave room for the in-between spaces and the tens digits
		y := height - (len(hints)*2 - 1)
		for _, n := range hints {
			if n >= 10 {
				y--
			}
		}
		for _, n := range hints {
			if n >= 10 {
				grid[y][x] = byte('0' + n/10)
				n %= 10
				y++
			}
			grid[y][x] = byte('0' + n)
			y += 2
		}
	}
	left := strings.Repeat(" ", width+1)
	for y := 0; y < height; y++ {
		cols := make([]string, p.ColCount)
		for x := range cols {
			cols[x] = string(grid[y][x])
		}
		l.ColHeaders = append(l.ColHeaders, left+strings.Join(cols, "|"))
	}
	l.ColHeaders = append(l.ColHeaders, left+strings.Repeat("-", len(l.ColHeaders[0])-len(left)))
	return l
}

// Render returns the printable board, one string per output line: column
// headers with the step number overlaid top left, then one line per row.
// With console set, the step and filled cells are colored.
func (l *Layout) Render(b *Board, console bool) []string {
	lines := make([]string, len(l.ColHeaders))
	copy(lines, l.ColHeaders)

	step := fmt.Sprintf("%4d", b.Step)
	if len(lines[0]) < len(step) {
		lines[0] += strings.Repeat(" ", len(step)-len(lines[0]))
	}
	rest := lines[0][len(step):]
	if console {
		lines[0] = ansi.FGColorName("cyan") + step + ansi.Clear + rest
	} else {
		lines[0] = step + rest
	}

	for r := 0; r < b.RowCount; r++ {
		var sb strings.Builder
		sb.WriteString(l.RowHeaders[r])
		for c := 0; c < b.ColCount; c++ {
			switch b.Get(r, c) {
			case Filled:
				if console {
					sb.WriteString(ansi.FGColorName("green"))
					sb.WriteByte(l.Chars.Filled)
					sb.WriteString(ansi.Clear)
				} else {
					sb.WriteByte(l.Chars.Filled)
				}
			case Blank:
				sb.WriteByte(l.Chars.Blank)
			default:
				sb.WriteByte(l.Chars.Unknown)
			}
			sb.WriteByte(' ')
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines, "")
	return lines
}
