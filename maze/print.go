// Package maze: diagnostic text rendering. The format mirrors the
// classic contest printout: an o---o wall lattice, row 15 at the top,
// with optional per-cell costs or flood directions.
package maze

import (
	"fmt"
	"io"
	"strings"
)

// Style selects what Render draws inside each cell.
type Style uint8

const (
	// StylePlain draws walls only.
	StylePlain Style = iota
	// StyleCosts draws the flooded cost of each cell, three digits wide.
	StyleCosts
	// StyleDirections draws an arrow toward the cheapest neighbour of
	// each cell (preferred North) and '*' at the goal.
	StyleDirections
)

// arrowFor maps a heading to its rendering in StyleDirections.
func arrowFor(h Heading) byte {
	switch h {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	default:
		return '*'
	}
}

// Render writes a text picture of the maze to w. Walls are drawn as seen
// under mask k, so MaskOpen shows the optimistic search view and
// MaskClosed only confirmed walls and exits. StyleCosts and
// StyleDirections flood to the stored goal first. The format is a
// diagnostic aid, not a stable interface.
func (m *Maze) Render(w io.Writer, style Style, k Mask) error {
	var costs *CostMap
	if style == StyleCosts || style == StyleDirections {
		costs = m.Flood(m.goal, k)
	}

	var b strings.Builder
	for y := Size - 1; y >= 0; y-- {
		m.renderLatitude(&b, y, North, k)
		m.renderCells(&b, y, style, k, costs)
	}
	m.renderLatitude(&b, 0, South, k)

	_, err := io.WriteString(w, b.String())

	return err
}

// renderLatitude draws one horizontal wall line: the h-side walls of row y.
func (m *Maze) renderLatitude(b *strings.Builder, y int, h Heading, k Mask) {
	for x := 0; x < Size; x++ {
		b.WriteByte('o')
		if m.IsExit(Location{X: x, Y: y}, h, k) {
			b.WriteString("   ")
		} else {
			b.WriteString("---")
		}
	}
	b.WriteString("o\n")
}

// renderCells draws one cell line: west walls and the per-style content.
func (m *Maze) renderCells(b *strings.Builder, y int, style Style, k Mask, costs *CostMap) {
	for x := 0; x < Size; x++ {
		l := Location{X: x, Y: y}
		if m.IsExit(l, West, k) {
			b.WriteByte(' ')
		} else {
			b.WriteByte('|')
		}
		switch style {
		case StyleCosts:
			fmt.Fprintf(b, "%3d", costs.At(l))
		case StyleDirections:
			h := m.HeadingToSmallest(costs, l, North, k)
			if l == m.goal {
				h = Blocked
			}
			b.WriteByte(' ')
			b.WriteByte(arrowFor(h))
			b.WriteByte(' ')
		default:
			b.WriteString("   ")
		}
	}
	b.WriteString("|\n")
}

// String renders the plain wall picture under MaskClosed: exactly what
// has been confirmed so far.
func (m *Maze) String() string {
	var b strings.Builder
	_ = m.Render(&b, StylePlain, MaskClosed)

	return b.String()
}
