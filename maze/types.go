// Package maze defines the core value types shared by the wall store and
// the flood planner: locations, headings, relative turns, wall states,
// planning masks and cost maps.
package maze

// Size is the number of cells along each side of the square maze.
const Size = 16

// headingCount is the number of compass headings; turn arithmetic is
// modulo this value.
const headingCount = 4

var (
	// Start is the cell every run begins in, the south-west corner.
	Start = Location{X: 0, Y: 0}
	// DefaultGoal is the classic contest goal cell.
	DefaultGoal = Location{X: 7, Y: 7}
)

// Location addresses one cell: X is the column (west to east), Y the row
// (south to north). The zero Location is the start cell.
type Location struct {
	X, Y int
}

// InBounds reports whether l lies on the grid.
func (l Location) InBounds() bool {
	return l.X >= 0 && l.X < Size && l.Y >= 0 && l.Y < Size
}

// Neighbour returns the adjacent cell in direction h and whether that
// cell lies on the grid. Off-grid neighbours are reported, never wrapped.
func (l Location) Neighbour(h Heading) (Location, bool) {
	var n Location
	switch h {
	case North:
		n = Location{X: l.X, Y: l.Y + 1}
	case East:
		n = Location{X: l.X + 1, Y: l.Y}
	case South:
		n = Location{X: l.X, Y: l.Y - 1}
	case West:
		n = Location{X: l.X - 1, Y: l.Y}
	default:
		return Location{}, false
	}

	return n, n.InBounds()
}

// Heading is one of the four compass directions the mouse can face.
// Blocked is a result sentinel for "no viable exit"; it is returned by
// HeadingToSmallest and must never be fed back into wall or neighbour
// queries.
type Heading uint8

const (
	// North points toward increasing Y.
	North Heading = iota
	// East points toward increasing X.
	East
	// South points toward decreasing Y.
	South
	// West points toward decreasing X.
	West
	// Blocked reports that no neighbour improves on the current cell.
	Blocked
)

// Valid reports whether h is one of the four compass headings.
func (h Heading) Valid() bool { return h < headingCount }

// Right returns the heading one quarter turn clockwise.
func (h Heading) Right() Heading { return (h + 1) % headingCount }

// Left returns the heading one quarter turn anticlockwise.
func (h Heading) Left() Heading { return (h + 3) % headingCount }

// Reverse returns the opposite heading.
func (h Heading) Reverse() Heading { return (h + 2) % headingCount }

// Turned returns the heading after applying the relative turn t.
func (h Heading) Turned(t Turn) Heading { return (h + Heading(t)) % headingCount }

// String renders the heading as a single compass letter, '*' for Blocked.
func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	case Blocked:
		return "*"
	default:
		return "?"
	}
}

// Turn is a heading change relative to the current heading.
type Turn uint8

const (
	// Ahead keeps the current heading.
	Ahead Turn = iota
	// Right turns one quarter clockwise.
	Right
	// Back reverses the heading.
	Back
	// Left turns one quarter anticlockwise.
	Left
)

// TurnBetween returns the relative turn that takes from onto to.
// Unsigned wraparound is exact here because 256 is a multiple of four.
func TurnBetween(from, to Heading) Turn {
	return Turn((to - from) % headingCount)
}

// String renders the turn as its single-letter action code.
func (t Turn) String() string {
	switch t {
	case Ahead:
		return "F"
	case Right:
		return "R"
	case Back:
		return "B"
	case Left:
		return "L"
	default:
		return "?"
	}
}

// WallState is the knowledge held about a single wall slot.
type WallState uint8

const (
	// Exit is a confirmed absent wall.
	Exit WallState = iota
	// Wall is a confirmed present wall.
	Wall
	// Unknown is an unobserved wall; its passability depends on the Mask.
	Unknown
	// Virtual is an artificial barrier, impassable under every mask.
	Virtual
)

// String renders the wall state as a lowercase word.
func (s WallState) String() string {
	switch s {
	case Exit:
		return "exit"
	case Wall:
		return "wall"
	case Unknown:
		return "unknown"
	case Virtual:
		return "virtual"
	default:
		return "invalid"
	}
}

// Mask selects how Unknown walls are treated during planning.
// It is a parameter of every query, not stored maze state, so a search
// and a committed run can plan over the same map concurrently.
type Mask uint8

const (
	// MaskOpen treats Unknown walls as passable (optimistic search).
	MaskOpen Mask = iota
	// MaskClosed treats Unknown walls as blocking (committed fast run).
	MaskClosed
)

// Passes reports whether a wall in state s can be crossed under mask k.
// Exit always passes, Wall and Virtual never pass, Unknown passes only
// under MaskOpen.
func (k Mask) Passes(s WallState) bool {
	switch s {
	case Exit:
		return true
	case Wall, Virtual:
		return false
	case Unknown:
		return k == MaskOpen
	default:
		return false
	}
}

// Unreachable is the CostMap sentinel for cells the flood never reached.
// Real costs occupy 0..Unreachable-1.
const Unreachable uint8 = 255

// CostMap holds the flooded step distance from every cell to the flood
// target. It is a value produced by Flood and never mutated afterwards.
type CostMap struct {
	cells [Size][Size]uint8
}

// At returns the flooded cost of cell l.
func (c *CostMap) At(l Location) uint8 {
	return c.cells[l.X][l.Y]
}

// set records the cost of cell l.
func (c *CostMap) set(l Location, v uint8) {
	c.cells[l.X][l.Y] = v
}

// newCostMap returns a CostMap with every cell marked Unreachable.
func newCostMap() *CostMap {
	c := &CostMap{}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			c.cells[x][y] = Unreachable
		}
	}

	return c
}
