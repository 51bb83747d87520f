// Package maze: the wall store. A Maze keeps four WallState slots per
// cell and guarantees the mirrored-wall invariant: the wall between two
// cells is stored in both, and every mutation updates both slots (or the
// single slot, on the outer boundary).
package maze

// cellWalls holds the four wall slots of one cell, indexed by Heading.
type cellWalls [headingCount]WallState

// Maze is the mutable map of the arena built up during a search.
// It is not safe for concurrent mutation; the navigation controller is
// its single writer (planning queries take the map as read-only).
type Maze struct {
	walls [Size][Size]cellWalls
	goal  Location
}

// New returns a freshly reset Maze with the goal set to DefaultGoal.
func New() *Maze {
	m := &Maze{goal: DefaultGoal}
	m.Reset()

	return m
}

// Reset returns the map to its pre-search state: every wall Unknown,
// then the outer boundary ring set to Wall, and the start cell closed on
// its east side and confirmed open to the north, which forces the first
// move of every search to leave northward. Reset is the entry point for
// "begin a fresh search"; accumulated observations do not survive it.
func (m *Maze) Reset() {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for h := North; h <= West; h++ {
				m.walls[x][y][h] = Unknown
			}
		}
	}
	for i := 0; i < Size; i++ {
		m.SetWall(Location{X: i, Y: Size - 1}, North, Wall)
		m.SetWall(Location{X: Size - 1, Y: i}, East, Wall)
		m.SetWall(Location{X: i, Y: 0}, South, Wall)
		m.SetWall(Location{X: 0, Y: i}, West, Wall)
	}
	m.SetWall(Start, East, Wall)
	m.SetWall(Start, North, Exit)
}

// SetWall unconditionally records state s for the wall of cell l on side
// h, mirroring the write into the neighbouring cell when one exists.
// Intended for reset and for laying out reference mazes; during a live
// search use ObserveWall.
func (m *Maze) SetWall(l Location, h Heading, s WallState) {
	m.walls[l.X][l.Y][h] = s
	if n, ok := l.Neighbour(h); ok {
		m.walls[n.X][n.Y][h.Reverse()] = s
	}
}

// ObserveWall records a sensed wall exactly once: the write (mirrored,
// like SetWall) happens only while the slot is still Unknown. Later
// observations of the same wall are ignored, so one noisy reading can
// never flip a mapped wall mid-search.
func (m *Maze) ObserveWall(l Location, h Heading, s WallState) {
	if m.walls[l.X][l.Y][h] != Unknown {
		return
	}
	m.SetWall(l, h, s)
}

// WallState returns the stored state of the wall of cell l on side h.
func (m *Maze) WallState(l Location, h Heading) WallState {
	return m.walls[l.X][l.Y][h]
}

// IsExit reports whether the wall of cell l on side h can be crossed
// under mask k.
func (m *Maze) IsExit(l Location, h Heading, k Mask) bool {
	return k.Passes(m.walls[l.X][l.Y][h])
}

// HasUnknownWalls reports whether any wall of cell l is still Unknown.
func (m *Maze) HasUnknownWalls(l Location) bool {
	for h := North; h <= West; h++ {
		if m.walls[l.X][l.Y][h] == Unknown {
			return true
		}
	}

	return false
}

// Visited reports whether cell l has all four walls observed; entering a
// cell observes its forward three and the wall behind was observed on
// the way in, so visited cells are exactly the cells the mouse has been
// through (plus any fully fenced-in by observation from outside).
func (m *Maze) Visited(l Location) bool {
	return !m.HasUnknownWalls(l)
}

// Goal returns the current goal cell.
func (m *Maze) Goal() Location { return m.goal }

// SetGoal changes the goal cell used by SearchMaze-style callers and by
// the renderer. The goal is carried by the Maze so that a map and its
// objective travel together.
func (m *Maze) SetGoal(l Location) { m.goal = l }
