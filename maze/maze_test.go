package maze_test

import (
	"testing"

	"github.com/Nikitarc/mazerunner-core/maze"
)

//----------------------------------------------------------------------------//
// Reset and fresh-map state
//----------------------------------------------------------------------------//

// TestReset_FreshState verifies the pre-search map: interior walls
// Unknown, boundary ring Wall, and the start cell closed east / open
// north so the first move must leave northward.
func TestReset_FreshState(t *testing.T) {
	m := maze.New()

	// Interior cell far from start and boundary: everything Unknown.
	mid := maze.Location{X: 5, Y: 5}
	for h := maze.North; h <= maze.West; h++ {
		if got := m.WallState(mid, h); got != maze.Unknown {
			t.Errorf("WallState(%v,%v) = %v; want unknown", mid, h, got)
		}
	}

	// Boundary ring present on all four sides.
	for i := 0; i < maze.Size; i++ {
		checks := []struct {
			l maze.Location
			h maze.Heading
		}{
			{maze.Location{X: i, Y: maze.Size - 1}, maze.North},
			{maze.Location{X: maze.Size - 1, Y: i}, maze.East},
			{maze.Location{X: i, Y: 0}, maze.South},
			{maze.Location{X: 0, Y: i}, maze.West},
		}
		for _, c := range checks {
			if got := m.WallState(c.l, c.h); got != maze.Wall {
				t.Errorf("boundary WallState(%v,%v) = %v; want wall", c.l, c.h, got)
			}
		}
	}

	// Start cell: east closed, north confirmed open, both mirrored.
	if got := m.WallState(maze.Start, maze.East); got != maze.Wall {
		t.Errorf("start east = %v; want wall", got)
	}
	if got := m.WallState(maze.Location{X: 1, Y: 0}, maze.West); got != maze.Wall {
		t.Errorf("start east mirror = %v; want wall", got)
	}
	if got := m.WallState(maze.Start, maze.North); got != maze.Exit {
		t.Errorf("start north = %v; want exit", got)
	}
	if got := m.WallState(maze.Location{X: 0, Y: 1}, maze.South); got != maze.Exit {
		t.Errorf("start north mirror = %v; want exit", got)
	}
}

// TestReset_MirrorInvariant sweeps every shared wall and checks both
// sides agree after Reset.
func TestReset_MirrorInvariant(t *testing.T) {
	m := maze.New()
	assertMirrored(t, m)
}

// assertMirrored fails the test if any interior wall disagrees with its
// mirror slot in the neighbouring cell.
func assertMirrored(t *testing.T, m *maze.Maze) {
	t.Helper()
	for x := 0; x < maze.Size; x++ {
		for y := 0; y < maze.Size; y++ {
			l := maze.Location{X: x, Y: y}
			for h := maze.North; h <= maze.West; h++ {
				n, ok := l.Neighbour(h)
				if !ok {
					continue
				}
				a, b := m.WallState(l, h), m.WallState(n, h.Reverse())
				if a != b {
					t.Errorf("mirror broken at %v/%v: %v vs %v", l, h, a, b)
				}
			}
		}
	}
}

//----------------------------------------------------------------------------//
// Mutators
//----------------------------------------------------------------------------//

// TestSetWall_Mirrors verifies unconditional writes land on both sides
// of a shared wall and on exactly one slot at the outer boundary.
func TestSetWall_Mirrors(t *testing.T) {
	m := maze.New()

	m.SetWall(maze.Location{X: 3, Y: 3}, maze.North, maze.Wall)
	if got := m.WallState(maze.Location{X: 3, Y: 4}, maze.South); got != maze.Wall {
		t.Errorf("mirror of set wall = %v; want wall", got)
	}

	m.SetWall(maze.Location{X: 3, Y: 3}, maze.East, maze.Virtual)
	if got := m.WallState(maze.Location{X: 4, Y: 3}, maze.West); got != maze.Virtual {
		t.Errorf("mirror of virtual wall = %v; want virtual", got)
	}

	// Boundary write touches a single slot and must not wrap the grid.
	edge := maze.Location{X: 0, Y: 5}
	m.SetWall(edge, maze.West, maze.Exit)
	if got := m.WallState(edge, maze.West); got != maze.Exit {
		t.Errorf("boundary write = %v; want exit", got)
	}
	if got := m.WallState(maze.Location{X: maze.Size - 1, Y: 5}, maze.East); got != maze.Wall {
		t.Errorf("opposite edge changed to %v; boundary writes must not wrap", got)
	}

	assertMirrored(t, m)
}

// TestObserveWall_WriteOnce verifies the first observation sticks and
// later conflicting sightings are ignored, from either side of the wall.
func TestObserveWall_WriteOnce(t *testing.T) {
	cases := []struct {
		name          string
		first, second maze.WallState
		want          maze.WallState
	}{
		{"ExitThenWall", maze.Exit, maze.Wall, maze.Exit},
		{"WallThenExit", maze.Wall, maze.Exit, maze.Wall},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := maze.New()
			l := maze.Location{X: 4, Y: 4}

			m.ObserveWall(l, maze.North, tc.first)
			m.ObserveWall(l, maze.North, tc.second)
			if got := m.WallState(l, maze.North); got != tc.want {
				t.Errorf("WallState = %v; want %v", got, tc.want)
			}

			// Observing through the mirror slot is the same wall.
			m.ObserveWall(maze.Location{X: 4, Y: 5}, maze.South, tc.second)
			if got := m.WallState(l, maze.North); got != tc.want {
				t.Errorf("after mirrored observe: WallState = %v; want %v", got, tc.want)
			}

			// SetWall still overrides an observed wall.
			m.SetWall(l, maze.North, tc.second)
			if got := m.WallState(l, maze.North); got != tc.second {
				t.Errorf("after SetWall: WallState = %v; want %v", got, tc.second)
			}
		})
	}
}

//----------------------------------------------------------------------------//
// Visited and goal
//----------------------------------------------------------------------------//

// TestVisited checks that a cell counts as visited once all four walls
// are known, and that the start cell is fully known straight after Reset.
func TestVisited(t *testing.T) {
	m := maze.New()

	if !m.Visited(maze.Start) {
		t.Error("start cell should be fully known after Reset")
	}

	mid := maze.Location{X: 5, Y: 5}
	if m.Visited(mid) {
		t.Errorf("fresh interior cell %v should not be visited", mid)
	}
	if !m.HasUnknownWalls(mid) {
		t.Errorf("fresh interior cell %v should have unknown walls", mid)
	}

	for h := maze.North; h <= maze.West; h++ {
		m.ObserveWall(mid, h, maze.Exit)
	}
	if !m.Visited(mid) {
		t.Errorf("cell %v with four observed walls should be visited", mid)
	}
	if m.HasUnknownWalls(mid) {
		t.Errorf("cell %v should have no unknown walls left", mid)
	}
}

// TestGoal verifies the default goal and the SetGoal round trip.
func TestGoal(t *testing.T) {
	m := maze.New()
	if got := m.Goal(); got != maze.DefaultGoal {
		t.Errorf("Goal = %v; want %v", got, maze.DefaultGoal)
	}

	practice := maze.Location{X: 2, Y: 2}
	m.SetGoal(practice)
	if got := m.Goal(); got != practice {
		t.Errorf("Goal after SetGoal = %v; want %v", got, practice)
	}
}

//----------------------------------------------------------------------------//
// Value types
//----------------------------------------------------------------------------//

// TestHeadingArithmetic exercises the closed heading set.
func TestHeadingArithmetic(t *testing.T) {
	cases := []struct {
		h                    maze.Heading
		right, left, reverse maze.Heading
	}{
		{maze.North, maze.East, maze.West, maze.South},
		{maze.East, maze.South, maze.North, maze.West},
		{maze.South, maze.West, maze.East, maze.North},
		{maze.West, maze.North, maze.South, maze.East},
	}
	for _, tc := range cases {
		if got := tc.h.Right(); got != tc.right {
			t.Errorf("%v.Right() = %v; want %v", tc.h, got, tc.right)
		}
		if got := tc.h.Left(); got != tc.left {
			t.Errorf("%v.Left() = %v; want %v", tc.h, got, tc.left)
		}
		if got := tc.h.Reverse(); got != tc.reverse {
			t.Errorf("%v.Reverse() = %v; want %v", tc.h, got, tc.reverse)
		}
	}
	if maze.Blocked.Valid() {
		t.Error("Blocked must not be a valid compass heading")
	}
}

// TestTurnBetween covers the full relative-turn table.
func TestTurnBetween(t *testing.T) {
	cases := []struct {
		from, to maze.Heading
		want     maze.Turn
	}{
		{maze.North, maze.North, maze.Ahead},
		{maze.North, maze.East, maze.Right},
		{maze.North, maze.South, maze.Back},
		{maze.North, maze.West, maze.Left},
		{maze.West, maze.North, maze.Right},
		{maze.East, maze.North, maze.Left},
		{maze.South, maze.North, maze.Back},
	}
	for _, tc := range cases {
		if got := maze.TurnBetween(tc.from, tc.to); got != tc.want {
			t.Errorf("TurnBetween(%v,%v) = %v; want %v", tc.from, tc.to, got, tc.want)
		}
		if got := tc.from.Turned(tc.want); got != tc.to {
			t.Errorf("%v.Turned(%v) = %v; want %v", tc.from, tc.want, got, tc.to)
		}
	}
}

// TestNeighbour_EdgeOfWorld verifies neighbours never wrap around the
// boundary.
func TestNeighbour_EdgeOfWorld(t *testing.T) {
	cases := []struct {
		l maze.Location
		h maze.Heading
	}{
		{maze.Location{X: 0, Y: 0}, maze.South},
		{maze.Location{X: 0, Y: 0}, maze.West},
		{maze.Location{X: maze.Size - 1, Y: 7}, maze.East},
		{maze.Location{X: 7, Y: maze.Size - 1}, maze.North},
	}
	for _, tc := range cases {
		if n, ok := tc.l.Neighbour(tc.h); ok {
			t.Errorf("Neighbour(%v,%v) = %v, ok; want off-grid", tc.l, tc.h, n)
		}
	}

	n, ok := maze.Location{X: 3, Y: 3}.Neighbour(maze.North)
	if !ok || n != (maze.Location{X: 3, Y: 4}) {
		t.Errorf("Neighbour(3,3 North) = %v,%v; want {3 4},true", n, ok)
	}
}
