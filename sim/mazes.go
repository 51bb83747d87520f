package sim

import "github.com/Nikitarc/mazerunner-core/maze"

// EmptyMaze returns a ground truth maze with every interior wall open:
// just the boundary ring and the post beside the start cell. The start
// keeps its east wall, as a competition maze does.
func EmptyMaze() *maze.Maze {
	m := maze.New()
	for x := 0; x < maze.Size; x++ {
		for y := 0; y < maze.Size; y++ {
			l := maze.Location{X: x, Y: y}
			for h := maze.North; h <= maze.West; h++ {
				if m.WallState(l, h) != maze.Unknown {
					continue
				}
				if _, ok := l.Neighbour(h); ok {
					m.SetWall(l, h, maze.Exit)
				} else {
					m.SetWall(l, h, maze.Wall)
				}
			}
		}
	}
	return m
}

// CorridorMaze returns a ground truth maze whose first column is a
// single straight corridor from the start to the top of the maze,
// closed at the far end.
func CorridorMaze() *maze.Maze {
	m := EmptyMaze()
	for y := 0; y < maze.Size; y++ {
		m.SetWall(maze.Location{X: 0, Y: y}, maze.East, maze.Wall)
	}
	return m
}
