package maze_test

import (
	"testing"

	"github.com/Nikitarc/mazerunner-core/maze"
)

// BenchmarkFlood_Fresh floods an unexplored map under MaskOpen; this is
// the cost paid at every decision point early in a search.
func BenchmarkFlood_Fresh(b *testing.B) {
	m := maze.New()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = m.Flood(maze.DefaultGoal, maze.MaskOpen)
	}
}

// BenchmarkFlood_FullyMapped floods a completely explored map under
// MaskClosed; every cell is expanded, the worst case for the queue.
func BenchmarkFlood_FullyMapped(b *testing.B) {
	m := maze.New()
	for x := 0; x < maze.Size; x++ {
		for y := 0; y < maze.Size; y++ {
			l := maze.Location{X: x, Y: y}
			for h := maze.North; h <= maze.West; h++ {
				if m.WallState(l, h) == maze.Unknown {
					m.SetWall(l, h, maze.Exit)
				}
			}
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = m.Flood(maze.DefaultGoal, maze.MaskClosed)
	}
}

// BenchmarkHeadingToSmallest measures one steering decision over a
// prepared cost map.
func BenchmarkHeadingToSmallest(b *testing.B) {
	m := maze.New()
	costs := m.Flood(maze.DefaultGoal, maze.MaskOpen)
	at := maze.Location{X: 3, Y: 9}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = m.HeadingToSmallest(costs, at, maze.North, maze.MaskOpen)
	}
}
