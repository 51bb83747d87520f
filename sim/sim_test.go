package sim_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikitarc/mazerunner-core/config"
	"github.com/Nikitarc/mazerunner-core/maze"
	"github.com/Nikitarc/mazerunner-core/mouse"
	"github.com/Nikitarc/mazerunner-core/sim"
)

// recorder captures the trace a run emits. onReport, when set, fires
// after each record with its index; tests use it to cancel mid-run.
type recorder struct {
	mu       sync.Mutex
	reports  []mouse.Report
	onReport func(i int, rep mouse.Report)
}

func (r *recorder) Report(rep mouse.Report) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	i := len(r.reports) - 1
	hook := r.onReport
	r.mu.Unlock()
	if hook != nil {
		hook(i, rep)
	}
}

// trace renders the run as its one-letter action log.
func (r *recorder) trace() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var b strings.Builder
	for _, rep := range r.reports {
		b.WriteByte(byte(rep.Action))
	}
	return b.String()
}

func (r *recorder) count(a mouse.Action) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rep := range r.reports {
		if rep.Action == a {
			n++
		}
	}
	return n
}

func newTestMouse(truth *maze.Maze) (*mouse.Mouse, *sim.Plant, *recorder) {
	prof := config.Default()
	plant := sim.NewPlant(truth, prof)
	rec := &recorder{}
	m := mouse.New(maze.New(), plant, plant, prof,
		mouse.WithPollInterval(0),
		mouse.WithReporter(rec))
	return m, plant, rec
}

func TestSearchTo_StraightCorridor(t *testing.T) {
	m, plant, rec := newTestMouse(sim.CorridorMaze())
	top := maze.Location{X: 0, Y: 15}

	err := m.SearchTo(context.Background(), top)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("-F", 15), rec.trace())
	assert.Equal(t, mouse.Pose{Location: top, Heading: maze.North}, m.Pose())
	assert.Equal(t, mouse.StateIdle, m.State())

	cell, heading, travel := plant.TruePose()
	assert.Equal(t, top, cell)
	assert.Equal(t, maze.North, heading)
	assert.InDelta(t, 90, travel, 2, "stopped at the cell centre")
	assert.Empty(t, plant.Collisions())

	for y := 1; y <= 15; y++ {
		assert.True(t, m.Maze().Visited(maze.Location{X: 0, Y: y}), "cell 0,%d mapped", y)
	}
}

func TestSearchTo_OpenMazeToGoal(t *testing.T) {
	m, plant, rec := newTestMouse(sim.EmptyMaze())

	err := m.SearchTo(context.Background(), maze.DefaultGoal)
	require.NoError(t, err)

	want := strings.Repeat("-F", 6) + "-RD" + strings.Repeat("-F", 7)
	assert.Equal(t, want, rec.trace())
	assert.Equal(t, mouse.Pose{Location: maze.DefaultGoal, Heading: maze.East}, m.Pose())

	cell, _, _ := plant.TruePose()
	assert.Equal(t, maze.DefaultGoal, cell)
	assert.Empty(t, plant.Collisions())
}

func TestSearchTo_ReroutesAroundDiscoveredWall(t *testing.T) {
	truth := sim.EmptyMaze()
	truth.SetWall(maze.Location{X: 0, Y: 5}, maze.North, maze.Wall)
	m, plant, rec := newTestMouse(truth)

	err := m.SearchTo(context.Background(), maze.DefaultGoal)
	require.NoError(t, err)

	assert.Equal(t, maze.Wall, m.Maze().WallState(maze.Location{X: 0, Y: 5}, maze.North),
		"the surprise wall ends up on the map")
	assert.Equal(t, maze.DefaultGoal, m.Pose().Location)
	assert.Empty(t, plant.Collisions(), "the route bent before the wall, not through it")
	assert.Positive(t, rec.count(mouse.ActionRight))
}

func TestSearchTo_DeadEndBacksOut(t *testing.T) {
	truth := sim.EmptyMaze()
	truth.SetWall(maze.Location{X: 0, Y: 2}, maze.North, maze.Wall)
	truth.SetWall(maze.Location{X: 0, Y: 2}, maze.East, maze.Wall)
	m, plant, rec := newTestMouse(truth)
	top := maze.Location{X: 0, Y: 15}

	err := m.SearchTo(context.Background(), top)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.count(mouse.ActionBack), "the dead end forces an about turn")
	assert.Equal(t, 3, rec.count(mouse.ActionLeft))
	assert.Equal(t, 19, rec.count(mouse.ActionSense))
	assert.Equal(t, mouse.Pose{Location: top, Heading: maze.West}, m.Pose())
	assert.Empty(t, plant.Collisions())

	mz := m.Maze()
	assert.True(t, mz.Visited(maze.Location{X: 0, Y: 2}))
	assert.Equal(t, maze.Wall, mz.WallState(maze.Location{X: 0, Y: 2}, maze.North))
}

func TestSearchTo_CutOffFailsMidRun(t *testing.T) {
	truth := sim.CorridorMaze()
	truth.SetWall(maze.Location{X: 0, Y: 3}, maze.North, maze.Wall)
	m, plant, _ := newTestMouse(truth)

	err := m.SearchTo(context.Background(), maze.Location{X: 0, Y: 15})
	require.ErrorIs(t, err, mouse.ErrTargetUnreachable)

	assert.Equal(t, mouse.StateFailed, m.State())
	assert.Empty(t, plant.Collisions(), "the run stops inside the pocket, not through it")
	assert.Equal(t, maze.Location{X: 0, Y: 3}, m.Pose().Location,
		"belief had advanced to the sealed cell")
	assert.Zero(t, plant.Velocity())
}

func TestSearchTo_AlreadyThere(t *testing.T) {
	m, plant, rec := newTestMouse(sim.EmptyMaze())

	err := m.SearchTo(context.Background(), maze.Start)
	require.NoError(t, err)
	assert.Zero(t, plant.Travelled())
	assert.Empty(t, rec.trace())
}

func TestSearchTo_CancelHaltsAtDecision(t *testing.T) {
	m, plant, rec := newTestMouse(sim.CorridorMaze())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.onReport = func(i int, _ mouse.Report) {
		if i == 3 {
			cancel()
		}
	}

	err := m.SearchTo(ctx, maze.Location{X: 0, Y: 15})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, mouse.StateHalted, m.State())
	assert.Zero(t, plant.Velocity(), "the drive stops when a run halts")

	cell, _, _ := plant.TruePose()
	assert.Greater(t, cell.Y, 0, "the run was under way")
	assert.Less(t, cell.Y, 15, "and never reached the top")
}

func TestRunTo_NeedsConfirmedRoute(t *testing.T) {
	m, plant, _ := newTestMouse(sim.EmptyMaze())

	err := m.RunTo(context.Background(), maze.DefaultGoal)
	require.ErrorIs(t, err, mouse.ErrTargetUnreachable)
	assert.Zero(t, plant.Travelled(), "an unreachable target fails before the robot moves")
	assert.Equal(t, mouse.StateFailed, m.State())
}

func TestRunTo_RetracesSearchedRoute(t *testing.T) {
	m, plant, rec := newTestMouse(sim.EmptyMaze())
	ctx := context.Background()

	require.NoError(t, m.SearchTo(ctx, maze.DefaultGoal))
	outward := plant.Travelled()

	require.NoError(t, m.RunTo(ctx, maze.Start))

	assert.Equal(t, mouse.Pose{Location: maze.Start, Heading: maze.South}, m.Pose())
	assert.Empty(t, plant.Collisions())
	assert.Greater(t, plant.Travelled(), outward)
	assert.Positive(t, rec.count(mouse.ActionLeft),
		"retracing the corner from the other side is a left turn")

	cell, _, _ := plant.TruePose()
	assert.Equal(t, maze.Start, cell)
}

func TestFollowTo_StraightCorridor(t *testing.T) {
	m, plant, rec := newTestMouse(sim.CorridorMaze())
	top := maze.Location{X: 0, Y: 15}

	err := m.FollowTo(context.Background(), top)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("-F", 15), rec.trace())
	assert.Equal(t, mouse.Pose{Location: top, Heading: maze.North}, m.Pose())
	assert.Empty(t, plant.Collisions())
}

func TestFollowTo_PrefersLeftOpening(t *testing.T) {
	truth := sim.EmptyMaze()
	truth.SetWall(maze.Location{X: 0, Y: 2}, maze.North, maze.Wall)
	m, plant, rec := newTestMouse(truth)

	err := m.FollowTo(context.Background(), maze.Location{X: 1, Y: 3})
	require.NoError(t, err)

	assert.Equal(t, "-F-RD-LD-F", rec.trace(),
		"forced right at the wall, then back left at the first opening")
	assert.Equal(t, maze.Location{X: 1, Y: 3}, m.Pose().Location)
	assert.Empty(t, plant.Collisions())
}

func TestFollowTo_TracksPerimeter(t *testing.T) {
	m, plant, rec := newTestMouse(sim.EmptyMaze())
	corner := maze.Location{X: 15, Y: 0}

	err := m.FollowTo(context.Background(), corner)
	require.NoError(t, err)

	assert.Equal(t, 45, rec.count(mouse.ActionSense))
	assert.Equal(t, 43, rec.count(mouse.ActionAhead))
	assert.Equal(t, 2, rec.count(mouse.ActionRight))
	assert.Zero(t, rec.count(mouse.ActionLeft))
	assert.Equal(t, mouse.Pose{Location: corner, Heading: maze.South}, m.Pose())
	assert.Empty(t, plant.Collisions())
}

func TestSearchMaze_OutAndBack(t *testing.T) {
	m, plant, rec := newTestMouse(sim.EmptyMaze())

	err := m.SearchMaze(context.Background())
	require.NoError(t, err)

	// The start cell's east wall keeps the return leg off row 0: the
	// route comes home along row 1 and drops into the start from above.
	assert.Equal(t, mouse.Pose{Location: maze.Start, Heading: maze.South}, m.Pose())
	assert.Equal(t, mouse.StateIdle, m.State())

	assert.Equal(t, 28, rec.count(mouse.ActionSense))
	assert.Equal(t, 25, rec.count(mouse.ActionAhead))
	assert.Equal(t, 2, rec.count(mouse.ActionRight))
	assert.Equal(t, 1, rec.count(mouse.ActionLeft))
	assert.Equal(t, 3, rec.count(mouse.ActionDistancePivot))

	cell, _, _ := plant.TruePose()
	assert.Equal(t, maze.Start, cell)
	assert.Empty(t, plant.Collisions())
	assert.Zero(t, plant.Velocity(), "the outing ends with the drive disabled")
}
