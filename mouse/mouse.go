package mouse

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Nikitarc/mazerunner-core/config"
	"github.com/Nikitarc/mazerunner-core/maze"
	"github.com/Nikitarc/mazerunner-core/sensors"
)

// Re-referencing against a wall behind uses a gentle push; braking into
// a wall ahead ends in a slow creep so the sensors call the stop.
const (
	backupDistance = 60.0   // mm
	backupSpeed    = 120.0  // mm/s
	backupAccel    = 1000.0 // mm/s/s
	creepSpeed     = 30.0   // mm/s
)

// Option configures a Mouse at construction.
type Option func(*Mouse)

// WithReporter routes trace records to r instead of discarding them.
func WithReporter(r Reporter) Option {
	return func(m *Mouse) { m.reporter = r }
}

// WithPollInterval overrides how long the controller sleeps between
// polls of motion and sensors. Zero does not sleep at all, which lets a
// simulation run as fast as it can be stepped.
func WithPollInterval(d time.Duration) Option {
	return func(m *Mouse) { m.poll = d }
}

// Mouse sequences sensing, mapping and motion into maze runs. One run
// may be in progress at a time; a second concurrent start fails with
// ErrBusy. The zero value is not usable; construct with New.
type Mouse struct {
	maze     *maze.Maze
	motion   Motion
	sensors  Sensors
	reporter Reporter
	prof     config.Profile

	poll time.Duration

	pose      Pose
	handStart bool
	spinFlip  bool

	state   atomic.Int32
	running atomic.Bool
}

// New wires a controller over a map, a drive and a sensor feed. The
// profile's goal cell is applied to the map.
func New(mz *maze.Maze, mo Motion, sn Sensors, prof config.Profile, opts ...Option) *Mouse {
	m := &Mouse{
		maze:     mz,
		motion:   mo,
		sensors:  sn,
		reporter: NopReporter{},
		prof:     prof,
		poll:     prof.LoopInterval,
		pose:     Pose{Location: maze.Start, Heading: maze.North},
	}
	mz.SetGoal(prof.Goal)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Pose returns the believed cell and heading. It changes while a run is
// in progress; read it between runs.
func (m *Mouse) Pose() Pose {
	return m.pose
}

// State returns the controller phase. Safe to call from any goroutine.
func (m *Mouse) State() State {
	return State(m.state.Load())
}

// Maze exposes the live map.
func (m *Mouse) Maze() *maze.Maze {
	return m.maze
}

// SetHandStart declares whether the next run begins from a hand
// placement against the wall behind the current cell.
func (m *Mouse) SetHandStart(on bool) {
	m.handStart = on
}

// Reset returns the mouse to the start cell facing north with a fresh
// map. Call it between runs only.
func (m *Mouse) Reset() {
	m.maze.Reset()
	m.pose = Pose{Location: maze.Start, Heading: maze.North}
	m.handStart = false
	m.spinFlip = false
	m.setState(StateIdle)
}

//----------------------------------------------------------------------------//
// Runs
//----------------------------------------------------------------------------//

// SearchTo drives from the current pose to target, mapping walls on the
// way. Unexplored walls are treated as open, so the route may head into
// unknown territory and be revised as walls turn up.
func (m *Mouse) SearchTo(ctx context.Context, target maze.Location) error {
	return m.run(ctx, target, planner{mask: maze.MaskOpen}, m.prof.SearchSpeed)
}

// RunTo drives to target over confirmed exits only. When the map so far
// holds no such route it fails with ErrTargetUnreachable before moving.
func (m *Mouse) RunTo(ctx context.Context, target maze.Location) error {
	return m.run(ctx, target, planner{mask: maze.MaskClosed}, m.prof.RunSpeed)
}

// FollowTo explores to target by the left-hand rule, recording walls as
// it goes. The map and pose are reset first; a follower's trail is only
// meaningful from the start cell of a fresh map.
func (m *Mouse) FollowTo(ctx context.Context, target maze.Location) error {
	m.Reset()
	m.handStart = true
	return m.run(ctx, target, follower{}, m.prof.SearchSpeed)
}

// SearchMaze is a complete outing: wait for the start gesture, search to
// the goal, turn toward home and search back to the start. The map is
// fresh for the outward leg and kept for the return, so the way back
// profits from everything seen on the way out.
func (m *Mouse) SearchMaze(ctx context.Context) error {
	if _, err := m.sensors.WaitForStart(ctx); err != nil {
		return err
	}
	m.Reset()
	m.handStart = true

	if err := m.run(ctx, m.maze.Goal(), planner{mask: maze.MaskOpen}, m.prof.SearchSpeed); err != nil {
		return err
	}
	m.handStart = false

	costs := m.maze.Flood(maze.Start, maze.MaskOpen)
	home := m.maze.HeadingToSmallest(costs, m.pose.Location, m.pose.Heading, maze.MaskOpen)
	if home == maze.Blocked {
		return fmt.Errorf("%w: at %v", ErrBlocked, m.pose.Location)
	}
	m.TurnToFace(home)

	if err := m.run(ctx, maze.Start, planner{mask: maze.MaskOpen}, m.prof.SearchSpeed); err != nil {
		return err
	}
	m.motion.DisableDrive()
	return nil
}

//----------------------------------------------------------------------------//
// Decision loop
//----------------------------------------------------------------------------//

// run is the decision loop shared by every mode. It turns in place to
// face the route, launches the robot toward the first sensing position,
// then for each cell about to be entered: samples the walls, updates
// the map, asks the picker for the next heading and dispatches the
// matching motion primitive. Arrival is the final ahead report followed
// by a braked stop at the cell centre.
//
// Cancellation is honoured at decision points only. A primitive that
// has been started always completes.
func (m *Mouse) run(ctx context.Context, target maze.Location, pick headingPicker, cruise float64) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer m.running.Store(false)

	if m.pose.Location == target {
		m.setState(StateIdle)
		return nil
	}

	log.WithFields(log.Fields{
		"mode":   pick.name(),
		"from":   m.pose.Location,
		"target": target,
	}).Info("mouse: run starting")

	m.setState(StateStarting)
	if err := pick.preflight(m, target); err != nil {
		m.setState(StateFailed)
		return err
	}
	if err := ctx.Err(); err != nil {
		m.setState(StateHalted)
		return err
	}

	m.sensors.Enable()
	defer m.sensors.Disable()
	defer m.sensors.SetSteeringMode(sensors.SteerOff)

	m.motion.ResetDriveSystem()
	if h, ok := pick.firstHeading(m, target); ok {
		m.TurnToFace(h)
	}
	m.startSequence(cruise)

	for m.pose.Location != target {
		if err := ctx.Err(); err != nil {
			m.motion.Stop()
			m.setState(StateHalted)
			log.WithError(err).Warn("mouse: run halted")
			return err
		}

		m.setState(StateDeciding)
		m.report(ActionSense)
		m.sensors.SetSteeringMode(sensors.SteerNormal)

		next, ok := m.pose.Location.Neighbour(m.pose.Heading)
		if !ok {
			m.motion.Stop()
			m.setState(StateFailed)
			return fmt.Errorf("%w: heading %v leaves the maze at %v", ErrBlocked, m.pose.Heading, m.pose.Location)
		}
		m.pose.Location = next

		snap := m.sensors.Latest()
		m.observeWalls(snap)

		if m.pose.Location == target {
			m.setState(StateArriving)
			m.report(ActionAhead)
			m.stopAndCenter(snap)
			break
		}

		h, err := pick.nextHeading(m, target, snap)
		if err != nil {
			m.motion.Stop()
			m.setState(StateFailed)
			log.WithError(err).Error("mouse: run failed")
			return err
		}

		switch maze.TurnBetween(m.pose.Heading, h) {
		case maze.Ahead:
			m.setState(StateMoving)
			m.motion.AdjustForwardPosition(-m.prof.FullCell)
			m.report(ActionAhead)
			m.waitPosition(m.prof.SensingPosition)
		case maze.Right:
			m.setState(StateTurning)
			m.report(ActionRight)
			m.smoothTurn(m.prof.TurnRight, snap, cruise)
			m.pose.Heading = h
		case maze.Back:
			m.setState(StateTurning)
			m.report(ActionBack)
			m.turnAround(snap, cruise)
			m.pose.Heading = h
		case maze.Left:
			m.setState(StateTurning)
			m.report(ActionLeft)
			m.smoothTurn(m.prof.TurnLeft, snap, cruise)
			m.pose.Heading = h
		}
	}

	m.setState(StateIdle)
	log.WithFields(log.Fields{
		"at":      m.pose.Location,
		"heading": m.pose.Heading,
	}).Info("mouse: arrived")
	return nil
}

// startSequence gets the robot from a standstill in the current cell to
// the first sensing position, rolling at cruise speed with the odometer
// anchored to the cell frame.
func (m *Mouse) startSequence(cruise float64) {
	wallBehind := m.maze.WallState(m.pose.Location, m.pose.Heading.Reverse()) == maze.Wall

	switch {
	case m.handStart:
		// Hand placed against the wall behind: roll out to the centre
		// and anchor there.
		m.motion.Move(m.prof.BackWallToCenter, cruise, cruise, m.prof.SearchAccel)
		m.waitMoveFinished()
		m.motion.SetPosition(m.prof.HalfCell)
	case wallBehind:
		// Push back against the wall to shed the odometry error of the
		// previous run, then roll out as from a hand start.
		m.motion.Move(-backupDistance, backupSpeed, 0, backupAccel)
		m.waitMoveFinished()
		m.motion.Move(m.prof.BackWallToCenter, cruise, cruise, m.prof.SearchAccel)
		m.waitMoveFinished()
		m.motion.SetPosition(m.prof.HalfCell)
	default:
		// Nothing to reference against; trust the stop at the centre.
		m.motion.SetPosition(m.prof.HalfCell)
		m.motion.Move(m.prof.SensingPosition-m.prof.HalfCell, cruise, cruise, m.prof.SearchAccel)
	}

	m.waitPosition(m.prof.SensingPosition)
}

// observeWalls records the three visible walls of the cell about to be
// entered. The wall behind is already known from the cell being left.
func (m *Mouse) observeWalls(snap sensors.Snapshot) {
	loc, h := m.pose.Location, m.pose.Heading
	m.maze.ObserveWall(loc, h, wallStateOf(snap.FrontWall))
	m.maze.ObserveWall(loc, h.Left(), wallStateOf(snap.LeftWall))
	m.maze.ObserveWall(loc, h.Right(), wallStateOf(snap.RightWall))
}

func wallStateOf(present bool) maze.WallState {
	if present {
		return maze.Wall
	}
	return maze.Exit
}

// report emits one trace record for the current pose and odometry.
func (m *Mouse) report(a Action) {
	snap := m.sensors.Latest()
	m.reporter.Report(Report{
		Action:   a,
		State:    m.State(),
		Location: m.pose.Location,
		Heading:  m.pose.Heading,
		Position: m.motion.Position(),
		FrontSum: snap.FrontSum,
	})
}

func (m *Mouse) setState(s State) {
	m.state.Store(int32(s))
}

//----------------------------------------------------------------------------//
// Polling
//----------------------------------------------------------------------------//

func (m *Mouse) idle() {
	if m.poll > 0 {
		time.Sleep(m.poll)
	}
}

func (m *Mouse) waitMoveFinished() {
	for !m.motion.MoveFinished() {
		m.idle()
	}
}

func (m *Mouse) waitTurnFinished() {
	for !m.motion.TurnFinished() {
		m.idle()
	}
}

func (m *Mouse) waitPosition(target float64) {
	for m.motion.Position() < target {
		m.idle()
	}
}

//----------------------------------------------------------------------------//
// Heading pickers
//----------------------------------------------------------------------------//

// headingPicker chooses the heading out of the cell just entered. The
// planner floods the map; the follower reads the walls beside it.
// firstHeading orients the robot before it rolls; a picker with no
// opinion returns ok false and the current heading stands.
type headingPicker interface {
	name() string
	preflight(m *Mouse, target maze.Location) error
	firstHeading(m *Mouse, target maze.Location) (maze.Heading, bool)
	nextHeading(m *Mouse, target maze.Location, snap sensors.Snapshot) (maze.Heading, error)
}

type planner struct {
	mask maze.Mask
}

func (p planner) name() string {
	if p.mask == maze.MaskClosed {
		return "run"
	}
	return "search"
}

func (p planner) preflight(m *Mouse, target maze.Location) error {
	costs := m.maze.Flood(target, p.mask)
	if costs.At(m.pose.Location) == maze.Unreachable {
		return fmt.Errorf("%w: no route %v -> %v", ErrTargetUnreachable, m.pose.Location, target)
	}
	return nil
}

func (p planner) firstHeading(m *Mouse, target maze.Location) (maze.Heading, bool) {
	costs := m.maze.Flood(target, p.mask)
	h := m.maze.HeadingToSmallest(costs, m.pose.Location, m.pose.Heading, p.mask)
	return h, h != maze.Blocked
}

func (p planner) nextHeading(m *Mouse, target maze.Location, _ sensors.Snapshot) (maze.Heading, error) {
	costs := m.maze.Flood(target, p.mask)
	h := m.maze.HeadingToSmallest(costs, m.pose.Location, m.pose.Heading, p.mask)
	if h == maze.Blocked {
		if costs.At(m.pose.Location) == maze.Unreachable {
			return maze.Blocked, fmt.Errorf("%w: %v cut off from %v", ErrTargetUnreachable, m.pose.Location, target)
		}
		return maze.Blocked, fmt.Errorf("%w: at %v", ErrBlocked, m.pose.Location)
	}
	return h, nil
}

type follower struct{}

func (follower) name() string { return "follow" }

func (follower) preflight(*Mouse, maze.Location) error { return nil }

func (follower) firstHeading(*Mouse, maze.Location) (maze.Heading, bool) {
	return maze.North, false
}

// nextHeading prefers left, then ahead, then right; with walls on all
// three sides the only way out is back.
func (follower) nextHeading(m *Mouse, _ maze.Location, snap sensors.Snapshot) (maze.Heading, error) {
	switch {
	case !snap.LeftWall:
		return m.pose.Heading.Left(), nil
	case !snap.FrontWall:
		return m.pose.Heading, nil
	case !snap.RightWall:
		return m.pose.Heading.Right(), nil
	default:
		return m.pose.Heading.Reverse(), nil
	}
}
