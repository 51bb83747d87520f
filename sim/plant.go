package sim

import (
	"context"
	"math"
	"sync"

	"github.com/Nikitarc/mazerunner-core/config"
	"github.com/Nikitarc/mazerunner-core/maze"
	"github.com/Nikitarc/mazerunner-core/mouse"
	"github.com/Nikitarc/mazerunner-core/sensors"
)

// One Plant serves as both seams of a Mouse.
var (
	_ mouse.Motion  = (*Plant)(nil)
	_ mouse.Sensors = (*Plant)(nil)
)

//----------------------------------------------------------------------------//
// Tuning
//----------------------------------------------------------------------------//

const (
	// sideAheadTravel is how far into a cell the side sensors start
	// reading the next cell's walls. Past this point the beams project
	// through the entrance gap ahead, which is what makes the decision
	// point near the boundary see the walls of the cell being entered.
	sideAheadTravel = 140.0

	// ambientRaw is the residual side reading with no wall in range.
	ambientRaw = 2.0

	// frontCap bounds the front sum the way a saturating ADC would.
	frontCap = 2047.0
)

//----------------------------------------------------------------------------//
// Collision
//----------------------------------------------------------------------------//

// Collision records the robot driving forward through a wall. At names the
// cell the robot was leaving and Heading the direction of travel.
type Collision struct {
	At      maze.Location
	Heading maze.Heading
}

//----------------------------------------------------------------------------//
// Trapezoidal profile
//----------------------------------------------------------------------------//

// profile integrates one trapezoidal speed profile, in mm for forward
// motion or degrees for rotation. A finished profile holds its final
// speed; the caller keeps integrating displacement from it, which is how
// a completed forward move leaves the robot coasting.
type profile struct {
	dist     float64 // total magnitude to cover
	done     float64 // magnitude covered so far
	dir      float64 // +1 or -1
	speed    float64 // current magnitude
	top      float64
	final    float64
	accel    float64
	finished bool
}

func startProfile(distance, top, final, accel, entrySpeed float64) profile {
	p := profile{
		dist:  math.Abs(distance),
		dir:   1,
		speed: math.Abs(entrySpeed),
		top:   math.Abs(top),
		final: math.Abs(final),
		accel: math.Abs(accel),
	}
	if distance < 0 {
		p.dir = -1
	}
	if p.dist == 0 {
		p.finished = true
		p.speed = p.final
	}
	return p
}

func stoppedProfile() profile {
	return profile{finished: true}
}

func (p *profile) update(dt float64) {
	if p.finished {
		return
	}
	remaining := p.dist - p.done
	target := p.top
	if p.speed > p.final && p.accel > 0 {
		braking := (p.speed*p.speed - p.final*p.final) / (2 * p.accel)
		if remaining <= braking {
			target = p.final
		}
	}
	if p.speed < target {
		p.speed = math.Min(target, p.speed+p.accel*dt)
	} else if p.speed > target {
		p.speed = math.Max(target, p.speed-p.accel*dt)
	}
	p.done += p.speed * dt
	if p.done >= p.dist {
		p.finished = true
		p.speed = p.final
	}
}

// velocity is the signed rate while the profile runs or coasts.
func (p *profile) velocity() float64 {
	return p.speed * p.dir
}

//----------------------------------------------------------------------------//
// Plant
//----------------------------------------------------------------------------//

// Plant is the simulated robot. It satisfies both mouse.Motion and
// mouse.Sensors, so one Plant wires a Mouse completely.
//
// The plant keeps two frames. The controller frame is the Position value
// the profiles report, moved around freely by SetPosition and
// AdjustForwardPosition. The truth frame is the cell, heading and travel
// distance into the cell, which only physics may change. Comparing the
// two after a run is how tests catch re-referencing mistakes.
type Plant struct {
	mu sync.Mutex

	truth *maze.Maze
	prof  config.Profile
	est   sensors.Estimator
	dt    float64

	// truth frame
	cell    maze.Location
	heading maze.Heading
	travel  float64

	// controller frame
	pos float64

	fwd profile
	rot profile

	// arc bookkeeping: a rotation started while rolling is a smooth
	// turn, and travel re-anchors symmetrically when it completes.
	arcMoving      bool
	arcStartTravel float64

	mode    sensors.Mode
	enabled bool
	seq     uint64

	startSide  sensors.StartSide
	collisions []Collision
	travelled  float64
}

// NewPlant places the robot backed up in the start cell, facing north,
// the way a hand start leaves it. The truth maze must have its walls
// fully decided; Unknown and Virtual states count as open space.
func NewPlant(truth *maze.Maze, prof config.Profile) *Plant {
	return &Plant{
		truth:     truth,
		prof:      prof,
		est:       sensors.NewEstimator(prof),
		dt:        prof.LoopInterval.Seconds(),
		cell:      maze.Start,
		heading:   maze.North,
		travel:    prof.HalfCell - prof.BackWallToCenter,
		fwd:       stoppedProfile(),
		rot:       stoppedProfile(),
		startSide: sensors.StartLeft,
	}
}

// rearOffset is the travel at which the tail touches the wall behind.
func (p *Plant) rearOffset() float64 {
	return p.prof.HalfCell - p.prof.BackWallToCenter
}

//----------------------------------------------------------------------------//
// Physics
//----------------------------------------------------------------------------//

// step advances the simulation by one loop interval. Callers hold mu.
func (p *Plant) step() {
	p.seq++

	rotating := !p.rot.finished
	p.rot.update(p.dt)
	if rotating && p.rot.finished {
		p.completeRotation()
		rotating = false
	}

	p.fwd.update(p.dt)
	ds := p.fwd.velocity() * p.dt
	p.pos += ds
	p.travelled += math.Abs(ds)
	if !rotating {
		p.advanceTravel(ds)
	}
}

// advanceTravel moves the truth frame, crossing cell boundaries and
// recording collisions. Forward through a wall passes through and is
// recorded; backward into a wall clamps at the tail, which is the
// squaring-up manoeuvre, not a crash.
func (p *Plant) advanceTravel(ds float64) {
	p.travel += ds
	for p.travel >= p.prof.FullCell {
		blocked := p.physicalWall(p.cell, p.heading)
		next, ok := p.cell.Neighbour(p.heading)
		if blocked || !ok {
			p.collisions = append(p.collisions, Collision{At: p.cell, Heading: p.heading})
		}
		if !ok {
			p.travel = p.prof.FullCell
			return
		}
		p.cell = next
		p.travel -= p.prof.FullCell
	}
	for p.travel < p.rearOffset() && p.fwd.velocity() < 0 {
		if p.physicalWall(p.cell, p.heading.Reverse()) {
			p.travel = p.rearOffset()
			return
		}
		if p.travel >= 0 {
			return
		}
		prev, ok := p.cell.Neighbour(p.heading.Reverse())
		if !ok {
			p.travel = p.rearOffset()
			return
		}
		p.cell = prev
		p.travel += p.prof.FullCell
	}
}

// completeRotation snaps the heading by the nearest quarter turn and
// re-anchors travel. A smooth arc exits as far before the new boundary
// as it entered past the old one; a spin on the spot keeps the robot at
// the centre it span from.
func (p *Plant) completeRotation() {
	quarters := int(math.Round(p.rot.dist*p.rot.dir/90)) % 4
	switch quarters {
	case 1, -3:
		p.heading = p.heading.Left()
	case -1, 3:
		p.heading = p.heading.Right()
	case 2, -2:
		p.heading = p.heading.Reverse()
	}
	if p.arcMoving {
		p.travel = p.prof.FullCell - p.arcStartTravel
	} else if quarters == 2 || quarters == -2 {
		p.travel = p.prof.FullCell - p.travel
	} else if quarters != 0 {
		p.travel = p.prof.HalfCell
	}
	p.arcMoving = false
}

// physicalWall reports whether a real wall stands on that side of the
// cell. Only Wall counts; Unknown and Virtual are open space.
func (p *Plant) physicalWall(c maze.Location, h maze.Heading) bool {
	return p.truth.WallState(c, h) == maze.Wall
}

//----------------------------------------------------------------------------//
// Optics
//----------------------------------------------------------------------------//

// sideCell is the cell whose side walls the beams currently cover.
func (p *Plant) sideCell() maze.Location {
	if p.travel >= sideAheadTravel {
		if next, ok := p.cell.Neighbour(p.heading); ok {
			return next
		}
	}
	return p.cell
}

// frontWallDistance is the range from the axle to the nearest wall
// ahead, scanning a few cells out. Beyond that the reading is noise.
func (p *Plant) frontWallDistance() float64 {
	d := p.prof.FullCell - p.travel
	c := p.cell
	for i := 0; i < 3; i++ {
		next, ok := c.Neighbour(p.heading)
		if p.physicalWall(c, p.heading) || !ok {
			return d
		}
		c = next
		d += p.prof.FullCell
	}
	return d
}

// rawChannels models the lit-minus-dark readings the hardware sampler
// would hand the estimator, inverted through the calibration scaling so
// the estimator recovers the intended values.
func (p *Plant) rawChannels() sensors.Channels {
	side := func(h maze.Heading) float64 {
		if p.physicalWall(p.sideCell(), h) {
			return p.prof.SideNominal
		}
		return ambientRaw
	}

	d := p.frontWallDistance()
	if d < 1 {
		d = 1
	}
	ratio := p.prof.HalfCell / d
	sum := p.prof.FrontReference * ratio * ratio * ratio * ratio
	if sum > frontCap {
		sum = frontCap
	}

	return sensors.Channels{
		LeftFront:  sum / 2 * p.prof.FrontCalibration / p.prof.FrontNominal,
		LeftSide:   side(p.heading.Left()) * p.prof.LeftCalibration / p.prof.SideNominal,
		RightSide:  side(p.heading.Right()) * p.prof.RightCalibration / p.prof.SideNominal,
		RightFront: sum / 2 * p.prof.FrontCalibration / p.prof.FrontNominal,
	}
}

//----------------------------------------------------------------------------//
// mouse.Motion
//----------------------------------------------------------------------------//

// Move starts a forward profile from the current speed. A negative
// distance reverses.
func (p *Plant) Move(distance, topSpeed, finalSpeed, accel float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fwd = startProfile(distance, topSpeed, finalSpeed, accel, p.fwd.speed)
}

// MoveFinished reports whether the forward profile has covered its
// distance, advancing the plant one tick.
func (p *Plant) MoveFinished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()
	return p.fwd.finished
}

// Turn starts a rotation. Started while rolling it is treated as a
// smooth arc and suspends cell travel until it completes.
func (p *Plant) Turn(angle, omega, finalOmega, alpha float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.arcMoving = p.fwd.velocity() > 0
	p.arcStartTravel = p.travel
	p.rot = startProfile(angle, omega, finalOmega, alpha, p.rot.speed)
}

// TurnFinished reports whether the rotation is done, advancing one tick.
func (p *Plant) TurnFinished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()
	return p.rot.finished
}

// Position returns the controller-frame odometer, advancing one tick.
func (p *Plant) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()
	return p.pos
}

// Velocity returns the signed forward speed without advancing time.
func (p *Plant) Velocity() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fwd.velocity()
}

// SetPosition re-anchors the controller frame.
func (p *Plant) SetPosition(mm float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = mm
}

// AdjustForwardPosition shifts the controller frame by delta.
func (p *Plant) AdjustForwardPosition(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos += delta
}

// Stop kills both profiles immediately.
func (p *Plant) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fwd = stoppedProfile()
	p.rot = stoppedProfile()
	p.arcMoving = false
}

// ResetDriveSystem stops everything and zeroes the controller frame.
func (p *Plant) ResetDriveSystem() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fwd = stoppedProfile()
	p.rot = stoppedProfile()
	p.arcMoving = false
	p.pos = 0
}

// DisableDrive stops the motors. In the simulation that is a Stop.
func (p *Plant) DisableDrive() {
	p.Stop()
}

//----------------------------------------------------------------------------//
// mouse.Sensors
//----------------------------------------------------------------------------//

// Latest evaluates the optical model at the current pose, advancing the
// plant one tick. With the sensors disabled it returns zeros, matching
// the hardware sampler.
func (p *Plant) Latest() sensors.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step()
	if !p.enabled {
		return sensors.Snapshot{Seq: p.seq, Mode: p.mode}
	}
	raw := p.rawChannels()
	return sensors.Snapshot{
		Reading: p.est.Evaluate(raw, p.mode),
		Seq:     p.seq,
		Raw:     raw,
		Mode:    p.mode,
		Enabled: true,
	}
}

// Enable turns the simulated emitters on.
func (p *Plant) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true
}

// Disable turns them off again.
func (p *Plant) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

// SetSteeringMode records the steering mode for snapshots.
func (p *Plant) SetSteeringMode(m sensors.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = m
}

// WaitForStart plays an operator who covers a sensor straight away.
func (p *Plant) WaitForStart(ctx context.Context) (sensors.StartSide, error) {
	if err := ctx.Err(); err != nil {
		return sensors.StartNone, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startSide, nil
}

// SetStartSide chooses which hand the simulated operator uses.
func (p *Plant) SetStartSide(s sensors.StartSide) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startSide = s
}

//----------------------------------------------------------------------------//
// Inspection
//----------------------------------------------------------------------------//

// TruePose returns the ground truth cell, heading and travel into the
// cell. Travel is measured from the cell's entry boundary in mm.
func (p *Plant) TruePose() (maze.Location, maze.Heading, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cell, p.heading, p.travel
}

// Collisions returns every wall driven through so far.
func (p *Plant) Collisions() []Collision {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Collision, len(p.collisions))
	copy(out, p.collisions)
	return out
}

// Travelled returns the total path length in mm, forward and reverse.
func (p *Plant) Travelled() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.travelled
}
