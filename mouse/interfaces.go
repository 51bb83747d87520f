package mouse

import (
	"context"

	"github.com/Nikitarc/mazerunner-core/maze"
	"github.com/Nikitarc/mazerunner-core/sensors"
)

// Motion drives the forward and rotary motion profiles of the robot.
//
// Starts return immediately; progress is observed through the finished
// and position queries. A forward profile that completes with a nonzero
// final speed leaves the robot rolling at that speed, so Position keeps
// increasing until another profile or Stop takes over. A rotary profile
// started while the robot is rolling rides on top of the forward motion
// and produces an arc; started at standstill it spins in place.
type Motion interface {
	// Move starts a forward profile: distance mm from the current
	// position, peaking at topSpeed and ending at finalSpeed mm/s,
	// shaped by accel mm/s/s. Negative distances reverse.
	Move(distance, topSpeed, finalSpeed, accel float64)

	// MoveFinished reports whether the forward profile has completed.
	MoveFinished() bool

	// Turn starts a rotary profile through angle degrees, positive
	// anticlockwise, peaking at omega and ending at finalOmega deg/s,
	// shaped by alpha deg/s/s.
	Turn(angle, omega, finalOmega, alpha float64)

	// TurnFinished reports whether the rotary profile has completed.
	TurnFinished() bool

	// Position is the forward odometer, mm, in the frame set by the
	// last SetPosition or AdjustForwardPosition.
	Position() float64

	// Velocity is the current forward speed, mm/s.
	Velocity() float64

	// SetPosition re-anchors the forward odometer.
	SetPosition(p float64)

	// AdjustForwardPosition shifts the forward odometer by delta without
	// disturbing the motion in progress.
	AdjustForwardPosition(delta float64)

	// Stop zeroes both profiles immediately.
	Stop()

	// ResetDriveSystem stops the robot and clears odometry and
	// controller state.
	ResetDriveSystem()

	// DisableDrive cuts power to the motors.
	DisableDrive()
}

// Sensors is the wall sensing surface the controller reads. It is
// satisfied by the sampler in the sensors package and by the simulator.
type Sensors interface {
	// Latest returns the most recent wall picture without blocking.
	Latest() sensors.Snapshot

	// Enable and Disable gate the sensor emitters.
	Enable()
	Disable()

	// SetSteeringMode switches the cross-track evaluation.
	SetSteeringMode(sensors.Mode)

	// WaitForStart blocks until the operator gives the start gesture.
	WaitForStart(ctx context.Context) (sensors.StartSide, error)
}

// Report is one trace record emitted at each reportable step of a run.
type Report struct {
	Action   Action
	State    State
	Location maze.Location
	Heading  maze.Heading

	// Position is the forward odometer at the time of the report, mm.
	Position float64

	// FrontSum is the front sensor sum at the time of the report.
	FrontSum float64
}

// Reporter consumes trace records. Implementations must not block the
// control loop.
type Reporter interface {
	Report(Report)
}

// NopReporter discards every record.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(Report) {}
