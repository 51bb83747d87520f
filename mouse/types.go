package mouse

import (
	"errors"

	"github.com/Nikitarc/mazerunner-core/maze"
)

// Sentinel errors for navigation runs.
var (
	// ErrTargetUnreachable is returned when the flood shows no route from
	// the current cell to the target under the active wall treatment.
	ErrTargetUnreachable = errors.New("mouse: target unreachable")

	// ErrBlocked is returned when no neighbouring cell improves on the
	// current cost, which means the map has become inconsistent.
	ErrBlocked = errors.New("mouse: no route out of cell")

	// ErrBusy is returned when a run is started while another is still
	// in progress.
	ErrBusy = errors.New("mouse: a run is already in progress")
)

// Action identifies one reported step of a run. The single letters keep
// a whole run readable as one trace line.
type Action byte

const (
	// ActionSense marks a decision point: the sensing position was
	// reached and the walls of the next cell were sampled.
	ActionSense Action = '-'

	// ActionAhead, ActionLeft, ActionRight and ActionBack are the four
	// dispatch outcomes of a decision.
	ActionAhead Action = 'F'
	ActionLeft  Action = 'L'
	ActionRight Action = 'R'
	ActionBack  Action = 'B'

	// ActionSensorPivot marks a smooth turn whose pivot was forced early
	// by the front wall reading.
	ActionSensorPivot Action = 'S'

	// ActionDistancePivot marks a smooth turn that pivoted at the
	// planned distance.
	ActionDistancePivot Action = 'D'
)

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}

// State is the coarse phase of the controller, exposed for telemetry.
type State uint8

const (
	StateIdle State = iota
	StateStarting
	StateMoving
	StateDeciding
	StateTurning
	StateArriving
	StateHalted
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateMoving:
		return "moving"
	case StateDeciding:
		return "deciding"
	case StateTurning:
		return "turning"
	case StateArriving:
		return "arriving"
	case StateHalted:
		return "halted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Pose is the controller's believed cell and heading. The believed cell
// advances to the cell about to be entered as soon as the robot commits
// to crossing its boundary.
type Pose struct {
	Location maze.Location
	Heading  maze.Heading
}
