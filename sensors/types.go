package sensors

import "errors"

// ErrSourceRead is returned by WaitForStart when the underlying Source
// fails repeatedly and no gesture can be detected.
var ErrSourceRead = errors.New("sensors: source read failed")

// Mode selects how the cross-track error is derived from the side
// sensors. Smooth turns switch steering off; wall following locks onto
// one side regardless of what the other side sees.
type Mode uint8

const (
	// SteerOff produces a zero cross-track error.
	SteerOff Mode = iota

	// SteerNormal uses whichever side walls are present.
	SteerNormal

	// SteerLeftFollow holds the left wall distance, ignoring the right.
	SteerLeftFollow

	// SteerRightFollow holds the right wall distance, ignoring the left.
	SteerRightFollow
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case SteerOff:
		return "off"
	case SteerNormal:
		return "normal"
	case SteerLeftFollow:
		return "left-follow"
	case SteerRightFollow:
		return "right-follow"
	default:
		return "unknown"
	}
}

// Channels carries one reading of the four optical channels, in robot
// order from left to right across the sensor board.
type Channels struct {
	LeftFront  float64
	LeftSide   float64
	RightSide  float64
	RightFront float64
}

// sub returns c minus d, clamped so no channel goes negative.
func (c Channels) sub(d Channels) Channels {
	return Channels{
		LeftFront:  clampZero(c.LeftFront - d.LeftFront),
		LeftSide:   clampZero(c.LeftSide - d.LeftSide),
		RightSide:  clampZero(c.RightSide - d.RightSide),
		RightFront: clampZero(c.RightFront - d.RightFront),
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Reading is the derived wall picture for one acquisition cycle.
type Reading struct {
	// Scaled holds the calibrated channel values. A wall at the
	// calibration distance reads about the nominal value.
	Scaled Channels

	// FrontSum is the sum of both scaled front channels.
	FrontSum float64

	// LeftWall, FrontWall and RightWall report wall presence against the
	// profile thresholds.
	LeftWall  bool
	FrontWall bool
	RightWall bool

	// CrossTrackError is the lane keeping error. Negative means the
	// robot has drifted left.
	CrossTrackError float64
}

// Snapshot is one published acquisition cycle. Snapshots are immutable;
// Seq increases by one per cycle so a consumer can detect fresh data.
type Snapshot struct {
	Reading

	// Seq numbers the acquisition cycles since the sampler started.
	Seq uint64

	// Raw holds the lit-minus-dark values before calibration scaling.
	Raw Channels

	// Mode is the steering mode the cycle was evaluated under.
	Mode Mode

	// Enabled reports whether the emitters were firing. When false the
	// reading is all zeros.
	Enabled bool
}

// StartSide identifies which front sensor the start gesture covered.
type StartSide uint8

const (
	StartNone StartSide = iota
	StartLeft
	StartRight
)

// String implements fmt.Stringer.
func (s StartSide) String() string {
	switch s {
	case StartLeft:
		return "left"
	case StartRight:
		return "right"
	default:
		return "none"
	}
}
