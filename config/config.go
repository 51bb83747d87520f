package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nikitarc/mazerunner-core/maze"
)

// Sentinel errors for profile validation and environment parsing.
var (
	// ErrBadGeometry is returned when cell dimensions or reference
	// positions are inconsistent.
	ErrBadGeometry = errors.New("config: bad geometry")

	// ErrBadTiming is returned when the control loop interval is not
	// a positive duration.
	ErrBadTiming = errors.New("config: bad timing")

	// ErrBadSpeed is returned when a speed or acceleration is not positive.
	ErrBadSpeed = errors.New("config: bad speed")

	// ErrBadCalibration is returned when sensor calibration values would
	// divide by zero or order thresholds nonsensically.
	ErrBadCalibration = errors.New("config: bad calibration")

	// ErrBadTurn is returned when a turn parameter set cannot describe
	// a physical turn.
	ErrBadTurn = errors.New("config: bad turn parameters")

	// ErrBadEnvValue is returned when a MOUSE_* environment variable is
	// set but cannot be parsed.
	ErrBadEnvValue = errors.New("config: bad environment value")
)

// TurnParams describes one smooth turn primitive. The robot keeps rolling
// at Speed, pivots through Angle once the trigger fires, runs straight for
// RunOut, and re-anchors its forward odometry in the new cell.
type TurnParams struct {
	// Speed is the forward speed held through the arc, mm/s.
	Speed float64

	// RunIn is the straight distance past the cell boundary at which the
	// pivot begins when no front wall forces it earlier, mm.
	RunIn float64

	// RunOut is the straight distance rolled after the arc completes, mm.
	RunOut float64

	// Angle is the total rotation in degrees. Positive is anticlockwise.
	Angle float64

	// Omega is the peak angular velocity through the arc, deg/s.
	Omega float64

	// Alpha is the angular acceleration into and out of the arc, deg/s/s.
	Alpha float64

	// Trigger is the front sensor sum that starts the arc early. Side
	// wall adjustments from the profile are added on top at run time.
	Trigger float64
}

// Profile is the complete tuning set for one robot build. The zero value
// is not usable; start from Default or FromEnv.
type Profile struct {
	// FullCell is the side length of one maze cell, mm.
	FullCell float64

	// HalfCell is the distance from a cell boundary to its centre, mm.
	HalfCell float64

	// SensingPosition is the odometer reading, measured from the entry
	// boundary of the current cell, at which walls are sampled and the
	// next move is chosen. It sits just short of the far boundary.
	SensingPosition float64

	// BackWallToCenter is the forward distance from a rear wall touch to
	// the cell centre, mm. Used when starting from a hand placement
	// against the back wall.
	BackWallToCenter float64

	// LoopInterval is the period of the sensor sampling loop. Control
	// decisions poll at the same rate.
	LoopInterval time.Duration

	// SearchSpeed is the cruise speed between cells while mapping, mm/s.
	SearchSpeed float64

	// SearchAccel is the forward acceleration for search moves, mm/s/s.
	SearchAccel float64

	// RunSpeed is the cruise speed for straights on a speed run, mm/s.
	RunSpeed float64

	// SpinTurnOmega is the peak angular velocity of an in-place turn, deg/s.
	SpinTurnOmega float64

	// SpinTurnAlpha is the angular acceleration of an in-place turn, deg/s/s.
	SpinTurnAlpha float64

	// FrontCalibration, LeftCalibration and RightCalibration are the raw
	// sensor readings recorded at the standard calibration distance.
	// Normalisation divides by these, so they must be positive.
	FrontCalibration float64
	LeftCalibration  float64
	RightCalibration float64

	// SideNominal and FrontNominal are the normalised readings that the
	// calibration distances map to.
	SideNominal  float64
	FrontNominal float64

	// LeftThreshold and RightThreshold are the normalised side readings
	// above which a wall is considered present.
	LeftThreshold  float64
	RightThreshold float64

	// FrontThreshold is the front sum above which a wall ahead is
	// considered present.
	FrontThreshold float64

	// FrontReference is the front sum seen when the robot sits centred
	// in a cell with a wall ahead. Used to square up after turns.
	FrontReference float64

	// FrontSaturation is the front sum above which the side sensors are
	// too polluted by the wall ahead to steer from.
	FrontSaturation float64

	// SteeringKP and SteeringKD are the proportional and derivative
	// gains of the steering controller.
	SteeringKP float64
	SteeringKD float64

	// SteeringAdjustLimit clamps the steering correction, deg/s.
	SteeringAdjustLimit float64

	// LeftWallAdjust and RightWallAdjust are added to a turn trigger when
	// the corresponding side wall is present, compensating for light
	// spilling onto the front sensors.
	LeftWallAdjust  float64
	RightWallAdjust float64

	// TurnLeft and TurnRight are the smooth turn primitives used while
	// exploring at speed.
	TurnLeft  TurnParams
	TurnRight TurnParams

	// Goal is the target cell for a full search of the maze.
	Goal maze.Location
}

// Default returns the stock profile: a 16x16 classic maze with 180 mm
// cells and the tuning of a known-good robot build.
func Default() Profile {
	return Profile{
		FullCell:         180,
		HalfCell:         90,
		SensingPosition:  170,
		BackWallToCenter: 48,

		LoopInterval: 2 * time.Millisecond,

		SearchSpeed:   400,
		SearchAccel:   3000,
		RunSpeed:      800,
		SpinTurnOmega: 360,
		SpinTurnAlpha: 3600,

		FrontCalibration: 70,
		LeftCalibration:  97,
		RightCalibration: 92,
		SideNominal:      100,
		FrontNominal:     100,

		LeftThreshold:   40,
		RightThreshold:  40,
		FrontThreshold:  20,
		FrontReference:  850,
		FrontSaturation: 100,

		SteeringKP:          0.25,
		SteeringKD:          0.00,
		SteeringAdjustLimit: 10.0,

		LeftWallAdjust:  10,
		RightWallAdjust: 6,

		TurnLeft: TurnParams{
			Speed:   300,
			RunIn:   20,
			RunOut:  10,
			Angle:   90,
			Omega:   280,
			Alpha:   4000,
			Trigger: 115,
		},
		TurnRight: TurnParams{
			Speed:   300,
			RunIn:   20,
			RunOut:  10,
			Angle:   -90,
			Omega:   280,
			Alpha:   4000,
			Trigger: 115,
		},

		Goal: maze.DefaultGoal,
	}
}

// Validate checks the profile for values that would break the navigation
// stack. It returns nil when the profile is usable.
func (p Profile) Validate() error {
	if p.FullCell <= 0 || p.HalfCell <= 0 || p.HalfCell >= p.FullCell {
		return fmt.Errorf("%w: full cell %.1f, half cell %.1f", ErrBadGeometry, p.FullCell, p.HalfCell)
	}
	if p.SensingPosition <= p.HalfCell || p.SensingPosition >= p.FullCell {
		return fmt.Errorf("%w: sensing position %.1f must lie between cell centre and boundary", ErrBadGeometry, p.SensingPosition)
	}
	if p.BackWallToCenter <= 0 || p.BackWallToCenter >= p.HalfCell {
		return fmt.Errorf("%w: back wall to centre %.1f", ErrBadGeometry, p.BackWallToCenter)
	}
	if !p.Goal.InBounds() {
		return fmt.Errorf("%w: goal %v out of bounds", ErrBadGeometry, p.Goal)
	}
	if p.LoopInterval <= 0 {
		return fmt.Errorf("%w: loop interval %v", ErrBadTiming, p.LoopInterval)
	}
	if p.SearchSpeed <= 0 || p.SearchAccel <= 0 || p.RunSpeed <= 0 {
		return fmt.Errorf("%w: search %.0f accel %.0f run %.0f", ErrBadSpeed, p.SearchSpeed, p.SearchAccel, p.RunSpeed)
	}
	if p.SpinTurnOmega <= 0 || p.SpinTurnAlpha <= 0 {
		return fmt.Errorf("%w: spin omega %.0f alpha %.0f", ErrBadSpeed, p.SpinTurnOmega, p.SpinTurnAlpha)
	}
	if p.FrontCalibration <= 0 || p.LeftCalibration <= 0 || p.RightCalibration <= 0 {
		return fmt.Errorf("%w: calibration readings must be positive", ErrBadCalibration)
	}
	if p.SideNominal <= 0 || p.FrontNominal <= 0 {
		return fmt.Errorf("%w: nominal readings must be positive", ErrBadCalibration)
	}
	if p.FrontReference <= p.FrontThreshold {
		return fmt.Errorf("%w: front reference %.0f must exceed front threshold %.0f", ErrBadCalibration, p.FrontReference, p.FrontThreshold)
	}
	if err := p.TurnLeft.validate("left"); err != nil {
		return err
	}
	if err := p.TurnRight.validate("right"); err != nil {
		return err
	}
	if p.TurnLeft.Angle <= 0 {
		return fmt.Errorf("%w: left turn angle %.0f must be anticlockwise", ErrBadTurn, p.TurnLeft.Angle)
	}
	if p.TurnRight.Angle >= 0 {
		return fmt.Errorf("%w: right turn angle %.0f must be clockwise", ErrBadTurn, p.TurnRight.Angle)
	}
	return nil
}

func (t TurnParams) validate(name string) error {
	if t.Speed <= 0 || t.Omega <= 0 || t.Alpha <= 0 {
		return fmt.Errorf("%w: %s turn speed %.0f omega %.0f alpha %.0f", ErrBadTurn, name, t.Speed, t.Omega, t.Alpha)
	}
	if t.Angle == 0 {
		return fmt.Errorf("%w: %s turn angle is zero", ErrBadTurn, name)
	}
	if t.RunIn < 0 || t.RunOut < 0 {
		return fmt.Errorf("%w: %s turn run in %.0f run out %.0f", ErrBadTurn, name, t.RunIn, t.RunOut)
	}
	return nil
}
