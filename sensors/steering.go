package sensors

import "github.com/Nikitarc/mazerunner-core/config"

// Estimator derives the wall picture from raw channel values. It is a
// pure value; methods never mutate state, so one Estimator may be shared
// by the sampler and any diagnostics.
type Estimator struct {
	prof config.Profile
}

// NewEstimator builds an estimator from a robot profile.
func NewEstimator(prof config.Profile) Estimator {
	return Estimator{prof: prof}
}

// Scale normalises raw channel values so that a wall at the calibration
// distance reads the nominal value.
func (e Estimator) Scale(raw Channels) Channels {
	p := e.prof
	return Channels{
		LeftFront:  raw.LeftFront * p.FrontNominal / p.FrontCalibration,
		LeftSide:   raw.LeftSide * p.SideNominal / p.LeftCalibration,
		RightSide:  raw.RightSide * p.SideNominal / p.RightCalibration,
		RightFront: raw.RightFront * p.FrontNominal / p.FrontCalibration,
	}
}

// Evaluate produces the derived reading for one acquisition cycle under
// the given steering mode.
func (e Estimator) Evaluate(raw Channels, mode Mode) Reading {
	p := e.prof
	sc := e.Scale(raw)

	r := Reading{
		Scaled:    sc,
		FrontSum:  sc.LeftFront + sc.RightFront,
		LeftWall:  sc.LeftSide > p.LeftThreshold,
		RightWall: sc.RightSide > p.RightThreshold,
	}
	r.FrontWall = r.FrontSum > p.FrontThreshold
	r.CrossTrackError = e.crossTrack(r, mode)
	return r
}

// crossTrack computes the lane keeping error. Too far left is negative.
func (e Estimator) crossTrack(r Reading, mode Mode) float64 {
	p := e.prof
	leftErr := p.SideNominal - r.Scaled.LeftSide
	rightErr := p.SideNominal - r.Scaled.RightSide

	var err float64
	switch mode {
	case SteerNormal:
		switch {
		case r.LeftWall && r.RightWall:
			err = leftErr - rightErr
		case r.LeftWall:
			err = 2 * leftErr
		case r.RightWall:
			err = -2 * rightErr
		}
	case SteerLeftFollow:
		err = 2 * leftErr
	case SteerRightFollow:
		err = -2 * rightErr
	case SteerOff:
		// stays zero
	}

	// A wall ahead floods the side sensors; their error is meaningless.
	if r.FrontSum > p.FrontSaturation {
		err = 0
	}
	return err
}

// Steering is the PD controller that converts cross-track error into a
// bounded angular correction, in degrees, applied on top of the encoder
// angle each control period.
type Steering struct {
	kp      float64
	kd      float64
	limit   float64
	dt      float64
	lastErr float64
}

// NewSteering builds the controller from a robot profile.
func NewSteering(prof config.Profile) *Steering {
	return &Steering{
		kp:    prof.SteeringKP,
		kd:    prof.SteeringKD,
		limit: prof.SteeringAdjustLimit,
		dt:    prof.LoopInterval.Seconds(),
	}
}

// Adjustment returns the correction for the current cross-track error.
// The derivative term works on the raw error difference between calls.
func (s *Steering) Adjustment(err float64) float64 {
	pTerm := s.kp * err
	dTerm := s.kd * (err - s.lastErr)
	s.lastErr = err

	adj := (pTerm + dTerm) * s.dt
	if adj > s.limit {
		adj = s.limit
	}
	if adj < -s.limit {
		adj = -s.limit
	}
	return adj
}

// Reset primes the controller after a steering mode change so the
// derivative term does not spike on the first cycle.
func (s *Steering) Reset(current float64) {
	s.lastErr = current
}
