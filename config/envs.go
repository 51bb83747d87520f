package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// envReader applies environment overrides with a sticky first error, so a
// chain of lookups needs only one check at the end.
type envReader struct {
	err error
}

func (r *envReader) float(key string, dst *float64) {
	if r.err != nil {
		return
	}
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrBadEnvValue, key, raw)
		return
	}
	*dst = v
}

func (r *envReader) int(key string, dst *int) {
	if r.err != nil {
		return
	}
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrBadEnvValue, key, raw)
		return
	}
	*dst = v
}

func (r *envReader) duration(key string, dst *time.Duration) {
	if r.err != nil {
		return
	}
	raw, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrBadEnvValue, key, raw)
		return
	}
	*dst = v
}

// FromEnv returns the default profile with any MOUSE_* environment
// overrides applied. Unset variables keep their defaults. A variable that
// is set but unparsable yields ErrBadEnvValue.
func FromEnv() (Profile, error) {
	p := Default()
	r := envReader{}

	r.duration("MOUSE_LOOP_INTERVAL", &p.LoopInterval)

	r.float("MOUSE_SEARCH_SPEED", &p.SearchSpeed)
	r.float("MOUSE_SEARCH_ACCEL", &p.SearchAccel)
	r.float("MOUSE_RUN_SPEED", &p.RunSpeed)
	r.float("MOUSE_SPIN_OMEGA", &p.SpinTurnOmega)
	r.float("MOUSE_SPIN_ALPHA", &p.SpinTurnAlpha)

	r.float("MOUSE_FRONT_CAL", &p.FrontCalibration)
	r.float("MOUSE_LEFT_CAL", &p.LeftCalibration)
	r.float("MOUSE_RIGHT_CAL", &p.RightCalibration)
	r.float("MOUSE_LEFT_THRESHOLD", &p.LeftThreshold)
	r.float("MOUSE_RIGHT_THRESHOLD", &p.RightThreshold)
	r.float("MOUSE_FRONT_THRESHOLD", &p.FrontThreshold)
	r.float("MOUSE_FRONT_REFERENCE", &p.FrontReference)

	r.float("MOUSE_STEERING_KP", &p.SteeringKP)
	r.float("MOUSE_STEERING_KD", &p.SteeringKD)
	r.float("MOUSE_STEERING_LIMIT", &p.SteeringAdjustLimit)

	// Turn tuning applies to both directions; the angles keep their signs.
	r.float("MOUSE_TURN_SPEED", &p.TurnLeft.Speed)
	p.TurnRight.Speed = p.TurnLeft.Speed
	r.float("MOUSE_TURN_TRIGGER", &p.TurnLeft.Trigger)
	p.TurnRight.Trigger = p.TurnLeft.Trigger

	r.int("MOUSE_GOAL_X", &p.Goal.X)
	r.int("MOUSE_GOAL_Y", &p.Goal.Y)

	if r.err != nil {
		return Profile{}, r.err
	}
	return p, nil
}

// Load reads the named .env files (or ./.env when none are given) into the
// process environment, then builds a profile with FromEnv. A missing .env
// file is not an error; the defaults simply stand.
func Load(files ...string) (Profile, error) {
	if err := godotenv.Load(files...); err != nil {
		log.WithError(err).Debug("config: no .env file loaded")
	}
	return FromEnv()
}
