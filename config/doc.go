// Package config carries the tuning profile for a micromouse robot:
// cell geometry, motion-profile speeds, wall-sensor calibration, and the
// parameters of each turn primitive.
//
// What
//
//   - Profile bundles every tunable the navigation stack reads, in one
//     value that is cheap to copy and safe to share.
//   - Default() returns the stock profile for a classic 16x16 maze with
//     180 mm cells. The numbers come from a real, working robot.
//   - FromEnv() and Load() apply MOUSE_* environment overrides on top of
//     the defaults, so a robot can be retuned without recompiling.
//   - Validate() rejects profiles that would divide by zero, stall the
//     control loop, or make a turn geometrically impossible.
//
// Why
//
//   - Every robot build has slightly different sensors and motors. The
//     calibration readings and steering gains live here, not in code.
//   - Simulation and hardware share one profile type, so a controller
//     tuned against the simulator runs unchanged on the real thing.
//
// Units
//
//	Distances are millimetres, speeds mm/s, accelerations mm/s/s.
//	Angles are degrees, angular velocity deg/s, angular acceleration
//	deg/s/s. Positive angles rotate anticlockwise (a left turn).
//	Sensor readings are dimensionless, normalised so that a wall at
//	calibration distance reads about 100.
//
// Usage
//
//	prof, err := config.FromEnv()
//	if err != nil {
//	    // handle ErrBadEnvValue
//	}
//	if err := prof.Validate(); err != nil {
//	    // handle ErrBadGeometry, ErrBadTiming, ErrBadSpeed,
//	    // ErrBadCalibration or ErrBadTurn
//	}
package config
