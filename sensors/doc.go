// Package sensors turns raw optical readings into the wall picture the
// navigation layer steers by: normalised channel values, wall presence
// flags, and a cross-track error for lane keeping.
//
// What
//
//   - Source is the hardware seam: anything that can flash emitters and
//     read four photodiode channels (two side, two front).
//   - Sampler runs the acquisition cycle at the control loop rate. Each
//     cycle reads the channels dark, reads them lit, subtracts ambient
//     light, and publishes an immutable Snapshot.
//   - Estimator converts one set of readings into scaled values, wall
//     flags and a cross-track error, honouring the active steering Mode.
//   - Steering is the PD controller that turns cross-track error into a
//     bounded angular correction.
//   - WaitForStart watches for the hand gesture that starts a run: cover
//     one front sensor briefly, then release.
//
// Why
//
//   - The control loop never blocks on acquisition. It reads the latest
//     Snapshot, which is replaced wholesale every sampling period, so a
//     half-updated wall picture can never be observed.
//   - Ambient light subtraction makes the readings venue-independent.
//
// Conventions
//
//	Scaled readings are dimensionless. A side wall at the calibration
//	distance reads about 100; closer is larger. The cross-track error is
//	negative when the robot has drifted left of the lane centre.
//
// Usage
//
//	s := sensors.NewSampler(src, prof)
//	go s.Run(ctx)
//	s.Enable()
//	snap := s.Latest()
//	if snap.FrontWall {
//	    // wall ahead
//	}
package sensors
