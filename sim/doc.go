// Package sim is a deterministic plant for the navigation stack: a
// simulated robot rolling through a known maze, exposed through the same
// Motion and Sensors seams the hardware uses.
//
// What
//
//   - Plant implements mouse.Motion and mouse.Sensors over a ground
//     truth maze whose walls are fully known.
//   - Time is poll-driven. Each query of MoveFinished, TurnFinished,
//     Position or Latest advances the simulation by one loop interval,
//     so a controller polling with a zero interval runs the whole maze
//     in milliseconds of wall time, always producing the same trace.
//   - Forward motion follows trapezoidal profiles that keep rolling at
//     their final speed once complete, exactly as the controller
//     assumes. Rotations snap the true heading on completion.
//   - The optical model: side channels read the nominal value when a
//     wall sits beside the sensed cell, and front channels follow an
//     inverse fourth power of the distance to the nearest wall ahead,
//     normalised to read the front reference with the robot centred one
//     half cell away.
//   - Driving through a wall is recorded as a Collision rather than
//     stopping the run, so a test can assert the whole outing was clean.
//     Reversing into a wall clamps instead; pressing the tail against a
//     wall is how the robot re-references its odometry.
//
// Why
//
//   - Every navigation property worth having is a property of the whole
//     loop: sense, map, flood, dispatch, move. The plant lets tests
//     exercise that loop end to end with no hardware and no clocks.
//
// Usage
//
//	truth := sim.CorridorMaze()
//	plant := sim.NewPlant(truth, prof)
//	m := mouse.New(maze.New(), plant, plant, prof,
//	    mouse.WithPollInterval(0))
//	err := m.SearchTo(ctx, maze.Location{X: 0, Y: 15})
//	// plant.Collisions() reports every wall the model drove through
package sim
