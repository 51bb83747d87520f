// Package mouse is the navigation controller: it reads the wall sensors,
// maintains the maze map, and sequences motion primitives to search and
// run a classic 16x16 micromouse maze.
//
// What
//
//   - Mouse couples a maze.Maze map with a Motion drive, a Sensors feed
//     and a Reporter trace sink, all supplied as interfaces.
//   - SearchTo drives to a target cell, mapping walls as it goes and
//     treating unexplored walls as open.
//   - RunTo drives to a target over confirmed exits only, refusing routes
//     through unexplored territory.
//   - FollowTo explores by the left-hand rule, still recording walls.
//   - SearchMaze is the complete outing: wait for the start gesture,
//     search to the goal, turn, and search back home.
//   - TurnToFace spins in place to a given heading between runs.
//
// Why
//
//   - The decision cycle never stops the robot. Walls are read just short
//     of each cell boundary, the map is updated, the flood recomputed and
//     the turn dispatched, all while rolling at search speed.
//   - Every mode shares one decision loop; only the choice of the next
//     heading differs. A planned search floods the map, a wall follower
//     just looks at the walls beside it.
//
// Conventions
//
//	Forward positions are millimetres in a frame re-anchored cell by
//	cell; the sensing position sits just short of the next boundary.
//	Positive turn angles rotate anticlockwise. Context cancellation is
//	honoured at decision points only: a motion primitive that has been
//	started always completes, because half a turn leaves the robot in a
//	state no map can describe.
//
// Usage
//
//	m := mouse.New(mz, drive, feed, prof, mouse.WithReporter(rep))
//	if err := m.SearchMaze(ctx); err != nil {
//	    // ErrTargetUnreachable, ErrBlocked, ErrBusy or ctx.Err()
//	}
package mouse
