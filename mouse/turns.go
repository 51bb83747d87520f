package mouse

import (
	"github.com/Nikitarc/mazerunner-core/config"
	"github.com/Nikitarc/mazerunner-core/maze"
	"github.com/Nikitarc/mazerunner-core/sensors"
)

// smoothTurn executes one moving turn. On entry the robot is just short
// of the cell boundary at cruise speed. It rolls through the boundary
// while slowing to the turn speed, pivots when either the planned
// distance arrives or the front wall reading forces it, runs out
// straight, and re-anchors the odometer one sensing span into the new
// cell's frame.
//
// The sensor trigger matters: the planned distance assumes perfect
// odometry, while the wall ahead is ground truth. Whenever a wall is
// there to see, the turn squares itself up against it.
func (m *Mouse) smoothTurn(tp config.TurnParams, snap sensors.Snapshot, cruise float64) {
	m.sensors.SetSteeringMode(sensors.SteerOff)

	trigger := tp.Trigger
	if snap.LeftWall {
		trigger += m.prof.LeftWallAdjust
	}
	if snap.RightWall {
		trigger += m.prof.RightWallAdjust
	}

	turnPoint := m.prof.FullCell + tp.RunIn
	m.motion.Move(turnPoint-m.motion.Position(), m.motion.Velocity(), tp.Speed, m.prof.SearchAccel)

	sensorPivot := false
	for !m.motion.MoveFinished() {
		if m.sensors.Latest().FrontSum > trigger {
			sensorPivot = true
			break
		}
		m.idle()
	}
	if sensorPivot {
		m.report(ActionSensorPivot)
	} else {
		m.report(ActionDistancePivot)
	}

	m.motion.Turn(tp.Angle, tp.Omega, 0, tp.Alpha)
	m.waitTurnFinished()

	m.motion.Move(tp.RunOut, cruise, cruise, m.prof.SearchAccel)
	m.waitMoveFinished()
	m.motion.SetPosition(m.prof.SensingPosition)
}

// turnAround reverses direction inside the cell being entered: brake to
// a stop at its centre, squaring up on the front wall when there is
// one, spin a half turn, and set off into the cell behind.
func (m *Mouse) turnAround(snap sensors.Snapshot, cruise float64) {
	m.sensors.SetSteeringMode(sensors.SteerOff)

	m.brakeToCenter(snap)

	m.motion.Turn(-180, m.prof.SpinTurnOmega, 0, m.prof.SpinTurnAlpha)
	m.waitTurnFinished()

	exitRun := m.prof.SensingPosition - m.prof.FullCell + m.prof.HalfCell
	m.motion.Move(exitRun, cruise, cruise, m.prof.SearchAccel)
	m.waitMoveFinished()
	m.motion.SetPosition(m.prof.SensingPosition)
}

// stopAndCenter is the terminal stop of a run: brake from the sensing
// position to rest at the centre of the cell being entered.
func (m *Mouse) stopAndCenter(snap sensors.Snapshot) {
	m.brakeToCenter(snap)
	m.sensors.SetSteeringMode(sensors.SteerOff)
}

// brakeToCenter slows into the cell ahead and stops at its centre. With
// a wall ahead the front reference reading calls the stop; the creep at
// the end gives the sensors time to do so. Without one the odometer has
// to be trusted.
func (m *Mouse) brakeToCenter(snap sensors.Snapshot) {
	remaining := m.prof.FullCell + m.prof.HalfCell - m.motion.Position()
	m.motion.Move(remaining, m.motion.Velocity(), creepSpeed, m.prof.SearchAccel)

	if snap.FrontWall {
		for m.sensors.Latest().FrontSum < m.prof.FrontReference {
			m.idle()
		}
	} else {
		m.waitMoveFinished()
	}
	m.motion.Stop()
}

// TurnToFace spins in place until the mouse faces h. The robot must be
// stationary and near a cell centre, which is how every run leaves it.
// Half turns alternate direction from one call to the next so repeated
// about-faces do not wind up in the same sense.
func (m *Mouse) TurnToFace(h maze.Heading) {
	if !h.Valid() || h == m.pose.Heading {
		return
	}
	m.sensors.SetSteeringMode(sensors.SteerOff)

	switch maze.TurnBetween(m.pose.Heading, h) {
	case maze.Right:
		m.spinTurn(-90)
	case maze.Back:
		if m.spinFlip {
			m.spinTurn(-180)
		} else {
			m.spinTurn(180)
		}
		m.spinFlip = !m.spinFlip
	case maze.Left:
		m.spinTurn(90)
	}
	m.pose.Heading = h
}

// spinTurn rotates in place through angle degrees from a standstill.
func (m *Mouse) spinTurn(angle float64) {
	m.motion.Stop()
	m.motion.Turn(angle, m.prof.SpinTurnOmega, 0, m.prof.SpinTurnAlpha)
	m.waitTurnFinished()
}
