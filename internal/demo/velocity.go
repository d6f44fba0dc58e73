// Package demo ports the worked velocity-control and battery/lightbulb
// behaviour trees used to exercise and demonstrate the runtime, the same
// role the teacher's cmd/boardtest and cmd/uart-test demo binaries play
// for the hardware services: a small, runnable scenario that exercises
// every moving part rather than a synthetic unit test fixture.
package demo

import (
	"time"

	"ib2c/ib2c"
	"ib2c/metasignal"
	"ib2c/port"
	"ib2c/quantity"
)

const (
	unitMeters          = "m"
	unitMetersPerSecond = "m/s"
	unitRadiansPerSecond = "rad/s"
)

func meters(v float64) quantity.Quantity          { return quantity.Of(v, unitMeters) }
func metersPerSecond(v float64) quantity.Quantity { return quantity.Of(v, unitMetersPerSecond) }
func radiansPerSecond(v float64) quantity.Quantity {
	return quantity.Of(v, unitRadiansPerSecond)
}

// ConstantVelocity always asks for par_velocity (default 1 m/s), and rates
// its own target as HIGH unconditionally: it never defers to anything,
// only to a competitor with a higher activity in a fusion (ported from
// m_constant_velocity.rs).
type ConstantVelocity struct {
	ib2c.Standard

	ParVelocity *port.ParameterPort[quantity.Quantity]
	OutVelocity port.SendPort[quantity.Quantity]
}

// NewConstantVelocity constructs a ConstantVelocity with its default
// 1 m/s parameter.
func NewConstantVelocity() *ConstantVelocity {
	return &ConstantVelocity{
		Standard:    ib2c.NewStandard(),
		ParVelocity: port.WithValue(metersPerSecond(1.0)),
		OutVelocity: port.NewSendPort[quantity.Quantity](),
	}
}

func (m *ConstantVelocity) Transfere() {
	m.OutVelocity.Send(m.ParVelocity.Get())
}

func (m *ConstantVelocity) TargetRating() metasignal.MetaSignal {
	return metasignal.HIGH
}

// BreakOnObstacle slows and eventually stops as in_distance closes under
// par_min_distance, rating itself HIGH only while actively intervening
// (ported from m_break_on_obstacle.rs).
type BreakOnObstacle struct {
	ib2c.Standard

	ParMinDistance *port.ParameterPort[quantity.Quantity]
	InDistance     *port.ReceivePort[quantity.Quantity]
	OutVelocity    port.SendPort[quantity.Quantity]

	obstacleDetected bool
}

// NewBreakOnObstacle constructs a BreakOnObstacle with its default 1 m
// minimum-distance parameter.
func NewBreakOnObstacle() *BreakOnObstacle {
	return &BreakOnObstacle{
		Standard:       ib2c.NewStandard(),
		ParMinDistance: port.WithValue(meters(1.0)),
		InDistance:     port.NewReceivePort[quantity.Quantity](),
		OutVelocity:    port.NewSendPort[quantity.Quantity](),
	}
}

func (m *BreakOnObstacle) Transfere() {
	distance := m.InDistance.GetOrDefault()
	minDistance := m.ParMinDistance.Get()

	switch {
	case distance.Value < 0.20:
		m.OutVelocity.Send(metersPerSecond(0.0))
		m.obstacleDetected = true
	case distance.Value < minDistance.Value:
		speedFactor := minDistance.Value / distance.Value
		m.OutVelocity.Send(metersPerSecond(1.0 / speedFactor))
		m.obstacleDetected = true
	default:
		m.obstacleDetected = false
	}
}

func (m *BreakOnObstacle) TargetRating() metasignal.MetaSignal {
	if m.obstacleDetected {
		return metasignal.HIGH
	}
	return metasignal.LOW
}

// TurnAway steers away from whichever side is closer once the front
// sensor reports an obstacle inside par_min_distance (ported from
// m_turn_away.rs).
type TurnAway struct {
	ib2c.Standard

	ParMinDistance  *port.ParameterPort[quantity.Quantity]
	InDistance      *port.ReceivePort[quantity.Quantity]
	InLeftDistance  *port.ReceivePort[quantity.Quantity]
	InRightDistance *port.ReceivePort[quantity.Quantity]
	OutTurnRate     port.SendPort[quantity.Quantity]

	obstacleDetected bool
}

// NewTurnAway constructs a TurnAway with its default 2 m minimum-distance
// parameter.
func NewTurnAway() *TurnAway {
	return &TurnAway{
		Standard:        ib2c.NewStandard(),
		ParMinDistance:  port.WithValue(meters(2.0)),
		InDistance:      port.NewReceivePort[quantity.Quantity](),
		InLeftDistance:  port.NewReceivePort[quantity.Quantity](),
		InRightDistance: port.NewReceivePort[quantity.Quantity](),
		OutTurnRate:     port.NewSendPort[quantity.Quantity](),
	}
}

func (m *TurnAway) Transfere() {
	distance, ok := m.InDistance.Get()
	if !ok {
		return
	}
	if distance.Value < m.ParMinDistance.Get().Value {
		if m.InLeftDistance.GetOrDefault().Value < m.InRightDistance.GetOrDefault().Value {
			m.OutTurnRate.Send(radiansPerSecond(-1.0))
		} else {
			m.OutTurnRate.Send(radiansPerSecond(1.0))
		}
		m.obstacleDetected = true
	} else {
		m.OutTurnRate.Send(radiansPerSecond(0.0))
		m.obstacleDetected = false
	}
}

func (m *TurnAway) TargetRating() metasignal.MetaSignal {
	if m.obstacleDetected {
		return metasignal.HIGH
	}
	return metasignal.LOW
}

// DefaultCycleTime is the cycle period the demo wires every node with,
// matching the original's 400ms battery demo and the velocity-control
// system (ported from testing/src/main.rs, which uses one shared period
// for every node in a scenario).
const DefaultCycleTime = 400 * time.Millisecond
