package demo

import (
	"time"

	"ib2c/groupcfg"
	"ib2c/ib2c"
	"ib2c/port"
	"ib2c/quantity"
)

// VelocityOverrides lets a host application feed VelocityControl optional
// JSON-sourced parameter overrides before its group is constructed, the same
// override-hook pattern the teacher's services/config package exposes via
// its package-level EmbeddedConfigLookup var. Nil (the default) leaves both
// nodes' built-in defaults untouched.
var VelocityOverrides groupcfg.Overrides

// applyQuantityOverride rewrites target's magnitude from a float64 override
// while keeping its existing unit, using groupcfg.Overrides.Float64 so the
// override-parsing logic itself stays domain-agnostic.
func applyQuantityOverride(o groupcfg.Overrides, name string, target *port.ParameterPort[quantity.Quantity]) {
	cur := target.Get()
	magnitude := port.WithValue(cur.Value)
	o.Float64(name, magnitude)
	target.Set(quantity.Of(magnitude.Get(), cur.Unit))
}

// VelocityControl fuses a constantly-requested cruising velocity against
// a braking behaviour that takes over as an obstacle closes in, ported
// from g_velocity_control.rs. Its characteristic module is the fusion
// node itself, so the group's own activity/target_rating track whichever
// behaviour is currently winning.
type VelocityControl struct {
	ib2c.GroupMeta

	InFrontDistanceSensor *port.ReceivePort[quantity.Quantity]
	OutVelocity           port.SendPort[quantity.Quantity]
}

// NewVelocityControl constructs an unwired VelocityControl payload; Init
// does the wiring, called by ib2c.NewGroup.
func NewVelocityControl() *VelocityControl {
	return &VelocityControl{
		GroupMeta:             ib2c.NewGroupMeta(),
		InFrontDistanceSensor: port.NewReceivePort[quantity.Quantity](),
		OutVelocity:           port.NewSendPort[quantity.Quantity](),
	}
}

func (g *VelocityControl) Init(cycleTime time.Duration, parent *ib2c.Parent) {
	breakOnObstacle := ib2c.NewModule("BreakOnObstacle", cycleTime, *parent, NewBreakOnObstacle)
	must(breakOnObstacle.InDistance.ConnectToSource(g.InFrontDistanceSensor.Port()))

	constantVelocity := ib2c.NewModule("ConstantVelocity", cycleTime, *parent, NewConstantVelocity)

	if VelocityOverrides != nil {
		applyQuantityOverride(VelocityOverrides, "min_distance", breakOnObstacle.ParMinDistance)
		applyQuantityOverride(VelocityOverrides, "cruise_velocity", constantVelocity.ParVelocity)
	}

	maxFusion := ib2c.NewFusion[quantity.Quantity]("MaximumFusion", cycleTime, *parent)
	must(maxFusion.ConnectModule("BreakOnObstacle", breakOnObstacle, breakOnObstacle.OutVelocity))
	must(maxFusion.ConnectModule("ConstantVelocity", constantVelocity, constantVelocity.OutVelocity))

	must(g.OutVelocity.ConnectToSource(maxFusion.DataPort().Port()))
	must(g.SetCharacteristicModule(maxFusion))

	// Wiring is finished; stagger the three drivers' first cycle across a
	// slice of the cycle window instead of starting them all on the same
	// tick (SPEC_FULL.md §6, grounded on the teacher's poller stagger).
	sched := ib2c.NewScheduler(int64(cycleTime))
	sched.Stagger(cycleTime, breakOnObstacle.Spawn)
	sched.Stagger(cycleTime, constantVelocity.Spawn)
	sched.Stagger(cycleTime, maxFusion.Spawn)
	sched.Run()
}

// ControlSystem is the demo's root group: it routes a front distance
// sensor into VelocityControl for braking and into TurnAway (alongside
// the left/right sensors) for steering, publishing a combined
// velocity/turn-rate pair (ported from g_control_system.rs).
type ControlSystem struct {
	ib2c.GroupMeta

	InFrontDistanceSensor *port.ReceivePort[quantity.Quantity]
	InLeftDistanceSensor  *port.ReceivePort[quantity.Quantity]
	InRightDistanceSensor *port.ReceivePort[quantity.Quantity]

	OutVelocity  port.SendPort[quantity.Quantity]
	OutTurnRate  port.SendPort[quantity.Quantity]
}

// NewControlSystem constructs an unwired ControlSystem payload.
func NewControlSystem() *ControlSystem {
	return &ControlSystem{
		GroupMeta:             ib2c.NewGroupMeta(),
		InFrontDistanceSensor: port.NewReceivePort[quantity.Quantity](),
		InLeftDistanceSensor:  port.NewReceivePort[quantity.Quantity](),
		InRightDistanceSensor: port.NewReceivePort[quantity.Quantity](),
		OutVelocity:           port.NewSendPort[quantity.Quantity](),
		OutTurnRate:           port.NewSendPort[quantity.Quantity](),
	}
}

func (g *ControlSystem) Init(cycleTime time.Duration, parent *ib2c.Parent) {
	velocityControl := ib2c.NewGroup("VelocityControl", cycleTime, *parent, NewVelocityControl)
	must(velocityControl.InFrontDistanceSensor.ConnectToSource(g.InFrontDistanceSensor.Port()))
	must(g.OutVelocity.ConnectToSource(velocityControl.OutVelocity.Port()))

	turnAway := ib2c.NewModule("CurvateControl", cycleTime, *parent, NewTurnAway)
	must(turnAway.InDistance.ConnectToSource(g.InFrontDistanceSensor.Port()))
	must(turnAway.InLeftDistance.ConnectToSource(g.InLeftDistanceSensor.Port()))
	must(turnAway.InRightDistance.ConnectToSource(g.InRightDistanceSensor.Port()))
	must(g.OutTurnRate.ConnectToSource(turnAway.OutTurnRate.Port()))
	turnAway.Spawn()

	must(g.SetCharacteristicModule(velocityControl))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
