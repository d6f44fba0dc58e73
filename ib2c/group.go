package ib2c

import (
	"time"

	"ib2c/errcode"
	"ib2c/metasignal"
	"ib2c/port"
)

// GroupMeta is the declarative boilerplate a group payload embeds to gain
// MetaSignals and the characteristic-module wiring described in spec.md
// §4.6. It is Standard's group-shaped counterpart: instead of owning its
// own activity/target_rating, a group's meta-signals are passthroughs onto
// whichever child module was designated characteristic.
type GroupMeta struct {
	activity     port.SendPort[metasignal.MetaSignal]
	targetRating port.SendPort[metasignal.MetaSignal]
	stimulation  *port.ReceivePort[metasignal.MetaSignal]
	inhibition   *port.ReceivePort[metasignal.MetaSignal]
	deltaTime    time.Duration

	characteristicSet bool
}

// NewGroupMeta constructs a GroupMeta with its four ports freshly
// allocated and no characteristic module set yet.
func NewGroupMeta() GroupMeta {
	return GroupMeta{
		activity:     port.NewSendPort[metasignal.MetaSignal](),
		targetRating: port.NewSendPort[metasignal.MetaSignal](),
		stimulation:  port.NewReceivePort[metasignal.MetaSignal](),
		inhibition:   port.NewReceivePort[metasignal.MetaSignal](),
	}
}

// characteristic is the capability a child needs to expose for
// SetCharacteristicModule to wire it as the group's public face: its
// activity/target_rating outputs plus its stimulation/inhibition inputs.
type characteristic interface {
	ActivityPort() port.SendPort[metasignal.MetaSignal]
	TargetRatingPort() port.SendPort[metasignal.MetaSignal]
	StimulationPort() *port.ReceivePort[metasignal.MetaSignal]
	InhibitionPort() *port.ReceivePort[metasignal.MetaSignal]
}

// SetCharacteristicModule designates child as the group's public face
// (spec.md §4.6): the group's own activity/target_rating become
// passthroughs reading child's, and the group's stimulation/inhibition
// inputs become the source feeding child's. It may be called exactly once
// per group; a Group's Init must call it before returning.
func (g *GroupMeta) SetCharacteristicModule(child characteristic) error {
	if g.characteristicSet {
		return &errcode.E{
			C:  errcode.CharacteristicModuleAlreadySet,
			Op: "SetCharacteristicModule",
			Msg: "group already has a characteristic module",
		}
	}
	if err := g.activity.ConnectToSource(child.ActivityPort().Port()); err != nil {
		return err
	}
	if err := g.targetRating.ConnectToSource(child.TargetRatingPort().Port()); err != nil {
		return err
	}
	if err := child.StimulationPort().ConnectToSource(g.stimulation.Port()); err != nil {
		return err
	}
	if err := child.InhibitionPort().ConnectToSource(g.inhibition.Port()); err != nil {
		return err
	}
	g.characteristicSet = true
	return nil
}

func (g *GroupMeta) SetActivity(v metasignal.MetaSignal)        { g.activity.Send(v) }
func (g *GroupMeta) GetActivity() (metasignal.MetaSignal, bool) { return g.activity.Get() }

func (g *GroupMeta) SetTargetRating(v metasignal.MetaSignal) { g.targetRating.Send(v) }
func (g *GroupMeta) GetTargetRating() (metasignal.MetaSignal, bool) {
	return g.targetRating.Get()
}

func (g *GroupMeta) GetStimulation() (metasignal.MetaSignal, bool) { return g.stimulation.Get() }
func (g *GroupMeta) GetInhibition() (metasignal.MetaSignal, bool) { return g.inhibition.Get() }

func (g *GroupMeta) ActivityPort() port.SendPort[metasignal.MetaSignal]     { return g.activity }
func (g *GroupMeta) TargetRatingPort() port.SendPort[metasignal.MetaSignal] { return g.targetRating }
func (g *GroupMeta) StimulationPort() *port.ReceivePort[metasignal.MetaSignal] {
	return g.stimulation
}
func (g *GroupMeta) InhibitionPort() *port.ReceivePort[metasignal.MetaSignal] {
	return g.inhibition
}

func (g *GroupMeta) SetDeltaTime(d time.Duration) { g.deltaTime = d }
func (g *GroupMeta) DeltaTime() time.Duration     { return g.deltaTime }

// BehaviorGroup wraps a user Group payload, the same way BehaviorModule
// wraps a Module (spec.md §4.6). A group has no cycle of its own: Init
// constructs and spawns its children, after which the group is just a
// passthrough node in the telemetry tree.
type BehaviorGroup[G Group] struct {
	G

	name   string
	parent Parent
}

// NewGroup constructs a group, extends parent's path with name, and calls
// g's Init so it can build and spawn its children before returning.
func NewGroup[G Group](name string, cycleTime time.Duration, parent Parent, factory func() G) *BehaviorGroup[G] {
	child := parent.child(name)
	g := factory()
	g.Init(cycleTime, &child)
	return &BehaviorGroup[G]{
		G:      g,
		name:   name,
		parent: child,
	}
}

// Path returns this group's hierarchical telemetry path.
func (bg *BehaviorGroup[G]) Path() string { return bg.parent.Path }
