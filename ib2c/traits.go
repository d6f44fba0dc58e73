// Package ib2c is the behaviour-based control runtime core: the periodic
// module and fusion drivers, the group wrapper, and the declarative
// standard-port boilerplate every module and group carries (spec.md
// components E, F, G, J).
package ib2c

import (
	"time"

	"ib2c/metasignal"
	"ib2c/port"
)

// Module is the contract a behaviour module's payload type fulfils
// (spec.md §4.4). A Module embeds Standard (which supplies MetaSignals) and
// implements Transfere and TargetRating; the runtime discovers its
// Send/Receive/Parameter ports by reflection, so there is no separate
// PortParsing/UpdateReceivePorts method to hand-write (spec.md §4.7 "the
// chosen target language may realise this through ... reflection").
type Module interface {
	MetaSignals
	// Transfere is the user's transfer function: it reads Receive/Parameter
	// snapshots and writes SendPort values for one cycle.
	Transfere()
	// TargetRating reports how well this behaviour believes it can satisfy
	// its goal right now.
	TargetRating() metasignal.MetaSignal
}

// Group is the contract a group's payload type fulfils (spec.md §4.6). Init
// constructs children, wires their ports, and must end by designating a
// characteristic module via SetCharacteristicModule on the embedded
// GroupMeta.
type Group interface {
	MetaSignals
	Init(cycleTime time.Duration, parent *Parent)
}

// MetaSignals is the capability exposing getters/setters for the four
// standard meta-signals and delta_time (spec.md §4.7). Standard implements
// it for modules; GroupMeta implements it for groups. MaximumFusion does
// not implement it: it exposes only the four port accessors.
type MetaSignals interface {
	SetActivity(metasignal.MetaSignal)
	GetActivity() (metasignal.MetaSignal, bool)
	SetTargetRating(metasignal.MetaSignal)
	GetTargetRating() (metasignal.MetaSignal, bool)
	GetStimulation() (metasignal.MetaSignal, bool)
	GetInhibition() (metasignal.MetaSignal, bool)
	ActivityPort() port.SendPort[metasignal.MetaSignal]
	TargetRatingPort() port.SendPort[metasignal.MetaSignal]
	StimulationPort() *port.ReceivePort[metasignal.MetaSignal]
	InhibitionPort() *port.ReceivePort[metasignal.MetaSignal]
	SetDeltaTime(time.Duration)
	DeltaTime() time.Duration
}
