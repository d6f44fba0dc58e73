package ib2c

import (
	"time"

	"ib2c/metasignal"
	"ib2c/port"
)

// Standard is the declarative boilerplate spec.md §4.7 describes: every
// behaviour module embeds it to gain the four standard meta-signal ports
// (activity, target_rating, stimulation, inhibition) and a delta_time
// field, plus the MetaSignals capability, for free. It is the Go
// realisation of what rust_ib2c's `#[module]` attribute macro generates.
type Standard struct {
	activity     port.SendPort[metasignal.MetaSignal]
	targetRating port.SendPort[metasignal.MetaSignal]
	stimulation  *port.ReceivePort[metasignal.MetaSignal]
	inhibition   *port.ReceivePort[metasignal.MetaSignal]
	deltaTime    time.Duration
}

// NewStandard constructs a Standard with its four ports freshly allocated.
// Module constructors call this once, assigning the result to their
// embedded Standard field.
func NewStandard() Standard {
	return Standard{
		activity:     port.NewSendPort[metasignal.MetaSignal](),
		targetRating: port.NewSendPort[metasignal.MetaSignal](),
		stimulation:  port.NewReceivePort[metasignal.MetaSignal](),
		inhibition:   port.NewReceivePort[metasignal.MetaSignal](),
	}
}

func (s *Standard) SetActivity(v metasignal.MetaSignal)     { s.activity.Send(v) }
func (s *Standard) GetActivity() (metasignal.MetaSignal, bool) { return s.activity.Get() }

func (s *Standard) SetTargetRating(v metasignal.MetaSignal) { s.targetRating.Send(v) }
func (s *Standard) GetTargetRating() (metasignal.MetaSignal, bool) {
	return s.targetRating.Get()
}

// GetStimulation returns the module's stimulation snapshot as refreshed by
// the driver at the start of the last cycle.
func (s *Standard) GetStimulation() (metasignal.MetaSignal, bool) { return s.stimulation.Get() }

// GetInhibition returns the module's inhibition snapshot as refreshed by
// the driver at the start of the last cycle.
func (s *Standard) GetInhibition() (metasignal.MetaSignal, bool) { return s.inhibition.Get() }

func (s *Standard) ActivityPort() port.SendPort[metasignal.MetaSignal]     { return s.activity }
func (s *Standard) TargetRatingPort() port.SendPort[metasignal.MetaSignal] { return s.targetRating }
func (s *Standard) StimulationPort() *port.ReceivePort[metasignal.MetaSignal] {
	return s.stimulation
}
func (s *Standard) InhibitionPort() *port.ReceivePort[metasignal.MetaSignal] {
	return s.inhibition
}

func (s *Standard) SetDeltaTime(d time.Duration) { s.deltaTime = d }
func (s *Standard) DeltaTime() time.Duration     { return s.deltaTime }
