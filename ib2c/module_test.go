package ib2c

import (
	"testing"
	"time"

	"ib2c/metasignal"
	"ib2c/port"
)

// echoModule is a minimal Module used to drive BehaviorModule.cycleOnce
// directly in tests: its TargetRating is whatever ParTarget holds, its
// stimulation/inhibition come from the standard ports like any real
// module.
type echoModule struct {
	Standard
	ParTarget *port.ParameterPort[metasignal.MetaSignal]
}

func newEchoModule() *echoModule {
	return &echoModule{
		Standard:  NewStandard(),
		ParTarget: port.WithValue(metasignal.HIGH),
	}
}

func (m *echoModule) Transfere() {}

func (m *echoModule) TargetRating() metasignal.MetaSignal {
	return m.ParTarget.Get()
}

// TestModuleDefaultsToFullPotential is spec.md §8 P3's third case: with
// neither stimulation nor inhibition connected, potential = HIGH.
func TestModuleDefaultsToFullPotential(t *testing.T) {
	parent := Root("test")
	bm := NewModule("echo", time.Hour, parent, newEchoModule)

	bm.cycleOnce(time.Now())

	activity, ok := bm.GetActivity()
	if !ok || activity != metasignal.HIGH {
		t.Fatalf("activity = (%v,%v), want (HIGH,true)", activity, ok)
	}
}

// TestModulePartialInputs mirrors spec.md §8 scenario 2: stimulation
// unconnected, inhibition = 0.25, target = 0.8 ⇒ activity = 0.75.
func TestModulePartialInputs(t *testing.T) {
	parent := Root("test")
	bm := NewModule("echo", time.Hour, parent, newEchoModule)
	bm.ParTarget.Set(0.8)

	inhibitionSource := port.NewSendPort[metasignal.MetaSignal]()
	if err := bm.InhibitionPort().ConnectToSource(inhibitionSource.Port()); err != nil {
		t.Fatalf("connect inhibition: %v", err)
	}
	inhibitionSource.Send(0.25)

	bm.cycleOnce(time.Now())

	activity, ok := bm.GetActivity()
	if !ok || activity != 0.75 {
		t.Fatalf("activity = (%v,%v), want (0.75,true)", activity, ok)
	}
}

// TestModuleActivityBounds is property P2 exercised end to end through a
// real BehaviorModule cycle rather than the bare metasignal algebra.
func TestModuleActivityBounds(t *testing.T) {
	parent := Root("test")
	bm := NewModule("echo", time.Hour, parent, newEchoModule)
	bm.ParTarget.Set(0.3)

	stimSource := port.NewSendPort[metasignal.MetaSignal]()
	inhibSource := port.NewSendPort[metasignal.MetaSignal]()
	if err := bm.StimulationPort().ConnectToSource(stimSource.Port()); err != nil {
		t.Fatalf("connect stimulation: %v", err)
	}
	if err := bm.InhibitionPort().ConnectToSource(inhibSource.Port()); err != nil {
		t.Fatalf("connect inhibition: %v", err)
	}
	stimSource.Send(0.9)
	inhibSource.Send(0.1)

	bm.cycleOnce(time.Now())

	activity, _ := bm.GetActivity()
	if activity != 0.3 {
		t.Fatalf("activity = %v, want min(stim=0.9, HIGH-inhib=0.9, target=0.3) = 0.3", activity)
	}
}

// TestCycleTimeFloor is property P6: over several cycles of a module
// whose transfer function is instant, the loop keeps cycling and starts
// no more than one cycle per configured cycle_time, so ten cycle windows
// hold at most eleven cycle starts.
func TestCycleTimeFloor(t *testing.T) {
	parent := Root("test")
	const cycleTime = 20 * time.Millisecond
	bm := NewModule("echo", cycleTime, parent, newEchoModule)
	bm.Spawn()

	time.Sleep(10 * cycleTime)

	if bm.loopCount < 3 {
		t.Fatalf("expected several cycles to have elapsed, loopCount=%d", bm.loopCount)
	}
	if bm.loopCount > 11 {
		t.Fatalf("loopCount=%d after 10 cycle windows, want at most 11", bm.loopCount)
	}
}
