package ib2c

import (
	"testing"
	"time"

	"ib2c/port"
)

// TestFusionDominance mirrors spec.md §8 scenario 3 / property P4: module A
// publishes activity=0.4 value="A", module B publishes activity=0.9
// value="B"; the fusion's single arbitration pass picks B.
func TestFusionDominance(t *testing.T) {
	parent := Root("test")
	f := NewFusion[string]("f", time.Hour, parent)

	a := NewStandard()
	aData := port.NewSendPort[string]()
	b := NewStandard()
	bData := port.NewSendPort[string]()

	mustOK(t, f.ConnectModule("A", &a, aData))
	mustOK(t, f.ConnectModule("B", &b, bData))

	a.ActivityPort().Send(0.4)
	a.TargetRatingPort().Send(0.5)
	aData.Send("A")
	b.ActivityPort().Send(0.9)
	b.TargetRatingPort().Send(0.6)
	bData.Send("B")

	f.cycleOnce(time.Now())

	value, ok := f.data.Get()
	if !ok || value != "B" {
		t.Fatalf("fusion data = (%v,%v), want (B,true)", value, ok)
	}
	activity, ok := f.activity.Get()
	if !ok || activity != 0.9 {
		t.Fatalf("fusion activity = (%v,%v), want (0.9,true)", activity, ok)
	}
	targetRating, ok := f.targetRating.Get()
	if !ok || targetRating != 0.6 {
		t.Fatalf("fusion target_rating = (%v,%v), want (0.6,true)", targetRating, ok)
	}
}

// TestFusionInsertionOrderTieBreak mirrors spec.md §8 scenario 4 /
// property P5: equal activity, earlier-connected input wins.
func TestFusionInsertionOrderTieBreak(t *testing.T) {
	parent := Root("test")
	f := NewFusion[string]("f", time.Hour, parent)

	a := NewStandard()
	aData := port.NewSendPort[string]()
	b := NewStandard()
	bData := port.NewSendPort[string]()

	mustOK(t, f.ConnectModule("A", &a, aData))
	mustOK(t, f.ConnectModule("B", &b, bData))

	a.ActivityPort().Send(0.7)
	aData.Send("A")
	b.ActivityPort().Send(0.7)
	bData.Send("B")

	f.cycleOnce(time.Now())

	value, ok := f.data.Get()
	if !ok || value != "A" {
		t.Fatalf("fusion data = (%v,%v), want (A,true) on tie", value, ok)
	}
}

// TestFusionSkipsWinnerWithoutData covers the Open Question this runtime
// resolves as "skip": the highest-activity input with an empty data
// Receive produces no fused output that cycle.
func TestFusionSkipsWinnerWithoutData(t *testing.T) {
	parent := Root("test")
	f := NewFusion[string]("f", time.Hour, parent)

	a := NewStandard()
	aData := port.NewSendPort[string]()

	mustOK(t, f.ConnectModule("A", &a, aData))
	a.ActivityPort().Send(0.9)
	// aData never sent: its Receive stays empty.

	f.cycleOnce(time.Now())

	if _, ok := f.data.Get(); ok {
		t.Fatalf("expected no fused output when the winning input has no data")
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
