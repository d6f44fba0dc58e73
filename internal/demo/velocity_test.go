package demo

import (
	"testing"
	"time"

	"ib2c/ib2c"
	"ib2c/metasignal"
	"ib2c/port"
	"ib2c/quantity"
)

// TestConstantVelocityOutranksUnobstructedBreakOnObstacle mirrors spec.md
// §8 scenario 5: constant-velocity always emits 1 m/s at target=HIGH,
// break-on-obstacle only raises its target to HIGH once an obstacle is
// within par_min_distance, and otherwise stays at LOW so constant-velocity
// wins the fusion.
func TestConstantVelocityOutranksUnobstructedBreakOnObstacle(t *testing.T) {
	cv := NewConstantVelocity()
	boo := NewBreakOnObstacle()

	mustConnectDistance(t, boo.InDistance, 5.0)
	boo.InDistance.Update()
	boo.Transfere()
	if got := boo.TargetRating(); got != metasignal.LOW {
		t.Fatalf("unobstructed break-on-obstacle target = %v, want LOW", got)
	}

	cv.Transfere()
	if got := cv.TargetRating(); got != metasignal.HIGH {
		t.Fatalf("constant-velocity target = %v, want HIGH", got)
	}
	if v := cv.OutVelocity.GetOrDefault(); v.Value != 1.0 {
		t.Fatalf("constant-velocity output = %v, want 1.0 m/s", v)
	}
}

// TestBreakOnObstacleSlowsNearObstacle exercises the braking branch: once
// distance falls under par_min_distance, break-on-obstacle both slows
// down and raises its own target_rating to HIGH so it can win the fusion.
func TestBreakOnObstacleSlowsNearObstacle(t *testing.T) {
	boo := NewBreakOnObstacle()
	mustConnectDistance(t, boo.InDistance, 0.5)
	boo.InDistance.Update()

	boo.Transfere()

	if got := boo.TargetRating(); got != metasignal.HIGH {
		t.Fatalf("obstructed break-on-obstacle target = %v, want HIGH", got)
	}
	out := boo.OutVelocity.GetOrDefault()
	if out.Value <= 0 || out.Value >= 1.0 {
		t.Fatalf("expected a slowed, nonzero velocity, got %v", out)
	}
}

// TestBreakOnObstacleStopsWithinEmergencyDistance covers the hard-stop
// branch under 20 cm.
func TestBreakOnObstacleStopsWithinEmergencyDistance(t *testing.T) {
	boo := NewBreakOnObstacle()
	mustConnectDistance(t, boo.InDistance, 0.1)
	boo.InDistance.Update()

	boo.Transfere()

	if got := boo.OutVelocity.GetOrDefault(); got.Value != 0.0 {
		t.Fatalf("expected a full stop, got %v", got)
	}
}

func mustConnectDistance(t *testing.T, in *port.ReceivePort[quantity.Quantity], distanceMeters float64) {
	t.Helper()
	s := port.NewSendPort[quantity.Quantity]()
	s.Send(meters(distanceMeters))
	if err := in.ConnectToSource(s.Port()); err != nil {
		t.Fatalf("connect distance source: %v", err)
	}
}

// TestVelocityControlGroupFusesByActivity wires the real VelocityControl
// group together (the fusion described in g_velocity_control.rs) and
// checks the obstructed case beats the cruising default (spec.md §8
// scenario 5, realised with actual running goroutines rather than the
// bare module calls above).
func TestVelocityControlGroupFusesByActivity(t *testing.T) {
	root := ib2c.Root("test")
	vc := ib2c.NewGroup("VelocityControl", 5*time.Millisecond, root, NewVelocityControl)

	front := port.NewSendPort[quantity.Quantity]()
	if err := vc.InFrontDistanceSensor.ConnectToSource(front.Port()); err != nil {
		t.Fatalf("connect front sensor: %v", err)
	}
	front.Send(meters(0.1))

	time.Sleep(50 * time.Millisecond)

	out, ok := vc.OutVelocity.Get()
	if !ok {
		t.Fatalf("expected a fused velocity output")
	}
	if out.Value != 0.0 {
		t.Fatalf("expected emergency stop to win fusion near an obstacle, got %v", out)
	}
}
