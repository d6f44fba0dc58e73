package metasignal

import "testing"

func TestOfClamps(t *testing.T) {
	cases := []struct {
		in   float32
		want MetaSignal
	}{
		{-1.0, LOW},
		{0.0, LOW},
		{0.5, 0.5},
		{1.0, HIGH},
		{2.5, HIGH},
	}
	for _, c := range cases {
		if got := Of(c.in); got != c.want {
			t.Errorf("Of(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(0.3, 0.7); got != 0.3 {
		t.Errorf("Min = %v, want 0.3", got)
	}
	if got := Max(0.3, 0.7); got != 0.7 {
		t.Errorf("Max = %v, want 0.7", got)
	}
}

// TestNegateAndPotential mirrors spec.md §8 scenario 2: stimulation
// unconnected (defaults to HIGH), inhibition = 0.25, target = 0.8 ⇒
// activity = min(1.0, 0.75, 0.8) = 0.75.
func TestNegateAndPotential(t *testing.T) {
	stimulation := HIGH
	inhibition := MetaSignal(0.25)
	target := MetaSignal(0.8)

	potential := Min(stimulation, Negate(inhibition))
	activity := Min(potential, target)

	if potential != 0.75 {
		t.Fatalf("potential = %v, want 0.75", potential)
	}
	if activity != 0.75 {
		t.Fatalf("activity = %v, want 0.75", activity)
	}
}

// TestActivityNeverExceedsInputs is property P2: activity is bounded by
// stimulation, HIGH-inhibition, and target_rating for arbitrary inputs.
func TestActivityNeverExceedsInputs(t *testing.T) {
	inputs := []struct{ stim, inhib, target MetaSignal }{
		{HIGH, LOW, HIGH},
		{0.2, 0.9, 0.5},
		{0.6, 0.1, 0.3},
		{LOW, LOW, HIGH},
	}
	for _, in := range inputs {
		potential := Min(in.stim, Negate(in.inhib))
		activity := Min(potential, in.target)

		if activity < LOW || activity > HIGH {
			t.Fatalf("activity %v out of [0,1] for %+v", activity, in)
		}
		if activity > in.stim {
			t.Fatalf("activity %v exceeds stimulation %v for %+v", activity, in.stim, in)
		}
		if activity > Negate(in.inhib) {
			t.Fatalf("activity %v exceeds HIGH-inhibition %v for %+v", activity, Negate(in.inhib), in)
		}
		if activity > in.target {
			t.Fatalf("activity %v exceeds target_rating %v for %+v", activity, in.target, in)
		}
	}
}
