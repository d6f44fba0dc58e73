package groupcfg

import (
	"testing"

	"ib2c/metasignal"
	"ib2c/port"
)

func TestLoadRejectsNonObject(t *testing.T) {
	if _, err := Load([]byte(`[1,2,3]`)); err != ErrNotObject {
		t.Fatalf("Load(array) err = %v, want ErrNotObject", err)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	overrides, err := Load([]byte(`{"cycle_hz": 50, "stimulation": 0.4, "label": "front"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cycleHz := port.WithValue(10.0)
	overrides.Float64("cycle_hz", cycleHz)
	if got := cycleHz.Get(); got != 50 {
		t.Fatalf("cycle_hz = %v, want 50", got)
	}

	stim := port.WithValue(metasignal.LOW)
	overrides.MetaSignal("stimulation", stim)
	if got := stim.Get(); got != 0.4 {
		t.Fatalf("stimulation = %v, want 0.4", got)
	}

	label := port.WithValue("back")
	overrides.String("label", label)
	if got := label.Get(); got != "front" {
		t.Fatalf("label = %q, want %q", got, "front")
	}
}

func TestLoadLeavesUnknownKeysAndWrongTypesAlone(t *testing.T) {
	overrides, err := Load([]byte(`{"cycle_hz": "not a number"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cycleHz := port.WithValue(10.0)
	overrides.Float64("cycle_hz", cycleHz)
	if got := cycleHz.Get(); got != 10.0 {
		t.Fatalf("cycle_hz = %v, want unchanged 10.0 (wrong type ignored)", got)
	}

	missing := port.WithValue(10.0)
	overrides.Float64("absent_key", missing)
	if got := missing.Get(); got != 10.0 {
		t.Fatalf("absent_key override changed value to %v", got)
	}
}

func TestRequireKnownKeys(t *testing.T) {
	overrides, err := Load([]byte(`{"cycle_hz": 50}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := RequireKnownKeys(overrides, "cycle_hz", "stimulation"); err != nil {
		t.Fatalf("RequireKnownKeys with an allowed key: %v", err)
	}
	if err := RequireKnownKeys(overrides); err == nil {
		t.Fatalf("expected an error when no keys are allowed but one was supplied")
	}
}
