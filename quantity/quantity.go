// Package quantity provides a minimal SI-like measurement value: a float64
// magnitude tagged with a unit string. It exists so demo behaviour modules
// can carry physically-labelled data (speed, voltage, temperature) across
// ports and have it show up on the telemetry wire as a single tagged value
// rather than two separate untyped fields (SPEC_FULL.md §5.4).
package quantity

import (
	"fmt"

	"ib2c/telemetry"
)

// Quantity is a value with a unit label, e.g. Quantity{Value: 1.5, Unit: "m/s"}.
type Quantity struct {
	Value float64
	Unit  string
}

// Of constructs a Quantity.
func Of(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// PortData satisfies telemetry.Portable so a Quantity field on a behaviour
// module is reported on the wire as a SiValue-tagged value (spec.md §6).
func (q Quantity) PortData() telemetry.TaggedValue {
	return telemetry.SiValue(q.Value, q.Unit)
}
