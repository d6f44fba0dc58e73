// Package metasignal implements the clamped [0,1] scalar algebra shared by
// every behaviour module, fusion node and group: activity, target rating,
// stimulation and inhibition.
package metasignal

import "ib2c/x/mathx"

// MetaSignal is a saturating scalar in [0,1]. All arithmetic results are
// clamped back into that range; there is no way to construct or compute an
// out-of-range value through the exported API.
type MetaSignal float32

const (
	// LOW is the minimum meta-signal value, used as the default inhibition
	// and the fusion seed for "no winner yet".
	LOW MetaSignal = 0.0
	// HIGH is the maximum meta-signal value, used as the default
	// stimulation for modules without an explicit enabler.
	HIGH MetaSignal = 1.0
)

// Of clamps an arbitrary float32 into [0,1] using the same bounds-swap-safe
// Clamp the rest of the runtime's firmware-facing math uses. Construction
// from arbitrary floats never panics; it clamps silently.
func Of(v float32) MetaSignal {
	return MetaSignal(mathx.Clamp(v, float32(LOW), float32(HIGH)))
}

func clamp(v MetaSignal) MetaSignal {
	return MetaSignal(mathx.Clamp(float32(v), float32(LOW), float32(HIGH)))
}

// Min returns the smaller of a and b. Both inputs are already within [0,1]
// by construction, so the result needs no further clamping.
func Min(a, b MetaSignal) MetaSignal {
	return mathx.Min(a, b)
}

// Max returns the larger of a and b.
func Max(a, b MetaSignal) MetaSignal {
	return mathx.Max(a, b)
}

// Negate computes the logical negation HIGH - x, used to turn an inhibition
// level into the potential it leaves available.
func Negate(x MetaSignal) MetaSignal {
	return clamp(HIGH - x)
}

// Less reports whether a sorts strictly before b under the total ordering
// meta-signals use for fusion dominance comparisons.
func (a MetaSignal) Less(b MetaSignal) bool { return a < b }

func (a MetaSignal) Float32() float32 { return float32(a) }
