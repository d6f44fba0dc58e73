package telemetry

import "time"

// NamedValue is one (port name, tagged value) pair inside a Snapshot's data
// list. Using a slice of pairs rather than a map preserves declaration order,
// matching spec.md §3's "ordered list of (name, TaggedValue) pairs".
type NamedValue struct {
	Name  string      `json:"name"`
	Value TaggedValue `json:"value"`
}

// Snapshot is the per-cycle telemetry record emitted by every driver
// (spec.md §3, §4.4 step 6, §4.5 step 5).
type Snapshot struct {
	Index      uint64 `json:"index"`
	ActiveTime int64  `json:"active_time_ns"` // wall time spent in the cycle, nanoseconds
	Source     string `json:"source"`         // hierarchical path "root/group/.../module"

	Activity     float32 `json:"activity"`
	TargetRating float32 `json:"target_rating"`
	Stimulation  float32 `json:"stimulation"`
	Inhibition   float32 `json:"inhibition"`

	Data []NamedValue `json:"data"`
}

// WithActiveTime is a small convenience used by drivers to fill in the
// elapsed-time field from a time.Duration without every caller converting by
// hand.
func (s Snapshot) WithActiveTime(d time.Duration) Snapshot {
	s.ActiveTime = d.Nanoseconds()
	return s
}
