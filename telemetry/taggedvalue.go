package telemetry

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the variant held by a TaggedValue.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt
	KindUnsigned
	KindBool
	KindString
	KindMetaSignal
	KindSiValue
)

// TaggedValue is the wire representation of one port's payload for a single
// telemetry snapshot: a discriminated union over the handful of concrete
// types a port may carry (spec.md §3). It serialises to an externally-tagged
// JSON object, e.g. {"Float":1.2} or {"SiValue":{"value":9.8,"unit":" [m/s^2]"}},
// matching the wire schema in spec.md §6.
type TaggedValue struct {
	kind Kind

	f   float64
	i   int64
	u   uint64
	b   bool
	s   string
	m   float32
	siV float64
	siU string
}

func Float(v float64) TaggedValue      { return TaggedValue{kind: KindFloat, f: v} }
func Int(v int64) TaggedValue          { return TaggedValue{kind: KindInt, i: v} }
func Unsigned(v uint64) TaggedValue    { return TaggedValue{kind: KindUnsigned, u: v} }
func Bool(v bool) TaggedValue          { return TaggedValue{kind: KindBool, b: v} }
func String(v string) TaggedValue      { return TaggedValue{kind: KindString, s: v} }
func Meta(v float32) TaggedValue       { return TaggedValue{kind: KindMetaSignal, m: v} }
func SiValue(v float64, unit string) TaggedValue {
	return TaggedValue{kind: KindSiValue, siV: v, siU: unit}
}

// Variant reports which variant this TaggedValue holds.
func (t TaggedValue) Variant() Kind { return t.kind }

func (t TaggedValue) String() string {
	switch t.kind {
	case KindFloat:
		return fmt.Sprintf("%.4f", t.f)
	case KindInt:
		return fmt.Sprintf("%d", t.i)
	case KindUnsigned:
		return fmt.Sprintf("%d", t.u)
	case KindBool:
		return fmt.Sprintf("%t", t.b)
	case KindString:
		return t.s
	case KindMetaSignal:
		return fmt.Sprintf("%v", t.m)
	case KindSiValue:
		return fmt.Sprintf("%.4f %s", t.siV, t.siU)
	default:
		return ""
	}
}

type siValueWire struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// MarshalJSON produces the externally-tagged representation spec.md §6
// requires: a single-key object naming the active variant.
func (t TaggedValue) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case KindFloat:
		return json.Marshal(map[string]float64{"Float": t.f})
	case KindInt:
		return json.Marshal(map[string]int64{"Int": t.i})
	case KindUnsigned:
		return json.Marshal(map[string]uint64{"Unsigned": t.u})
	case KindBool:
		return json.Marshal(map[string]bool{"Bool": t.b})
	case KindString:
		return json.Marshal(map[string]string{"String": t.s})
	case KindMetaSignal:
		return json.Marshal(map[string]float32{"MetaSignal": t.m})
	case KindSiValue:
		return json.Marshal(map[string]siValueWire{"SiValue": {Value: t.siV, Unit: t.siU}})
	default:
		return nil, fmt.Errorf("telemetry: tagged value has no variant set")
	}
}

// UnmarshalJSON accepts the same externally-tagged shape MarshalJSON
// produces; provided mainly so telemetry consumers (and round-trip tests)
// in this module don't need a second decoder.
func (t *TaggedValue) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("telemetry: tagged value must have exactly one key, got %d", len(raw))
	}
	for k, v := range raw {
		switch k {
		case "Float":
			var f float64
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			*t = Float(f)
		case "Int":
			var i int64
			if err := json.Unmarshal(v, &i); err != nil {
				return err
			}
			*t = Int(i)
		case "Unsigned":
			var u uint64
			if err := json.Unmarshal(v, &u); err != nil {
				return err
			}
			*t = Unsigned(u)
		case "Bool":
			var b bool
			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}
			*t = Bool(b)
		case "String":
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			*t = String(s)
		case "MetaSignal":
			var m float32
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			*t = Meta(m)
		case "SiValue":
			var w siValueWire
			if err := json.Unmarshal(v, &w); err != nil {
				return err
			}
			*t = SiValue(w.Value, w.Unit)
		default:
			return fmt.Errorf("telemetry: unknown tagged value variant %q", k)
		}
	}
	return nil
}

// Portable is the serialisation hook spec.md §6 requires every port payload
// type to implement, producing the TaggedValue used in a telemetry snapshot.
type Portable interface {
	PortData() TaggedValue
}
