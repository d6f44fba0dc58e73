package telemetry

import (
	"fmt"

	"ib2c/metasignal"
)

// ToTaggedValue is the uniform conversion from a port payload to its
// telemetry representation (spec.md component D). Types that need a custom
// mapping (SI quantities, domain enums, ...) implement Portable and are
// dispatched straight to it; the handful of primitive types the runtime's
// own ports commonly carry (as well as metasignal.MetaSignal, which every
// module's standard ports carry) are converted directly, mirroring the set
// of blanket impls rust_ib2c's port.rs installs for i32/i64/u32/u64/f32/f64/
// bool/String.
func ToTaggedValue(v any) TaggedValue {
	if p, ok := v.(Portable); ok {
		return p.PortData()
	}
	switch x := v.(type) {
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Unsigned(uint64(x))
	case uint8:
		return Unsigned(uint64(x))
	case uint16:
		return Unsigned(uint64(x))
	case uint32:
		return Unsigned(uint64(x))
	case uint64:
		return Unsigned(x)
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case metasignal.MetaSignal:
		return Meta(x.Float32())
	default:
		return String(fmt.Sprintf("%v", x))
	}
}
