// Package groupcfg loads optional per-group parameter overrides from a
// small JSON document, the same way the teacher's services/config package
// loads an embedded per-device configuration: both read a flat JSON object
// with tinyjson rather than pull in encoding/json's reflection-heavy
// decoder, because tinyjson's Raw/Value API is safe to use in builds that
// must not allocate per-field decoder state (SPEC_FULL.md §3).
package groupcfg

import (
	"errors"

	"github.com/andreyvit/tinyjson"

	"ib2c/errcode"
	"ib2c/metasignal"
	"ib2c/port"
)

// ErrNotObject is returned when the supplied document does not decode to
// a flat JSON object.
var ErrNotObject = errors.New("groupcfg: document is not a JSON object")

// Overrides is a flat map of parameter name to raw decoded JSON value
// (float64, string, bool, or nested map/slice), mirroring the shape
// tinyjson.Value() hands back for an object.
type Overrides map[string]any

// Load parses raw as a JSON object using tinyjson, the way
// ConfigService.publishConfig parses an embedded device config.
func Load(raw []byte) (Overrides, error) {
	r := tinyjson.Raw(raw)
	val := r.Value()
	if err := r.EnsureEOF(); err != nil {
		return nil, err
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Overrides(m), nil
}

// Float64 applies a named float64 override to target, leaving target
// unchanged if name is absent or not a number.
func (o Overrides) Float64(name string, target *port.ParameterPort[float64]) {
	v, ok := o[name]
	if !ok {
		return
	}
	f, ok := v.(float64)
	if !ok {
		return
	}
	target.Set(f)
	target.Update()
}

// MetaSignal applies a named override to a MetaSignal-typed parameter
// port, clamping into [LOW, HIGH] the same way metasignal.Of does.
func (o Overrides) MetaSignal(name string, target *port.ParameterPort[metasignal.MetaSignal]) {
	v, ok := o[name]
	if !ok {
		return
	}
	f, ok := v.(float64)
	if !ok {
		return
	}
	target.Set(metasignal.Of(float32(f)))
	target.Update()
}

// String applies a named string override, leaving target unchanged if
// name is absent or not a string.
func (o Overrides) String(name string, target *port.ParameterPort[string]) {
	v, ok := o[name]
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		return
	}
	target.Set(s)
	target.Update()
}

// RequireKnownKeys reports errcode.Error if overrides contains any key not
// present in allowed, catching typos in a hand-edited config file early
// rather than silently ignoring them.
func RequireKnownKeys(o Overrides, allowed ...string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		set[k] = struct{}{}
	}
	for k := range o {
		if _, ok := set[k]; !ok {
			return &errcode.E{C: errcode.Error, Op: "RequireKnownKeys", Msg: "unknown override key: " + k}
		}
	}
	return nil
}
