package ib2c

import (
	"reflect"

	"ib2c/telemetry"
)

// updater is satisfied by *port.ReceivePort[T] and *port.ParameterPort[T]:
// the facades whose local snapshot needs refreshing once per cycle.
type updater interface {
	Update()
}

var standardType = reflect.TypeOf(Standard{})

// updateAllPorts walks module's exported fields by reflection and calls
// Update on every one that needs it (component J's UpdateReceivePorts
// capability, spec.md §4.7). The embedded Standard field is skipped here —
// its StimulationPort/InhibitionPort are refreshed directly by the driver
// (module.go's cycleOnce), not through this reflective walk.
//
// module must be a pointer to a struct; this is always true for behaviour
// modules, which the driver holds and calls Transfere on by pointer.
func updateAllPorts(module any) {
	v := reflect.ValueOf(module)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == standardType {
			continue
		}
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if !fv.CanInterface() {
			continue
		}
		if u, ok := fv.Interface().(updater); ok {
			u.Update()
		}
	}
}

// allPortData walks module's exported, user-declared fields and produces
// the ordered (name, TaggedValue) list a telemetry Snapshot carries
// (component D/J, spec.md §3, §4.7). Declaration order is struct field
// order, matching spec.md's "ordered list" requirement. A field may opt
// into a telemetry name override with an `ib2c:"name"` struct tag;
// otherwise the Go field name is used as-is.
func allPortData(module any) []telemetry.NamedValue {
	v := reflect.ValueOf(module)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	v = v.Elem()
	t := v.Type()

	var out []telemetry.NamedValue
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == standardType {
			continue
		}
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if !fv.CanInterface() {
			continue
		}
		p, ok := fv.Interface().(telemetry.Portable)
		if !ok {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("ib2c"); tag != "" {
			name = tag
		}
		out = append(out, telemetry.NamedValue{Name: name, Value: p.PortData()})
	}
	return out
}
