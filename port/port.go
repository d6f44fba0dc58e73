// Package port implements the typed, shareable port cells that carry values
// between behaviour modules, fusion nodes and groups (spec.md §3, §4.1).
//
// A Port[T] holds either a buffered value or a passthrough handle to an
// upstream Port[T]; sends and reads recurse to the passthrough chain's
// terminus, which is always a buffer. Identity is by handle: cloning a
// facade (SendPort, ReceivePort, ...) produces an additional co-owner of the
// same underlying cell, exactly like the teacher's bus.Bus trie nodes are
// shared by every Subscription that points at them.
package port

import (
	"sync"

	"ib2c/errcode"
	"ib2c/telemetry"
)

const maxPassthroughDepth = 64

// cell is the shared, lock-protected state backing every Port[T] handle
// that points at it. Exactly one of (hasValue) or (passthrough != nil) is
// meaningful at a time: a Port is never simultaneously a buffer and a
// passthrough (spec.md §3 invariant).
type cell[T any] struct {
	mu          sync.RWMutex
	hasValue    bool
	value       T
	passthrough *cell[T]
}

// Port is the internal handle type shared by SendPort, ReceivePort,
// ParameterPort, OutputPort and InputPort. It is cheap to copy: copies are
// co-owners of the same cell.
type Port[T any] struct {
	c *cell[T]
}

// newBuffer constructs a Port backed by a fresh, empty buffer cell.
func newBuffer[T any]() Port[T] {
	return Port[T]{c: &cell[T]{}}
}

// newBufferWithValue constructs a Port backed by a buffer cell pre-loaded
// with an initial value (used by ParameterPort.WithValue).
func newBufferWithValue[T any](v T) Port[T] {
	return Port[T]{c: &cell[T]{hasValue: true, value: v}}
}

// Send deposits value into the terminus buffer, replacing any prior value.
// If this Port is a passthrough, the send recurses to the chain's terminus.
func (p Port[T]) Send(value T) {
	c := p.c
	for {
		c.mu.Lock()
		if target := c.passthrough; target != nil {
			c.mu.Unlock()
			c = target
			continue
		}
		c.hasValue = true
		c.value = value
		c.mu.Unlock()
		return
	}
}

// Get returns the current terminus value and whether one has ever been
// sent. Cost is O(passthrough chain length).
func (p Port[T]) Get() (T, bool) {
	c := p.c
	for {
		c.mu.RLock()
		target := c.passthrough
		if target == nil {
			v, ok := c.value, c.hasValue
			c.mu.RUnlock()
			return v, ok
		}
		c.mu.RUnlock()
		c = target
	}
}

// GetOrDefault returns the current terminus value, or the zero value of T
// if nothing has been sent yet.
func (p Port[T]) GetOrDefault() T {
	v, _ := p.Get()
	return v
}

// ConnectToSource atomically switches this Port from buffer to passthrough,
// discarding any value it held. Legal at any time; wiring is conventionally
// done before Spawn (spec.md §4.1).
//
// A linear-time cycle check walks the new source's passthrough chain; if it
// would reach back to this Port, ConnectToSource returns errcode.CyclicPort
// and leaves this Port unchanged (spec.md §9: "a cycle guard is suggested
// but not required" — this implementation provides one). A source chain
// longer than maxPassthroughDepth hops is rejected with the same code.
func (p Port[T]) ConnectToSource(source Port[T]) error {
	if p.c == source.c {
		return &errcode.E{C: errcode.CyclicPort, Op: "ConnectToSource", Msg: "port cannot be its own source"}
	}
	cur := source.c
	for depth := 0; ; depth++ {
		if depth == maxPassthroughDepth {
			return &errcode.E{C: errcode.CyclicPort, Op: "ConnectToSource", Msg: "passthrough chain exceeds maximum depth"}
		}
		cur.mu.RLock()
		next := cur.passthrough
		cur.mu.RUnlock()
		if next == nil {
			break
		}
		if next == p.c {
			return &errcode.E{C: errcode.CyclicPort, Op: "ConnectToSource", Msg: "would create a passthrough cycle"}
		}
		cur = next
	}

	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	p.c.hasValue = false
	var zero T
	p.c.value = zero
	p.c.passthrough = source.c
	return nil
}

// ConnectAsSource is the mirror of ConnectToSource: it wires target to read
// from p.
func (p Port[T]) ConnectAsSource(target Port[T]) error {
	return target.ConnectToSource(p)
}

// PortData converts the port's current terminus value into its telemetry
// representation (spec.md component D), or an empty string value if
// nothing has been sent yet.
func (p Port[T]) PortData() telemetry.TaggedValue {
	v, ok := p.Get()
	if !ok {
		return telemetry.String("")
	}
	return telemetry.ToTaggedValue(v)
}
