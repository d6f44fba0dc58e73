package port

import "ib2c/telemetry"

// SendPort is the facade producers use to publish values (spec.md §4.2).
type SendPort[T any] struct {
	inner Port[T]
}

// NewSendPort constructs a SendPort backed by a fresh, empty buffer.
func NewSendPort[T any]() SendPort[T] {
	return SendPort[T]{inner: newBuffer[T]()}
}

// Send delegates to the underlying Port.
func (s SendPort[T]) Send(value T) { s.inner.Send(value) }

// Get returns the current terminus value — used so a downstream fusion can
// sample a producer's most recent output without a separate wire
// (spec.md §4.2).
func (s SendPort[T]) Get() (T, bool) { return s.inner.Get() }

// GetOrDefault returns the current terminus value, or the zero value of T.
func (s SendPort[T]) GetOrDefault() T { return s.inner.GetOrDefault() }

// ConnectToSource switches this SendPort to forward to source.
func (s SendPort[T]) ConnectToSource(source Port[T]) error { return s.inner.ConnectToSource(source) }

// ConnectAsSource wires target to read from this SendPort.
func (s SendPort[T]) ConnectAsSource(target Port[T]) error { return s.inner.ConnectAsSource(target) }

// Port returns the underlying handle, for wiring this SendPort as another
// port's source.
func (s SendPort[T]) Port() Port[T] { return s.inner }

func (s SendPort[T]) PortData() telemetry.TaggedValue { return s.inner.PortData() }

// ReceivePort is the facade consumers use: it holds an owned local snapshot
// refreshed by an explicit Update call, so a module's transfer function
// reads a stable view for the whole cycle even though the upstream may
// mutate concurrently (spec.md §4.2).
type ReceivePort[T any] struct {
	inner    Port[T]
	snapshot T
	hasValue bool
}

// NewReceivePort constructs a ReceivePort backed by a fresh, empty buffer.
// Its local snapshot starts empty until the first successful Update.
func NewReceivePort[T any]() *ReceivePort[T] {
	return &ReceivePort[T]{inner: newBuffer[T]()}
}

// ConnectToSource switches this ReceivePort to forward to source.
func (r *ReceivePort[T]) ConnectToSource(source Port[T]) error {
	return r.inner.ConnectToSource(source)
}

// ConnectAsSource wires target to read from this ReceivePort.
func (r *ReceivePort[T]) ConnectAsSource(target Port[T]) error {
	return r.inner.ConnectAsSource(target)
}

// Port returns the underlying handle, for wiring this ReceivePort as
// another port's source (a ReceivePort may itself be chained, per spec.md
// §8's "mixed chain" scenario).
func (r *ReceivePort[T]) Port() Port[T] { return r.inner }

// Update copies the terminus value into the local snapshot. Called
// automatically by the owning module/fusion driver each cycle; manual calls
// are only needed outside the standard driver loop.
func (r *ReceivePort[T]) Update() {
	r.snapshot, r.hasValue = r.inner.Get()
}

// Get returns the local snapshot captured by the last Update, and whether
// it holds a value at all.
func (r *ReceivePort[T]) Get() (T, bool) {
	return r.snapshot, r.hasValue
}

// GetOrDefault returns the local snapshot, or the zero value of T if the
// snapshot is still empty.
func (r *ReceivePort[T]) GetOrDefault() T {
	return r.snapshot
}

func (r *ReceivePort[T]) PortData() telemetry.TaggedValue {
	if !r.hasValue {
		return telemetry.String("")
	}
	return telemetry.ToTaggedValue(r.snapshot)
}

// ParameterPort is ReceivePort-shaped but its underlying buffer is always
// initialised with a value — either an explicit one or T's zero value — so
// Get always yields a real value, never empty. Intended for knobs tuned
// externally at runtime (spec.md §4.2).
type ParameterPort[T any] struct {
	inner    Port[T]
	snapshot T
}

// NewParameterPort constructs a ParameterPort whose buffer starts at T's
// zero value.
func NewParameterPort[T any]() *ParameterPort[T] {
	var zero T
	return &ParameterPort[T]{inner: newBufferWithValue(zero), snapshot: zero}
}

// WithValue constructs a ParameterPort pre-loaded with an explicit initial
// value.
func WithValue[T any](value T) *ParameterPort[T] {
	return &ParameterPort[T]{inner: newBufferWithValue(value), snapshot: value}
}

// Set publishes a new parameter value.
func (p *ParameterPort[T]) Set(value T) { p.inner.Send(value) }

// Port returns the underlying handle.
func (p *ParameterPort[T]) Port() Port[T] { return p.inner }

// Update refreshes the local snapshot from the terminus, falling back to
// T's zero value if the terminus is somehow empty (it normally never is,
// since ParameterPort always seeds its buffer).
func (p *ParameterPort[T]) Update() {
	v, ok := p.inner.Get()
	if !ok {
		var zero T
		v = zero
	}
	p.snapshot = v
}

// Get returns the current parameter value from the local snapshot.
func (p *ParameterPort[T]) Get() T { return p.snapshot }

func (p *ParameterPort[T]) PortData() telemetry.TaggedValue {
	return telemetry.ToTaggedValue(p.snapshot)
}

// OutputPort exposes a group or module's internal SendPort endpoint to
// callers outside the graph (spec.md §3, §4.2).
type OutputPort[T any] struct {
	source Port[T]
}

// NewOutputPort wraps a SendPort for external read access.
func NewOutputPort[T any](s SendPort[T]) OutputPort[T] {
	return OutputPort[T]{source: s.inner}
}

// Get returns the current value published on the wrapped SendPort.
func (o OutputPort[T]) Get() (T, bool) { return o.source.Get() }

// GetOrDefault returns the current value, or T's zero value if none was
// ever sent.
func (o OutputPort[T]) GetOrDefault() T { return o.source.GetOrDefault() }

// InputPort exposes a group or module's internal ReceivePort endpoint to
// callers outside the graph, letting them write values in (spec.md §3,
// §4.2).
type InputPort[T any] struct {
	target Port[T]
}

// NewInputPort wraps a ReceivePort for external write access.
func NewInputPort[T any](r *ReceivePort[T]) InputPort[T] {
	return InputPort[T]{target: r.inner}
}

// Set writes data to the wrapped ReceivePort's underlying cell.
func (i InputPort[T]) Set(data T) { i.target.Send(data) }
