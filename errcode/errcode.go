// Package errcode provides a small, stable error-code type used for the
// runtime's wiring-time contract violations, ported and generalised from
// the teacher's bus-facing error codes (devicecode-go's errcode package).
package errcode

// Code is a stable error identifier: a string newtype, comparable,
// allocation-free, and implementing error directly.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes used by the port graph and group wiring.
const (
	// CyclicPort is returned by Port.ConnectToSource when the requested
	// passthrough chain would loop back to the port being wired
	// (spec.md §9 "no cyclic passthroughs").
	CyclicPort Code = "cyclic_port"

	// NoCharacteristicModule names a group without a characteristic module.
	// No function in this module returns it: a group whose Init never calls
	// SetCharacteristicModule is not detected.
	NoCharacteristicModule Code = "no_characteristic_module"

	// CharacteristicModuleAlreadySet is returned by a second call to
	// SetCharacteristicModule on the same group.
	CharacteristicModuleAlreadySet Code = "characteristic_module_already_set"

	// Error is the generic fallback for errors without a specific code.
	Error Code = "error"
)

// E wraps a Code with an operation name, a human-readable message and an
// optional underlying cause, mirroring the teacher's wrapper shape.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	prefix := string(e.C)
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Msg != "" {
		return prefix + ": " + e.Msg
	}
	return prefix
}

func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error for errors that
// don't carry one.
func Of(err error) Code {
	if err == nil {
		return ""
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
