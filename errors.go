// errors.go - The closed set of error kinds the engine can report

package tonegraph

import "fmt"

// ErrorKind is a closed tag identifying which of the documented failure
// modes an EngineError represents. New kinds are never added at runtime;
// callers may safely switch over the full set.
type ErrorKind int

const (
	KindInvalidSampleRate ErrorKind = iota
	KindInvalidConfiguration
	KindNotInitialized
	KindChannelModeMismatch
	KindInvalidBufferGeometry
	KindDisposed
	KindInternalRenderFault
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSampleRate:
		return "InvalidSampleRate"
	case KindInvalidConfiguration:
		return "InvalidConfiguration"
	case KindNotInitialized:
		return "NotInitialized"
	case KindChannelModeMismatch:
		return "ChannelModeMismatch"
	case KindInvalidBufferGeometry:
		return "InvalidBufferGeometry"
	case KindDisposed:
		return "Disposed"
	case KindInternalRenderFault:
		return "InternalRenderFault"
	default:
		return "Unknown"
	}
}

// EngineError is the single error type the package returns. Field carries
// the informational parameter named in spec §7 (e.g. the offending
// configuration field); it is empty when the kind carries no parameter.
type EngineError struct {
	Kind  ErrorKind
	Field string
	msg   string
}

func (e *EngineError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	}
	return e.Kind.String()
}

// Is lets errors.Is(err, tonegraph.ErrDisposed) etc. match on kind alone,
// ignoring the Field/msg payload.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errInvalidSampleRate(sr int) error {
	return &EngineError{Kind: KindInvalidSampleRate, msg: fmt.Sprintf("InvalidSampleRate: %d", sr)}
}

func errInvalidConfiguration(field string) error {
	return &EngineError{Kind: KindInvalidConfiguration, Field: field}
}

func errNotInitialized() error {
	return &EngineError{Kind: KindNotInitialized}
}

func errChannelModeMismatch() error {
	return &EngineError{Kind: KindChannelModeMismatch}
}

func errInvalidBufferGeometry(msg string) error {
	return &EngineError{Kind: KindInvalidBufferGeometry, msg: "InvalidBufferGeometry: " + msg}
}

func errDisposed() error {
	return &EngineError{Kind: KindDisposed}
}

func errInternalRenderFault(msg string) error {
	return &EngineError{Kind: KindInternalRenderFault, msg: "InternalRenderFault: " + msg}
}

// Sentinel values for errors.Is comparisons against a specific kind,
// e.g. errors.Is(err, ErrDisposed).
var (
	ErrInvalidSampleRate     = &EngineError{Kind: KindInvalidSampleRate}
	ErrInvalidConfiguration  = &EngineError{Kind: KindInvalidConfiguration}
	ErrNotInitialized        = &EngineError{Kind: KindNotInitialized}
	ErrChannelModeMismatch   = &EngineError{Kind: KindChannelModeMismatch}
	ErrInvalidBufferGeometry = &EngineError{Kind: KindInvalidBufferGeometry}
	ErrDisposed              = &EngineError{Kind: KindDisposed}
	ErrInternalRenderFault   = &EngineError{Kind: KindInternalRenderFault}
)
