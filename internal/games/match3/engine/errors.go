package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies engine failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidSwap
	KindOutOfBounds
	KindBoardState
	KindConfiguration
	KindCascadeOverflow
	KindBusy
)

// String returns the kind's diagnostic code.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSwap:
		return "INVALID_SWAP"
	case KindOutOfBounds:
		return "OUT_OF_BOUNDS"
	case KindBoardState:
		return "BOARD_STATE"
	case KindConfiguration:
		return "CONFIGURATION"
	case KindCascadeOverflow:
		return "CASCADE_OVERFLOW"
	case KindBusy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}

// Reason refines an InvalidSwap error.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonOutOfBounds  Reason = "out_of_bounds"
	ReasonNotAdjacent  Reason = "not_adjacent"
	ReasonMissingTile  Reason = "missing_tile"
	ReasonSamePosition Reason = "same_position"
	ReasonNoMatch      Reason = "no_match"
)

// Error is the single error type produced by the engine.
// Context carries the positions, swap or config key implicated.
type Error struct {
	Kind    ErrorKind
	Reason  Reason
	Message string
	Context map[string]any
}

// Sentinels for errors.Is checks. Matching compares Kind only.
var (
	ErrInvalidSwap     = &Error{Kind: KindInvalidSwap}
	ErrOutOfBounds     = &Error{Kind: KindOutOfBounds}
	ErrBoardState      = &Error{Kind: KindBoardState}
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrCascadeOverflow = &Error{Kind: KindCascadeOverflow}
	ErrBusy            = &Error{Kind: KindBusy}
)

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Kind, e.Message)
	if e.Reason != ReasonNone {
		fmt.Fprintf(&sb, " (%s)", e.Reason)
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, e.Context[k])
		}
	}
	return sb.String()
}

// Is reports whether target is an *Error of the same kind.
// A target with a Reason set must match the reason too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == ReasonNone || t.Reason == e.Reason
}

// IsFatal reports whether the error ends the session.
func (e *Error) IsFatal() bool {
	return e.Kind == KindBoardState || e.Kind == KindConfiguration
}

// logFields flattens the error into key-value pairs for the logger.
func (e *Error) logFields() []any {
	fields := []any{"kind", e.Kind.String()}
	if e.Reason != ReasonNone {
		fields = append(fields, "reason", string(e.Reason))
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, e.Context[k])
	}
	return fields
}

// newError builds an *Error. kv is a list of alternating context keys and values.
func newError(kind ErrorKind, reason Reason, msg string, kv ...any) *Error {
	e := &Error{Kind: kind, Reason: reason, Message: msg}
	if len(kv) > 0 {
		e.Context = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				key = fmt.Sprint(kv[i])
			}
			e.Context[key] = kv[i+1]
		}
	}
	return e
}

// KindOf extracts the ErrorKind from err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ReasonOf extracts the Reason from err, or ReasonNone.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ReasonNone
}
