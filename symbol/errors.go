package symbol

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the ways a set of class declarations can contradict
// itself. None of them are recoverable within a compilation run.
type ErrorKind string

const (
	// ErrDuplicateIdentity indicates two classes share a name, a struct symbol,
	// or a nickname within the same parcel
	ErrDuplicateIdentity ErrorKind = "duplicate-identity"
	// ErrPrematureMutation indicates a mutator was called after grow_tree
	ErrPrematureMutation ErrorKind = "premature-mutation"
	// ErrInvalidHierarchy indicates an inert class used in inheritance, a
	// missing parcel prerequisite, an unknown parent, or an inheritance cycle
	ErrInvalidHierarchy ErrorKind = "invalid-hierarchy"
	// ErrProvenanceMismatch indicates a class from an include dir in a source
	// parcel, or the reverse
	ErrProvenanceMismatch ErrorKind = "provenance-mismatch"
	// ErrLookupOverflow indicates a lookup key exceeds its fixed limit
	ErrLookupOverflow ErrorKind = "lookup-overflow"
	// ErrInvalidOverride indicates an override of a final method, or an
	// override whose signature does not match
	ErrInvalidOverride ErrorKind = "invalid-override"
	// ErrInvalidName indicates a malformed class name, nickname or symbol
	ErrInvalidName ErrorKind = "invalid-name"
	// ErrNotGrown indicates a query that needs a grown tree
	ErrNotGrown ErrorKind = "not-grown"
	// ErrUnknownType indicates an object type naming a class that neither the
	// parcel nor its prerequisites declare
	ErrUnknownType ErrorKind = "unknown-type"
)

// Error is the single error type produced by the class model
type Error struct {
	Kind ErrorKind
	// Class is the name of the class the error was reported against, if any
	Class string
	Msg   string
}

func (e *Error) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Class, e.Msg)
}

// Is matches another *Error of the same kind, so that callers can write
// errors.Is(err, &symbol.Error{Kind: symbol.ErrPrematureMutation})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or the empty
// kind if there is none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, class string, format string, args ...any) *Error {
	return &Error{Kind: kind, Class: class, Msg: fmt.Sprintf(format, args...)}
}
