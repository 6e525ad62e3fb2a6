// Package derrors implements dura's error taxonomy: a small set of
// interpretable kinds that callers can dispatch on, each able to wrap an
// underlying cause.
package derrors

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind classifies an error into one of the categories a caller of dura's
// archive API needs to distinguish.
type Kind int

const (
	// Other is an unclassified error, typically a raw I/O failure that
	// doesn't fit a more specific kind.
	Other Kind = iota
	// NoSuchArchive means the archive directory or its header file is
	// absent.
	NoSuchArchive
	// ArchiveExists means a create target already exists.
	ArchiveExists
	// BadArchiveHeader means the header is present but unreadable,
	// malformed, or has the wrong magic.
	BadArchiveHeader
	// BadRecord means a record file failed deserialization.
	BadRecord
	// MissingRecord means a structurally required record is absent.
	MissingRecord
	// IntegrityFailure means a computed digest or length disagreed with
	// what was recorded on disk.
	IntegrityFailure
)

func (k Kind) String() string {
	switch k {
	case NoSuchArchive:
		return "no such archive"
	case ArchiveExists:
		return "archive exists"
	case BadArchiveHeader:
		return "bad archive header"
	case BadRecord:
		return "bad record"
	case MissingRecord:
		return "missing record"
	case IntegrityFailure:
		return "integrity failure"
	default:
		return "error"
	}
}

// Scope names the level at which an IntegrityFailure was detected.
type Scope string

const (
	ScopeArchive Scope = "archive"
	ScopeBand    Scope = "band"
	ScopeBlock   Scope = "block"
	ScopeEntry   Scope = "entry"
)

// Error is dura's error value: a kind, an optional scope/detail pair (used
// by IntegrityFailure), a path the error concerns, and an underlying cause.
type Error struct {
	Kind   Kind
	Scope  Scope
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Scope != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Scope)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// E constructs an *Error of the given kind, wrapping err (which may be
// nil) and attaching path for context.
func E(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Integrity constructs an IntegrityFailure error at the given scope.
func Integrity(scope Scope, path, detail string) *Error {
	return &Error{Kind: IntegrityFailure, Scope: scope, Path: path, Detail: detail}
}

// Wrap attaches additional context to err using golang.org/x/xerrors,
// preserving the %w chain so errors.Is/errors.As and KindOf keep working.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf(format+": %w", append(args, err)...)
}

// KindOf walks the error chain looking for a *derrors.Error and returns its
// Kind, or Other if none is found.
func KindOf(err error) Kind {
	var de *Error
	if xerrors.As(err, &de) {
		return de.Kind
	}
	return Other
}

// Is reports whether the first *derrors.Error in err's chain has kind k;
// errors further down the chain are not consulted.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}
