package compiler

import "fmt"

// ErrorKind enumerates the five configuration-error classes Compile can
// return.
type ErrorKind string

const (
	InvalidName              ErrorKind = "InvalidName"
	InvalidRegex             ErrorKind = "InvalidRegex"
	InvalidAccessor          ErrorKind = "InvalidAccessor"
	UnknownVariableReference ErrorKind = "UnknownVariableReference"
	MissingField             ErrorKind = "MissingField"
)

// Error is the single structured build-time error Compile returns: it
// identifies the offending node by path (e.g. "root/r/rule1/WHERE") so a
// caller can report exactly where a configuration failed to compile. The
// whole tree load fails on the first such error; nothing is partially
// loaded.
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
}

func newError(kind ErrorKind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}
