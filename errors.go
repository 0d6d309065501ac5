package soia

import "fmt"

// Code is a stable, cross-process error category, following the
// (ID, message) error model used throughout this codebase's lineage: the
// category is checked with CodeOf/Is, never by comparing error strings.
type Code string

const (
	// Unknown is the code of an error with no declared category.
	Unknown Code = ""
	// DecodeError covers truncated buffers, unknown wire bytes that can't
	// be skipped, malformed UTF-8, and enum numbers resolving to the wrong
	// variant kind.
	DecodeError Code = "soia.DecodeError"
	// TypeError covers a JSON value whose shape doesn't match the declared
	// type.
	TypeError Code = "soia.TypeError"
	// Overflow covers the sole numeric-input error: constructing a
	// timestamp from NaN. Every other numeric overflow clamps instead of
	// erroring.
	Overflow Code = "soia.Overflow"
	// RegistrationError covers duplicate record identities, duplicate
	// method numbers, and invalid key-extractor strings. Always fatal at
	// registration time.
	RegistrationError Code = "soia.RegistrationError"
	// RPCError names the category of RPC failures. The rpc package does not
	// return it: it reports bad request framing, unknown method numbers and
	// handler failures through its own error type carrying an HTTP status.
	RPCError Code = "soia.RPCError"
)

// Error is the error type returned by every public soia operation that can
// fail. It carries a stable Code so callers can branch on category without
// parsing the message.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// CodeOf returns the Code of err, or Unknown if err is nil or has no code.
func CodeOf(err error) Code {
	if err == nil {
		return Unknown
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return Unknown
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

func newErrorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func decodeErrorf(format string, args ...interface{}) *Error {
	return newErrorf(DecodeError, format, args...)
}

func typeErrorf(format string, args ...interface{}) *Error {
	return newErrorf(TypeError, format, args...)
}

func overflowErrorf(format string, args ...interface{}) *Error {
	return newErrorf(Overflow, format, args...)
}

func registrationErrorf(format string, args ...interface{}) *Error {
	return newErrorf(RegistrationError, format, args...)
}
