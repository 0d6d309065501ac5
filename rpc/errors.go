package rpc

import "fmt"

// statusError carries the HTTP status a handler or framing failure should
// produce. The envelope only distinguishes 400 (bad request) from 500
// (handler failure).
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string { return e.msg }

func badRequestf(format string, args ...interface{}) error {
	return &statusError{status: 400, msg: fmt.Sprintf(format, args...)}
}

func internalf(format string, args ...interface{}) error {
	return &statusError{status: 500, msg: fmt.Sprintf(format, args...)}
}

// statusOf returns the HTTP status err should produce: 400 for malformed
// framing/requests, 500 for anything else, including unclassified handler
// errors.
func statusOf(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.status
	}
	return 500
}
