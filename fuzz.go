package soia

// FuzzSkip exercises the unused-field skipper (skip.go) against arbitrary
// input with no schema involved. It never panics on malformed input: a
// DecodeError is
// an expected outcome, not a bug. Intended as the driver for a Go native
// fuzz test (FuzzSkipUnused), not for production use.
func FuzzSkip(data []byte) {
	body, err := stripMagic(data)
	if err != nil {
		return
	}
	b := newInbuf(body, false)
	for b.remaining() > 0 {
		if err := skipWireValue(b); err != nil {
			return
		}
	}
}
