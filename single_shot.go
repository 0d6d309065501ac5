package soia

// MarshalBytes, UnmarshalBytes, MarshalDenseJSON and UnmarshalJSON are
// function-form wrappers over a Serializer's own methods; each takes the
// Serializer as its first argument.

// MarshalBytes renders x to its binary wire form using s, equivalent to
// s.ToBytes(x).
func MarshalBytes[T any](s Serializer[T], x T) []byte {
	return s.ToBytes(x)
}

// UnmarshalBytes parses b using s, equivalent to s.FromBytes(b, false).
func UnmarshalBytes[T any](s Serializer[T], b []byte) (T, error) {
	return s.FromBytes(b, false)
}

// MarshalDenseJSON renders x to its compact JSON string form.
func MarshalDenseJSON[T any](s Serializer[T], x T) (string, error) {
	return s.ToJSONCode(x, Dense, false)
}

// UnmarshalJSON parses a JSON string produced by either MarshalDenseJSON or
// a readable-flavor encoder, equivalent to s.FromJSONCode(code, false).
func UnmarshalJSON[T any](s Serializer[T], code string) (T, error) {
	return s.FromJSONCode(code, false)
}
