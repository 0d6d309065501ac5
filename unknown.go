package soia

// unknownToken is attached to every UnknownFields payload to identify its
// owning struct/enum serializer, so a payload captured by one record's
// decoder can never be re-attached to a value of a different record type.
type unknownToken struct {
	recordID string
}

// UnknownFields is the opaque unknown-fields payload a struct or enum
// instance may carry when deserialized in preserve mode.
// It records the owning serializer's token, the total number of slots (for
// structs) or the raw variant (for enums) observed, and either a JSON tail
// or a raw wire-byte tail, whichever form the value was decoded from.
// Generated struct/enum types that want preservation support hold a
// *UnknownFields field and implement PreservesUnknownFields.
type UnknownFields struct {
	token      *unknownToken
	totalSlots int    // struct: total observed slots; enum: unused
	jsonTail   []any  // struct: unknown trailing dense-JSON elements, if decoded from JSON
	rawTail    []byte // struct: unknown trailing wire bytes, if decoded from bytes
	enumWire   []byte // enum: the raw wire bytes of an unrecognized variant
	enumJSON   any    // enum: the raw dense-JSON value of an unrecognized variant
}

// PreservesUnknownFields is implemented by a generated struct or enum type
// that supports forward-compatible unknown-field preservation. S is the
// record's frozen Go type itself.
type PreservesUnknownFields[S any] interface {
	// GetUnknownFields returns the payload captured at decode time, or nil
	// if none (including: this value was not decoded, or was decoded
	// without preserve mode).
	GetUnknownFields() *UnknownFields
	// WithUnknownFields returns a copy of the receiver carrying the given
	// payload. Since frozen values are immutable, this returns a
	// new S rather than mutating in place.
	WithUnknownFields(*UnknownFields) S
}

func sameToken(t *unknownToken, recordID string) bool {
	return t != nil && t.recordID == recordID
}
