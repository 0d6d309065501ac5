package soia

import (
	"encoding/json"
	"strings"
)

// JSONFlavor selects between the dense (array/number-indexed, compact,
// rename-safe) and readable (object/name-indexed, human-friendly) JSON
// encodings.
type JSONFlavor int

const (
	// Dense is the default, compact, rename-safe JSON flavor.
	Dense JSONFlavor = iota
	// Readable is the human-friendly, name-indexed JSON flavor.
	Readable
)

// Serializer is the uniform contract every codec in this package
// satisfies. T is the Go representation of the soia value (a
// primitive Go type, a generated struct, or a generated enum type).
type Serializer[T any] interface {
	// ToJSON renders x as a JSON value tree (not yet marshaled to text) in
	// the given flavor.
	ToJSON(x T, flavor JSONFlavor) any
	// FromJSON parses a JSON value tree produced by ToJSON in either
	// flavor; decoders are flavor-agnostic on input. preserveUnknowns
	// requests that unrecognized trailing struct fields / enum variants be
	// retained for byte-faithful re-encoding.
	FromJSON(j any, preserveUnknowns bool) (T, error)
	// ToJSONCode renders x to a JSON string in the given flavor.
	ToJSONCode(x T, flavor JSONFlavor, indent bool) (string, error)
	// FromJSONCode parses a JSON string produced by ToJSONCode.
	FromJSONCode(code string, preserveUnknowns bool) (T, error)
	// ToBytes renders x to the binary wire form, prefixed with the 4-byte
	// magic "soia".
	ToBytes(x T) []byte
	// FromBytes parses the binary wire form produced by ToBytes, skipping
	// the 4-byte magic.
	FromBytes(b []byte, preserveUnknowns bool) (T, error)
	// TypeDescriptor returns the reflective type descriptor for T.
	TypeDescriptor() *TypeDescriptor
	// DefaultValue returns T's zero/default value.
	DefaultValue() T
	// IsDefault reports whether x is structurally equal to DefaultValue()
	// and carries no unknown-fields payload.
	IsDefault(x T) bool
}

// wireMagic is the 4-byte ASCII prefix every ToBytes output begins with
// and every FromBytes input must skip.
var wireMagic = [4]byte{'s', 'o', 'i', 'a'}

func appendMagic(b *outbuf) {
	b.write(wireMagic[:])
}

func stripMagic(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, decodeErrorf("soia: input too short to contain the \"soia\" magic")
	}
	// FromBytes skips exactly 4 bytes regardless of content.
	return data[4:], nil
}

// marshalJSONCode renders j to a JSON string, two-space indented when
// indent is set and flavor is Readable, compact otherwise.
func marshalJSONCode(j any, flavor JSONFlavor, indent bool) (string, error) {
	var (
		b   []byte
		err error
	)
	if indent && flavor == Readable {
		b, err = json.MarshalIndent(j, "", "  ")
	} else {
		b, err = json.Marshal(j)
	}
	if err != nil {
		return "", typeErrorf("soia: failed to marshal JSON: %v", err)
	}
	return string(b), nil
}

func unmarshalJSONCode(code string) (any, error) {
	var v any
	dec := json.NewDecoder(strings.NewReader(code))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, typeErrorf("soia: failed to parse JSON: %v", err)
	}
	return v, nil
}
