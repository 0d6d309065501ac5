package soia

import "regexp"

// keyChainPattern validates a key-extractor dotted-path string:
// "^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)*$".
var keyChainPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)*$`)

// ValidateKeyChain checks a key-extractor dotted path lexically. It is
// exported so generated code can validate a schema-declared key
// chain at module-registration time and surface a RegistrationError instead
// of silently accepting a malformed path.
func ValidateKeyChain(chain string) error {
	if !keyChainPattern.MatchString(chain) {
		return registrationErrorf("soia: invalid key-extractor path %q", chain)
	}
	return nil
}

type arrayCodec[T any] struct {
	inner      Serializer[T]
	keyChain   string // dotted key-extractor path; "" if none declared
	emptySlice []T
}

// ArraySerializer builds the Serializer for array<T> from the Serializer
// for T. keyChain is the optional dotted key-extractor path used by generated
// indexed-lookup code; pass "" when the schema declares none. A non-empty
// keyChain that fails ValidateKeyChain panics, mirroring how a malformed
// schema-side declaration is a RegistrationError, not a
// recoverable runtime condition.
func ArraySerializer[T any](inner Serializer[T], keyChain string) Serializer[[]T] {
	if keyChain != "" {
		if err := ValidateKeyChain(keyChain); err != nil {
			panic(err)
		}
	}
	return &arrayCodec[T]{inner: inner, keyChain: keyChain, emptySlice: []T{}}
}

// KeyChain returns the dotted key-extractor path this array serializer was
// built with, or "" if none.
func (c *arrayCodec[T]) KeyChain() string { return c.keyChain }

func (c *arrayCodec[T]) ToJSON(x []T, flavor JSONFlavor) any {
	if len(x) == 0 {
		// Dense JSON: "0" decodes to the shared empty array;
		// symmetrically, the empty array encodes as the literal 0 in dense
		// flavor. Readable flavor always uses an explicit empty list.
		if flavor == Dense {
			return 0
		}
		return []any{}
	}
	out := make([]any, len(x))
	for i, v := range x {
		out[i] = c.inner.ToJSON(v, flavor)
	}
	return out
}

func (c *arrayCodec[T]) FromJSON(j any, preserveUnknowns bool) ([]T, error) {
	switch v := j.(type) {
	case nil:
		return c.emptySlice, nil
	case []any:
		if len(v) == 0 {
			return c.emptySlice, nil
		}
		out := make([]T, len(v))
		for i, item := range v {
			val, err := c.inner.FromJSON(item, preserveUnknowns)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		if isZeroJSON(j) {
			return c.emptySlice, nil
		}
		return nil, typeErrorf("soia: expected array, got %T", j)
	}
}

func (c *arrayCodec[T]) ToJSONCode(x []T, flavor JSONFlavor, indent bool) (string, error) {
	return marshalJSONCode(c.ToJSON(x, flavor), flavor, indent)
}

func (c *arrayCodec[T]) FromJSONCode(code string, preserveUnknowns bool) ([]T, error) {
	j, err := unmarshalJSONCode(code)
	if err != nil {
		return nil, err
	}
	return c.FromJSON(j, preserveUnknowns)
}

func (c *arrayCodec[T]) ToBytes(x []T) []byte {
	b := newOutbuf()
	appendMagic(b)
	c.writeWireValue(b, x)
	return b.Bytes()
}

func (c *arrayCodec[T]) writeWireValue(b *outbuf, x []T) {
	writeWireLen(b, len(x))
	for _, v := range x {
		writeValueWire(b, c.inner, v)
	}
}

func (c *arrayCodec[T]) FromBytes(data []byte, preserveUnknowns bool) ([]T, error) {
	body, err := stripMagic(data)
	if err != nil {
		return nil, err
	}
	in := newInbuf(body, preserveUnknowns)
	return c.readWireValue(in)
}

func (c *arrayCodec[T]) readWireValue(b *inbuf) ([]T, error) {
	n, err := readWireLen(b)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return c.emptySlice, nil
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		v, err := readValueWire(b, c.inner)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	// Arrays returned from deserialization are deeply frozen;
	// in Go there is no mutable/frozen distinction on a []T beyond
	// documenting that callers must not mutate the returned slice.
	return out, nil
}

func (c *arrayCodec[T]) DefaultValue() []T { return c.emptySlice }

func (c *arrayCodec[T]) IsDefault(x []T) bool { return len(x) == 0 }

func (c *arrayCodec[T]) TypeDescriptor() *TypeDescriptor {
	return &TypeDescriptor{kind: kindArray, elem: c.inner.TypeDescriptor(), keyChain: c.keyChain}
}
