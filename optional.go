package soia

// Optional represents a value of type T that may be absent. The zero
// Optional is absent.
type Optional[T any] struct {
	value T
	some  bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, some: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// IsSome reports whether the value is present.
func (o Optional[T]) IsSome() bool { return o.some }

// Get returns the wrapped value and true if present, else the zero value
// and false.
func (o Optional[T]) Get() (T, bool) { return o.value, o.some }

// GetOr returns the wrapped value if present, else fallback.
func (o Optional[T]) GetOr(fallback T) T {
	if o.some {
		return o.value
	}
	return fallback
}

type optionalCodec[T any] struct {
	inner Serializer[T]
}

// OptionalSerializer builds the Serializer for optional<T> from the
// Serializer for T.
// Wrapping an optional serializer in another optional serializer is a
// no-op: OptionalSerializer(OptionalSerializer(s)) behaves
// exactly like OptionalSerializer(s) at the wire/JSON level because
// Optional[Optional[T]] still only has two observable states once
// flattened by Get(); callers that truly need nested-optional tracking
// should not collapse the two Optional wrappers into each other at the
// Go-type level, but the wire/JSON encodings here are idempotent under
// re-wrapping, matching the source.
func OptionalSerializer[T any](inner Serializer[T]) Serializer[Optional[T]] {
	return &optionalCodec[T]{inner: inner}
}

func (c *optionalCodec[T]) ToJSON(x Optional[T], flavor JSONFlavor) any {
	if !x.some {
		return nil
	}
	return c.inner.ToJSON(x.value, flavor)
}

func (c *optionalCodec[T]) FromJSON(j any, preserveUnknowns bool) (Optional[T], error) {
	if j == nil || isZeroJSON(j) {
		// JSON 0 is the universal defaulted-slot placeholder, and
		// an optional's default is absent. Some(0) therefore does not survive
		// a round trip for numeric inners; this matches the source.
		return Optional[T]{}, nil
	}
	v, err := c.inner.FromJSON(j, preserveUnknowns)
	if err != nil {
		return Optional[T]{}, err
	}
	return Some(v), nil
}

func (c *optionalCodec[T]) ToJSONCode(x Optional[T], flavor JSONFlavor, indent bool) (string, error) {
	return marshalJSONCode(c.ToJSON(x, flavor), flavor, indent)
}

func (c *optionalCodec[T]) FromJSONCode(code string, preserveUnknowns bool) (Optional[T], error) {
	j, err := unmarshalJSONCode(code)
	if err != nil {
		return Optional[T]{}, err
	}
	return c.FromJSON(j, preserveUnknowns)
}

func (c *optionalCodec[T]) ToBytes(x Optional[T]) []byte {
	b := newOutbuf()
	appendMagic(b)
	c.writeWire(b, x)
	return b.Bytes()
}

func (c *optionalCodec[T]) writeWire(b *outbuf, x Optional[T]) {
	if !x.some {
		b.writeByte(wireNull)
		return
	}
	writeValueWire(b, c.inner, x.value)
}

func (c *optionalCodec[T]) FromBytes(data []byte, preserveUnknowns bool) (Optional[T], error) {
	body, err := stripMagic(data)
	if err != nil {
		return Optional[T]{}, err
	}
	in := newInbuf(body, preserveUnknowns)
	return c.readWire(in)
}

func (c *optionalCodec[T]) readWire(b *inbuf) (Optional[T], error) {
	w, err := b.peekByte()
	if err != nil {
		return Optional[T]{}, err
	}
	if w == wireNull || w == 0 {
		b.pos++
		return Optional[T]{}, nil
	}
	v, err := readValueWire(b, c.inner)
	if err != nil {
		return Optional[T]{}, err
	}
	return Some(v), nil
}

func (c *optionalCodec[T]) DefaultValue() Optional[T] { return Optional[T]{} }

func (c *optionalCodec[T]) IsDefault(x Optional[T]) bool { return !x.some }

func (c *optionalCodec[T]) TypeDescriptor() *TypeDescriptor {
	return &TypeDescriptor{kind: kindOptional, elem: c.inner.TypeDescriptor()}
}

func (c *optionalCodec[T]) writeWireValue(b *outbuf, x Optional[T]) { c.writeWire(b, x) }

func (c *optionalCodec[T]) readWireValue(b *inbuf) (Optional[T], error) { return c.readWire(b) }
