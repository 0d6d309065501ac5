package soia

// primitiveCodec is the shared Serializer[T] implementation for every
// primitive type. Each primitive's file (bool.go, int32.go, ...)
// only supplies the four type-specific functions; ToBytes/FromBytes/
// ToJSONCode/FromJSONCode are identical across all of them (magic-byte
// handling, JSON string (de)serialization), so they live here once rather
// than duplicating the dispatch machinery per kind.
type primitiveCodec[T any] struct {
	kind         string
	toJSON       func(x T, flavor JSONFlavor) any
	fromJSON     func(j any, preserveUnknowns bool) (T, error)
	writeWire    func(b *outbuf, x T)
	readWire     func(b *inbuf) (T, error)
	defaultValue T
	isDefault    func(x T) bool
}

func (c *primitiveCodec[T]) ToJSON(x T, flavor JSONFlavor) any { return c.toJSON(x, flavor) }

func (c *primitiveCodec[T]) FromJSON(j any, preserveUnknowns bool) (T, error) {
	return c.fromJSON(j, preserveUnknowns)
}

func (c *primitiveCodec[T]) ToJSONCode(x T, flavor JSONFlavor, indent bool) (string, error) {
	return marshalJSONCode(c.toJSON(x, flavor), flavor, indent)
}

func (c *primitiveCodec[T]) FromJSONCode(code string, preserveUnknowns bool) (T, error) {
	j, err := unmarshalJSONCode(code)
	if err != nil {
		return c.defaultValue, err
	}
	return c.fromJSON(j, preserveUnknowns)
}

func (c *primitiveCodec[T]) ToBytes(x T) []byte {
	b := newOutbuf()
	appendMagic(b)
	c.writeWire(b, x)
	return b.Bytes()
}

func (c *primitiveCodec[T]) FromBytes(data []byte, preserveUnknowns bool) (T, error) {
	body, err := stripMagic(data)
	if err != nil {
		return c.defaultValue, err
	}
	in := newInbuf(body, preserveUnknowns)
	return c.readWire(in)
}

func (c *primitiveCodec[T]) DefaultValue() T { return c.defaultValue }

func (c *primitiveCodec[T]) IsDefault(x T) bool { return c.isDefault(x) }

func (c *primitiveCodec[T]) TypeDescriptor() *TypeDescriptor {
	return &TypeDescriptor{kind: kindPrimitive, primitiveKind: c.kind}
}

// writeWireValue and readWireValue satisfy the internal wireCodec[T]
// interface (wirecodec.go), letting container/record codecs embed a
// primitive value's wire form directly, without the "soia" magic prefix
// that only appears at the top of a complete ToBytes/FromBytes call.
func (c *primitiveCodec[T]) writeWireValue(b *outbuf, x T) { c.writeWire(b, x) }

func (c *primitiveCodec[T]) readWireValue(b *inbuf) (T, error) { return c.readWire(b) }
