package soia

var float32Serializer = &primitiveCodec[float32]{
	kind: "float32",
	toJSON: func(x float32, _ JSONFlavor) any {
		return float64Literal(float64(x))
	},
	fromJSON: func(j any, _ bool) (float32, error) {
		if j == nil {
			return 0, nil
		}
		f, err := parseFloatLiteral(j)
		if err != nil {
			return 0, err
		}
		return float32(f), nil
	},
	writeWire: func(b *outbuf, x float32) {
		if x == 0 {
			b.writeByte(0)
			return
		}
		b.writeByte(wireF32)
		b.writeFloat32LE(x)
	},
	readWire: func(b *inbuf) (float32, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return 0, err
		}
		if !isNumericWire(hdr.wire) {
			return 0, decodeErrorf("soia: expected numeric wire for float32, got %d", hdr.wire)
		}
		return float32(hdr.asFloat64()), nil
	},
	defaultValue: 0,
	// NaN is not default; Go's x == 0 already returns false for NaN, so
	// this is the correct comparison as written.
	isDefault: func(x float32) bool { return x == 0 },
}

// Float32Serializer returns the Serializer for the float32 primitive type.
func Float32Serializer() Serializer[float32] { return float32Serializer }

var float64Serializer = &primitiveCodec[float64]{
	kind: "float64",
	toJSON: func(x float64, _ JSONFlavor) any {
		return float64Literal(x)
	},
	fromJSON: func(j any, _ bool) (float64, error) {
		if j == nil {
			return 0, nil
		}
		return parseFloatLiteral(j)
	},
	writeWire: func(b *outbuf, x float64) {
		if x == 0 {
			b.writeByte(0)
			return
		}
		b.writeByte(wireF64)
		b.writeFloat64LE(x)
	},
	readWire: func(b *inbuf) (float64, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return 0, err
		}
		if !isNumericWire(hdr.wire) {
			return 0, decodeErrorf("soia: expected numeric wire for float64, got %d", hdr.wire)
		}
		return hdr.asFloat64(), nil
	},
	defaultValue: 0,
	isDefault:    func(x float64) bool { return x == 0 },
}

// Float64Serializer returns the Serializer for the float64 primitive type.
func Float64Serializer() Serializer[float64] { return float64Serializer }
