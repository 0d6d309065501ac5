package soia

var int32Serializer = &primitiveCodec[int32]{
	kind: "int32",
	toJSON: func(x int32, _ JSONFlavor) any {
		return x
	},
	fromJSON: func(j any, _ bool) (int32, error) {
		if j == nil {
			return 0, nil
		}
		f, err := jsonNumberToFloat(j)
		if err != nil {
			return 0, err
		}
		// Out-of-range and fractional JSON numbers are documented lossy
		// conversions: truncate toward zero, then saturate.
		return clampInt32(clampInt64F(f)), nil
	},
	writeWire: func(b *outbuf, x int32) {
		writeWireInt32(b, x)
	},
	readWire: func(b *inbuf) (int32, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return 0, err
		}
		if !isNumericWire(hdr.wire) {
			return 0, decodeErrorf("soia: expected numeric wire for int32, got %d", hdr.wire)
		}
		// Decoders MUST accept all numeric wires, truncated to 32-bit
		// two's complement.
		return int32(hdr.asInt64()), nil
	},
	defaultValue: 0,
	isDefault:    func(x int32) bool { return x == 0 },
}

// Int32Serializer returns the Serializer for the int32 primitive type.
func Int32Serializer() Serializer[int32] { return int32Serializer }
