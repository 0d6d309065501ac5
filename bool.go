package soia

// boolSerializer is the Serializer[bool] singleton.
var boolSerializer = &primitiveCodec[bool]{
	kind: "bool",
	toJSON: func(x bool, flavor JSONFlavor) any {
		if flavor == Dense {
			// Dense JSON renders bool as 0|1.
			if x {
				return 1
			}
			return 0
		}
		return x
	},
	fromJSON: func(j any, _ bool) (bool, error) {
		switch v := j.(type) {
		case bool:
			return v, nil
		case float64:
			return v != 0, nil
		case nil:
			return false, nil
		default:
			n, err := jsonNumberToFloat(j)
			if err == nil {
				return n != 0, nil
			}
			return false, typeErrorf("soia: expected bool, got %T", j)
		}
	},
	writeWire: func(b *outbuf, x bool) {
		if x {
			b.writeByte(1)
		} else {
			b.writeByte(0)
		}
	},
	readWire: func(b *inbuf) (bool, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return false, err
		}
		// Decoder accepts any numeric wire as "!=0 -> true".
		return hdr.asInt64() != 0, nil
	},
	defaultValue: false,
	isDefault:    func(x bool) bool { return !x },
}

// BoolSerializer returns the Serializer for the bool primitive type.
func BoolSerializer() Serializer[bool] { return boolSerializer }
