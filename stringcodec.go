package soia

import "unicode/utf8"

var stringSerializer = &primitiveCodec[string]{
	kind: "string",
	toJSON: func(x string, _ JSONFlavor) any {
		return x
	},
	fromJSON: func(j any, _ bool) (string, error) {
		switch v := j.(type) {
		case nil:
			return "", nil
		case string:
			return v, nil
		default:
			if isZeroJSON(j) {
				// A literal JSON 0 decodes to the empty string, like any
				// other defaulted slot.
				return "", nil
			}
			return "", typeErrorf("soia: expected string, got %T", j)
		}
	},
	writeWire: func(b *outbuf, x string) {
		if x == "" {
			b.writeByte(wireEmptyStr)
			return
		}
		b.writeByte(wireStr)
		writeWireUint(b, uint64(len(x)))
		b.writeUTF8(x)
	},
	readWire: func(b *inbuf) (string, error) {
		w, err := b.readByte()
		if err != nil {
			return "", err
		}
		switch w {
		case 0:
			// A defaulted struct slot is a single 0 byte regardless of the
			// field's type.
			return "", nil
		case wireEmptyStr:
			return "", nil
		case wireStr:
			n, err := readWireUintBody(b)
			if err != nil {
				return "", err
			}
			s, err := b.readN(int(n))
			if err != nil {
				return "", err
			}
			if !utf8.Valid(s) {
				return "", decodeErrorf("soia: string payload is not valid UTF-8")
			}
			return string(s), nil
		default:
			return "", decodeErrorf("soia: expected string wire header, got %d", w)
		}
	},
	defaultValue: "",
	isDefault:    func(x string) bool { return x == "" },
}

// StringSerializer returns the Serializer for the string primitive type.
func StringSerializer() Serializer[string] { return stringSerializer }
