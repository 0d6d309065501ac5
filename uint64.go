package soia

import (
	"encoding/json"
	"strconv"
)

var uint64Serializer = &primitiveCodec[uint64]{
	kind: "uint64",
	toJSON: func(x uint64, _ JSONFlavor) any {
		if x <= maxSafeJSONInt {
			return json.Number(strconv.FormatUint(x, 10))
		}
		return strconv.FormatUint(x, 10)
	},
	fromJSON: func(j any, _ bool) (uint64, error) {
		if j == nil {
			return 0, nil
		}
		big, err := jsonNumberToBigInt(j)
		if err != nil {
			return 0, err
		}
		return saturateBigToUint64(big), nil
	},
	writeWire: func(b *outbuf, x uint64) {
		writeWireUint(b, x)
	},
	readWire: func(b *inbuf) (uint64, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return 0, err
		}
		if !isNumericWire(hdr.wire) {
			return 0, decodeErrorf("soia: expected numeric wire for uint64, got %d", hdr.wire)
		}
		return hdr.asUint64(), nil
	},
	defaultValue: 0,
	isDefault:    func(x uint64) bool { return x == 0 },
}

// Uint64Serializer returns the Serializer for the uint64 primitive type.
func Uint64Serializer() Serializer[uint64] { return uint64Serializer }
