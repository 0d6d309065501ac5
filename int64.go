package soia

import (
	"encoding/json"
	"strconv"
)

// maxSafeJSONInt is the largest (and, negated, the smallest) integer
// magnitude representable exactly by an IEEE-754 double, i.e. 2^53-1.
// Values beyond it render as decimal strings instead of JSON numbers.
const maxSafeJSONInt = 1<<53 - 1

var int64Serializer = &primitiveCodec[int64]{
	kind: "int64",
	toJSON: func(x int64, _ JSONFlavor) any {
		if x >= -maxSafeJSONInt && x <= maxSafeJSONInt {
			return json.Number(strconv.FormatInt(x, 10))
		}
		return strconv.FormatInt(x, 10)
	},
	fromJSON: func(j any, _ bool) (int64, error) {
		if j == nil {
			return 0, nil
		}
		big, err := jsonNumberToBigInt(j)
		if err != nil {
			return 0, err
		}
		return saturateBigToInt64(big), nil
	},
	writeWire: func(b *outbuf, x int64) {
		writeWireInt64(b, x)
	},
	readWire: func(b *inbuf) (int64, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return 0, err
		}
		if !isNumericWire(hdr.wire) {
			return 0, decodeErrorf("soia: expected numeric wire for int64, got %d", hdr.wire)
		}
		return hdr.asInt64(), nil
	},
	defaultValue: 0,
	isDefault:    func(x int64) bool { return x == 0 },
}

// Int64Serializer returns the Serializer for the int64 primitive type.
//
// FromJSON accepts a JSON number or a decimal string of any magnitude and
// saturates it to the int64 range; this module tightens (rather than
// preserves) the source implementation's from_json/to_json clamping
// asymmetry, since Go's int64 has no bigint fallback — see DESIGN.md.
func Int64Serializer() Serializer[int64] { return int64Serializer }
