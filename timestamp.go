package soia

import (
	"math"
	"time"
)

// minTimestampMillis and maxTimestampMillis bound a Timestamp's
// millisecond count to +/- 100,000,000 days, the bound ECMA-262 places on
// JavaScript's Date.
const (
	minTimestampMillis int64 = -8_640_000_000_000_000
	maxTimestampMillis int64 = 8_640_000_000_000_000
)

// Timestamp is an immutable value object wrapping a signed millisecond
// count since the Unix epoch. The zero Timestamp is the Unix
// epoch, which is also the default value.
type Timestamp struct {
	unixMillis int64
}

// UnixMillis returns the number of milliseconds since the Unix epoch.
func (t Timestamp) UnixMillis() int64 { return t.unixMillis }

// Time converts t to the standard library's time.Time, in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(t.unixMillis).UTC()
}

// Formatted renders t as an ISO-8601 UTC string with millisecond
// precision, used by the readable JSON encoding.
func (t Timestamp) Formatted() string {
	return t.Time().Format("2006-01-02T15:04:05.000Z")
}

func (t Timestamp) String() string { return t.Formatted() }

// FromUnixMillis constructs a Timestamp from a millisecond count, clamping
// to [minTimestampMillis, maxTimestampMillis]. Values from a
// trusted float64 source must be checked for NaN before calling this; use
// FromUnixMillisFloat for that case.
func FromUnixMillis(ms int64) Timestamp {
	switch {
	case ms < minTimestampMillis:
		return Timestamp{minTimestampMillis}
	case ms > maxTimestampMillis:
		return Timestamp{maxTimestampMillis}
	default:
		return Timestamp{ms}
	}
}

// FromUnixMillisFloat constructs a Timestamp from a float64 millisecond
// count. NaN is the sole numeric-input error in this entire package; every
// other value clamps.
func FromUnixMillisFloat(ms float64) (Timestamp, error) {
	if math.IsNaN(ms) {
		return Timestamp{}, overflowErrorf("soia: Timestamp.FromUnixMillis(NaN)")
	}
	return FromUnixMillis(clampInt64F(ms)), nil
}

// FromTime converts a time.Time to a Timestamp, clamping as above.
func FromTime(t time.Time) Timestamp {
	return FromUnixMillis(t.UnixMilli())
}

var timestampSerializer = &primitiveCodec[Timestamp]{
	kind: "timestamp",
	toJSON: func(x Timestamp, flavor JSONFlavor) any {
		if flavor == Dense {
			return x.unixMillis
		}
		return map[string]any{
			"unix_millis": x.unixMillis,
			"formatted":   x.Formatted(),
		}
	},
	fromJSON: func(j any, _ bool) (Timestamp, error) {
		switch v := j.(type) {
		case nil:
			return Timestamp{}, nil
		case map[string]any:
			ms, ok := v["unix_millis"]
			if !ok {
				return Timestamp{}, typeErrorf("soia: timestamp object missing \"unix_millis\"")
			}
			f, err := jsonNumberToFloat(ms)
			if err != nil {
				return Timestamp{}, err
			}
			return FromUnixMillis(clampInt64F(f)), nil
		default:
			f, err := jsonNumberToFloat(j)
			if err != nil {
				return Timestamp{}, typeErrorf("soia: expected timestamp number, numeric string, or {unix_millis}: %v", err)
			}
			return FromUnixMillis(clampInt64F(f)), nil
		}
	},
	writeWire: func(b *outbuf, x Timestamp) {
		if x.unixMillis == 0 {
			b.writeByte(0)
			return
		}
		b.writeByte(wireTimestamp)
		b.writeInt64LE(x.unixMillis)
	},
	readWire: func(b *inbuf) (Timestamp, error) {
		hdr, err := readWireHeader(b)
		if err != nil {
			return Timestamp{}, err
		}
		if !isNumericWire(hdr.wire) {
			return Timestamp{}, decodeErrorf("soia: expected numeric wire for timestamp, got %d", hdr.wire)
		}
		return FromUnixMillis(hdr.asInt64()), nil
	},
	defaultValue: Timestamp{},
	isDefault:    func(x Timestamp) bool { return x.unixMillis == 0 },
}

// TimestampSerializer returns the Serializer for the timestamp primitive
// type.
func TimestampSerializer() Serializer[Timestamp] { return timestampSerializer }
