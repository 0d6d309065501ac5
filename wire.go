package soia

// This file implements the variable-length number codec shared by every
// numeric, string, bytes, optional, array and record header: a single
// prefix byte classifies what follows, with values in [232, 255] acting as
// discriminators and everything below encoding itself inline.

// Wire discriminator bytes. Values in [0, 231] are themselves the encoded
// small non-negative integer.
const (
	wireMaxSmallInt = 231

	wireU16        byte = 232
	wireU32        byte = 233
	wireU64        byte = 234
	wireNegI8      byte = 235
	wireNegI16     byte = 236
	wireI32        byte = 237
	wireI64        byte = 238
	wireTimestamp  byte = 239
	wireF32        byte = 240
	wireF64        byte = 241
	wireEmptyStr   byte = 242
	wireStr        byte = 243
	wireEmptyBytes byte = 244
	wireBytes      byte = 245
	wireLen0       byte = 246 // empty array, or struct with 0 slots
	wireLen1       byte = 247 // array/struct with 1 slot
	wireEnum248    byte = 248 // enum value-variant, number >= 5
	wireLen2       byte = 249 // array/struct with 2 slots
	wireLenN       byte = 250 // array/struct with N >= 3 slots
	wireEnum251    byte = 251 // enum value-variant, number 1..=4 (251..254)
	wireEnum254    byte = 254
	wireNull       byte = 255
)

// writeWireUint writes n using the smallest wire form that can represent
// it, so byte output is deterministic. n must be non-negative. Array/struct
// slot counts use writeWireLen instead, since wireLen0/wireLen1/wireLen2/
// wireLenN have dedicated meanings distinct from a bare integer.
func writeWireUint(b *outbuf, n uint64) {
	switch {
	case n <= wireMaxSmallInt:
		b.writeByte(byte(n))
	case n < 1<<16:
		b.writeByte(wireU16)
		b.writeUint16LE(uint16(n))
	case n < 1<<32:
		b.writeByte(wireU32)
		b.writeUint32LE(uint32(n))
	default:
		b.writeByte(wireU64)
		b.writeUint64LE(n)
	}
}

// writeWireLen writes an array/struct slot count using the dedicated
// wireLen0/wireLen1/wireLen2/wireLenN branches.
func writeWireLen(b *outbuf, n int) {
	switch {
	case n == 0:
		b.writeByte(wireLen0)
	case n == 1:
		b.writeByte(wireLen1)
	case n == 2:
		b.writeByte(wireLen2)
	default:
		b.writeByte(wireLenN)
		writeWireUint(b, uint64(n))
	}
}

// writeWireInt32 writes an already-range-checked int32 using the smallest
// of the wireNegI8/wireNegI16/wireI32/plain-small-int/wireU16/wireU32
// branches. Since the input is a native Go int32, it is always
// representable exactly; no clamping happens here. Clamping only happens
// where a wider value (an int64, a float, a JSON number) is narrowed down
// to int32, which is a value-construction concern handled in int32.go, not
// a wire concern.
func writeWireInt32(b *outbuf, v int32) {
	switch {
	case v >= -256 && v <= -1:
		b.writeByte(wireNegI8)
		b.writeByte(byte(256 + v))
	case v >= -65536 && v <= -257:
		b.writeByte(wireNegI16)
		b.writeUint16LE(uint16(65536 + v))
	case v < -65536:
		b.writeByte(wireI32)
		b.writeInt32LE(v)
	case v >= 0 && v <= wireMaxSmallInt:
		b.writeByte(byte(v))
	case v < 65536:
		b.writeByte(wireU16)
		b.writeUint16LE(uint16(v))
	default:
		b.writeByte(wireU32)
		b.writeUint32LE(uint32(v))
	}
}

// writeWireInt64 writes an int64, reusing the int32 branches whenever the
// value fits in 32 bits, else falling back to wireI64.
func writeWireInt64(b *outbuf, v int64) {
	if v >= int64(minInt32) && v <= int64(maxInt32) {
		writeWireInt32(b, int32(v))
		return
	}
	b.writeByte(wireI64)
	b.writeInt64LE(v)
}

const (
	minInt32  int32  = -1 << 31
	maxInt32  int32  = 1<<31 - 1
	maxUint32 uint32 = 1<<32 - 1
	minInt64  int64  = -1 << 63
	maxInt64  int64  = 1<<63 - 1
	maxUint64 uint64 = 1<<64 - 1
)

// clampInt32 narrows an arbitrary int64 to the int32 range by saturation;
// numeric overflow clamps, it never errors.
func clampInt32(n int64) int32 {
	switch {
	case n < int64(minInt32):
		return minInt32
	case n > int64(maxInt32):
		return maxInt32
	default:
		return int32(n)
	}
}

// clampInt64F narrows an arbitrary float64 to the int64 range by
// saturation.
func clampInt64F(f float64) int64 {
	switch {
	case f < float64(minInt64):
		return minInt64
	case f >= 9223372036854775808.0: // 2^63, first float64 >= maxInt64+1
		return maxInt64
	default:
		return int64(f)
	}
}

// wireNumber is the decoded form of a variable-length number header:
// either an unsigned magnitude or a signed value, plus
// float bit patterns when the wire byte selected a float branch. Decoders that only care about
// one interpretation (e.g. array length) read the fields they need.
type wireNumber struct {
	wire byte
	u    uint64  // unsigned payload, for wire in {0..231, 232, 233, 234}
	neg  int64   // signed payload, for wire in {235, 236, 237, 238}
	f32  float32 // for wire == 240
	f64  float64 // for wire == 241
	ts   int64   // for wire == 239
}

// readWireHeader reads one variable-length number header and classifies
// it. This is the single decode routine every numeric/string/bytes/
// container decoder dispatches through.
func readWireHeader(b *inbuf) (wireNumber, error) {
	w, err := b.readByte()
	if err != nil {
		return wireNumber{}, err
	}
	switch {
	case w <= wireMaxSmallInt:
		return wireNumber{wire: w, u: uint64(w)}, nil
	case w == wireU16:
		v, err := b.readUint16LE()
		return wireNumber{wire: w, u: uint64(v)}, err
	case w == wireU32:
		v, err := b.readUint32LE()
		return wireNumber{wire: w, u: uint64(v)}, err
	case w == wireU64:
		v, err := b.readUint64LE()
		return wireNumber{wire: w, u: v}, err
	case w == wireNegI8:
		v, err := b.readByte()
		return wireNumber{wire: w, neg: -(256 - int64(v))}, err
	case w == wireNegI16:
		v, err := b.readUint16LE()
		return wireNumber{wire: w, neg: -(65536 - int64(v))}, err
	case w == wireI32:
		v, err := b.readInt32LE()
		return wireNumber{wire: w, neg: int64(v)}, err
	case w == wireI64:
		v, err := b.readInt64LE()
		return wireNumber{wire: w, neg: v}, err
	case w == wireTimestamp:
		v, err := b.readInt64LE()
		return wireNumber{wire: w, ts: v}, err
	case w == wireF32:
		v, err := b.readFloat32LE()
		return wireNumber{wire: w, f32: v}, err
	case w == wireF64:
		v, err := b.readFloat64LE()
		return wireNumber{wire: w, f64: v}, err
	default:
		// Wires 242..255 (strings, bytes, containers, enums, null) carry
		// no inline numeric payload here; callers that expect one of
		// those wires read their own trailing data.
		return wireNumber{wire: w}, nil
	}
}

func (n wireNumber) isNegBranch() bool {
	switch n.wire {
	case wireNegI8, wireNegI16, wireI32, wireI64:
		return true
	default:
		return false
	}
}

// asInt64 interprets a decoded wireNumber as a signed 64-bit integer,
// truncating as needed. Decoders MUST accept any numeric wire.
func (n wireNumber) asInt64() int64 {
	switch {
	case n.isNegBranch():
		return n.neg
	case n.wire == wireTimestamp:
		return n.ts
	case n.wire == wireF32:
		return int64(n.f32)
	case n.wire == wireF64:
		return int64(n.f64)
	default:
		return int64(n.u)
	}
}

// asUint64 interprets a decoded wireNumber as an unsigned 64-bit integer.
func (n wireNumber) asUint64() uint64 {
	switch {
	case n.isNegBranch():
		return uint64(n.neg)
	case n.wire == wireTimestamp:
		return uint64(n.ts)
	case n.wire == wireF32:
		return uint64(n.f32)
	case n.wire == wireF64:
		return uint64(n.f64)
	default:
		return n.u
	}
}

// asFloat64 interprets a decoded wireNumber as a float64.
func (n wireNumber) asFloat64() float64 {
	switch {
	case n.wire == wireF32:
		return float64(n.f32)
	case n.wire == wireF64:
		return n.f64
	case n.isNegBranch():
		return float64(n.neg)
	case n.wire == wireTimestamp:
		return float64(n.ts)
	default:
		return float64(n.u)
	}
}

// isNumericWire reports whether w classifies as one of the numeric headers
// (as opposed to a string/bytes/container/enum/null header).
func isNumericWire(w byte) bool {
	return w <= wireMaxSmallInt ||
		w == wireU16 || w == wireU32 || w == wireU64 ||
		w == wireNegI8 || w == wireNegI16 || w == wireI32 || w == wireI64 ||
		w == wireTimestamp || w == wireF32 || w == wireF64
}

// readWireLen reads an array/struct slot count header (wireLen0, wireLen1,
// wireLen2, or wireLenN followed by the count). A numeric wire is also
// accepted and read as the count itself: struct slots holding a default
// value are written as the single byte 0, so every container/record decoder
// must treat that byte as "zero slots".
func readWireLen(b *inbuf) (int, error) {
	w, err := b.peekByte()
	if err != nil {
		return 0, err
	}
	switch w {
	case wireLen0:
		b.pos++
		return 0, nil
	case wireLen1:
		b.pos++
		return 1, nil
	case wireLen2:
		b.pos++
		return 2, nil
	case wireLenN:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return 0, err
		}
		return int(n), nil
	default:
		if isNumericWire(w) {
			hdr, err := readWireHeader(b)
			if err != nil {
				return 0, err
			}
			return int(hdr.asUint64()), nil
		}
		return 0, decodeErrorf("soia: expected array/struct length header, got wire byte %d", w)
	}
}

// readWireUintBody reads a plain non-negative variable-length integer (the
// form used by array/struct counts beyond wireLenN, and by string/bytes
// lengths). It rejects wires that aren't in the unsigned-integer family.
func readWireUintBody(b *inbuf) (uint64, error) {
	hdr, err := readWireHeader(b)
	if err != nil {
		return 0, err
	}
	if hdr.wire > wireU64 {
		return 0, decodeErrorf("soia: expected length, got wire byte %d", hdr.wire)
	}
	return hdr.asUint64(), nil
}
