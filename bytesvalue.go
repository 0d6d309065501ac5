package soia

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Bytes is an immutable byte sequence supporting slicing without copy. The
// zero Bytes is the empty sequence, shared process-wide as the empty-bytes
// singleton.
type Bytes struct {
	data []byte
}

// NewBytes wraps b as an immutable Bytes. The caller must not mutate b
// after this call; use CopyBytes if the source slice is still owned
// elsewhere.
func NewBytes(b []byte) Bytes {
	if len(b) == 0 {
		return Bytes{}
	}
	return Bytes{data: b}
}

// CopyBytes copies b into a new, independently-owned Bytes.
func CopyBytes(b []byte) Bytes {
	if len(b) == 0 {
		return Bytes{}
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Bytes{data: cp}
}

// Len returns the number of bytes.
func (b Bytes) Len() int { return len(b.data) }

// Data returns the underlying byte slice. Callers must treat it as
// read-only: it may alias the slice handed to NewBytes or a slice produced
// by Slice.
func (b Bytes) Data() []byte { return b.data }

// Slice returns the sub-sequence [start:end) without copying, aliasing the
// same backing array.
func (b Bytes) Slice(start, end int) Bytes {
	return Bytes{data: b.data[start:end]}
}

func (b Bytes) Equal(other Bytes) bool {
	if len(b.data) != len(other.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

var bytesSerializer = &primitiveCodec[Bytes]{
	kind: "bytes",
	toJSON: func(x Bytes, flavor JSONFlavor) any {
		if flavor == Dense {
			return base64.StdEncoding.EncodeToString(x.data)
		}
		return "hex:" + hex.EncodeToString(x.data)
	},
	fromJSON: func(j any, _ bool) (Bytes, error) {
		switch v := j.(type) {
		case nil:
			return Bytes{}, nil
		case string:
			if rest, ok := strings.CutPrefix(v, "hex:"); ok {
				d, err := hex.DecodeString(rest)
				if err != nil {
					return Bytes{}, decodeErrorf("soia: invalid hex bytes: %v", err)
				}
				return NewBytes(d), nil
			}
			d, err := base64.StdEncoding.DecodeString(v)
			if err != nil {
				return Bytes{}, decodeErrorf("soia: invalid base64 bytes: %v", err)
			}
			return NewBytes(d), nil
		default:
			if isZeroJSON(j) {
				return Bytes{}, nil
			}
			return Bytes{}, typeErrorf("soia: expected bytes, got %T", j)
		}
	},
	writeWire: func(b *outbuf, x Bytes) {
		if len(x.data) == 0 {
			b.writeByte(wireEmptyBytes)
			return
		}
		b.writeByte(wireBytes)
		writeWireUint(b, uint64(len(x.data)))
		b.write(x.data)
	},
	readWire: func(b *inbuf) (Bytes, error) {
		w, err := b.readByte()
		if err != nil {
			return Bytes{}, err
		}
		switch w {
		case 0:
			return Bytes{}, nil
		case wireEmptyBytes:
			return Bytes{}, nil
		case wireBytes:
			n, err := readWireUintBody(b)
			if err != nil {
				return Bytes{}, err
			}
			s, err := b.readN(int(n))
			if err != nil {
				return Bytes{}, err
			}
			return CopyBytes(s), nil
		default:
			return Bytes{}, decodeErrorf("soia: expected bytes wire header, got %d", w)
		}
	},
	defaultValue: Bytes{},
	isDefault:    func(x Bytes) bool { return len(x.data) == 0 },
}

// BytesSerializer returns the Serializer for the bytes primitive type.
func BytesSerializer() Serializer[Bytes] { return bytesSerializer }
