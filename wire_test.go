package soia

import (
	"bytes"
	"testing"
)

// encodeWireInt32 is a test helper returning the raw wire bytes (no magic)
// writeWireInt32 produces for v.
func encodeWireInt32(v int32) []byte {
	b := newOutbuf()
	writeWireInt32(b, v)
	return append([]byte(nil), b.Bytes()...)
}

func TestWireInt32Boundaries(t *testing.T) {
	// Branch boundaries from the wire grammar, one row per edge value. Raw
	// table loop on purpose: the expected bytes are the contract.
	tests := []struct {
		v    int32
		want []byte
	}{
		{-2147483648, []byte{237, 0x00, 0x00, 0x00, 0x80}},
		{-65537, []byte{237, 0xff, 0xff, 0xfe, 0xff}},
		{-65536, []byte{236, 0x00, 0x00}},
		{-257, []byte{236, 0xff, 0xfe}},
		{-256, []byte{235, 0x00}},
		{-1, []byte{235, 0xff}},
		{0, []byte{0}},
		{231, []byte{231}},
		{232, []byte{232, 0xe8, 0x00}},
		{65535, []byte{232, 0xff, 0xff}},
		{65536, []byte{233, 0x00, 0x00, 0x01, 0x00}},
		{2147483647, []byte{233, 0xff, 0xff, 0xff, 0x7f}},
	}
	for _, test := range tests {
		if got := encodeWireInt32(test.v); !bytes.Equal(got, test.want) {
			t.Errorf("writeWireInt32(%d) = %x, want %x", test.v, got, test.want)
		}
		in := newInbuf(test.want, false)
		hdr, err := readWireHeader(in)
		if err != nil {
			t.Errorf("readWireHeader(%x): %v", test.want, err)
			continue
		}
		if got := int32(hdr.asInt64()); got != test.v {
			t.Errorf("decode(%x) = %d, want %d", test.want, got, test.v)
		}
		if in.remaining() != 0 {
			t.Errorf("decode(%x) left %d bytes", test.want, in.remaining())
		}
	}
}

func TestWireUintBranches(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0}},
		{231, []byte{231}},
		{232, []byte{232, 0xe8, 0x00}},
		{65535, []byte{232, 0xff, 0xff}},
		{65536, []byte{233, 0x00, 0x00, 0x01, 0x00}},
		{1 << 32, []byte{234, 0, 0, 0, 0, 1, 0, 0, 0}},
		{maxUint64, []byte{234, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, test := range tests {
		b := newOutbuf()
		writeWireUint(b, test.v)
		if got := b.Bytes(); !bytes.Equal(got, test.want) {
			t.Errorf("writeWireUint(%d) = %x, want %x", test.v, got, test.want)
		}
		in := newInbuf(test.want, false)
		hdr, err := readWireHeader(in)
		if err != nil {
			t.Fatalf("readWireHeader(%x): %v", test.want, err)
		}
		if got := hdr.asUint64(); got != test.v {
			t.Errorf("decode(%x) = %d, want %d", test.want, got, test.v)
		}
	}
}

func TestWireLenBranches(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{246}},
		{1, []byte{247}},
		{2, []byte{249}},
		{3, []byte{250, 3}},
		{300, []byte{250, 232, 0x2c, 0x01}},
	}
	for _, test := range tests {
		b := newOutbuf()
		writeWireLen(b, test.n)
		if got := b.Bytes(); !bytes.Equal(got, test.want) {
			t.Errorf("writeWireLen(%d) = %x, want %x", test.n, got, test.want)
		}
		in := newInbuf(test.want, false)
		got, err := readWireLen(in)
		if err != nil {
			t.Fatalf("readWireLen(%x): %v", test.want, err)
		}
		if got != test.n {
			t.Errorf("readWireLen(%x) = %d, want %d", test.want, got, test.n)
		}
	}
	// A numeric zero is a legal "zero slots" header: defaulted struct slots
	// are written as a single 0 byte regardless of the field's type.
	in := newInbuf([]byte{0}, false)
	if n, err := readWireLen(in); err != nil || n != 0 {
		t.Errorf("readWireLen(00) = %d, %v; want 0, nil", n, err)
	}
	in = newInbuf([]byte{wireNull}, false)
	if _, err := readWireLen(in); err == nil {
		t.Error("readWireLen(ff) succeeded, want error")
	}
}

func TestReadWireHeaderTruncated(t *testing.T) {
	for _, data := range [][]byte{
		{},
		{232},
		{232, 0x01},
		{233, 0x01, 0x02, 0x03},
		{234, 0x01},
		{238, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
		{241, 0x01},
	} {
		in := newInbuf(data, false)
		if _, err := readWireHeader(in); err == nil {
			t.Errorf("readWireHeader(%x) succeeded on truncated input", data)
		} else if !Is(err, DecodeError) {
			t.Errorf("readWireHeader(%x) error code = %q, want DecodeError", data, CodeOf(err))
		}
	}
}

func TestOutbufGrowth(t *testing.T) {
	b := newOutbuf()
	payload := make([]byte, 1000)
	for i := range payload {
		payload[i] = byte(i)
	}
	b.write(payload)
	b.writeUint64LE(0x0807060504030201)
	got := b.Bytes()
	if len(got) != 1008 {
		t.Fatalf("len = %d, want 1008", len(got))
	}
	if !bytes.Equal(got[:1000], payload) {
		t.Error("payload corrupted across buffer growth")
	}
	if !bytes.Equal(got[1000:], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("little-endian u64 tail = %x", got[1000:])
	}
}
