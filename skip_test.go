package soia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipWireValue(t *testing.T) {
	// One complete element per row; the skipper must consume exactly the
	// element, no more, no less.
	tests := [][]byte{
		{0x00},
		{0xe7}, // 231, the largest inline small int
		{232, 0x01, 0x02},
		{233, 1, 2, 3, 4},
		{234, 1, 2, 3, 4, 5, 6, 7, 8},
		{235, 0xff},
		{236, 0x01, 0x02},
		{237, 1, 2, 3, 4},
		{238, 1, 2, 3, 4, 5, 6, 7, 8},
		{239, 1, 2, 3, 4, 5, 6, 7, 8},
		{240, 1, 2, 3, 4},
		{241, 1, 2, 3, 4, 5, 6, 7, 8},
		{242},
		{243, 0x02, 'h', 'i'},
		{244},
		{245, 0x03, 1, 2, 3},
		{246},
		{247, 0x05},
		{249, 0x05, 242},
		{250, 0x03, 1, 2, 3},
		{251, 0x07},
		{254, 243, 0x01, 'x'},
		{248, 0x09, 0x2a},
		{255},
		// Nested: a 2-element list holding a 1-element list and an enum
		// value-variant carrying a string.
		{249, 247, 0x01, 252, 243, 0x01, 'x'},
	}
	for _, data := range tests {
		in := newInbuf(data, false)
		err := skipWireValue(in)
		require.NoError(t, err, "%x", data)
		require.Equal(t, 0, in.remaining(), "%x", data)
	}
}

func TestSkipWireValueTruncated(t *testing.T) {
	for _, data := range [][]byte{
		{},
		{232, 0x01},
		{243, 0x05, 'a'},
		{245, 0x02, 1},
		{250, 0x03, 1, 2},
		{248, 0x09},
		{247},
	} {
		in := newInbuf(data, false)
		err := skipWireValue(in)
		require.Error(t, err, "%x", data)
		require.True(t, Is(err, DecodeError), "%x", data)
	}
}

func TestDebugString(t *testing.T) {
	s := ArraySerializer(Int32Serializer(), "")
	out := DebugString(s.ToBytes([]int32{10, -3}))
	require.Contains(t, out, "list(2)")
	require.Contains(t, out, "uint(10)")
	require.Contains(t, out, "int(-3)")

	out = DebugString(StringSerializer().ToBytes("hi"))
	require.Contains(t, out, `string("hi")`)

	out = DebugString([]byte("so"))
	require.Contains(t, out, "magic")
}
