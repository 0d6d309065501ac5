package geo_test

import (
	"testing"

	soia "github.com/gepheum/soia-go"
	"github.com/gepheum/soia-go/example/geo"
	"github.com/stretchr/testify/require"
)

func TestPointRoundTrips(t *testing.T) {
	s := geo.PointSerializer()
	p := geo.NewPoint(3, -4)

	got, err := s.FromBytes(s.ToBytes(p), false)
	require.NoError(t, err)
	require.Equal(t, p, got)

	code, err := s.ToJSONCode(p, soia.Dense, false)
	require.NoError(t, err)
	require.Equal(t, "[3,-4]", code)

	code, err = s.ToJSONCode(p, soia.Readable, false)
	require.NoError(t, err)
	require.JSONEq(t, `{"x":3,"y":-4}`, code)

	got, err = s.FromJSONCode(code, false)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestPointDefault(t *testing.T) {
	s := geo.PointSerializer()

	require.True(t, s.IsDefault(geo.Point{}))
	require.Equal(t, []byte("soia\x00"), s.ToBytes(geo.Point{}))

	got, err := s.FromJSONCode("0", false)
	require.NoError(t, err)
	require.True(t, s.IsDefault(got))
}

func TestPointBuilder(t *testing.T) {
	p := (&geo.PointBuilder{}).SetX(1).SetY(2).Build()
	require.Equal(t, geo.NewPoint(1, 2), p)
}

func TestPointPreservesUnknownFields(t *testing.T) {
	s := geo.PointSerializer()

	// A future Point with a third field.
	future := append([]byte("soia"), 250, 0x03, 0x01, 0x02, 0x07)
	got, err := s.FromBytes(future, true)
	require.NoError(t, err)
	require.Equal(t, int32(1), got.X())
	require.NotNil(t, got.GetUnknownFields())
	require.False(t, s.IsDefault(got))
	require.Equal(t, future, s.ToBytes(got))

	// WithUnknownFields moves a payload onto a fresh value.
	moved := geo.NewPoint(1, 2).WithUnknownFields(got.GetUnknownFields())
	require.Equal(t, future, s.ToBytes(moved))
}

func TestUnknownFieldsTokenDoesNotLeakAcrossTypes(t *testing.T) {
	pointSer := geo.PointSerializer()
	shapeSer := geo.ShapeSerializer()

	future := append([]byte("soia"), 248, 0x09, 0x2a) // unknown Shape variant
	shape, err := shapeSer.FromBytes(future, true)
	require.NoError(t, err)
	require.Equal(t, future, shapeSer.ToBytes(shape))

	// Attaching a Shape-owned payload to a Point must not change Point's
	// encoding: the token check rejects the foreign payload.
	smuggled := geo.NewPoint(1, 2).WithUnknownFields(shape.GetUnknownFields())
	require.Equal(t, pointSer.ToBytes(geo.NewPoint(1, 2)), pointSer.ToBytes(smuggled))
}

func TestShapeVariants(t *testing.T) {
	s := geo.ShapeSerializer()

	require.True(t, s.IsDefault(geo.ShapeUnknown))
	require.Equal(t, []byte("soia\x00"), s.ToBytes(geo.ShapeUnknown))
	require.Equal(t, []byte("soia\x01"), s.ToBytes(geo.ShapeOrigin))

	at := geo.ShapeAt(geo.NewPoint(5, 6))
	got, err := s.FromBytes(s.ToBytes(at), false)
	require.NoError(t, err)
	p, ok := got.At()
	require.True(t, ok)
	require.Equal(t, geo.NewPoint(5, 6), p)

	code, err := s.ToJSONCode(at, soia.Readable, false)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"at","value":{"x":5,"y":6}}`, code)

	code, err = s.ToJSONCode(geo.ShapeOrigin, soia.Readable, false)
	require.NoError(t, err)
	require.Equal(t, `"ORIGIN"`, code)

	// Numeric readable input selects the constant by number.
	got, err = s.FromJSONCode("1", false)
	require.NoError(t, err)
	require.Equal(t, geo.ShapeOrigin, got)
}

func TestShapeTypeDescriptor(t *testing.T) {
	d := geo.ShapeSerializer().TypeDescriptor()
	require.Equal(t, "enum", d.Kind())
	require.Equal(t, "geo.soia:Shape", d.RecordID())

	// The records closure includes Point, referenced by the "at" variant.
	parsed, err := soia.ParseTypeDescriptor(d.AsJSON())
	require.NoError(t, err)
	require.Equal(t, "geo.soia:Shape", parsed.RecordID())
}
