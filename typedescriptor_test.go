package soia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// descriptorJSONCode canonicalizes a descriptor's AsJSON output to a string
// so two descriptors can be compared structurally.
func descriptorJSONCode(t *testing.T, d *TypeDescriptor) string {
	t.Helper()
	code, err := marshalJSONCode(d.AsJSON(), Dense, false)
	require.NoError(t, err)
	return code
}

func TestPrimitiveDescriptors(t *testing.T) {
	for _, test := range []struct {
		d    *TypeDescriptor
		kind string
	}{
		{Int32Serializer().TypeDescriptor(), "primitive"},
		{OptionalSerializer(StringSerializer()).TypeDescriptor(), "optional"},
		{ArraySerializer(BoolSerializer(), "").TypeDescriptor(), "array"},
	} {
		require.Equal(t, test.kind, test.d.Kind())
	}
}

func TestDescriptorJSONRoundTrip(t *testing.T) {
	for name, d := range map[string]*TypeDescriptor{
		"primitive": TimestampSerializer().TypeDescriptor(),
		"optional":  OptionalSerializer(Int64Serializer()).TypeDescriptor(),
		"array":     ArraySerializer(StringSerializer(), "user_id").TypeDescriptor(),
		"struct":    newItemSerializer(t).TypeDescriptor(),
		"enum":      newStatusSerializer(t).TypeDescriptor(),
	} {
		want := descriptorJSONCode(t, d)
		parsed, err := ParseTypeDescriptor(d.AsJSON())
		require.NoError(t, err, name)
		require.Equal(t, want, descriptorJSONCode(t, parsed), name)
	}
}

func TestDescriptorAsJSONCode(t *testing.T) {
	d := Int32Serializer().TypeDescriptor()
	compact, err := d.AsJSONCode(false)
	require.NoError(t, err)
	require.Equal(t, `{"records":[],"type":{"kind":"primitive","value":"int32"}}`, compact)

	indented, err := d.AsJSONCode(true)
	require.NoError(t, err)
	require.Contains(t, indented, "\n  ")
	require.JSONEq(t, compact, indented)
}

func TestDescriptorRecordClosure(t *testing.T) {
	// An array of structs pulls the struct definition into the transitive
	// records closure.
	d := ArraySerializer(newItemSerializer(t), "name").TypeDescriptor()
	j := d.AsJSON().(map[string]any)

	typ := j["type"].(map[string]any)
	require.Equal(t, "array", typ["kind"])
	require.Equal(t, "name", typ["key_chain"])

	records := j["records"].([]any)
	require.Len(t, records, 1)
	rec := records[0].(map[string]any)
	require.Equal(t, "inventory.soia:Item", rec["id"])
	require.Equal(t, "struct", rec["kind"])
	require.Equal(t, []int{2}, rec["removed_numbers"])

	fields := rec["fields"].([]any)
	require.Len(t, fields, 3)
	first := fields[0].(map[string]any)
	require.Equal(t, "name", first["name"])
	require.Equal(t, 0, first["number"])
}

func TestDescriptorEnumOmitsConstantType(t *testing.T) {
	d := newStatusSerializer(t).TypeDescriptor()
	j := d.AsJSON().(map[string]any)
	rec := j["records"].([]any)[0].(map[string]any)
	require.Equal(t, "enum", rec["kind"])
	for _, fj := range rec["fields"].([]any) {
		f := fj.(map[string]any)
		_, hasType := f["type"]
		switch f["name"] {
		case "ACTIVE", "RETIRED":
			require.False(t, hasType, "constant %v must omit type", f["name"])
		case "note", "weight":
			require.True(t, hasType, "value variant %v must carry type", f["name"])
		default:
			t.Errorf("unexpected field %v", f["name"])
		}
	}
}

func TestParseTypeDescriptorErrors(t *testing.T) {
	_, err := ParseTypeDescriptor("nope")
	require.True(t, Is(err, TypeError))

	_, err = ParseTypeDescriptor(map[string]any{})
	require.True(t, Is(err, TypeError))

	_, err = ParseTypeDescriptor(map[string]any{
		"type":    map[string]any{"kind": "struct", "value": "missing:Record"},
		"records": []any{},
	})
	require.True(t, Is(err, TypeError))
}

func TestTransformCrossPairs(t *testing.T) {
	s := newItemSerializer(t)
	d := s.TypeDescriptor()
	v := item{name: "widget", qty: 500, tags: []string{"new", "sale"}}

	// transform(to_bytes(x), readable) == to_json(x, readable)
	readable, err := d.Transform(s.ToBytes(v), FormatReadableJSON)
	require.NoError(t, err)
	wantReadable, err := s.ToJSONCode(v, Readable, false)
	require.NoError(t, err)
	gotReadable, err := marshalJSONCode(readable, Dense, false)
	require.NoError(t, err)
	require.Equal(t, wantReadable, gotReadable)

	// transform(to_json(x, dense), bytes) == to_bytes(x)
	outBytes, err := d.Transform(s.ToJSON(v, Dense), FormatBytes)
	require.NoError(t, err)
	require.Equal(t, s.ToBytes(v), outBytes)

	// transform(to_json(x, readable), dense) == to_json(x, dense)
	dense, err := d.Transform(s.ToJSON(v, Readable), FormatDenseJSON)
	require.NoError(t, err)
	wantDense, err := s.ToJSONCode(v, Dense, false)
	require.NoError(t, err)
	gotDense, err := marshalJSONCode(dense, Dense, false)
	require.NoError(t, err)
	require.Equal(t, wantDense, gotDense)
}

func TestTransformEnum(t *testing.T) {
	s := newStatusSerializer(t)
	d := s.TypeDescriptor()

	for _, v := range []status{
		{},
		{number: 1},
		{number: 2, note: "hi"},
		{number: 7, weight: 9},
	} {
		out, err := d.Transform(s.ToBytes(v), FormatReadableJSON)
		require.NoError(t, err)
		want, err := s.ToJSONCode(v, Readable, false)
		require.NoError(t, err)
		got, err := marshalJSONCode(out, Dense, false)
		require.NoError(t, err)
		require.Equal(t, want, got)

		back, err := d.Transform(out, FormatBytes)
		require.NoError(t, err)
		require.Equal(t, s.ToBytes(v), back)
	}
}

func TestTransformParsedDescriptor(t *testing.T) {
	// A descriptor rebuilt from JSON transforms values it has never seen a
	// compiled type for.
	s := newItemSerializer(t)
	parsed, err := ParseTypeDescriptor(s.TypeDescriptor().AsJSON())
	require.NoError(t, err)

	v := item{name: "a", qty: 3}
	out, err := parsed.Transform(s.ToBytes(v), FormatDenseJSON)
	require.NoError(t, err)
	code, err := marshalJSONCode(out, Dense, false)
	require.NoError(t, err)
	require.Equal(t, `["a",3]`, code)
}
