package soia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// item and status are hand-written stand-ins for generated record types,
// shaped the way example/geo's records are but kept in-package so the tests
// can hand-check wire bytes against the grammar.

type item struct {
	name    string
	qty     int32
	tags    []string
	unknown *UnknownFields
}

type itemBuilder struct {
	name    string
	qty     int32
	tags    []string
	unknown *UnknownFields
}

// newItemSerializer declares fields 0 (name), 1 (qty) and 3 (tags), with
// number 2 removed.
func newItemSerializer(t *testing.T) Serializer[item] {
	t.Helper()
	s, err := NewStructSerializer(StructInfo[item, itemBuilder]{
		ModulePath:    "inventory.soia",
		QualifiedName: "Item",
		Fields: []Field[item, itemBuilder]{
			NewField[item, itemBuilder]("Name", "name", 0, StringSerializer(),
				func(x *item) string { return x.name },
				func(b *itemBuilder, v string) { b.name = v }),
			NewField[item, itemBuilder]("Qty", "qty", 1, Int32Serializer(),
				func(x *item) int32 { return x.qty },
				func(b *itemBuilder, v int32) { b.qty = v }),
			NewField[item, itemBuilder]("Tags", "tags", 3, ArraySerializer(StringSerializer(), ""),
				func(x *item) []string { return x.tags },
				func(b *itemBuilder, v []string) { b.tags = v }),
		},
		RemovedNumbers:   []int{2},
		NewMutable:       func() *itemBuilder { return &itemBuilder{} },
		Finish:           func(b *itemBuilder) item { return item{name: b.name, qty: b.qty, tags: b.tags, unknown: b.unknown} },
		GetUnknownFields: func(x *item) *UnknownFields { return x.unknown },
		SetUnknownFields: func(b *itemBuilder, u *UnknownFields) { b.unknown = u },
	})
	require.NoError(t, err)
	return s
}

func TestStructDefaultEncoding(t *testing.T) {
	s := newItemSerializer(t)

	// A default struct is the single byte 0x00 after the magic.
	require.Equal(t, []byte("soia\x00"), s.ToBytes(item{}))

	got, err := s.FromBytes([]byte("soia\x00"), false)
	require.NoError(t, err)
	require.True(t, s.IsDefault(got))

	// The empty-container wire is accepted on decode too.
	got, err = s.FromBytes([]byte("soia\xf6"), false)
	require.NoError(t, err)
	require.True(t, s.IsDefault(got))

	code, err := s.ToJSONCode(item{}, Dense, false)
	require.NoError(t, err)
	require.Equal(t, "0", code)
	got, err = s.FromJSONCode("0", false)
	require.NoError(t, err)
	require.True(t, s.IsDefault(got))
}

func TestStructDenseEncoding(t *testing.T) {
	s := newItemSerializer(t)

	// Written length is highest non-default field number + 1.
	data := s.ToBytes(item{name: "a"})
	require.Equal(t, append([]byte("soia"), 247, 0xf3, 0x01, 'a'), data)

	// A defaulted lower slot is a single 0 byte.
	data = s.ToBytes(item{qty: 7})
	require.Equal(t, append([]byte("soia"), 249, 0x00, 0x07), data)

	// Removed slot 2 is written as 0 when slot 3 is active.
	data = s.ToBytes(item{tags: []string{"x"}})
	require.Equal(t, append([]byte("soia"), 250, 0x04, 0x00, 0x00, 0x00, 247, 0xf3, 0x01, 'x'), data)

	got, err := s.FromBytes(data, false)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, got.tags)

	code, err := s.ToJSONCode(item{name: "a", qty: 7}, Dense, false)
	require.NoError(t, err)
	require.Equal(t, `["a",7]`, code)
}

func TestStructRoundTrips(t *testing.T) {
	s := newItemSerializer(t)
	values := []item{
		{},
		{name: "widget"},
		{qty: -3},
		{name: "widget", qty: 500, tags: []string{"new", "sale"}},
	}
	for _, v := range values {
		got, err := s.FromBytes(s.ToBytes(v), false)
		require.NoError(t, err)
		require.Equal(t, v, got)

		for _, flavor := range []JSONFlavor{Dense, Readable} {
			code, err := s.ToJSONCode(v, flavor, false)
			require.NoError(t, err)
			got, err = s.FromJSONCode(code, false)
			require.NoError(t, err)
			require.Equal(t, v, got)
		}
	}
}

func TestStructReadableJSON(t *testing.T) {
	s := newItemSerializer(t)

	// Default-valued fields are omitted.
	code, err := s.ToJSONCode(item{name: "a"}, Readable, false)
	require.NoError(t, err)
	require.Equal(t, `{"name":"a"}`, code)

	// Unknown keys are ignored on decode; readable is lossy.
	got, err := s.FromJSONCode(`{"name":"a","color":"red"}`, true)
	require.NoError(t, err)
	require.Equal(t, item{name: "a"}, got)
	require.Nil(t, got.unknown)
}

func TestStructPreserveMode(t *testing.T) {
	s := newItemSerializer(t)

	// Six slots: the three recognized plus the removed slot, then two
	// unknown trailing ones (a small int and a one-element list).
	input := append([]byte("soia"),
		250, 0x06,
		0xf3, 0x01, 'a', // slot 0: "a"
		0x05,           // slot 1: 5
		0x00,           // slot 2: removed
		0x00,           // slot 3: tags defaulted
		0x0a,           // slot 4: unknown
		247, 0x2a,      // slot 5: unknown list
	)

	got, err := s.FromBytes(input, true)
	require.NoError(t, err)
	require.Equal(t, "a", got.name)
	require.Equal(t, int32(5), got.qty)
	require.NotNil(t, got.unknown)
	require.False(t, s.IsDefault(got))

	// Byte-for-byte round trip, trailing unknown slots included.
	require.Equal(t, input, s.ToBytes(got))

	// Without preserve, the tail is dropped and re-encoding shrinks.
	got, err = s.FromBytes(input, false)
	require.NoError(t, err)
	require.Nil(t, got.unknown)
	require.Equal(t, append([]byte("soia"), 249, 0xf3, 0x01, 'a', 0x05), s.ToBytes(got))
}

func TestStructPreserveModeJSON(t *testing.T) {
	s := newItemSerializer(t)
	code := `["a",5,0,0,10,[42]]`

	got, err := s.FromJSONCode(code, true)
	require.NoError(t, err)
	require.NotNil(t, got.unknown)

	out, err := s.ToJSONCode(got, Dense, false)
	require.NoError(t, err)
	require.Equal(t, code, out)

	// Readable rendering never shows unknown fields.
	out, err = s.ToJSONCode(got, Readable, false)
	require.NoError(t, err)
	require.Equal(t, `{"name":"a","qty":5}`, out)
}

func TestStructRegistrationErrors(t *testing.T) {
	newField := func(num int) Field[item, itemBuilder] {
		return NewField[item, itemBuilder]("Name", "name", num, StringSerializer(),
			func(x *item) string { return x.name },
			func(b *itemBuilder, v string) { b.name = v })
	}
	base := StructInfo[item, itemBuilder]{
		ModulePath:    "inventory.soia",
		QualifiedName: "Item",
		NewMutable:    func() *itemBuilder { return &itemBuilder{} },
		Finish:        func(b *itemBuilder) item { return item{name: b.name} },
	}

	dup := base
	dup.Fields = []Field[item, itemBuilder]{newField(0), newField(0)}
	_, err := NewStructSerializer(dup)
	require.True(t, Is(err, RegistrationError))

	removedActive := base
	removedActive.Fields = []Field[item, itemBuilder]{newField(1)}
	removedActive.RemovedNumbers = []int{1}
	_, err = NewStructSerializer(removedActive)
	require.True(t, Is(err, RegistrationError))

	negative := base
	negative.Fields = []Field[item, itemBuilder]{newField(-1)}
	_, err = NewStructSerializer(negative)
	require.True(t, Is(err, RegistrationError))
}

// status is a hand-written enum: UNKNOWN (0), the constant ACTIVE (1), the
// value variant note (2, string), the constant RETIRED (3), number 4
// removed, and the value variant weight (7, int32) to cross the wire-248
// branch.
type status struct {
	number  int
	note    string
	weight  int32
	unknown *UnknownFields
}

type statusBuilder status

func newStatusSerializer(t *testing.T) Serializer[status] {
	t.Helper()
	s, err := NewEnumSerializer(EnumInfo[status, statusBuilder]{
		ModulePath:    "inventory.soia",
		QualifiedName: "Status",
		Constants: []EnumConstant{
			{Name: "ACTIVE", JSONName: "ACTIVE", Number: 1},
			{Name: "RETIRED", JSONName: "RETIRED", Number: 3},
		},
		Values: []EnumValueField[status, statusBuilder]{
			NewEnumValue[status, statusBuilder]("note", "note", 2, StringSerializer(),
				func(b *statusBuilder, v string) { b.number = 2; b.note = v }),
			NewEnumValue[status, statusBuilder]("weight", "weight", 7, Int32Serializer(),
				func(b *statusBuilder, v int32) { b.number = 7; b.weight = v }),
		},
		RemovedNumbers: []int{4},
		NewMutable:     func() *statusBuilder { return &statusBuilder{} },
		Finish:         func(b *statusBuilder) status { return status(*b) },
		GetNumber:      func(e *status) int { return e.number },
		GetPayload: func(e *status) any {
			switch e.number {
			case 2:
				return e.note
			case 7:
				return e.weight
			default:
				return nil
			}
		},
		SetNumber:        func(b *statusBuilder, n int) { b.number = n },
		GetUnknownFields: func(e *status) *UnknownFields { return e.unknown },
		SetUnknownFields: func(b *statusBuilder, u *UnknownFields) { b.unknown = u },
	})
	require.NoError(t, err)
	return s
}

func TestEnumWireBranches(t *testing.T) {
	s := newStatusSerializer(t)

	require.Equal(t, []byte("soia\x00"), s.ToBytes(status{}))
	require.Equal(t, []byte("soia\x01"), s.ToBytes(status{number: 1}))
	require.Equal(t, []byte("soia\x03"), s.ToBytes(status{number: 3}))

	// Value variant 2 takes the 251..254 branch: 251 + (2-1) = 252.
	data := s.ToBytes(status{number: 2, note: "hi"})
	require.Equal(t, append([]byte("soia"), 252, 0xf3, 0x02, 'h', 'i'), data)
	got, err := s.FromBytes(data, false)
	require.NoError(t, err)
	require.Equal(t, status{number: 2, note: "hi"}, got)

	// Value variant 7 takes the 248 branch: 248, number, payload.
	data = s.ToBytes(status{number: 7, weight: 9})
	require.Equal(t, append([]byte("soia"), 248, 0x07, 0x09), data)
	got, err = s.FromBytes(data, false)
	require.NoError(t, err)
	require.Equal(t, status{number: 7, weight: 9}, got)
}

func TestEnumJSON(t *testing.T) {
	s := newStatusSerializer(t)

	code, err := s.ToJSONCode(status{}, Readable, false)
	require.NoError(t, err)
	require.Equal(t, `"?"`, code)

	code, err = s.ToJSONCode(status{number: 1}, Readable, false)
	require.NoError(t, err)
	require.Equal(t, `"ACTIVE"`, code)

	code, err = s.ToJSONCode(status{number: 2, note: "hi"}, Readable, false)
	require.NoError(t, err)
	require.Equal(t, `{"kind":"note","value":"hi"}`, code)

	code, err = s.ToJSONCode(status{number: 2, note: "hi"}, Dense, false)
	require.NoError(t, err)
	require.Equal(t, `[2,"hi"]`, code)

	// All accepted input shapes.
	for _, test := range []struct {
		code string
		want status
	}{
		{`0`, status{}},
		{`"?"`, status{}},
		{`1`, status{number: 1}},
		{`"ACTIVE"`, status{number: 1}},
		{`[2,"hi"]`, status{number: 2, note: "hi"}},
		{`{"kind":"note","value":"hi"}`, status{number: 2, note: "hi"}},
		{`[7,9]`, status{number: 7, weight: 9}},
	} {
		got, err := s.FromJSONCode(test.code, false)
		require.NoError(t, err, test.code)
		require.Equal(t, test.want, got, test.code)
	}
}

func TestEnumWrongVariantKind(t *testing.T) {
	s := newStatusSerializer(t)

	// Number 3 is a constant; wire 253 selects value variant 3.
	_, err := s.FromBytes(append([]byte("soia"), 253, 0x00), false)
	require.True(t, Is(err, DecodeError))

	// Number 2 is a value variant; a bare integer 2 names a constant.
	_, err = s.FromBytes([]byte("soia\x02"), false)
	require.True(t, Is(err, DecodeError))

	_, err = s.FromJSONCode("2", false)
	require.True(t, Is(err, TypeError))
}

func TestEnumPreserveMode(t *testing.T) {
	s := newStatusSerializer(t)

	// Unknown constant number 5.
	input := []byte("soia\x05")
	got, err := s.FromBytes(input, true)
	require.NoError(t, err)
	require.Equal(t, 0, got.number)
	require.NotNil(t, got.unknown)
	require.False(t, s.IsDefault(got))
	require.Equal(t, input, s.ToBytes(got))

	// Unknown value variant 6 with an int payload.
	input = append([]byte("soia"), 248, 0x06, 0x2a)
	got, err = s.FromBytes(input, true)
	require.NoError(t, err)
	require.Equal(t, input, s.ToBytes(got))

	// Without preserve, unknowns collapse to UNKNOWN.
	got, err = s.FromBytes(input, false)
	require.NoError(t, err)
	require.True(t, s.IsDefault(got))
	require.Equal(t, []byte("soia\x00"), s.ToBytes(got))

	// JSON preserve round trip.
	got, err = s.FromJSONCode(`[6,42]`, true)
	require.NoError(t, err)
	code, err := s.ToJSONCode(got, Dense, false)
	require.NoError(t, err)
	require.Equal(t, `[6,42]`, code)
}

func TestEnumRegistrationErrors(t *testing.T) {
	base := EnumInfo[status, statusBuilder]{
		ModulePath:    "inventory.soia",
		QualifiedName: "Status",
		NewMutable:    func() *statusBuilder { return &statusBuilder{} },
		Finish:        func(b *statusBuilder) status { return status(*b) },
		GetNumber:     func(e *status) int { return e.number },
		GetPayload:    func(e *status) any { return nil },
		SetNumber:     func(b *statusBuilder, n int) { b.number = n },
	}

	dup := base
	dup.Constants = []EnumConstant{
		{Name: "A", JSONName: "A", Number: 1},
		{Name: "B", JSONName: "B", Number: 1},
	}
	_, err := NewEnumSerializer(dup)
	require.True(t, Is(err, RegistrationError))

	removed := base
	removed.Constants = []EnumConstant{{Name: "A", JSONName: "A", Number: 2}}
	removed.RemovedNumbers = []int{2}
	_, err = NewEnumSerializer(removed)
	require.True(t, Is(err, RegistrationError))

	zero := base
	zero.Constants = []EnumConstant{{Name: "A", JSONName: "A", Number: 0}}
	_, err = NewEnumSerializer(zero)
	require.True(t, Is(err, RegistrationError))
}

func TestNestedRecordSlots(t *testing.T) {
	itemSer := newItemSerializer(t)
	s, err := NewStructSerializer(StructInfo[pair, pairBuilder]{
		ModulePath:    "inventory.soia",
		QualifiedName: "Pair",
		Fields: []Field[pair, pairBuilder]{
			NewField[pair, pairBuilder]("First", "first", 0, itemSer,
				func(x *pair) item { return x.first },
				func(b *pairBuilder, v item) { b.first = v }),
			NewField[pair, pairBuilder]("Second", "second", 1, itemSer,
				func(x *pair) item { return x.second },
				func(b *pairBuilder, v item) { b.second = v }),
		},
		NewMutable: func() *pairBuilder { return &pairBuilder{} },
		Finish:     func(b *pairBuilder) pair { return pair{first: b.first, second: b.second} },
	})
	require.NoError(t, err)

	// A defaulted struct-typed slot is a single 0 byte, and decodes back to
	// the default nested instance.
	v := pair{second: item{qty: 1}}
	data := s.ToBytes(v)
	require.Equal(t, append([]byte("soia"), 249, 0x00, 249, 0x00, 0x01), data)
	got, err := s.FromBytes(data, false)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

type pair struct {
	first, second item
}

type pairBuilder pair
