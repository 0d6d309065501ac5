package soia

import "encoding/json"

// This file implements the enum half of the record codecs. Mirrors
// struct_codec.go's closure-based binding approach for the same reason
// (no generated-code reflection table), adapted to a tagged
// union instead of a product type: an enum value carries a discriminant
// number plus, for value variants, a single boxed payload.

type enumValueBinding[B any] interface {
	writeWirePayload(b *outbuf, payload any)
	denseJSONPayload(payload any, flavor JSONFlavor) any
	readableJSONPayload(payload any, flavor JSONFlavor) any
	readWireInto(b *inbuf, bld *B) error
	setFromJSON(bld *B, j any, preserve bool) error
	typeDescriptor() *TypeDescriptor
}

type typedEnumValue[B, T any] struct {
	ser        Serializer[T]
	setVariant func(*B, T)
}

func (f *typedEnumValue[B, T]) writeWirePayload(b *outbuf, payload any) {
	writeValueWire(b, f.ser, payload.(T))
}

func (f *typedEnumValue[B, T]) denseJSONPayload(payload any, flavor JSONFlavor) any {
	return f.ser.ToJSON(payload.(T), flavor)
}

func (f *typedEnumValue[B, T]) readableJSONPayload(payload any, flavor JSONFlavor) any {
	return f.ser.ToJSON(payload.(T), flavor)
}

func (f *typedEnumValue[B, T]) readWireInto(b *inbuf, bld *B) error {
	v, err := readValueWire(b, f.ser)
	if err != nil {
		return err
	}
	f.setVariant(bld, v)
	return nil
}

func (f *typedEnumValue[B, T]) setFromJSON(bld *B, j any, preserve bool) error {
	v, err := f.ser.FromJSON(j, preserve)
	if err != nil {
		return err
	}
	f.setVariant(bld, v)
	return nil
}

func (f *typedEnumValue[B, T]) typeDescriptor() *TypeDescriptor { return f.ser.TypeDescriptor() }

// EnumValueField describes one value-carrying variant for NewEnumSerializer.
type EnumValueField[E, B any] struct {
	Name     string // value variants are lower_case
	JSONName string
	Number   int
	binding  enumValueBinding[B]
}

// NewEnumValue builds an EnumValueField for a variant carrying a payload of
// type T. ser is the payload's own Serializer; setVariant writes the
// decoded payload into a mutable B, and must also record the variant's
// discriminant number: the generated setter for a oneof-like field updates
// both the tag and the payload together.
func NewEnumValue[E, B, T any](name, jsonName string, number int, ser Serializer[T], setVariant func(*B, T)) EnumValueField[E, B] {
	return EnumValueField[E, B]{
		Name:     name,
		JSONName: jsonName,
		Number:   number,
		binding:  &typedEnumValue[B, T]{ser: ser, setVariant: setVariant},
	}
}

// EnumConstant describes one constant (payload-less) variant.
type EnumConstant struct {
	Name     string // UPPER_CASE
	JSONName string
	Number   int
}

// EnumInfo describes everything NewEnumSerializer needs to build a
// Serializer[E] for a generated enum type E with mutable builder type B.
type EnumInfo[E, B any] struct {
	ModulePath     string
	QualifiedName  string
	Constants      []EnumConstant
	Values         []EnumValueField[E, B]
	RemovedNumbers []int

	NewMutable func() *B
	Finish     func(*B) E

	// GetNumber returns e's active discriminant: 0 for UNKNOWN, a
	// constant's number, or a value variant's number.
	GetNumber func(*E) int
	// GetPayload returns the boxed payload of e's active value variant, or
	// nil if e is UNKNOWN or holds a constant.
	GetPayload func(*E) any
	// SetNumber selects a constant variant (or UNKNOWN, for number 0) on a
	// mutable builder. Value variants are selected through their own
	// EnumValueField.binding.setFromJSON/readWireInto instead, since those
	// also carry a payload.
	SetNumber func(*B, int)

	// GetUnknownFields/SetUnknownFields are optional; omit both if E does
	// not support unknown-variant preservation.
	GetUnknownFields func(*E) *UnknownFields
	SetUnknownFields func(*B, *UnknownFields)
}

type enumCodec[E, B any] struct {
	info       EnumInfo[E, B]
	recordID   string
	constants  map[int]EnumConstant
	values     map[int]EnumValueField[E, B]
	removed    map[int]bool
	defaultVal E
}

// NewEnumSerializer builds the Serializer for an enum type, validating
// number uniqueness the same way NewStructSerializer does for structs.
func NewEnumSerializer[E, B any](info EnumInfo[E, B]) (Serializer[E], error) {
	c := &enumCodec[E, B]{
		info:      info,
		recordID:  info.ModulePath + ":" + info.QualifiedName,
		constants: map[int]EnumConstant{},
		values:    map[int]EnumValueField[E, B]{},
		removed:   map[int]bool{},
	}
	for _, n := range info.RemovedNumbers {
		c.removed[n] = true
	}
	seen := func(n int) bool {
		_, inC := c.constants[n]
		_, inV := c.values[n]
		return inC || inV
	}
	for _, cst := range info.Constants {
		if cst.Number <= 0 {
			return nil, registrationErrorf("soia: enum %s: constant %q has non-positive number %d", c.recordID, cst.Name, cst.Number)
		}
		if seen(cst.Number) || c.removed[cst.Number] {
			return nil, registrationErrorf("soia: enum %s: duplicate or removed number %d", c.recordID, cst.Number)
		}
		c.constants[cst.Number] = cst
	}
	for _, v := range info.Values {
		if v.Number <= 0 {
			return nil, registrationErrorf("soia: enum %s: value variant %q has non-positive number %d", c.recordID, v.Name, v.Number)
		}
		if seen(v.Number) || c.removed[v.Number] {
			return nil, registrationErrorf("soia: enum %s: duplicate or removed number %d", c.recordID, v.Number)
		}
		c.values[v.Number] = v
	}
	bld := info.NewMutable()
	c.defaultVal = info.Finish(bld)
	return c, nil
}

func (c *enumCodec[E, B]) getUnknown(e E) *UnknownFields {
	if c.info.GetUnknownFields == nil {
		return nil
	}
	return c.info.GetUnknownFields(&e)
}

func (c *enumCodec[E, B]) ToJSON(e E, flavor JSONFlavor) any {
	num := c.info.GetNumber(&e)
	if flavor == Readable {
		switch {
		case num == 0:
			return "?"
		case isIn(c.constants, num):
			return c.constants[num].Name
		case isIn(c.values, num):
			vf := c.values[num]
			payload := c.info.GetPayload(&e)
			return map[string]any{"kind": vf.Name, "value": vf.binding.readableJSONPayload(payload, flavor)}
		default:
			return "?"
		}
	}
	switch {
	case num == 0:
		if unk := c.getUnknown(e); unk != nil && sameToken(unk.token, c.recordID) && unk.enumJSON != nil {
			return unk.enumJSON
		}
		return 0
	case isIn(c.constants, num):
		return num
	case isIn(c.values, num):
		vf := c.values[num]
		payload := c.info.GetPayload(&e)
		return []any{num, vf.binding.denseJSONPayload(payload, flavor)}
	default:
		return 0
	}
}

func isIn[K comparable, V any](m map[K]V, k K) bool {
	_, ok := m[k]
	return ok
}

func (c *enumCodec[E, B]) FromJSON(j any, preserveUnknowns bool) (E, error) {
	switch v := j.(type) {
	case nil:
		return c.defaultVal, nil
	case float64:
		return c.fromNumberJSON(int(v), j, preserveUnknowns)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return c.defaultVal, typeErrorf("soia: enum %s: invalid JSON number %q", c.recordID, string(v))
		}
		return c.fromNumberJSON(int(f), j, preserveUnknowns)
	case string:
		if v == "?" {
			return c.defaultVal, nil
		}
		for num, cst := range c.constants {
			if cst.Name == v {
				bld := c.info.NewMutable()
				c.info.SetNumber(bld, num)
				return c.info.Finish(bld), nil
			}
		}
		// Unrecognized readable constant name: readable JSON is lossy for
		// enums the same way it is for structs.
		return c.defaultVal, nil
	case []any:
		if len(v) != 2 {
			return c.defaultVal, typeErrorf("soia: enum %s: expected [number, value], got array of length %d", c.recordID, len(v))
		}
		numF, err := jsonNumberToFloat(v[0])
		if err != nil {
			return c.defaultVal, err
		}
		num := int(numF)
		if vf, ok := c.values[num]; ok {
			bld := c.info.NewMutable()
			if err := vf.binding.setFromJSON(bld, v[1], preserveUnknowns); err != nil {
				return c.defaultVal, err
			}
			return c.info.Finish(bld), nil
		}
		return c.unrecognizedJSON(j, preserveUnknowns), nil
	case map[string]any:
		kind, _ := v["kind"].(string)
		for num, vf := range c.values {
			if vf.Name == kind {
				bld := c.info.NewMutable()
				if err := vf.binding.setFromJSON(bld, v["value"], preserveUnknowns); err != nil {
					return c.defaultVal, err
				}
				_ = num
				return c.info.Finish(bld), nil
			}
		}
		return c.defaultVal, nil
	default:
		if f, err := jsonNumberToFloat(j); err == nil {
			return c.fromNumberJSON(int(f), j, preserveUnknowns)
		}
		return c.defaultVal, typeErrorf("soia: enum %s: unexpected JSON shape %T", c.recordID, j)
	}
}

func (c *enumCodec[E, B]) fromNumberJSON(num int, raw any, preserveUnknowns bool) (E, error) {
	if num == 0 {
		return c.defaultVal, nil
	}
	if _, ok := c.values[num]; ok {
		return c.defaultVal, typeErrorf("soia: enum %s: number %d names a value variant, expected [number, value]", c.recordID, num)
	}
	if _, ok := c.constants[num]; ok {
		bld := c.info.NewMutable()
		c.info.SetNumber(bld, num)
		return c.info.Finish(bld), nil
	}
	return c.unrecognizedJSON(raw, preserveUnknowns), nil
}

func (c *enumCodec[E, B]) unrecognizedJSON(raw any, preserveUnknowns bool) E {
	bld := c.info.NewMutable()
	if preserveUnknowns && c.info.SetUnknownFields != nil {
		c.info.SetUnknownFields(bld, &UnknownFields{token: &unknownToken{recordID: c.recordID}, enumJSON: raw})
	}
	return c.info.Finish(bld)
}

func (c *enumCodec[E, B]) ToJSONCode(x E, flavor JSONFlavor, indent bool) (string, error) {
	return marshalJSONCode(c.ToJSON(x, flavor), flavor, indent)
}

func (c *enumCodec[E, B]) FromJSONCode(code string, preserveUnknowns bool) (E, error) {
	j, err := unmarshalJSONCode(code)
	if err != nil {
		return c.defaultVal, err
	}
	return c.FromJSON(j, preserveUnknowns)
}

func (c *enumCodec[E, B]) ToBytes(x E) []byte {
	b := newOutbuf()
	appendMagic(b)
	c.writeWireValue(b, x)
	return b.Bytes()
}

func (c *enumCodec[E, B]) writeWireValue(b *outbuf, e E) {
	num := c.info.GetNumber(&e)
	if num == 0 {
		if unk := c.getUnknown(e); unk != nil && sameToken(unk.token, c.recordID) && len(unk.enumWire) > 0 {
			b.write(unk.enumWire)
			return
		}
		b.writeByte(0)
		return
	}
	if _, ok := c.constants[num]; ok {
		writeWireUint(b, uint64(num))
		return
	}
	vf, ok := c.values[num]
	if !ok {
		b.writeByte(0)
		return
	}
	if num >= 1 && num <= 4 {
		b.writeByte(wireEnum251 + byte(num-1))
	} else {
		b.writeByte(wireEnum248)
		writeWireUint(b, uint64(num))
	}
	payload := c.info.GetPayload(&e)
	vf.binding.writeWirePayload(b, payload)
}

func (c *enumCodec[E, B]) FromBytes(data []byte, preserveUnknowns bool) (E, error) {
	body, err := stripMagic(data)
	if err != nil {
		return c.defaultVal, err
	}
	in := newInbuf(body, preserveUnknowns)
	return c.readWireValue(in)
}

func (c *enumCodec[E, B]) readWireValue(b *inbuf) (E, error) {
	start := b.pos
	w, err := b.peekByte()
	if err != nil {
		return c.defaultVal, err
	}
	if w < wireEmptyStr {
		hdr, err := readWireHeader(b)
		if err != nil {
			return c.defaultVal, err
		}
		return c.finishNonPayload(b, start, int(hdr.asUint64()))
	}
	switch {
	case w == wireEnum248:
		b.pos++
		num, err := readWireUintBody(b)
		if err != nil {
			return c.defaultVal, err
		}
		return c.finishValueVariant(b, start, int(num))
	case w >= wireEnum251 && w <= wireEnum254:
		b.pos++
		return c.finishValueVariant(b, start, int(w-wireEnum251)+1)
	default:
		return c.defaultVal, decodeErrorf("soia: enum %s: unexpected wire byte %d", c.recordID, w)
	}
}

func (c *enumCodec[E, B]) finishNonPayload(b *inbuf, start, num int) (E, error) {
	if num == 0 {
		return c.defaultVal, nil
	}
	if _, ok := c.values[num]; ok {
		return c.defaultVal, decodeErrorf("soia: enum %s: number %d names a value variant, not a constant", c.recordID, num)
	}
	if _, ok := c.constants[num]; ok {
		bld := c.info.NewMutable()
		c.info.SetNumber(bld, num)
		return c.info.Finish(bld), nil
	}
	return c.captureUnrecognized(b, start), nil
}

func (c *enumCodec[E, B]) finishValueVariant(b *inbuf, start, num int) (E, error) {
	if _, ok := c.constants[num]; ok {
		return c.defaultVal, decodeErrorf("soia: enum %s: number %d names a constant, not a value variant", c.recordID, num)
	}
	vf, ok := c.values[num]
	if !ok {
		if err := skipWireValue(b); err != nil {
			return c.defaultVal, err
		}
		return c.captureUnrecognized(b, start), nil
	}
	bld := c.info.NewMutable()
	if err := vf.binding.readWireInto(b, bld); err != nil {
		return c.defaultVal, err
	}
	return c.info.Finish(bld), nil
}

func (c *enumCodec[E, B]) captureUnrecognized(b *inbuf, start int) E {
	bld := c.info.NewMutable()
	if b.preserve && c.info.SetUnknownFields != nil {
		raw := append([]byte(nil), b.buf[start:b.pos]...)
		c.info.SetUnknownFields(bld, &UnknownFields{token: &unknownToken{recordID: c.recordID}, enumWire: raw})
	}
	return c.info.Finish(bld)
}

func (c *enumCodec[E, B]) DefaultValue() E { return c.defaultVal }

func (c *enumCodec[E, B]) IsDefault(x E) bool {
	return c.info.GetNumber(&x) == 0 && c.getUnknown(x) == nil
}

func (c *enumCodec[E, B]) TypeDescriptor() *TypeDescriptor {
	fields := make([]recordFieldDescriptor, 0, len(c.info.Constants)+len(c.info.Values))
	for _, cst := range c.info.Constants {
		fields = append(fields, recordFieldDescriptor{name: cst.JSONName, number: cst.Number})
	}
	for _, v := range c.info.Values {
		fields = append(fields, recordFieldDescriptor{name: v.JSONName, number: v.Number, typ: v.binding.typeDescriptor()})
	}
	return &TypeDescriptor{
		kind: kindEnum,
		record: &recordDescriptor{
			modulePath:    c.info.ModulePath,
			qualifiedName: c.info.QualifiedName,
			isEnum:        true,
			fields:        fields,
			removed:       c.info.RemovedNumbers,
		},
	}
}
