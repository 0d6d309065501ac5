package soia

// This file implements the struct half of the record codecs. Dynamic
// field access by name is replaced with a closure-based accessor table
// built at registration time: each Field wraps a Serializer[T] plus a
// getter/setter pair supplied by the generated struct and its mutable
// builder type, so the encode/decode loops never touch reflection.

// fieldBinding is the type-erased half of a Field[S, B], letting
// structCodec iterate over fields of heterogeneous Go types without
// reflection.
type fieldBinding[S, B any] interface {
	isDefault(s *S) bool
	denseJSON(s *S, flavor JSONFlavor) any
	readableJSON(s *S, flavor JSONFlavor) any
	writeWire(b *outbuf, s *S)
	setFromJSON(bld *B, j any, preserve bool) error
	readWireInto(b *inbuf, bld *B) error
	typeDescriptor() *TypeDescriptor
}

// Field describes one struct field for NewStructSerializer: its
// schema-declared name and number, its own Serializer, and how to read it
// from / write it into the struct's frozen and mutable Go types.
type Field[S, B any] struct {
	Name     string // Go property name, informational only
	JSONName string // schema-declared snake_case name, used by readable JSON
	Number   int
	binding  fieldBinding[S, B]
}

// NewField builds a Field for a field of type T. ser is the field's own
// Serializer; get reads the field out of a frozen S; set writes a decoded
// value into a mutable B.
func NewField[S, B, T any](name, jsonName string, number int, ser Serializer[T], get func(*S) T, set func(*B, T)) Field[S, B] {
	return Field[S, B]{
		Name:     name,
		JSONName: jsonName,
		Number:   number,
		binding:  &typedField[S, B, T]{ser: ser, get: get, set: set},
	}
}

type typedField[S, B, T any] struct {
	ser Serializer[T]
	get func(*S) T
	set func(*B, T)
}

func (f *typedField[S, B, T]) isDefault(s *S) bool { return f.ser.IsDefault(f.get(s)) }

func (f *typedField[S, B, T]) denseJSON(s *S, flavor JSONFlavor) any {
	return f.ser.ToJSON(f.get(s), flavor)
}

func (f *typedField[S, B, T]) readableJSON(s *S, flavor JSONFlavor) any {
	return f.ser.ToJSON(f.get(s), flavor)
}

func (f *typedField[S, B, T]) writeWire(b *outbuf, s *S) {
	writeValueWire(b, f.ser, f.get(s))
}

func (f *typedField[S, B, T]) setFromJSON(bld *B, j any, preserve bool) error {
	v, err := f.ser.FromJSON(j, preserve)
	if err != nil {
		return err
	}
	f.set(bld, v)
	return nil
}

func (f *typedField[S, B, T]) readWireInto(b *inbuf, bld *B) error {
	v, err := readValueWire(b, f.ser)
	if err != nil {
		return err
	}
	f.set(bld, v)
	return nil
}

func (f *typedField[S, B, T]) typeDescriptor() *TypeDescriptor { return f.ser.TypeDescriptor() }

// StructInfo describes everything NewStructSerializer needs to build a
// Serializer[S] for a generated struct type S with mutable builder type B,
// the auxiliary form mutation happens on before Finish freezes it.
type StructInfo[S, B any] struct {
	ModulePath     string
	QualifiedName  string
	Fields         []Field[S, B]
	RemovedNumbers []int

	NewMutable func() *B
	Finish     func(*B) S

	// GetUnknownFields/SetUnknownFields are optional; omit both if S does
	// not support unknown-field preservation.
	GetUnknownFields func(*S) *UnknownFields
	SetUnknownFields func(*B, *UnknownFields)
}

type structCodec[S, B any] struct {
	info       StructInfo[S, B]
	recordID   string
	byNumber   map[int]*fieldBindingEntry[S, B]
	removed    map[int]bool
	recognized int
	defaultVal S
}

type fieldBindingEntry[S, B any] struct {
	number  int
	binding fieldBinding[S, B]
}

// NewStructSerializer builds the Serializer for a struct type. Field
// numbers must be unique and must not collide with the removed set; a
// violation is a RegistrationError rather than a panic, since registration
// failures are meant to be caught and reported by the caller's module-init
// code.
func NewStructSerializer[S, B any](info StructInfo[S, B]) (Serializer[S], error) {
	c := &structCodec[S, B]{
		info:     info,
		recordID: info.ModulePath + ":" + info.QualifiedName,
		byNumber: map[int]*fieldBindingEntry[S, B]{},
		removed:  map[int]bool{},
	}
	for _, n := range info.RemovedNumbers {
		c.removed[n] = true
	}
	max := -1
	for _, f := range info.Fields {
		if f.Number < 0 {
			return nil, registrationErrorf("soia: struct %s: field %q has negative number %d", c.recordID, f.Name, f.Number)
		}
		if _, dup := c.byNumber[f.Number]; dup {
			return nil, registrationErrorf("soia: struct %s: duplicate field number %d", c.recordID, f.Number)
		}
		if c.removed[f.Number] {
			return nil, registrationErrorf("soia: struct %s: field number %d is both active and removed", c.recordID, f.Number)
		}
		c.byNumber[f.Number] = &fieldBindingEntry[S, B]{number: f.Number, binding: f.binding}
		if f.Number > max {
			max = f.Number
		}
	}
	for n := range c.removed {
		if n > max {
			max = n
		}
	}
	c.recognized = max + 1
	c.defaultVal = info.Finish(info.NewMutable())
	return c, nil
}

func (c *structCodec[S, B]) getUnknown(s S) *UnknownFields {
	if c.info.GetUnknownFields == nil {
		return nil
	}
	return c.info.GetUnknownFields(&s)
}

// highestActive returns the largest field number whose value is non-
// default, or -1 if every field holds its default. The dense written
// length is highestActive+1, unless a preserved unknown tail extends it.
func (c *structCodec[S, B]) highestActive(s *S) int {
	max := -1
	for n, e := range c.byNumber {
		if e.binding.isDefault(s) {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

func (c *structCodec[S, B]) ToJSON(s S, flavor JSONFlavor) any {
	if flavor == Readable {
		out := map[string]any{}
		for _, f := range c.info.Fields {
			if f.binding.isDefault(&s) {
				continue
			}
			out[f.JSONName] = f.binding.readableJSON(&s, flavor)
		}
		return out
	}
	return c.toDenseJSON(&s)
}

func (c *structCodec[S, B]) toDenseJSON(s *S) any {
	highest := c.highestActive(s)
	length := highest + 1
	unk := c.getUnknown(*s)
	var tail []any
	if unk != nil && sameToken(unk.token, c.recordID) && len(unk.jsonTail) > 0 && unk.totalSlots > length {
		length = unk.totalSlots
		tail = unk.jsonTail
	}
	if length == 0 {
		return 0
	}
	arr := make([]any, length)
	upto := length
	if upto > c.recognized {
		upto = c.recognized
	}
	for i := 0; i < upto; i++ {
		if e, ok := c.byNumber[i]; ok {
			arr[i] = e.binding.denseJSON(s, Dense)
		} else {
			arr[i] = 0
		}
	}
	for i := upto; i < length && i-upto < len(tail); i++ {
		arr[i] = tail[i-upto]
	}
	return arr
}

func (c *structCodec[S, B]) FromJSON(j any, preserveUnknowns bool) (S, error) {
	switch v := j.(type) {
	case nil:
		return c.defaultVal, nil
	case []any:
		return c.fromDenseJSON(v, preserveUnknowns)
	case map[string]any:
		return c.fromReadableJSON(v, preserveUnknowns)
	default:
		if isZeroJSON(j) {
			return c.defaultVal, nil
		}
		return c.defaultVal, typeErrorf("soia: struct %s: unexpected JSON shape %T", c.recordID, j)
	}
}

func (c *structCodec[S, B]) fromDenseJSON(arr []any, preserveUnknowns bool) (S, error) {
	bld := c.info.NewMutable()
	upto := len(arr)
	if upto > c.recognized {
		upto = c.recognized
	}
	for i := 0; i < upto; i++ {
		if e, ok := c.byNumber[i]; ok {
			if err := e.binding.setFromJSON(bld, arr[i], preserveUnknowns); err != nil {
				return c.defaultVal, err
			}
		}
		// Fields without a schema slot (removed/sparse) are silently
		// dropped; unknown fields are never errors.
	}
	if len(arr) > c.recognized && preserveUnknowns && c.info.SetUnknownFields != nil {
		tail := append([]any(nil), arr[c.recognized:]...)
		c.info.SetUnknownFields(bld, &UnknownFields{
			token:      &unknownToken{recordID: c.recordID},
			totalSlots: len(arr),
			jsonTail:   tail,
		})
	}
	return c.info.Finish(bld), nil
}

func (c *structCodec[S, B]) fromReadableJSON(obj map[string]any, preserveUnknowns bool) (S, error) {
	bld := c.info.NewMutable()
	for _, f := range c.info.Fields {
		val, ok := obj[f.JSONName]
		if !ok {
			continue
		}
		if err := f.binding.setFromJSON(bld, val, preserveUnknowns); err != nil {
			return c.defaultVal, err
		}
	}
	// Readable JSON is lossy: unknown keys are ignored, never
	// preserved.
	return c.info.Finish(bld), nil
}

func (c *structCodec[S, B]) ToJSONCode(x S, flavor JSONFlavor, indent bool) (string, error) {
	return marshalJSONCode(c.ToJSON(x, flavor), flavor, indent)
}

func (c *structCodec[S, B]) FromJSONCode(code string, preserveUnknowns bool) (S, error) {
	j, err := unmarshalJSONCode(code)
	if err != nil {
		return c.defaultVal, err
	}
	return c.FromJSON(j, preserveUnknowns)
}

func (c *structCodec[S, B]) ToBytes(x S) []byte {
	b := newOutbuf()
	appendMagic(b)
	c.writeWireValue(b, x)
	return b.Bytes()
}

func (c *structCodec[S, B]) writeWireValue(b *outbuf, s S) {
	highest := c.highestActive(&s)
	length := highest + 1
	unk := c.getUnknown(s)
	hasRawTail := unk != nil && sameToken(unk.token, c.recordID) && len(unk.rawTail) > 0 && unk.totalSlots > length
	if hasRawTail {
		length = unk.totalSlots
	}
	if length == 0 {
		// A default struct is a single 0 byte, not the empty-container wire
		// 246: when a struct occupies a slot of an enclosing record, its
		// default form must be indistinguishable from any other defaulted
		// slot.
		b.writeByte(0)
		return
	}
	writeWireLen(b, length)
	upto := length
	if upto > c.recognized {
		upto = c.recognized
	}
	for i := 0; i < upto; i++ {
		if e, ok := c.byNumber[i]; ok {
			if e.binding.isDefault(&s) {
				b.writeByte(0)
			} else {
				e.binding.writeWire(b, &s)
			}
		} else {
			b.writeByte(0)
		}
	}
	if hasRawTail {
		b.write(unk.rawTail)
	}
}

func (c *structCodec[S, B]) FromBytes(data []byte, preserveUnknowns bool) (S, error) {
	body, err := stripMagic(data)
	if err != nil {
		return c.defaultVal, err
	}
	in := newInbuf(body, preserveUnknowns)
	return c.readWireValue(in)
}

func (c *structCodec[S, B]) readWireValue(b *inbuf) (S, error) {
	length, err := readWireLen(b)
	if err != nil {
		return c.defaultVal, err
	}
	if length == 0 {
		return c.defaultVal, nil
	}
	bld := c.info.NewMutable()
	upto := length
	if upto > c.recognized {
		upto = c.recognized
	}
	for i := 0; i < upto; i++ {
		if e, ok := c.byNumber[i]; ok {
			if err := e.binding.readWireInto(b, bld); err != nil {
				return c.defaultVal, err
			}
		} else if err := skipWireValue(b); err != nil {
			return c.defaultVal, err
		}
	}
	if length > c.recognized {
		start := b.pos
		for i := c.recognized; i < length; i++ {
			if err := skipWireValue(b); err != nil {
				return c.defaultVal, err
			}
		}
		if b.preserve && c.info.SetUnknownFields != nil {
			raw := append([]byte(nil), b.buf[start:b.pos]...)
			c.info.SetUnknownFields(bld, &UnknownFields{
				token:      &unknownToken{recordID: c.recordID},
				totalSlots: length,
				rawTail:    raw,
			})
		}
	}
	return c.info.Finish(bld), nil
}

func (c *structCodec[S, B]) DefaultValue() S { return c.defaultVal }

func (c *structCodec[S, B]) IsDefault(x S) bool {
	if unk := c.getUnknown(x); unk != nil {
		return false
	}
	return c.highestActive(&x) < 0
}

func (c *structCodec[S, B]) TypeDescriptor() *TypeDescriptor {
	fields := make([]recordFieldDescriptor, len(c.info.Fields))
	for i, f := range c.info.Fields {
		fields[i] = recordFieldDescriptor{name: f.JSONName, number: f.Number, typ: f.binding.typeDescriptor()}
	}
	return &TypeDescriptor{
		kind: kindStruct,
		record: &recordDescriptor{
			modulePath:    c.info.ModulePath,
			qualifiedName: c.info.QualifiedName,
			fields:        fields,
			removed:       c.info.RemovedNumbers,
		},
	}
}
