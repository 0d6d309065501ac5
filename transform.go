package soia

import "encoding/json"

// This file implements TypeDescriptor.Transform: "decodes in
// one form and re-encodes in another, enabling lossless format conversion
// between dense JSON, readable JSON, and bytes" for a value known only
// reflectively, i.e. without a compiled Go struct/enum type available.
// Struct/enum payloads are represented generically as a dense-JSON-shaped
// tree — []any indexed by field number for structs, an int or [int, value]
// pair for enums — which happens to coincide with the dense JSON encoding
// already defined for these kinds.

// Format identifies one of the three external forms a TypeDescriptor can
// transform between.
type Format int

const (
	// FormatBytes is the binary wire form (with "soia" magic).
	FormatBytes Format = iota
	// FormatDenseJSON is the compact, rename-safe JSON form.
	FormatDenseJSON
	// FormatReadableJSON is the human-friendly JSON form.
	FormatReadableJSON
)

// anyPrimitive adapts a primitiveCodec[T]'s four core operations to `any`,
// so the generic transform machinery below can dispatch on a primitive's
// kind string without needing T at compile time. Every primitiveCodec in
// this package is wrapped once into primitiveAnyRegistry at init time.
type anyPrimitive interface {
	toJSONAny(x any, flavor JSONFlavor) any
	fromJSONAny(j any, preserve bool) (any, error)
	writeWireAny(b *outbuf, x any)
	readWireAny(b *inbuf) (any, error)
	defaultAny() any
	isDefaultAny(x any) bool
}

type anyPrimitiveAdapter[T any] struct{ c *primitiveCodec[T] }

func (a *anyPrimitiveAdapter[T]) toJSONAny(x any, flavor JSONFlavor) any {
	return a.c.toJSON(x.(T), flavor)
}

func (a *anyPrimitiveAdapter[T]) fromJSONAny(j any, preserve bool) (any, error) {
	return a.c.fromJSON(j, preserve)
}

func (a *anyPrimitiveAdapter[T]) writeWireAny(b *outbuf, x any) { a.c.writeWire(b, x.(T)) }

func (a *anyPrimitiveAdapter[T]) readWireAny(b *inbuf) (any, error) { return a.c.readWire(b) }

func (a *anyPrimitiveAdapter[T]) defaultAny() any { return a.c.defaultValue }

func (a *anyPrimitiveAdapter[T]) isDefaultAny(x any) bool { return a.c.isDefault(x.(T)) }

var primitiveAnyRegistry = map[string]anyPrimitive{
	"bool":      &anyPrimitiveAdapter[bool]{boolSerializer},
	"int32":     &anyPrimitiveAdapter[int32]{int32Serializer},
	"int64":     &anyPrimitiveAdapter[int64]{int64Serializer},
	"uint64":    &anyPrimitiveAdapter[uint64]{uint64Serializer},
	"float32":   &anyPrimitiveAdapter[float32]{float32Serializer},
	"float64":   &anyPrimitiveAdapter[float64]{float64Serializer},
	"timestamp": &anyPrimitiveAdapter[Timestamp]{timestampSerializer},
	"string":    &anyPrimitiveAdapter[string]{stringSerializer},
	"bytes":     &anyPrimitiveAdapter[Bytes]{bytesSerializer},
}

// Transform decodes source (either []byte for FormatBytes, or a JSON value
// tree for FormatDenseJSON/FormatReadableJSON — the decode side accepts
// either JSON flavor regardless of target, same as every concrete
// Serializer's FromJSON) and re-encodes it as target.
func (d *TypeDescriptor) Transform(source any, target Format) (any, error) {
	var tree any
	var err error
	if raw, ok := source.([]byte); ok {
		body, err := stripMagic(raw)
		if err != nil {
			return nil, err
		}
		in := newInbuf(body, true)
		tree, err = d.decodeWireGeneric(in)
		if err != nil {
			return nil, err
		}
	} else {
		tree, err = d.decodeJSONGeneric(source)
		if err != nil {
			return nil, err
		}
	}
	switch target {
	case FormatBytes:
		out := newOutbuf()
		appendMagic(out)
		d.encodeWireGeneric(out, tree)
		return out.Bytes(), nil
	case FormatDenseJSON:
		return d.encodeJSONGeneric(tree, Dense), nil
	case FormatReadableJSON:
		return d.encodeJSONGeneric(tree, Readable), nil
	default:
		return nil, typeErrorf("soia: unknown transform target format %d", target)
	}
}

// defaultGeneric returns the canonical (dense-JSON-shaped) default value
// for d's kind.
func (d *TypeDescriptor) defaultGeneric() any {
	switch d.kind {
	case kindPrimitive:
		return primitiveAnyRegistry[d.primitiveKind].defaultAny()
	case kindOptional:
		return nil
	case kindArray:
		return []any{}
	case kindStruct:
		return []any{}
	case kindEnum:
		return 0
	default:
		return nil
	}
}

func (d *TypeDescriptor) isDefaultGeneric(v any) bool {
	switch d.kind {
	case kindPrimitive:
		return primitiveAnyRegistry[d.primitiveKind].isDefaultAny(v)
	case kindOptional:
		return v == nil
	case kindArray, kindStruct:
		arr, _ := v.([]any)
		return len(arr) == 0
	case kindEnum:
		n, _ := v.(int)
		return n == 0
	default:
		return true
	}
}

// decodeJSONGeneric parses j (dense or readable shape, decoder is
// flavor-agnostic like every other FromJSON in this package) into the
// canonical dense-JSON-shaped tree.
func (d *TypeDescriptor) decodeJSONGeneric(j any) (any, error) {
	switch d.kind {
	case kindPrimitive:
		return primitiveAnyRegistry[d.primitiveKind].fromJSONAny(j, true)
	case kindOptional:
		if j == nil || isZeroJSON(j) {
			return nil, nil
		}
		return d.elem.decodeJSONGeneric(j)
	case kindArray:
		switch v := j.(type) {
		case nil:
			return []any{}, nil
		case []any:
			out := make([]any, len(v))
			for i, item := range v {
				val, err := d.elem.decodeJSONGeneric(item)
				if err != nil {
					return nil, err
				}
				out[i] = val
			}
			return out, nil
		default:
			if isZeroJSON(j) {
				return []any{}, nil
			}
			return nil, typeErrorf("soia: expected array, got %T", j)
		}
	case kindStruct:
		return d.decodeStructJSON(j)
	case kindEnum:
		return d.decodeEnumJSON(j)
	default:
		return nil, typeErrorf("soia: unknown TypeDescriptor kind")
	}
}

func (d *TypeDescriptor) decodeStructJSON(j any) (any, error) {
	r := d.record
	switch v := j.(type) {
	case nil:
		return []any{}, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			if f, ok := r.fieldByNumber(i); ok {
				val, err := f.typ.decodeJSONGeneric(item)
				if err != nil {
					return nil, err
				}
				out[i] = val
			} else {
				out[i] = item
			}
		}
		return out, nil
	case map[string]any:
		out := []any{}
		for _, f := range r.fields {
			val, ok := v[f.name]
			if !ok {
				continue
			}
			decoded, err := f.typ.decodeJSONGeneric(val)
			if err != nil {
				return nil, err
			}
			for len(out) <= f.number {
				out = append(out, nil)
			}
			out[f.number] = decoded
		}
		for i, v := range out {
			if v == nil {
				if f, ok := r.fieldByNumber(i); ok {
					out[i] = f.typ.defaultGeneric()
				}
			}
		}
		return out, nil
	default:
		if isZeroJSON(j) {
			return []any{}, nil
		}
		return nil, typeErrorf("soia: expected struct (array or object), got %T", j)
	}
}

func (d *TypeDescriptor) decodeEnumJSON(j any) (any, error) {
	r := d.record
	switch v := j.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, typeErrorf("soia: enum %s: invalid JSON number %q", r.id(), string(v))
		}
		return int(f), nil
	case string:
		if v == "?" {
			return 0, nil
		}
		for _, f := range r.fields {
			if f.name == v && f.typ == nil {
				return f.number, nil
			}
		}
		return 0, nil
	case []any:
		if len(v) != 2 {
			return nil, typeErrorf("soia: enum %s: expected [number, value]", r.id())
		}
		numF, err := jsonNumberToFloat(v[0])
		if err != nil {
			return nil, err
		}
		num := int(numF)
		if f, ok := r.fieldByNumber(num); ok && f.typ != nil {
			val, err := f.typ.decodeJSONGeneric(v[1])
			if err != nil {
				return nil, err
			}
			return []any{num, val}, nil
		}
		return 0, nil
	case map[string]any:
		kind, _ := v["kind"].(string)
		for _, f := range r.fields {
			if f.name == kind && f.typ != nil {
				val, err := f.typ.decodeJSONGeneric(v["value"])
				if err != nil {
					return nil, err
				}
				return []any{f.number, val}, nil
			}
		}
		return 0, nil
	default:
		if f, err := jsonNumberToFloat(j); err == nil {
			return int(f), nil
		}
		return nil, typeErrorf("soia: enum %s: unexpected JSON shape %T", r.id(), j)
	}
}

// encodeJSONGeneric renders the canonical tree v as JSON in the given
// flavor.
func (d *TypeDescriptor) encodeJSONGeneric(v any, flavor JSONFlavor) any {
	switch d.kind {
	case kindPrimitive:
		return primitiveAnyRegistry[d.primitiveKind].toJSONAny(v, flavor)
	case kindOptional:
		if v == nil {
			return nil
		}
		return d.elem.encodeJSONGeneric(v, flavor)
	case kindArray:
		arr, _ := v.([]any)
		if len(arr) == 0 && flavor == Dense {
			return 0
		}
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = d.elem.encodeJSONGeneric(item, flavor)
		}
		return out
	case kindStruct:
		return d.encodeStructJSON(v, flavor)
	case kindEnum:
		return d.encodeEnumJSON(v, flavor)
	default:
		return nil
	}
}

func (d *TypeDescriptor) encodeStructJSON(v any, flavor JSONFlavor) any {
	r := d.record
	arr, _ := v.([]any)
	if flavor == Readable {
		out := map[string]any{}
		for i, item := range arr {
			f, ok := r.fieldByNumber(i)
			if !ok || f.typ.isDefaultGeneric(item) {
				continue
			}
			out[f.name] = f.typ.encodeJSONGeneric(item, flavor)
		}
		return out
	}
	if len(arr) == 0 {
		return 0
	}
	out := make([]any, len(arr))
	for i, item := range arr {
		if f, ok := r.fieldByNumber(i); ok {
			out[i] = f.typ.encodeJSONGeneric(item, flavor)
		} else {
			out[i] = 0
		}
	}
	return out
}

func (d *TypeDescriptor) encodeEnumJSON(v any, flavor JSONFlavor) any {
	r := d.record
	if pair, ok := v.([]any); ok && len(pair) == 2 {
		num, _ := pair[0].(int)
		f, _ := r.fieldByNumber(num)
		if flavor == Readable {
			return map[string]any{"kind": f.name, "value": f.typ.encodeJSONGeneric(pair[1], flavor)}
		}
		return []any{num, f.typ.encodeJSONGeneric(pair[1], flavor)}
	}
	num, _ := v.(int)
	if flavor == Readable {
		if num == 0 {
			return "?"
		}
		if f, ok := r.fieldByNumber(num); ok {
			return f.name
		}
		return "?"
	}
	return num
}

// decodeWireGeneric parses one complete wire element according to d into
// the canonical tree.
func (d *TypeDescriptor) decodeWireGeneric(b *inbuf) (any, error) {
	switch d.kind {
	case kindPrimitive:
		return primitiveAnyRegistry[d.primitiveKind].readWireAny(b)
	case kindOptional:
		w, err := b.peekByte()
		if err != nil {
			return nil, err
		}
		if w == wireNull || w == 0 {
			b.pos++
			return nil, nil
		}
		return d.elem.decodeWireGeneric(b)
	case kindArray:
		n, err := readWireLen(b)
		if err != nil {
			return nil, err
		}
		out := make([]any, n)
		for i := 0; i < n; i++ {
			v, err := d.elem.decodeWireGeneric(b)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case kindStruct:
		return d.decodeStructWire(b)
	case kindEnum:
		return d.decodeEnumWire(b)
	default:
		return nil, typeErrorf("soia: unknown TypeDescriptor kind")
	}
}

func (d *TypeDescriptor) decodeStructWire(b *inbuf) (any, error) {
	r := d.record
	length, err := readWireLen(b)
	if err != nil {
		return nil, err
	}
	recognized := r.recognizedSlots()
	out := make([]any, 0, length)
	upto := length
	if upto > recognized {
		upto = recognized
	}
	for i := 0; i < upto; i++ {
		if f, ok := r.fieldByNumber(i); ok {
			v, err := f.typ.decodeWireGeneric(b)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		} else {
			if err := skipWireValue(b); err != nil {
				return nil, err
			}
			out = append(out, 0)
		}
	}
	for i := recognized; i < length; i++ {
		if err := skipWireValue(b); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *TypeDescriptor) decodeEnumWire(b *inbuf) (any, error) {
	r := d.record
	w, err := b.peekByte()
	if err != nil {
		return nil, err
	}
	if w < wireEmptyStr {
		hdr, err := readWireHeader(b)
		if err != nil {
			return nil, err
		}
		return int(hdr.asUint64()), nil
	}
	var num int
	switch {
	case w == wireEnum248:
		b.pos++
		n, err := readWireUintBody(b)
		if err != nil {
			return nil, err
		}
		num = int(n)
	case w >= wireEnum251 && w <= wireEnum254:
		b.pos++
		num = int(w-wireEnum251) + 1
	default:
		return nil, decodeErrorf("soia: enum %s: unexpected wire byte %d", r.id(), w)
	}
	if f, ok := r.fieldByNumber(num); ok && f.typ != nil {
		v, err := f.typ.decodeWireGeneric(b)
		if err != nil {
			return nil, err
		}
		return []any{num, v}, nil
	}
	if err := skipWireValue(b); err != nil {
		return nil, err
	}
	return 0, nil
}

// encodeWireGeneric writes the canonical tree v as wire bytes according to
// d.
func (d *TypeDescriptor) encodeWireGeneric(b *outbuf, v any) {
	switch d.kind {
	case kindPrimitive:
		primitiveAnyRegistry[d.primitiveKind].writeWireAny(b, v)
	case kindOptional:
		if v == nil {
			b.writeByte(wireNull)
			return
		}
		d.elem.encodeWireGeneric(b, v)
	case kindArray:
		arr, _ := v.([]any)
		writeWireLen(b, len(arr))
		for _, item := range arr {
			d.elem.encodeWireGeneric(b, item)
		}
	case kindStruct:
		d.encodeStructWire(b, v)
	case kindEnum:
		d.encodeEnumWire(b, v)
	}
}

func (d *TypeDescriptor) encodeStructWire(b *outbuf, v any) {
	r := d.record
	arr, _ := v.([]any)
	highest := -1
	for i, item := range arr {
		f, ok := r.fieldByNumber(i)
		if ok && !f.typ.isDefaultGeneric(item) {
			highest = i
		}
	}
	length := highest + 1
	if length == 0 {
		b.writeByte(0)
		return
	}
	writeWireLen(b, length)
	for i := 0; i < length; i++ {
		f, ok := r.fieldByNumber(i)
		if !ok || f.typ.isDefaultGeneric(arr[i]) {
			b.writeByte(0)
			continue
		}
		f.typ.encodeWireGeneric(b, arr[i])
	}
}

func (d *TypeDescriptor) encodeEnumWire(b *outbuf, v any) {
	r := d.record
	if pair, ok := v.([]any); ok && len(pair) == 2 {
		num, _ := pair[0].(int)
		f, _ := r.fieldByNumber(num)
		if num >= 1 && num <= 4 {
			b.writeByte(wireEnum251 + byte(num-1))
		} else {
			b.writeByte(wireEnum248)
			writeWireUint(b, uint64(num))
		}
		f.typ.encodeWireGeneric(b, pair[1])
		return
	}
	num, _ := v.(int)
	if num == 0 {
		b.writeByte(0)
		return
	}
	writeWireUint(b, uint64(num))
}
