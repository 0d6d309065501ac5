package soia

import (
	"fmt"
	"sort"
)

// descriptorKind classifies a TypeDescriptor as one of primitive,
// optional, array, struct or enum.
type descriptorKind int

const (
	kindPrimitive descriptorKind = iota
	kindOptional
	kindArray
	kindStruct
	kindEnum
)

// TypeDescriptor is the reflective counterpart of a Serializer:
// every Serializer built by this package exposes one via TypeDescriptor().
// It supports a JSON round trip (AsJSON/ParseTypeDescriptor) and format transformation
// (Transform) without needing the original compiled Go type, by falling
// back to a generic slot-indexed tree representation for struct/enum
// payloads it only knows about reflectively (see transform.go).
type TypeDescriptor struct {
	kind descriptorKind

	// kindPrimitive
	primitiveKind string

	// kindOptional, kindArray
	elem     *TypeDescriptor
	keyChain string // kindArray only; "" if none declared

	// kindStruct, kindEnum
	record *recordDescriptor
}

// recordDescriptor is the reflective shape of a struct or enum, shared by
// every TypeDescriptor that references the same (module_path,
// qualified_name) identity within one ParseTypeDescriptor result. The
// struct/enum codecs (struct_codec.go, enum_codec.go) keep their own
// recognized-slot and removed-number bookkeeping and build a fresh
// recordDescriptor only when TypeDescriptor() is called.
type recordDescriptor struct {
	modulePath    string
	qualifiedName string
	isEnum        bool
	fields        []recordFieldDescriptor
	removed       []int
}

type recordFieldDescriptor struct {
	name   string // schema-declared snake_case name
	number int
	typ    *TypeDescriptor // nil for an enum constant variant
}

func (r *recordDescriptor) id() string {
	return r.modulePath + ":" + r.qualifiedName
}

// recognizedSlots is max(max_active_field_number, max_removed_number)+1;
// it bounds how many leading wire slots a struct decoder consumes through
// the schema rather than the skipper.
func (r *recordDescriptor) recognizedSlots() int {
	max := -1
	for _, f := range r.fields {
		if f.number > max {
			max = f.number
		}
	}
	for _, n := range r.removed {
		if n > max {
			max = n
		}
	}
	return max + 1
}

func (r *recordDescriptor) fieldByNumber(n int) (recordFieldDescriptor, bool) {
	for _, f := range r.fields {
		if f.number == n {
			return f, true
		}
	}
	return recordFieldDescriptor{}, false
}

func (r *recordDescriptor) isRemoved(n int) bool {
	for _, rm := range r.removed {
		if rm == n {
			return true
		}
	}
	return false
}

// PrimitiveTypeDescriptor returns the descriptor for a primitive kind
// ("bool", "int32", "int64", "uint64", "float32", "float64", "timestamp",
// "string", "bytes").
func PrimitiveTypeDescriptor(kind string) *TypeDescriptor {
	return &TypeDescriptor{kind: kindPrimitive, primitiveKind: kind}
}

// OptionalTypeDescriptor wraps inner in an optional descriptor.
func OptionalTypeDescriptor(inner *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{kind: kindOptional, elem: inner}
}

// ArrayTypeDescriptor wraps inner in an array descriptor, with an optional
// dotted key-extractor path.
func ArrayTypeDescriptor(inner *TypeDescriptor, keyChain string) *TypeDescriptor {
	return &TypeDescriptor{kind: kindArray, elem: inner, keyChain: keyChain}
}

// Kind reports which of the five descriptor shapes this is, as the string
// used in as_json() output ("primitive", "optional", "array", "struct",
// "enum").
func (d *TypeDescriptor) Kind() string {
	switch d.kind {
	case kindPrimitive:
		return "primitive"
	case kindOptional:
		return "optional"
	case kindArray:
		return "array"
	case kindStruct:
		return "struct"
	case kindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// RecordID returns "<module_path>:<qualified_name>" for a struct/enum
// descriptor, or "" for any other kind.
func (d *TypeDescriptor) RecordID() string {
	if d.record == nil {
		return ""
	}
	return d.record.id()
}

// AsJSON renders the descriptor as {type, records}: "type" is the type
// tree for this descriptor, and "records" is the transitive closure of
// every struct/enum definition it references, as a list in first-reference
// order, each record carrying its "<module_path>:<qualified_name>"
// identity under "id".
func (d *TypeDescriptor) AsJSON() any {
	records := map[string]any{}
	order := []string{}
	typ := d.typeJSON(records, &order)
	recList := make([]any, len(order))
	for i, id := range order {
		recList[i] = records[id]
	}
	return map[string]any{"type": typ, "records": recList}
}

// AsJSONCode renders AsJSON's output as a JSON string, two-space indented
// when indent is set.
func (d *TypeDescriptor) AsJSONCode(indent bool) (string, error) {
	flavor := Dense
	if indent {
		flavor = Readable
	}
	return marshalJSONCode(d.AsJSON(), flavor, indent)
}

func (d *TypeDescriptor) typeJSON(records map[string]any, order *[]string) any {
	switch d.kind {
	case kindPrimitive:
		return map[string]any{"kind": "primitive", "value": d.primitiveKind}
	case kindOptional:
		return map[string]any{"kind": "optional", "value": d.elem.typeJSON(records, order)}
	case kindArray:
		out := map[string]any{"kind": "array", "value": d.elem.typeJSON(records, order)}
		if d.keyChain != "" {
			out["key_chain"] = d.keyChain
		}
		return out
	case kindStruct, kindEnum:
		id := d.record.id()
		if _, seen := records[id]; !seen {
			records[id] = nil // reserve the slot before recursing, breaking cycles
			*order = append(*order, id)
			records[id] = d.recordJSON(records, order)
		}
		recordKind := "struct"
		if d.kind == kindEnum {
			recordKind = "enum"
		}
		return map[string]any{"kind": recordKind, "value": id}
	default:
		panic(fmt.Sprintf("soia: unknown TypeDescriptor kind %d", d.kind))
	}
}

func (d *TypeDescriptor) recordJSON(records map[string]any, order *[]string) any {
	r := d.record
	fields := make([]any, len(r.fields))
	for i, f := range r.fields {
		entry := map[string]any{"name": f.name, "number": f.number}
		if f.typ != nil {
			entry["type"] = f.typ.typeJSON(records, order)
		}
		fields[i] = entry
	}
	out := map[string]any{
		"kind":   map[bool]string{true: "enum", false: "struct"}[r.isEnum],
		"id":     r.id(),
		"fields": fields,
	}
	if len(r.removed) > 0 {
		removed := append([]int(nil), r.removed...)
		sort.Ints(removed)
		out["removed_numbers"] = removed
	}
	return out
}

// ParseTypeDescriptor rebuilds a fully-wired TypeDescriptor from the JSON
// produced by AsJSON. Struct/enum payloads are
// represented generically (see transform.go); ParseTypeDescriptor does not
// reconstruct a compiled Go type, only the reflective shape needed to
// validate, render, and transform values between formats.
func ParseTypeDescriptor(j any) (*TypeDescriptor, error) {
	obj, ok := j.(map[string]any)
	if !ok {
		return nil, typeErrorf("soia: expected {type, records} object, got %T", j)
	}
	typeJSON, ok := obj["type"]
	if !ok {
		return nil, typeErrorf("soia: type descriptor JSON missing \"type\"")
	}
	recordsJSON, _ := obj["records"].([]any)

	records := map[string]*recordDescriptor{}
	recordJSONByID := map[string]map[string]any{}
	for _, rj := range recordsJSON {
		ro, ok := rj.(map[string]any)
		if !ok {
			return nil, typeErrorf("soia: expected record object, got %T", rj)
		}
		id, _ := ro["id"].(string)
		if id == "" {
			return nil, typeErrorf("soia: record JSON missing \"id\"")
		}
		isEnum, _ := ro["kind"].(string)
		modulePath, qualifiedName := splitRecordID(id)
		records[id] = &recordDescriptor{
			modulePath:    modulePath,
			qualifiedName: qualifiedName,
			isEnum:        isEnum == "enum",
		}
		recordJSONByID[id] = ro
	}
	// Two-pass wiring: pass one allocates every record descriptor (above)
	// so cyclic references resolve; pass two populates fields.
	for id, rd := range records {
		fieldsJSON, _ := recordJSONByID[id]["fields"].([]any)
		fields := make([]recordFieldDescriptor, 0, len(fieldsJSON))
		for _, fj := range fieldsJSON {
			fo, ok := fj.(map[string]any)
			if !ok {
				return nil, typeErrorf("soia: expected field object, got %T", fj)
			}
			name, _ := fo["name"].(string)
			numF, err := jsonNumberToFloat(fo["number"])
			if err != nil {
				return nil, typeErrorf("soia: invalid field number for %q: %v", name, err)
			}
			var ftype *TypeDescriptor
			if tj, ok := fo["type"]; ok {
				ftype, err = parseTypeJSON(tj, records)
				if err != nil {
					return nil, err
				}
			}
			fields = append(fields, recordFieldDescriptor{name: name, number: int(numF), typ: ftype})
		}
		rd.fields = fields
		// AsJSON stores removed_numbers as []int; JSON text decodes to []any.
		switch removedJSON := recordJSONByID[id]["removed_numbers"].(type) {
		case []int:
			rd.removed = append(rd.removed, removedJSON...)
		case []any:
			for _, rn := range removedJSON {
				f, err := jsonNumberToFloat(rn)
				if err != nil {
					return nil, err
				}
				rd.removed = append(rd.removed, int(f))
			}
		}
	}

	return parseTypeJSON(typeJSON, records)
}

func parseTypeJSON(j any, records map[string]*recordDescriptor) (*TypeDescriptor, error) {
	obj, ok := j.(map[string]any)
	if !ok {
		return nil, typeErrorf("soia: expected type object, got %T", j)
	}
	kind, _ := obj["kind"].(string)
	switch kind {
	case "primitive":
		value, _ := obj["value"].(string)
		return PrimitiveTypeDescriptor(value), nil
	case "optional":
		inner, err := parseTypeJSON(obj["value"], records)
		if err != nil {
			return nil, err
		}
		return OptionalTypeDescriptor(inner), nil
	case "array":
		inner, err := parseTypeJSON(obj["value"], records)
		if err != nil {
			return nil, err
		}
		keyChain, _ := obj["key_chain"].(string)
		return ArrayTypeDescriptor(inner, keyChain), nil
	case "struct", "enum":
		id, _ := obj["value"].(string)
		rd, ok := records[id]
		if !ok {
			return nil, typeErrorf("soia: type descriptor references unknown record %q", id)
		}
		k := kindStruct
		if rd.isEnum {
			k = kindEnum
		}
		return &TypeDescriptor{kind: k, record: rd}, nil
	default:
		return nil, typeErrorf("soia: unknown type descriptor kind %q", kind)
	}
}

func splitRecordID(id string) (modulePath, qualifiedName string) {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == ':' {
			return id[:i], id[i+1:]
		}
	}
	return "", id
}
