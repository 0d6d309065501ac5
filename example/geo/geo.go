// Package geo is a hand-written stand-in for the code a soia schema
// compiler would generate: one struct with an unknown-fields slot, one
// enum, and the module-registration init call generated code performs. It
// exists to exercise the runtime core (record registration, struct/enum
// codecs, the RPC envelope) end to end against a toy schema.
package geo

import soia "github.com/gepheum/soia-go"

// Point is the frozen (immutable) representation of a schema struct with
// two int32 fields. It carries an unknown-fields slot so decoding foreign
// data in preserve mode round-trips byte-for-byte.
type Point struct {
	x, y    int32
	unknown *soia.UnknownFields
}

// NewPoint builds a Point from its field values (the "frozen instance"
// constructor a schema compiler would emit for non-mutable construction).
func NewPoint(x, y int32) Point { return Point{x: x, y: y} }

func (p Point) X() int32 { return p.x }
func (p Point) Y() int32 { return p.y }

func (p Point) GetUnknownFields() *soia.UnknownFields { return p.unknown }

func (p Point) WithUnknownFields(u *soia.UnknownFields) Point {
	p.unknown = u
	return p
}

// PointBuilder is Point's mutable form; mutation happens here and Build
// finalizes.
type PointBuilder struct {
	x, y    int32
	unknown *soia.UnknownFields
}

func (b *PointBuilder) SetX(x int32) *PointBuilder { b.x = x; return b }
func (b *PointBuilder) SetY(y int32) *PointBuilder { b.y = y; return b }

func (b *PointBuilder) Build() Point {
	return Point{x: b.x, y: b.y, unknown: b.unknown}
}

var pointSerializer soia.Serializer[Point]

// PointSerializer returns the registered Serializer for Point, following
// the generated-code convention of one package-level accessor per record.
func PointSerializer() soia.Serializer[Point] { return pointSerializer }

// Shape is a schema enum: the reserved UNKNOWN variant, one constant
// variant (ORIGIN) and one value variant ("at") carrying a Point.
type Shape struct {
	number  int // 0 = UNKNOWN, 1 = ORIGIN (constant), 2 = "at" (value variant)
	at      Point
	unknown *soia.UnknownFields
}

const (
	shapeNumberUnknown = 0
	shapeNumberOrigin  = 1
	shapeNumberAt      = 2
)

// ShapeUnknown is the default/zero Shape value.
var ShapeUnknown = Shape{}

// ShapeOrigin is the constant variant naming the coordinate-system origin.
var ShapeOrigin = Shape{number: shapeNumberOrigin}

// ShapeAt builds the "at" value variant, centered on p.
func ShapeAt(p Point) Shape { return Shape{number: shapeNumberAt, at: p} }

func (s Shape) Number() int { return s.number }

// At returns the center point and true if s is the "at" variant.
func (s Shape) At() (Point, bool) {
	if s.number == shapeNumberAt {
		return s.at, true
	}
	return Point{}, false
}

func (s Shape) GetUnknownFields() *soia.UnknownFields { return s.unknown }

func (s Shape) WithUnknownFields(u *soia.UnknownFields) Shape {
	s.unknown = u
	return s
}

// ShapeBuilder is Shape's mutable form.
type ShapeBuilder struct {
	number  int
	at      Point
	unknown *soia.UnknownFields
}

func (b *ShapeBuilder) SetNumber(n int) { b.number = n }

func (b *ShapeBuilder) SetAt(p Point) {
	b.number = shapeNumberAt
	b.at = p
}

func (b *ShapeBuilder) Build() Shape {
	return Shape{number: b.number, at: b.at, unknown: b.unknown}
}

var shapeSerializer soia.Serializer[Shape]

// ShapeSerializer returns the registered Serializer for Shape.
func ShapeSerializer() soia.Serializer[Shape] { return shapeSerializer }

// init wires the module's records, the way a generated module-init
// function would. Point has no record
// fields of record type, so there is no construction-order cycle here;
// registry.go's LazySerializer exists for modules where one would occur.
func init() {
	var err error

	pointSerializer, err = soia.NewStructSerializer(soia.StructInfo[Point, PointBuilder]{
		ModulePath:    "geo.soia",
		QualifiedName: "Point",
		Fields: []soia.Field[Point, PointBuilder]{
			soia.NewField[Point, PointBuilder]("X", "x", 0, soia.Int32Serializer(),
				func(p *Point) int32 { return p.x },
				func(b *PointBuilder, v int32) { b.x = v }),
			soia.NewField[Point, PointBuilder]("Y", "y", 1, soia.Int32Serializer(),
				func(p *Point) int32 { return p.y },
				func(b *PointBuilder, v int32) { b.y = v }),
		},
		NewMutable:       func() *PointBuilder { return &PointBuilder{} },
		Finish:           func(b *PointBuilder) Point { return b.Build() },
		GetUnknownFields: func(p *Point) *soia.UnknownFields { return p.unknown },
		SetUnknownFields: func(b *PointBuilder, u *soia.UnknownFields) { b.unknown = u },
	})
	if err != nil {
		panic(err)
	}

	shapeSerializer, err = soia.NewEnumSerializer(soia.EnumInfo[Shape, ShapeBuilder]{
		ModulePath:    "geo.soia",
		QualifiedName: "Shape",
		Constants: []soia.EnumConstant{
			{Name: "ORIGIN", JSONName: "ORIGIN", Number: shapeNumberOrigin},
		},
		Values: []soia.EnumValueField[Shape, ShapeBuilder]{
			soia.NewEnumValue[Shape, ShapeBuilder]("at", "at", shapeNumberAt, pointSerializer,
				func(b *ShapeBuilder, p Point) { b.SetAt(p) }),
		},
		NewMutable: func() *ShapeBuilder { return &ShapeBuilder{} },
		Finish:     func(b *ShapeBuilder) Shape { return b.Build() },
		GetNumber:  func(s *Shape) int { return s.number },
		GetPayload: func(s *Shape) any {
			if s.number == shapeNumberAt {
				return s.at
			}
			return nil
		},
		SetNumber:        func(b *ShapeBuilder, n int) { b.SetNumber(n) },
		GetUnknownFields: func(s *Shape) *soia.UnknownFields { return s.unknown },
		SetUnknownFields: func(b *ShapeBuilder, u *soia.UnknownFields) { b.unknown = u },
	})
	if err != nil {
		panic(err)
	}
}
