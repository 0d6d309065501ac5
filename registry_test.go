package soia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleRegistryRejectsDuplicates(t *testing.T) {
	r := NewModuleRegistry()
	require.NoError(t, r.Register("geo.soia", "Point"))
	require.NoError(t, r.Register("geo.soia", "Shape"))
	require.NoError(t, r.Register("other.soia", "Point"))

	err := r.Register("geo.soia", "Point")
	require.True(t, Is(err, RegistrationError))
}

func TestLazySerializer(t *testing.T) {
	var lazy LazySerializer[int32]

	require.Panics(t, func() { lazy.ToBytes(1) })

	lazy.Resolve(Int32Serializer())
	require.Equal(t, Int32Serializer().ToBytes(42), lazy.ToBytes(42))
	got, err := lazy.FromBytes([]byte("soia\x2a"), false)
	require.NoError(t, err)
	require.Equal(t, int32(42), got)

	require.Panics(t, func() { lazy.Resolve(Int32Serializer()) })
}

func TestLazySerializerBreaksConstructionCycle(t *testing.T) {
	// A self-recursive record: a tree node whose children are nodes. The
	// node serializer needs itself for the children field, which LazySerializer
	// makes expressible.
	var lazy LazySerializer[node]

	s, err := NewStructSerializer(StructInfo[node, nodeBuilder]{
		ModulePath:    "tree.soia",
		QualifiedName: "Node",
		Fields: []Field[node, nodeBuilder]{
			NewField[node, nodeBuilder]("Label", "label", 0, StringSerializer(),
				func(n *node) string { return n.label },
				func(b *nodeBuilder, v string) { b.label = v }),
			NewField[node, nodeBuilder]("Children", "children", 1, ArraySerializer[node](&lazy, ""),
				func(n *node) []node { return n.children },
				func(b *nodeBuilder, v []node) { b.children = v }),
		},
		NewMutable: func() *nodeBuilder { return &nodeBuilder{} },
		Finish:     func(b *nodeBuilder) node { return node{label: b.label, children: b.children} },
	})
	require.NoError(t, err)
	lazy.Resolve(s)

	v := node{label: "root", children: []node{{label: "leaf"}}}
	got, err := s.FromBytes(s.ToBytes(v), false)
	require.NoError(t, err)
	require.Equal(t, v, got)

	code, err := s.ToJSONCode(v, Readable, false)
	require.NoError(t, err)
	require.Equal(t, `{"children":[{"label":"leaf"}],"label":"root"}`, code)
}

type node struct {
	label    string
	children []node
}

type nodeBuilder node

func TestSingleShotHelpers(t *testing.T) {
	s := Int32Serializer()

	require.Equal(t, s.ToBytes(7), MarshalBytes(s, 7))
	got, err := UnmarshalBytes(s, s.ToBytes(7))
	require.NoError(t, err)
	require.Equal(t, int32(7), got)

	code, err := MarshalDenseJSON(s, -257)
	require.NoError(t, err)
	require.Equal(t, "-257", code)
	got, err = UnmarshalJSON(s, code)
	require.NoError(t, err)
	require.Equal(t, int32(-257), got)
}

func TestErrorCodes(t *testing.T) {
	err := decodeErrorf("boom")
	require.True(t, Is(err, DecodeError))
	require.False(t, Is(err, TypeError))
	require.Equal(t, DecodeError, CodeOf(err))
	require.Equal(t, Unknown, CodeOf(nil))
	require.Equal(t, "boom", err.Error())
}
