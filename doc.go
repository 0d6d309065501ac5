/*
Package soia implements the runtime core of a schema-driven serialization
engine. Code generated from a soia schema registers its structs and enums
with this package (see NewStructSerializer, NewEnumSerializer and
ModuleRegistry) and gets back Serializer values capable of converting
instances to and from three external forms: dense JSON (compact,
rename-safe), readable JSON (human-friendly), and a compact binary encoding
using a custom variable-length wire grammar.

The serialization core is purely synchronous and stateless: a Serializer
holds no per-call mutable state, so concurrent calls on the same Serializer
are safe. Only module registration mutates serializer internals, and it
must complete before any serialization begins.
*/
package soia
