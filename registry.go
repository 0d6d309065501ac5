package soia

import "sync"

// This file adapts the module registration protocol (two-pass default
// construction) to Go's value-typed, statically-constructed generics. A
// dynamic-language runtime builds every record's Serializer in
// one pass that allocates defaults first and wires field serializers
// second, which is how mutually-recursive record defaults (struct A { b:
// B }, struct B { a: A }) avoid infinite construction. Go cannot express
// that kind of value-type cycle at all (an A containing a B containing an A
// by value has infinite size), so schemas compiled to Go represent
// self-reference through Optional/array indirection, same as any other
// recursive Go type — the remaining problem is purely one of *construction
// order*: NewStructSerializer for A needs B's Serializer, and vice versa,
// before either can exist. LazySerializer below is the idiomatic-Go
// answer: declare one per record up front, hand out its Serializer[T] view
// to whichever sibling record needs it, then Resolve it once the real
// codec exists — mirroring "allocate, then populate" with closures instead
// of a runtime reflection pass.

// LazySerializer breaks a construction-order cycle between mutually
// recursive records. Every method panics until Resolve has been called:
// there is no valid partially-registered state to observe once a module's
// init function returns.
type LazySerializer[T any] struct {
	mu       sync.RWMutex
	resolved Serializer[T]
}

// Resolve wires the real Serializer. Calling Resolve twice is a
// registration error in spirit (the record would be registered twice);
// it panics, since it can only happen from a programming mistake in
// generated module-init code, never from untrusted input.
func (l *LazySerializer[T]) Resolve(s Serializer[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.resolved != nil {
		panic("soia: LazySerializer already resolved")
	}
	l.resolved = s
}

func (l *LazySerializer[T]) get() Serializer[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.resolved == nil {
		panic("soia: LazySerializer used before Resolve (module registration incomplete)")
	}
	return l.resolved
}

func (l *LazySerializer[T]) ToJSON(x T, flavor JSONFlavor) any { return l.get().ToJSON(x, flavor) }

func (l *LazySerializer[T]) FromJSON(j any, preserveUnknowns bool) (T, error) {
	return l.get().FromJSON(j, preserveUnknowns)
}

func (l *LazySerializer[T]) ToJSONCode(x T, flavor JSONFlavor, indent bool) (string, error) {
	return l.get().ToJSONCode(x, flavor, indent)
}

func (l *LazySerializer[T]) FromJSONCode(code string, preserveUnknowns bool) (T, error) {
	return l.get().FromJSONCode(code, preserveUnknowns)
}

func (l *LazySerializer[T]) ToBytes(x T) []byte { return l.get().ToBytes(x) }

func (l *LazySerializer[T]) FromBytes(b []byte, preserveUnknowns bool) (T, error) {
	return l.get().FromBytes(b, preserveUnknowns)
}

func (l *LazySerializer[T]) TypeDescriptor() *TypeDescriptor { return l.get().TypeDescriptor() }

func (l *LazySerializer[T]) DefaultValue() T { return l.get().DefaultValue() }

func (l *LazySerializer[T]) IsDefault(x T) bool { return l.get().IsDefault(x) }

func (l *LazySerializer[T]) writeWireValue(b *outbuf, x T) {
	writeValueWire(b, l.get(), x)
}

func (l *LazySerializer[T]) readWireValue(b *inbuf) (T, error) {
	return readValueWire(b, l.get())
}

// ModuleRegistry rejects re-registration: a second Register call with the
// same record identity is an error, never a silent no-op. Generated code
// constructs one per schema module (or shares a
// process-wide one) and calls Register for every struct/enum as its
// Serializer is built.
type ModuleRegistry struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewModuleRegistry returns an empty registry.
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{seen: map[string]bool{}}
}

// Register records modulePath:qualifiedName as registered, or returns a
// RegistrationError if it already was.
func (r *ModuleRegistry) Register(modulePath, qualifiedName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := modulePath + ":" + qualifiedName
	if r.seen[id] {
		return registrationErrorf("soia: record %q already registered", id)
	}
	r.seen[id] = true
	return nil
}
