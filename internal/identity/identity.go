// Package identity keys values by address so graphs can be walked without
// relying on value equality.
package identity

import "reflect"

// Key identifies a node by dynamic type and address. Slices also carry their length
// so that a slice and a shorter view of the same array are kept apart.
type Key struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// Of returns the identity key of v. Only non-nil pointers, maps and non-empty
// slices have an identity; everything else reports false and is never cached.
func Of(v any) (Key, bool) {
	if v == nil {
		return Key{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return Key{}, false
		}
		return Key{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return Key{}, false
		}
		return Key{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}, true
	}
	return Key{}, false
}

// Same reports whether a and b are the same node.
func Same(a, b any) bool {
	ka, ok := Of(a)
	if !ok {
		return false
	}
	kb, ok := Of(b)
	return ok && ka == kb
}

// IsNil reports whether v is nil or a typed nil pointer, map or slice.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Equal reports whether a and b are the same node, or equal comparable values.
func Equal(a, b any) bool {
	if Same(a, b) {
		return true
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() || !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}

// Seen is a set of nodes keyed by identity. It holds on to every node it records so
// that an address cannot be reused by another allocation while the set is alive.
type Seen map[Key]any

// Mark records v and reports whether it had already been recorded.
// Values without identity are never recorded and always report false.
func (s Seen) Mark(v any) bool {
	k, ok := Of(v)
	if !ok {
		return false
	}
	if _, dup := s[k]; dup {
		return true
	}
	s[k] = v
	return false
}
