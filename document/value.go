package document

import "fmt"

// Value is a JSON value: nil, bool, float64, string, *Array or *Object.
//
// Numbers are always represented as float64, matching the behavior of
// encoding/json when unmarshaling into interface{} — this keeps structural
// equality (used by the array set-union merge rule) consistent regardless
// of whether a document was loaded from JSON or YAML.
type Value = interface{}

// Array is an ordered sequence of Values. It is a defined slice type (rather
// than a bare []interface{}) so package pointer/merge code can attach
// behavior, but it remains assignable to reflection-based tooling that
// expects a slice.
type Array []Value

// Object is an order-preserving string-keyed map of Values. Iteration order
// matches insertion order, which is how spec.md requires object keys to be
// processed and re-emitted — a native Go map gives no such guarantee.
//
// The internal layout (a slice of entries plus an index map for O(1)
// lookup) mirrors speakeasy-api-openapi/sequencedmap's Map[K,V], adapted to
// a single concrete string-keyed Value type since our tree has no need for
// sequencedmap's generic key/value parameters.
type Object struct {
	keys []string
	vals []Value
	idx  map[string]int
}

// NewObject returns an empty, ready-to-use Object.
func NewObject() *Object {
	return &Object{idx: make(map[string]int)}
}

// NewObjectWithCapacity returns an empty Object pre-sized for n entries.
func NewObjectWithCapacity(n int) *Object {
	return &Object{
		keys: make([]string, 0, n),
		vals: make([]Value, 0, n),
		idx:  make(map[string]int, n),
	}
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the object's keys in insertion order. The returned slice must
// not be mutated by callers.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Get returns the value stored under key, and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.idx[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// Has reports whether key is present in the object.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set inserts or updates key with value. Existing keys keep their original
// position; new keys are appended at the end.
func (o *Object) Set(key string, value Value) {
	if i, ok := o.idx[key]; ok {
		o.vals[i] = value
		return
	}
	o.idx[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, value)
}

// Delete removes key from the object, if present, preserving the relative
// order of the remaining keys.
func (o *Object) Delete(key string) {
	i, ok := o.idx[key]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.idx, key)
	for k, v := range o.idx {
		if v > i {
			o.idx[k] = v - 1
		}
	}
}

// Range calls fn for each key/value pair in insertion order, stopping early
// if fn returns false.
func (o *Object) Range(fn func(key string, value Value) bool) {
	if o == nil {
		return
	}
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// ShallowCopy returns a new Object with the same keys in the same order,
// copying the slice headers but not the values themselves.
func (o *Object) ShallowCopy() *Object {
	if o == nil {
		return NewObject()
	}
	n := NewObjectWithCapacity(len(o.keys))
	o.Range(func(k string, v Value) bool {
		n.Set(k, v)
		return true
	})
	return n
}

func (o *Object) String() string {
	return fmt.Sprintf("Object(%d keys)", o.Len())
}
