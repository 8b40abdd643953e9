package document

// Clone returns a deep copy of v. Resolver uses this before handing a value
// retrieved from storage.Storage to a rewriter, so mutation of the working
// tree never aliases the cached copy (spec.md §5).
//
// A hand-rolled recursive clone is used here rather than a generic
// reflection-based deep-copy library: Object deliberately keeps its fields
// unexported to protect the key/index invariant, and every deep-copy library
// in the example pack (e.g. github.com/mohae/deepcopy) copies struct fields
// by walking exported fields only — it would silently produce an empty
// Object. Nothing in the corpus offers a deep-copy that is order-preserving-map
// aware, so this one operation is standard-library-only by necessity.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return (*Object)(nil)
		}
		n := NewObjectWithCapacity(t.Len())
		t.Range(func(k string, val Value) bool {
			n.Set(k, Clone(val))
			return true
		})
		return n
	case *Array:
		if t == nil {
			return (*Array)(nil)
		}
		n := make(Array, len(*t))
		for i, e := range *t {
			n[i] = Clone(e)
		}
		return &n
	default:
		// scalars (nil, bool, float64, string) are immutable values in Go
		return t
	}
}

// Equal reports structural equality between two Values, used by the
// set-union array merge rule (spec.md §4.5) to detect "already present"
// elements.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Range(func(k string, val Value) bool {
			bval, present := bv.Get(k)
			if !present || !Equal(val, bval) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(*av) != len(*bv) {
			return false
		}
		for i := range *av {
			if !Equal((*av)[i], (*bv)[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
