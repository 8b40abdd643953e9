package document

// skipKeys are dropped from the right-hand side of an object merge: folding
// an allOf entry into an accumulator (or the accumulator into its parent)
// must not propagate another allOf, a sibling oneOf, or a discriminator —
// each of those keywords has composition semantics of its own that a plain
// merge would corrupt. Ground truth:
// original_source/crates/schematools/src/process/flatten_allof.rs's
// `SKIP_PROPS`.
var skipKeys = map[string]struct{}{
	"allOf":         {},
	"oneOf":         {},
	"discriminator": {},
}

// Merge deep-merges right into left and returns a new Value; neither input
// is mutated in place (spec.md §3's "a rewriter never holds two simultaneous
// mutable references into the same JSON subtree" invariant). This is the
// shared primitive the AllOf-Merger (both the hard and the soft flavor) uses
// to fold allOf arrays; see rewrite.Filter and rewrite's allof.go.
//
//   - object ∪ object: recurse key by key, skipping allOf/oneOf/discriminator
//     on the right.
//   - array ∪ array: set-union by structural equality, left order first.
//   - anything else, including a type mismatch: right replaces left. This is
//     MergeTypeMismatch in spec.md §7 — by design, not an error.
func Merge(left, right Value) Value {
	switch l := left.(type) {
	case *Object:
		r, ok := right.(*Object)
		if !ok {
			return right
		}
		return mergeObjects(l, r)
	case *Array:
		r, ok := right.(*Array)
		if !ok {
			return right
		}
		return mergeArrays(l, r)
	default:
		return right
	}
}

func mergeObjects(left, right *Object) *Object {
	result := left.ShallowCopy()
	right.Range(func(k string, rv Value) bool {
		if _, skip := skipKeys[k]; skip {
			return true
		}
		if lv, exists := result.Get(k); exists {
			result.Set(k, Merge(lv, rv))
		} else {
			result.Set(k, Merge(nil, rv))
		}
		return true
	})
	return result
}

func mergeArrays(left, right *Array) *Array {
	merged := make(Array, len(*left))
	copy(merged, *left)
	for _, rv := range *right {
		if !arrayContains(merged, rv) {
			merged = append(merged, rv)
		}
	}
	return &merged
}

func arrayContains(a Array, v Value) bool {
	for _, e := range a {
		if Equal(e, v) {
			return true
		}
	}
	return false
}
