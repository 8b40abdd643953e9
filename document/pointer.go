package document

import (
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

// JSONLookup implements jsonpointer.JSONPointable, letting
// github.com/go-openapi/jsonpointer navigate an *Object the same way it
// navigates a plain map[string]interface{} or a generated struct. Array
// navigation needs no such adapter: a named slice type already satisfies
// the library's reflection-based fallback.
var _ jsonpointer.JSONPointable = (*Object)(nil)

func (o *Object) JSONLookup(token string) (interface{}, error) {
	v, ok := o.Get(token)
	if !ok {
		return nil, fmt.Errorf("object has no key %q", token)
	}
	return v, nil
}

// Navigate resolves a JSON pointer (RFC 6901, no leading "#") against root,
// returning the target Value. An empty pointer returns root unchanged.
func Navigate(root Value, pointer string) (Value, error) {
	if pointer == "" {
		return root, nil
	}
	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		return nil, fmt.Errorf("parse json pointer %q: %w", pointer, err)
	}
	found, _, err := ptr.Get(root)
	if err != nil {
		return nil, err
	}
	return found, nil
}
