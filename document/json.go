package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromNode converts a parsed *yaml.Node into a Value. Both JSON and YAML
// input are read through gopkg.in/yaml.v3 (JSON is a valid YAML document),
// which keeps mapping-node Content in source order — the same trick
// speakeasy-api-openapi/yml relies on to avoid the order loss a plain
// map[string]interface{} unmarshal would cause.
func FromNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromNode(n.Content[0])
	case yaml.MappingNode:
		obj := NewObjectWithCapacity(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			val, err := FromNode(valNode)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := FromNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return &arr, nil
	case yaml.ScalarNode:
		return scalarFromNode(n)
	case yaml.AliasNode:
		return FromNode(n.Alias)
	default:
		return nil, fmt.Errorf("document: unsupported yaml node kind %v", n.Kind)
	}
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			var i int64
			if err2 := n.Decode(&i); err2 != nil {
				return nil, err
			}
			return float64(i), nil
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

// Unmarshal parses data (JSON or YAML — both accepted by gopkg.in/yaml.v3)
// into a Value tree.
func Unmarshal(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	if node.Kind == 0 {
		// empty input
		return nil, nil
	}
	return FromNode(&node)
}

// Marshal renders a Value tree as canonical JSON, preserving the object key
// order carried by the tree.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case *Object:
		return writeObject(buf, t)
	case Object:
		return writeObject(buf, &t)
	case *Array:
		return writeArray(buf, *t)
	case Array:
		return writeArray(buf, t)
	case []Value:
		return writeArray(buf, t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("document: marshal scalar %T: %w", t, err)
		}
		buf.Write(b)
		return nil
	}
}

func writeObject(buf *bytes.Buffer, o *Object) error {
	buf.WriteByte('{')
	first := true
	var werr error
	o.Range(func(k string, val Value) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			werr = err
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := writeValue(buf, val); err != nil {
			werr = err
			return false
		}
		return true
	})
	if werr != nil {
		return werr
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, a Array) error {
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}
