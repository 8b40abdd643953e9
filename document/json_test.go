package document_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceejbot/schema-tools/document"
)

func TestUnmarshalPreservesKeyOrder(t *testing.T) {
	v, err := document.Unmarshal([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)

	obj, ok := v.(*document.Object)
	require.True(t, ok)
	require.Equal(t, []string{"z", "a", "m"}, obj.Keys())
}

func TestUnmarshalYAML(t *testing.T) {
	v, err := document.Unmarshal([]byte("name: pet\ntype: string\n"))
	require.NoError(t, err)

	obj, ok := v.(*document.Object)
	require.True(t, ok)

	name, ok := obj.Get("name")
	require.True(t, ok)
	require.Equal(t, "pet", name)
}

func TestMarshalRoundTripsOrderAndTypes(t *testing.T) {
	src := []byte(`{"b":1,"a":[1,2,3],"c":{"nested":true},"d":null,"e":"text"}`)
	v, err := document.Unmarshal(src)
	require.NoError(t, err)

	out, err := document.Marshal(v)
	require.NoError(t, err)

	roundTripped, err := document.Unmarshal(out)
	require.NoError(t, err)

	require.True(t, document.Equal(v, roundTripped))

	obj := v.(*document.Object)
	require.Equal(t, []string{"b", "a", "c", "d", "e"}, obj.Keys())
}

func TestObjectSetDeleteKeepsOrder(t *testing.T) {
	obj := document.NewObject()
	obj.Set("first", 1.0)
	obj.Set("second", 2.0)
	obj.Set("third", 3.0)
	obj.Delete("second")
	obj.Set("fourth", 4.0)

	require.Equal(t, []string{"first", "third", "fourth"}, obj.Keys())
	require.Equal(t, 3, obj.Len())
}

func TestNavigateJSONPointer(t *testing.T) {
	v, err := document.Unmarshal([]byte(`{"A":{"type":"string"},"list":[10,20,30]}`))
	require.NoError(t, err)

	target, err := document.Navigate(v, "/A/type")
	require.NoError(t, err)
	require.Equal(t, "string", target)

	elem, err := document.Navigate(v, "/list/1")
	require.NoError(t, err)
	require.Equal(t, float64(20), elem)
}
