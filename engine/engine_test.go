package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/engine"
	"github.com/ceejbot/schema-tools/rewrite"
	"github.com/ceejbot/schema-tools/rwerror"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDereferenceLocalFragmentRef(t *testing.T) {
	path := writeFixture(t, `{"A":{"type":"string"},"B":{"$ref":"#/A"}}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.Dereference(schema, rewrite.DereferenceOptions{}))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"A":{"type":"string"},"B":{"type":"string"}}`, string(out))
}

func TestDereferenceSiblingKeyOverride(t *testing.T) {
	path := writeFixture(t, `{"A":{"type":"string","title":"T1"},"B":{"$ref":"#/A","title":"T2"}}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.Dereference(schema, rewrite.DereferenceOptions{}))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"A":{"type":"string","title":"T1"},"B":{"type":"string","title":"T2"}}`, string(out))
}

func TestDereferenceCycleFailsWithCyclicReference(t *testing.T) {
	path := writeFixture(t, `{"A":{"$ref":"#/B"},"B":{"$ref":"#/A"}}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)

	err = e.Dereference(schema, rewrite.DereferenceOptions{})
	require.Error(t, err)

	var rerr *rwerror.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, rwerror.CyclicReference, rerr.Kind)
}

func TestMergeAllOfLastWinsOnScalars(t *testing.T) {
	path := writeFixture(t, `{"allOf":[{"type":"object","maxItems":3},{"maxItems":5}]}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.MergeAllOf(schema, nil))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"object","maxItems":5}`, string(out))
}

func TestMergeAllOfArrayUnion(t *testing.T) {
	path := writeFixture(t, `{"allOf":[{"required":["a"]},{"required":["b","a"]}]}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.MergeAllOf(schema, nil))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"required":["a","b"]}`, string(out))
}

func TestMergeAllOfSkipsDiscriminator(t *testing.T) {
	path := writeFixture(t, `{"allOf":[{"discriminator":{"propertyName":"k"},"x":1},{"y":2}]}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.MergeAllOf(schema, nil))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"x":1,"y":2}`, string(out))
}

func TestFlattenAllOfCollapsesSingleElement(t *testing.T) {
	path := writeFixture(t, `{"allOf":[{"type":"string"}]}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.FlattenAllOf(schema, rewrite.AllOfOptions{}))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"string"}`, string(out))
}

func TestAllOfRemovalInvariant(t *testing.T) {
	path := writeFixture(t, `{"properties":{"p":{"allOf":[{"type":"string"},{"minLength":1}]}}}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.MergeAllOf(schema, nil))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.NotContains(t, string(out), `"allOf"`)
	require.JSONEq(t, `{"properties":{"p":{"type":"string","minLength":1}}}`, string(out))
}

func TestDereferenceSkipRootInternalReferences(t *testing.T) {
	path := writeFixture(t, `{"A":{"type":"string"},"B":{"$ref":"#/A"}}`)

	e := engine.New()
	schema, err := e.LoadRoot(path)
	require.NoError(t, err)
	require.NoError(t, e.Dereference(schema, rewrite.DereferenceOptions{SkipRootInternalReferences: true}))

	out, err := document.Marshal(schema.Root)
	require.NoError(t, err)
	require.JSONEq(t, `{"A":{"type":"string"},"B":{"$ref":"#/A"}}`, string(out))
}
