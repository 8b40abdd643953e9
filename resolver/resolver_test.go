package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/loader"
	"github.com/ceejbot/schema-tools/resolver"
	"github.com/ceejbot/schema-tools/rwerror"
	"github.com/ceejbot/schema-tools/scope"
	"github.com/ceejbot/schema-tools/storage"
)

func identity(v document.Value) (document.Value, error) { return v, nil }

func TestOpenSetsActiveURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A":{"type":"string"}}`), 0o644))

	r := resolver.New(storage.New(), loader.New())
	_, err := r.Open(path)
	require.NoError(t, err)
	require.Equal(t, path, r.ActiveURL())
	require.Equal(t, 1, r.StackDepth())
}

func TestResolveFragmentOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A":{"type":"string"},"B":{}}`), 0o644))

	r := resolver.New(storage.New(), loader.New())
	_, err := r.Open(path)
	require.NoError(t, err)

	resolved, err := r.Resolve("#/A", scope.New(), identity)
	require.NoError(t, err)

	obj := resolved.(*document.Object)
	typ, _ := obj.Get("type")
	require.Equal(t, "string", typ)
	require.Equal(t, 1, r.StackDepth())
}

func TestResolveCrossDocumentPushesAndPopsStack(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.json")
	otherPath := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(rootPath, []byte(`{"B":{"$ref":"other.json#/A"}}`), 0o644))
	require.NoError(t, os.WriteFile(otherPath, []byte(`{"A":{"type":"string"}}`), 0o644))

	r := resolver.New(storage.New(), loader.New())
	_, err := r.Open(rootPath)
	require.NoError(t, err)

	resolved, err := r.Resolve("other.json#/A", scope.New(), identity)
	require.NoError(t, err)

	obj := resolved.(*document.Object)
	typ, _ := obj.Get("type")
	require.Equal(t, "string", typ)

	// Stack must return to just the root after Resolve returns.
	require.Equal(t, 1, r.StackDepth())
	require.Equal(t, rootPath, r.ActiveURL())
}

func TestResolveUnresolvedFragmentIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A":{"type":"string"}}`), 0o644))

	r := resolver.New(storage.New(), loader.New())
	_, err := r.Open(path)
	require.NoError(t, err)

	_, err = r.Resolve("#/Missing", scope.New(), identity)
	require.Error(t, err)

	var rerr *rwerror.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, rwerror.ReferenceUnresolved, rerr.Kind)
}

func TestResolveLoadFailureOnMissingDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	r := resolver.New(storage.New(), loader.New())
	_, err := r.Open(path)
	require.NoError(t, err)

	_, err = r.Resolve(filepath.Join(dir, "missing.json")+"#/A", scope.New(), identity)
	require.Error(t, err)

	var rerr *rwerror.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, rwerror.LoadFailure, rerr.Kind)
}

func TestResolveDepthExceedsMaxDepthIsCyclic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A":{"type":"string"}}`), 0o644))

	r := resolver.New(storage.New(), loader.New())
	_, err := r.Open(path)
	require.NoError(t, err)

	sc := scope.New()
	for i := 0; i < scope.MaxDepth; i++ {
		sc.PushProperty("x")
	}

	_, err = r.Resolve("#/A", sc, identity)
	require.Error(t, err)

	var rerr *rwerror.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, rwerror.CyclicReference, rerr.Kind)
}
