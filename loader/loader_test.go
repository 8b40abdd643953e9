package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/loader"
	"github.com/ceejbot/schema-tools/rwerror"
)

func TestLoadJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"object"}`), 0o644))

	l := loader.New()
	v, err := l.Load(path)
	require.NoError(t, err)

	obj, ok := v.(*document.Object)
	require.True(t, ok)
	typ, _ := obj.Get("type")
	require.Equal(t, "object", typ)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: object\nproperties:\n  name:\n    type: string\n"), 0o644))

	l := loader.New()
	v, err := l.Load(path)
	require.NoError(t, err)

	obj, ok := v.(*document.Object)
	require.True(t, ok)
	require.True(t, obj.Has("properties"))
}

func TestLoadMissingFileIsLoadFailure(t *testing.T) {
	l := loader.New()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var rerr *rwerror.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, rwerror.LoadFailure, rerr.Kind)
}
