package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/rwerror"
	"github.com/ceejbot/schema-tools/rewrite"
)

func obj(t *testing.T, src string) *document.Object {
	t.Helper()
	v, err := document.Unmarshal([]byte(src))
	require.NoError(t, err)
	o, ok := v.(*document.Object)
	require.True(t, ok)
	return o
}

func TestNilFilterMatchesEverything(t *testing.T) {
	var f *rewrite.Filter
	require.True(t, f.Matches(obj(t, `{"allOf":[]}`)))
}

func TestFilterRequireKey(t *testing.T) {
	f, err := rewrite.NewFilter(rewrite.FilterOptions{RequireKey: "x-ms-marker"})
	require.NoError(t, err)

	require.True(t, f.Matches(obj(t, `{"x-ms-marker":true,"allOf":[]}`)))
	require.False(t, f.Matches(obj(t, `{"allOf":[]}`)))
}

func TestFilterKeywordContains(t *testing.T) {
	f, err := rewrite.NewFilter(rewrite.FilterOptions{KeywordContains: []string{"x-ms"}})
	require.NoError(t, err)

	require.True(t, f.Matches(obj(t, `{"x-ms-marker":true}`)))
	require.False(t, f.Matches(obj(t, `{"other":true}`)))
}

func TestNewFilterRejectsEmptyKeyword(t *testing.T) {
	_, err := rewrite.NewFilter(rewrite.FilterOptions{KeywordContains: []string{""}})
	require.Error(t, err)

	var rerr *rwerror.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, rwerror.FilterConfigError, rerr.Kind)
}
