package storage_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceejbot/schema-tools/document"
	"github.com/ceejbot/schema-tools/storage"
)

func TestGetOrLoadCachesFirstLoad(t *testing.T) {
	s := storage.New()
	var calls int32

	loadFn := func() (document.Value, error) {
		atomic.AddInt32(&calls, 1)
		return document.NewObject(), nil
	}

	first, err := s.GetOrLoad("u", loadFn)
	require.NoError(t, err)
	second, err := s.GetOrLoad("u", loadFn)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, int32(1), calls)
	require.Equal(t, 1, s.Len())
}

func TestGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	s := storage.New()
	var calls int32
	start := make(chan struct{})

	loadFn := func() (document.Value, error) {
		<-start
		atomic.AddInt32(&calls, 1)
		return document.NewObject(), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetOrLoad("shared", loadFn)
			require.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), calls)
}

func TestGetMissReturnsFalse(t *testing.T) {
	s := storage.New()
	_, ok := s.Get("missing")
	require.False(t, ok)
}
