package registry_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/registry"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 14, 9, 5, 7, 0, time.UTC)
}

func TestAddAndGet(t *testing.T) {
	t.Parallel()

	s := registry.New(registry.WithClock(fixedClock))
	display, err := s.Add("ZAR.Swap", 42)
	require.NoError(t, err)
	assert.Equal(t, "@@ZAR.Swap::09:05:07", display)

	got, err := s.Get("ZAR.Swap")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = s.Get(display)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, curveerr.ErrCurveNotFound)
}

func TestOverwriteKeepsRefs(t *testing.T) {
	t.Parallel()

	s := registry.New()
	_, err := s.Add("curve", "v1")
	require.NoError(t, err)
	ref, err := s.Lookup("curve")
	require.NoError(t, err)

	_, err = s.Add("curve", "v2")
	require.NoError(t, err)

	old, err := s.Resolve(ref)
	require.NoError(t, err)
	assert.Equal(t, "v1", old)

	cur, err := s.Get("curve")
	require.NoError(t, err)
	assert.Equal(t, "v2", cur)
	assert.Equal(t, 1, s.Len())

	_, err = s.Resolve(registry.Ref{Handle: "curve", Index: 99})
	assert.ErrorIs(t, err, curveerr.ErrCurveNotFound)
}

func TestValidateHandle(t *testing.T) {
	t.Parallel()

	assert.NoError(t, registry.ValidateHandle("USD OIS 2024"))
	for _, bad := range []string{"", "   ", "@@x", "a:b", "a,b", "a;b", `a\b`, "a/b"} {
		assert.ErrorIs(t, registry.ValidateHandle(bad), curveerr.ErrInvalidHandle, bad)
	}
	_, err := registry.New().Add("bad/handle", 1)
	assert.ErrorIs(t, err, curveerr.ErrInvalidHandle)
}

func TestCleanHandle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JIBAR", registry.CleanHandle("@@JIBAR::10:11:12"))
	assert.Equal(t, "JIBAR", registry.CleanHandle(" JIBAR "))
	assert.Equal(t, "JIBAR", registry.CleanHandle("@@JIBAR"))
}

func TestHandlesAndConcurrency(t *testing.T) {
	t.Parallel()

	s := registry.New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Add(fmt.Sprintf("h%02d", i), i)
			assert.NoError(t, err)
			_, err = s.Get(fmt.Sprintf("h%02d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	handles := s.Handles()
	require.Len(t, handles, 20)
	assert.Equal(t, "h00", handles[0])
	assert.Equal(t, "h19", handles[19])
}
