package retrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvmretrace/retrace/mapping"
)

func TestRemapClassUnknownPassesThrough(t *testing.T) {
	r := newSampleRetracer(t)
	assert.Equal(t, "com.example.app.MainActivity", r.RemapClass("a.b.c"))
	assert.Equal(t, "nope", r.RemapClass("nope"))
}

func TestRemapFrameCachesRepeatedLookups(t *testing.T) {
	r := newSampleRetracer(t)
	first := r.RemapFrame("a.b.d", "a", 10, nil)
	second := r.RemapFrame("a.b.d", "a", 10, nil)
	require.Len(t, first, 1)
	// Same backing slice returned from cache, not recomputed.
	assert.Same(t, &first[0], &second[0])
}

func TestNewRejectsNonPositiveCacheSizeByDefaulting(t *testing.T) {
	idx, _ := mapping.Build(sampleTraceMapping)
	r, err := New(idx, mapping.DefaultResolverOptions(), -5)
	require.NoError(t, err)
	assert.NotNil(t, r)
}
