package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheBuildThenInspectRoundTrips(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		_, err := run(t, cacheBuildCmd, []string{"map.txt", "map.rtcache"})
		require.NoError(t, err)

		exists, err := afero.Exists(fs, "map.rtcache")
		require.NoError(t, err)
		assert.True(t, exists)

		out, err := run(t, cacheInspectCmd, []string{"map.rtcache"})
		require.NoError(t, err)
		assert.Contains(t, out, `"ClassCount": 1`)
	})
}
